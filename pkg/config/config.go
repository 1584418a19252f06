// Package config handles loading and saving workdeck configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/wd/config.yaml
//   - State:   ~/.local/state/wd/ (gate flag, last-used data path)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GateConfig controls the shared-secret access gate.
type GateConfig struct {
	// Secret is the static passphrase compared verbatim against input.
	// This gates prototype access; it is not a security boundary.
	Secret string `yaml:"secret,omitempty"`
	// Disabled skips the gate entirely.
	Disabled bool `yaml:"disabled,omitempty"`
}

// UIConfig holds UI preference settings. Both toggles default to on when
// unset, so the pointers distinguish "absent" from "explicitly off".
type UIConfig struct {
	GroupByAssignee *bool `yaml:"group_by_assignee,omitempty"`
	Mouse           *bool `yaml:"mouse,omitempty"`
}

// GroupingEnabled reports whether the table groups issues by assignee.
func (u UIConfig) GroupingEnabled() bool {
	return u.GroupByAssignee == nil || *u.GroupByAssignee
}

// MouseEnabled reports whether mouse input is captured.
func (u UIConfig) MouseEnabled() bool {
	return u.Mouse == nil || *u.Mouse
}

// DataConfig points at the issue collection.
type DataConfig struct {
	Path  string `yaml:"path,omitempty"`  // JSON issue file; empty uses the built-in sample
	Watch bool   `yaml:"watch,omitempty"` // reload when the file changes
}

// Config is the top-level configuration for wd.
type Config struct {
	Gate GateConfig `yaml:"gate,omitempty"`
	UI   UIConfig   `yaml:"ui,omitempty"`
	Data DataConfig `yaml:"data,omitempty"`
}

// DefaultGateSecret is the passphrase shipped with the prototype.
const DefaultGateSecret = "team-transformations!"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Gate: GateConfig{Secret: DefaultGateSecret},
		Data: DataConfig{Watch: true},
	}
}

// ConfigDir returns the XDG config directory for wd.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "wd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "wd")
}

// StateDir returns the XDG state directory for wd.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "wd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "wd")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Gate.Secret == "" {
		cfg.Gate.Secret = DefaultGateSecret
	}
	cfg.Data.Path = expandHome(cfg.Data.Path)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// authFile marks a successful gate check so later runs skip the gate.
func authFile() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "authenticated")
}

// Authenticated reports whether a previous run passed the gate.
func Authenticated() bool {
	path := authFile()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// MarkAuthenticated persists the gate flag. Failure to persist is not
// fatal; the next run simply shows the gate again.
func MarkAuthenticated() error {
	path := authFile()
	if path == "" {
		return fmt.Errorf("cannot determine state directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return os.WriteFile(path, []byte("1\n"), 0o644)
}

// ClearAuthenticated removes the persisted gate flag.
func ClearAuthenticated() error {
	path := authFile()
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
