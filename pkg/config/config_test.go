package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Gate.Secret != DefaultGateSecret {
		t.Errorf("expected default gate secret, got %q", cfg.Gate.Secret)
	}
	if cfg.Gate.Disabled {
		t.Error("gate should be enabled by default")
	}
	if !cfg.Data.Watch {
		t.Error("data watching should be on by default")
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Gate.Secret != DefaultGateSecret {
		t.Errorf("expected default config, got secret %q", cfg.Gate.Secret)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
gate:
  secret: open-sesame
  disabled: false

ui:
  mouse: false

data:
  path: /tmp/issues.json
  watch: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Gate.Secret != "open-sesame" {
		t.Errorf("Gate.Secret = %q, want %q", cfg.Gate.Secret, "open-sesame")
	}
	if cfg.UI.MouseEnabled() {
		t.Error("UI.MouseEnabled() should be false when mouse: false is set")
	}
	if cfg.Data.Path != "/tmp/issues.json" {
		t.Errorf("Data.Path = %q", cfg.Data.Path)
	}
	if cfg.Data.Watch {
		t.Error("Data.Watch should be false")
	}
}

func TestLoadFrom_EmptySecretFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  mouse: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Gate.Secret != DefaultGateSecret {
		t.Errorf("empty secret should fall back to default, got %q", cfg.Gate.Secret)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	off := false
	cfg := DefaultConfig()
	cfg.Data.Path = "/data/issues.json"
	cfg.UI.GroupByAssignee = &off

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if loaded.Data.Path != cfg.Data.Path {
		t.Errorf("round-trip Data.Path = %q, want %q", loaded.Data.Path, cfg.Data.Path)
	}
	if loaded.UI.GroupingEnabled() {
		t.Error("round-trip lost the group_by_assignee override")
	}
}

func TestUITogglesDefaultOn(t *testing.T) {
	var ui UIConfig
	if !ui.GroupingEnabled() || !ui.MouseEnabled() {
		t.Error("unset UI toggles should default to enabled")
	}

	off := false
	ui.GroupByAssignee = &off
	ui.Mouse = &off
	if ui.GroupingEnabled() || ui.MouseEnabled() {
		t.Error("explicit false should disable the toggles")
	}
}

func TestAuthenticatedFlag(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	if Authenticated() {
		t.Fatal("fresh state dir should not be authenticated")
	}
	if err := MarkAuthenticated(); err != nil {
		t.Fatalf("MarkAuthenticated() error: %v", err)
	}
	if !Authenticated() {
		t.Error("flag should persist after MarkAuthenticated")
	}
	if err := ClearAuthenticated(); err != nil {
		t.Fatalf("ClearAuthenticated() error: %v", err)
	}
	if Authenticated() {
		t.Error("flag should be gone after ClearAuthenticated")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	got := expandHome("~/data/issues.json")
	want := filepath.Join(home, "data", "issues.json")
	if got != want {
		t.Errorf("expandHome() = %q, want %q", got, want)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path should pass through, got %q", got)
	}
}
