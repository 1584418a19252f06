package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme bundles the dashboard's color vocabulary with a renderer so styles
// are built once at startup, not per frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Status
	Todo       lipgloss.AdaptiveColor
	InProgress lipgloss.AdaptiveColor
	Done       lipgloss.AdaptiveColor

	// Severity
	Good   lipgloss.AdaptiveColor
	Warn   lipgloss.AdaptiveColor
	Danger lipgloss.AdaptiveColor

	// UI elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Pre-computed styles
	Base          lipgloss.Style
	Header        lipgloss.Style
	Selected      lipgloss.Style
	Cursor        lipgloss.Style
	GroupRow      lipgloss.Style
	SummaryRow    lipgloss.Style
	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	PrimaryBold   lipgloss.Style
	DangerText    lipgloss.Style
	WarnText      lipgloss.Style
	GoodText      lipgloss.Style
	PanelBorder   lipgloss.Style
	PopoverBorder lipgloss.Style
}

// DefaultTheme returns the standard adaptive theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		Todo:       lipgloss.AdaptiveColor{Light: "#5E6C84", Dark: "#8993A4"},
		InProgress: lipgloss.AdaptiveColor{Light: "#0052CC", Dark: "#4C9AFF"},
		Done:       lipgloss.AdaptiveColor{Light: "#00875A", Dark: "#57D9A3"},

		Good:   lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		Warn:   lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		Danger: lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})
	t.Header = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Selected = r.NewStyle().Background(t.Highlight).Bold(true)
	t.Cursor = r.NewStyle().Background(t.Primary).Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1F29"})
	t.GroupRow = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.SummaryRow = r.NewStyle().Foreground(t.Subtext).Bold(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.DangerText = r.NewStyle().Foreground(t.Danger)
	t.WarnText = r.NewStyle().Foreground(t.Warn)
	t.GoodText = r.NewStyle().Foreground(t.Good)
	t.PanelBorder = r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary).Padding(0, 1)
	t.PopoverBorder = r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1)

	return t
}

// StatusColor maps an issue status label to its theme color.
func (t Theme) StatusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "DONE":
		return t.Done
	case "IN PROGRESS":
		return t.InProgress
	default:
		return t.Todo
	}
}
