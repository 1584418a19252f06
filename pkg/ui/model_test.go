package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/workdeck/internal/datasource"
	"github.com/vanderheijden86/workdeck/pkg/compute"
	"github.com/vanderheijden86/workdeck/pkg/config"
	"github.com/vanderheijden86/workdeck/pkg/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Gate.Disabled = true
	col := &datasource.Collection{Issues: fixtureIssues()}
	m := New(cfg, col, nil)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return mm.(Model)
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+@":
		msg = tea.KeyMsg{Type: tea.KeyCtrlAt}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	mm, _ := m.Update(msg)
	return mm.(Model)
}

func click(m Model, x, y int, mods ...string) Model {
	msg := tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	for _, mod := range mods {
		switch mod {
		case "ctrl":
			msg.Ctrl = true
		case "shift":
			msg.Shift = true
		}
	}
	mm, _ := m.Update(msg)
	return mm.(Model)
}

func columnX(m Model, field model.Field) int {
	for _, c := range m.table.columns {
		if c.field == field {
			return c.x
		}
	}
	return -1
}

func TestKeyboardSelectionFlow(t *testing.T) {
	m := newTestModel(t)

	// Cursor starts on the first issue row; space selects its cell.
	m = press(m, " ")
	if len(m.sel.Cells) != 1 || m.sel.Cells[0].IssueID != "w-1" {
		t.Fatalf("selection = %+v, want w-1", m.sel.Cells)
	}

	// Move down one issue row and toggle the second cell in.
	m = press(m, "down")
	m = press(m, "ctrl+@")
	if len(m.sel.Cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(m.sel.Cells))
	}
	if m.sel.Cells[1].IssueID != "w-2" {
		t.Errorf("second cell = %s, want w-2", m.sel.Cells[1].IssueID)
	}

	// Escape clears the selection.
	m = press(m, "esc")
	if !m.sel.Empty() {
		t.Error("esc should clear the selection")
	}
}

func TestCursorSkipsGroupRows(t *testing.T) {
	m := newTestModel(t)

	// Two downs from w-1 cross the Ben group header and land on w-3.
	m = press(m, "down")
	m = press(m, "down")
	cell, _, ok := m.cursorCell()
	if !ok || cell.IssueID != "w-3" {
		t.Errorf("cursor cell = %v/%v, want w-3", cell.IssueID, ok)
	}
}

func TestShiftSelectExtendsAlongColumn(t *testing.T) {
	m := newTestModel(t)

	m = press(m, " ") // anchor on w-1 startDate
	m = press(m, "down")
	m = press(m, "down")
	m = press(m, "V") // extend to w-3

	if len(m.sel.Cells) != 3 {
		t.Fatalf("cells = %d, want 3 (w-1 through w-3)", len(m.sel.Cells))
	}
	for i, want := range []string{"w-1", "w-2", "w-3"} {
		if m.sel.Cells[i].IssueID != want {
			t.Errorf("cell %d = %s, want %s", i, m.sel.Cells[i].IssueID, want)
		}
	}
}

func TestPanelOpensOnlyWithSelection(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "enter")
	if m.sel.PanelOpen {
		t.Error("panel must not open on an empty selection")
	}

	m = press(m, " ")
	m = press(m, "enter")
	if !m.sel.PanelOpen {
		t.Error("enter should open the panel once cells are selected")
	}

	// Escape closes the panel first, keeping the selection.
	m = press(m, "esc")
	if m.sel.PanelOpen {
		t.Error("esc should close the panel")
	}
	if m.sel.Empty() {
		t.Error("closing the panel must keep the selection")
	}
}

func TestModeCycles(t *testing.T) {
	m := newTestModel(t)
	if m.mode != compute.ModeSum {
		t.Fatalf("initial mode = %v", m.mode)
	}
	seen := map[compute.Mode]bool{m.mode: true}
	for range len(compute.Modes) - 1 {
		m = press(m, "m")
		seen[m.mode] = true
	}
	if len(seen) != len(compute.Modes) {
		t.Errorf("cycled through %d modes, want %d", len(seen), len(compute.Modes))
	}
	m = press(m, "m")
	if m.mode != compute.ModeSum {
		t.Errorf("mode should wrap back to sum, got %v", m.mode)
	}
}

func TestMouseClickSelectsCell(t *testing.T) {
	m := newTestModel(t)
	x := columnX(m, model.FieldTargetDate)

	m = click(m, x, 5) // w-1's target date row
	if len(m.sel.Cells) != 1 || m.sel.Cells[0].Field != model.FieldTargetDate {
		t.Fatalf("selection = %+v, want one targetDate cell", m.sel.Cells)
	}

	m = click(m, x, 6, "ctrl")
	if len(m.sel.Cells) != 2 {
		t.Errorf("ctrl-click should add, got %d cells", len(m.sel.Cells))
	}

	// Clicking a non-selectable area clears everything.
	m = click(m, 0, 5)
	if !m.sel.Empty() {
		t.Error("clicking outside selectable cells should clear")
	}
}

func TestHeaderClickTogglesPopover(t *testing.T) {
	m := newTestModel(t)
	x := columnX(m, model.FieldBudget)

	m = click(m, x, 1)
	want := model.FieldID(string(model.FieldBudget), model.GlobalScope)
	if m.sel.OpenPopover != want {
		t.Fatalf("popover = %q, want %q", m.sel.OpenPopover, want)
	}

	m = click(m, x, 1)
	if m.sel.OpenPopover != "" {
		t.Error("second header click should close the popover")
	}
}

func TestDigitKeysTogglePopovers(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "2")
	want := model.FieldID(string(model.FieldBudget), model.GlobalScope)
	if m.sel.OpenPopover != want {
		t.Fatalf("popover = %q, want %q", m.sel.OpenPopover, want)
	}

	// A different digit replaces the open popover.
	m = press(m, "5")
	if m.sel.OpenPopover != model.FieldID(string(model.FieldSlippage), model.GlobalScope) {
		t.Errorf("popover = %q, want slippage", m.sel.OpenPopover)
	}

	m = press(m, "esc")
	if m.sel.OpenPopover != "" {
		t.Error("esc should close the popover first")
	}
}

func TestGroupToggleCollapsesRows(t *testing.T) {
	m := newTestModel(t)
	before := len(m.table.rows)

	m = press(m, "tab") // cursor on w-1, collapses Ann's group
	if got := len(m.table.rows); got != before-2 {
		t.Errorf("rows after collapse = %d, want %d", got, before-2)
	}
	// The cursor follows the collapsed group's header, so the next press
	// toggles the same group rather than whatever row slid underneath.
	if m.cursorRow != 1 {
		t.Errorf("cursorRow after collapse = %d, want 1 (Ann's header)", m.cursorRow)
	}

	m = press(m, "tab")
	if got := len(m.table.rows); got != before {
		t.Errorf("rows after re-expand = %d, want %d", got, before)
	}
	if !m.table.expanded["a-1"] {
		t.Error("second press should re-expand Ann's group")
	}
}

func TestFlatLayoutWithoutGrouping(t *testing.T) {
	off := false
	cfg := config.DefaultConfig()
	cfg.Gate.Disabled = true
	cfg.UI.GroupByAssignee = &off

	m := New(cfg, &datasource.Collection{Issues: fixtureIssues()}, nil)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	m = mm.(Model)

	// Summary row plus one row per issue, no group headers.
	if got := len(m.table.rows); got != 5 {
		t.Fatalf("rows = %d, want 5", got)
	}
	for _, row := range m.table.rows[1:] {
		if row.kind != rowIssue {
			t.Fatalf("unexpected row kind %v in flat layout", row.kind)
		}
	}

	// Collapse is meaningless without group rows.
	before := len(m.table.rows)
	m = press(m, "tab")
	if got := len(m.table.rows); got != before {
		t.Errorf("tab changed flat layout rows: %d -> %d", before, got)
	}
}

func TestSlippagePopoverShowsSpread(t *testing.T) {
	m := newTestModel(t)

	// Fixture slippages are +3d and -2d: mean +0.5d, spread 2.5d.
	m = press(m, "5")
	view := m.View()
	if !strings.Contains(view, "±2.5d") {
		t.Error("slippage popover should report the day spread")
	}
}

func TestDataReloadResetsSelection(t *testing.T) {
	m := newTestModel(t)
	m = press(m, " ")

	col := &datasource.Collection{Issues: fixtureIssues()[:2]}
	mm, _ := m.Update(dataReloadedMsg{collection: col})
	m = mm.(Model)

	if !m.sel.Empty() {
		t.Error("a reload invalidates cell identity, selection must clear")
	}
	if len(m.table.issues) != 2 {
		t.Errorf("table issues = %d, want 2", len(m.table.issues))
	}
}

func TestViewRendersDashboard(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	for _, want := range []string{"workdeck", "Ann", "Ben", "Unassigned", "WD-1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewOverlaysPanel(t *testing.T) {
	m := newTestModel(t)
	m = press(m, " ")
	m = press(m, "enter")

	view := m.View()
	if !strings.Contains(view, "Earliest") {
		t.Error("panel overlay should show the date range block")
	}
}
