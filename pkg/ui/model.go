package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/workdeck/internal/datasource"
	"github.com/vanderheijden86/workdeck/pkg/compute"
	"github.com/vanderheijden86/workdeck/pkg/config"
	"github.com/vanderheijden86/workdeck/pkg/debug"
	"github.com/vanderheijden86/workdeck/pkg/model"
	"github.com/vanderheijden86/workdeck/pkg/selection"
	"github.com/vanderheijden86/workdeck/pkg/watcher"
)

// phase is the top-level screen the model shows.
type phase int

const (
	phaseGate phase = iota
	phaseDashboard
)

// Messages crossing the update loop.
type (
	watchChangedMsg  struct{}
	dataReloadedMsg  struct{ collection *datasource.Collection }
	reloadFailedMsg  struct{ err error }
	statusExpiredMsg struct{ seq int }
)

// Model is the root Bubble Tea model: the password gate followed by the
// grouped issue dashboard with selection, computation panel, and chart
// popovers.
type Model struct {
	theme Theme
	cfg   config.Config
	phase phase

	gate  gateModel
	table *table
	sel   selection.State
	mode  compute.Mode

	issues []model.Issue
	roster []*model.Assignee

	// Keyboard cursor over selectable cells.
	cursorRow int // index into table.rows
	cursorCol int // index into selectable columns
	scroll    int

	watcher *watcher.Watcher

	width, height int
	status        string
	statusSeq     int
	today         time.Time
	quitting      bool
}

// New builds the root model. The watcher may be nil when watching is off.
func New(cfg config.Config, col *datasource.Collection, w *watcher.Watcher) Model {
	th := DefaultTheme(lipgloss.DefaultRenderer())

	m := Model{
		theme:   th,
		cfg:     cfg,
		phase:   phaseDashboard,
		mode:    compute.ModeSum,
		issues:  col.Issues,
		roster:  col.Roster,
		table:   newTable(col.Issues, 120),
		watcher: w,
		today:   time.Now(),
	}

	if !cfg.UI.GroupingEnabled() {
		m.table.setGrouped(false)
	}
	if !cfg.Gate.Disabled && !config.Authenticated() {
		m.phase = phaseGate
		m.gate = newGateModel(th, cfg.Gate.Secret)
	}
	m.clampCursor() // start on the first issue row
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.phase == phaseGate {
		cmds = append(cmds, m.gate.Init())
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// waitForChange blocks on the watcher's change channel.
func waitForChange(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return watchChangedMsg{}
	}
}

// reloadData re-reads the issue file off the update loop.
func reloadData(path string) tea.Cmd {
	return func() tea.Msg {
		col, err := datasource.Load(path)
		if err != nil {
			return reloadFailedMsg{err: err}
		}
		return dataReloadedMsg{collection: col}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.setWidth(msg.Width)
		return m, nil

	case watchChangedMsg:
		debug.Log("data file changed, reloading")
		return m, tea.Batch(reloadData(m.cfg.Data.Path), waitForChange(m.watcher))

	case dataReloadedMsg:
		m.issues = msg.collection.Issues
		m.roster = msg.collection.Roster
		m.table.setIssues(m.issues)
		m.sel = selection.Reduce(m.sel, selection.ClickOutside{})
		m.clampCursor()
		return m.flashStatus("reloaded")

	case reloadFailedMsg:
		debug.Log("reload failed: %v", msg.err)
		return m.flashStatus("reload failed: " + msg.err.Error())

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case gateUnlockedMsg:
		m.phase = phaseDashboard
		return m, nil
	}

	if m.phase == phaseGate {
		return m.updateGate(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) updateGate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.gate, cmd = m.gate.Update(msg)
	return m, cmd
}

// ══════════════════════════════════════════════════════════════════════════════
// INPUT HANDLING
// ══════════════════════════════════════════════════════════════════════════════

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll = max(0, m.scroll-3)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scroll = min(m.maxScroll(), m.scroll+3)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	// Header click toggles the column's chart popover.
	if field, _, ok := m.table.HeaderFieldAt(msg.X, msg.Y); ok {
		id := model.FieldID(string(field), model.GlobalScope)
		m.sel = selection.Reduce(m.sel, selection.TogglePopover{FieldID: id})
		return m, nil
	}

	// Group header rows expand and collapse.
	if key, ok := m.table.GroupRowAt(msg.Y, m.scroll); ok {
		m.table.toggleGroup(key)
		m.clampCursor()
		return m, nil
	}

	cell, bounds, ok := m.table.CellAt(msg.X, msg.Y, m.scroll)
	if !ok {
		m.sel = selection.Reduce(m.sel, selection.ClickOutside{})
		return m, nil
	}

	m.moveCursorTo(cell)
	switch {
	case msg.Ctrl:
		m.sel = selection.Reduce(m.sel, selection.CtrlClick{Cell: cell, Bounds: bounds})
	case msg.Shift:
		m.sel = selection.Reduce(m.sel, selection.ShiftClick{
			Cell: cell, Bounds: bounds, FieldCells: m.table.FieldCells(cell.Field),
		})
	default:
		m.sel = selection.Reduce(m.sel, selection.Click{Cell: cell, Bounds: bounds})
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, keys.Right):
		m.moveCursor(0, 1)

	case key.Matches(msg, keys.Select):
		if cell, bounds, ok := m.cursorCell(); ok {
			m.sel = selection.Reduce(m.sel, selection.Click{Cell: cell, Bounds: bounds})
		}
	case key.Matches(msg, keys.Toggle):
		if cell, bounds, ok := m.cursorCell(); ok {
			m.sel = selection.Reduce(m.sel, selection.CtrlClick{Cell: cell, Bounds: bounds})
		}
	case key.Matches(msg, keys.Extend):
		if cell, bounds, ok := m.cursorCell(); ok {
			m.sel = selection.Reduce(m.sel, selection.ShiftClick{
				Cell: cell, Bounds: bounds, FieldCells: m.table.FieldCells(cell.Field),
			})
		}

	case key.Matches(msg, keys.Panel):
		if m.sel.PanelOpen {
			m.sel = selection.Reduce(m.sel, selection.ClosePanel{})
		} else {
			m.sel = selection.Reduce(m.sel, selection.OpenPanel{})
		}
	case key.Matches(msg, keys.Escape):
		switch {
		case m.sel.OpenPopover != "":
			m.sel = selection.Reduce(m.sel, selection.TogglePopover{FieldID: m.sel.OpenPopover})
		case m.sel.PanelOpen:
			m.sel = selection.Reduce(m.sel, selection.ClosePanel{})
		default:
			m.sel = selection.Reduce(m.sel, selection.Clear{})
		}

	case key.Matches(msg, keys.Mode):
		m.mode = nextMode(m.mode)
	case key.Matches(msg, keys.Copy):
		return m.copySelection()
	case key.Matches(msg, keys.Reload):
		return m, reloadData(m.cfg.Data.Path)
	case key.Matches(msg, keys.Group):
		if m.cursorRow < len(m.table.rows) {
			row := m.table.rows[m.cursorRow]
			if row.kind != rowSummary && m.table.grouped {
				gk := groupKey(m.table.groups[row.groupIdx])
				m.table.toggleGroup(gk)
				// The cursor stays with the toggled group's header so a
				// second press reverses the first.
				if idx, ok := m.table.groupRowIndex(gk); ok {
					m.cursorRow = idx
				}
				m.scroll = clampInt(m.scroll, 0, m.maxScroll())
				m.ensureCursorVisible()
			}
		}
	}

	// Chart popovers stay on digit keys.
	switch msg.String() {
	case "1":
		m.togglePopover(popStatus)
	case "2":
		m.togglePopover(string(model.FieldBudget))
	case "3":
		m.togglePopover(string(model.FieldStoryPoints))
	case "4":
		m.togglePopover(string(model.FieldTimeTracking))
	case "5":
		m.togglePopover(string(model.FieldSlippage))
	case "6":
		m.togglePopover(string(model.FieldTargetDate))
	case "7":
		m.togglePopover(string(model.FieldDueDate))
	case "8":
		m.togglePopover(string(model.FieldStartDate))
	case "9":
		m.togglePopover(popDependencies)
	case "0":
		m.togglePopover(popComments)
	case "t":
		m.togglePopover(popTracking)
	}
	return m, nil
}

func (m *Model) togglePopover(kind string) {
	id := model.FieldID(kind, model.GlobalScope)
	m.sel = selection.Reduce(m.sel, selection.TogglePopover{FieldID: id})
}

func (m Model) copySelection() (tea.Model, tea.Cmd) {
	if m.sel.Empty() {
		return m, nil
	}
	line := panelClipboardLine(m.sel.Cells, m.mode)
	if err := clipboard.WriteAll(line); err != nil {
		debug.Log("clipboard write failed: %v", err)
		return m.flashStatus("copy failed")
	}
	return m.flashStatus("copied")
}

func (m Model) flashStatus(s string) (tea.Model, tea.Cmd) {
	m.status = s
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func nextMode(mode compute.Mode) compute.Mode {
	for i, mo := range compute.Modes {
		if mo == mode {
			return compute.Modes[(i+1)%len(compute.Modes)]
		}
	}
	return compute.ModeSum
}

// ══════════════════════════════════════════════════════════════════════════════
// CURSOR
// ══════════════════════════════════════════════════════════════════════════════

// selectableColumns returns the indices of selectable columns.
func (m *Model) selectableColumns() []int {
	var out []int
	for i, c := range m.table.columns {
		if c.selectable {
			out = append(out, i)
		}
	}
	return out
}

// moveCursor walks the cursor across issue rows and selectable columns,
// skipping group and summary rows vertically.
func (m *Model) moveCursor(dRow, dCol int) {
	cols := m.selectableColumns()
	if len(cols) == 0 || len(m.table.rows) == 0 {
		return
	}

	if dCol != 0 {
		m.cursorCol = clampInt(m.cursorCol+dCol, 0, len(cols)-1)
	}
	if dRow != 0 {
		row := m.cursorRow
		for {
			row += dRow
			if row < 0 || row >= len(m.table.rows) {
				break
			}
			if m.table.rows[row].kind == rowIssue {
				m.cursorRow = row
				break
			}
		}
	}
	m.ensureCursorVisible()
}

// moveCursorTo aligns the keyboard cursor with a clicked cell.
func (m *Model) moveCursorTo(cell model.Cell) {
	for i, row := range m.table.rows {
		if row.kind == rowIssue && row.issue.ID == cell.IssueID {
			m.cursorRow = i
			break
		}
	}
	for i, ci := range m.selectableColumns() {
		if m.table.columns[ci].field == cell.Field {
			m.cursorCol = i
			break
		}
	}
}

// cursorCell resolves the keyboard cursor to a cell and its bounds.
func (m *Model) cursorCell() (model.Cell, selection.Rect, bool) {
	if m.cursorRow < 0 || m.cursorRow >= len(m.table.rows) {
		return model.Cell{}, selection.Rect{}, false
	}
	row := m.table.rows[m.cursorRow]
	if row.kind != rowIssue {
		return model.Cell{}, selection.Rect{}, false
	}
	cols := m.selectableColumns()
	if m.cursorCol >= len(cols) {
		return model.Cell{}, selection.Rect{}, false
	}
	col := m.table.columns[cols[m.cursorCol]]
	cell, ok := cellFor(*row.issue, col.field)
	if !ok {
		return model.Cell{}, selection.Rect{}, false
	}
	bounds := selection.Rect{X: col.x, Y: headerLines + m.cursorRow - m.scroll, W: col.w, H: 1}
	return cell, bounds, true
}

func (m *Model) clampCursor() {
	if len(m.table.rows) == 0 {
		m.cursorRow = 0
		return
	}
	m.cursorRow = clampInt(m.cursorRow, 0, len(m.table.rows)-1)
	// Settle on an issue row when possible.
	if m.table.rows[m.cursorRow].kind != rowIssue {
		for i, row := range m.table.rows {
			if row.kind == rowIssue {
				m.cursorRow = i
				break
			}
		}
	}
	m.scroll = clampInt(m.scroll, 0, m.maxScroll())
}

func (m *Model) ensureCursorVisible() {
	visible := m.bodyHeight()
	if visible <= 0 {
		return
	}
	if m.cursorRow < m.scroll {
		m.scroll = m.cursorRow
	}
	if m.cursorRow >= m.scroll+visible {
		m.scroll = m.cursorRow - visible + 1
	}
}

func (m Model) bodyHeight() int {
	h := m.height - headerLines - 1 // footer
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) maxScroll() int {
	ms := len(m.table.rows) - m.bodyHeight()
	if ms < 0 {
		return 0
	}
	return ms
}

// ══════════════════════════════════════════════════════════════════════════════
// VIEW
// ══════════════════════════════════════════════════════════════════════════════

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.phase == phaseGate {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.gate.View())
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.table.renderHeader(m.theme))
	b.WriteString("\n")
	b.WriteString(RenderDivider(m.theme, m.width))
	b.WriteString("\n")

	cursor, _, hasCursor := m.cursorCell()
	end := min(len(m.table.rows), m.scroll+m.bodyHeight())
	for i := m.scroll; i < end; i++ {
		b.WriteString(m.table.renderRow(m.theme, m.table.rows[i], m.sel, cursor, hasCursor))
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())

	view := b.String()
	view = m.overlayCalculator(view)
	view = m.overlayPanel(view)
	view = m.overlayPopover(view)
	return view
}

func (m Model) renderTitle() string {
	title := m.theme.PrimaryBold.Render("workdeck")
	source := "sample project"
	if m.cfg.Data.Path != "" {
		source = m.cfg.Data.Path
	}
	return title + m.theme.MutedText.Render("  "+source)
}

func (m Model) renderFooter() string {
	parts := []string{
		fmt.Sprintf("%d selected", len(m.sel.Cells)),
		"mode " + m.mode.Label(),
		"space select · enter panel · 1-0/t charts · y copy · q quit",
	}
	if m.status != "" {
		parts = append([]string{m.theme.GoodText.Render(m.status)}, parts...)
	}
	return m.theme.MutedText.Render(truncate(strings.Join(parts, " · "), m.width))
}

// overlayCalculator shows the floating calculator hint next to the anchor
// cell while a selection exists and the panel is closed.
func (m Model) overlayCalculator(view string) string {
	if m.sel.Empty() || !m.sel.HasAnchor || m.sel.PanelOpen {
		return view
	}
	vp := selection.Viewport{Width: m.width, Height: m.height}
	pos := selection.CalculatorPos(vp, m.sel.Anchor)
	badge := m.theme.Cursor.Render(" Σ ")
	return overlay(view, badge, pos.X, pos.Y)
}

func (m Model) overlayPanel(view string) string {
	if !m.sel.PanelOpen || m.sel.Empty() {
		return view
	}
	vp := selection.Viewport{Width: m.width, Height: m.height}
	calc := selection.CalculatorPos(vp, m.sel.Anchor)
	pos := selection.PanelPos(vp, calc, panelHeight(m.sel.Cells))
	panel := renderPanel(m.theme, m.sel.Cells, m.mode)
	return overlay(view, panel, pos.X, pos.Y)
}

func (m Model) overlayPopover(view string) string {
	if m.sel.OpenPopover == "" {
		return view
	}
	rendered := renderPopover(m.theme, m.sel.OpenPopover, m.issues, m.today)
	if rendered == "" {
		return view
	}
	vp := selection.Viewport{Width: m.width, Height: m.height}

	// Anchor on the column when the popover belongs to one, otherwise on
	// the right edge of the header.
	anchor := selection.Rect{X: m.width - 1, Y: 1, W: 1, H: 1}
	kind, _, _ := strings.Cut(m.sel.OpenPopover, "-")
	for _, c := range m.table.columns {
		if string(c.field) == kind {
			anchor = selection.Rect{X: c.x, Y: 1, W: c.w, H: 1}
			break
		}
	}
	pos := selection.PopoverPos(vp, anchor, popoverHeight(rendered))
	return overlay(view, rendered, pos.X, pos.Y)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
