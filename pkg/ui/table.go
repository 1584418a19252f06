package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/workdeck/pkg/compute"
	"github.com/vanderheijden86/workdeck/pkg/model"
	"github.com/vanderheijden86/workdeck/pkg/rollup"
	"github.com/vanderheijden86/workdeck/pkg/selection"
)

// Column widths in terminal cells. The summary column absorbs leftover
// width; everything else is fixed so cell hit-testing stays a lookup.
const (
	colKeyWidth      = 9
	colStatusWidth   = 6
	colAssigneeWidth = 14
	colDateWidth     = 13
	colBudgetWidth   = 10
	colPointsWidth   = 10
	colTimeWidth     = 11
	colSlippageWidth = 9
	colGap           = 1
	minSummaryWidth  = 16
)

type rowKind int

const (
	rowSummary rowKind = iota
	rowGroup
	rowIssue
)

// tableRow is one rendered line of the issue table.
type tableRow struct {
	kind     rowKind
	groupIdx int          // index into table.groups for rowGroup/rowIssue
	issue    *model.Issue // nil unless rowIssue
}

// column is a rendered table column with its horizontal extent.
type column struct {
	field      model.Field // "" for non-selectable columns
	label      string
	x, w       int
	selectable bool
}

// table lays out the grouped issue view and answers geometry queries:
// which cell sits under a screen coordinate, what rectangle a cell spans,
// and the visual-order cell list for a field (shift-range input).
type table struct {
	issues     []model.Issue
	groups     []rollup.Group
	groupStats []rollup.GroupStats
	global     rollup.GroupStats
	rows       []tableRow
	columns    []column

	expanded map[string]bool // group key -> expanded
	grouped  bool            // false renders a flat issue list, no group rows
	width    int
}

// headerLines is the number of lines above the first table row: the title
// bar, the column header, and its divider.
const headerLines = 3

func newTable(issues []model.Issue, width int) *table {
	t := &table{
		issues:   issues,
		expanded: make(map[string]bool),
		grouped:  true,
		width:    width,
	}
	t.rebuild()
	return t
}

func (t *table) setWidth(width int) {
	t.width = width
	t.layoutColumns()
}

func (t *table) setIssues(issues []model.Issue) {
	t.issues = issues
	t.rebuild()
}

func (t *table) toggleGroup(key string) {
	t.expanded[key] = !t.expanded[key]
	t.buildRows()
}

func (t *table) setGrouped(grouped bool) {
	t.grouped = grouped
	t.buildRows()
}

// groupRowIndex returns the row index of a group's header row, if shown.
func (t *table) groupRowIndex(key string) (int, bool) {
	for i, row := range t.rows {
		if row.kind == rowGroup && groupKey(t.groups[row.groupIdx]) == key {
			return i, true
		}
	}
	return 0, false
}

func (t *table) rebuild() {
	t.groups = rollup.GroupByAssignee(t.issues)
	t.global = rollup.ComputeGroupStats(t.issues)
	t.groupStats = make([]rollup.GroupStats, len(t.groups))
	for i, g := range t.groups {
		t.groupStats[i] = rollup.ComputeGroupStats(g.Issues)
	}

	// First load starts with every group expanded; collapse state is kept
	// across data reloads for groups that still exist.
	for _, g := range t.groups {
		if _, ok := t.expanded[groupKey(g)]; !ok {
			t.expanded[groupKey(g)] = true
		}
	}
	t.buildRows()
	t.layoutColumns()
}

func groupKey(g rollup.Group) string {
	if g.Assignee == nil {
		return "unassigned"
	}
	return g.Assignee.ID
}

func (t *table) buildRows() {
	rows := []tableRow{{kind: rowSummary}}
	for gi := range t.groups {
		if t.grouped {
			rows = append(rows, tableRow{kind: rowGroup, groupIdx: gi})
			if !t.expanded[groupKey(t.groups[gi])] {
				continue
			}
		}
		g := t.groups[gi]
		for ii := range g.Issues {
			rows = append(rows, tableRow{kind: rowIssue, groupIdx: gi, issue: &g.Issues[ii]})
		}
	}
	t.rows = rows
}

func (t *table) layoutColumns() {
	fixed := colKeyWidth + colStatusWidth + colAssigneeWidth +
		3*colDateWidth + colBudgetWidth + colPointsWidth + colTimeWidth + colSlippageWidth
	gaps := 10 * colGap
	summaryW := t.width - fixed - gaps
	if summaryW < minSummaryWidth {
		summaryW = minSummaryWidth
	}

	x := 0
	add := func(field model.Field, label string, w int, selectable bool) {
		t.columns = append(t.columns, column{field: field, label: label, x: x, w: w, selectable: selectable})
		x += w + colGap
	}

	t.columns = t.columns[:0]
	add("", "Key", colKeyWidth, false)
	add("", "Summary", summaryW, false)
	add("", "Status", colStatusWidth, false)
	add("", "Assignee", colAssigneeWidth, false)
	add(model.FieldStartDate, model.FieldStartDate.Label(), colDateWidth, true)
	add(model.FieldTargetDate, model.FieldTargetDate.Label(), colDateWidth, true)
	add(model.FieldDueDate, model.FieldDueDate.Label(), colDateWidth, true)
	add(model.FieldBudget, model.FieldBudget.Label(), colBudgetWidth, true)
	add(model.FieldStoryPoints, model.FieldStoryPoints.Label(), colPointsWidth, true)
	add(model.FieldTimeTracking, model.FieldTimeTracking.Label(), colTimeWidth, true)
	add(model.FieldSlippage, model.FieldSlippage.Label(), colSlippageWidth, true)
}

// columnFor returns the column containing screen x, if any.
func (t *table) columnFor(x int) (column, bool) {
	for _, c := range t.columns {
		if x >= c.x && x < c.x+c.w {
			return c, true
		}
	}
	return column{}, false
}

// rowAt maps a screen y (with scroll offset applied) to a table row.
func (t *table) rowAt(y, scroll int) (tableRow, int, bool) {
	idx := y - headerLines + scroll
	if idx < 0 || idx >= len(t.rows) {
		return tableRow{}, 0, false
	}
	return t.rows[idx], idx, true
}

// CellAt resolves a screen coordinate to a selectable cell and its bounds.
// Non-selectable columns, group rows, and empty cells all miss.
func (t *table) CellAt(x, y, scroll int) (model.Cell, selection.Rect, bool) {
	row, idx, ok := t.rowAt(y, scroll)
	if !ok || row.kind != rowIssue {
		return model.Cell{}, selection.Rect{}, false
	}
	col, ok := t.columnFor(x)
	if !ok || !col.selectable {
		return model.Cell{}, selection.Rect{}, false
	}
	cell, ok := cellFor(*row.issue, col.field)
	if !ok {
		return model.Cell{}, selection.Rect{}, false
	}
	bounds := selection.Rect{X: col.x, Y: headerLines + idx - scroll, W: col.w, H: 1}
	return cell, bounds, true
}

// HeaderFieldAt resolves a click on the column header line to a field and
// its column rectangle, for popover toggling.
func (t *table) HeaderFieldAt(x, y int) (model.Field, selection.Rect, bool) {
	if y != 1 {
		return "", selection.Rect{}, false
	}
	col, ok := t.columnFor(x)
	if !ok || !col.selectable {
		return "", selection.Rect{}, false
	}
	return col.field, selection.Rect{X: col.x, Y: y, W: col.w, H: 1}, true
}

// GroupRowAt reports whether the coordinate hits a group header row,
// returning the group key for expand/collapse toggling.
func (t *table) GroupRowAt(y, scroll int) (string, bool) {
	row, _, ok := t.rowAt(y, scroll)
	if !ok || row.kind != rowGroup {
		return "", false
	}
	return groupKey(t.groups[row.groupIdx]), true
}

// FieldCells returns every visible cell for a field, top to bottom. This is
// the visual order a shift-range walks.
func (t *table) FieldCells(field model.Field) []model.Cell {
	var cells []model.Cell
	for _, row := range t.rows {
		if row.kind != rowIssue {
			continue
		}
		if c, ok := cellFor(*row.issue, field); ok {
			cells = append(cells, c)
		}
	}
	return cells
}

// cellBounds returns the on-screen rectangle of a cell, if visible.
func (t *table) cellBounds(cell model.Cell, scroll int) (selection.Rect, bool) {
	var col column
	found := false
	for _, c := range t.columns {
		if c.field == cell.Field {
			col, found = c, true
			break
		}
	}
	if !found {
		return selection.Rect{}, false
	}
	for idx, row := range t.rows {
		if row.kind == rowIssue && row.issue.ID == cell.IssueID {
			return selection.Rect{X: col.x, Y: headerLines + idx - scroll, W: col.w, H: 1}, true
		}
	}
	return selection.Rect{}, false
}

// cellFor builds the selectable cell for an issue field. Issues without a
// value for the field have no cell there.
func cellFor(is model.Issue, field model.Field) (model.Cell, bool) {
	c := model.Cell{IssueID: is.ID, Field: field, DataType: field.Type()}

	switch field {
	case model.FieldStartDate, model.FieldTargetDate, model.FieldDueDate:
		var raw string
		switch field {
		case model.FieldStartDate:
			raw = is.StartDate
		case model.FieldTargetDate:
			raw = is.TargetDate
		default:
			raw = is.DueDate
		}
		if raw == "" {
			return model.Cell{}, false
		}
		c.Value = raw
		c.DisplayValue = compute.FormatDate(raw)

	case model.FieldBudget:
		if is.Budget <= 0 {
			return model.Cell{}, false
		}
		c.Value = is.Budget
		c.DisplayValue = compute.FormatCurrency(is.Budget)

	case model.FieldStoryPoints:
		if is.StoryPoints <= 0 {
			return model.Cell{}, false
		}
		c.Value = is.StoryPoints
		c.DisplayValue = compute.FormatNumber(is.StoryPoints, model.TypeNumber)

	case model.FieldTimeTracking:
		if is.TimeSpent <= 0 {
			return model.Cell{}, false
		}
		c.Value = is.TimeSpent
		c.DisplayValue = compute.FormatHours(is.TimeSpent)

	case model.FieldSlippage:
		days, _, ok := rollup.IssueSlippage(is)
		if !ok {
			return model.Cell{}, false
		}
		c.Value = float64(days)
		if days > 0 {
			c.DisplayValue = fmt.Sprintf("+%dd", days)
		} else {
			c.DisplayValue = fmt.Sprintf("%dd", days)
		}

	default:
		return model.Cell{}, false
	}
	return c, true
}

// ══════════════════════════════════════════════════════════════════════════════
// RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// renderHeader renders the column header line.
func (t *table) renderHeader(th Theme) string {
	var b strings.Builder
	for i, col := range t.columns {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
		label := fit(col.label, col.w)
		if col.selectable {
			b.WriteString(th.Header.Render(label))
		} else {
			b.WriteString(th.SecondaryText.Render(label))
		}
	}
	return b.String()
}

// renderRow renders one table row, highlighting selected cells and the
// keyboard cursor.
func (t *table) renderRow(th Theme, row tableRow, sel selection.State, cursor model.Cell, hasCursor bool) string {
	switch row.kind {
	case rowSummary:
		return t.renderSummaryRow(th)
	case rowGroup:
		return t.renderGroupRow(th, t.groups[row.groupIdx], t.groupStats[row.groupIdx])
	default:
		return t.renderIssueRow(th, *row.issue, sel, cursor, hasCursor)
	}
}

func (t *table) renderSummaryRow(th Theme) string {
	g := t.global
	line := fmt.Sprintf("All issues · %d items · %d%% complete · %s budget · %.0f pts",
		g.TotalCount, g.CompletionPercentage, compute.FormatCurrency(g.TotalBudget), g.TotalStoryPoints)
	return th.SummaryRow.Render(fit(line, t.width))
}

func (t *table) renderGroupRow(th Theme, g rollup.Group, stats rollup.GroupStats) string {
	marker := "▸"
	if t.expanded[groupKey(g)] {
		marker = "▾"
	}
	name := "Unassigned"
	if g.Assignee != nil {
		name = g.Assignee.Name
	}
	line := fmt.Sprintf("%s %s · %d %s · %d%% done",
		marker, name, stats.TotalCount, plural(stats.TotalCount, "issue", "issues"), stats.CompletionPercentage)
	return th.GroupRow.Render(fit(line, t.width))
}

func (t *table) renderIssueRow(th Theme, is model.Issue, sel selection.State, cursor model.Cell, hasCursor bool) string {
	var b strings.Builder
	for i, col := range t.columns {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
		b.WriteString(t.renderCell(th, is, col, sel, cursor, hasCursor))
	}
	return b.String()
}

func (t *table) renderCell(th Theme, is model.Issue, col column, sel selection.State, cursor model.Cell, hasCursor bool) string {
	var text string
	switch {
	case col.label == "Key":
		return th.SecondaryText.Render(fit(is.Key, col.w))
	case col.label == "Summary":
		return th.Base.Render(fit(is.Summary, col.w))
	case col.label == "Status":
		// Badges are a fixed 4 cells wide; pad manually since ANSI codes
		// defeat width-based padding.
		return RenderStatusBadge(th, string(is.Status)) + strings.Repeat(" ", col.w-4)
	case col.label == "Assignee":
		name := "—"
		if is.Assignee != nil {
			name = is.Assignee.Name
		}
		return th.MutedText.Render(fit(name, col.w))
	}

	cell, ok := cellFor(is, col.field)
	if !ok {
		return th.MutedText.Render(fit("—", col.w))
	}
	text = fit(cell.DisplayValue, col.w)

	switch {
	case hasCursor && cursor.Same(cell):
		return th.Cursor.Render(text)
	case sel.Contains(cell):
		return th.Selected.Render(text)
	case col.field == model.FieldSlippage:
		if days, ok := cell.Value.(float64); ok && days > 0 {
			if int(days) > rollup.SevereSlippageDays {
				return th.DangerText.Render(text)
			}
			return th.WarnText.Render(text)
		}
		return th.GoodText.Render(text)
	default:
		return th.Base.Render(text)
	}
}
