package selection_test

import (
	"fmt"
	"testing"

	"github.com/vanderheijden86/workdeck/pkg/model"
	"github.com/vanderheijden86/workdeck/pkg/selection"
	"pgregory.net/rapid"
)

func dateCell(issueID string) model.Cell {
	return model.Cell{
		IssueID: issueID, Field: model.FieldStartDate,
		Value: "2024-01-01", DataType: model.TypeDate, DisplayValue: "Jan 1, 2024",
	}
}

func budgetCell(issueID string) model.Cell {
	return model.Cell{
		IssueID: issueID, Field: model.FieldBudget,
		Value: 1000.0, DataType: model.TypeCurrency, DisplayValue: "$1,000",
	}
}

func TestPlainClickReplacesSelection(t *testing.T) {
	s := selection.Reduce(selection.State{}, selection.Click{Cell: dateCell("1")})
	s = selection.Reduce(s, selection.CtrlClick{Cell: dateCell("2")})
	s = selection.Reduce(s, selection.Click{Cell: dateCell("3")})

	if len(s.Cells) != 1 || s.Cells[0].IssueID != "3" {
		t.Errorf("plain click should replace selection, got %d cells", len(s.Cells))
	}
	if !s.HasLast || s.LastSelected.IssueID != "3" {
		t.Error("plain click should move the last-selected pointer")
	}
	if !s.HasAnchor {
		t.Error("plain click should anchor the calculator")
	}
}

func TestCtrlClickTogglesMembership(t *testing.T) {
	s := selection.Reduce(selection.State{}, selection.Click{Cell: dateCell("1")})
	s = selection.Reduce(s, selection.CtrlClick{Cell: dateCell("2")})
	if len(s.Cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(s.Cells))
	}

	s = selection.Reduce(s, selection.CtrlClick{Cell: dateCell("2")})
	if len(s.Cells) != 1 || s.Cells[0].IssueID != "1" {
		t.Errorf("ctrl-click on a member should remove it, got %d cells", len(s.Cells))
	}
}

func TestCtrlClickRemovalToEmptyClearsState(t *testing.T) {
	s := selection.Reduce(selection.State{}, selection.Click{Cell: dateCell("1")})
	s = selection.Reduce(s, selection.CtrlClick{Cell: dateCell("1")})

	if !s.Empty() {
		t.Fatal("removing the only cell should empty the selection")
	}
	if s.HasLast || s.HasAnchor || s.PanelOpen {
		t.Error("emptying via ctrl-click should drop pointer, anchor and panel state")
	}
}

func TestCtrlClickRejectsMixedTypes(t *testing.T) {
	s := selection.Reduce(selection.State{}, selection.Click{Cell: dateCell("1")})
	before := len(s.Cells)
	s = selection.Reduce(s, selection.CtrlClick{Cell: budgetCell("2")})

	if len(s.Cells) != before {
		t.Errorf("mixed-type ctrl-click must be a no-op, got %d cells", len(s.Cells))
	}
	if s.Contains(budgetCell("2")) {
		t.Error("mismatched cell must not enter the selection")
	}
}

// Starting from any empty state, arbitrary ctrl-click sequences across two
// data types only ever accumulate cells matching the first added type, and
// rejected clicks leave the selection length unchanged.
func TestCtrlClickTypeHomogeneityInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := selection.State{}
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		var firstType model.DataType

		for i := 0; i < steps; i++ {
			id := fmt.Sprintf("%d", rapid.IntRange(1, 10).Draw(t, "id"))
			var cell model.Cell
			if rapid.Bool().Draw(t, "useDate") {
				cell = dateCell(id)
			} else {
				cell = budgetCell(id)
			}

			before := len(s.Cells)
			adding := !s.Contains(cell)
			s = selection.Reduce(s, selection.CtrlClick{Cell: cell})

			if s.Empty() {
				firstType = ""
				continue
			}
			if firstType == "" {
				firstType = s.Cells[0].DataType
			}
			for _, c := range s.Cells {
				if c.DataType != firstType {
					t.Fatalf("selection contains %q among %q cells", c.DataType, firstType)
				}
			}
			if adding && cell.DataType != firstType && len(s.Cells) != before {
				t.Fatalf("rejected click changed selection length %d -> %d", before, len(s.Cells))
			}
		}
	})
}

func TestShiftClickSelectsInclusiveRange(t *testing.T) {
	field := make([]model.Cell, 10)
	for i := range field {
		field[i] = dateCell(fmt.Sprintf("%d", i))
	}

	s := selection.Reduce(selection.State{}, selection.Click{Cell: field[2]})
	// A pre-existing selection on another field must survive the range merge.
	s.Cells = append(s.Cells, budgetCell("9"))

	s = selection.Reduce(s, selection.ShiftClick{Cell: field[5], FieldCells: field})

	var rangeCells, otherCells int
	for _, c := range s.Cells {
		if c.Field == model.FieldStartDate {
			rangeCells++
		} else {
			otherCells++
		}
	}
	if rangeCells != 4 {
		t.Errorf("range cells = %d, want 4 (rows 2-5 inclusive)", rangeCells)
	}
	if otherCells != 1 {
		t.Errorf("other-field cells = %d, want 1 (merge, not replace)", otherCells)
	}
	for i := 2; i <= 5; i++ {
		if !s.Contains(field[i]) {
			t.Errorf("row %d missing from range selection", i)
		}
	}
}

func TestShiftClickReversedAnchor(t *testing.T) {
	field := make([]model.Cell, 10)
	for i := range field {
		field[i] = dateCell(fmt.Sprintf("%d", i))
	}
	s := selection.Reduce(selection.State{}, selection.Click{Cell: field[7]})
	s = selection.Reduce(s, selection.ShiftClick{Cell: field[3], FieldCells: field})

	if len(s.Cells) != 5 {
		t.Errorf("cells = %d, want 5 (rows 3-7)", len(s.Cells))
	}
}

func TestShiftClickNoAnchorIsNoop(t *testing.T) {
	field := []model.Cell{dateCell("1"), dateCell("2")}
	s := selection.Reduce(selection.State{}, selection.ShiftClick{Cell: field[1], FieldCells: field})
	if !s.Empty() {
		t.Error("shift-click without a last-selected cell must be a no-op")
	}
}

func TestShiftClickDifferentFieldIsNoop(t *testing.T) {
	s := selection.Reduce(selection.State{}, selection.Click{Cell: dateCell("1")})
	field := []model.Cell{budgetCell("1"), budgetCell("2")}
	got := selection.Reduce(s, selection.ShiftClick{Cell: field[1], FieldCells: field})
	if len(got.Cells) != 1 || !got.Cells[0].Same(dateCell("1")) {
		t.Error("cross-field shift-click must leave the selection unchanged")
	}
}

func TestShiftClickMissingEndpointIsNoop(t *testing.T) {
	s := selection.Reduce(selection.State{}, selection.Click{Cell: dateCell("99")})
	field := []model.Cell{dateCell("1"), dateCell("2")}
	got := selection.Reduce(s, selection.ShiftClick{Cell: field[1], FieldCells: field})
	if len(got.Cells) != 1 {
		t.Error("shift-click with an absent anchor endpoint must be a no-op")
	}
}

func TestClickOutsideClearsEverything(t *testing.T) {
	s := selection.Reduce(selection.State{}, selection.Click{Cell: dateCell("1")})
	s = selection.Reduce(s, selection.OpenPanel{})
	s = selection.Reduce(s, selection.TogglePopover{FieldID: model.FieldID("budget", model.GlobalScope)})

	s = selection.Reduce(s, selection.ClickOutside{})
	if !s.Empty() || s.PanelOpen || s.OpenPopover != "" || s.HasAnchor || s.HasLast {
		t.Errorf("click outside must reset to the zero state, got %+v", s)
	}
}

func TestOpenPanelRequiresSelection(t *testing.T) {
	s := selection.Reduce(selection.State{}, selection.OpenPanel{})
	if s.PanelOpen {
		t.Error("panel must not open on an empty selection")
	}
}

func TestPopoverToggle(t *testing.T) {
	a := model.FieldID("budget", model.GlobalScope)
	b := model.FieldID("budget", "assignee-1")

	s := selection.Reduce(selection.State{}, selection.TogglePopover{FieldID: a})
	if s.OpenPopover != a {
		t.Fatalf("OpenPopover = %q, want %q", s.OpenPopover, a)
	}
	s = selection.Reduce(s, selection.TogglePopover{FieldID: a})
	if s.OpenPopover != "" {
		t.Errorf("second toggle of the same fieldID must close, got %q", s.OpenPopover)
	}

	s = selection.Reduce(s, selection.TogglePopover{FieldID: a})
	s = selection.Reduce(s, selection.TogglePopover{FieldID: b})
	if s.OpenPopover != b {
		t.Errorf("toggling a second fieldID must leave exactly that one open, got %q", s.OpenPopover)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	orig := selection.Reduce(selection.State{}, selection.Click{Cell: dateCell("1")})
	snapshot := len(orig.Cells)

	_ = selection.Reduce(orig, selection.CtrlClick{Cell: dateCell("2")})
	_ = selection.Reduce(orig, selection.ClickOutside{})

	if len(orig.Cells) != snapshot || orig.Cells[0].IssueID != "1" {
		t.Error("Reduce must not mutate the input state")
	}
}

func TestCalculatorPosClamping(t *testing.T) {
	vp := selection.Viewport{Width: 80, Height: 24}

	p := selection.CalculatorPos(vp, selection.Rect{X: 10, Y: 5, W: 12, H: 1})
	if p.X != 10+12+selection.CalcGap {
		t.Errorf("X = %d, want %d", p.X, 10+12+selection.CalcGap)
	}

	// A cell hugging the right edge clamps the button inside the margin.
	p = selection.CalculatorPos(vp, selection.Rect{X: 74, Y: 5, W: 6, H: 1})
	if max := vp.Width - selection.CalcWidth - selection.EdgeMargin; p.X != max {
		t.Errorf("clamped X = %d, want %d", p.X, max)
	}
}

func TestPanelPosFlipsLeft(t *testing.T) {
	vp := selection.Viewport{Width: 80, Height: 24}

	// Button far left: panel opens to the right.
	p := selection.PanelPos(vp, selection.Point{X: 5, Y: 3}, 10)
	if p.X != 5+selection.CalcWidth+selection.PanelGap {
		t.Errorf("right-side X = %d", p.X)
	}

	// Button far right: panel flips to the left.
	p = selection.PanelPos(vp, selection.Point{X: 70, Y: 3}, 10)
	if want := 70 - selection.PanelGap - selection.PanelWidth; p.X != want {
		t.Errorf("flipped X = %d, want %d", p.X, want)
	}
}

func TestPanelPosPinsOnNarrowViewport(t *testing.T) {
	vp := selection.Viewport{Width: 50, Height: 24}
	p := selection.PanelPos(vp, selection.Point{X: 20, Y: 3}, 10)
	if p.X < selection.EdgeMargin || p.X+selection.PanelWidth > vp.Width {
		t.Errorf("panel not pinned inside viewport: X = %d", p.X)
	}
}

func TestPopoverPosVerticalClamp(t *testing.T) {
	vp := selection.Viewport{Width: 120, Height: 24}
	p := selection.PopoverPos(vp, selection.Rect{X: 100, Y: 20, W: 10, H: 1}, 15)
	if p.Y+15 > vp.Height {
		t.Errorf("popover overflows the bottom: Y = %d", p.Y)
	}
	if p.Y < 0 {
		t.Errorf("popover above the top: Y = %d", p.Y)
	}
}

// Positions always land fully inside the viewport, whatever the anchor.
func TestPositionsAlwaysInViewport(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		vp := selection.Viewport{
			Width:  rapid.IntRange(60, 300).Draw(t, "w"),
			Height: rapid.IntRange(20, 100).Draw(t, "h"),
		}
		cell := selection.Rect{
			X: rapid.IntRange(0, vp.Width).Draw(t, "x"),
			Y: rapid.IntRange(0, vp.Height).Draw(t, "y"),
			W: rapid.IntRange(1, 30).Draw(t, "cw"),
			H: 1,
		}
		calc := selection.CalculatorPos(vp, cell)
		if calc.X < 0 || calc.X+selection.CalcWidth > vp.Width {
			t.Fatalf("calculator out of viewport: %+v in %+v", calc, vp)
		}
		panel := selection.PanelPos(vp, calc, 10)
		if panel.X < 0 || panel.X+selection.PanelWidth > vp.Width {
			t.Fatalf("panel out of viewport: %+v in %+v", panel, vp)
		}
	})
}
