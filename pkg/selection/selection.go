// Package selection owns the cell-selection state machine and the floating
// panel geometry that follows it. State is immutable from the caller's view:
// Reduce returns a new State for every event and never mutates its input,
// so the UI layer can treat transitions as atomic and diff old against new.
package selection

import "github.com/vanderheijden86/workdeck/pkg/model"

// State is the full selection and floating-panel state. The zero value is
// the empty state: nothing selected, no panel, no popover.
type State struct {
	Cells        []model.Cell // insertion order, homogeneous DataType
	LastSelected model.Cell
	HasLast      bool

	Anchor    Rect // bounds of the last interacted cell
	HasAnchor bool

	PanelOpen   bool
	OpenPopover string // composite fieldID, "" when closed
}

// Empty reports whether nothing is selected.
func (s State) Empty() bool { return len(s.Cells) == 0 }

// Contains reports whether the selection holds the given cell.
func (s State) Contains(c model.Cell) bool {
	for _, sc := range s.Cells {
		if sc.Same(c) {
			return true
		}
	}
	return false
}

// Event is a user input the reducer understands.
type Event interface{ isEvent() }

// Click replaces the selection with the clicked cell.
type Click struct {
	Cell   model.Cell
	Bounds Rect
}

// CtrlClick toggles the clicked cell's membership. Adding a cell whose
// DataType differs from the current selection is a silent no-op.
type CtrlClick struct {
	Cell   model.Cell
	Bounds Rect
}

// ShiftClick extends the selection from the last-selected cell to the
// clicked cell across FieldCells, the full visual-order cell list for the
// clicked field. Selections on other fields are kept.
type ShiftClick struct {
	Cell       model.Cell
	Bounds     Rect
	FieldCells []model.Cell
}

// ClickOutside clears everything: selection, panel, popover, anchor.
type ClickOutside struct{}

// Clear clears the selection and panel but leaves a popover alone.
type Clear struct{}

// OpenPanel opens the computation panel for the current selection.
type OpenPanel struct{}

// ClosePanel closes the computation panel, keeping the selection.
type ClosePanel struct{}

// TogglePopover opens the chart popover for a fieldID, or closes it when
// that same fieldID is already open. A different fieldID replaces the open
// one, so at most one popover exists at a time.
type TogglePopover struct {
	FieldID string
}

func (Click) isEvent()         {}
func (CtrlClick) isEvent()     {}
func (ShiftClick) isEvent()    {}
func (ClickOutside) isEvent()  {}
func (Clear) isEvent()         {}
func (OpenPanel) isEvent()     {}
func (ClosePanel) isEvent()    {}
func (TogglePopover) isEvent() {}

// Reduce applies one event to the state. Unknown events return the state
// unchanged.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case Click:
		s.Cells = []model.Cell{e.Cell}
		s.LastSelected = e.Cell
		s.HasLast = true
		s.Anchor = e.Bounds
		s.HasAnchor = true
		s.PanelOpen = false
		return s

	case CtrlClick:
		return reduceCtrlClick(s, e)

	case ShiftClick:
		return reduceShiftClick(s, e)

	case ClickOutside:
		return State{}

	case Clear:
		s.Cells = nil
		s.HasLast = false
		s.LastSelected = model.Cell{}
		s.HasAnchor = false
		s.Anchor = Rect{}
		s.PanelOpen = false
		return s

	case OpenPanel:
		if !s.Empty() {
			s.PanelOpen = true
		}
		return s

	case ClosePanel:
		s.PanelOpen = false
		return s

	case TogglePopover:
		if s.OpenPopover == e.FieldID {
			s.OpenPopover = ""
		} else {
			s.OpenPopover = e.FieldID
		}
		return s
	}
	return s
}

func reduceCtrlClick(s State, e CtrlClick) State {
	if s.Contains(e.Cell) {
		kept := make([]model.Cell, 0, len(s.Cells)-1)
		for _, c := range s.Cells {
			if !c.Same(e.Cell) {
				kept = append(kept, c)
			}
		}
		s.Cells = kept
		if len(kept) == 0 {
			return Reduce(s, Clear{})
		}
		if s.LastSelected.Same(e.Cell) {
			s.LastSelected = kept[len(kept)-1]
		}
		return s
	}

	// Additions must keep the selection type-homogeneous.
	for _, c := range s.Cells {
		if c.DataType != e.Cell.DataType {
			return s
		}
	}
	s.Cells = append(append([]model.Cell(nil), s.Cells...), e.Cell)
	s.LastSelected = e.Cell
	s.HasLast = true
	s.Anchor = e.Bounds
	s.HasAnchor = true
	return s
}

func reduceShiftClick(s State, e ShiftClick) State {
	if !s.HasLast || s.LastSelected.Field != e.Cell.Field {
		return s
	}
	from, to := -1, -1
	for i, c := range e.FieldCells {
		if c.Same(s.LastSelected) {
			from = i
		}
		if c.Same(e.Cell) {
			to = i
		}
	}
	if from < 0 || to < 0 {
		return s
	}
	if from > to {
		from, to = to, from
	}

	// Keep selections on other fields, replace this field's with the range.
	kept := make([]model.Cell, 0, len(s.Cells)+to-from+1)
	for _, c := range s.Cells {
		if c.Field != e.Cell.Field {
			kept = append(kept, c)
		}
	}
	kept = append(kept, e.FieldCells[from:to+1]...)
	s.Cells = kept
	s.LastSelected = e.Cell
	s.HasLast = true
	s.Anchor = e.Bounds
	s.HasAnchor = true
	return s
}
