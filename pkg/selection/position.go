package selection

// Floating panel geometry, in terminal cells. The calculator button docks
// to the right of the last interacted cell; the computation panel opens to
// the right of the calculator, flips left when it would overflow, and as a
// last resort pins to the right edge. Chart popovers dock to the left of
// the clicked field header. Everything clamps; nothing refuses to render.

// Viewport is the drawable terminal area.
type Viewport struct {
	Width  int
	Height int
}

// Rect is a screen-space rectangle.
type Rect struct {
	X, Y, W, H int
}

// Point is a screen-space position.
type Point struct {
	X, Y int
}

const (
	// CalcWidth is the rendered width of the calculator button.
	CalcWidth = 5
	// CalcGap separates the button from its cell.
	CalcGap = 1
	// EdgeMargin is the minimum distance from either viewport edge.
	EdgeMargin = 2

	// PanelWidth is the computation panel's rendered width.
	PanelWidth = 42
	// PanelGap separates the panel from the calculator button.
	PanelGap = 1

	// PopoverWidth is the chart popover's rendered width.
	PopoverWidth = 44
	// PopoverGap separates the popover from its field column.
	PopoverGap = 1
)

// CalculatorPos places the calculator button next to a cell, clamped to
// stay at least EdgeMargin from both horizontal edges.
func CalculatorPos(vp Viewport, cell Rect) Point {
	x := cell.X + cell.W + CalcGap
	x = clamp(x, EdgeMargin, vp.Width-CalcWidth-EdgeMargin)
	return Point{X: x, Y: cell.Y}
}

// PanelPos places the computation panel relative to the calculator button.
// Preferred side is the right; if the panel would cross the right edge it
// flips to the left of the button, and if it fits on neither side it pins
// to the right edge.
func PanelPos(vp Viewport, calc Point, panelHeight int) Point {
	x := calc.X + CalcWidth + PanelGap
	if x+PanelWidth > vp.Width-EdgeMargin {
		x = calc.X - PanelGap - PanelWidth
	}
	if x < EdgeMargin {
		x = vp.Width - PanelWidth - EdgeMargin
		if x < EdgeMargin {
			x = EdgeMargin
		}
	}
	return Point{X: x, Y: clampY(vp, calc.Y, panelHeight)}
}

// PopoverPos places a chart popover to the left of a field column, falling
// back to the right of it when the left side has no room, then clamping
// into the viewport.
func PopoverPos(vp Viewport, field Rect, popHeight int) Point {
	x := field.X - PopoverGap - PopoverWidth
	if x < EdgeMargin {
		x = field.X + field.W + PopoverGap
	}
	x = clamp(x, EdgeMargin, vp.Width-PopoverWidth-EdgeMargin)
	return Point{X: x, Y: clampY(vp, field.Y, popHeight)}
}

// clampY keeps a panel of the given height fully on screen, preferring to
// slide it up rather than truncate at the bottom, never above the top.
func clampY(vp Viewport, y, height int) int {
	if y+height > vp.Height {
		y = vp.Height - height
	}
	if y < 0 {
		y = 0
	}
	return y
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
