package rollup

import "math"

// Segment is one input wedge for a pie chart: a value with its display
// color and label. Summaries produce []Segment; rendering collaborators
// (terminal legend, SVG/PNG export) consume the Slice geometry below.
type Segment struct {
	Value float64
	Color string
	Label string
}

// Slice is a Segment with resolved arc geometry. Angles are degrees with
// 0 at three o'clock; the chart starts at -90 (twelve o'clock) and runs
// clockwise, matching the dashboard's convention.
type Slice struct {
	Segment
	Percent    float64 // share of the total, 0..1
	StartAngle float64
	EndAngle   float64
	LargeArc   bool
}

// Pie resolves arc geometry for a segment list. Segments with value <= 0
// are dropped. A zero or negative total yields no slices, which renderers
// treat as the empty state. This is the single shared implementation of
// the per-chart angle math.
func Pie(segments []Segment) []Slice {
	var total float64
	for _, s := range segments {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total <= 0 {
		return nil
	}

	slices := make([]Slice, 0, len(segments))
	angle := -90.0
	for _, s := range segments {
		if s.Value <= 0 {
			continue
		}
		pct := s.Value / total
		sweep := pct * 360
		slices = append(slices, Slice{
			Segment:    s,
			Percent:    pct,
			StartAngle: angle,
			EndAngle:   angle + sweep,
			LargeArc:   sweep > 180,
		})
		angle += sweep
	}
	return slices
}

// ArcPoint returns the (x, y) position on a circle of the given radius
// around (cx, cy) at an angle in degrees.
func ArcPoint(cx, cy, radius, angleDeg float64) (float64, float64) {
	rad := angleDeg * math.Pi / 180
	return cx + radius*math.Cos(rad), cy + radius*math.Sin(rad)
}
