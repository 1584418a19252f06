// Package compute holds the stateless aggregation primitives behind the
// computation panel: date-range reduction, numeric reductions, display
// formatting, and selection grouping. Everything here is pure and total:
// malformed input degrades to a "no data" result or zero, never an error.
package compute

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/workdeck/pkg/model"
)

// Mode selects the numeric reduction applied to a selection.
type Mode string

const (
	ModeSum         Mode = "sum"
	ModeAverage     Mode = "average"
	ModeRange       Mode = "range"
	ModeCount       Mode = "count"
	ModeCountUnique Mode = "countUnique"
)

// Modes lists the selectable reductions in panel order.
var Modes = []Mode{ModeSum, ModeAverage, ModeRange, ModeCount, ModeCountUnique}

// Label returns the panel caption for the mode's result line.
func (m Mode) Label() string {
	switch m {
	case ModeSum:
		return "Total"
	case ModeAverage:
		return "Average"
	case ModeRange:
		return "Range"
	case ModeCount:
		return "Count"
	case ModeCountUnique:
		return "Unique values"
	default:
		return string(m)
	}
}

// DateRangeResult is the outcome of a date-range reduction. Earliest and
// Latest are empty when no input date parsed; DifferenceInDays is -1 in
// that case (the "no data" sentinel, distinct from a genuine 0-day range).
type DateRangeResult struct {
	Earliest         string
	Latest           string
	DifferenceInDays int
	TotalValid       int
}

// HasData reports whether at least one input date was parsable.
func (r DateRangeResult) HasData() bool { return r.TotalValid > 0 }

// DateRange reduces a list of ISO date strings to the earliest date, the
// latest date, and the day span between them. Unparsable entries are
// dropped; if none survive the result is the no-data sentinel. A single
// valid date yields itself as both endpoints with a 0-day span.
func DateRange(dates []string) DateRangeResult {
	var parsed []time.Time
	for _, s := range dates {
		if t, ok := model.ParseDate(s); ok {
			parsed = append(parsed, t)
		}
	}
	if len(parsed) == 0 {
		return DateRangeResult{DifferenceInDays: -1}
	}

	earliest, latest := parsed[0], parsed[0]
	for _, t := range parsed[1:] {
		if t.Before(earliest) {
			earliest = t
		}
		if t.After(latest) {
			latest = t
		}
	}
	return DateRangeResult{
		Earliest:         earliest.Format("2006-01-02"),
		Latest:           latest.Format("2006-01-02"),
		DifferenceInDays: model.DaysBetween(earliest, latest),
		TotalValid:       len(parsed),
	}
}

// Numerical applies the reduction named by mode after filtering non-finite
// values. Empty or all-invalid input yields 0 for every mode; NaN and Inf
// never escape to a caller.
func Numerical(numbers []float64, mode Mode) float64 {
	valid := numbers[:0:0]
	for _, n := range numbers {
		if !math.IsNaN(n) && !math.IsInf(n, 0) {
			valid = append(valid, n)
		}
	}
	if len(valid) == 0 {
		return 0
	}

	switch mode {
	case ModeSum:
		return floats.Sum(valid)
	case ModeAverage:
		return stat.Mean(valid, nil)
	case ModeRange:
		return floats.Max(valid) - floats.Min(valid)
	case ModeCount:
		return float64(len(valid))
	case ModeCountUnique:
		seen := make(map[float64]struct{}, len(valid))
		for _, n := range valid {
			seen[n] = struct{}{}
		}
		return float64(len(seen))
	default:
		return 0
	}
}

// Variance returns the population variance of values, 0 for empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) == 1 {
		return 0
	}
	// stat.Variance is the sample variance; rescale to population.
	v := stat.Variance(values, nil)
	return v * float64(len(values)-1) / float64(len(values))
}

// FormatNumber renders a value for display according to its data type:
// currency as a whole-dollar en-US string, fractional numbers with two
// decimals, everything else as a plain integer. Display-only; the stored
// value is never rounded.
func FormatNumber(value float64, dataType model.DataType) string {
	if dataType == model.TypeCurrency {
		return FormatCurrency(value)
	}
	if dataType == model.TypeNumber && value != math.Trunc(value) {
		return strconv.FormatFloat(value, 'f', 2, 64)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FormatCurrency renders a whole-dollar amount with comma grouping, e.g.
// -1234.56 -> "-$1,235".
func FormatCurrency(amount float64) string {
	neg := amount < 0
	n := int64(math.Round(math.Abs(amount)))

	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// FormatDate renders an ISO date for display ("Jan 2, 2006" style).
// Unparsable input is returned unchanged.
func FormatDate(iso string) string {
	t, ok := model.ParseDate(iso)
	if !ok {
		return iso
	}
	return t.Format("Jan 2, 2006")
}

// FormatHours renders an hour quantity the way table rows do.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// CellGroup is a run of selected cells sharing one (field, data type) pair.
type CellGroup struct {
	Field    model.Field
	DataType model.DataType
	Cells    []model.Cell
}

// Key returns the grouping key. Collisions only occur for identical
// (field, type) pairs, which is intentional: the computation panel renders
// one summary block per distinct pair.
func (g CellGroup) Key() string {
	return fmt.Sprintf("%s-%s", g.Field, g.DataType)
}

// GroupCells partitions a selection by (field, data type), preserving the
// order in which each group first appears so panel blocks render stably.
func GroupCells(cells []model.Cell) []CellGroup {
	var groups []CellGroup
	index := make(map[string]int)
	for _, c := range cells {
		key := string(c.Field) + "-" + string(c.DataType)
		if i, ok := index[key]; ok {
			groups[i].Cells = append(groups[i].Cells, c)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, CellGroup{Field: c.Field, DataType: c.DataType, Cells: []model.Cell{c}})
	}
	return groups
}

// NumericValues extracts the float values from a cell group, dropping
// anything that does not parse as a number.
func NumericValues(cells []model.Cell) []float64 {
	var out []float64
	for _, c := range cells {
		switch v := c.Value.(type) {
		case float64:
			out = append(out, v)
		case int:
			out = append(out, float64(v))
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				out = append(out, f)
			}
		}
	}
	return out
}

// DateValues extracts the raw date strings from a cell group.
func DateValues(cells []model.Cell) []string {
	var out []string
	for _, c := range cells {
		if s, ok := c.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
