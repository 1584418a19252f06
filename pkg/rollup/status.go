package rollup

import "github.com/vanderheijden86/workdeck/pkg/model"

// StatusSummary is the status distribution for a set of issues.
type StatusSummary struct {
	TodoCount       int
	InProgressCount int
	DoneCount       int
	Total           int
	Segments        []Segment // empty when Total == 0
}

// StatusDistribution partitions issues by status. Segments cover the input
// exactly: every issue with a defined status lands in exactly one segment,
// so the segment values always sum to the counted total.
func StatusDistribution(issues []model.Issue) StatusSummary {
	var s StatusSummary
	for _, is := range issues {
		switch is.Status {
		case model.StatusTodo:
			s.TodoCount++
		case model.StatusInProgress:
			s.InProgressCount++
		case model.StatusDone:
			s.DoneCount++
		default:
			continue
		}
		s.Total++
	}
	if s.Total == 0 {
		return s
	}
	s.Segments = []Segment{
		{Value: float64(s.TodoCount), Color: ColorTodo, Label: "To do"},
		{Value: float64(s.InProgressCount), Color: ColorInProgress, Label: "In progress"},
		{Value: float64(s.DoneCount), Color: ColorDone, Label: "Done"},
	}
	return s
}
