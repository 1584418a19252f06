package rollup

import "github.com/vanderheijden86/workdeck/pkg/model"

// TrackingSeverity grades the buffer between the soft target date and the
// hard due date. A week or more of slack is low risk, under three days high.
type TrackingSeverity string

const (
	TrackLow    TrackingSeverity = "low"
	TrackMedium TrackingSeverity = "medium"
	TrackHigh   TrackingSeverity = "high"
)

// TrackingStatus is the per-issue tracking grade.
type TrackingStatus struct {
	BufferDays int
	Severity   TrackingSeverity
	Label      string
}

// GradeTracking grades the target-to-due buffer for one issue. Issues
// missing either date yield ok == false and are excluded from the rollup.
func GradeTracking(is model.Issue) (TrackingStatus, bool) {
	target, ok1 := model.ParseDate(is.TargetDate)
	due, ok2 := model.ParseDate(is.DueDate)
	if !ok1 || !ok2 {
		return TrackingStatus{}, false
	}
	buffer := model.DaysBetween(target, due)
	t := TrackingStatus{BufferDays: buffer}
	switch {
	case buffer >= 7:
		t.Severity, t.Label = TrackLow, "On track"
	case buffer >= 3:
		t.Severity, t.Label = TrackMedium, "At risk"
	default:
		t.Severity, t.Label = TrackHigh, "Off track"
	}
	return t, true
}

// TrackingSummary distributes issues across the tracking grades.
type TrackingSummary struct {
	OnTrack  int
	AtRisk   int
	OffTrack int
	Total    int
	Health   TrackingSeverity // worst grade present
	Segments []Segment
}

// HasData reports whether any issue had both dates set.
func (s TrackingSummary) HasData() bool { return s.Total > 0 }

// ComputeTrackingSummary grades every issue's schedule buffer. The overall
// health is the worst grade that occurs: any off-track issue makes the whole
// set high risk.
func ComputeTrackingSummary(issues []model.Issue) TrackingSummary {
	var s TrackingSummary
	for _, is := range issues {
		t, ok := GradeTracking(is)
		if !ok {
			continue
		}
		s.Total++
		switch t.Severity {
		case TrackLow:
			s.OnTrack++
		case TrackMedium:
			s.AtRisk++
		default:
			s.OffTrack++
		}
	}
	if s.Total == 0 {
		return s
	}
	switch {
	case s.OffTrack > 0:
		s.Health = TrackHigh
	case s.AtRisk > 0:
		s.Health = TrackMedium
	default:
		s.Health = TrackLow
	}
	s.Segments = []Segment{
		{Value: float64(s.OnTrack), Color: ColorDone, Label: "On track"},
		{Value: float64(s.AtRisk), Color: ColorWarn, Label: "At risk"},
		{Value: float64(s.OffTrack), Color: ColorDanger, Label: "Off track"},
	}
	return s
}
