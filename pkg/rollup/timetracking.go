package rollup

import "github.com/vanderheijden86/workdeck/pkg/model"

// WeeklyCapacityHours is the standard capacity baseline per person.
const WeeklyCapacityHours = 40.0

// CapacityStatus classifies a person's workload against the weekly
// baseline: below 70% is under-allocated, above 110% over-allocated.
type CapacityStatus string

const (
	CapacityUnder   CapacityStatus = "under-allocated"
	CapacityOptimal CapacityStatus = "optimal"
	CapacityOver    CapacityStatus = "over-allocated"
)

// CategorizeCapacity applies the fixed capacity-utilization thresholds.
func CategorizeCapacity(usagePct float64) CapacityStatus {
	switch {
	case usagePct < 70:
		return CapacityUnder
	case usagePct > 110:
		return CapacityOver
	default:
		return CapacityOptimal
	}
}

// AssigneeTime is the raw per-person time-tracking accumulator.
type AssigneeTime struct {
	Assignee          *model.Assignee
	OriginalEstimate  float64
	TimeSpent         float64
	RemainingEstimate float64
	TotalIssues       int
	TodoIssues        int
	InProgressIssues  int
	CompletedIssues   int
}

// CapacityInsight extends AssigneeTime with derived utilization numbers.
type CapacityInsight struct {
	AssigneeTime
	Utilization    float64 // timeSpent/originalEstimate percent
	WorkloadHours  float64 // estimate + remaining
	CapacityUsage  float64 // workload vs weekly baseline, percent
	CapacityStatus CapacityStatus
	ActiveWorkload int // issues not yet done
}

// DeliveryRecord tallies early/on-time/late deliveries per person, over
// issues that have an actual completion date.
type DeliveryRecord struct {
	Assignee *model.Assignee
	Early    int
	OnTime   int
	Late     int
	Total    int
}

// TimeSummary is the time-tracking analytic for a set of issues.
type TimeSummary struct {
	TotalOriginalEstimate float64
	TotalTimeSpent        float64
	TotalRemaining        float64
	HoursUsedPercentage   float64
	TrackingCoverage      float64 // percent of issues with an estimate
	ByAssignee            map[string]AssigneeTime
	Capacity              map[string]CapacityInsight
	Delivery              map[string]DeliveryRecord
	UsageSegments         []Segment
}

// HasData reports whether any issue carries a time estimate.
func (s TimeSummary) HasData() bool { return s.TrackingCoverage > 0 }

// ComputeTimeSummary computes usage, capacity and delivery analytics.
// Usage totals cover only the tracked subset (originalEstimate > 0);
// capacity and delivery cover everyone so unestimated work still shows up
// in workload counts.
func ComputeTimeSummary(issues []model.Issue) TimeSummary {
	s := TimeSummary{
		ByAssignee: make(map[string]AssigneeTime),
		Capacity:   make(map[string]CapacityInsight),
		Delivery:   make(map[string]DeliveryRecord),
	}

	var tracked int
	for _, is := range issues {
		if is.OriginalEstimate > 0 {
			tracked++
			s.TotalOriginalEstimate += is.OriginalEstimate
			s.TotalTimeSpent += is.TimeSpent
			s.TotalRemaining += is.RemainingEstimate
		}

		id := is.AssigneeID()
		at := s.ByAssignee[id]
		if at.Assignee == nil {
			at.Assignee = is.Assignee
		}
		at.OriginalEstimate += is.OriginalEstimate
		at.TimeSpent += is.TimeSpent
		at.RemainingEstimate += is.RemainingEstimate
		at.TotalIssues++
		switch is.Status {
		case model.StatusInProgress:
			at.InProgressIssues++
		case model.StatusDone:
			at.CompletedIssues++
		default:
			at.TodoIssues++
		}
		s.ByAssignee[id] = at

		if days, ok := slippageDays(is); ok {
			dr := s.Delivery[id]
			if dr.Assignee == nil {
				dr.Assignee = is.Assignee
			}
			dr.Total++
			switch {
			case days < 0:
				dr.Early++
			case days == 0:
				dr.OnTime++
			default:
				dr.Late++
			}
			s.Delivery[id] = dr
		}
	}

	for id, at := range s.ByAssignee {
		ci := CapacityInsight{AssigneeTime: at}
		if at.OriginalEstimate > 0 {
			ci.Utilization = at.TimeSpent / at.OriginalEstimate * 100
		}
		ci.WorkloadHours = at.OriginalEstimate + at.RemainingEstimate
		ci.CapacityUsage = ci.WorkloadHours / WeeklyCapacityHours * 100
		ci.CapacityStatus = CategorizeCapacity(ci.CapacityUsage)
		ci.ActiveWorkload = at.InProgressIssues + at.TodoIssues
		s.Capacity[id] = ci
	}

	if s.TotalOriginalEstimate > 0 {
		s.HoursUsedPercentage = s.TotalTimeSpent / s.TotalOriginalEstimate * 100
	}
	if len(issues) > 0 {
		s.TrackingCoverage = float64(tracked) / float64(len(issues)) * 100
	}
	if tracked > 0 {
		remaining := s.TotalOriginalEstimate - s.TotalTimeSpent
		if remaining < 0 {
			remaining = 0
		}
		over := s.TotalTimeSpent - s.TotalOriginalEstimate
		s.UsageSegments = []Segment{
			{Value: s.TotalTimeSpent - max(over, 0), Color: ColorInProgress, Label: "Spent"},
			{Value: remaining, Color: ColorTodo, Label: "Remaining"},
			{Value: max(over, 0), Color: ColorDanger, Label: "Over estimate"},
		}
	}
	return s
}
