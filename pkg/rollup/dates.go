package rollup

import (
	"sort"
	"time"

	"github.com/vanderheijden86/workdeck/pkg/model"
)

// DayBucket is one calendar day's issue count for timeline rendering.
type DayBucket struct {
	Date  time.Time
	Count int
}

// StartDateSummary is the start-date insight set.
type StartDateSummary struct {
	MissingStartDates int // no actual start recorded
	MissingAssignee   int
	NotStartedYet     int // planned start in the future, still to do
	DelayedStart      int // planned start passed, still to do, never started
	DelayedPoints     float64
	HealthScore       int // 0 when the issue set is empty
	EarliestStart     time.Time
	Timeline          []DayBucket // issues per planned start day, ascending
}

// ComputeStartDateSummary derives start-date health as of today. The health
// score penalizes delayed starts, missing actual starts and unassigned work
// against the total issue count.
func ComputeStartDateSummary(issues []model.Issue, today time.Time) StartDateSummary {
	var s StartDateSummary
	today = model.DayStart(today)
	perDay := make(map[time.Time]int)

	for _, is := range issues {
		if is.ActualStartDate == "" {
			s.MissingStartDates++
		}
		if is.Assignee == nil || is.Assignee.ID == "" {
			s.MissingAssignee++
		}
		start, ok := model.ParseDate(is.StartDate)
		if !ok {
			continue
		}
		perDay[start]++
		if s.EarliestStart.IsZero() || start.Before(s.EarliestStart) {
			s.EarliestStart = start
		}
		if is.Status == model.StatusTodo {
			switch {
			case start.After(today):
				s.NotStartedYet++
			case start.Before(today) && is.ActualStartDate == "":
				s.DelayedStart++
				s.DelayedPoints += is.StoryPoints
			}
		}
	}

	if n := len(issues); n > 0 {
		bad := s.DelayedStart + s.MissingStartDates + s.MissingAssignee
		s.HealthScore = roundPct(float64(n-bad), float64(n))
	}
	s.Timeline = sortBuckets(perDay)
	return s
}

// AssigneeRisk is a per-person due-date risk record.
type AssigneeRisk struct {
	Assignee    *model.Assignee
	TotalItems  int
	Overdue     int
	DueThisWeek int
	AtRisk      int
	StoryPoints float64
}

// DueDateSummary is the due-date insight set.
type DueDateSummary struct {
	MissingDueDates  int
	MissingAssignee  int
	Overdue          int
	OverduePoints    float64
	OverdueTotalDays int // summed lateness across overdue items
	OverdueMaxDays   int
	DueThisWeek      int
	AtRisk           int // due at or before target while in progress
	HealthScore      int
	ByAssignee       map[string]AssigneeRisk
	LatestDue        time.Time
	Timeline         []DayBucket // issues per due day, ascending
}

// ComputeDueDateSummary derives due-date health as of today. Overdue means
// past the due date and not done. At-risk means the hard due date does not
// leave room past the target while the work is still in progress.
func ComputeDueDateSummary(issues []model.Issue, today time.Time) DueDateSummary {
	s := DueDateSummary{ByAssignee: make(map[string]AssigneeRisk)}
	today = model.DayStart(today)
	weekOut := today.AddDate(0, 0, 7)
	perDay := make(map[time.Time]int)

	for _, is := range issues {
		if is.Assignee == nil || is.Assignee.ID == "" {
			s.MissingAssignee++
		}
		due, dueOK := model.ParseDate(is.DueDate)
		if !dueOK {
			s.MissingDueDates++
		} else {
			perDay[due]++
			if due.After(s.LatestDue) {
				s.LatestDue = due
			}
		}

		overdue := dueOK && due.Before(today) && is.Status != model.StatusDone
		dueSoon := dueOK && !due.Before(today) && !due.After(weekOut) && is.Status != model.StatusDone

		atRisk := false
		if target, ok := model.ParseDate(is.TargetDate); ok && dueOK {
			atRisk = !due.After(target) && is.Status == model.StatusInProgress
		}

		if overdue {
			s.Overdue++
			s.OverduePoints += is.StoryPoints
			late := model.DaysBetween(due, today)
			s.OverdueTotalDays += late
			if late > s.OverdueMaxDays {
				s.OverdueMaxDays = late
			}
		}
		if dueSoon {
			s.DueThisWeek++
		}
		if atRisk {
			s.AtRisk++
		}

		if is.Assignee != nil && is.Assignee.ID != "" {
			ar := s.ByAssignee[is.Assignee.ID]
			if ar.Assignee == nil {
				ar.Assignee = is.Assignee
			}
			ar.TotalItems++
			ar.StoryPoints += is.StoryPoints
			if overdue {
				ar.Overdue++
			} else if dueSoon {
				ar.DueThisWeek++
			}
			if atRisk {
				ar.AtRisk++
			}
			s.ByAssignee[is.Assignee.ID] = ar
		}
	}

	if n := len(issues); n > 0 {
		bad := s.Overdue + s.AtRisk + s.MissingAssignee
		s.HealthScore = roundPct(float64(n-bad), float64(n))
	}
	s.Timeline = sortBuckets(perDay)
	return s
}

func sortBuckets(perDay map[time.Time]int) []DayBucket {
	out := make([]DayBucket, 0, len(perDay))
	for d, c := range perDay {
		out = append(out, DayBucket{Date: d, Count: c})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date.Before(out[b].Date) })
	return out
}
