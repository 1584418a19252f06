// Package rollup is the derived-metrics engine: pure transforms from an
// issue collection to presentation-ready summary structures, one per
// analytic domain (status, budget, story points, time tracking, slippage,
// target tracking, dependencies, comments).
//
// Shared conventions:
//   - Every summary distinguishes "no data" from "data that sums to zero"
//     (a HasData flag or an empty segment list) so the UI can show a stock
//     empty state instead of a broken chart.
//   - Ratios are computed against the tracked subset, not the whole
//     collection, whenever some issues lack the relevant attribute.
//   - Overdue checks compare against a caller-supplied "today" frozen at
//     start of day, so one aggregation pass never straddles a day boundary.
//   - Division by zero degrades to 0, never NaN or Inf.
package rollup

import (
	"math"
	"sort"
	"time"

	"github.com/vanderheijden86/workdeck/pkg/model"
)

// Chart color constants shared across summaries. These feed the
// {value,color,label} segment lists the rendering collaborators consume.
const (
	ColorDone       = "#00875a"
	ColorInProgress = "#0052cc"
	ColorTodo       = "#8993a4"
	ColorWarn       = "#ffab00"
	ColorDanger     = "#de350b"
	ColorMuted      = "#6b778c"
)

// GroupStats is the roll-up record rendered on the summary row and on each
// assignee group header.
type GroupStats struct {
	TodoCount             int
	InProgressCount       int
	DoneCount             int
	TotalCount            int
	CompletionPercentage  int
	TotalComments         int
	EarliestStart         string // ISO date; empty when the group is empty
	LatestDue             string
	TotalBudget           float64
	TotalStoryPoints      float64
	TotalTimeSpent        float64
	TotalOriginalEstimate float64
	AvgTimeEfficiency     float64 // mean of timeSpent/originalEstimate over estimated issues
	AvgSlippageDays       float64 // mean slippage over issues with an actual due date
	TotalDependencies     int
}

// ComputeGroupStats rolls up one group of issues. An empty group yields the
// zero record (empty date strings, all counters zero).
func ComputeGroupStats(issues []model.Issue) GroupStats {
	var s GroupStats
	s.TotalCount = len(issues)
	if len(issues) == 0 {
		return s
	}

	var earliest, latest time.Time
	var effCount, slipCount int
	for _, is := range issues {
		switch is.Status {
		case model.StatusTodo:
			s.TodoCount++
		case model.StatusInProgress:
			s.InProgressCount++
		case model.StatusDone:
			s.DoneCount++
		}
		s.TotalComments += is.Comments
		s.TotalBudget += is.Budget
		s.TotalStoryPoints += is.StoryPoints
		s.TotalTimeSpent += is.TimeSpent
		s.TotalOriginalEstimate += is.OriginalEstimate
		s.TotalDependencies += len(is.Dependencies)

		if t, ok := model.ParseDate(is.StartDate); ok {
			if earliest.IsZero() || t.Before(earliest) {
				earliest = t
			}
		}
		if t, ok := model.ParseDate(is.DueDate); ok {
			if latest.IsZero() || t.After(latest) {
				latest = t
			}
		}
		if is.OriginalEstimate > 0 {
			s.AvgTimeEfficiency += is.TimeSpent / is.OriginalEstimate
			effCount++
		}
		if days, ok := slippageDays(is); ok {
			s.AvgSlippageDays += float64(days)
			slipCount++
		}
	}

	s.CompletionPercentage = roundPct(float64(s.DoneCount), float64(s.TotalCount))
	if !earliest.IsZero() {
		s.EarliestStart = earliest.Format("2006-01-02")
	}
	if !latest.IsZero() {
		s.LatestDue = latest.Format("2006-01-02")
	}
	if effCount > 0 {
		s.AvgTimeEfficiency /= float64(effCount)
	}
	if slipCount > 0 {
		s.AvgSlippageDays /= float64(slipCount)
	}
	return s
}

// Group is one assignee bucket of the table, in stable roster order.
type Group struct {
	Assignee *model.Assignee
	Issues   []model.Issue
}

// GroupByAssignee buckets issues by assignee, ordered by assignee name
// (unassigned last). Issue order within a bucket follows input order,
// which is the table's visual order.
func GroupByAssignee(issues []model.Issue) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, is := range issues {
		id := is.AssigneeID()
		if i, ok := index[id]; ok {
			groups[i].Issues = append(groups[i].Issues, is)
			continue
		}
		index[id] = len(groups)
		groups = append(groups, Group{Assignee: is.Assignee, Issues: []model.Issue{is}})
	}
	sort.SliceStable(groups, func(a, b int) bool {
		ga, gb := groups[a].Assignee, groups[b].Assignee
		if ga == nil {
			return false
		}
		if gb == nil {
			return true
		}
		return ga.Name < gb.Name
	})
	return groups
}

// slippageDays computes the signed day slippage for an issue, valid only
// when the issue has an actual completion date and parsable target.
func slippageDays(is model.Issue) (int, bool) {
	if is.ActualDueDate == "" {
		return 0, false
	}
	target, ok1 := model.ParseDate(is.TargetDate)
	actual, ok2 := model.ParseDate(is.ActualDueDate)
	if !ok1 || !ok2 {
		return 0, false
	}
	return model.DaysBetween(target, actual), true
}

// TimeEfficiencyPercent returns round(timeSpent/originalEstimate*100) for
// an issue, and false when no estimate exists.
func TimeEfficiencyPercent(is model.Issue) (int, bool) {
	if is.OriginalEstimate <= 0 {
		return 0, false
	}
	return roundPct(is.TimeSpent, is.OriginalEstimate), true
}

// roundPct returns round(num/den*100), 0 when den is 0.
func roundPct(num, den float64) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(num / den * 100))
}
