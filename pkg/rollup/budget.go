package rollup

import (
	"sort"

	"github.com/vanderheijden86/workdeck/pkg/model"
)

// HourlyRate is the assumed billing rate used to convert a dollar budget
// into budgeted hours for efficiency analysis.
const HourlyRate = 50.0

// EfficiencyCategory buckets a spend ratio against fixed thresholds:
// over 120% is "over", 100-120% "near", at or under 100% "under".
type EfficiencyCategory string

const (
	EffUnder EfficiencyCategory = "under"
	EffNear  EfficiencyCategory = "near"
	EffOver  EfficiencyCategory = "over"
)

// CategorizeEfficiency applies the fixed efficiency thresholds to a
// percentage value.
func CategorizeEfficiency(pct float64) EfficiencyCategory {
	switch {
	case pct > 120:
		return EffOver
	case pct > 100:
		return EffNear
	default:
		return EffUnder
	}
}

// AssigneeBudget is the per-person budget breakdown, keyed by assignee ID
// in BudgetSummary.ByAssignee.
type AssigneeBudget struct {
	Assignee   *model.Assignee
	Total      float64
	Completed  float64
	InProgress float64
	Todo       float64
}

// BudgetEfficiencyItem is one issue's budget-vs-time-spent analysis. Only
// issues carrying both a budget and time spent participate.
type BudgetEfficiencyItem struct {
	Issue         model.Issue
	Efficiency    float64 // percent of budgeted hours consumed
	BudgetedHours float64
	ActualHours   float64
	Variance      float64 // dollars over (positive) or under (negative)
	Category      EfficiencyCategory
}

// BudgetSummary is the budget analytic for a set of issues.
type BudgetSummary struct {
	TotalBudget        float64
	CompletedBudget    float64
	InProgressBudget   float64
	TodoBudget         float64
	CompletionRate     float64 // percent of budget on DONE issues
	ByAssignee         map[string]AssigneeBudget
	Efficiency         []BudgetEfficiencyItem // sorted by efficiency desc
	StatusSegments     []Segment
	EfficiencySegments []Segment
}

// HasData reports whether any budget was allocated at all.
func (s BudgetSummary) HasData() bool { return s.TotalBudget > 0 }

// ComputeBudgetSummary computes budget distribution and efficiency analytics.
// Efficiency considers only the tracked subset (budget and timeSpent both
// set); the completion rate guards the zero-budget denominator.
func ComputeBudgetSummary(issues []model.Issue) BudgetSummary {
	s := BudgetSummary{ByAssignee: make(map[string]AssigneeBudget)}

	for _, is := range issues {
		b := is.Budget
		s.TotalBudget += b
		switch is.Status {
		case model.StatusDone:
			s.CompletedBudget += b
		case model.StatusInProgress:
			s.InProgressBudget += b
		default:
			s.TodoBudget += b
		}

		id := is.AssigneeID()
		ab := s.ByAssignee[id]
		if ab.Assignee == nil {
			ab.Assignee = is.Assignee
		}
		ab.Total += b
		switch is.Status {
		case model.StatusDone:
			ab.Completed += b
		case model.StatusInProgress:
			ab.InProgress += b
		default:
			ab.Todo += b
		}
		s.ByAssignee[id] = ab

		if is.Budget > 0 && is.TimeSpent > 0 {
			budgetedHours := is.Budget / HourlyRate
			eff := 0.0
			if budgetedHours > 0 {
				eff = is.TimeSpent / budgetedHours * 100
			}
			s.Efficiency = append(s.Efficiency, BudgetEfficiencyItem{
				Issue:         is,
				Efficiency:    eff,
				BudgetedHours: budgetedHours,
				ActualHours:   is.TimeSpent,
				Variance:      (is.TimeSpent - budgetedHours) * HourlyRate,
				Category:      CategorizeEfficiency(eff),
			})
		}
	}

	sort.SliceStable(s.Efficiency, func(a, b int) bool {
		return s.Efficiency[a].Efficiency > s.Efficiency[b].Efficiency
	})

	if s.TotalBudget > 0 {
		s.CompletionRate = s.CompletedBudget / s.TotalBudget * 100
		s.StatusSegments = []Segment{
			{Value: s.CompletedBudget, Color: ColorDone, Label: "Done"},
			{Value: s.InProgressBudget, Color: ColorInProgress, Label: "In Progress"},
			{Value: s.TodoBudget, Color: ColorTodo, Label: "To Do"},
		}
	}

	var under, near, over int
	for _, item := range s.Efficiency {
		switch item.Category {
		case EffOver:
			over++
		case EffNear:
			near++
		default:
			under++
		}
	}
	if len(s.Efficiency) > 0 {
		s.EfficiencySegments = []Segment{
			{Value: float64(under), Color: ColorDone, Label: "Under budget"},
			{Value: float64(near), Color: ColorWarn, Label: "Near budget"},
			{Value: float64(over), Color: ColorDanger, Label: "Over budget"},
		}
	}
	return s
}
