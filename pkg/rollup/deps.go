package rollup

import (
	"fmt"
	"time"

	"github.com/vanderheijden86/workdeck/pkg/model"
)

// DepStatusOverdue supplements the three issue statuses in the dependency
// matrix: a target that is not done and past its live due date.
const DepStatusOverdue = "OVERDUE"

// DepTypeCount is the status breakdown for one dependency type.
type DepTypeCount struct {
	ByStatus map[string][]string // status -> dependent issue keys
	Total    int
}

// DepRiskLevel classifies one blocking dependency.
type DepRiskLevel string

const (
	DepRiskOverdue   DepRiskLevel = "overdue"
	DepRiskPending   DepRiskLevel = "pending"
	DepRiskCompleted DepRiskLevel = "completed"
)

// DepRiskItem is one is-blocked-by link with its resolved risk.
type DepRiskItem struct {
	Issue      model.Issue
	Dependency model.Dependency
	Risk       DepRiskLevel
	Reason     string
}

// DependencySummary is the dependency analytic for a set of issues.
type DependencySummary struct {
	ByType    map[model.DepType]DepTypeCount
	Total     int
	RiskItems []DepRiskItem // is-blocked-by links: overdue, then pending, then completed
	Segments  []Segment
}

// HasData reports whether any dependency links exist.
func (s DependencySummary) HasData() bool { return s.Total > 0 }

// ComputeDependencySummary builds the type-by-status matrix and the blocked
// risk list. The cached status snapshot on each link is overridden by a live
// lookup: a target that is past due and not done counts as OVERDUE even when
// the snapshot says otherwise. The snapshot itself is never rewritten.
func ComputeDependencySummary(issues []model.Issue, today time.Time) DependencySummary {
	s := DependencySummary{ByType: make(map[model.DepType]DepTypeCount)}
	today = model.DayStart(today)
	byID := model.IndexByID(issues)

	for _, tp := range []model.DepType{model.DepBlocks, model.DepBlockedBy, model.DepRelatesTo} {
		s.ByType[tp] = DepTypeCount{ByStatus: make(map[string][]string)}
	}

	var overdue, pending, completed []DepRiskItem
	for _, is := range issues {
		for _, dep := range is.Dependencies {
			status := string(dep.TargetIssueStatus)
			target, found := byID[dep.TargetIssueID]
			if dep.TargetIssueStatus != model.StatusDone && found {
				if due, ok := model.ParseDate(target.DueDate); ok && due.Before(today) {
					status = DepStatusOverdue
				}
			}

			tc := s.ByType[dep.Type]
			tc.ByStatus[status] = append(tc.ByStatus[status], is.Key)
			tc.Total++
			s.ByType[dep.Type] = tc
			s.Total++

			if dep.Type != model.DepBlockedBy {
				continue
			}
			item := DepRiskItem{Issue: is, Dependency: dep, Risk: DepRiskCompleted, Reason: "completed"}
			switch dep.TargetIssueStatus {
			case model.StatusDone:
			case model.StatusTodo:
				item.Risk = DepRiskPending
				item.Reason = "not started"
				if found {
					if due, ok := model.ParseDate(target.DueDate); ok && due.Before(today) {
						item.Risk = DepRiskOverdue
						item.Reason = fmt.Sprintf("overdue +%dd", model.DaysBetween(due, today))
					}
				}
			case model.StatusInProgress:
				item.Risk = DepRiskPending
				item.Reason = "in progress"
			}
			switch item.Risk {
			case DepRiskOverdue:
				overdue = append(overdue, item)
			case DepRiskPending:
				pending = append(pending, item)
			default:
				completed = append(completed, item)
			}
		}
	}

	s.RiskItems = append(append(overdue, pending...), completed...)

	if s.Total > 0 {
		s.Segments = []Segment{
			{Value: float64(s.ByType[model.DepBlockedBy].Total), Color: ColorDanger, Label: "Blocked by"},
			{Value: float64(s.ByType[model.DepBlocks].Total), Color: ColorWarn, Label: "Blocks"},
			{Value: float64(s.ByType[model.DepRelatesTo].Total), Color: ColorInProgress, Label: "Relates to"},
		}
	}
	return s
}
