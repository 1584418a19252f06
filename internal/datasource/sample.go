package datasource

import "github.com/vanderheijden86/workdeck/pkg/model"

// Sample returns the built-in demo project: a small team mid-delivery
// with enough variety to light up every analytic (overdue work, slipped
// deliveries, blocked dependencies, untracked estimates). The data is
// deterministic so screenshots and tests are reproducible.
func Sample() *Collection {
	sara := &model.Assignee{ID: "u-sara", Name: "Sara Chen", Email: "sara@example.com", Avatar: "https://example.com/a/sara.png"}
	marcus := &model.Assignee{ID: "u-marcus", Name: "Marcus Webb", Email: "marcus@example.com", Avatar: "https://example.com/a/marcus.png"}
	priya := &model.Assignee{ID: "u-priya", Name: "Priya Nair", Email: "priya@example.com", Avatar: "https://example.com/a/priya.png"}
	tom := &model.Assignee{ID: "u-tom", Name: "Tom Okafor", Email: "tom@example.com", Avatar: "https://example.com/a/tom.png"}

	issues := []model.Issue{
		{
			ID: "i-1", Key: "WD-101", Summary: "Migrate billing service to new API gateway",
			Status: model.StatusDone, Assignee: sara,
			StartDate: "2025-06-02", ActualStartDate: "2025-06-03",
			TargetDate: "2025-06-20", DueDate: "2025-06-27", ActualDueDate: "2025-06-24",
			Comments: 6, Budget: 12000, StoryPoints: 8,
			OriginalEstimate: 80, TimeSpent: 92, RemainingEstimate: 0,
			Dependencies: []model.Dependency{
				{ID: "d-1", Type: model.DepBlocks, TargetIssueID: "i-3", TargetIssueKey: "WD-103", TargetIssueStatus: model.StatusInProgress},
			},
		},
		{
			ID: "i-2", Key: "WD-102", Summary: "Customer portal SSO integration",
			Status: model.StatusDone, Assignee: marcus,
			StartDate: "2025-06-09", ActualStartDate: "2025-06-09",
			TargetDate: "2025-07-04", DueDate: "2025-07-11", ActualDueDate: "2025-07-02",
			Comments: 3, Budget: 8000, StoryPoints: 5,
			OriginalEstimate: 60, TimeSpent: 48, RemainingEstimate: 0,
		},
		{
			ID: "i-3", Key: "WD-103", Summary: "Rework invoice reconciliation pipeline",
			Status: model.StatusInProgress, Assignee: sara,
			StartDate: "2025-06-23", ActualStartDate: "2025-06-25",
			TargetDate: "2025-07-18", DueDate: "2025-07-25",
			Comments: 9, Budget: 15000, StoryPoints: 13,
			OriginalEstimate: 120, TimeSpent: 88, RemainingEstimate: 40,
			Dependencies: []model.Dependency{
				{ID: "d-2", Type: model.DepBlockedBy, TargetIssueID: "i-1", TargetIssueKey: "WD-101", TargetIssueStatus: model.StatusDone},
				{ID: "d-3", Type: model.DepBlockedBy, TargetIssueID: "i-6", TargetIssueKey: "WD-106", TargetIssueStatus: model.StatusTodo},
			},
		},
		{
			ID: "i-4", Key: "WD-104", Summary: "Quarterly compliance report automation",
			Status: model.StatusInProgress, Assignee: priya,
			StartDate: "2025-07-01", ActualStartDate: "2025-07-01",
			TargetDate: "2025-07-28", DueDate: "2025-07-28",
			Comments: 2, Budget: 6000, StoryPoints: 5,
			OriginalEstimate: 50, TimeSpent: 30, RemainingEstimate: 25,
			Dependencies: []model.Dependency{
				{ID: "d-4", Type: model.DepRelatesTo, TargetIssueID: "i-7", TargetIssueKey: "WD-107", TargetIssueStatus: model.StatusTodo},
			},
		},
		{
			ID: "i-5", Key: "WD-105", Summary: "Data warehouse incremental sync",
			Status: model.StatusDone, Assignee: priya,
			StartDate: "2025-06-16", ActualStartDate: "2025-06-16",
			TargetDate: "2025-07-07", DueDate: "2025-07-14", ActualDueDate: "2025-07-12",
			Comments: 4, Budget: 9500, StoryPoints: 8,
			OriginalEstimate: 70, TimeSpent: 84, RemainingEstimate: 0,
		},
		{
			ID: "i-6", Key: "WD-106", Summary: "Vendor payout ledger audit trail",
			Status: model.StatusTodo, Assignee: marcus,
			StartDate: "2025-07-14",
			TargetDate: "2025-08-01", DueDate: "2025-08-08",
			Comments: 5, Budget: 7000, StoryPoints: 8,
			OriginalEstimate: 64, RemainingEstimate: 64,
		},
		{
			ID: "i-7", Key: "WD-107", Summary: "Self-serve plan upgrade flow",
			Status: model.StatusTodo, Assignee: tom,
			StartDate: "2025-07-21",
			TargetDate: "2025-08-15", DueDate: "2025-08-22",
			Comments: 1, Budget: 11000, StoryPoints: 13,
			OriginalEstimate: 100, RemainingEstimate: 100,
		},
		{
			ID: "i-8", Key: "WD-108", Summary: "Churn-risk scoring model rollout",
			Status: model.StatusInProgress, Assignee: tom,
			StartDate: "2025-06-30", ActualStartDate: "2025-07-03",
			TargetDate: "2025-07-21", DueDate: "2025-07-23",
			Comments: 7, Budget: 14000, StoryPoints: 13,
			OriginalEstimate: 110, TimeSpent: 95, RemainingEstimate: 35,
			Dependencies: []model.Dependency{
				{ID: "d-5", Type: model.DepBlockedBy, TargetIssueID: "i-5", TargetIssueKey: "WD-105", TargetIssueStatus: model.StatusInProgress},
			},
		},
		{
			ID: "i-9", Key: "WD-109", Summary: "Legacy cron decommissioning",
			Status: model.StatusTodo,
			StartDate: "2025-07-07",
			TargetDate: "2025-07-25", DueDate: "2025-08-01",
			Comments: 0, StoryPoints: 3,
		},
		{
			ID: "i-10", Key: "WD-110", Summary: "Payment retry backoff tuning",
			Status: model.StatusDone, Assignee: marcus,
			StartDate: "2025-06-05", ActualStartDate: "2025-06-05",
			TargetDate: "2025-06-13", DueDate: "2025-06-20", ActualDueDate: "2025-06-25",
			Comments: 8, Budget: 4000, StoryPoints: 3,
			OriginalEstimate: 24, TimeSpent: 41, RemainingEstimate: 0,
		},
		{
			ID: "i-11", Key: "WD-111", Summary: "Usage metering event dedupe",
			Status: model.StatusInProgress, Assignee: sara,
			StartDate: "2025-07-10", ActualStartDate: "2025-07-10",
			TargetDate: "2025-08-04", DueDate: "2025-08-06",
			Comments: 2, Budget: 5500, StoryPoints: 5,
			OriginalEstimate: 45, TimeSpent: 12, RemainingEstimate: 30,
		},
		{
			ID: "i-12", Key: "WD-112", Summary: "Support ticket triage dashboard",
			Status: model.StatusTodo, Assignee: priya,
			StartDate: "2025-08-04",
			TargetDate: "2025-08-29", DueDate: "2025-09-05",
			Comments: 0, Budget: 9000, StoryPoints: 8,
			OriginalEstimate: 72, RemainingEstimate: 72,
		},
	}

	c := &Collection{Issues: issues}
	c.normalize()
	return c
}
