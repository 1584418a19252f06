package rollup

import (
	"fmt"

	"github.com/vanderheijden86/workdeck/pkg/model"
)

// DigestTab names one section of the discussion digest.
type DigestTab string

const (
	TabRisks     DigestTab = "risks"
	TabUpdates   DigestTab = "updates"
	TabQuestions DigestTab = "questions"
	TabOther     DigestTab = "other"
)

// DigestTabs lists the tabs in display order.
var DigestTabs = []DigestTab{TabRisks, TabUpdates, TabQuestions, TabOther}

// Label returns the tab's display name.
func (t DigestTab) Label() string {
	switch t {
	case TabRisks:
		return "Risks"
	case TabUpdates:
		return "Updates"
	case TabQuestions:
		return "Questions"
	default:
		return "Other"
	}
}

// HighActivityThreshold marks an issue's discussion as unusually heavy.
const HighActivityThreshold = 5

// CommentsDigest is the comment-activity analytic, a prose paragraph per
// tab derived from comment counts and issue statuses.
type CommentsDigest struct {
	TotalComments int
	ActiveIssues  int // issues with at least one comment
	Sections      map[DigestTab]string
}

// HasData reports whether any comments exist at all.
func (d CommentsDigest) HasData() bool { return d.TotalComments > 0 }

// ComputeCommentsDigest writes one paragraph per tab. Risks surface the
// heaviest-discussed item; updates cover in-progress chatter; questions
// cover pending-work clarifications; other summarizes overall engagement.
func ComputeCommentsDigest(issues []model.Issue) CommentsDigest {
	d := CommentsDigest{Sections: make(map[DigestTab]string)}

	var highActivity, inProgress, todo []model.Issue
	var doneDiscussed int
	for _, is := range issues {
		d.TotalComments += is.Comments
		if is.Comments > 0 {
			d.ActiveIssues++
			if is.Comments >= HighActivityThreshold {
				highActivity = append(highActivity, is)
			}
			if is.Status == model.StatusDone {
				doneDiscussed++
			}
		}
		switch is.Status {
		case model.StatusInProgress:
			if is.Comments > 0 {
				inProgress = append(inProgress, is)
			}
		case model.StatusTodo:
			if is.Comments > 0 {
				todo = append(todo, is)
			}
		}
	}

	if len(highActivity) == 0 {
		d.Sections[TabRisks] = "No significant risks detected in current discussions. All comment activity appears to be routine clarifications and status updates."
	} else {
		r := highActivity[0]
		d.Sections[TabRisks] = fmt.Sprintf(
			"%s %q has %d comments, indicating potential blockers or confusion. The high discussion volume suggests this item may need immediate attention from leadership or additional resources. Consider scheduling a focused discussion to resolve outstanding concerns and prevent delays to dependent work items.",
			r.Key, r.Summary, r.Comments)
	}

	if len(inProgress) == 0 {
		d.Sections[TabUpdates] = "No active work items are currently generating status discussions. This could indicate good progress or lack of regular check-ins."
	} else {
		lead := fmt.Sprintf("%d items in progress are generating regular status updates and coordination discussions.", len(inProgress))
		if len(inProgress) == 1 {
			lead = fmt.Sprintf("%s is actively being discussed with regular progress updates.", inProgress[0].Key)
		}
		d.Sections[TabUpdates] = lead + " Recent activity suggests teams are maintaining good communication cadence. Most updates focus on milestone progress, dependency coordination, and resource allocation. This healthy communication pattern indicates strong project momentum."
	}

	switch {
	case len(todo) == 0:
		d.Sections[TabQuestions] = "No pending work items are generating clarification discussions. Requirements appear well-defined for upcoming work."
	default:
		var questionCount int
		for _, is := range todo {
			questionCount += is.Comments
		}
		d.Sections[TabQuestions] = fmt.Sprintf(
			"%d upcoming items have generated %d clarification requests. Most questions focus on acceptance criteria, technical approach, and resource requirements. Consider pre-work sessions to address these questions before implementation begins to avoid mid-sprint disruptions.",
			len(todo), questionCount)
	}

	avg := 0.0
	if d.ActiveIssues > 0 {
		avg = float64(d.TotalComments) / float64(d.ActiveIssues)
	}
	d.Sections[TabOther] = fmt.Sprintf(
		"Overall comment activity shows %.1f average discussions per active item. %d completed items had ongoing discussions, suggesting good collaboration through completion. Communication patterns indicate healthy team engagement with appropriate level of detail in status sharing and coordination.",
		avg, doneDiscussed)

	return d
}
