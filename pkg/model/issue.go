// Package model defines the core work-item types shared across workdeck:
// issues, their assignees, dependencies between them, and the selectable
// table cells the computation features operate on.
//
// Date fields are ISO date strings ("2006-01-02"). Optional dates are empty
// strings; callers must filter empties before parsing. ParseDate is the one
// sanctioned way to turn a date field into a time.Time.
package model

import (
	"fmt"
	"time"
)

// Status is the workflow state of an issue.
type Status string

const (
	StatusTodo       Status = "TO DO"
	StatusInProgress Status = "IN PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns the human-readable form used in table rows.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To do"
	case StatusInProgress:
		return "In progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// DepType classifies a dependency edge.
type DepType string

const (
	DepBlocks    DepType = "blocks"
	DepBlockedBy DepType = "is-blocked-by"
	DepRelatesTo DepType = "relates-to"
)

// Assignee is a person record. Assignees live in a roster owned by the
// data source; issues hold shared pointers into that roster, so two issues
// assigned to the same person reference the same record.
type Assignee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

// Dependency is a weak reference to another issue. TargetIssueStatus is a
// snapshot taken when the dependency was recorded and may be stale relative
// to the live target issue; consumers that need freshness must look the
// target up by ID in the current collection. The snapshot is never mutated.
type Dependency struct {
	ID                 string  `json:"id"`
	Type               DepType `json:"type"`
	TargetIssueID      string  `json:"targetIssueId"`
	TargetIssueKey     string  `json:"targetIssueKey"`
	TargetIssueStatus  Status  `json:"targetIssueStatus"`
	TargetIssueSummary string  `json:"targetIssueSummary,omitempty"`
}

// Issue is a trackable unit of work.
//
// StartDate, DueDate and TargetDate are required; ActualStartDate and
// ActualDueDate are optional and empty when unset. The numeric tracking
// fields use zero as "not set", matching the upstream data where a zero
// budget or estimate is indistinguishable from an absent one.
type Issue struct {
	ID       string    `json:"id"`
	Key      string    `json:"key"`
	Summary  string    `json:"summary"`
	Status   Status    `json:"status"`
	Assignee *Assignee `json:"assignee"`

	StartDate       string `json:"startDate"`
	ActualStartDate string `json:"actualStartDate,omitempty"`
	DueDate         string `json:"dueDate"`
	TargetDate      string `json:"targetDate"`
	ActualDueDate   string `json:"actualDueDate,omitempty"`

	Comments     int          `json:"comments"`
	Dependencies []Dependency `json:"dependencies,omitempty"`

	Budget            float64 `json:"budget,omitempty"`
	StoryPoints       float64 `json:"storyPoints,omitempty"`
	OriginalEstimate  float64 `json:"originalEstimate,omitempty"`
	RemainingEstimate float64 `json:"remainingEstimate,omitempty"`
	TimeSpent         float64 `json:"timeSpent,omitempty"`
	Effort            float64 `json:"effort,omitempty"`
	EffortRemaining   float64 `json:"effortRemaining,omitempty"`
}

// Validate checks structural invariants a data source must provide.
func (i *Issue) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("issue missing id")
	}
	if i.Key == "" {
		return fmt.Errorf("issue %s missing key", i.ID)
	}
	if !i.Status.Valid() {
		return fmt.Errorf("issue %s has unknown status %q", i.ID, i.Status)
	}
	for _, d := range []string{i.StartDate, i.DueDate, i.TargetDate} {
		if d == "" {
			return fmt.Errorf("issue %s missing required date", i.ID)
		}
		if _, ok := ParseDate(d); !ok {
			return fmt.Errorf("issue %s has unparsable date %q", i.ID, d)
		}
	}
	return nil
}

// AssigneeID returns the assignee's ID, or "" when unassigned.
func (i *Issue) AssigneeID() string {
	if i.Assignee == nil {
		return ""
	}
	return i.Assignee.ID
}

// ParseDate parses an ISO date string at day granularity (midnight UTC).
// The second return is false for empty or malformed input; callers degrade
// to "no data" rather than erroring.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		// Accept full timestamps too; truncate to the calendar day.
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, false
		}
	}
	return DayStart(t), true
}

// DayStart truncates t to the start of its calendar day in UTC. Summaries
// freeze "today" through this so every comparison within one aggregation
// pass sees the same day boundary.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed day difference b-a, rounded up, matching
// the dashboard's ceil((b-a)/86400000) slippage arithmetic. Inputs are
// expected at day granularity, where the ceil is exact division.
func DaysBetween(a, b time.Time) int {
	d := b.Sub(a)
	days := d / (24 * time.Hour)
	if d%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}

// IndexByID builds a lookup map over a collection. Dependencies resolve
// targets through this; IDs absent from the map are dangling references.
func IndexByID(issues []Issue) map[string]*Issue {
	m := make(map[string]*Issue, len(issues))
	for idx := range issues {
		m[issues[idx].ID] = &issues[idx]
	}
	return m
}
