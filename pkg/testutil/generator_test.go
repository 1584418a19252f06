package testutil

import (
	"testing"

	"github.com/vanderheijden86/workdeck/pkg/model"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewDefault().Issues(20)
	b := NewDefault().Issues(20)

	for i := range a {
		if a[i].ID != b[i].ID || a[i].Status != b[i].Status || a[i].DueDate != b[i].DueDate {
			t.Fatalf("same seed diverged at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGeneratedIssuesValid(t *testing.T) {
	issues := Quick(50)
	AssertIssueCount(t, issues, 50)
	AssertNoDuplicateIDs(t, issues)
	AssertAllValid(t, issues)
}

func TestGeneratedDatesOrdered(t *testing.T) {
	for _, is := range Quick(50) {
		start, _ := model.ParseDate(is.StartDate)
		target, _ := model.ParseDate(is.TargetDate)
		due, _ := model.ParseDate(is.DueDate)
		if target.Before(start) {
			t.Errorf("%s: target %s before start %s", is.Key, is.TargetDate, is.StartDate)
		}
		if due.Before(target) {
			t.Errorf("%s: due %s before target %s", is.Key, is.DueDate, is.TargetDate)
		}
	}
}

func TestWithDependenciesPointBackwards(t *testing.T) {
	g := NewDefault()
	issues := g.WithDependencies(g.Issues(30))

	index := make(map[string]int)
	for i, is := range issues {
		index[is.ID] = i
	}
	var linked int
	for i, is := range issues {
		for _, dep := range is.Dependencies {
			linked++
			j, ok := index[dep.TargetIssueID]
			if !ok {
				t.Errorf("%s: dependency target %s not in the set", is.Key, dep.TargetIssueID)
				continue
			}
			if j >= i {
				t.Errorf("%s: dependency should point to an earlier issue", is.Key)
			}
		}
	}
	if linked == 0 {
		t.Error("expected at least one dependency across 30 issues")
	}
}
