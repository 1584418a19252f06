// Package testutil provides deterministic issue fixtures for tests.
// Generators are seeded so every run produces identical collections.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vanderheijden86/workdeck/pkg/model"
)

// GeneratorConfig controls issue generation.
type GeneratorConfig struct {
	Seed      int64          // random seed (0 = fixed default)
	KeyPrefix string         // issue key prefix (default "GEN")
	BaseTime  time.Time      // anchor for generated dates
	StatusMix []model.Status // status distribution (nil = all three)
	Assignees []*model.Assignee
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:      42,
		KeyPrefix: "GEN",
		BaseTime:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		StatusMix: []model.Status{model.StatusTodo, model.StatusInProgress, model.StatusDone},
	}
}

// Generator creates issue fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "GEN"
	}
	if cfg.BaseTime.IsZero() {
		cfg.BaseTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	if len(cfg.StatusMix) == 0 {
		cfg.StatusMix = []model.Status{model.StatusTodo, model.StatusInProgress, model.StatusDone}
	}
	if len(cfg.Assignees) == 0 {
		cfg.Assignees = DefaultAssignees()
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// DefaultAssignees returns the stock four-person test roster.
func DefaultAssignees() []*model.Assignee {
	return []*model.Assignee{
		{ID: "gen-u1", Name: "Alex Rivera"},
		{ID: "gen-u2", Name: "Jordan Lee"},
		{ID: "gen-u3", Name: "Sam Patel"},
		{ID: "gen-u4", Name: "Casey Morgan"},
	}
}

// Issues generates n issues with plausible dates, estimates, and budgets.
// Roughly one in eight issues is left unassigned.
func (g *Generator) Issues(n int) []model.Issue {
	issues := make([]model.Issue, n)
	for i := range issues {
		issues[i] = g.issue(i)
	}
	return issues
}

func (g *Generator) issue(i int) model.Issue {
	status := g.cfg.StatusMix[g.rng.Intn(len(g.cfg.StatusMix))]
	start := g.cfg.BaseTime.AddDate(0, 0, g.rng.Intn(30))
	target := start.AddDate(0, 0, 7+g.rng.Intn(21))
	due := target.AddDate(0, 0, g.rng.Intn(10))

	points := []float64{1, 2, 3, 5, 8, 13}[g.rng.Intn(6)]
	estimate := points * 8
	budget := points * 1000

	is := model.Issue{
		ID:               fmt.Sprintf("%s-i%d", g.cfg.KeyPrefix, i),
		Key:              fmt.Sprintf("%s-%d", g.cfg.KeyPrefix, 100+i),
		Summary:          fmt.Sprintf("Generated work item %d", i),
		Status:           status,
		StartDate:        start.Format("2006-01-02"),
		TargetDate:       target.Format("2006-01-02"),
		DueDate:          due.Format("2006-01-02"),
		Comments:         g.rng.Intn(10),
		Budget:           budget,
		StoryPoints:      points,
		OriginalEstimate: estimate,
	}
	if g.rng.Intn(8) != 0 {
		is.Assignee = g.cfg.Assignees[g.rng.Intn(len(g.cfg.Assignees))]
	}

	switch status {
	case model.StatusDone:
		is.ActualStartDate = start.Format("2006-01-02")
		slip := g.rng.Intn(9) - 3 // -3..+5 days around due
		is.ActualDueDate = due.AddDate(0, 0, slip).Format("2006-01-02")
		is.TimeSpent = estimate * (0.7 + g.rng.Float64()*0.8)
	case model.StatusInProgress:
		is.ActualStartDate = start.Format("2006-01-02")
		is.TimeSpent = estimate * g.rng.Float64() * 0.8
		is.RemainingEstimate = estimate - is.TimeSpent
	default:
		is.RemainingEstimate = estimate
	}
	return is
}

// WithDependencies links issues into a sparse blocked-by web: roughly one
// issue in three gains a dependency on an earlier issue.
func (g *Generator) WithDependencies(issues []model.Issue) []model.Issue {
	for i := 1; i < len(issues); i++ {
		if g.rng.Intn(3) != 0 {
			continue
		}
		target := &issues[g.rng.Intn(i)]
		issues[i].Dependencies = append(issues[i].Dependencies, model.Dependency{
			ID:                fmt.Sprintf("%s-d%d", g.cfg.KeyPrefix, i),
			Type:              model.DepBlockedBy,
			TargetIssueID:     target.ID,
			TargetIssueKey:    target.Key,
			TargetIssueStatus: target.Status,
		})
	}
	return issues
}

// Quick generates n issues with the default config.
func Quick(n int) []model.Issue {
	return NewDefault().Issues(n)
}
