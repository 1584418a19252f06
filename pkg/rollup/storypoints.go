package rollup

import "github.com/vanderheijden86/workdeck/pkg/model"

// ComplexityBucket names a story-point size class.
type ComplexityBucket string

// Size classes follow the Fibonacci banding used on the dashboard.
const (
	SizeXS  ComplexityBucket = "XS (1-2)"
	SizeS   ComplexityBucket = "S (3-5)"
	SizeM   ComplexityBucket = "M (5-8)"
	SizeL   ComplexityBucket = "L (8-13)"
	SizeXL  ComplexityBucket = "XL (13-21)"
	SizeXXL ComplexityBucket = "XXL (21+)"
)

// ComplexityBuckets lists the size classes in ascending order for stable
// rendering.
var ComplexityBuckets = []ComplexityBucket{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// Complexity assigns a point value to its size class.
func Complexity(points float64) ComplexityBucket {
	switch {
	case points <= 2:
		return SizeXS
	case points <= 5:
		return SizeS
	case points <= 8:
		return SizeM
	case points <= 13:
		return SizeL
	case points <= 21:
		return SizeXL
	default:
		return SizeXXL
	}
}

// AssigneeVelocity is the per-person story-point record.
type AssigneeVelocity struct {
	Assignee    *model.Assignee
	Total       float64
	Completed   float64
	InProgress  float64
	Todo        float64
	Velocity    float64 // completed points
	Capacity    float64 // total points
	Utilization float64 // completed/total percent
}

// ComplexityStats aggregates one size class.
type ComplexityStats struct {
	Count  int
	Points float64
}

// StoryPointsSummary is the story-point analytic for a set of issues.
type StoryPointsSummary struct {
	TotalPoints      float64
	CompletedPoints  float64
	InProgressPoints float64
	TodoPoints       float64
	CompletionRate   float64
	AverageStorySize float64 // mean over issues that carry points
	ByAssignee       map[string]AssigneeVelocity
	Complexity       map[ComplexityBucket]ComplexityStats
	StatusSegments   []Segment
}

// HasData reports whether any story points were assigned.
func (s StoryPointsSummary) HasData() bool { return s.TotalPoints > 0 }

// ComputeStoryPointsSummary computes point distribution, per-assignee
// velocity, and complexity banding. Unpointed issues (0 points) are
// excluded from the complexity map and the average story size.
func ComputeStoryPointsSummary(issues []model.Issue) StoryPointsSummary {
	s := StoryPointsSummary{
		ByAssignee: make(map[string]AssigneeVelocity),
		Complexity: make(map[ComplexityBucket]ComplexityStats),
	}

	var pointedCount int
	for _, is := range issues {
		p := is.StoryPoints
		s.TotalPoints += p
		switch is.Status {
		case model.StatusDone:
			s.CompletedPoints += p
		case model.StatusInProgress:
			s.InProgressPoints += p
		default:
			s.TodoPoints += p
		}

		id := is.AssigneeID()
		av := s.ByAssignee[id]
		if av.Assignee == nil {
			av.Assignee = is.Assignee
		}
		av.Total += p
		switch is.Status {
		case model.StatusDone:
			av.Completed += p
		case model.StatusInProgress:
			av.InProgress += p
		default:
			av.Todo += p
		}
		s.ByAssignee[id] = av

		if p > 0 {
			pointedCount++
			bucket := Complexity(p)
			cs := s.Complexity[bucket]
			cs.Count++
			cs.Points += p
			s.Complexity[bucket] = cs
		}
	}

	for id, av := range s.ByAssignee {
		av.Velocity = av.Completed
		av.Capacity = av.Total
		if av.Total > 0 {
			av.Utilization = av.Completed / av.Total * 100
		}
		s.ByAssignee[id] = av
	}

	if s.TotalPoints > 0 {
		s.CompletionRate = s.CompletedPoints / s.TotalPoints * 100
		s.StatusSegments = []Segment{
			{Value: s.CompletedPoints, Color: ColorDone, Label: "Done"},
			{Value: s.InProgressPoints, Color: ColorInProgress, Label: "In Progress"},
			{Value: s.TodoPoints, Color: ColorTodo, Label: "To Do"},
		}
	}
	if pointedCount > 0 {
		s.AverageStorySize = s.TotalPoints / float64(pointedCount)
	}
	return s
}
