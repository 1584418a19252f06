package rollup

import (
	"fmt"
	"sort"
	"time"

	"github.com/vanderheijden86/workdeck/pkg/model"
)

// TypicalDaysPerPoint is the baseline used to judge whether a planned
// window is realistic for the story-point estimate.
const TypicalDaysPerPoint = 2

// CompressedTimelineFactor marks a planned window shorter than this share
// of the expected duration as compressed.
const CompressedTimelineFactor = 0.8

// TrackStatus says whether an issue is tracking to its target date.
type TrackStatus string

const (
	OnTrack  TrackStatus = "on-track"
	OffTrack TrackStatus = "off-track"
)

// TargetItem is one issue's target-date tracking analysis.
type TargetItem struct {
	Issue            model.Issue
	Status           TrackStatus
	Reason           string
	DaysOverdue      int
	PlannedDuration  int // start to target, days
	ExpectedDuration int // storyPoints * baseline, min one point
}

// TargetSummary tracks issues against their target dates. Issues without a
// target date are counted as missing rather than analysed.
type TargetSummary struct {
	OnTrackCount      int
	OffTrackCount     int
	TotalTracked      int
	MissingTargets    int
	OnTrackPercentage int
	Items             []TargetItem
	OffTrackItems     []TargetItem // worst first
	LatestTarget      time.Time
	Segments          []Segment
}

// HasData reports whether any issue carried a target date.
func (s TargetSummary) HasData() bool { return s.TotalTracked > 0 }

// ComputeTargetSummary evaluates target-date health as of today. The checks
// apply in order, later ones overwrite earlier reasons: compressed timeline,
// then past-target-and-not-done, then missing assignee.
func ComputeTargetSummary(issues []model.Issue, today time.Time) TargetSummary {
	var s TargetSummary
	today = model.DayStart(today)

	for _, is := range issues {
		target, ok := model.ParseDate(is.TargetDate)
		if !ok {
			s.MissingTargets++
			continue
		}
		item := TargetItem{Issue: is, Status: OnTrack, Reason: "On target"}

		points := is.StoryPoints
		if points == 0 {
			points = 1
		}
		item.ExpectedDuration = int(points) * TypicalDaysPerPoint
		if start, ok := model.ParseDate(is.StartDate); ok {
			item.PlannedDuration = model.DaysBetween(start, target)
		}

		if float64(item.PlannedDuration) < float64(item.ExpectedDuration)*CompressedTimelineFactor {
			item.Status = OffTrack
			item.Reason = "Compressed timeline"
		}
		if target.Before(today) && is.Status != model.StatusDone {
			item.Status = OffTrack
			item.DaysOverdue = model.DaysBetween(target, today)
			item.Reason = fmt.Sprintf("+%dd", item.DaysOverdue)
		}
		if is.Assignee == nil || is.Assignee.ID == "" {
			item.Status = OffTrack
			item.Reason = "No assignee"
		}

		s.Items = append(s.Items, item)
		if item.Status == OnTrack {
			s.OnTrackCount++
		} else {
			s.OffTrackCount++
			s.OffTrackItems = append(s.OffTrackItems, item)
		}
		if target.After(s.LatestTarget) {
			s.LatestTarget = target
		}
	}

	s.TotalTracked = len(s.Items)
	if s.TotalTracked > 0 {
		s.OnTrackPercentage = roundPct(float64(s.OnTrackCount), float64(s.TotalTracked))
		s.Segments = []Segment{
			{Value: float64(s.OnTrackCount), Color: ColorDone, Label: "On track"},
			{Value: float64(s.OffTrackCount), Color: ColorDanger, Label: "Off track"},
		}
	}

	// Worst offenders first, ties broken by the earlier target date.
	sort.SliceStable(s.OffTrackItems, func(a, b int) bool {
		x, y := s.OffTrackItems[a], s.OffTrackItems[b]
		if x.DaysOverdue != y.DaysOverdue {
			return x.DaysOverdue > y.DaysOverdue
		}
		ta, _ := model.ParseDate(x.Issue.TargetDate)
		tb, _ := model.ParseDate(y.Issue.TargetDate)
		return ta.Before(tb)
	})
	return s
}
