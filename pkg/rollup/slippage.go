package rollup

import (
	"fmt"
	"math"

	"github.com/vanderheijden86/workdeck/pkg/model"
)

// SlippageCategory classifies signed slippage days: negative is early,
// zero on time, positive late.
type SlippageCategory string

const (
	SlipEarly  SlippageCategory = "early"
	SlipOnTime SlippageCategory = "onTime"
	SlipLate   SlippageCategory = "late"
)

// SlippageSeverity bands slippage days: at or below 0 good, 1-3 moderate,
// above 3 severe. A separate risk flag fires above 7 days.
type SlippageSeverity string

const (
	SevGood     SlippageSeverity = "good"
	SevModerate SlippageSeverity = "moderate"
	SevSevere   SlippageSeverity = "severe"
)

// SevereSlippageDays is the threshold for the planning risk factor.
const SevereSlippageDays = 7

// CategorizeSlippage maps signed slippage days to a category.
func CategorizeSlippage(days int) SlippageCategory {
	switch {
	case days < 0:
		return SlipEarly
	case days == 0:
		return SlipOnTime
	default:
		return SlipLate
	}
}

// SeverityOf bands slippage days. The moderate band is inclusive of day 3;
// severity escalates strictly above it.
func SeverityOf(days int) SlippageSeverity {
	switch {
	case days <= 0:
		return SevGood
	case days <= 3:
		return SevModerate
	default:
		return SevSevere
	}
}

// SlippageItem is one completed issue's delivery analysis.
type SlippageItem struct {
	Issue              model.Issue
	SlippageDays       int
	SlippagePercentage float64 // slippage vs planned duration; 0 when duration is 0
	ProjectDuration    int     // planned days from start to target
	Category           SlippageCategory
	Severity           SlippageSeverity
	IsDelayed          bool
}

// CategoryStats aggregates one slippage category.
type CategoryStats struct {
	Count   int
	AvgDays float64 // mean of |slippage| within the category
	Items   []SlippageItem
}

// AssigneeSlippage is the per-person slippage record.
type AssigneeSlippage struct {
	Assignee       *model.Assignee
	TotalSlippage  int
	CompletedCount int
	AvgSlippage    float64
}

// RiskFactor is a derived warning about the delivery pattern.
type RiskFactor struct {
	Type     string // "schedule" or "planning"
	Message  string
	Severity string
}

// SlippageSummary is the slippage analytic over completed issues.
type SlippageSummary struct {
	HasData            bool
	AvgSlippage        float64
	TotalVariance      float64 // |sum of slippage days|
	Items              []SlippageItem
	Categories         map[SlippageCategory]CategoryStats
	ByAssignee         map[string]AssigneeSlippage
	RiskFactors        []RiskFactor
	OnTimeDeliveryRate float64 // early + on-time share, percent
	Segments           []Segment
}

// ComputeSlippageSummary analyses delivery slippage for issues that have
// an actual completion date. No completed issues yields HasData == false.
// Zero planned duration degrades the percentage to 0 rather than dividing
// by zero.
func ComputeSlippageSummary(issues []model.Issue) SlippageSummary {
	s := SlippageSummary{
		Categories: make(map[SlippageCategory]CategoryStats),
		ByAssignee: make(map[string]AssigneeSlippage),
	}

	var totalDays int
	for _, is := range issues {
		days, ok := slippageDays(is)
		if !ok {
			continue
		}
		item := SlippageItem{
			Issue:        is,
			SlippageDays: days,
			Category:     CategorizeSlippage(days),
			Severity:     SeverityOf(days),
			IsDelayed:    days > 0,
		}
		if start, ok1 := model.ParseDate(is.StartDate); ok1 {
			if target, ok2 := model.ParseDate(is.TargetDate); ok2 {
				item.ProjectDuration = model.DaysBetween(start, target)
			}
		}
		if item.ProjectDuration > 0 {
			item.SlippagePercentage = float64(days) / float64(item.ProjectDuration) * 100
		}
		s.Items = append(s.Items, item)
		totalDays += days

		cs := s.Categories[item.Category]
		cs.Count++
		cs.AvgDays += math.Abs(float64(days)) // running total; averaged below
		cs.Items = append(cs.Items, item)
		s.Categories[item.Category] = cs

		id := is.AssigneeID()
		as := s.ByAssignee[id]
		if as.Assignee == nil {
			as.Assignee = is.Assignee
		}
		as.TotalSlippage += days
		as.CompletedCount++
		s.ByAssignee[id] = as
	}

	if len(s.Items) == 0 {
		return s
	}
	s.HasData = true

	for cat, cs := range s.Categories {
		cs.AvgDays /= float64(cs.Count)
		s.Categories[cat] = cs
	}
	for id, as := range s.ByAssignee {
		as.AvgSlippage = float64(as.TotalSlippage) / float64(as.CompletedCount)
		s.ByAssignee[id] = as
	}

	n := len(s.Items)
	s.AvgSlippage = float64(totalDays) / float64(n)
	s.TotalVariance = math.Abs(float64(totalDays))
	onTime := s.Categories[SlipEarly].Count + s.Categories[SlipOnTime].Count
	s.OnTimeDeliveryRate = float64(onTime) / float64(n) * 100

	late := s.Categories[SlipLate].Count
	if float64(late) > float64(n)*0.3 {
		s.RiskFactors = append(s.RiskFactors, RiskFactor{
			Type:     "schedule",
			Message:  fmt.Sprintf("%d%% of items delivered late", roundPct(float64(late), float64(n))),
			Severity: "high",
		})
	}
	var severe int
	for _, item := range s.Items {
		if item.SlippageDays > SevereSlippageDays {
			severe++
		}
	}
	if severe > 0 {
		s.RiskFactors = append(s.RiskFactors, RiskFactor{
			Type:     "planning",
			Message:  fmt.Sprintf("%d items with >%d days slippage", severe, SevereSlippageDays),
			Severity: "high",
		})
	}

	s.Segments = []Segment{
		{Value: float64(s.Categories[SlipEarly].Count), Color: ColorDone, Label: "Early"},
		{Value: float64(s.Categories[SlipOnTime].Count), Color: ColorInProgress, Label: "On time"},
		{Value: float64(late), Color: ColorDanger, Label: "Late"},
	}
	return s
}

// IssueSlippage exposes the per-issue slippage cell value: the signed day
// count and whether the issue has completed at all.
func IssueSlippage(is model.Issue) (days int, pct int, ok bool) {
	days, ok = slippageDays(is)
	if !ok {
		return 0, 0, false
	}
	start, ok1 := model.ParseDate(is.StartDate)
	target, ok2 := model.ParseDate(is.TargetDate)
	if ok1 && ok2 {
		if dur := model.DaysBetween(start, target); dur > 0 {
			pct = int(math.Round(float64(days) / float64(dur) * 100))
		}
	}
	return days, pct, true
}
