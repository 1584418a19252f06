package ui

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/workdeck/pkg/compute"
	"github.com/vanderheijden86/workdeck/pkg/model"
	"github.com/vanderheijden86/workdeck/pkg/rollup"
	"github.com/vanderheijden86/workdeck/pkg/selection"
)

// Popover scope IDs beyond the selectable columns.
const (
	popStatus       = "status"
	popDependencies = "dependencies"
	popComments     = "comments"
	popTracking     = "tracking"
)

// popContentWidth is the inner text width of a chart popover.
const popContentWidth = selection.PopoverWidth - 4

// renderPopover renders the chart popover for a composite fieldID. Unknown
// IDs render nothing, which the caller treats as no popover.
func renderPopover(th Theme, fieldID string, issues []model.Issue, today time.Time) string {
	kind, _, ok := strings.Cut(fieldID, "-")
	if !ok {
		kind = fieldID
	}

	var body string
	switch model.Field(kind) {
	case model.FieldStartDate:
		body = renderStartDatePopover(th, rollup.ComputeStartDateSummary(issues, today))
	case model.FieldTargetDate:
		body = renderTargetPopover(th, rollup.ComputeTargetSummary(issues, today))
	case model.FieldDueDate:
		body = renderDueDatePopover(th, rollup.ComputeDueDateSummary(issues, today))
	case model.FieldBudget:
		body = renderBudgetPopover(th, rollup.ComputeBudgetSummary(issues))
	case model.FieldStoryPoints:
		body = renderStoryPointsPopover(th, rollup.ComputeStoryPointsSummary(issues))
	case model.FieldTimeTracking:
		body = renderTimePopover(th, rollup.ComputeTimeSummary(issues))
	case model.FieldSlippage:
		body = renderSlippagePopover(th, rollup.ComputeSlippageSummary(issues))
	default:
		switch kind {
		case popStatus:
			body = renderStatusPopover(th, rollup.StatusDistribution(issues))
		case popDependencies:
			body = renderDependencyPopover(th, rollup.ComputeDependencySummary(issues, today))
		case popComments:
			body = renderCommentsPopover(th, rollup.ComputeCommentsDigest(issues))
		case popTracking:
			body = renderTrackingPopover(th, rollup.ComputeTrackingSummary(issues))
		default:
			return ""
		}
	}
	return th.PopoverBorder.Width(selection.PopoverWidth - 2).Render(body)
}

func popoverTitle(th Theme, title string) string {
	return th.PrimaryBold.Render(title) + "\n" + RenderDivider(th, popContentWidth) + "\n"
}

func renderStatusPopover(th Theme, s rollup.StatusSummary) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Status distribution"))
	if s.Total == 0 {
		b.WriteString(th.MutedText.Render("no issues"))
		return b.String()
	}
	b.WriteString(renderPieLegend(th, s.Segments, popContentWidth))
	b.WriteString(fmt.Sprintf("\n\n%d total · %d done · %d active · %d queued",
		s.Total, s.DoneCount, s.InProgressCount, s.TodoCount))
	return b.String()
}

func renderBudgetPopover(th Theme, s rollup.BudgetSummary) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Budget"))
	if !s.HasData() {
		b.WriteString(th.MutedText.Render("no budget allocated"))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Total %s · %.0f%% complete\n\n",
		compute.FormatCurrency(s.TotalBudget), s.CompletionRate))
	b.WriteString(renderPieLegend(th, s.StatusSegments, popContentWidth))

	if len(s.Efficiency) > 0 {
		b.WriteString("\n\n")
		b.WriteString(th.Header.Render("Spend efficiency"))
		b.WriteString("\n")
		b.WriteString(renderPieLegend(th, s.EfficiencySegments, popContentWidth))
		worst := s.Efficiency[0]
		b.WriteString(fmt.Sprintf("\n\nHighest: %s at %.0f%% (%s variance)",
			worst.Issue.Key, worst.Efficiency, compute.FormatCurrency(worst.Variance)))
	}
	return b.String()
}

func renderStoryPointsPopover(th Theme, s rollup.StoryPointsSummary) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Story points"))
	if !s.HasData() {
		b.WriteString(th.MutedText.Render("no points assigned"))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%.0f points · %.0f%% complete · avg size %.1f\n\n",
		s.TotalPoints, s.CompletionRate, s.AverageStorySize))
	b.WriteString(renderPieLegend(th, s.StatusSegments, popContentWidth))

	b.WriteString("\n\n")
	b.WriteString(th.Header.Render("Complexity"))
	b.WriteString("\n")
	for _, bucket := range rollup.ComplexityBuckets {
		cs, ok := s.Complexity[bucket]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("%s %d %s · %.0f pts\n",
			padRight(string(bucket), 12), cs.Count, plural(cs.Count, "item", "items"), cs.Points))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTimePopover(th Theme, s rollup.TimeSummary) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Time tracking"))
	if !s.HasData() {
		b.WriteString(th.MutedText.Render("no time estimates"))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%.0fh spent of %.0fh estimated (%.0f%%)\n",
		s.TotalTimeSpent, s.TotalOriginalEstimate, s.HoursUsedPercentage))
	b.WriteString(fmt.Sprintf("Coverage %.0f%% of issues\n\n", s.TrackingCoverage))
	b.WriteString(renderPieLegend(th, s.UsageSegments, popContentWidth))

	over := capacityOutliers(s)
	if len(over) > 0 {
		b.WriteString("\n\n")
		b.WriteString(th.Header.Render("Capacity"))
		b.WriteString("\n")
		for _, line := range over {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// capacityOutliers lists people outside the optimal band, worst first.
func capacityOutliers(s rollup.TimeSummary) []string {
	type row struct {
		name  string
		ci    rollup.CapacityInsight
		usage float64
	}
	var rows []row
	for _, ci := range s.Capacity {
		if ci.CapacityStatus == rollup.CapacityOptimal {
			continue
		}
		name := "Unassigned"
		if ci.Assignee != nil {
			name = ci.Assignee.Name
		}
		rows = append(rows, row{name: name, ci: ci, usage: ci.CapacityUsage})
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].usage > rows[b].usage })

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, fmt.Sprintf("%s %.0f%% (%s)",
			padRight(truncate(r.name, 16), 17), r.usage, r.ci.CapacityStatus))
	}
	return out
}

func renderSlippagePopover(th Theme, s rollup.SlippageSummary) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Slippage"))
	if !s.HasData {
		b.WriteString(th.MutedText.Render("no completed issues yet"))
		return b.String()
	}
	days := make([]float64, len(s.Items))
	for i, item := range s.Items {
		days[i] = float64(item.SlippageDays)
	}
	spread := math.Sqrt(compute.Variance(days))
	b.WriteString(fmt.Sprintf("Avg %+.1fd ±%.1fd · on-time rate %.0f%%\n\n",
		s.AvgSlippage, spread, s.OnTimeDeliveryRate))
	b.WriteString(renderPieLegend(th, s.Segments, popContentWidth))

	if len(s.RiskFactors) > 0 {
		b.WriteString("\n\n")
		b.WriteString(th.Header.Render("Risk factors"))
		b.WriteString("\n")
		for _, rf := range s.RiskFactors {
			b.WriteString(th.WarnText.Render("⚠ " + rf.Message))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTargetPopover(th Theme, s rollup.TargetSummary) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Target dates"))
	if !s.HasData() {
		b.WriteString(th.MutedText.Render("no target dates set"))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%d%% on track · %d tracked · %d missing\n\n",
		s.OnTrackPercentage, s.TotalTracked, s.MissingTargets))
	b.WriteString(renderPieLegend(th, s.Segments, popContentWidth))

	if len(s.OffTrackItems) > 0 {
		b.WriteString("\n\n")
		b.WriteString(th.Header.Render("Off track"))
		b.WriteString("\n")
		for i, item := range s.OffTrackItems {
			if i == 4 {
				b.WriteString(th.MutedText.Render(fmt.Sprintf("… and %d more", len(s.OffTrackItems)-i)))
				break
			}
			b.WriteString(fmt.Sprintf("%s %s\n",
				padRight(item.Issue.Key, 8), th.DangerText.Render(item.Reason)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStartDatePopover(th Theme, s rollup.StartDateSummary) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Start dates"))
	b.WriteString(fmt.Sprintf("Health %d%%\n", s.HealthScore))
	b.WriteString(fmt.Sprintf("Delayed starts   %d (%.0f pts)\n", s.DelayedStart, s.DelayedPoints))
	b.WriteString(fmt.Sprintf("Not started yet  %d\n", s.NotStartedYet))
	b.WriteString(fmt.Sprintf("Missing actuals  %d\n", s.MissingStartDates))
	b.WriteString(fmt.Sprintf("Unassigned       %d\n\n", s.MissingAssignee))
	b.WriteString(renderTimeline(th, s.Timeline, popContentWidth))
	return b.String()
}

func renderDueDatePopover(th Theme, s rollup.DueDateSummary) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Due dates"))
	b.WriteString(fmt.Sprintf("Health %d%%\n", s.HealthScore))
	b.WriteString(fmt.Sprintf("Overdue        %d (%.0f pts, max +%dd)\n", s.Overdue, s.OverduePoints, s.OverdueMaxDays))
	b.WriteString(fmt.Sprintf("Due this week  %d\n", s.DueThisWeek))
	b.WriteString(fmt.Sprintf("At risk        %d\n", s.AtRisk))
	b.WriteString(fmt.Sprintf("Missing dates  %d\n\n", s.MissingDueDates))
	b.WriteString(renderTimeline(th, s.Timeline, popContentWidth))
	return b.String()
}

func renderDependencyPopover(th Theme, s rollup.DependencySummary) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Dependencies"))
	if !s.HasData() {
		b.WriteString(th.MutedText.Render("no dependency links"))
		return b.String()
	}
	b.WriteString(renderPieLegend(th, s.Segments, popContentWidth))

	if len(s.RiskItems) > 0 {
		b.WriteString("\n\n")
		b.WriteString(th.Header.Render("Blocked work"))
		b.WriteString("\n")
		for i, item := range s.RiskItems {
			if i == 5 {
				b.WriteString(th.MutedText.Render(fmt.Sprintf("… and %d more", len(s.RiskItems)-i)))
				break
			}
			reason := item.Reason
			switch item.Risk {
			case rollup.DepRiskOverdue:
				reason = th.DangerText.Render(reason)
			case rollup.DepRiskPending:
				reason = th.WarnText.Render(reason)
			default:
				reason = th.GoodText.Render(reason)
			}
			b.WriteString(fmt.Sprintf("%s ← %s %s\n",
				padRight(item.Issue.Key, 8), padRight(item.Dependency.TargetIssueKey, 8), reason))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTrackingPopover(th Theme, s rollup.TrackingSummary) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Schedule buffer"))
	if !s.HasData() {
		b.WriteString(th.MutedText.Render("no issues with both dates"))
		return b.String()
	}
	b.WriteString(renderPieLegend(th, s.Segments, popContentWidth))
	health := map[rollup.TrackingSeverity]string{
		rollup.TrackLow:    "low risk",
		rollup.TrackMedium: "medium risk",
		rollup.TrackHigh:   "high risk",
	}[s.Health]
	b.WriteString(fmt.Sprintf("\n\nOverall: %s", health))
	return b.String()
}

// renderCommentsPopover renders the digest through glamour so the prose
// wraps like the markdown panel it mirrors.
func renderCommentsPopover(th Theme, d rollup.CommentsDigest) string {
	var b strings.Builder
	b.WriteString(popoverTitle(th, "Discussion digest"))
	if !d.HasData() {
		b.WriteString(th.MutedText.Render("no comments yet"))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%d comments across %d issues\n",
		d.TotalComments, d.ActiveIssues))

	var md strings.Builder
	for _, tab := range rollup.DigestTabs {
		md.WriteString("**" + tab.Label() + "**\n\n")
		md.WriteString(d.Sections[tab])
		md.WriteString("\n\n")
	}
	out, err := renderMarkdown(md.String(), popContentWidth)
	if err != nil {
		b.WriteString(md.String())
		return b.String()
	}
	b.WriteString(out)
	return strings.TrimRight(b.String(), "\n")
}

// renderMarkdown renders markdown with glamour at the given wrap width.
func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// popoverHeight estimates the rendered height for position clamping: count
// the newlines once rendered.
func popoverHeight(rendered string) int {
	return strings.Count(rendered, "\n") + 1
}
