package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/workdeck/pkg/rollup"
)

// legendBarWidth is the width of the proportional bar in a legend row.
const legendBarWidth = 12

// renderPieLegend renders pie segments as a unicode bar legend: one row per
// slice with a proportional bar, label, and percentage. Zero-value segments
// are already dropped by rollup.Pie.
func renderPieLegend(th Theme, segments []rollup.Segment, width int) string {
	slices := rollup.Pie(segments)
	if len(slices) == 0 {
		return th.MutedText.Render("no data")
	}

	var b strings.Builder
	for i, sl := range slices {
		if i > 0 {
			b.WriteString("\n")
		}
		filled := int(sl.Percent * legendBarWidth)
		if filled < 1 {
			filled = 1
		}
		if filled > legendBarWidth {
			filled = legendBarWidth
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", legendBarWidth-filled)
		style := th.Renderer.NewStyle().Foreground(lipgloss.Color(sl.Color))
		label := truncate(sl.Label, width-legendBarWidth-7)
		b.WriteString(fmt.Sprintf("%s %s %s",
			style.Render(bar),
			padLeft(fmt.Sprintf("%.0f%%", sl.Percent*100), 4),
			label))
	}
	return b.String()
}

// renderTimeline renders a day-bucket timeline as a sparkline-style row of
// counts, capped to the last few buckets that fit.
func renderTimeline(th Theme, buckets []rollup.DayBucket, width int) string {
	if len(buckets) == 0 {
		return th.MutedText.Render("no dated items")
	}

	// Each bucket takes "MM-DD:N " ~ 9 cells; show the most recent that fit.
	per := 9
	maxBuckets := width / per
	if maxBuckets < 1 {
		maxBuckets = 1
	}
	if len(buckets) > maxBuckets {
		buckets = buckets[len(buckets)-maxBuckets:]
	}

	parts := make([]string, len(buckets))
	for i, bk := range buckets {
		parts[i] = fmt.Sprintf("%s:%d", bk.Date.Format("01-02"), bk.Count)
	}
	return th.SecondaryText.Render(strings.Join(parts, "  "))
}
