// Package export writes the dashboard's analytics charts to disk as SVG or
// PNG images: one pie per popover summary plus the due-date timeline. The
// arc geometry comes from rollup.Pie, the same math the terminal legends
// use, so an exported chart always matches what the dashboard showed.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/workdeck/pkg/model"
	"github.com/vanderheijden86/workdeck/pkg/rollup"
)

// Options controls chart export behaviour.
type Options struct {
	Dir    string    // output directory, created when missing
	Format string    // "svg" (default), "png", or "both"
	Title  string    // optional title prefix rendered on each chart
	Today  time.Time // freeze point for date-relative summaries
}

// pieChart is one exportable pie with its resolved slices.
type pieChart struct {
	Name   string // file stem, e.g. "status"
	Title  string
	Slices []rollup.Slice
}

// Charts renders every chart with data to opts.Dir and returns the paths
// written. Summaries without any populated segment are skipped rather than
// rendered empty.
func Charts(issues []model.Issue, opts Options) ([]string, error) {
	if len(issues) == 0 {
		return nil, fmt.Errorf("no issues to export")
	}
	if opts.Dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		format = "svg"
	}
	if format != "svg" && format != "png" && format != "both" {
		return nil, fmt.Errorf("unsupported format %q (want svg, png, or both)", format)
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = model.DayStart(today)

	var written []string
	write := func(name string, render func(path, ext string) error) error {
		exts := []string{format}
		if format == "both" {
			exts = []string{"svg", "png"}
		}
		for _, ext := range exts {
			path := filepath.Join(opts.Dir, name+"."+ext)
			if err := render(path, ext); err != nil {
				return fmt.Errorf("render %s: %w", path, err)
			}
			written = append(written, path)
		}
		return nil
	}

	for _, chart := range buildPies(issues, today, opts.Title) {
		if len(chart.Slices) == 0 {
			continue
		}
		chart := chart
		if err := write(chart.Name, func(path, ext string) error {
			return renderPie(path, ext, chart)
		}); err != nil {
			return written, err
		}
	}

	due := rollup.ComputeDueDateSummary(issues, today)
	if len(due.Timeline) > 0 {
		title := chartTitle(opts.Title, "Due dates per day")
		if err := write("timeline", func(path, ext string) error {
			return renderTimeline(path, ext, title, due.Timeline)
		}); err != nil {
			return written, err
		}
	}

	return written, nil
}

// buildPies assembles the exportable pie list from the rollup summaries,
// mirroring the dashboard's popover set.
func buildPies(issues []model.Issue, today time.Time, prefix string) []pieChart {
	status := rollup.StatusDistribution(issues)
	budget := rollup.ComputeBudgetSummary(issues)
	points := rollup.ComputeStoryPointsSummary(issues)
	slip := rollup.ComputeSlippageSummary(issues)
	target := rollup.ComputeTargetSummary(issues, today)
	deps := rollup.ComputeDependencySummary(issues, today)
	timet := rollup.ComputeTimeSummary(issues)
	track := rollup.ComputeTrackingSummary(issues)

	return []pieChart{
		{"status", chartTitle(prefix, "Status"), rollup.Pie(status.Segments)},
		{"budget", chartTitle(prefix, "Budget by status"), rollup.Pie(budget.StatusSegments)},
		{"budget-efficiency", chartTitle(prefix, "Budget efficiency"), rollup.Pie(budget.EfficiencySegments)},
		{"storypoints", chartTitle(prefix, "Story points by status"), rollup.Pie(points.StatusSegments)},
		{"slippage", chartTitle(prefix, "Delivery slippage"), rollup.Pie(slip.Segments)},
		{"target", chartTitle(prefix, "Target date health"), rollup.Pie(target.Segments)},
		{"dependencies", chartTitle(prefix, "Dependencies by type"), rollup.Pie(deps.Segments)},
		{"timetracking", chartTitle(prefix, "Time usage"), rollup.Pie(timet.UsageSegments)},
		{"tracking", chartTitle(prefix, "Tracking health"), rollup.Pie(track.Segments)},
	}
}

func chartTitle(prefix, name string) string {
	if strings.TrimSpace(prefix) == "" {
		return name
	}
	return prefix + " · " + name
}
