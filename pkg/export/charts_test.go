package export_test

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/workdeck/pkg/export"
	"github.com/vanderheijden86/workdeck/pkg/testutil"
)

func frozenToday() time.Time {
	return time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
}

func TestChartsWritesSVGs(t *testing.T) {
	dir := t.TempDir()
	issues := testutil.Quick(30)

	written, err := export.Charts(issues, export.Options{Dir: dir, Today: frozenToday()})
	if err != nil {
		t.Fatalf("Charts: %v", err)
	}
	if len(written) == 0 {
		t.Fatal("expected at least one chart")
	}

	for _, path := range written {
		if filepath.Ext(path) != ".svg" {
			t.Errorf("default format should be svg, got %s", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		s := string(data)
		if !strings.Contains(s, "<svg") || !strings.Contains(s, "</svg>") {
			t.Errorf("%s is not a complete svg document", path)
		}
	}

	// The generated set always has statuses, so the status pie must exist.
	if _, err := os.Stat(filepath.Join(dir, "status.svg")); err != nil {
		t.Errorf("status chart missing: %v", err)
	}
}

func TestChartsWritesDecodablePNGs(t *testing.T) {
	dir := t.TempDir()
	issues := testutil.Quick(20)

	written, err := export.Charts(issues, export.Options{Dir: dir, Format: "png", Today: frozenToday()})
	if err != nil {
		t.Fatalf("Charts: %v", err)
	}

	for _, path := range written {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		_, err = png.Decode(f)
		f.Close()
		if err != nil {
			t.Errorf("%s does not decode as png: %v", path, err)
		}
	}
}

func TestChartsBothFormats(t *testing.T) {
	dir := t.TempDir()
	issues := testutil.Quick(10)

	written, err := export.Charts(issues, export.Options{Dir: dir, Format: "both", Today: frozenToday()})
	if err != nil {
		t.Fatalf("Charts: %v", err)
	}

	var svgs, pngs int
	for _, path := range written {
		switch filepath.Ext(path) {
		case ".svg":
			svgs++
		case ".png":
			pngs++
		}
	}
	if svgs == 0 || svgs != pngs {
		t.Errorf("both should emit matched pairs, got %d svg / %d png", svgs, pngs)
	}
}

func TestChartsRejectsBadInput(t *testing.T) {
	if _, err := export.Charts(nil, export.Options{Dir: t.TempDir()}); err == nil {
		t.Error("empty issue set must error")
	}
	if _, err := export.Charts(testutil.Quick(5), export.Options{}); err == nil {
		t.Error("missing output dir must error")
	}
	if _, err := export.Charts(testutil.Quick(5), export.Options{Dir: t.TempDir(), Format: "gif"}); err == nil {
		t.Error("unknown format must error")
	}
}

func TestChartTitlePrefix(t *testing.T) {
	dir := t.TempDir()
	issues := testutil.Quick(10)

	_, err := export.Charts(issues, export.Options{Dir: dir, Title: "Q3 review", Today: frozenToday()})
	if err != nil {
		t.Fatalf("Charts: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "status.svg"))
	if err != nil {
		t.Fatalf("read status chart: %v", err)
	}
	if !strings.Contains(string(data), "Q3 review") {
		t.Error("title prefix should appear in the rendered chart")
	}
}
