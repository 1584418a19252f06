package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/workdeck/pkg/rollup"
)

// Chart canvas geometry, shared by both renderers.
const (
	chartWidth  = 560
	chartHeight = 360
	pieCX       = 170.0
	pieCY       = 200.0
	pieRadius   = 120.0
	legendX     = 330.0
	legendY     = 120.0
	legendStep  = 28.0
	titleY      = 48.0
	barAreaTop  = 90.0
	barAreaBot  = 310.0
)

var (
	chartBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	chartText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	chartSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
	chartStroke   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	barFill       = mustHex(rollup.ColorInProgress)
)

// --- pie -------------------------------------------------------------------

func renderPie(path, ext string, chart pieChart) error {
	if ext == "png" {
		return renderPiePNG(path, chart)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return renderPieSVG(f, chart)
}

func renderPieSVG(w io.Writer, chart pieChart) error {
	canvas := svg.New(w)
	canvas.Start(chartWidth, chartHeight)
	canvas.Rect(0, 0, chartWidth, chartHeight, "fill:"+css(chartBackdrop))
	canvas.Text(24, int(titleY), chart.Title,
		fmt.Sprintf("fill:%s;font-size:18px;font-family:monospace;font-weight:bold", css(chartText)))

	// A single full-circle slice has coincident endpoints, which an SVG arc
	// cannot express; draw it as a circle instead.
	if len(chart.Slices) == 1 {
		canvas.Circle(int(pieCX), int(pieCY), int(pieRadius),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", chart.Slices[0].Color, css(chartStroke)))
	} else {
		for _, sl := range chart.Slices {
			x1, y1 := rollup.ArcPoint(pieCX, pieCY, pieRadius, sl.StartAngle)
			x2, y2 := rollup.ArcPoint(pieCX, pieCY, pieRadius, sl.EndAngle)
			large := 0
			if sl.LargeArc {
				large = 1
			}
			d := fmt.Sprintf("M%.1f,%.1f L%.1f,%.1f A%.1f,%.1f 0 %d 1 %.1f,%.1f Z",
				pieCX, pieCY, x1, y1, pieRadius, pieRadius, large, x2, y2)
			canvas.Path(d, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", sl.Color, css(chartStroke)))
		}
	}

	for i, sl := range chart.Slices {
		y := int(legendY + float64(i)*legendStep)
		canvas.Rect(int(legendX), y-10, 14, 14, "fill:"+sl.Color)
		canvas.Text(int(legendX)+22, y+2, legendLabel(sl),
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(chartSubtle)))
	}

	canvas.End()
	return nil
}

func renderPiePNG(path string, chart pieChart) error {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(chartBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(chartText)
	dc.DrawStringAnchored(chart.Title, 24, titleY, 0, 0.5)

	for _, sl := range chart.Slices {
		dc.SetColor(mustHex(sl.Color))
		dc.MoveTo(pieCX, pieCY)
		dc.DrawArc(pieCX, pieCY, pieRadius, rad(sl.StartAngle), rad(sl.EndAngle))
		dc.ClosePath()
		dc.Fill()
	}

	for i, sl := range chart.Slices {
		y := legendY + float64(i)*legendStep
		dc.SetColor(mustHex(sl.Color))
		dc.DrawRectangle(legendX, y-10, 14, 14)
		dc.Fill()
		dc.SetColor(chartSubtle)
		dc.DrawStringAnchored(legendLabel(sl), legendX+22, y, 0, 0.5)
	}

	return dc.SavePNG(path)
}

func legendLabel(sl rollup.Slice) string {
	return fmt.Sprintf("%s · %.0f%%", sl.Label, sl.Percent*100)
}

// --- timeline --------------------------------------------------------------

func renderTimeline(path, ext, title string, buckets []rollup.DayBucket) error {
	if ext == "png" {
		return renderTimelinePNG(path, title, buckets)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return renderTimelineSVG(f, title, buckets)
}

func renderTimelineSVG(w io.Writer, title string, buckets []rollup.DayBucket) error {
	canvas := svg.New(w)
	canvas.Start(chartWidth, chartHeight)
	canvas.Rect(0, 0, chartWidth, chartHeight, "fill:"+css(chartBackdrop))
	canvas.Text(24, int(titleY), title,
		fmt.Sprintf("fill:%s;font-size:18px;font-family:monospace;font-weight:bold", css(chartText)))

	barW, gap, maxCount := timelineScale(buckets)
	for i, b := range buckets {
		h := barHeight(b.Count, maxCount)
		x := 24.0 + float64(i)*(barW+gap)
		canvas.Rect(int(x), int(barAreaBot-h), int(barW), int(h), "fill:"+css(barFill))
		canvas.Text(int(x), int(barAreaBot)+16, b.Date.Format("01-02"),
			fmt.Sprintf("fill:%s;font-size:10px;font-family:monospace", css(chartSubtle)))
		canvas.Text(int(x), int(barAreaBot-h)-6, fmt.Sprintf("%d", b.Count),
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(chartSubtle)))
	}

	canvas.End()
	return nil
}

func renderTimelinePNG(path, title string, buckets []rollup.DayBucket) error {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(chartBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(chartText)
	dc.DrawStringAnchored(title, 24, titleY, 0, 0.5)

	barW, gap, maxCount := timelineScale(buckets)
	for i, b := range buckets {
		h := barHeight(b.Count, maxCount)
		x := 24.0 + float64(i)*(barW+gap)
		dc.SetColor(barFill)
		dc.DrawRectangle(x, barAreaBot-h, barW, h)
		dc.Fill()
		dc.SetColor(chartSubtle)
		dc.DrawStringAnchored(b.Date.Format("01-02"), x, barAreaBot+12, 0, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%d", b.Count), x, barAreaBot-h-8, 0, 0.5)
	}

	return dc.SavePNG(path)
}

func timelineScale(buckets []rollup.DayBucket) (barW, gap float64, maxCount int) {
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	usable := float64(chartWidth - 48)
	gap = 6
	barW = usable/float64(len(buckets)) - gap
	if barW < 4 {
		barW, gap = 4, 2
	}
	if barW > 48 {
		barW = 48
	}
	return barW, gap, maxCount
}

func barHeight(count, maxCount int) float64 {
	if maxCount == 0 {
		return 0
	}
	return (barAreaBot - barAreaTop) * float64(count) / float64(maxCount)
}

// --- helpers ---------------------------------------------------------------

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// mustHex parses a "#rrggbb" string. The palette is compile-time constant,
// so a malformed color falls back to gray rather than failing the export.
func mustHex(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{0x88, 0x88, 0x88, 0xff}
	}
	return color.RGBA{r, g, b, 0xff}
}
