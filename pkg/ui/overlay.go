package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlay composites a floating box onto a base view at screen position
// (x, y). Lines are spliced with ANSI-aware width math so styled base
// content survives on both sides of the box.
func overlay(base, box string, x, y int) string {
	if box == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")

	for i, bl := range boxLines {
		row := y + i
		if row < 0 {
			continue
		}
		for row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}

		line := baseLines[row]
		w := ansi.StringWidth(bl)

		left := ansi.Truncate(line, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		right := ansi.TruncateLeft(line, x+w, "")

		baseLines[row] = left + bl + right
	}
	return strings.Join(baseLines, "\n")
}
