package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/workdeck/pkg/compute"
	"github.com/vanderheijden86/workdeck/pkg/model"
	"github.com/vanderheijden86/workdeck/pkg/selection"
)

// panelContentWidth is the inner width of the computation panel, inside
// the border and padding of selection.PanelWidth.
const panelContentWidth = selection.PanelWidth - 4

// renderPanel renders the computation panel for the current selection. One
// block per (field, dataType) group: date groups get a range block, numeric
// groups the active reduction. A cross-field date total closes the panel
// when more than one date group is selected.
func renderPanel(th Theme, cells []model.Cell, mode compute.Mode) string {
	var b strings.Builder

	b.WriteString(th.PrimaryBold.Render("Selection"))
	b.WriteString(th.MutedText.Render(fmt.Sprintf("  %d %s", len(cells), plural(len(cells), "cell", "cells"))))
	b.WriteString("\n")

	groups := compute.GroupCells(cells)
	var dateGroups []compute.CellGroup
	for _, g := range groups {
		b.WriteString(RenderDivider(th, panelContentWidth))
		b.WriteString("\n")
		if g.DataType == model.TypeDate {
			dateGroups = append(dateGroups, g)
			b.WriteString(renderDateBlock(th, g))
		} else {
			b.WriteString(renderNumericBlock(th, g, mode))
		}
	}

	if len(dateGroups) > 1 {
		b.WriteString(RenderDivider(th, panelContentWidth))
		b.WriteString("\n")
		b.WriteString(renderCrossFieldBlock(th, dateGroups))
	}

	b.WriteString(RenderDivider(th, panelContentWidth))
	b.WriteString("\n")
	b.WriteString(th.MutedText.Render("m mode · y copy · esc close"))

	return th.PanelBorder.Width(selection.PanelWidth - 2).Render(b.String())
}

func renderDateBlock(th Theme, g compute.CellGroup) string {
	r := compute.DateRange(compute.DateValues(g.Cells))

	var b strings.Builder
	b.WriteString(th.Header.Render(g.Field.Label()))
	b.WriteString("\n")
	if !r.HasData() {
		b.WriteString(th.MutedText.Render("no valid dates"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%s %s\n", padRight("Earliest", 10), compute.FormatDate(r.Earliest)))
	b.WriteString(fmt.Sprintf("%s %s\n", padRight("Latest", 10), compute.FormatDate(r.Latest)))
	b.WriteString(fmt.Sprintf("%s %d %s\n", padRight("Span", 10), r.DifferenceInDays,
		plural(r.DifferenceInDays, "day", "days")))
	return b.String()
}

func renderNumericBlock(th Theme, g compute.CellGroup, mode compute.Mode) string {
	values := compute.NumericValues(g.Cells)
	result := compute.Numerical(values, mode)

	var b strings.Builder
	b.WriteString(th.Header.Render(g.Field.Label()))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", padRight(mode.Label(), 10),
		compute.FormatNumber(result, g.DataType)))
	b.WriteString(th.MutedText.Render(fmt.Sprintf("%d of %d values numeric", len(values), len(g.Cells))))
	b.WriteString("\n")
	return b.String()
}

// renderCrossFieldBlock spans every selected date cell regardless of field,
// answering "how long does all of this run end to end".
func renderCrossFieldBlock(th Theme, dateGroups []compute.CellGroup) string {
	var all []string
	for _, g := range dateGroups {
		all = append(all, compute.DateValues(g.Cells)...)
	}
	r := compute.DateRange(all)

	var b strings.Builder
	b.WriteString(th.Header.Render("All dates"))
	b.WriteString("\n")
	if r.HasData() {
		b.WriteString(fmt.Sprintf("%s → %s · %d %s\n",
			compute.FormatDate(r.Earliest), compute.FormatDate(r.Latest),
			r.DifferenceInDays, plural(r.DifferenceInDays, "day", "days")))
	} else {
		b.WriteString(th.MutedText.Render("no valid dates"))
		b.WriteString("\n")
	}
	return b.String()
}

// panelClipboardLine is the plain-text line 'y' copies: the primary result
// of each group, separated by " | ".
func panelClipboardLine(cells []model.Cell, mode compute.Mode) string {
	var parts []string
	for _, g := range compute.GroupCells(cells) {
		if g.DataType == model.TypeDate {
			r := compute.DateRange(compute.DateValues(g.Cells))
			if r.HasData() {
				parts = append(parts, fmt.Sprintf("%s: %s → %s (%dd)",
					g.Field.Label(), r.Earliest, r.Latest, r.DifferenceInDays))
			}
			continue
		}
		v := compute.Numerical(compute.NumericValues(g.Cells), mode)
		parts = append(parts, fmt.Sprintf("%s %s: %s",
			g.Field.Label(), mode.Label(), compute.FormatNumber(v, g.DataType)))
	}
	return strings.Join(parts, " | ")
}

// panelHeight estimates the rendered panel height for position clamping.
func panelHeight(cells []model.Cell) int {
	groups := compute.GroupCells(cells)
	h := 2 // header + trailing hint
	dates := 0
	for _, g := range groups {
		if g.DataType == model.TypeDate {
			h += 5
			dates++
		} else {
			h += 4
		}
	}
	if dates > 1 {
		h += 3
	}
	return h + 3 // border + footer divider
}
