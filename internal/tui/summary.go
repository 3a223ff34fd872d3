package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nerja/internal/processor"
)

// SummaryRow is one label/value line of the end-of-run table.
type SummaryRow struct {
	Label string
	Value string
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	valueStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	ratioStyle = lipgloss.NewStyle().Foreground(ColorAccentAlt)
)

// StatsRows lays out the end-of-scan counters. Copy counters are omitted
// for report-only scans.
func StatsRows(s processor.Stats, reportOnly bool) []SummaryRow {
	rows := []SummaryRow{
		{Label: "Files scanned", Value: fmt.Sprintf("%d", s.Files)},
		{Label: "Images", Value: fmt.Sprintf("%d", s.Images)},
		{Label: "HD images", Value: fmt.Sprintf("%d", s.HD)},
		{Label: "Landscape / portrait / square", Value: fmt.Sprintf("%d / %d / %d", s.Landscape, s.Portrait, s.Square)},
		{Label: "Widescreen suitable / unsuitable", Value: fmt.Sprintf("%d / %d", s.Suitable, s.Unsuitable)},
	}
	if reportOnly {
		return rows
	}
	return append(rows,
		SummaryRow{Label: "Copied", Value: fmt.Sprintf("%d", s.Copied)},
		SummaryRow{Label: "Skipped (already present)", Value: fmt.Sprintf("%d", s.Skipped)},
		SummaryRow{Label: "Deduplicated by content", Value: fmt.Sprintf("%d", s.Deduplicated)},
		SummaryRow{Label: "Failed", Value: fmt.Sprintf("%d", s.Failed)},
		SummaryRow{Label: "Bytes copied", Value: fmt.Sprintf("%d (%s)", s.Bytes, FormatBytes(s.Bytes))},
	)
}

// RenderRatios lists the distinct aspect ratios seen, widest first.
func RenderRatios(ratios []string) string {
	if len(ratios) == 0 {
		return dimStyle.Render("No landscape HD images found.")
	}
	parts := make([]string, len(ratios))
	for i, r := range ratios {
		parts[i] = ratioStyle.Render(r)
	}
	return labelStyle.Render("Aspect ratios: ") + strings.Join(parts, dimStyle.Render(", "))
}
