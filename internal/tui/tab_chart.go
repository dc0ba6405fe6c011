package tui

import (
	"fmt"
	"strings"

	"fedigraph/internal/cli"
	"fedigraph/internal/model"
	"fedigraph/internal/tui/components"
	"fedigraph/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderChartTab(cw, ch int) string {
	t := theme.Active
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	markStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Background).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Background)

	if len(a.series) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  No datapoints in the selected range."))
		return b.String()
	}

	b.WriteString("\n ")
	b.WriteString(titleStyle.Render(fmt.Sprintf("Total users per %s", a.opts.Granularity)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d buckets · %s users",
		len(a.series), cli.FormatUsers(a.series.Total()))))
	b.WriteString("\n\n")

	marks := make([]components.Mark, len(a.annotations))
	for i, ann := range a.annotations {
		marks[i] = components.Mark{Index: ann.Index, Label: ann.Label}
	}

	// Leave room for the legend and warnings below the chart
	chartH := ch - 6 - len(a.annotations) - len(a.skipped)
	if chartH < 6 {
		chartH = 6
	}
	if chartH > 20 {
		chartH = 20
	}

	var chart string
	if a.opts.Chart == model.Line {
		chart = components.LineChart(a.series.Values(), a.series.Keys(), marks, t.Blue, cw-4, chartH)
	} else {
		chart = components.BarChart(a.series.Values(), a.series.Keys(), marks, t.Blue, cw-4, chartH)
	}
	for _, line := range strings.Split(chart, "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(a.annotations) > 0 {
		b.WriteString("\n")
		for _, ann := range a.annotations {
			key := a.series[ann.Index].Key
			b.WriteString("  ")
			b.WriteString(markStyle.Render("▲ "))
			b.WriteString(dimStyle.Render(key + "  "))
			b.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Render(ann.Label))
			b.WriteString("\n")
		}
	}

	for _, err := range a.skipped {
		b.WriteString("  ")
		b.WriteString(warnStyle.Render("⚠ " + err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}
