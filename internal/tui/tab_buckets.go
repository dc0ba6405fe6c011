package tui

import (
	"fmt"
	"strings"

	"fedigraph/internal/cli"
	"fedigraph/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderBucketsTab shows the grouped series as a table, newest bucket
// first, with the change against the preceding bucket.
func (a App) renderBucketsTab(cw, ch int) string {
	t := theme.Active
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background)
	numStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background)
	upStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Background)
	downStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Background)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	annStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Background)

	if len(a.series) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  No datapoints in the selected range."))
		return b.String()
	}

	annotated := make(map[int][]string)
	for _, ann := range a.annotations {
		annotated[ann.Index] = append(annotated[ann.Index], ann.Label)
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-12s %14s %12s  %s", "Bucket", "Total Users", "Change", "Events")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", min(cw-4, 60))))
	b.WriteString("\n")

	// Newest first; table rows beyond the content height are cut by the caller.
	maxRows := ch - 5
	if maxRows < 1 {
		maxRows = 1
	}
	shown := 0
	for i := len(a.series) - 1; i >= 0 && shown < maxRows; i-- {
		p := a.series[i]

		delta := ""
		if i > 0 {
			delta = cli.FormatDelta(p.Total, a.series[i-1].Total)
		}
		deltaStyle := dimStyle
		if strings.HasPrefix(delta, "+") {
			deltaStyle = upStyle
		} else if strings.HasPrefix(delta, "-") {
			deltaStyle = downStyle
		}

		b.WriteString(keyStyle.Render(fmt.Sprintf("  %-12s", p.Key)))
		b.WriteString(numStyle.Render(fmt.Sprintf(" %14s", cli.FormatNumber(p.Total))))
		b.WriteString(deltaStyle.Render(fmt.Sprintf(" %12s", delta)))
		if labels, ok := annotated[i]; ok {
			b.WriteString(annStyle.Render("  ▲ " + strings.Join(labels, ", ")))
		}
		b.WriteString("\n")
		shown++
	}

	if len(a.series) > shown {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d older buckets", len(a.series)-shown)))
		b.WriteString("\n")
	}

	return b.String()
}
