package tui

import (
	"fmt"
	"strings"
	"time"

	"fedigraph/internal/model"
	"fedigraph/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderEventsTab lists every configured event and where (or whether) it
// lands on the current series.
func (a App) renderEventsTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Background)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Background)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Background)

	if len(a.opts.Events) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  No events configured."))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  Add [[events]] entries to the config file to annotate the chart:"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("    [[events]]"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(`    label = "Musk buys Twitter"`))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(`    date = "2022-10-27 00:00:00"`))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-32s %-22s %s", "Event", "Date", "Bucket")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", min(cw-4, 70))))
	b.WriteString("\n")

	index := a.series.KeyIndex()
	for _, ev := range a.opts.Events {
		label := ev.Label
		if len(label) > 30 {
			label = label[:29] + "…"
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-32s", label)))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %-22s", ev.Date)))

		ts, err := model.ParseTime(ev.Date)
		switch {
		case err != nil:
			b.WriteString(errStyle.Render(" malformed date"))
		case !a.inRange(ts):
			b.WriteString(warnStyle.Render(" outside range"))
		default:
			key := a.opts.Granularity.BucketKey(ts)
			if _, ok := index[key]; ok {
				b.WriteString(okStyle.Render(" ▲ " + key))
			} else {
				b.WriteString(warnStyle.Render(" no data (" + key + ")"))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (a App) inRange(ts time.Time) bool {
	if !a.opts.From.IsZero() && ts.Before(a.opts.From) {
		return false
	}
	if !a.opts.To.IsZero() && ts.After(a.opts.To) {
		return false
	}
	return true
}
