package tui

import (
	"fmt"
	"strings"
	"time"

	"fedigraph/internal/config"
	"fedigraph/internal/model"
	"fedigraph/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldEndpoint = iota
	settingsFieldGranularity
	settingsFieldChart
	settingsFieldTheme
	settingsFieldDateFrom
	settingsFieldDateTo
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldEndpoint:
		ti.Placeholder = "https://api.fediverse.observer/"
		ti.SetValue(cfg.General.Endpoint)
	case settingsFieldGranularity:
		ti.Placeholder = "day, week, month"
		ti.SetValue(cfg.General.Granularity)
	case settingsFieldChart:
		ti.Placeholder = "bar, line"
		ti.SetValue(cfg.General.Chart)
	case settingsFieldTheme:
		ti.Placeholder = "flexoki-dark, catppuccin-mocha, tokyo-night, terminal"
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldDateFrom:
		ti.Placeholder = "2022-01-01 (leave empty to clear)"
		ti.SetValue(cfg.General.DateFrom)
	case settingsFieldDateTo:
		ti.Placeholder = "2024-12-31 (leave empty to clear)"
		ti.SetValue(cfg.General.DateTo)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldEndpoint:
		if val != "" {
			cfg.General.Endpoint = val
			a.opts.Endpoint = val
		}
	case settingsFieldGranularity:
		if g, err := model.ParseGranularity(val); err == nil {
			cfg.General.Granularity = val
			a.opts.Granularity = g
			a.recompute()
		}
	case settingsFieldChart:
		if k, err := model.ParseChartKind(val); err == nil {
			cfg.General.Chart = val
			a.opts.Chart = k
		}
	case settingsFieldTheme:
		for _, t := range theme.All {
			if t.Name == val {
				cfg.Appearance.Theme = val
				theme.SetActive(val)
				break
			}
		}
	case settingsFieldDateFrom:
		if ts, ok := parseSettingsDate(val); ok {
			cfg.General.DateFrom = val
			a.opts.From = ts
			a.recompute()
		}
	case settingsFieldDateTo:
		if ts, ok := parseSettingsDate(val); ok {
			cfg.General.DateTo = val
			a.opts.To = ts
			a.recompute()
		}
	}

	a.settings.saveErr = config.Save(cfg)
}

// parseSettingsDate accepts an empty string (clears the bound), a bare
// date, or a full timestamp.
func parseSettingsDate(val string) (time.Time, bool) {
	if val == "" {
		return time.Time{}, true
	}
	if ts, err := time.Parse("2006-01-02", val); err == nil {
		return ts, true
	}
	if ts, err := model.ParseTime(val); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Background)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Background)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)

	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}

	fields := []struct {
		label string
		value string
	}{
		{"Endpoint", cfg.General.Endpoint},
		{"Granularity", cfg.General.Granularity},
		{"Chart", cfg.General.Chart},
		{"Theme", cfg.Appearance.Theme},
		{"Date from", orDefault(cfg.General.DateFrom, "(unbounded)")},
		{"Date to", orDefault(cfg.General.DateTo, "(unbounded)")},
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			b.WriteString(selectedLabelStyle.Render(fmt.Sprintf("  %-14s", f.label)))
			b.WriteString(" ")
			b.WriteString(a.settings.input.View())
		} else if i == a.settings.cursor {
			b.WriteString(selectedLabelStyle.Render(fmt.Sprintf("  %-14s", f.label)))
			b.WriteString(selectedStyle.Render(" " + f.value + " "))
		} else {
			b.WriteString(labelStyle.Render(fmt.Sprintf("  %-14s", f.label)))
			b.WriteString(valueStyle.Render(" " + f.value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case a.settings.saveErr != nil:
		b.WriteString(errStyle.Render("  Could not save: " + a.settings.saveErr.Error()))
	case a.settings.saved:
		b.WriteString(greenStyle.Render("  Saved to " + config.ConfigPath()))
	default:
		b.WriteString(dimStyle.Render("  j/k to move, Enter to edit, Esc to cancel"))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Events are edited in the config file: %s", config.ConfigPath())))
	b.WriteString("\n")

	return b.String()
}
