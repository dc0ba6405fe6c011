package cmd

import (
	"fmt"

	"fedigraph/internal/model"
	"fedigraph/internal/tui"
	"fedigraph/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := effectiveConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	g, err := model.ParseGranularity(cfg.General.Granularity)
	if err != nil {
		return err
	}
	kind, err := model.ParseChartKind(cfg.General.Chart)
	if err != nil {
		return err
	}
	from, to, err := parseBounds(cfg)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Endpoint:    cfg.General.Endpoint,
		CachePath:   cachePath(),
		Granularity: g,
		Chart:       kind,
		From:        from,
		To:          to,
		Events:      cfg.Events,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
