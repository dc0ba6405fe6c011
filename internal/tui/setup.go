package tui

import (
	"fmt"
	"strings"

	"fedigraph/internal/config"
	"fedigraph/internal/model"
	"fedigraph/internal/observer"
	"fedigraph/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues receives the first-run form answers.
type setupValues struct {
	Endpoint    string
	Granularity string
	Chart       string
	Theme       string
}

// newSetupForm builds the first-run setup form. recordCount is shown so the
// user can see the initial fetch worked before committing a config.
func newSetupForm(recordCount int, vals *setupValues) *huh.Form {
	defaults := config.DefaultConfig()
	vals.Endpoint = defaults.General.Endpoint
	vals.Granularity = defaults.General.Granularity
	vals.Chart = defaults.General.Chart
	vals.Theme = defaults.Appearance.Theme

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fedigraph!").
				Description(fmt.Sprintf("Fetched %d monthly datapoints from the observer API.\nA few defaults and you're done.", recordCount)),

			huh.NewInput().
				Title("Observer API endpoint").
				Placeholder(observer.DefaultBaseURL).
				Value(&vals.Endpoint).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("endpoint cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Default bucket granularity").
				Options(
					huh.NewOption("Month", "month"),
					huh.NewOption("Week", "week"),
					huh.NewOption("Day", "day"),
				).
				Value(&vals.Granularity),

			huh.NewSelect[string]().
				Title("Default chart style").
				Options(
					huh.NewOption("Bar", "bar"),
					huh.NewOption("Line", "line"),
				).
				Value(&vals.Chart),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	)
}

// applySetupConfig persists the form answers and applies them to the
// running session. Save errors are non-fatal: the answers still apply
// until the app exits.
func (a *App) applySetupConfig() {
	cfg := config.DefaultConfig()
	cfg.General.Endpoint = strings.TrimSpace(a.setupVals.Endpoint)
	cfg.General.Granularity = a.setupVals.Granularity
	cfg.General.Chart = a.setupVals.Chart
	cfg.Appearance.Theme = a.setupVals.Theme
	_ = config.Save(cfg)

	theme.SetActive(cfg.Appearance.Theme)

	a.opts.Endpoint = cfg.General.Endpoint
	if g, err := model.ParseGranularity(cfg.General.Granularity); err == nil {
		a.opts.Granularity = g
	}
	if k, err := model.ParseChartKind(cfg.General.Chart); err == nil {
		a.opts.Chart = k
	}
	a.recompute()
}
