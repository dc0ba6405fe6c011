// Package tui provides the interactive Bubble Tea dashboard for fedigraph.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fedigraph/internal/cli"
	"fedigraph/internal/config"
	"fedigraph/internal/model"
	"fedigraph/internal/pipeline"
	"fedigraph/internal/tui/components"
	"fedigraph/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the initial snapshot load finishes.
type DataLoadedMsg struct {
	Result *pipeline.LoadResult
	Err    error
}

// RefreshDoneMsg is sent when a forced refetch completes.
type RefreshDoneMsg struct {
	Result *pipeline.LoadResult
	Err    error
}

// Options configures the dashboard before the first load.
type Options struct {
	Endpoint    string
	CachePath   string
	Granularity model.Granularity
	Chart       model.ChartKind
	From        time.Time
	To          time.Time
	Events      []model.KnownEvent
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Data
	records   []model.Record
	fetchedAt time.Time
	loaded    bool
	loadErr   error

	// Pre-computed for the current granularity and range
	series      model.Series
	annotations []model.Annotation
	skipped     []error
	groupErr    error

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	refreshing bool

	// Per-tab state
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		opts:      opts,
		needSetup: !config.Exists(),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.opts, false),
		a.spinner.Tick,
	)
}

// recompute rebuilds the bucket series and annotations from the current
// record snapshot. A grouping failure (malformed record in the snapshot)
// is kept and surfaced on every tab instead of a chart.
func (a *App) recompute() {
	a.series, a.groupErr = pipeline.Group(a.records, a.opts.Granularity, a.opts.From, a.opts.To)
	if a.groupErr != nil {
		a.annotations, a.skipped = nil, nil
		return
	}
	a.annotations, a.skipped, _ = pipeline.Annotate(
		a.opts.Events, a.series.KeyIndex(), a.opts.Granularity, a.opts.From, a.opts.To)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == 3 && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == 3 {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		switch key {
		case "q":
			return a, tea.Quit

		case "r":
			if !a.refreshing {
				a.refreshing = true
				return a, tea.Batch(refreshDataCmd(a.opts), a.spinner.Tick)
			}
			return a, nil

		// Granularity switches
		case "d":
			return a.setGranularity(model.Day)
		case "w":
			return a.setGranularity(model.Week)
		case "m":
			return a.setGranularity(model.Month)

		// Chart kind switches
		case "b":
			a.opts.Chart = model.Bar
			return a, nil
		case "l":
			a.opts.Chart = model.Line
			return a, nil

		// Tab navigation
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		if msg.Result != nil {
			a.records = msg.Result.Records
			a.fetchedAt = msg.Result.FetchedAt
			a.recompute()
		}

		// Activate first-run setup after data loads
		if a.needSetup {
			a.setupForm = newSetupForm(len(a.records), &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RefreshDoneMsg:
		a.refreshing = false
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.loadErr = nil
		a.records = msg.Result.Records
		a.fetchedAt = msg.Result.FetchedAt
		a.recompute()
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) setGranularity(g model.Granularity) (tea.Model, tea.Cmd) {
	if a.opts.Granularity == g {
		return a, nil
	}
	a.opts.Granularity = g
	a.recompute()
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.applySetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fedigraph needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◆ fedigraph"))
	b.WriteString(subtitleStyle.Render(" · Fediverse Growth Statistics"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading snapshot..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◆ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"c u e s", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate settings"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"d w m", "Day / Week / Month buckets"},
		{"b l", "Bar / Line chart"},
		{"r", "Refetch from the observer API"},
		{"Enter", "Edit setting"},
		{"Esc", "Cancel edit"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + filter pill)
	filterPillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	filterAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	filterStr := filterPillStyle.Render(" ") +
		filterAccentStyle.Render(a.opts.Granularity.String()) +
		filterPillStyle.Render(" │ ") +
		filterAccentStyle.Render(a.opts.Chart.String())
	if !a.opts.From.IsZero() {
		filterStr += filterPillStyle.Render(" │ from ") + filterAccentStyle.Render(a.opts.From.Format("2006-01-02"))
	}
	if !a.opts.To.IsZero() {
		filterStr += filterPillStyle.Render(" │ to ") + filterAccentStyle.Render(a.opts.To.Format("2006-01-02"))
	}
	if a.refreshing {
		filterStr += filterPillStyle.Render(" │ ") + filterAccentStyle.Render(a.spinner.View()+" fetching")
	}
	filterStr += filterPillStyle.Render(" ")

	filterRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		filterRowStyle.Render(filterStr)

	// 2. Render status bar
	statusBar := components.RenderStatusBar(w, cli.FormatAge(a.fetchedAt, time.Now()))

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content
	var content string
	switch {
	case a.loadErr != nil:
		content = a.renderLoadError()
	case a.groupErr != nil:
		content = a.renderGroupError()
	default:
		switch a.activeTab {
		case 0:
			content = a.renderChartTab(cw, contentH)
		case 1:
			content = a.renderBucketsTab(cw, contentH)
		case 2:
			content = a.renderEventsTab(cw)
		case 3:
			content = a.renderSettingsTab(cw)
		}
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Place content with background fill
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 7. Stack vertically and fill the full terminal
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderLoadError() string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Background)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	return "\n" + errStyle.Render("  Could not load statistics: "+a.loadErr.Error()) +
		"\n\n" + hintStyle.Render("  Press r to retry, q to quit")
}

func (a App) renderGroupError() string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Background)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	return "\n" + errStyle.Render("  Snapshot is unusable: "+a.groupErr.Error()) +
		"\n\n" + hintStyle.Render("  Press r to refetch a clean snapshot")
}

// ─── Data Commands ──────────────────────────────────────────────

func loadDataCmd(opts Options, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := pipeline.LoadRecords(ctx, pipeline.LoadOptions{
			Endpoint:  opts.Endpoint,
			CachePath: opts.CachePath,
			Force:     force,
		})
		return DataLoadedMsg{Result: result, Err: err}
	}
}

// refreshDataCmd forces a live refetch, bypassing the freshness check.
func refreshDataCmd(opts Options) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := pipeline.LoadRecords(ctx, pipeline.LoadOptions{
			Endpoint:  opts.Endpoint,
			CachePath: opts.CachePath,
			Force:     true,
		})
		return RefreshDoneMsg{Result: result, Err: err}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
