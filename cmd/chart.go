package cmd

import (
	"fmt"

	"fedigraph/internal/cli"
	"fedigraph/internal/model"
	"fedigraph/internal/tui/components"
	"fedigraph/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const (
	chartWidth  = 100
	chartHeight = 15
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the growth chart",
	RunE:  runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	cfg := effectiveConfig()
	theme.SetActive(cfg.Appearance.Theme)

	kind, err := model.ParseChartKind(cfg.General.Chart)
	if err != nil {
		return err
	}

	series, annotations, err := grouped(cfg)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		fmt.Println("\n  No datapoints in the selected range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FEDIVERSE USERS  per %s", cfg.General.Granularity)))
	fmt.Println()

	marks := make([]components.Mark, len(annotations))
	for i, ann := range annotations {
		marks[i] = components.Mark{Index: ann.Index, Label: ann.Label}
	}

	t := theme.Active
	var chart string
	if kind == model.Line {
		chart = components.LineChart(series.Values(), series.Keys(), marks, t.Blue, chartWidth, chartHeight)
	} else {
		chart = components.BarChart(series.Values(), series.Keys(), marks, t.Blue, chartWidth, chartHeight)
	}
	fmt.Println(chart)

	if len(annotations) > 0 {
		fmt.Println()
		markStyle := lipgloss.NewStyle().Foreground(cli.ColorYellow).Bold(true)
		dimStyle := lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
		for _, ann := range annotations {
			fmt.Printf("  %s %s  %s\n",
				markStyle.Render("▲"),
				dimStyle.Render(series[ann.Index].Key),
				ann.Label)
		}
	}

	fmt.Printf("\n  %d buckets · %s users total\n\n",
		len(series), cli.FormatUsers(series.Total()))

	return nil
}
