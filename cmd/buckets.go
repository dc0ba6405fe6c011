package cmd

import (
	"fmt"

	"fedigraph/internal/cli"

	"github.com/spf13/cobra"
)

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "Bucket totals table",
	RunE:  runBuckets,
}

func init() {
	rootCmd.AddCommand(bucketsCmd)
}

func runBuckets(_ *cobra.Command, _ []string) error {
	cfg := effectiveConfig()

	series, annotations, err := grouped(cfg)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		fmt.Println("\n  No datapoints in the selected range.")
		return nil
	}

	annotated := make(map[int][]string)
	for _, ann := range annotations {
		annotated[ann.Index] = append(annotated[ann.Index], ann.Label)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUCKETS  per %s", cfg.General.Granularity)))
	fmt.Println()

	rows := make([][]string, 0, len(series))
	for i, p := range series {
		delta := ""
		if i > 0 {
			delta = cli.FormatDelta(p.Total, series[i-1].Total)
		}
		events := ""
		if labels, ok := annotated[i]; ok {
			events = "▲ " + labels[0]
			if len(labels) > 1 {
				events = fmt.Sprintf("▲ %s (+%d)", labels[0], len(labels)-1)
			}
		}
		rows = append(rows, []string{
			p.Key,
			cli.FormatNumber(p.Total),
			delta,
			events,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bucket", "Total Users", "Change", "Events"},
		Rows:    rows,
	}))

	fmt.Printf("  Trend: %s\n\n", cli.RenderSparkline(series.Values()))

	return nil
}
