package cmd

import (
	"fmt"

	"fedigraph/internal/cli"
	"fedigraph/internal/config"
	"fedigraph/internal/model"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List configured event annotations",
	RunE:  runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(_ *cobra.Command, _ []string) error {
	cfg := effectiveConfig()

	if len(cfg.Events) == 0 {
		fmt.Println()
		fmt.Println("  No events configured.")
		fmt.Println()
		fmt.Printf("  Add [[events]] entries to %s:\n", config.ConfigPath())
		fmt.Println()
		fmt.Println("    [[events]]")
		fmt.Println(`    label = "Musk buys Twitter"`)
		fmt.Println(`    date = "2022-10-27 00:00:00"`)
		fmt.Println()
		return nil
	}

	g, err := model.ParseGranularity(cfg.General.Granularity)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("KNOWN EVENTS"))
	fmt.Println()

	rows := make([][]string, 0, len(cfg.Events))
	for _, ev := range cfg.Events {
		bucket := ""
		if ts, err := model.ParseTime(ev.Date); err != nil {
			bucket = "malformed date"
		} else {
			bucket = g.BucketKey(ts)
		}
		rows = append(rows, []string{ev.Label, ev.Date, bucket})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Event", "Date", "Bucket"},
		Rows:    rows,
	}))

	return nil
}
