package cmd

import (
	"fmt"
	"time"

	"fedigraph/internal/cli"
	"fedigraph/internal/pipeline"
	"fedigraph/internal/store"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show snapshot freshness and cache info",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg := effectiveConfig()

	cache, err := store.Open(cachePath())
	if err != nil {
		return fmt.Errorf("opening snapshot cache: %w", err)
	}
	defer cache.Close()

	fetchedAt, err := cache.FetchedAt()
	if err != nil {
		return err
	}
	count, err := cache.RecordCount()
	if err != nil {
		return err
	}

	now := time.Now()
	freshness := "fresh (same calendar month)"
	if pipeline.IsStale(fetchedAt, now) {
		freshness = "stale (will refetch on next run)"
	}
	fetched := "never"
	if !fetchedAt.IsZero() {
		fetched = fmt.Sprintf("%s (%s ago)", fetchedAt.Format("2006-01-02 15:04"), cli.FormatAge(fetchedAt, now))
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SNAPSHOT STATUS"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Endpoint", cfg.General.Endpoint},
			{"Cache", cachePath()},
			{"Datapoints", cli.FormatNumber(int64(count))},
			{"Fetched", fetched},
			{"Freshness", freshness},
		},
	}))

	return nil
}
