package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refetch statistics from the observer API",
	Long:  "Fetch the latest monthly statistics and replace the local snapshot, regardless of freshness.",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(_ *cobra.Command, _ []string) error {
	cfg := effectiveConfig()

	flagForce = true
	result, err := loadSnapshot(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Snapshot updated: %d datapoints\n\n", len(result.Records))
	return nil
}
