// Package cmd implements the fedigraph CLI commands.
package cmd

import (
	"fmt"

	"fedigraph/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Endpoint:    %s\n", cfg.General.Endpoint)
	fmt.Printf("    Granularity: %s\n", cfg.General.Granularity)
	fmt.Printf("    Chart:       %s\n", cfg.General.Chart)
	if cfg.General.DateFrom != "" {
		fmt.Printf("    Date from:   %s\n", cfg.General.DateFrom)
	}
	if cfg.General.DateTo != "" {
		fmt.Printf("    Date to:     %s\n", cfg.General.DateTo)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Printf("  [Events] (%d configured)\n", len(cfg.Events))
	for _, ev := range cfg.Events {
		fmt.Printf("    %s  %s\n", ev.Date, ev.Label)
	}
	fmt.Println()

	fmt.Printf("  Snapshot cache: %s\n", config.CachePath())
	fmt.Println()
	fmt.Println("  Run `fedigraph setup` to reconfigure.")
	return nil
}
