package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"fedigraph/internal/config"
	"fedigraph/internal/model"
	"fedigraph/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagGranularity string
	flagChart       string
	flagFrom        string
	flagTo          string
	flagEndpoint    string
	flagCachePath   string
	flagForce       bool
	flagQuiet       bool
)

var rootCmd = &cobra.Command{
	Use:   "fedigraph",
	Short: "Fediverse growth statistics CLI",
	Long:  "Chart the growth of the fediverse: monthly user statistics from fediverse.observer, bucketed by day, week, or month, annotated with known events.",
	RunE:  runChart,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagGranularity, "granularity", "g", "", "Bucket granularity: day, week, or month")
	rootCmd.PersistentFlags().StringVar(&flagChart, "chart", "", "Chart style: bar or line")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Only include datapoints on or after this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "Only include datapoints on or before this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "Observer API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCachePath, "cache", "", "Snapshot database path (overrides default)")
	rootCmd.PersistentFlags().BoolVar(&flagForce, "force", false, "Refetch even if the snapshot is fresh")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// effectiveConfig loads the config file and applies flag overrides.
func effectiveConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v, using defaults\n", err)
		cfg = config.DefaultConfig()
	}
	if flagEndpoint != "" {
		cfg.General.Endpoint = flagEndpoint
	}
	if flagGranularity != "" {
		cfg.General.Granularity = flagGranularity
	}
	if flagChart != "" {
		cfg.General.Chart = flagChart
	}
	if flagFrom != "" {
		cfg.General.DateFrom = flagFrom
	}
	if flagTo != "" {
		cfg.General.DateTo = flagTo
	}
	return cfg
}

func cachePath() string {
	if flagCachePath != "" {
		return flagCachePath
	}
	return config.CachePath()
}

// loadSnapshot is the shared data loading path used by all commands.
// The snapshot cache serves until the calendar month rolls over.
func loadSnapshot(cfg config.Config) (*pipeline.LoadResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := pipeline.LoadRecords(ctx, pipeline.LoadOptions{
		Endpoint:  cfg.General.Endpoint,
		CachePath: cachePath(),
		Force:     flagForce,
	})
	if err != nil {
		return nil, err
	}

	if !flagQuiet {
		if result.Refreshed {
			fmt.Fprintf(os.Stderr, "  Fetched %d datapoints from %s\n", len(result.Records), cfg.General.Endpoint)
		} else {
			fmt.Fprintf(os.Stderr, "  Using cached data from %s\n", result.FetchedAt.Format("2006-01-02"))
		}
	}

	return result, nil
}

// parseBounds resolves the configured date range into filter bounds.
// Zero times mean unbounded. Accepts bare dates and full timestamps.
func parseBounds(cfg config.Config) (from, to time.Time, err error) {
	from, err = parseBound(cfg.General.DateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q: %w", cfg.General.DateFrom, err)
	}
	to, err = parseBound(cfg.General.DateTo)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q: %w", cfg.General.DateTo, err)
	}
	return from, to, nil
}

func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts, nil
	}
	return model.ParseTime(s)
}

// grouped runs the full pipeline for the current flags: load, group, and
// annotate. Malformed event diagnostics go to stderr; a malformed record
// aborts.
func grouped(cfg config.Config) (model.Series, []model.Annotation, error) {
	g, err := model.ParseGranularity(cfg.General.Granularity)
	if err != nil {
		return nil, nil, err
	}

	from, to, err := parseBounds(cfg)
	if err != nil {
		return nil, nil, err
	}

	result, err := loadSnapshot(cfg)
	if err != nil {
		return nil, nil, err
	}

	series, err := pipeline.Group(result.Records, g, from, to)
	if err != nil {
		return nil, nil, err
	}

	annotations, skipped, err := pipeline.Annotate(cfg.Events, series.KeyIndex(), g, from, to)
	if err != nil {
		return nil, nil, err
	}
	for _, skipErr := range skipped {
		fmt.Fprintf(os.Stderr, "  Warning: %v\n", skipErr)
	}

	return series, annotations, nil
}
