package pipeline

import (
	"context"
	"fmt"
	"time"

	"fedigraph/internal/model"
	"fedigraph/internal/observer"
	"fedigraph/internal/store"
)

// LoadOptions configures the fetch-or-cache path.
type LoadOptions struct {
	Endpoint  string // observer API base URL
	CachePath string // snapshot database path
	Force     bool   // bypass the freshness check
}

// LoadResult holds the records served for this invocation and where they
// came from.
type LoadResult struct {
	Records   []model.Record
	FetchedAt time.Time
	Refreshed bool // true when a live fetch replaced the snapshot
}

// LoadRecords returns the current record snapshot, refetching from the
// observer API when the cached one is stale (different calendar month),
// empty, or Force is set. A fetch failure is fatal for the invocation —
// there is no retry and no silent fallback to stale data.
func LoadRecords(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	cache, err := store.Open(opts.CachePath)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot cache: %w", err)
	}
	defer func() { _ = cache.Close() }()

	fetchedAt, err := cache.FetchedAt()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot age: %w", err)
	}

	if !opts.Force && !IsStale(fetchedAt, time.Now()) {
		records, err := cache.LoadRecords()
		if err != nil {
			return nil, fmt.Errorf("loading snapshot: %w", err)
		}
		if len(records) > 0 {
			return &LoadResult{Records: records, FetchedAt: fetchedAt}, nil
		}
		// Fresh but empty snapshot: refetch anyway.
	}

	client := observer.NewClient(opts.Endpoint)
	records, err := client.FetchMonthlyStats(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := cache.ReplaceRecords(records, now); err != nil {
		return nil, fmt.Errorf("writing snapshot: %w", err)
	}

	return &LoadResult{Records: records, FetchedAt: now, Refreshed: true}, nil
}
