// Package pipeline turns flat record snapshots into ordered, bucketed
// time series and overlays known events onto them.
package pipeline

import (
	"fmt"
	"sort"
	"time"

	"fedigraph/internal/model"
)

// Group buckets records by the given granularity, sums total_users per
// bucket, and returns the series in ascending bucket-key order (which is
// chronological order for a fixed granularity).
//
// A zero from/to bound imposes no constraint; supplied bounds are both
// inclusive. Any record whose date_checked fails to parse aborts the whole
// call with ErrMalformedRecord. Pure: no state survives between calls.
func Group(records []model.Record, g model.Granularity, from, to time.Time) (model.Series, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: granularity %d", ErrInvalidArgument, int(g))
	}

	totals := make(map[string]int64)
	for _, r := range records {
		ts, err := model.ParseTime(r.DateChecked)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: date_checked %q", ErrMalformedRecord, r.ID, r.DateChecked)
		}
		if !inRange(ts, from, to) {
			continue
		}
		totals[g.BucketKey(ts)] += r.TotalUsers
	}

	series := make(model.Series, 0, len(totals))
	for key, sum := range totals {
		series = append(series, model.BucketPoint{Key: key, Total: sum})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Key < series[j].Key
	})

	return series, nil
}

// inRange reports whether ts falls within [from, to]. Zero bounds are open.
func inRange(ts, from, to time.Time) bool {
	if !from.IsZero() && ts.Before(from) {
		return false
	}
	if !to.IsZero() && ts.After(to) {
		return false
	}
	return true
}
