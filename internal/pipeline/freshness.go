package pipeline

import "time"

// IsStale reports whether a snapshot fetched at fetchedAt needs a refetch.
// The check is deliberately coarse: the upstream data only updates roughly
// monthly, so a snapshot is stale iff its calendar year or month differs
// from now's. A zero fetchedAt (no snapshot yet) is always stale.
func IsStale(fetchedAt, now time.Time) bool {
	if fetchedAt.IsZero() {
		return true
	}
	return fetchedAt.Year() != now.Year() || fetchedAt.Month() != now.Month()
}
