package pipeline

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestIsStale(t *testing.T) {
	cases := []struct {
		name      string
		fetchedAt time.Time
		now       time.Time
		want      bool
	}{
		{"same month", date(2025, 8, 10), date(2025, 8, 25), false},
		{"next month", date(2025, 7, 31), date(2025, 8, 1), true},
		{"same month previous year", date(2024, 8, 10), date(2025, 8, 10), true},
		{"never fetched", time.Time{}, date(2025, 8, 1), true},
		// Coarse by design: a snapshot from day 1 stays fresh through day 31.
		{"day 1 vs day 31", date(2025, 8, 1), date(2025, 8, 31), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsStale(tc.fetchedAt, tc.now); got != tc.want {
				t.Errorf("IsStale(%v, %v) = %v, want %v", tc.fetchedAt, tc.now, got, tc.want)
			}
		})
	}
}
