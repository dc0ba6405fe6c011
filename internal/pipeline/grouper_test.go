package pipeline

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"fedigraph/internal/model"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := model.ParseTime(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

// sampleRecords is the fixture used throughout: three observations across
// two months.
func sampleRecords() []model.Record {
	return []model.Record{
		{ID: 1, TotalUsers: 10, DateChecked: "2025-01-01 00:00:00"},
		{ID: 2, TotalUsers: 5, DateChecked: "2025-01-15 00:00:00"},
		{ID: 3, TotalUsers: 7, DateChecked: "2025-02-01 00:00:00"},
	}
}

func TestGroupByMonth(t *testing.T) {
	series, err := Group(sampleRecords(), model.Month, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}

	want := model.Series{
		{Key: "2025-01", Total: 15},
		{Key: "2025-02", Total: 7},
	}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("Group = %v, want %v", series, want)
	}
}

func TestGroupByDay(t *testing.T) {
	series, err := Group(sampleRecords(), model.Day, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("len = %d, want 3", len(series))
	}
	if series[0].Key != "2025-01-01" || series[0].Total != 10 {
		t.Errorf("series[0] = %v", series[0])
	}
}

func TestGroupByWeekSumsAcrossDays(t *testing.T) {
	// Jan 13 and Jan 15 2025 are both ISO week 3.
	records := []model.Record{
		{ID: 1, TotalUsers: 3, DateChecked: "2025-01-13 08:00:00"},
		{ID: 2, TotalUsers: 4, DateChecked: "2025-01-15 08:00:00"},
	}
	series, err := Group(records, model.Week, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	want := model.Series{{Key: "2025-W03", Total: 7}}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("Group = %v, want %v", series, want)
	}
}

func TestGroupDateFromFilter(t *testing.T) {
	series, err := Group(sampleRecords(), model.Month, mustTime(t, "2025-02-01 00:00:00"), time.Time{})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	want := model.Series{{Key: "2025-02", Total: 7}}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("Group = %v, want %v", series, want)
	}
}

func TestGroupFilterBoundsInclusive(t *testing.T) {
	// Records exactly on both bounds must be included.
	from := mustTime(t, "2025-01-01 00:00:00")
	to := mustTime(t, "2025-02-01 00:00:00")

	series, err := Group(sampleRecords(), model.Month, from, to)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if got := series.Total(); got != 22 {
		t.Errorf("filtered total = %d, want 22 (bounds are inclusive)", got)
	}
}

func TestGroupInvalidGranularity(t *testing.T) {
	_, err := Group(sampleRecords(), model.Granularity(99), time.Time{}, time.Time{})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestGroupMalformedRecordAborts(t *testing.T) {
	records := append(sampleRecords(), model.Record{ID: 4, TotalUsers: 1, DateChecked: "not-a-date"})

	series, err := Group(records, model.Month, time.Time{}, time.Time{})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("err = %v, want ErrMalformedRecord", err)
	}
	if series != nil {
		t.Errorf("series = %v, want nil (no partial aggregate)", series)
	}
	if !strings.Contains(err.Error(), "not-a-date") {
		t.Errorf("error %q does not name the offending value", err)
	}
}

func TestGroupEmptyInput(t *testing.T) {
	series, err := Group(nil, model.Month, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(series) != 0 {
		t.Errorf("series = %v, want empty", series)
	}
}

func TestGroupEmptyRange(t *testing.T) {
	series, err := Group(sampleRecords(), model.Month,
		mustTime(t, "2030-01-01 00:00:00"), time.Time{})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(series) != 0 {
		t.Errorf("series = %v, want empty (range matches nothing)", series)
	}
}

func TestGroupZeroCountRecords(t *testing.T) {
	records := []model.Record{
		{ID: 1, TotalUsers: 0, DateChecked: "2025-03-01 00:00:00"},
	}
	series, err := Group(records, model.Month, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	want := model.Series{{Key: "2025-03", Total: 0}}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("Group = %v, want %v", series, want)
	}
}

func TestGroupOrderingInvariant(t *testing.T) {
	// Deliberately unsorted input across granularities; output keys must be
	// strictly increasing lexicographically.
	records := []model.Record{
		{ID: 1, TotalUsers: 1, DateChecked: "2025-11-03 00:00:00"},
		{ID: 2, TotalUsers: 2, DateChecked: "2024-02-29 12:00:00"},
		{ID: 3, TotalUsers: 3, DateChecked: "2025-01-20 06:30:00"},
		{ID: 4, TotalUsers: 4, DateChecked: "2024-12-31 23:59:59"},
		{ID: 5, TotalUsers: 5, DateChecked: "2025-11-04 00:00:00"},
	}

	for _, g := range []model.Granularity{model.Day, model.Week, model.Month} {
		series, err := Group(records, g, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("Group(%v): %v", g, err)
		}
		keys := series.Keys()
		if !sort.StringsAreSorted(keys) {
			t.Errorf("%v keys not sorted: %v", g, keys)
		}
		for i := 1; i < len(keys); i++ {
			if keys[i] == keys[i-1] {
				t.Errorf("%v duplicate key %q", g, keys[i])
			}
		}
	}
}

func TestGroupSumConservation(t *testing.T) {
	records := sampleRecords()
	series, err := Group(records, model.Week, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}

	var want int64
	for _, r := range records {
		want += r.TotalUsers
	}
	if got := series.Total(); got != want {
		t.Errorf("series total = %d, input total = %d", got, want)
	}
}

func TestGroupIdempotent(t *testing.T) {
	records := sampleRecords()
	first, err := Group(records, model.Month, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	second, err := Group(records, model.Month, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}
