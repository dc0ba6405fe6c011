package model

import (
	"testing"
	"time"
)

func TestParseGranularity(t *testing.T) {
	cases := []struct {
		in      string
		want    Granularity
		wantErr bool
	}{
		{"day", Day, false},
		{"week", Week, false},
		{"month", Month, false},
		{"year", 0, true},
		{"", 0, true},
		{"Month", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseGranularity(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseGranularity(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseGranularity(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseGranularity(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestBucketKeyFormats(t *testing.T) {
	ts := time.Date(2025, 2, 3, 14, 30, 0, 0, time.UTC)

	if got := Day.BucketKey(ts); got != "2025-02-03" {
		t.Errorf("day key = %q, want 2025-02-03", got)
	}
	if got := Week.BucketKey(ts); got != "2025-W06" {
		t.Errorf("week key = %q, want 2025-W06", got)
	}
	if got := Month.BucketKey(ts); got != "2025-02" {
		t.Errorf("month key = %q, want 2025-02", got)
	}
}

func TestBucketKeyISOWeekYearBoundary(t *testing.T) {
	// 2024-12-30 belongs to ISO week 1 of 2025.
	ts := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
	if got := Week.BucketKey(ts); got != "2025-W01" {
		t.Errorf("week key = %q, want 2025-W01", got)
	}
}

func TestBucketKeyWeekZeroPadded(t *testing.T) {
	ts := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	if got := Week.BucketKey(ts); got != "2025-W02" {
		t.Errorf("week key = %q, want 2025-W02 (zero-padded)", got)
	}
}

func TestParseChartKind(t *testing.T) {
	if k, err := ParseChartKind("bar"); err != nil || k != Bar {
		t.Errorf("ParseChartKind(bar) = %v, %v", k, err)
	}
	if k, err := ParseChartKind("line"); err != nil || k != Line {
		t.Errorf("ParseChartKind(line) = %v, %v", k, err)
	}
	if _, err := ParseChartKind("scatter"); err == nil {
		t.Error("ParseChartKind(scatter): expected error")
	}
}

func TestSeriesHelpers(t *testing.T) {
	s := Series{
		{Key: "2025-01", Total: 15},
		{Key: "2025-02", Total: 7},
	}

	idx := s.KeyIndex()
	if idx["2025-01"] != 0 || idx["2025-02"] != 1 {
		t.Errorf("KeyIndex = %v", idx)
	}
	if got := s.Total(); got != 22 {
		t.Errorf("Total = %d, want 22", got)
	}
	if keys := s.Keys(); keys[0] != "2025-01" || keys[1] != "2025-02" {
		t.Errorf("Keys = %v", keys)
	}
	if vals := s.Values(); vals[0] != 15 || vals[1] != 7 {
		t.Errorf("Values = %v", vals)
	}
}
