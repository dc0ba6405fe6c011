package cli

import (
	"testing"
	"time"
)

func TestFormatUsers(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234, "1.2K"},
		{1_500_000, "1.5M"},
		{2_000_000_000, "2.0B"},
	}
	for _, tc := range cases {
		if got := FormatUsers(tc.in); got != tc.want {
			t.Errorf("FormatUsers(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "never"},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m"},
		{"hours", now.Add(-130 * time.Minute), "2h 10m"},
		{"days", now.Add(-76 * time.Hour), "3d 4h"},
	}
	for _, tc := range cases {
		if got := FormatAge(tc.t, now); got != tc.want {
			t.Errorf("%s: FormatAge = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRenderSparklineLength(t *testing.T) {
	s := RenderSparkline([]float64{1, 2, 3, 4})
	if got := len([]rune(s)); got != 4 {
		t.Errorf("sparkline rune length = %d, want 4", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty input should render empty sparkline")
	}
}
