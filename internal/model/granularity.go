package model

import (
	"fmt"
	"time"
)

// Granularity selects the bucket size for time grouping.
type Granularity int

const (
	Day Granularity = iota
	Week
	Month
)

// ParseGranularity maps a user-supplied name to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "day":
		return Day, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	}
	return 0, fmt.Errorf("unknown granularity %q (want day, week, or month)", s)
}

func (g Granularity) String() string {
	switch g {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	}
	return fmt.Sprintf("Granularity(%d)", int(g))
}

// Valid reports whether g is one of the three defined granularities.
func (g Granularity) Valid() bool {
	return g == Day || g == Week || g == Month
}

// BucketKey derives the bucket label for a timestamp. Keys sort
// lexicographically in chronological order within one granularity:
// day "2006-01-02", week "2006-W02" (ISO week), month "2006-01".
func (g Granularity) BucketKey(t time.Time) string {
	switch g {
	case Day:
		return t.Format("2006-01-02")
	case Week:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return t.Format("2006-01")
	}
}

// ChartKind selects how the aggregated series is drawn.
type ChartKind int

const (
	Bar ChartKind = iota
	Line
)

// ParseChartKind maps a user-supplied name to a ChartKind.
func ParseChartKind(s string) (ChartKind, error) {
	switch s {
	case "bar":
		return Bar, nil
	case "line":
		return Line, nil
	}
	return 0, fmt.Errorf("unknown chart type %q (want bar or line)", s)
}

func (k ChartKind) String() string {
	if k == Line {
		return "line"
	}
	return "bar"
}
