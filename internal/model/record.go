// Package model defines domain types for fedigraph growth statistics.
package model

import "time"

// TimeLayout is the timestamp format used by the observer API and the
// known-events config: naive local time, no zone.
const TimeLayout = "2006-01-02 15:04:05"

// Record is a single growth observation as delivered by the API.
// DateChecked stays a string at this layer; the pipeline parses it and
// treats a parse failure as a hard error for the whole aggregation.
type Record struct {
	ID          int64  `json:"id"`
	TotalUsers  int64  `json:"total_users"`
	DateChecked string `json:"date_checked"`
}

// KnownEvent is a user-configured historical event used to annotate charts.
// Date uses TimeLayout. Events are advisory: a malformed date skips that
// event only.
type KnownEvent struct {
	Label string `toml:"label"`
	Date  string `toml:"date"`
}

// ParseTime parses a timestamp in TimeLayout.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}
