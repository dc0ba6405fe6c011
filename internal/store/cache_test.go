package store

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"fedigraph/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestEmptyCache(t *testing.T) {
	c := openTestCache(t)

	fetchedAt, err := c.FetchedAt()
	if err != nil {
		t.Fatalf("FetchedAt: %v", err)
	}
	if !fetchedAt.IsZero() {
		t.Errorf("FetchedAt = %v, want zero for a fresh db", fetchedAt)
	}

	count, err := c.RecordCount()
	if err != nil {
		t.Fatalf("RecordCount: %v", err)
	}
	if count != 0 {
		t.Errorf("RecordCount = %d, want 0", count)
	}
}

func TestReplaceAndLoadRecords(t *testing.T) {
	c := openTestCache(t)

	records := []model.Record{
		{ID: 2, TotalUsers: 5, DateChecked: "2025-02-01 00:00:00"},
		{ID: 1, TotalUsers: 10, DateChecked: "2025-01-01 00:00:00"},
	}
	stamp := time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC)

	if err := c.ReplaceRecords(records, stamp); err != nil {
		t.Fatalf("ReplaceRecords: %v", err)
	}

	loaded, err := c.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	// Loaded in date order regardless of insert order.
	want := []model.Record{records[1], records[0]}
	if !reflect.DeepEqual(loaded, want) {
		t.Errorf("LoadRecords = %v, want %v", loaded, want)
	}

	fetchedAt, err := c.FetchedAt()
	if err != nil {
		t.Fatalf("FetchedAt: %v", err)
	}
	if !fetchedAt.Equal(stamp) {
		t.Errorf("FetchedAt = %v, want %v", fetchedAt, stamp)
	}
}

func TestReplaceRecordsSwapsSnapshot(t *testing.T) {
	c := openTestCache(t)

	first := []model.Record{{ID: 1, TotalUsers: 1, DateChecked: "2025-01-01 00:00:00"}}
	if err := c.ReplaceRecords(first, time.Now()); err != nil {
		t.Fatalf("ReplaceRecords: %v", err)
	}

	second := []model.Record{
		{ID: 7, TotalUsers: 70, DateChecked: "2025-03-01 00:00:00"},
		{ID: 8, TotalUsers: 80, DateChecked: "2025-04-01 00:00:00"},
	}
	if err := c.ReplaceRecords(second, time.Now()); err != nil {
		t.Fatalf("ReplaceRecords: %v", err)
	}

	count, err := c.RecordCount()
	if err != nil {
		t.Fatalf("RecordCount: %v", err)
	}
	if count != 2 {
		t.Errorf("RecordCount = %d, want 2 (old snapshot replaced, not merged)", count)
	}
}
