// Package store provides a SQLite-backed cache for the fetched record snapshot.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fedigraph/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const fetchedAtKey = "fetched_at"

// Cache holds the last-fetched record snapshot plus its fetch time.
// The fetch time is the only freshness signal the rest of the system uses.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the snapshot database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// ReplaceRecords swaps the whole snapshot for the given records and stamps
// the fetch time. The swap is transactional so readers never see a half
// snapshot.
func (c *Cache) ReplaceRecords(records []model.Record, fetchedAt time.Time) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return err
	}

	for _, r := range records {
		_, err := tx.Exec(
			"INSERT OR REPLACE INTO records (id, total_users, date_checked) VALUES (?, ?, ?)",
			r.ID, r.TotalUsers, r.DateChecked,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO snapshot (key, value) VALUES (?, ?)",
		fetchedAtKey, fetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadRecords reads the cached snapshot, ordered by date_checked.
func (c *Cache) LoadRecords() ([]model.Record, error) {
	rows, err := c.db.Query("SELECT id, total_users, date_checked FROM records ORDER BY date_checked")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.ID, &r.TotalUsers, &r.DateChecked); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// FetchedAt returns when the snapshot was last fetched, or the zero time if
// there is no snapshot yet.
func (c *Cache) FetchedAt() (time.Time, error) {
	var value string
	err := c.db.QueryRow("SELECT value FROM snapshot WHERE key = ?", fetchedAtKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing fetched_at %q: %w", value, err)
	}
	return t, nil
}

// RecordCount returns the number of cached records.
func (c *Cache) RecordCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}
