package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
    id            INTEGER PRIMARY KEY,
    total_users   INTEGER NOT NULL DEFAULT 0,
    date_checked  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot (
    key           TEXT PRIMARY KEY,
    value         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_date ON records(date_checked);
`
