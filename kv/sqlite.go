package kv

import (
	"context"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultSQLitePath is the database file of the sqlite backend when none is configured.
const DefaultSQLitePath = "gplocal.db"

// OpenSQLite opens (or creates) a SQLite database file as a Store.
// Use ":memory:" for a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	s, err := openSQL(ctx, DriverSQLite, "sqlite", path,
		`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`,
		`SELECT value FROM kv WHERE key = ?`,
		`INSERT INTO kv(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	)
	if err != nil {
		return nil, err
	}
	// a ":memory:" database lives in a single connection.
	s.db.SetMaxOpenConns(1)
	return s, nil
}
