package kv

import (
	"context"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// OpenPostgres connects to a PostgreSQL database as a Store.
func OpenPostgres(ctx context.Context, url string) (*SQL, error) {
	if url == "" {
		return nil, errors.New("postgres database url required")
	}
	return openSQL(ctx, DriverPostgres, "pgx", url,
		`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BYTEA NOT NULL)`,
		`SELECT value FROM kv WHERE key = $1`,
		`INSERT INTO kv(key, value) VALUES($1, $2) ON CONFLICT(key) DO UPDATE SET value = EXCLUDED.value`,
	)
}
