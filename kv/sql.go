package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// sqlOpen is replaced in tests.
var sqlOpen = sql.Open

// SQL is a Store in a single "kv" table of a SQL database.
// The statements differ between SQLite and PostgreSQL only by their placeholders
// and the value column type.
type SQL struct {
	db     *sql.DB
	driver Driver
	get    string
	put    string
}

func (s *SQL) Driver() Driver { return s.driver }

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s get %q: %w", s.driver, key, err)
	}
	return value, nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, s.put, key, value); err != nil {
		return fmt.Errorf("%s put %q: %w", s.driver, key, err)
	}
	return nil
}

func (s *SQL) Close() error { return s.db.Close() }

// openSQL opens the database and creates the kv table.
func openSQL(ctx context.Context, driver Driver, driverName, dsn, ddl, get, put string) (*SQL, error) {
	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s open: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s ping: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s create table: %w", driver, err)
	}
	return &SQL{db: db, driver: driver, get: get, put: put}, nil
}
