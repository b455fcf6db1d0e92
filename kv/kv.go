// Package kv provides the key-value backends where the gplocal document is
// persisted.
//
// A backend stores opaque byte values under string keys. gplocal only ever
// uses one key, but every backend supports any number of them.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Driver names a backend implementation.
type Driver string

const (
	DriverFS       Driver = "fs"
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverRedis    Driver = "redis"
	DriverS3       Driver = "s3"
)

// Drivers lists all known drivers.
var Drivers = []Driver{DriverFS, DriverMemory, DriverSQLite, DriverPostgres, DriverRedis, DriverS3}

var (
	// ErrNotFound is returned by Get when nothing is stored under the key.
	ErrNotFound = errors.New("key not found")
	// ErrUnknownDriver is returned by Open for an unsupported driver.
	ErrUnknownDriver = errors.New("unknown store driver")
	// ErrInvalidKey is returned for keys a backend cannot store.
	ErrInvalidKey = errors.New("invalid key")
)

// Store is a key-value backend.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Close releases the backend resources.
	Close() error
	// Driver returns the backend name.
	Driver() Driver
}

// Config selects and configures a backend.
type Config struct {
	Driver Driver

	Path        string // fs: directory, sqlite: database file
	DatabaseURL string // postgres

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	S3 S3Config
}

// ParseDriver parses a driver name, case insensitive.
func ParseDriver(s string) (Driver, error) {
	d := Driver(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Drivers {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDriver, s)
}

// Open returns the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFS, "":
		return NewFS(cfg.Path)
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.DatabaseURL)
	case DriverRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case DriverS3:
		return OpenS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// checkKey rejects empty keys.
func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	return nil
}
