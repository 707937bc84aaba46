// Package storage persists named JSON blobs. The logbook keeps its whole
// state under two fixed keys, so a key/value table is all either backend
// needs.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for a key that was never written.
var ErrNotFound = errors.New("blob not found")

// Fixed blob keys.
const (
	KeyWorkouts  = "workoutDB_v1"
	KeyScenarios = "weightWhatIfScenarios"
)

// BlobStore reads and writes whole blobs by key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}

// Drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Driver string

	// SQLite database file.
	Path string

	// Postgres connection string and migrations directory.
	DSN            string
	MigrationsPath string
}

// Open returns the store for opts.Driver. Postgres migrations are applied
// before connecting.
func Open(ctx context.Context, opts Options) (BlobStore, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		s, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		if err := RunMigrations(opts.DSN, opts.MigrationsPath); err != nil {
			return nil, err
		}
		s, err := NewPostgres(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
