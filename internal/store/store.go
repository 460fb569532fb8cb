// Package store opens the inventory database and runs the fixed set of queries the
// lager commands need. SQL that differs between dialects lives behind the Driver
// interface; drivers register themselves from init, the same way database/sql
// drivers do.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lager/internal/core"
)

// Location says where the inventory database lives.
type Location struct {
	Dialect core.Dialect
	// Path is the database file for SQLite.
	Path string
	// DSN is the connection string for MySQL.
	DSN string
	// Create allows a missing SQLite file (and its directory) to be created.
	Create bool
}

// Store is an open inventory database.
type Store struct {
	db     *sql.DB
	driver Driver
	loc    Location
}

// Describe returns a printable form of loc.
func Describe(loc Location) string {
	d, err := NewDriver(loc.Dialect)
	if err != nil {
		return string(loc.Dialect)
	}
	return d.Describe(loc)
}

// CheckExists reports a *core.FileNotFoundError when loc points at a SQLite file that is
// not there. Server dialects always pass.
func CheckExists(loc Location) error {
	if loc.Dialect != core.DialectSQLite {
		return nil
	}
	info, err := os.Stat(loc.Path)
	if errors.Is(err, os.ErrNotExist) {
		return &core.FileNotFoundError{Kind: "database", Path: loc.Path}
	}
	if err != nil {
		return fmt.Errorf("stat database: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path %s is a directory", loc.Path)
	}
	return nil
}

// Open connects to the database at loc and pings it. A missing SQLite file is
// reported as *core.FileNotFoundError before any connection is attempted, unless
// loc.Create is set.
func Open(ctx context.Context, loc Location) (*Store, error) {
	driver, err := NewDriver(loc.Dialect)
	if err != nil {
		return nil, err
	}

	if loc.Create && loc.Dialect == core.DialectSQLite {
		if dir := filepath.Dir(loc.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	} else if err := CheckExists(loc); err != nil {
		return nil, err
	}

	dsn, err := driver.DSN(loc)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver.SQLDriver(), dsn)
	if err != nil {
		return nil, &core.StorageError{Op: "open database", Err: err}
	}
	if loc.Dialect == core.DialectSQLite {
		// One writer at a time; keeps the import transaction on a single connection.
		db.SetMaxOpenConns(1)
	}

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, &core.StorageError{
				Op:  "ping database",
				Err: fmt.Errorf("%v; additionally failed to close connection: %w", pingErr, closeErr),
			}
		}
		return nil, &core.StorageError{Op: "ping database", Err: pingErr}
	}

	return &Store{db: db, driver: driver, loc: loc}, nil
}

// Close releases the connection pool. It is safe to call on a nil or closed store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Location returns where the store was opened.
func (s *Store) Location() Location {
	return s.loc
}
