package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"

	"lager/internal/core"
)

// Driver holds the dialect-specific SQL the store needs. Everything else is
// shared between dialects.
type Driver interface {
	// SQLDriver is the database/sql driver name.
	SQLDriver() string
	// DSN builds the connection string for loc.
	DSN(loc Location) (string, error)
	// Describe renders loc for console output without secrets.
	Describe(loc Location) string
	Quote(ident string) string
	ListTables(ctx context.Context, db *sql.DB) ([]string, error)
	DescribeTable(ctx context.Context, db *sql.DB, table string) ([]core.Column, error)
	// UpsertSQL inserts a row or overwrites the row sharing its primary key.
	UpsertSQL(table string, key string, cols ...string) string
	// InsertIgnoreSQL inserts a row unless its primary key already exists.
	InsertIgnoreSQL(table string, cols ...string) string
	SchemaStatements() []string
}

var (
	registry = make(map[core.Dialect]func() Driver)
	mu       sync.RWMutex
)

// Register makes a driver available for dialect d.
func Register(d core.Dialect, fn func() Driver) {
	mu.Lock()
	defer mu.Unlock()
	registry[d] = fn
}

// NewDriver returns the registered driver for d.
func NewDriver(d core.Dialect) (Driver, error) {
	mu.RLock()
	fn, ok := registry[d]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}

	return fn(), nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}
