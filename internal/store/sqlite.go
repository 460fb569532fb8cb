package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"lager/internal/core"
)

func init() {
	Register(core.DialectSQLite, newSQLiteDriver)
}

type sqliteDriver struct{}

func newSQLiteDriver() Driver {
	return sqliteDriver{}
}

func (sqliteDriver) SQLDriver() string {
	return "sqlite3"
}

// DSN opens the file read-write without creating it, unless loc.Create is set.
// The path is percent-escaped so that '?' or '#' in a file name stay part of it.
func (sqliteDriver) DSN(loc Location) (string, error) {
	if strings.TrimSpace(loc.Path) == "" {
		return "", fmt.Errorf("sqlite: empty database path")
	}
	mode := "rw"
	if loc.Create {
		mode = "rwc"
	}
	path := (&url.URL{Path: loc.Path}).EscapedPath()
	return fmt.Sprintf("file:%s?mode=%s&_busy_timeout=5000", path, mode), nil
}

func (sqliteDriver) Describe(loc Location) string {
	return loc.Path
}

func (sqliteDriver) Quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (sqliteDriver) ListTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (d sqliteDriver) DescribeTable(ctx context.Context, db *sql.DB, table string) ([]core.Column, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+d.Quote(table)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []core.Column
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, core.Column{
			Name:       name,
			Type:       colType,
			NotNull:    notNull != 0,
			PrimaryKey: pk > 0,
		})
	}
	return cols, rows.Err()
}

func (d sqliteDriver) UpsertSQL(table string, _ string, cols ...string) string {
	return "INSERT OR REPLACE INTO " + table + " (" + d.columnList(cols) + ") VALUES (" + placeholders(len(cols)) + ")"
}

func (d sqliteDriver) InsertIgnoreSQL(table string, cols ...string) string {
	return "INSERT OR IGNORE INTO " + table + " (" + d.columnList(cols) + ") VALUES (" + placeholders(len(cols)) + ")"
}

func (d sqliteDriver) columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.Quote(c)
	}
	return strings.Join(quoted, ", ")
}

func (sqliteDriver) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS items (
			barcode TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			barcode TEXT NOT NULL,
			action TEXT CHECK(action IN ('check-in', 'check-out')) NOT NULL,
			department TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS department_mappings (
			prefix TEXT PRIMARY KEY,
			department TEXT NOT NULL
		)`,
	}
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
