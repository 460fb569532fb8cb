package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"lager/internal/core"
)

func init() {
	Register(core.DialectMySQL, newMySQLDriver)
}

type mysqlDriver struct{}

func newMySQLDriver() Driver {
	return mysqlDriver{}
}

func (mysqlDriver) SQLDriver() string {
	return "mysql"
}

func (mysqlDriver) DSN(loc Location) (string, error) {
	if strings.TrimSpace(loc.DSN) == "" {
		return "", fmt.Errorf("mysql: empty DSN")
	}
	cfg, err := mysql.ParseDSN(loc.DSN)
	if err != nil {
		return "", fmt.Errorf("mysql: invalid DSN: %w", err)
	}
	cfg.MultiStatements = false
	return cfg.FormatDSN(), nil
}

func (mysqlDriver) Describe(loc Location) string {
	cfg, err := mysql.ParseDSN(loc.DSN)
	if err != nil {
		return "mysql (invalid DSN)"
	}
	return fmt.Sprintf("mysql://%s/%s", cfg.Addr, cfg.DBName)
}

func (mysqlDriver) Quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func (mysqlDriver) ListTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
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

func (mysqlDriver) DescribeTable(ctx context.Context, db *sql.DB, table string) ([]core.Column, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT column_name, column_type, is_nullable, column_key
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []core.Column
	for rows.Next() {
		var name, colType, nullable, colKey sql.NullString
		if err := rows.Scan(&name, &colType, &nullable, &colKey); err != nil {
			return nil, err
		}
		cols = append(cols, core.Column{
			Name:       name.String,
			Type:       colType.String,
			NotNull:    nullable.String == "NO",
			PrimaryKey: colKey.String == "PRI",
		})
	}
	return cols, rows.Err()
}

func (d mysqlDriver) UpsertSQL(table string, key string, cols ...string) string {
	var updates []string
	for _, c := range cols {
		if c == key {
			continue
		}
		updates = append(updates, d.Quote(c)+" = VALUES("+d.Quote(c)+")")
	}
	return "INSERT INTO " + table + " (" + d.columnList(cols) + ") VALUES (" + placeholders(len(cols)) +
		") ON DUPLICATE KEY UPDATE " + strings.Join(updates, ", ")
}

func (d mysqlDriver) InsertIgnoreSQL(table string, cols ...string) string {
	return "INSERT IGNORE INTO " + table + " (" + d.columnList(cols) + ") VALUES (" + placeholders(len(cols)) + ")"
}

func (d mysqlDriver) columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.Quote(c)
	}
	return strings.Join(quoted, ", ")
}

func (mysqlDriver) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS items (
			barcode VARCHAR(191) NOT NULL PRIMARY KEY,
			name VARCHAR(512) NOT NULL
		) DEFAULT CHARSET = utf8mb4`,
		"CREATE TABLE IF NOT EXISTS logs (" +
			"id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"`timestamp` VARCHAR(64) NOT NULL, " +
			"barcode VARCHAR(191) NOT NULL, " +
			"action ENUM('check-in', 'check-out') NOT NULL, " +
			"department VARCHAR(191)" +
			") DEFAULT CHARSET = utf8mb4",
		"CREATE TABLE IF NOT EXISTS settings (" +
			"`key` VARCHAR(191) NOT NULL PRIMARY KEY, " +
			"`value` TEXT NOT NULL" +
			") DEFAULT CHARSET = utf8mb4",
		`CREATE TABLE IF NOT EXISTS department_mappings (
			prefix VARCHAR(191) NOT NULL PRIMARY KEY,
			department VARCHAR(191) NOT NULL
		) DEFAULT CHARSET = utf8mb4`,
	}
}
