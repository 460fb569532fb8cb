package store

import (
	"context"
	"database/sql"
	"errors"

	"lager/internal/core"
)

// Tables lists every table in the database.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	tables, err := s.driver.ListTables(ctx, s.db)
	if err != nil {
		return nil, &core.StorageError{Op: "list tables", Err: err}
	}
	return tables, nil
}

// Columns describes the columns of table in declaration order.
func (s *Store) Columns(ctx context.Context, table string) ([]core.Column, error) {
	cols, err := s.driver.DescribeTable(ctx, s.db, table)
	if err != nil {
		return nil, &core.StorageError{Op: "describe " + table, Err: err}
	}
	return cols, nil
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	if err := checkIdent(table); err != nil {
		return 0, &core.StorageError{Op: "count " + table, Err: err}
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, &core.StorageError{Op: "count " + table, Err: err}
	}
	return n, nil
}

// SampleItems returns at most limit items ordered by barcode. The limit is clamped
// to core.DefaultSampleLimit; a non-positive limit uses the default.
func (s *Store) SampleItems(ctx context.Context, limit int) ([]core.Item, error) {
	limit = core.ClampSampleLimit(limit)
	rows, err := s.db.QueryContext(ctx, "SELECT barcode, name FROM items ORDER BY barcode LIMIT ?", limit)
	if err != nil {
		return nil, &core.StorageError{Op: "sample items", Err: err}
	}
	defer rows.Close()

	items := make([]core.Item, 0, limit)
	for rows.Next() {
		var barcode, name sql.NullString
		if err := rows.Scan(&barcode, &name); err != nil {
			return nil, &core.StorageError{Op: "sample items", Err: err}
		}
		items = append(items, core.Item{Barcode: barcode.String, Name: name.String})
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "sample items", Err: err}
	}
	return items, nil
}

// Settings returns the settings table in storage order.
func (s *Store) Settings(ctx context.Context) ([]core.Setting, error) {
	pairs, err := s.pairs(ctx, core.TableSettings, "key", "value")
	if err != nil {
		return nil, &core.StorageError{Op: "read settings", Err: err}
	}
	out := make([]core.Setting, len(pairs))
	for i, p := range pairs {
		out[i] = core.Setting{Key: p[0], Value: p[1]}
	}
	return out, nil
}

// DepartmentMappings returns the department_mappings table in storage order.
func (s *Store) DepartmentMappings(ctx context.Context) ([]core.DepartmentMapping, error) {
	pairs, err := s.pairs(ctx, core.TableDepartmentMappings, "prefix", "department")
	if err != nil {
		return nil, &core.StorageError{Op: "read department mappings", Err: err}
	}
	out := make([]core.DepartmentMapping, len(pairs))
	for i, p := range pairs {
		out[i] = core.DepartmentMapping{Prefix: p[0], Department: p[1]}
	}
	return out, nil
}

func (s *Store) pairs(ctx context.Context, table, keyCol, valueCol string) ([][2]string, error) {
	q := "SELECT " + s.driver.Quote(keyCol) + ", " + s.driver.Quote(valueCol) + " FROM " + table
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var k, v sql.NullString
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out = append(out, [2]string{k.String, v.String})
	}
	return out, rows.Err()
}

// ItemName returns the stored name for barcode and whether the item exists.
func (s *Store) ItemName(ctx context.Context, barcode string) (string, bool, error) {
	var name sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT name FROM items WHERE barcode = ?", barcode).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &core.StorageError{Op: "lookup item", Err: err}
	}
	return name.String, true, nil
}

// checkedOutSQL keeps check-out rows with no later check-in for the same barcode.
// Timestamps are RFC 3339 text, so string order is time order.
const checkedOutSQL = `SELECT COALESCE(NULLIF(l1.department, ''), '` + core.UnknownDepartment + `') AS dept, COUNT(*) AS n
FROM logs l1
WHERE l1.action = 'check-out'
AND NOT EXISTS (
	SELECT 1 FROM logs l2
	WHERE l2.barcode = l1.barcode
	AND l2.action = 'check-in'
	AND l2.timestamp > l1.timestamp
)
GROUP BY dept
ORDER BY n DESC, dept`

// CheckedOutByDepartment counts items still checked out, grouped by department.
// Rows without a department are reported under core.UnknownDepartment.
func (s *Store) CheckedOutByDepartment(ctx context.Context) ([]core.DepartmentStat, error) {
	rows, err := s.db.QueryContext(ctx, checkedOutSQL)
	if err != nil {
		return nil, &core.StorageError{Op: "checked-out stats", Err: err}
	}
	defer rows.Close()

	stats := []core.DepartmentStat{}
	for rows.Next() {
		var st core.DepartmentStat
		if err := rows.Scan(&st.Department, &st.CheckedOut); err != nil {
			return nil, &core.StorageError{Op: "checked-out stats", Err: err}
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "checked-out stats", Err: err}
	}
	return stats, nil
}
