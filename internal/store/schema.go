package store

import (
	"context"

	"lager/internal/core"
)

// BootstrapResult reports what EnsureSchema changed.
type BootstrapResult struct {
	SeededMappings int
	SeededSettings int
}

// EnsureSchema creates the inventory tables when missing, seeds the default
// department mappings into an empty mapping table, and adds default settings
// without touching keys that already have a value.
func (s *Store) EnsureSchema(ctx context.Context) (*BootstrapResult, error) {
	for _, stmt := range s.driver.SchemaStatements() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return nil, &core.StorageError{Op: "create schema", Err: err}
		}
	}

	res := &BootstrapResult{}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &core.StorageError{Op: "begin transaction", Err: err}
	}

	var mappings int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+core.TableDepartmentMappings).Scan(&mappings); err != nil {
		return nil, rollback(tx, &core.StorageError{Op: "count department_mappings", Err: err})
	}
	if mappings == 0 {
		q := s.driver.InsertIgnoreSQL(core.TableDepartmentMappings, "prefix", "department")
		for _, m := range core.DefaultDepartmentMappings() {
			if _, err := tx.ExecContext(ctx, q, m.Prefix, m.Department); err != nil {
				return nil, rollback(tx, &core.StorageError{Op: "seed department mappings", Err: err})
			}
			res.SeededMappings++
		}
	}

	q := s.driver.InsertIgnoreSQL(core.TableSettings, "key", "value")
	for _, st := range core.DefaultSettings() {
		r, err := tx.ExecContext(ctx, q, st.Key, st.Value)
		if err != nil {
			return nil, rollback(tx, &core.StorageError{Op: "seed settings", Err: err})
		}
		if n, err := r.RowsAffected(); err == nil && n > 0 {
			res.SeededSettings++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, &core.StorageError{Op: "commit", Err: err}
	}
	return res, nil
}
