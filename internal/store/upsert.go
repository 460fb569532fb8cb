package store

import (
	"context"
	"fmt"

	"lager/internal/core"
)

// UpsertItems writes items in one transaction. A barcode that already exists has its
// name overwritten; within the batch the last occurrence of a barcode wins. Either
// every row is applied or, on error, the transaction is rolled back.
func (s *Store) UpsertItems(ctx context.Context, items []core.Item) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &core.StorageError{Op: "begin transaction", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, s.driver.UpsertSQL(core.TableItems, "barcode", "barcode", "name"))
	if err != nil {
		return 0, rollback(tx, &core.StorageError{Op: "prepare upsert", Err: err})
	}
	defer stmt.Close()

	for i, it := range items {
		if _, err := stmt.ExecContext(ctx, it.Barcode, it.Name); err != nil {
			return 0, rollback(tx, &core.StorageError{
				Op:  fmt.Sprintf("upsert item %d (%s)", i+1, it.Barcode),
				Err: err,
			})
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &core.StorageError{Op: "commit", Err: err}
	}
	return len(items), nil
}

type rollbacker interface {
	Rollback() error
}

func rollback(tx rollbacker, cause error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return fmt.Errorf("%w; rollback also failed: %v", cause, rbErr)
	}
	return cause
}
