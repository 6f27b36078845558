package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	qb "github.com/skykauf/fivb-leaderboard/internal/platform/querybuilder"
)

// maxBatchRows keeps a multi-row statement well under the wire protocol's
// 65535-parameter limit even for the widest table.
const maxBatchRows = 500

func upsertInBatches[T any](ctx context.Context, db *sqlx.DB, table string, rows []T, conflictColumns []string) error {
	for lo := 0; lo < len(rows); lo += maxBatchRows {
		hi := min(lo+maxBatchRows, len(rows))
		query, args, err := qb.UpsertModels(table, rows[lo:hi], conflictColumns, "ingested_at = NOW()")
		if err != nil {
			return fmt.Errorf("build upsert %s: %w", table, err)
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return annotateConflict(fmt.Errorf("upsert %s: %w", table, err), err)
		}
	}
	return nil
}

func insertInBatches[T any](ctx context.Context, db *sqlx.DB, table string, rows []T) error {
	for lo := 0; lo < len(rows); lo += maxBatchRows {
		hi := min(lo+maxBatchRows, len(rows))
		query, args, err := qb.InsertModels(table, rows[lo:hi], "")
		if err != nil {
			return fmt.Errorf("build insert %s: %w", table, err)
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return annotateConflict(fmt.Errorf("insert %s: %w", table, err), err)
		}
	}
	return nil
}

// annotateConflict attaches actionable guidance to duplicate-key failures,
// which in practice mean the table predates its uniqueness constraint.
func annotateConflict(wrapped, cause error) error {
	var pqErr *pq.Error
	if errors.As(cause, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w (duplicate natural key; run once with TRUNCATE_RAW=1 to reset the raw layer)", wrapped)
	}
	return wrapped
}
