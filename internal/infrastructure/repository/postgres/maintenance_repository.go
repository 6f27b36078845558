package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	qb "github.com/skykauf/fivb-leaderboard/internal/platform/querybuilder"
)

// rawTables is every raw-layer table, in truncation order. ingestion_runs is
// deliberately not in the list: run history survives a full refresh.
var rawTables = []string{
	"raw_fivb_events",
	"raw_fivb_tournaments",
	"raw_fivb_teams",
	"raw_fivb_players",
	"raw_fivb_matches",
	"raw_fivb_rounds",
	"raw_fivb_round_rankings",
	"raw_fivb_results",
	"raw_fivb_team_rankings",
}

// MaintenanceRepository covers the non-upsert store surface: full-refresh
// truncation and the row counts behind the post-run verification.
type MaintenanceRepository struct {
	db *sqlx.DB
}

func NewMaintenanceRepository(db *sqlx.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) TruncateRaw(ctx context.Context) error {
	query := "TRUNCATE " + strings.Join(rawTables, ", ") + " RESTART IDENTITY"
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("truncate raw tables: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) CountRows(ctx context.Context, table string) (int64, error) {
	if !isRawTable(table) {
		return 0, fmt.Errorf("unknown raw table %q", table)
	}
	query, args, err := qb.Select("COUNT(*)").From(table).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", table, err)
	}
	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

func isRawTable(table string) bool {
	for _, known := range rawTables {
		if known == table {
			return true
		}
	}
	return false
}
