package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skykauf/fivb-leaderboard/internal/domain/ingestrun"
)

// IngestRunRepository appends run summaries; the table has no natural key
// and is never updated.
type IngestRunRepository struct {
	db *sqlx.DB
}

func NewIngestRunRepository(db *sqlx.DB) *IngestRunRepository {
	return &IngestRunRepository{db: db}
}

type ingestRunRow struct {
	StartedAt       time.Time `db:"started_at"`
	FinishedAt      time.Time `db:"finished_at"`
	Season          string    `db:"season"`
	TournamentCount int       `db:"tournament_count"`
	FailureCount    int       `db:"failure_count"`
	StageTimings    string    `db:"stage_timings"`
	FatalError      *string   `db:"fatal_error"`
}

func (r *IngestRunRepository) Insert(ctx context.Context, run ingestrun.Run) error {
	rows := []ingestRunRow{{
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
		Season:          run.Season,
		TournamentCount: run.TournamentCount,
		FailureCount:    run.FailureCount,
		StageTimings:    run.StageTimings,
		FatalError:      run.FatalError,
	}}
	return insertInBatches(ctx, r.db, "ingestion_runs", rows)
}
