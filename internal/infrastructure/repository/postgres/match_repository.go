package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skykauf/fivb-leaderboard/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

type matchRow struct {
	MatchID         int64      `db:"match_id"`
	TournamentID    int64      `db:"tournament_id"`
	Phase           *string    `db:"phase"`
	RoundRef        *string    `db:"round_ref"`
	Team1ID         *int64     `db:"team1_id"`
	Team2ID         *int64     `db:"team2_id"`
	WinnerTeamID    *int64     `db:"winner_team_id"`
	ScoreSets       *string    `db:"score_sets"`
	DurationMinutes *int64     `db:"duration_minutes"`
	PlayedAt        *time.Time `db:"played_at"`
	ResultType      *string    `db:"result_type"`
	Status          *string    `db:"status"`
	Payload         string     `db:"payload"`
}

func (r *MatchRepository) UpsertMany(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]matchRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, matchRow{
			MatchID:         item.MatchID,
			TournamentID:    item.TournamentID,
			Phase:           item.Phase,
			RoundRef:        item.RoundRef,
			Team1ID:         item.Team1ID,
			Team2ID:         item.Team2ID,
			WinnerTeamID:    item.WinnerTeamID,
			ScoreSets:       item.ScoreSets,
			DurationMinutes: item.DurationMinutes,
			PlayedAt:        item.PlayedAt,
			ResultType:      item.ResultType,
			Status:          item.Status,
			Payload:         item.Payload,
		})
	}
	return upsertInBatches(ctx, r.db, "raw_fivb_matches", rows, []string{"match_id"})
}
