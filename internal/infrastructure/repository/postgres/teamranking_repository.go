package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skykauf/fivb-leaderboard/internal/domain/teamranking"
)

type TeamRankingRepository struct {
	db *sqlx.DB
}

func NewTeamRankingRepository(db *sqlx.DB) *TeamRankingRepository {
	return &TeamRankingRepository{db: db}
}

type teamRankingRow struct {
	RankingType  string    `db:"ranking_type"`
	SnapshotDate time.Time `db:"snapshot_date"`
	Gender       string    `db:"gender"`
	Position     int64     `db:"position"`
	Player1ID    *int64    `db:"player1_id"`
	Player2ID    *int64    `db:"player2_id"`
	TeamName     *string   `db:"team_name"`
	EarnedPoints *int64    `db:"earned_points"`
	Payload      string    `db:"payload"`
}

func (r *TeamRankingRepository) UpsertMany(ctx context.Context, items []teamranking.Snapshot) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]teamRankingRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, teamRankingRow{
			RankingType:  item.RankingType,
			SnapshotDate: item.SnapshotDate,
			Gender:       item.Gender,
			Position:     item.Position,
			Player1ID:    item.Player1ID,
			Player2ID:    item.Player2ID,
			TeamName:     item.TeamName,
			EarnedPoints: item.EarnedPoints,
			Payload:      item.Payload,
		})
	}
	return upsertInBatches(ctx, r.db, "raw_fivb_team_rankings",
		rows, []string{"ranking_type", "snapshot_date", "gender", "position"})
}
