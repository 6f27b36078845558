package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skykauf/fivb-leaderboard/internal/domain/team"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

type teamRow struct {
	TeamID       int64      `db:"team_id"`
	TournamentID int64      `db:"tournament_id"`
	PlayerAID    *int64     `db:"player_a_id"`
	PlayerBID    *int64     `db:"player_b_id"`
	CountryCode  *string    `db:"country_code"`
	Status       *string    `db:"status"`
	ValidFrom    *time.Time `db:"valid_from"`
	ValidTo      *time.Time `db:"valid_to"`
	Payload      string     `db:"payload"`
}

func (r *TeamRepository) UpsertMany(ctx context.Context, items []team.Team) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]teamRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, teamRow{
			TeamID:       item.TeamID,
			TournamentID: item.TournamentID,
			PlayerAID:    item.PlayerAID,
			PlayerBID:    item.PlayerBID,
			CountryCode:  item.CountryCode,
			Status:       item.Status,
			ValidFrom:    item.ValidFrom,
			ValidTo:      item.ValidTo,
			Payload:      item.Payload,
		})
	}
	return upsertInBatches(ctx, r.db, "raw_fivb_teams", rows, []string{"team_id"})
}
