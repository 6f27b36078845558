package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skykauf/fivb-leaderboard/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

type playerRow struct {
	PlayerID    int64      `db:"player_id"`
	FirstName   *string    `db:"first_name"`
	LastName    *string    `db:"last_name"`
	FullName    *string    `db:"full_name"`
	Gender      *string    `db:"gender"`
	BirthDate   *time.Time `db:"birth_date"`
	HeightCM    *int64     `db:"height_cm"`
	CountryCode *string    `db:"country_code"`
	Payload     string     `db:"payload"`
}

func (r *PlayerRepository) UpsertMany(ctx context.Context, items []player.Player) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]playerRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, playerRow{
			PlayerID:    item.PlayerID,
			FirstName:   item.FirstName,
			LastName:    item.LastName,
			FullName:    item.FullName,
			Gender:      item.Gender,
			BirthDate:   item.BirthDate,
			HeightCM:    item.HeightCM,
			CountryCode: item.CountryCode,
			Payload:     item.Payload,
		})
	}
	return upsertInBatches(ctx, r.db, "raw_fivb_players", rows, []string{"player_id"})
}
