package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skykauf/fivb-leaderboard/internal/domain/tournament"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

type tournamentRow struct {
	TournamentID int64      `db:"tournament_id"`
	Name         *string    `db:"name"`
	Season       *string    `db:"season"`
	Tier         *string    `db:"tier"`
	StartDate    *time.Time `db:"start_date"`
	EndDate      *time.Time `db:"end_date"`
	City         *string    `db:"city"`
	CountryCode  *string    `db:"country_code"`
	CountryName  *string    `db:"country_name"`
	Gender       *string    `db:"gender"`
	Status       *string    `db:"status"`
	Timezone     *string    `db:"timezone"`
	Payload      string     `db:"payload"`
}

func (r *TournamentRepository) UpsertMany(ctx context.Context, items []tournament.Tournament) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]tournamentRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, tournamentRow{
			TournamentID: item.TournamentID,
			Name:         item.Name,
			Season:       item.Season,
			Tier:         item.Tier,
			StartDate:    item.StartDate,
			EndDate:      item.EndDate,
			City:         item.City,
			CountryCode:  item.CountryCode,
			CountryName:  item.CountryName,
			Gender:       item.Gender,
			Status:       item.Status,
			Timezone:     item.Timezone,
			Payload:      item.Payload,
		})
	}
	return upsertInBatches(ctx, r.db, "raw_fivb_tournaments", rows, []string{"tournament_id"})
}

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

type resultRow struct {
	TournamentID int64    `db:"tournament_id"`
	TeamID       int64    `db:"team_id"`
	FinishingPos *int64   `db:"finishing_pos"`
	Points       *int64   `db:"points"`
	PrizeMoney   *float64 `db:"prize_money"`
	Payload      string   `db:"payload"`
}

func (r *ResultRepository) UpsertMany(ctx context.Context, items []tournament.Result) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]resultRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, resultRow{
			TournamentID: item.TournamentID,
			TeamID:       item.TeamID,
			FinishingPos: item.FinishingPos,
			Points:       item.Points,
			PrizeMoney:   item.PrizeMoney,
			Payload:      item.Payload,
		})
	}
	return upsertInBatches(ctx, r.db, "raw_fivb_results", rows, []string{"tournament_id", "team_id"})
}
