package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skykauf/fivb-leaderboard/internal/domain/round"
)

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

type roundRow struct {
	RoundID      int64      `db:"round_id"`
	TournamentID *int64     `db:"tournament_id"`
	Code         *string    `db:"code"`
	Name         *string    `db:"name"`
	Bracket      *string    `db:"bracket"`
	Phase        *string    `db:"phase"`
	StartDate    *time.Time `db:"start_date"`
	EndDate      *time.Time `db:"end_date"`
	RankMethod   *string    `db:"rank_method"`
	Payload      string     `db:"payload"`
}

func (r *RoundRepository) UpsertMany(ctx context.Context, items []round.Round) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]roundRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, roundRow{
			RoundID:      item.RoundID,
			TournamentID: item.TournamentID,
			Code:         item.Code,
			Name:         item.Name,
			Bracket:      item.Bracket,
			Phase:        item.Phase,
			StartDate:    item.StartDate,
			EndDate:      item.EndDate,
			RankMethod:   item.RankMethod,
			Payload:      item.Payload,
		})
	}
	return upsertInBatches(ctx, r.db, "raw_fivb_rounds", rows, []string{"round_id"})
}

type RoundRankingRepository struct {
	db *sqlx.DB
}

func NewRoundRankingRepository(db *sqlx.DB) *RoundRankingRepository {
	return &RoundRankingRepository{db: db}
}

type roundRankingRow struct {
	RoundID            int64   `db:"round_id"`
	Position           int64   `db:"position"`
	Rank               *int64  `db:"rank"`
	TeamFederationCode *string `db:"team_federation_code"`
	TeamName           *string `db:"team_name"`
	MatchPoints        *int64  `db:"match_points"`
	MatchesWon         *int64  `db:"matches_won"`
	MatchesLost        *int64  `db:"matches_lost"`
	Payload            string  `db:"payload"`
}

func (r *RoundRankingRepository) UpsertMany(ctx context.Context, items []round.Ranking) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]roundRankingRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, roundRankingRow{
			RoundID:            item.RoundID,
			Position:           item.Position,
			Rank:               item.Rank,
			TeamFederationCode: item.TeamFederationCode,
			TeamName:           item.TeamName,
			MatchPoints:        item.MatchPoints,
			MatchesWon:         item.MatchesWon,
			MatchesLost:        item.MatchesLost,
			Payload:            item.Payload,
		})
	}
	return upsertInBatches(ctx, r.db, "raw_fivb_round_rankings", rows, []string{"round_id", "position"})
}
