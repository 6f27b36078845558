package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skykauf/fivb-leaderboard/internal/domain/event"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventRow struct {
	EventID            int64      `db:"event_id"`
	Code               *string    `db:"code"`
	Name               *string    `db:"name"`
	StartDate          *time.Time `db:"start_date"`
	EndDate            *time.Time `db:"end_date"`
	Type               *string    `db:"type"`
	ParentEventID      *int64     `db:"parent_event_id"`
	CountryCode        *string    `db:"country_code"`
	HasBeachTournament bool       `db:"has_beach_tournament"`
	HasMenTournament   bool       `db:"has_men_tournament"`
	HasWomenTournament bool       `db:"has_women_tournament"`
	IsVisManaged       bool       `db:"is_vis_managed"`
	Payload            string     `db:"payload"`
}

func (r *EventRepository) UpsertMany(ctx context.Context, items []event.Event) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]eventRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, eventRow{
			EventID:            item.EventID,
			Code:               item.Code,
			Name:               item.Name,
			StartDate:          item.StartDate,
			EndDate:            item.EndDate,
			Type:               item.Type,
			ParentEventID:      item.ParentEventID,
			CountryCode:        item.CountryCode,
			HasBeachTournament: item.HasBeachTournament,
			HasMenTournament:   item.HasMenTournament,
			HasWomenTournament: item.HasWomenTournament,
			IsVisManaged:       item.IsVisManaged,
			Payload:            item.Payload,
		})
	}
	return upsertInBatches(ctx, r.db, "raw_fivb_events", rows, []string{"event_id"})
}
