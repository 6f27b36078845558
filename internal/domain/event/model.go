package event

import "time"

// Event is a top-level grouping of tournaments (e.g. a world-tour stop).
type Event struct {
	EventID            int64
	Code               *string
	Name               *string
	StartDate          *time.Time
	EndDate            *time.Time
	Type               *string
	ParentEventID      *int64
	CountryCode        *string
	HasBeachTournament bool
	HasMenTournament   bool
	HasWomenTournament bool
	IsVisManaged       bool
	Payload            string
}
