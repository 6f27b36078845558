package tournament

import "time"

// Tournament is the root of the per-tournament fan-out. Season is free text:
// VIS sends values like "2025" but also "1991-92".
type Tournament struct {
	TournamentID int64
	Name         *string
	Season       *string
	Tier         *string
	StartDate    *time.Time
	EndDate      *time.Time
	City         *string
	CountryCode  *string
	CountryName  *string
	Gender       *string
	Status       *string
	Timezone     *string
	Payload      string
}

// Result is one team's finishing position in a tournament. Rows from the
// overall, main-draw and qualification ranking phases are unioned via upsert.
type Result struct {
	TournamentID int64
	TeamID       int64
	FinishingPos *int64
	Points       *int64
	PrizeMoney   *float64
	Payload      string
}
