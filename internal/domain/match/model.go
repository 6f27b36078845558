package match

import "time"

// Match is one beach match. WinnerTeamID, ScoreSets and DurationMinutes are
// derived from the payload on every load, never carried forward.
type Match struct {
	MatchID         int64
	TournamentID    int64
	Phase           *string
	RoundRef        *string
	Team1ID         *int64
	Team2ID         *int64
	WinnerTeamID    *int64
	ScoreSets       *string
	DurationMinutes *int64
	PlayedAt        *time.Time
	ResultType      *string
	Status          *string
	Payload         string
}
