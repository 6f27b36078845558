package round

import "time"

type Round struct {
	RoundID      int64
	TournamentID *int64
	Code         *string
	Name         *string
	Bracket      *string
	Phase        *string
	StartDate    *time.Time
	EndDate      *time.Time
	RankMethod   *string
	Payload      string
}

// Ranking is one standings row of a pool round. Rounds whose kind has no
// standings reject the ranking call on the service side.
type Ranking struct {
	RoundID            int64
	Position           int64
	Rank               *int64
	TeamFederationCode *string
	TeamName           *string
	MatchPoints        *int64
	MatchesWon         *int64
	MatchesLost        *int64
	Payload            string
}
