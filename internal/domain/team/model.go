package team

import "time"

// Team is a pairing of two players registered for one tournament.
type Team struct {
	TeamID       int64
	TournamentID int64
	PlayerAID    *int64
	PlayerBID    *int64
	CountryCode  *string
	Status       *string
	ValidFrom    *time.Time
	ValidTo      *time.Time
	Payload      string
}
