package player

import "time"

// Player is global, not tournament-scoped. HeightCM is derived from the
// inconsistently-unitted Height field on the wire.
type Player struct {
	PlayerID    int64
	FirstName   *string
	LastName    *string
	FullName    *string
	Gender      *string
	BirthDate   *time.Time
	HeightCM    *int64
	CountryCode *string
	Payload     string
}
