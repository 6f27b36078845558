package teamranking

import "time"

// Ranking kinds loaded as snapshots. The points field name differs per kind
// on the wire (EarnedPointsTeam vs Points); the normalizer resolves it.
const (
	TypeWorldTour = "beach_world_tour"
	TypeOlympic   = "beach_olympic"
)

// Snapshot is one position of a team ranking list on a given date.
type Snapshot struct {
	RankingType  string
	SnapshotDate time.Time
	Gender       string
	Position     int64
	Player1ID    *int64
	Player2ID    *int64
	TeamName     *string
	EarnedPoints *int64
	Payload      string
}
