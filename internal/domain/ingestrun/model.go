package ingestrun

import "time"

// Run is the persisted summary of one ingestion run. The table is
// append-only: every run adds a row, nothing is ever updated.
type Run struct {
	StartedAt       time.Time
	FinishedAt      time.Time
	Season          string
	TournamentCount int
	FailureCount    int
	StageTimings    string // JSON array of {stage, elapsed_ms}
	FatalError      *string
}
