package postgres

import (
	"errors"
	"strings"
	"testing"

	"github.com/lib/pq"
)

func TestAnnotateConflictAddsGuidance(t *testing.T) {
	t.Parallel()

	cause := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	wrapped := errors.New("upsert raw_fivb_teams: " + cause.Message)

	got := annotateConflict(wrapped, cause)
	if !strings.Contains(got.Error(), "TRUNCATE_RAW=1") {
		t.Fatalf("annotated error lacks guidance: %v", got)
	}
	if !errors.Is(got, wrapped) {
		t.Fatal("annotated error must wrap the original")
	}
}

func TestAnnotateConflictPassesThroughOtherErrors(t *testing.T) {
	t.Parallel()

	cause := &pq.Error{Code: "57014", Message: "canceling statement"}
	wrapped := errors.New("upsert raw_fivb_teams: canceled")

	if got := annotateConflict(wrapped, cause); got != wrapped {
		t.Fatalf("non-conflict error must pass through unchanged, got %v", got)
	}
}

func TestIsRawTable(t *testing.T) {
	t.Parallel()

	if !isRawTable("raw_fivb_tournaments") {
		t.Fatal("raw_fivb_tournaments must be a known raw table")
	}
	if isRawTable("ingestion_runs") {
		t.Fatal("ingestion_runs is not part of the raw layer")
	}
}
