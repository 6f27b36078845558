package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/skykauf/fivb-leaderboard/external/vis"
	"github.com/skykauf/fivb-leaderboard/internal/domain/tournament"
)

func int64p(v int64) *int64 { return &v }

func strp(v string) *string { return &v }

func TestIntOrNil(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want *int64
	}{
		{"string digits", "42", int64p(42)},
		{"json number", float64(42), int64p(42)},
		{"padded string", " 7 ", int64p(7)},
		{"empty string", "", nil},
		{"garbage", "n/a", nil},
		{"missing", nil, nil},
		{"zero is kept", "0", int64p(0)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := intOrNil(tc.in)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("intOrNil(%v) = %v, want %v", tc.in, got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("intOrNil(%v) = %d, want %d", tc.in, *got, *tc.want)
			}
		})
	}
}

func TestDateOrNil(t *testing.T) {
	t.Parallel()

	got := dateOrNil("2025-06-14T18:30:00+02:00")
	if got == nil || got.Format("2006-01-02") != "2025-06-14" {
		t.Fatalf("dateOrNil kept more than the date prefix: %v", got)
	}
	if dateOrNil("14/06/2025") != nil {
		t.Fatal("non-ISO date must normalize to nil")
	}
	if dateOrNil("") != nil || dateOrNil(nil) != nil || dateOrNil(float64(20250614)) != nil {
		t.Fatal("absent or non-string dates must normalize to nil")
	}
}

func TestTimestampOrNil(t *testing.T) {
	t.Parallel()

	// Zoned values must keep their time component instead of degrading to
	// the date-only fallback.
	got := timestampOrNil("2025-06-14T16:00:00Z")
	if got == nil || got.Hour() != 16 {
		t.Fatalf("timestampOrNil(Z) = %v, want 16:00 UTC", got)
	}
	got = timestampOrNil("2025-06-14T16:00:00+02:00")
	if got == nil || got.Hour() != 16 {
		t.Fatalf("timestampOrNil(+02:00) = %v, want hour 16", got)
	}
	if _, offset := got.Zone(); offset != 2*60*60 {
		t.Fatalf("timestampOrNil(+02:00) lost the offset: %v", got)
	}
	got = timestampOrNil("2025-06-14 16:00:00")
	if got == nil || got.Hour() != 16 {
		t.Fatalf("timestampOrNil(space layout) = %v, want hour 16", got)
	}
	got = timestampOrNil("2025-06-14")
	if got == nil || got.Hour() != 0 {
		t.Fatalf("timestampOrNil(date only) = %v, want midnight", got)
	}
	if timestampOrNil("soon") != nil || timestampOrNil(nil) != nil {
		t.Fatal("unparseable timestamps must normalize to nil")
	}
}

func TestBoolVis(t *testing.T) {
	t.Parallel()

	for _, truthy := range []any{"1", "true", "TRUE", "Yes", "on", true, float64(1)} {
		if !boolVis(truthy) {
			t.Errorf("boolVis(%v) = false, want true", truthy)
		}
	}
	for _, falsy := range []any{"0", "false", "no", "", nil, "2", float64(0)} {
		if boolVis(falsy) {
			t.Errorf("boolVis(%v) = true, want false", falsy)
		}
	}
}

func TestMatchWinner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                           string
		team1, team2, pointsA, pointsB *int64
		want                           *int64
	}{
		{"team A wins", int64p(10), int64p(20), int64p(2), int64p(1), int64p(10)},
		{"team B wins", int64p(10), int64p(20), int64p(0), int64p(2), int64p(20)},
		{"tie", int64p(10), int64p(20), int64p(1), int64p(1), nil},
		{"missing points", int64p(10), int64p(20), nil, int64p(2), nil},
		{"missing team", nil, int64p(20), int64p(2), int64p(0), nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := matchWinner(tc.team1, tc.team2, tc.pointsA, tc.pointsB)
			if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
				t.Fatalf("matchWinner = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchDuration(t *testing.T) {
	t.Parallel()

	rec := vis.Record{"DurationSet1": "1200", "DurationSet2": "1500"}
	if got := matchDuration(rec); got == nil || *got != 45 {
		t.Fatalf("duration = %v, want 45", got)
	}

	rec = vis.Record{"DurationSet1": "90"}
	if got := matchDuration(rec); got == nil || *got != 1 {
		t.Fatalf("duration = %v, want 1 (integer minutes)", got)
	}

	if got := matchDuration(vis.Record{}); got != nil {
		t.Fatalf("duration for all-absent sets = %v, want nil", got)
	}
}

func TestHeightCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want *int64
	}{
		{"1850000", int64p(185)},
		{float64(10000), int64p(1)},
		{"185", int64p(185)},
		{"499", int64p(499)},
		{"500", nil},
		{"9999", nil},
		{"-5", nil},
		{nil, nil},
		{"tall", nil},
	}
	for _, tc := range tests {
		tc := tc
		got := heightCM(tc.in)
		if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
			t.Errorf("heightCM(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTournamentYear(t *testing.T) {
	t.Parallel()

	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   tournament.Tournament
		want int
		ok   bool
	}{
		{"season wins", tournament.Tournament{Season: strp("2025"), StartDate: &start}, 2025, true},
		{"split season falls back to start date", tournament.Tournament{Season: strp("1991-92"), StartDate: &start}, 2023, true},
		{"season out of range falls back", tournament.Tournament{Season: strp("9999"), EndDate: &end}, 2024, true},
		{"no signal", tournament.Tournament{}, 0, false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			year, ok := tournamentYear(tc.in)
			if year != tc.want || ok != tc.ok {
				t.Fatalf("tournamentYear = (%d, %v), want (%d, %v)", year, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestNormalizeMatch(t *testing.T) {
	t.Parallel()

	rec := vis.Record{
		"No":               "9001",
		"NoTournament":     "503",
		"NoTeamA":          "11",
		"NoTeamB":          "12",
		"MatchPointsA":     "2",
		"MatchPointsB":     "0",
		"DurationSet1":     "1380",
		"DurationSet2":     "1260",
		"BeginDateTimeUtc": "2025-06-14T16:00:00",
		"Status":           "Finished",
	}
	m, err := normalizeMatch(rec)
	if err != nil {
		t.Fatalf("normalizeMatch: %v", err)
	}
	if m.MatchID != 9001 || m.TournamentID != 503 {
		t.Fatalf("keys = (%d, %d)", m.MatchID, m.TournamentID)
	}
	if m.WinnerTeamID == nil || *m.WinnerTeamID != 11 {
		t.Fatalf("winner = %v, want 11", m.WinnerTeamID)
	}
	if m.ScoreSets == nil || *m.ScoreSets != "2-0" {
		t.Fatalf("score = %v, want 2-0", m.ScoreSets)
	}
	if m.DurationMinutes == nil || *m.DurationMinutes != 44 {
		t.Fatalf("duration = %v, want 44", m.DurationMinutes)
	}
	if m.PlayedAt == nil || m.PlayedAt.Hour() != 16 {
		t.Fatalf("playedAt = %v", m.PlayedAt)
	}
	if m.Payload == "" || m.Payload == "{}" {
		t.Fatal("payload must retain the original record")
	}
}

func TestNormalizeMatchMissingKey(t *testing.T) {
	t.Parallel()

	if _, err := normalizeMatch(vis.Record{"No": "1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestNormalizeMatchRoundCodeFallback(t *testing.T) {
	t.Parallel()

	m, err := normalizeMatch(vis.Record{"No": "9", "NoTournament": "501", "RoundCode": "W1"})
	if err != nil {
		t.Fatalf("normalizeMatch: %v", err)
	}
	if m.RoundRef == nil || *m.RoundRef != "W1" {
		t.Fatalf("RoundRef = %v, want W1", m.RoundRef)
	}

	m, err = normalizeMatch(vis.Record{"No": "9", "NoTournament": "501", "NoRound": "7132", "RoundCode": "W1"})
	if err != nil {
		t.Fatalf("normalizeMatch: %v", err)
	}
	if m.RoundRef == nil || *m.RoundRef != "7132" {
		t.Fatalf("RoundRef = %v, want NoRound to win over RoundCode", m.RoundRef)
	}
}

func TestNormalizePlayerFullName(t *testing.T) {
	t.Parallel()

	p, err := normalizePlayer(vis.Record{"No": "77", "FirstName": "Anders", "LastName": "Mol", "Height": "1950000"})
	if err != nil {
		t.Fatalf("normalizePlayer: %v", err)
	}
	if p.FullName == nil || *p.FullName != "Anders Mol" {
		t.Fatalf("fullName = %v", p.FullName)
	}
	if p.HeightCM == nil || *p.HeightCM != 195 {
		t.Fatalf("heightCM = %v", p.HeightCM)
	}

	p, err = normalizePlayer(vis.Record{"No": "78", "LastName": "Mol"})
	if err != nil {
		t.Fatalf("normalizePlayer: %v", err)
	}
	if p.FullName == nil || *p.FullName != "Mol" {
		t.Fatalf("fullName = %v", p.FullName)
	}
}

func TestNormalizeResultPointsFieldFallback(t *testing.T) {
	t.Parallel()

	r, err := normalizeResult(503, vis.Record{"NoTeam": "11", "Position": "3"})
	if err != nil {
		t.Fatalf("normalizeResult: %v", err)
	}
	if r.FinishingPos == nil || *r.FinishingPos != 3 {
		t.Fatalf("finishingPos = %v, want 3 via Position fallback", r.FinishingPos)
	}
}

func TestNormalizeTeamRankingSnapshotPointsVariant(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	s, err := normalizeTeamRankingSnapshot("beach_world_tour", "M", date, vis.Record{
		"Position": "1", "EarnedPointsTeam": "8400",
	})
	if err != nil {
		t.Fatalf("normalizeTeamRankingSnapshot: %v", err)
	}
	if s.EarnedPoints == nil || *s.EarnedPoints != 8400 {
		t.Fatalf("points = %v, want 8400 via EarnedPointsTeam", s.EarnedPoints)
	}

	s, err = normalizeTeamRankingSnapshot("beach_olympic", "W", date, vis.Record{
		"Position": "2", "Points": "7100",
	})
	if err != nil {
		t.Fatalf("normalizeTeamRankingSnapshot: %v", err)
	}
	if s.EarnedPoints == nil || *s.EarnedPoints != 7100 {
		t.Fatalf("points = %v, want 7100 via Points", s.EarnedPoints)
	}
}
