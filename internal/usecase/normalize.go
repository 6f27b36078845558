package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/skykauf/fivb-leaderboard/external/vis"
	"github.com/skykauf/fivb-leaderboard/internal/domain/event"
	"github.com/skykauf/fivb-leaderboard/internal/domain/match"
	"github.com/skykauf/fivb-leaderboard/internal/domain/player"
	"github.com/skykauf/fivb-leaderboard/internal/domain/round"
	"github.com/skykauf/fivb-leaderboard/internal/domain/team"
	"github.com/skykauf/fivb-leaderboard/internal/domain/teamranking"
	"github.com/skykauf/fivb-leaderboard/internal/domain/tournament"
)

// The coercers below encode real quirks of the VIS feed. Missing, empty and
// unparseable values become nil, never zero; callers that need a field to be
// present check for nil explicitly.

func intOrNil(v any) *int64 {
	switch value := v.(type) {
	case nil:
		return nil
	case int64:
		return &value
	case int:
		n := int64(value)
		return &n
	case float64:
		n := int64(value)
		return &n
	case string:
		text := strings.TrimSpace(value)
		if text == "" {
			return nil
		}
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return &n
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			n := int64(f)
			return &n
		}
		return nil
	default:
		return nil
	}
}

func floatOrNil(v any) *float64 {
	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		return &value
	case int64:
		f := float64(value)
		return &f
	case int:
		f := float64(value)
		return &f
	case string:
		text := strings.TrimSpace(value)
		if text == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return &f
		}
		return nil
	default:
		return nil
	}
}

// dateOrNil takes the first 10 characters of a string value as YYYY-MM-DD.
// VIS appends time parts inconsistently; the date prefix is the stable part.
func dateOrNil(v any) *time.Time {
	text, ok := v.(string)
	if !ok {
		return nil
	}
	text = strings.TrimSpace(text)
	if len(text) < 10 {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", text[:10])
	if err != nil {
		return nil
	}
	return &parsed
}

// timestampOrNil keeps the time component when the value carries one,
// falling back to the bare date prefix.
func timestampOrNil(v any) *time.Time {
	text, ok := v.(string)
	if !ok {
		return nil
	}
	text = strings.TrimSpace(text)
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05-07:00",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return &parsed
		}
	}
	return dateOrNil(v)
}

// boolVis treats "1", "true", "yes" and "on" (case-insensitively) as true;
// everything else, including absence, is false.
func boolVis(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case float64:
		return value == 1
	case int64:
		return value == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "on":
			return true
		}
	}
	return false
}

func strOrNil(v any) *string {
	var text string
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		text = strings.TrimSpace(value)
	case float64:
		if value == math.Trunc(value) {
			text = strconv.FormatInt(int64(value), 10)
		} else {
			text = strconv.FormatFloat(value, 'f', -1, 64)
		}
	default:
		text = fmt.Sprintf("%v", value)
	}
	if text == "" {
		return nil
	}
	return &text
}

// payloadJSON serializes the full original record; every row keeps it so
// columns can be rebuilt later without refetching.
func payloadJSON(rec vis.Record) string {
	raw, err := sonic.MarshalString(map[string]any(rec))
	if err != nil {
		return "{}"
	}
	return raw
}

func requiredID(rec vis.Record, field string) (int64, error) {
	id := intOrNil(rec[field])
	if id == nil {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidInput, field)
	}
	return *id, nil
}

func normalizeEvent(rec vis.Record) (event.Event, error) {
	id, err := requiredID(rec, "No")
	if err != nil {
		return event.Event{}, err
	}
	return event.Event{
		EventID:            id,
		Code:               strOrNil(rec["Code"]),
		Name:               strOrNil(rec["Name"]),
		StartDate:          dateOrNil(rec["StartDate"]),
		EndDate:            dateOrNil(rec["EndDate"]),
		Type:               strOrNil(rec["Type"]),
		ParentEventID:      intOrNil(rec["NoParentEvent"]),
		CountryCode:        strOrNil(rec["CountryCode"]),
		HasBeachTournament: boolVis(rec["HasBeachTournament"]),
		HasMenTournament:   boolVis(rec["HasMenTournament"]),
		HasWomenTournament: boolVis(rec["HasWomenTournament"]),
		IsVisManaged:       boolVis(rec["IsVisManaged"]),
		Payload:            payloadJSON(rec),
	}, nil
}

func normalizeTournament(rec vis.Record) (tournament.Tournament, error) {
	id, err := requiredID(rec, "No")
	if err != nil {
		return tournament.Tournament{}, err
	}
	return tournament.Tournament{
		TournamentID: id,
		Name:         strOrNil(rec["Name"]),
		Season:       strOrNil(rec["Season"]),
		Tier:         strOrNil(rec["Type"]),
		StartDate:    dateOrNil(rec["StartDate"]),
		EndDate:      dateOrNil(rec["EndDate"]),
		City:         strOrNil(rec["City"]),
		CountryCode:  strOrNil(rec["CountryCode"]),
		CountryName:  strOrNil(rec["CountryName"]),
		Gender:       strOrNil(rec["Gender"]),
		Status:       strOrNil(rec["Status"]),
		Timezone:     strOrNil(rec["Timezone"]),
		Payload:      payloadJSON(rec),
	}, nil
}

func normalizeTeam(rec vis.Record) (team.Team, error) {
	id, err := requiredID(rec, "No")
	if err != nil {
		return team.Team{}, err
	}
	tournamentID, err := requiredID(rec, "NoTournament")
	if err != nil {
		return team.Team{}, err
	}
	return team.Team{
		TeamID:       id,
		TournamentID: tournamentID,
		PlayerAID:    intOrNil(rec["NoPlayer1"]),
		PlayerBID:    intOrNil(rec["NoPlayer2"]),
		CountryCode:  strOrNil(rec["CountryCode"]),
		Status:       strOrNil(rec["Status"]),
		ValidFrom:    dateOrNil(rec["ValidFrom"]),
		ValidTo:      dateOrNil(rec["ValidTo"]),
		Payload:      payloadJSON(rec),
	}, nil
}

func normalizePlayer(rec vis.Record) (player.Player, error) {
	id, err := requiredID(rec, "No")
	if err != nil {
		return player.Player{}, err
	}
	first := strOrNil(rec["FirstName"])
	last := strOrNil(rec["LastName"])
	return player.Player{
		PlayerID:    id,
		FirstName:   first,
		LastName:    last,
		FullName:    fullName(first, last),
		Gender:      strOrNil(rec["Gender"]),
		BirthDate:   dateOrNil(rec["BirthDate"]),
		HeightCM:    heightCM(rec["Height"]),
		CountryCode: strOrNil(rec["CountryCode"]),
		Payload:     payloadJSON(rec),
	}, nil
}

func fullName(first, last *string) *string {
	parts := make([]string, 0, 2)
	if first != nil {
		parts = append(parts, *first)
	}
	if last != nil {
		parts = append(parts, *last)
	}
	if len(parts) == 0 {
		return nil
	}
	name := strings.Join(parts, " ")
	return &name
}

// heightCM resolves the inconsistently-unitted Height field: values of
// 10000 and above divide down to centimeters, values under 500 already are
// centimeters, the band in between is unresolvable and stays nil. The
// thresholds match the observed feed and are deliberately not generalized.
func heightCM(v any) *int64 {
	h := intOrNil(v)
	if h == nil {
		return nil
	}
	switch {
	case *h >= 10000:
		cm := *h / 10000
		return &cm
	case *h >= 0 && *h < 500:
		return h
	default:
		return nil
	}
}

func normalizeMatch(rec vis.Record) (match.Match, error) {
	id, err := requiredID(rec, "No")
	if err != nil {
		return match.Match{}, err
	}
	tournamentID, err := requiredID(rec, "NoTournament")
	if err != nil {
		return match.Match{}, err
	}

	team1 := intOrNil(rec["NoTeamA"])
	team2 := intOrNil(rec["NoTeamB"])
	pointsA := intOrNil(rec["MatchPointsA"])
	pointsB := intOrNil(rec["MatchPointsB"])

	playedAt := timestampOrNil(rec["BeginDateTimeUtc"])
	if playedAt == nil {
		playedAt = timestampOrNil(rec["DateTimeLocal"])
	}

	// Older tournaments label the round by code instead of number.
	roundRef := strOrNil(rec["NoRound"])
	if roundRef == nil {
		roundRef = strOrNil(rec["RoundCode"])
	}

	return match.Match{
		MatchID:         id,
		TournamentID:    tournamentID,
		Phase:           strOrNil(rec["Phase"]),
		RoundRef:        roundRef,
		Team1ID:         team1,
		Team2ID:         team2,
		WinnerTeamID:    matchWinner(team1, team2, pointsA, pointsB),
		ScoreSets:       scoreSets(pointsA, pointsB),
		DurationMinutes: matchDuration(rec),
		PlayedAt:        playedAt,
		ResultType:      strOrNil(rec["ResultType"]),
		Status:          strOrNil(rec["Status"]),
		Payload:         payloadJSON(rec),
	}, nil
}

// matchWinner derives the winning team id. Ties and incomplete records
// (either point total or either team id absent) derive no winner.
func matchWinner(team1, team2, pointsA, pointsB *int64) *int64 {
	if team1 == nil || team2 == nil || pointsA == nil || pointsB == nil {
		return nil
	}
	switch {
	case *pointsA > *pointsB:
		return team1
	case *pointsB > *pointsA:
		return team2
	default:
		return nil
	}
}

func scoreSets(pointsA, pointsB *int64) *string {
	if pointsA == nil || pointsB == nil {
		return nil
	}
	score := fmt.Sprintf("%d-%d", *pointsA, *pointsB)
	return &score
}

// matchDuration sums the per-set durations (seconds) and converts to whole
// minutes. A zero sum means no set carried a duration and derives nil.
func matchDuration(rec vis.Record) *int64 {
	var totalSeconds int64
	for _, field := range []string{"DurationSet1", "DurationSet2", "DurationSet3"} {
		if seconds := intOrNil(rec[field]); seconds != nil {
			totalSeconds += *seconds
		}
	}
	if totalSeconds == 0 {
		return nil
	}
	minutes := totalSeconds / 60
	return &minutes
}

func normalizeRound(rec vis.Record) (round.Round, error) {
	id, err := requiredID(rec, "No")
	if err != nil {
		return round.Round{}, err
	}
	return round.Round{
		RoundID:      id,
		TournamentID: intOrNil(rec["NoTournament"]),
		Code:         strOrNil(rec["Code"]),
		Name:         strOrNil(rec["Name"]),
		Bracket:      strOrNil(rec["Bracket"]),
		Phase:        strOrNil(rec["Phase"]),
		StartDate:    dateOrNil(rec["StartDate"]),
		EndDate:      dateOrNil(rec["EndDate"]),
		RankMethod:   strOrNil(rec["RankMethod"]),
		Payload:      payloadJSON(rec),
	}, nil
}

func normalizeRoundRanking(roundID int64, rec vis.Record) (round.Ranking, error) {
	position, err := requiredID(rec, "Position")
	if err != nil {
		return round.Ranking{}, err
	}
	return round.Ranking{
		RoundID:            roundID,
		Position:           position,
		Rank:               intOrNil(rec["Rank"]),
		TeamFederationCode: strOrNil(rec["TeamFederationCode"]),
		TeamName:           strOrNil(rec["TeamName"]),
		MatchPoints:        intOrNil(rec["MatchPoints"]),
		MatchesWon:         intOrNil(rec["MatchesWon"]),
		MatchesLost:        intOrNil(rec["MatchesLost"]),
		Payload:            payloadJSON(rec),
	}, nil
}

func normalizeResult(tournamentID int64, rec vis.Record) (tournament.Result, error) {
	teamID, err := requiredID(rec, "NoTeam")
	if err != nil {
		return tournament.Result{}, err
	}
	finishingPos := intOrNil(rec["Rank"])
	if finishingPos == nil {
		finishingPos = intOrNil(rec["Position"])
	}
	return tournament.Result{
		TournamentID: tournamentID,
		TeamID:       teamID,
		FinishingPos: finishingPos,
		Points:       intOrNil(rec["Points"]),
		PrizeMoney:   floatOrNil(rec["PrizeMoney"]),
		Payload:      payloadJSON(rec),
	}, nil
}

// normalizeTeamRankingSnapshot resolves the per-kind points field name:
// the world tour list sends EarnedPointsTeam, the olympic selection list
// sends Points.
func normalizeTeamRankingSnapshot(rankingType, gender string, snapshotDate time.Time, rec vis.Record) (teamranking.Snapshot, error) {
	position, err := requiredID(rec, "Position")
	if err != nil {
		return teamranking.Snapshot{}, err
	}
	points := intOrNil(rec["EarnedPointsTeam"])
	if points == nil {
		points = intOrNil(rec["Points"])
	}
	return teamranking.Snapshot{
		RankingType:  rankingType,
		SnapshotDate: snapshotDate,
		Gender:       gender,
		Position:     position,
		Player1ID:    intOrNil(rec["NoPlayer1"]),
		Player2ID:    intOrNil(rec["NoPlayer2"]),
		TeamName:     strOrNil(rec["TeamName"]),
		EarnedPoints: points,
		Payload:      payloadJSON(rec),
	}, nil
}

// tournamentYear infers the year that gates per-tournament expansion:
// Season parsed as a 4-digit year in [1900, 2100] wins, then the start
// date's year, then the end date's. Seasons like "1991-92" fail the parse
// on purpose and fall through to the dates.
func tournamentYear(t tournament.Tournament) (int, bool) {
	if t.Season != nil {
		if year, err := strconv.Atoi(strings.TrimSpace(*t.Season)); err == nil && year >= 1900 && year <= 2100 {
			return year, true
		}
	}
	if t.StartDate != nil {
		return t.StartDate.Year(), true
	}
	if t.EndDate != nil {
		return t.EndDate.Year(), true
	}
	return 0, false
}
