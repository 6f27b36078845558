package vis

import (
	"context"
	"strconv"
)

// EventFilter narrows GetEventList. Zero-value fields are omitted.
type EventFilter struct {
	HasBeachTournament bool
	NoParentEvent      bool
	// Inclusive bounds on the event start date, formatted YYYY-MM-DD.
	FirstStartDate string
	LastStartDate  string
}

func (f EventFilter) attributes() map[string]string {
	attrs := map[string]string{}
	if f.HasBeachTournament {
		attrs["HasBeachTournament"] = "true"
	}
	if f.NoParentEvent {
		attrs["NoParentEvent"] = "0"
	}
	if f.FirstStartDate != "" {
		attrs["FirstStartDate"] = f.FirstStartDate
	}
	if f.LastStartDate != "" {
		attrs["LastStartDate"] = f.LastStartDate
	}
	return attrs
}

func (c *Client) FetchEventList(ctx context.Context, filter EventFilter) ([]Record, error) {
	return c.Invoke(ctx, Request{
		Type:             "GetEventList",
		FilterAttributes: filter.attributes(),
	})
}

// FetchBeachTournaments lists tournaments matching a VIS filter expression
// such as `Season='2025 2026'`. The expression goes on the Request element.
func (c *Client) FetchBeachTournaments(ctx context.Context, filterExpr string) ([]Record, error) {
	return c.Invoke(ctx, Request{
		Type:       "GetBeachTournamentList",
		Attributes: filterAttr(filterExpr),
	})
}

func (c *Client) FetchBeachTournament(ctx context.Context, no int64) ([]Record, error) {
	return c.Invoke(ctx, Request{
		Type:       "GetBeachTournament",
		Attributes: map[string]string{"No": strconv.FormatInt(no, 10)},
	})
}

func (c *Client) FetchBeachTeams(ctx context.Context, filterExpr string) ([]Record, error) {
	return c.Invoke(ctx, Request{
		Type:       "GetBeachTeamList",
		Attributes: filterAttr(filterExpr),
	})
}

func (c *Client) FetchPlayerList(ctx context.Context) ([]Record, error) {
	return c.Invoke(ctx, Request{Type: "GetPlayerList"})
}

func (c *Client) FetchPlayer(ctx context.Context, no int64) ([]Record, error) {
	return c.Invoke(ctx, Request{
		Type:       "GetPlayer",
		Attributes: map[string]string{"No": strconv.FormatInt(no, 10)},
	})
}

// FetchBeachMatches lists matches; an empty filterExpr means all matches.
func (c *Client) FetchBeachMatches(ctx context.Context, filterExpr string) ([]Record, error) {
	return c.Invoke(ctx, Request{
		Type:       "GetBeachMatchList",
		Attributes: filterAttr(filterExpr),
	})
}

// FetchBeachTournamentRanking returns the final standings of one tournament.
// phase is "" for the combined ranking, or "MainDraw" / "Qualification".
func (c *Client) FetchBeachTournamentRanking(ctx context.Context, no int64, phase string) ([]Record, error) {
	attrs := map[string]string{"No": strconv.FormatInt(no, 10)}
	if phase != "" {
		attrs["Phase"] = phase
	}
	return c.Invoke(ctx, Request{
		Type:       "GetBeachTournamentRanking",
		Attributes: attrs,
	})
}

func (c *Client) FetchBeachRoundList(ctx context.Context, tournamentNo int64) ([]Record, error) {
	return c.Invoke(ctx, Request{
		Type:       "GetBeachRoundList",
		Attributes: filterAttr(`NoTournament="` + strconv.FormatInt(tournamentNo, 10) + `"`),
	})
}

// FetchBeachRoundRanking returns the standings of one round. Rounds without
// standings (single-elimination brackets and the like) answer with an error
// payload; that surfaces as ErrNotApplicable rather than a failure.
func (c *Client) FetchBeachRoundRanking(ctx context.Context, roundNo int64) ([]Record, error) {
	return c.Invoke(ctx, Request{
		Type:       "GetBeachRoundRanking",
		Attributes: map[string]string{"No": strconv.FormatInt(roundNo, 10)},
	})
}

// FetchBeachWorldTourRanking returns the current world tour ranking for one
// gender, "M" or "W".
func (c *Client) FetchBeachWorldTourRanking(ctx context.Context, gender string) ([]Record, error) {
	return c.Invoke(ctx, Request{
		Type:       "GetBeachWorldTourRanking",
		Attributes: map[string]string{"Gender": genderCode(gender)},
	})
}

func (c *Client) FetchBeachOlympicSelectionRanking(ctx context.Context, gender string) ([]Record, error) {
	return c.Invoke(ctx, Request{
		Type:       "GetBeachOlympicSelectionRanking",
		Attributes: map[string]string{"Gender": genderCode(gender)},
	})
}

func filterAttr(expr string) map[string]string {
	if expr == "" {
		return nil
	}
	return map[string]string{"Filter": expr}
}

// genderCode maps "M"/"W" to the numeric codes VIS expects.
func genderCode(gender string) string {
	if gender == "W" {
		return "1"
	}
	return "0"
}
