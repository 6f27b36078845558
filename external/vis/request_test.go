package vis

import (
	"strings"
	"testing"
)

func TestRequestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
		wrap bool
		want string
	}{
		{
			name: "bare request",
			req:  Request{Type: "GetPlayerList"},
			want: `<Request Type="GetPlayerList" />`,
		},
		{
			name: "fields and sorted attributes",
			req: Request{
				Type:   "GetBeachTournamentRanking",
				Fields: "Rank NoTeam",
				Attributes: map[string]string{
					"Phase": "MainDraw",
					"No":    "503",
				},
			},
			want: `<Request Type="GetBeachTournamentRanking" Fields="Rank NoTeam" No="503" Phase="MainDraw" />`,
		},
		{
			name: "empty attribute values omitted",
			req: Request{
				Type:       "GetBeachMatchList",
				Attributes: map[string]string{"Filter": ""},
			},
			want: `<Request Type="GetBeachMatchList" />`,
		},
		{
			name: "filter child element",
			req: Request{
				Type: "GetEventList",
				FilterAttributes: map[string]string{
					"HasBeachTournament": "true",
					"FirstStartDate":     "2024-01-01",
				},
			},
			want: `<Request Type="GetEventList"><Filter FirstStartDate="2024-01-01" HasBeachTournament="true" /></Request>`,
		},
		{
			name: "legacy wrapper",
			req:  Request{Type: "GetBeachTournamentRanking", Attributes: map[string]string{"No": "1"}},
			wrap: true,
			want: `<Requests><Request Type="GetBeachTournamentRanking" No="1" /></Requests>`,
		},
		{
			name: "attribute escaping",
			req: Request{
				Type:       "GetBeachTeamList",
				Attributes: map[string]string{"Filter": `Name="A & B" <open`},
			},
			want: `<Request Type="GetBeachTeamList" Filter="Name=&quot;A &amp; B&quot; &lt;open" />`,
		},
		{
			name: "single quotes pass through",
			req: Request{
				Type:       "GetBeachTournamentList",
				Attributes: map[string]string{"Filter": `Season='2025 2026'`},
			},
			want: `<Request Type="GetBeachTournamentList" Filter="Season='2025 2026'" />`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := tc.req.encode(tc.wrap)
			if got != tc.want {
				t.Fatalf("encode() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOperationTableDefaults(t *testing.T) {
	t.Parallel()

	ops := operationTable()
	for name, op := range ops {
		if op.nodePath == "" {
			t.Errorf("operation %s has no node path", name)
		}
		if op.fields == "" {
			t.Errorf("operation %s has no default fields", name)
		}
	}

	for _, name := range []string{
		"GetBeachTournamentRanking",
		"GetBeachRoundRanking",
		"GetBeachWorldTourRanking",
		"GetBeachOlympicSelectionRanking",
	} {
		if ops[name].jsonAllowed {
			t.Errorf("operation %s must stay XML-only", name)
		}
	}
	if !ops["GetBeachTournamentRanking"].wrapRequest {
		t.Error("GetBeachTournamentRanking must use the legacy wrapper")
	}
	if strings.Contains(ops["GetBeachMatchList"].fields, ",") {
		t.Error("field lists are space separated")
	}
}
