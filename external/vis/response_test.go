package vis

import (
	"reflect"
	"testing"
)

func TestParseJSONResponse(t *testing.T) {
	t.Parallel()

	t.Run("data key with camelCase fields", func(t *testing.T) {
		t.Parallel()
		body := []byte(`{"data":[{"no":42,"countryCode":"BRA"},{"no":43}]}`)
		out, err := parseJSONResponse(body)
		if err != nil {
			t.Fatalf("parseJSONResponse: %v", err)
		}
		if len(out.records) != 2 {
			t.Fatalf("got %d records, want 2", len(out.records))
		}
		if out.records[0]["CountryCode"] != "BRA" {
			t.Fatalf("CountryCode = %v, want BRA", out.records[0]["CountryCode"])
		}
		if _, ok := out.records[0]["countryCode"]; ok {
			t.Fatal("camelCase key leaked through normalization")
		}
	})

	t.Run("bare list", func(t *testing.T) {
		t.Parallel()
		out, err := parseJSONResponse([]byte(`[{"name":"Rio Open"}]`))
		if err != nil {
			t.Fatalf("parseJSONResponse: %v", err)
		}
		if len(out.records) != 1 || out.records[0]["Name"] != "Rio Open" {
			t.Fatalf("unexpected records: %v", out.records)
		}
	})

	t.Run("unknown wrapper key", func(t *testing.T) {
		t.Parallel()
		out, err := parseJSONResponse([]byte(`{"beachTournaments":[{"no":7}]}`))
		if err != nil {
			t.Fatalf("parseJSONResponse: %v", err)
		}
		if len(out.records) != 1 {
			t.Fatalf("got %d records, want 1", len(out.records))
		}
	})
}

func TestParseXMLResponse(t *testing.T) {
	t.Parallel()

	t.Run("attributes become fields", func(t *testing.T) {
		t.Parallel()
		body := []byte(`<BeachTournaments><BeachTournament No="503" Name="Doha Elite16"/><BeachTournament No="504"/></BeachTournaments>`)
		out, err := parseXMLResponse(body, "BeachTournament")
		if err != nil {
			t.Fatalf("parseXMLResponse: %v", err)
		}
		if len(out.records) != 2 {
			t.Fatalf("got %d records, want 2", len(out.records))
		}
		if out.records[0]["Name"] != "Doha Elite16" {
			t.Fatalf("Name = %v", out.records[0]["Name"])
		}
	})

	t.Run("leaf children contribute text", func(t *testing.T) {
		t.Parallel()
		body := []byte(`<Players><Player No="100"><FirstName>Anders</FirstName><Team Code="NOR"/></Player></Players>`)
		out, err := parseXMLResponse(body, "Player")
		if err != nil {
			t.Fatalf("parseXMLResponse: %v", err)
		}
		rec := out.records[0]
		if rec["FirstName"] != "Anders" {
			t.Fatalf("FirstName = %v", rec["FirstName"])
		}
		team, ok := rec["Team"].(map[string]any)
		if !ok || team["Code"] != "NOR" {
			t.Fatalf("Team = %v", rec["Team"])
		}
	})

	t.Run("namespace on root is ignored", func(t *testing.T) {
		t.Parallel()
		body := []byte(`<Events xmlns="http://www.fivb.org/vis"><Event No="1"/></Events>`)
		out, err := parseXMLResponse(body, "Event")
		if err != nil {
			t.Fatalf("parseXMLResponse: %v", err)
		}
		if len(out.records) != 1 {
			t.Fatalf("got %d records, want 1", len(out.records))
		}
	})

	t.Run("error payload yields error text", func(t *testing.T) {
		t.Parallel()
		body := []byte(`<Responses><Error Message="Round 7132 has no ranking"/></Responses>`)
		out, err := parseXMLResponse(body, "BeachRoundRankingEntry")
		if err != nil {
			t.Fatalf("parseXMLResponse: %v", err)
		}
		if len(out.records) != 0 {
			t.Fatalf("got %d records, want 0", len(out.records))
		}
		if out.errorText != "Round 7132 has no ranking" {
			t.Fatalf("errorText = %q", out.errorText)
		}
	})
}

// Both wire shapes must produce the same record for the same logical data.
func TestWireShapeEquivalence(t *testing.T) {
	t.Parallel()

	jsonOut, err := parseJSONResponse([]byte(`{"data":[{"no":"42","name":"X"}]}`))
	if err != nil {
		t.Fatalf("json parse: %v", err)
	}
	xmlOut, err := parseXMLResponse([]byte(`<Items><Item No="42" Name="X"/></Items>`), "Item")
	if err != nil {
		t.Fatalf("xml parse: %v", err)
	}
	if !reflect.DeepEqual(jsonOut.records, xmlOut.records) {
		t.Fatalf("records differ: json=%v xml=%v", jsonOut.records, xmlOut.records)
	}
}

func TestIsErrorRecord(t *testing.T) {
	t.Parallel()

	if !IsErrorRecord(Record{"Errors": "permission denied"}) {
		t.Fatal("record with Errors key must be an error record")
	}
	if IsErrorRecord(Record{"No": int64(1)}) {
		t.Fatal("plain record flagged as error")
	}
	if IsErrorRecord(nil) {
		t.Fatal("nil record flagged as error")
	}
}
