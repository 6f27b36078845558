package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("tournament_id", "season").
		From("raw_fivb_tournaments").
		Where(Eq("gender", "M"), IsNotNull("season")).
		OrderBy("tournament_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "SELECT tournament_id, season FROM raw_fivb_tournaments WHERE gender = $1 AND season IS NOT NULL ORDER BY tournament_id LIMIT 10"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"M"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestSelectBuilderValidation(t *testing.T) {
	t.Parallel()

	if _, _, err := Select().From("t").ToSQL(); err == nil {
		t.Fatal("expected error for missing columns")
	}
	if _, _, err := Select("a").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInCondition(t *testing.T) {
	t.Parallel()

	query, args, err := Select("*").From("raw_fivb_matches").
		Where(In("tournament_id", []any{int64(1), int64(2)})).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	want := "SELECT * FROM raw_fivb_matches WHERE tournament_id IN ($1, $2)"
	if query != want {
		t.Fatalf("query = %q", query)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v", args)
	}

	// An empty IN list must match nothing, not everything.
	query, _, err = Select("*").From("t").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	if query != "SELECT * FROM t WHERE 1=0" {
		t.Fatalf("query = %q", query)
	}
}

func TestInsertBuilderMultiRow(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("raw_fivb_events").
		Columns("event_id", "name").
		Values(int64(1), "A").
		Values(int64(2), "B").
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	want := "INSERT INTO raw_fivb_events (event_id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (event_id) DO NOTHING"
	if query != want {
		t.Fatalf("query = %q", query)
	}
	if !reflect.DeepEqual(args, []any{int64(1), "A", int64(2), "B"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertBuilderRowWidthMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	if err == nil {
		t.Fatal("expected error for mismatched row width")
	}
}

type upsertModel struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Payload string `db:"payload"`
	Skipped string `db:"-"`
}

func TestUpsertModels(t *testing.T) {
	t.Parallel()

	rows := []upsertModel{
		{ID: 1, Name: "a", Payload: "{}"},
		{ID: 2, Name: "b", Payload: "{}"},
	}
	query, args, err := UpsertModels("raw_fivb_events", rows, []string{"id"}, "ingested_at = NOW()")
	if err != nil {
		t.Fatalf("UpsertModels: %v", err)
	}
	want := "INSERT INTO raw_fivb_events (id, name, payload) VALUES ($1, $2, $3), ($4, $5, $6) " +
		"ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, payload = EXCLUDED.payload, ingested_at = NOW()"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 6 {
		t.Fatalf("args = %v", args)
	}
}

func TestUpsertModelsAllKeyColumns(t *testing.T) {
	t.Parallel()

	type keyOnly struct {
		A int64 `db:"a"`
		B int64 `db:"b"`
	}
	query, _, err := UpsertModels("t", []keyOnly{{1, 2}}, []string{"a", "b"}, "")
	if err != nil {
		t.Fatalf("UpsertModels: %v", err)
	}
	if want := "INSERT INTO t (a, b) VALUES ($1, $2) ON CONFLICT (a, b) DO NOTHING"; query != want {
		t.Fatalf("query = %q", query)
	}
}

func TestInsertModelsEmptySlice(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertModels("t", []upsertModel{}, ""); err == nil {
		t.Fatal("expected error for empty slice")
	}
}
