package querybuilder

import "testing"

func TestSelectWithConditionsAndOrder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("fixture_id", "home_team_name").
		From("fixtures").
		Where(
			Eq("fixture_date::date", "2026-08-28"),
			In("league_id", []any{int64(39), int64(140)}),
		).
		OrderBy("fixture_date", "fixture_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT fixture_id, home_team_name FROM fixtures WHERE fixture_date::date = $1 AND league_id IN ($2, $3) ORDER BY fixture_date, fixture_id LIMIT 10"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 3 {
		t.Fatalf("args = %v, want 3 items", args)
	}
}

func TestSelectRequiresTable(t *testing.T) {
	t.Parallel()

	if _, _, err := Select("fixture_id").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsertWithConflictSuffix(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("predictions").
		Columns("fixture_id", "advice").
		Values(int64(101), "Double chance").
		Suffix("ON CONFLICT (fixture_id) DO UPDATE SET advice = EXCLUDED.advice").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO predictions (fixture_id, advice) VALUES ($1, $2) ON CONFLICT (fixture_id) DO UPDATE SET advice = EXCLUDED.advice"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v, want 2 items", args)
	}
}

func TestInsertRejectsColumnValueMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("predictions").
		Columns("fixture_id", "advice").
		Values(int64(101)).
		ToSQL()
	if err == nil {
		t.Fatal("expected error for column/value count mismatch")
	}
}

func TestDeleteRequiresCondition(t *testing.T) {
	t.Parallel()

	if _, _, err := DeleteFrom("fixtures").ToSQL(); err == nil {
		t.Fatal("expected error for delete without conditions")
	}

	query, args, err := DeleteFrom("fixtures").
		Where(Expr("fixture_date::date = ?", "2026-08-28")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "DELETE FROM fixtures WHERE fixture_date::date = $1"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 1 {
		t.Fatalf("args = %v, want 1 item", args)
	}
}

func TestInEmptyValuesNeverMatches(t *testing.T) {
	t.Parallel()

	query, args, err := Select("fixture_id").
		From("fixtures").
		Where(In("league_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT fixture_id FROM fixtures WHERE 1=0"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want none", args)
	}
}
