package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("game_id", "payload").
		From("game_touchdown_facts").
		Where(Eq("season", 2025), IsNull("deleted_at"), In("game_id", []any{"G1", "G2"})).
		OrderBy("game_id").
		Limit(5).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_id, payload FROM game_touchdown_facts WHERE season = $1 AND deleted_at IS NULL AND game_id IN ($2, $3) ORDER BY game_id LIMIT 5"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 2025 || args[2] != "G2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("predictions").Where(In("game_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM predictions WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query=%s args=%+v", query, args)
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("scoring_events").
		Columns("game_id", "play_sequence").
		Values("G1", 3).
		Values("G1", 7).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO scoring_events (game_id, play_sequence) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != 7 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("scoring_events").Where(Eq("game_id", "G1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM scoring_events WHERE game_id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query=%s args=%+v", query, args)
	}

	if _, _, err := DeleteFrom("scoring_events").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestExprCondition(t *testing.T) {
	query, args, err := Select("id").
		From("settlement_records").
		Where(Eq("season", 2025), Expr("(? = 0 OR week = ?)", 3, 3)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM settlement_records WHERE season = $1 AND ($2 = 0 OR week = $3)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type eventRow struct {
	GameID       string `db:"game_id"`
	PlaySequence int    `db:"play_sequence"`
	internal     string
	Ignored      string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	rows := []eventRow{{GameID: "G1", PlaySequence: 3, internal: "x"}, {GameID: "G1", PlaySequence: 7}}
	query, args, err := InsertModels("scoring_events", rows, "")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}
	if query != "INSERT INTO scoring_events (game_id, play_sequence) VALUES ($1, $2), ($3, $4)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 4 || args[0] != "G1" || args[3] != 7 {
		t.Fatalf("unexpected args: %+v", args)
	}

	cols := Columns(eventRow{})
	if len(cols) != 2 || cols[0] != "game_id" || cols[1] != "play_sequence" {
		t.Fatalf("unexpected columns: %v", cols)
	}

	if _, _, err := InsertModels[eventRow]("scoring_events", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
