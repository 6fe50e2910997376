package playbyplay

import (
	"errors"
	"testing"
	"time"
)

var receivedAt = time.Date(2025, 9, 8, 3, 0, 0, 0, time.UTC)

func TestDecode_SingleGameKeepsTouchdownPlaysOnly(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"game_id": "2025_01_KC_BAL",
		"season": 2025,
		"week": 1,
		"game_status": "final",
		"home_team": "BAL",
		"away_team": "KC",
		"plays": [
			{"play_id": 40, "posteam": "KC", "defteam": "BAL", "touchdown": 0},
			{"play_id": 55, "posteam": "KC", "defteam": "BAL", "td_team": "KC", "td_player_name": "T.Kelce", "touchdown": 1},
			{"play_id": 90, "posteam": "BAL", "defteam": "KC", "td_team": "KC", "td_player_name": "T.McDuffie", "touchdown": "1", "interception": true}
		]
	}`)

	snapshots, err := Decode(raw, receivedAt)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("expected one snapshot, got=%d", len(snapshots))
	}

	snapshot := snapshots[0]
	if snapshot.GameID != "2025_01_KC_BAL" || snapshot.Season != 2025 || snapshot.Week != 1 {
		t.Fatalf("unexpected snapshot header: %+v", snapshot)
	}
	if snapshot.Status != "FINAL" {
		t.Fatalf("expected normalized status FINAL, got=%q", snapshot.Status)
	}
	if !snapshot.ReceivedAt.Equal(receivedAt) {
		t.Fatalf("unexpected received at: %s", snapshot.ReceivedAt)
	}
	if len(snapshot.Plays) != 2 {
		t.Fatalf("expected two touchdown plays, got=%d", len(snapshot.Plays))
	}

	first := snapshot.Plays[0]
	if first.GameID != "2025_01_KC_BAL" || first.Season != 2025 || first.HomeTeam != "BAL" || first.AwayTeam != "KC" {
		t.Fatalf("expected game header to fill play defaults, got=%+v", first)
	}
	if first.PlaySequence == nil || *first.PlaySequence != 55 || first.IsReturn {
		t.Fatalf("unexpected first play: %+v", first)
	}
	if !snapshot.Plays[1].IsReturn {
		t.Fatalf("expected interception touchdown to be a return score")
	}
}

func TestDecode_Envelope(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"games": [
		{"game_id": "G1", "season": 2025, "week": 2, "plays": []},
		{"game_id": "G2", "season": 2025, "week": 2, "plays": [{"td_player_name": "A.Brown", "touchdown": true}]}
	]}`)

	snapshots, err := Decode(raw, receivedAt)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected two snapshots, got=%d", len(snapshots))
	}
	if len(snapshots[1].Plays) != 1 || snapshots[1].Plays[0].PlaySequence != nil {
		t.Fatalf("expected missing play_id to pass through as nil, got=%+v", snapshots[1].Plays)
	}
}

func TestDecode_RejectsInvalidPayloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "  "},
		{name: "not json", raw: "<html>"},
		{name: "missing game id", raw: `{"season": 2025, "plays": []}`},
		{name: "missing season", raw: `{"game_id": "G1", "plays": []}`},
		{name: "negative week", raw: `{"game_id": "G1", "season": 2025, "week": -1}`},
		{name: "bad flag", raw: `{"game_id": "G1", "season": 2025, "plays": [{"touchdown": "yes"}]}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode([]byte(tc.raw), receivedAt)
			if !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got=%v", err)
			}
		})
	}
}
