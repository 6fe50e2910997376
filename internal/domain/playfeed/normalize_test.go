package playfeed

import (
	"errors"
	"testing"
)

func seq(v int) *int {
	return &v
}

func TestNormalize_ScoringTeam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  RawPlay
		want string
	}{
		{
			name: "offensive touchdown uses possession team",
			raw:  RawPlay{GameID: "G1", PlaySequence: seq(1), PossessionTeam: "hme", ScorerName: "A. Smith"},
			want: "HME",
		},
		{
			name: "declared team wins on non-return",
			raw:  RawPlay{GameID: "G1", PlaySequence: seq(1), TouchdownTeam: "HME", ScorerName: "A. Smith"},
			want: "HME",
		},
		{
			name: "return score flips to defense team",
			raw: RawPlay{
				GameID: "G1", PlaySequence: seq(3), PossessionTeam: "AWY", DefenseTeam: "HME",
				IsReturn: true, ScorerName: "J. Doe",
			},
			want: "HME",
		},
		{
			name: "return score without defense column resolves from home and away",
			raw: RawPlay{
				GameID: "G1", PlaySequence: seq(3), PossessionTeam: "AWY", HomeTeam: "HME", AwayTeam: "AWY",
				IsReturn: true, ScorerName: "J. Doe",
			},
			want: "HME",
		},
		{
			name: "return score with agreeing declared team",
			raw: RawPlay{
				GameID: "G1", PlaySequence: seq(3), PossessionTeam: "AWY", DefenseTeam: "HME",
				TouchdownTeam: "HME", IsReturn: true, ScorerName: "J. Doe",
			},
			want: "HME",
		},
		{
			name: "return score with only declared team",
			raw:  RawPlay{GameID: "G1", PlaySequence: seq(3), TouchdownTeam: "HME", IsReturn: true, ScorerName: "J. Doe"},
			want: "HME",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			event, err := Normalize(tc.raw)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if event.ScoringTeam != tc.want {
				t.Fatalf("unexpected scoring team: got=%s want=%s", event.ScoringTeam, tc.want)
			}
		})
	}
}

func TestNormalize_ReturnScoreNeverUsesPossessionTeam(t *testing.T) {
	t.Parallel()

	event, err := Normalize(RawPlay{
		GameID:         "G1",
		PlaySequence:   seq(3),
		PossessionTeam: "AWY",
		HomeTeam:       "HME",
		AwayTeam:       "AWY",
		IsReturn:       true,
		ScorerName:     "  J.   Doe ",
		Season:         2025,
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if event.ScoringTeam == "AWY" {
		t.Fatalf("return score attributed to possession team")
	}
	if event.ScorerName != "J. Doe" {
		t.Fatalf("unexpected scorer name: %q", event.ScorerName)
	}
	if event.PlaySequence != 3 || event.Season != 2025 || event.GameID != "G1" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestNormalize_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   RawPlay
		field string
	}{
		{name: "missing game id", raw: RawPlay{PlaySequence: seq(1), PossessionTeam: "HME", ScorerName: "x"}, field: "game_id"},
		{name: "missing play sequence", raw: RawPlay{GameID: "G1", PossessionTeam: "HME", ScorerName: "x"}, field: "play_sequence"},
		{name: "negative play sequence", raw: RawPlay{GameID: "G1", PlaySequence: seq(-1), PossessionTeam: "HME", ScorerName: "x"}, field: "play_sequence"},
		{name: "missing scorer", raw: RawPlay{GameID: "G1", PlaySequence: seq(1), PossessionTeam: "HME", ScorerName: "  "}, field: "scorer_name"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Normalize(tc.raw)
			if !errors.Is(err, ErrMalformedEvent) {
				t.Fatalf("expected ErrMalformedEvent, got %v", err)
			}
			var malformed *MalformedEventError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedEventError, got %T", err)
			}
			if malformed.Field != tc.field {
				t.Fatalf("unexpected field: got=%s want=%s", malformed.Field, tc.field)
			}
		})
	}
}

func TestNormalize_Ambiguous(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  RawPlay
	}{
		{
			name: "no team signal",
			raw:  RawPlay{GameID: "G1", PlaySequence: seq(1), ScorerName: "x"},
		},
		{
			name: "return without opponent context",
			raw:  RawPlay{GameID: "G1", PlaySequence: seq(1), PossessionTeam: "AWY", IsReturn: true, ScorerName: "x"},
		},
		{
			name: "return declared for possessing team",
			raw: RawPlay{
				GameID: "G1", PlaySequence: seq(1), PossessionTeam: "AWY", DefenseTeam: "HME",
				TouchdownTeam: "AWY", IsReturn: true, ScorerName: "x",
			},
		},
		{
			name: "non-return declared for defense",
			raw: RawPlay{
				GameID: "G1", PlaySequence: seq(1), PossessionTeam: "AWY", TouchdownTeam: "HME", ScorerName: "x",
			},
		},
		{
			name: "possession team not in game",
			raw: RawPlay{
				GameID: "G1", PlaySequence: seq(1), PossessionTeam: "XYZ", HomeTeam: "HME", AwayTeam: "AWY",
				IsReturn: true, ScorerName: "x",
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Normalize(tc.raw)
			if !errors.Is(err, ErrAmbiguousTeam) {
				t.Fatalf("expected ErrAmbiguousTeam, got %v", err)
			}
			var ambiguous *AmbiguousTeamError
			if !errors.As(err, &ambiguous) || ambiguous.GameID != "G1" || ambiguous.PlaySequence != 1 {
				t.Fatalf("expected identified AmbiguousTeamError, got %v", err)
			}
		})
	}
}

func TestNormalizeBatch_CollectsRejections(t *testing.T) {
	t.Parallel()

	out := NormalizeBatch([]RawPlay{
		{GameID: "G1", PlaySequence: seq(1), PossessionTeam: "HME", ScorerName: "A. Smith"},
		{GameID: "G1", PossessionTeam: "HME", ScorerName: "B. Jones"},
		{GameID: "G2", PlaySequence: seq(4), PossessionTeam: "AWY", ScorerName: "C. Brown"},
	})
	if len(out.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(out.Events))
	}
	if len(out.Rejected) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(out.Rejected))
	}
	if out.Rejected[0].Index != 1 || out.Rejected[0].GameID != "G1" {
		t.Fatalf("unexpected rejection: %+v", out.Rejected[0])
	}
}

func TestIsFinalStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"FINAL", "final", " F ", "FINAL_OVERTIME", "POST"} {
		if !IsFinalStatus(status) {
			t.Fatalf("expected %q to be final", status)
		}
	}
	for _, status := range []string{"", "LIVE", "Q4", "SCHEDULED"} {
		if IsFinalStatus(status) {
			t.Fatalf("expected %q to be non-final", status)
		}
	}
}
