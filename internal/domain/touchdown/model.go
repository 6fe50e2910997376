package touchdown

import "time"

// Scorer is one any-time touchdown scorer of a game.
type Scorer struct {
	Name string
	Team string
	// IsFirst is set on the scorer of the game's earliest touchdown only.
	IsFirst bool
	// PlaySequence is the scorer's earliest touchdown play.
	PlaySequence int
}

// Game identifies the game a derivation runs for.
type Game struct {
	ID     string
	Season int
	Week   int
	Final  bool
}

// Facts is the derived touchdown outcome of one game.
type Facts struct {
	GameID      string
	Season      int
	Week        int
	Final       bool
	Scorers     []Scorer
	Fingerprint string
	DerivedAt   time.Time
}

// First returns the first touchdown scorer, if any.
func (f Facts) First() (Scorer, bool) {
	for _, scorer := range f.Scorers {
		if scorer.IsFirst {
			return scorer, true
		}
	}
	return Scorer{}, false
}

const (
	ReviewReasonDuplicatePlaySequence = "duplicate_play_sequence"
	ReviewReasonMalformedEvent        = "malformed_event"
	ReviewReasonAmbiguousTeam         = "ambiguous_team"
)

// ReviewFlag excludes a game from automatic derivation until an operator
// resolves it.
type ReviewFlag struct {
	GameID       string
	Reason       string
	Detail       string
	PlaySequence *int
	FlaggedAt    time.Time
}
