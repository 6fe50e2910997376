package settlement

import "time"

// Record is the settled outcome of one prediction. There is at most one
// record per prediction; re-settlement replaces it.
type Record struct {
	PredictionID            string
	UserID                  string
	GameID                  string
	Season                  int
	Week                    int
	IsFirstScorerCorrect    bool
	IsAnyTimeScorerHit      bool
	MatchedActualScorerName *string
	// FactsFingerprint identifies the facts version the record was settled against.
	FactsFingerprint string
	// SettledAt is the derivation time of those facts, so re-settling
	// unchanged inputs reproduces the record exactly.
	SettledAt time.Time
}

// Equal reports whether two records are identical field by field.
func (r Record) Equal(other Record) bool {
	if r.PredictionID != other.PredictionID ||
		r.UserID != other.UserID ||
		r.GameID != other.GameID ||
		r.Season != other.Season ||
		r.Week != other.Week ||
		r.IsFirstScorerCorrect != other.IsFirstScorerCorrect ||
		r.IsAnyTimeScorerHit != other.IsAnyTimeScorerHit ||
		r.FactsFingerprint != other.FactsFingerprint ||
		!r.SettledAt.Equal(other.SettledAt) {
		return false
	}
	switch {
	case r.MatchedActualScorerName == nil && other.MatchedActualScorerName == nil:
		return true
	case r.MatchedActualScorerName == nil || other.MatchedActualScorerName == nil:
		return false
	default:
		return *r.MatchedActualScorerName == *other.MatchedActualScorerName
	}
}

// Status is the user-facing state of a prediction.
type Status string

const (
	StatusPending     Status = "pending"
	StatusNeedsReview Status = "needs_review"
	StatusWon         Status = "won"
	StatusAnyTimeHit  Status = "any_time_hit"
	StatusLost        Status = "lost"
)

// StatusOf maps a stored record and the game's review state to a Status.
// A review flag wins over any previously stored record.
func StatusOf(record *Record, needsReview bool) Status {
	switch {
	case needsReview:
		return StatusNeedsReview
	case record == nil:
		return StatusPending
	case record.IsFirstScorerCorrect:
		return StatusWon
	case record.IsAnyTimeScorerHit:
		return StatusAnyTimeHit
	default:
		return StatusLost
	}
}
