package performance

import (
	"fmt"

	"github.com/riskibarqy/fast6/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// Scope selects the settled picks a leaderboard covers. Week zero covers the
// whole season.
type Scope struct {
	Season int
	Week   int
}

func (s Scope) Validate() error {
	if s.Season <= 0 {
		return fmt.Errorf("%w: season must be > 0", ErrInvalidScope)
	}
	if s.Week < 0 {
		return fmt.Errorf("%w: week must be >= 0", ErrInvalidScope)
	}
	return nil
}

func (s Scope) Contains(season, week int) bool {
	if season != s.Season {
		return false
	}
	return s.Week == 0 || s.Week == week
}

// Entry is one settled pick joined with the price recorded on its prediction.
type Entry struct {
	PredictionID         string
	UserID               string
	Season               int
	Week                 int
	IsFirstScorerCorrect bool
	IsAnyTimeScorerHit   bool
	PayoutOdds           *int
}

func EntryFromRecord(record settlement.Record, odds *int) Entry {
	return Entry{
		PredictionID:         record.PredictionID,
		UserID:               record.UserID,
		Season:               record.Season,
		Week:                 record.Week,
		IsFirstScorerCorrect: record.IsFirstScorerCorrect,
		IsAnyTimeScorerHit:   record.IsAnyTimeScorerHit,
		PayoutOdds:           odds,
	}
}

// Snapshot is a user's aggregated performance within a scope.
type Snapshot struct {
	UserID      string
	Rank        int
	Points      int
	Picks       int
	Correct     int
	Incorrect   int
	AnyTimeHits int
	Staked      decimal.Decimal
	Return      decimal.Decimal
	// ROI is nil when nothing was staked.
	ROI *decimal.Decimal
	// WinRate is nil when the user has no settled picks in scope.
	WinRate *float64
}
