package prediction

import (
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var ErrInvalidPrediction = crerr.New("invalid prediction")

// Prediction is a user's first touchdown scorer pick for one game.
type Prediction struct {
	ID                  string
	UserID              string
	GameID              string
	Season              int
	Team                string
	PredictedPlayerName string
	// PayoutOdds is the American price recorded with the pick, nil when unpriced.
	PayoutOdds *int
	UpdatedAt  time.Time
}

// Normalize trims identifiers and canonicalizes the team abbreviation.
func (p Prediction) Normalize() Prediction {
	p.ID = strings.TrimSpace(p.ID)
	p.UserID = strings.TrimSpace(p.UserID)
	p.GameID = strings.TrimSpace(p.GameID)
	p.Team = strings.ToUpper(strings.TrimSpace(p.Team))
	p.PredictedPlayerName = strings.Join(strings.Fields(p.PredictedPlayerName), " ")
	return p
}

// ValidateForSettlement checks the fields settlement depends on.
func (p Prediction) ValidateForSettlement() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPrediction)
	}
	if strings.TrimSpace(p.Team) == "" {
		return fmt.Errorf("%w: prediction=%s team is required", ErrInvalidPrediction, p.ID)
	}
	if strings.TrimSpace(p.PredictedPlayerName) == "" {
		return fmt.Errorf("%w: prediction=%s player name is required", ErrInvalidPrediction, p.ID)
	}
	return nil
}

// Validate checks a prediction before it is stored.
func (p Prediction) Validate() error {
	if err := p.ValidateForSettlement(); err != nil {
		return err
	}
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("%w: prediction=%s user id is required", ErrInvalidPrediction, p.ID)
	}
	if strings.TrimSpace(p.GameID) == "" {
		return fmt.Errorf("%w: prediction=%s game id is required", ErrInvalidPrediction, p.ID)
	}
	if p.Season <= 0 {
		return fmt.Errorf("%w: prediction=%s season must be > 0", ErrInvalidPrediction, p.ID)
	}
	if p.PayoutOdds != nil && !ValidAmericanOdds(*p.PayoutOdds) {
		return fmt.Errorf("%w: prediction=%s payout odds %d are not valid american odds", ErrInvalidPrediction, p.ID, *p.PayoutOdds)
	}
	return nil
}

// ValidAmericanOdds reports whether odds is a usable American price.
func ValidAmericanOdds(odds int) bool {
	return odds >= 100 || odds <= -100
}
