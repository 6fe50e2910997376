package performance

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRules = crerr.New("invalid scoring rules")
	ErrInvalidScope = crerr.New("invalid performance scope")
)

// PayoutFunc returns the net result of one settled pick. staked is false when
// the pick carries no usable price and contributes no money.
type PayoutFunc func(stake decimal.Decimal, odds *int, won bool) (net decimal.Decimal, staked bool)

// Rules stores the scoring and monetary parameters of a leaderboard.
type Rules struct {
	FirstScorerPoints int
	AnyTimePoints     int
	Stake             decimal.Decimal
	Payout            PayoutFunc
}

func DefaultRules() Rules {
	return Rules{
		FirstScorerPoints: 3,
		AnyTimePoints:     1,
		Stake:             decimal.NewFromInt(1),
		Payout:            AmericanOddsPayout,
	}
}

func (r Rules) Validate() error {
	if r.AnyTimePoints < 0 {
		return fmt.Errorf("%w: any-time points must be >= 0, got %d", ErrInvalidRules, r.AnyTimePoints)
	}
	if r.FirstScorerPoints <= r.AnyTimePoints {
		return fmt.Errorf(
			"%w: first scorer points (%d) must be greater than any-time points (%d)",
			ErrInvalidRules, r.FirstScorerPoints, r.AnyTimePoints,
		)
	}
	if !r.Stake.IsPositive() {
		return fmt.Errorf("%w: stake must be > 0, got %s", ErrInvalidRules, r.Stake.String())
	}
	return nil
}

func (r Rules) payout() PayoutFunc {
	if r.Payout == nil {
		return AmericanOddsPayout
	}
	return r.Payout
}

var hundred = decimal.NewFromInt(100)

// AmericanOddsPayout converts a fixed stake at American odds into a net
// result. A win at +odds returns stake*odds/100, a win at -odds returns
// stake*100/|odds| and a loss forfeits the stake.
func AmericanOddsPayout(stake decimal.Decimal, odds *int, won bool) (decimal.Decimal, bool) {
	if odds == nil || (*odds > -100 && *odds < 100) {
		return decimal.Zero, false
	}
	if !won {
		return stake.Neg(), true
	}

	price := decimal.NewFromInt(int64(*odds))
	if price.IsPositive() {
		return stake.Mul(price).Div(hundred), true
	}
	return stake.Mul(hundred).Div(price.Abs()), true
}
