package performance

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	moneyPlaces = 2
	roiPlaces   = 4
)

// Aggregate rolls settled picks up into ranked per-user snapshots.
//
// participants lists users that must appear even without settled picks.
// Ordering is points descending, then return descending, then user id
// ascending, so equal inputs in any order produce the same output.
func Aggregate(entries []Entry, participants []string, scope Scope, rules Rules) ([]Snapshot, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	payout := rules.payout()
	byUser := make(map[string]*Snapshot)
	ensure := func(userID string) *Snapshot {
		item, ok := byUser[userID]
		if !ok {
			item = &Snapshot{UserID: userID, Staked: decimal.Zero, Return: decimal.Zero}
			byUser[userID] = item
		}
		return item
	}

	for _, userID := range participants {
		userID = strings.TrimSpace(userID)
		if userID == "" {
			continue
		}
		ensure(userID)
	}

	for _, entry := range entries {
		userID := strings.TrimSpace(entry.UserID)
		if userID == "" || !scope.Contains(entry.Season, entry.Week) {
			continue
		}
		item := ensure(userID)
		item.Picks++

		if entry.IsFirstScorerCorrect {
			item.Correct++
			item.Points += rules.FirstScorerPoints
		} else {
			item.Incorrect++
		}
		if entry.IsAnyTimeScorerHit {
			item.AnyTimeHits++
			item.Points += rules.AnyTimePoints
		}

		if net, staked := payout(rules.Stake, entry.PayoutOdds, entry.IsFirstScorerCorrect); staked {
			item.Staked = item.Staked.Add(rules.Stake)
			item.Return = item.Return.Add(net)
		}
	}

	out := make([]Snapshot, 0, len(byUser))
	for _, item := range byUser {
		item.Return = item.Return.Round(moneyPlaces)
		item.Staked = item.Staked.Round(moneyPlaces)
		if item.Picks > 0 {
			rate := float64(item.Correct) / float64(item.Picks)
			item.WinRate = &rate
		}
		if item.Staked.IsPositive() {
			roi := item.Return.DivRound(item.Staked, roiPlaces)
			item.ROI = &roi
		}
		out = append(out, *item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if cmp := out[i].Return.Cmp(out[j].Return); cmp != 0 {
			return cmp > 0
		}
		return out[i].UserID < out[j].UserID
	})

	rank := 0
	for idx := range out {
		if idx == 0 || out[idx].Points != out[idx-1].Points || !out[idx].Return.Equal(out[idx-1].Return) {
			rank++
		}
		out[idx].Rank = rank
	}

	return out, nil
}
