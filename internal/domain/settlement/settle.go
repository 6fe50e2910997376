package settlement

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fast6/internal/domain/namematch"
	"github.com/riskibarqy/fast6/internal/domain/prediction"
	"github.com/riskibarqy/fast6/internal/domain/touchdown"
)

var ErrFactsMismatch = crerr.New("facts belong to another game")

// Settle grades a prediction against the derived facts of its game.
//
// It returns false, with no record, while the game is pending: no facts yet
// or the game has not concluded. A concluded game without touchdowns settles
// as a loss.
func Settle(p prediction.Prediction, facts *touchdown.Facts) (Record, bool, error) {
	p = p.Normalize()
	if err := p.ValidateForSettlement(); err != nil {
		return Record{}, false, err
	}
	if facts == nil || !facts.Final {
		return Record{}, false, nil
	}
	if facts.GameID != p.GameID {
		return Record{}, false, fmt.Errorf("%w: prediction=%s game=%s facts_game=%s", ErrFactsMismatch, p.ID, p.GameID, facts.GameID)
	}

	record := Record{
		PredictionID:     p.ID,
		UserID:           p.UserID,
		GameID:           facts.GameID,
		Season:           facts.Season,
		Week:             facts.Week,
		FactsFingerprint: facts.Fingerprint,
		SettledAt:        facts.DerivedAt.UTC(),
	}

	first, hasFirst := facts.First()
	if hasFirst && first.Team == p.Team && namematch.Matches(p.PredictedPlayerName, first.Name) {
		name := first.Name
		record.IsFirstScorerCorrect = true
		record.IsAnyTimeScorerHit = true
		record.MatchedActualScorerName = &name
		return record, true, nil
	}

	// Any same-team scorer accepted by the resolver is a hit. BestMatchOnTeam
	// only picks the name to record; when it is ambiguous the earliest
	// matching scorer is recorded.
	var earliest *touchdown.Scorer
	candidates := make([]namematch.Candidate, 0, len(facts.Scorers))
	for idx := range facts.Scorers {
		scorer := facts.Scorers[idx]
		candidates = append(candidates, namematch.Candidate{Name: scorer.Name, Team: scorer.Team})
		if scorer.Team != p.Team || !namematch.Matches(p.PredictedPlayerName, scorer.Name) {
			continue
		}
		if earliest == nil || scorer.PlaySequence < earliest.PlaySequence {
			earliest = &facts.Scorers[idx]
		}
	}
	if earliest == nil {
		return record, true, nil
	}

	name := earliest.Name
	if match, ok := namematch.BestMatchOnTeam(p.PredictedPlayerName, p.Team, candidates); ok {
		name = match.Name
	}
	record.IsAnyTimeScorerHit = true
	record.MatchedActualScorerName = &name
	return record, true, nil
}

// Explain returns the resolver's diagnostic for a settled miss, for operator
// logs. It is empty when the prediction matched a scorer.
func Explain(p prediction.Prediction, facts touchdown.Facts) string {
	p = p.Normalize()
	candidates := make([]namematch.Candidate, 0, len(facts.Scorers))
	for _, scorer := range facts.Scorers {
		if scorer.Team == p.Team && namematch.Matches(p.PredictedPlayerName, scorer.Name) {
			return ""
		}
		candidates = append(candidates, namematch.Candidate{Name: scorer.Name, Team: scorer.Team})
	}
	match, _ := namematch.BestMatchOnTeam(p.PredictedPlayerName, p.Team, candidates)
	return match.Reason
}
