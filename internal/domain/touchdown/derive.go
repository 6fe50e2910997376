package touchdown

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/riskibarqy/fast6/internal/domain/playfeed"
)

// Derive computes the touchdown facts of one game from its full event set.
// Input order is not trusted. Two events sharing a play sequence fail with
// an *IntegrityError and produce no facts.
func Derive(game Game, events []playfeed.ScoringEvent, derivedAt time.Time) (Facts, error) {
	ordered := make([]playfeed.ScoringEvent, len(events))
	copy(ordered, events)
	for _, event := range ordered {
		if event.GameID != game.ID {
			return Facts{}, fmt.Errorf("%w: game=%s event_game=%s play=%d", ErrGameMismatch, game.ID, event.GameID, event.PlaySequence)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PlaySequence < ordered[j].PlaySequence
	})

	for idx := 1; idx < len(ordered); idx++ {
		if ordered[idx].PlaySequence != ordered[idx-1].PlaySequence {
			continue
		}
		count := 2
		for next := idx + 1; next < len(ordered) && ordered[next].PlaySequence == ordered[idx].PlaySequence; next++ {
			count++
		}
		return Facts{}, &IntegrityError{GameID: game.ID, PlaySequence: ordered[idx].PlaySequence, Count: count}
	}

	type scorerKey struct {
		name string
		team string
	}
	seen := make(map[scorerKey]struct{}, len(ordered))
	scorers := make([]Scorer, 0, len(ordered))
	for idx, event := range ordered {
		key := scorerKey{name: event.ScorerName, team: event.ScoringTeam}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		scorers = append(scorers, Scorer{
			Name:         event.ScorerName,
			Team:         event.ScoringTeam,
			IsFirst:      idx == 0,
			PlaySequence: event.PlaySequence,
		})
	}

	facts := Facts{
		GameID:    game.ID,
		Season:    game.Season,
		Week:      game.Week,
		Final:     game.Final,
		Scorers:   scorers,
		DerivedAt: derivedAt.UTC(),
	}
	facts.Fingerprint = Fingerprint(facts)
	return facts, nil
}

// Fingerprint hashes the content of facts, ignoring DerivedAt.
func Fingerprint(facts Facts) string {
	h := sha256.New()
	_, _ = h.Write([]byte(facts.GameID))
	_, _ = h.Write([]byte{0x1e})
	_, _ = h.Write([]byte(strconv.FormatBool(facts.Final)))
	for _, scorer := range facts.Scorers {
		_, _ = h.Write([]byte{0x1e})
		_, _ = h.Write([]byte(scorer.Name))
		_, _ = h.Write([]byte{0x1f})
		_, _ = h.Write([]byte(scorer.Team))
		_, _ = h.Write([]byte{0x1f})
		_, _ = h.Write([]byte(strconv.FormatBool(scorer.IsFirst)))
		_, _ = h.Write([]byte{0x1f})
		_, _ = h.Write([]byte(strconv.Itoa(scorer.PlaySequence)))
	}
	return hex.EncodeToString(h.Sum(nil))
}
