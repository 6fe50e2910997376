package playfeed

import "strings"

// Rejection is a raw play that could not be normalized.
type Rejection struct {
	Index  int
	GameID string
	Err    error
}

// BatchResult holds the outcome of normalizing a batch of raw plays.
type BatchResult struct {
	Events   []ScoringEvent
	Rejected []Rejection
}

// Normalize converts one raw scoring play into a ScoringEvent.
//
// On a return score the scoring team is the side without possession at the
// snap. A declared touchdown team is trusted only when it agrees with the
// return flag.
func Normalize(raw RawPlay) (ScoringEvent, error) {
	gameID := strings.TrimSpace(raw.GameID)
	if gameID == "" {
		return ScoringEvent{}, &MalformedEventError{Field: "game_id"}
	}
	if raw.PlaySequence == nil {
		return ScoringEvent{}, &MalformedEventError{GameID: gameID, Field: "play_sequence"}
	}
	if *raw.PlaySequence < 0 {
		return ScoringEvent{}, &MalformedEventError{GameID: gameID, Field: "play_sequence"}
	}
	scorer := NormalizeScorerName(raw.ScorerName)
	if scorer == "" {
		return ScoringEvent{}, &MalformedEventError{GameID: gameID, Field: "scorer_name"}
	}

	team, err := resolveScoringTeam(gameID, *raw.PlaySequence, raw)
	if err != nil {
		return ScoringEvent{}, err
	}

	return ScoringEvent{
		GameID:       gameID,
		PlaySequence: *raw.PlaySequence,
		ScoringTeam:  team,
		ScorerName:   scorer,
		Season:       raw.Season,
	}, nil
}

// NormalizeBatch normalizes every play and collects rejections instead of
// failing the batch.
func NormalizeBatch(plays []RawPlay) BatchResult {
	out := BatchResult{Events: make([]ScoringEvent, 0, len(plays))}
	for idx, raw := range plays {
		event, err := Normalize(raw)
		if err != nil {
			out.Rejected = append(out.Rejected, Rejection{
				Index:  idx,
				GameID: strings.TrimSpace(raw.GameID),
				Err:    err,
			})
			continue
		}
		out.Events = append(out.Events, event)
	}
	return out
}

func resolveScoringTeam(gameID string, seq int, raw RawPlay) (string, error) {
	possession := NormalizeTeam(raw.PossessionTeam)
	declared := NormalizeTeam(raw.TouchdownTeam)
	ambiguous := func(reason string) error {
		return &AmbiguousTeamError{
			GameID:         gameID,
			PlaySequence:   seq,
			PossessionTeam: possession,
			DeclaredTeam:   declared,
			Reason:         reason,
		}
	}

	if !raw.IsReturn {
		switch {
		case declared != "" && possession != "" && declared != possession:
			return "", ambiguous("declared team differs from possession team on a non-return score")
		case declared != "":
			return declared, nil
		case possession != "":
			return possession, nil
		default:
			return "", ambiguous("no possession or declared team")
		}
	}

	opponent, conflict := opponentOf(possession, raw)
	if conflict != "" {
		return "", ambiguous(conflict)
	}
	switch {
	case declared != "" && declared == possession:
		return "", ambiguous("return score declared for the possessing team")
	case declared != "" && opponent != "" && declared != opponent:
		return "", ambiguous("declared team is not the opponent of the possessing team")
	case declared != "":
		return declared, nil
	case opponent != "":
		return opponent, nil
	default:
		return "", ambiguous("return score without a resolvable opponent")
	}
}

// opponentOf returns the non-possessing team, or "" when the feed does not
// carry enough context to name it. A non-empty conflict means the feed
// context contradicts itself.
func opponentOf(possession string, raw RawPlay) (team string, conflict string) {
	defense := NormalizeTeam(raw.DefenseTeam)
	if defense != "" {
		if defense == possession {
			return "", "defense team equals possession team"
		}
		return defense, ""
	}
	if possession == "" {
		return "", ""
	}

	home := NormalizeTeam(raw.HomeTeam)
	away := NormalizeTeam(raw.AwayTeam)
	switch possession {
	case home:
		return away, ""
	case away:
		return home, ""
	default:
		if home != "" && away != "" {
			return "", "possession team is neither home nor away"
		}
		return "", ""
	}
}
