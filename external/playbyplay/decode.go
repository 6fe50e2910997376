package playbyplay

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fast6/internal/domain/playfeed"
)

var ErrInvalidPayload = crerr.New("invalid play-by-play payload")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses a feed payload holding either a single game object or a
// {"games": [...]} envelope. Only touchdown plays are kept; every other
// play is dropped without error.
func Decode(raw []byte, receivedAt time.Time) ([]playfeed.GameSnapshot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidPayload)
	}

	var games []gamePayload
	var wrapped envelope
	if err := sonic.Unmarshal(trimmed, &wrapped); err == nil && wrapped.Games != nil {
		games = wrapped.Games
	} else {
		var single gamePayload
		if err := sonic.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("%w: decode: %v", ErrInvalidPayload, err)
		}
		games = []gamePayload{single}
	}

	out := make([]playfeed.GameSnapshot, 0, len(games))
	for idx, game := range games {
		if err := validate.Struct(game); err != nil {
			return nil, fmt.Errorf("%w: game %d: %v", ErrInvalidPayload, idx, err)
		}
		out = append(out, snapshotFromPayload(game, receivedAt))
	}
	return out, nil
}

func snapshotFromPayload(game gamePayload, receivedAt time.Time) playfeed.GameSnapshot {
	gameID := strings.TrimSpace(game.GameID)
	plays := make([]playfeed.RawPlay, 0, len(game.Plays))
	for _, play := range game.Plays {
		if !bool(play.Touchdown) {
			continue
		}
		playGameID := strings.TrimSpace(play.GameID)
		if playGameID == "" {
			playGameID = gameID
		}
		season := play.Season
		if season == 0 {
			season = game.Season
		}
		plays = append(plays, playfeed.RawPlay{
			GameID:         playGameID,
			PlaySequence:   play.PlayID,
			Season:         season,
			PossessionTeam: play.PossessionTeam,
			DefenseTeam:    play.DefenseTeam,
			HomeTeam:       firstNonEmpty(play.HomeTeam, game.HomeTeam),
			AwayTeam:       firstNonEmpty(play.AwayTeam, game.AwayTeam),
			TouchdownTeam:  play.TouchdownTeam,
			IsReturn:       bool(play.ReturnTouchdown) || bool(play.Interception) || bool(play.FumbleLost),
			ScorerName:     play.ScorerName,
		})
	}

	return playfeed.GameSnapshot{
		GameID:     gameID,
		Season:     game.Season,
		Week:       game.Week,
		Status:     playfeed.NormalizeStatus(game.GameStatus),
		Plays:      plays,
		ReceivedAt: receivedAt.UTC(),
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
