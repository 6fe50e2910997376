package playfeed

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrMalformedEvent = crerr.New("malformed scoring event")
	ErrAmbiguousTeam  = crerr.New("ambiguous scoring team")
)

// MalformedEventError reports a raw play that is missing a required field.
type MalformedEventError struct {
	GameID string
	Field  string
}

func (e *MalformedEventError) Error() string {
	if e.GameID == "" {
		return fmt.Sprintf("%s: missing %s", ErrMalformedEvent, e.Field)
	}
	return fmt.Sprintf("%s: game=%s missing %s", ErrMalformedEvent, e.GameID, e.Field)
}

func (e *MalformedEventError) Unwrap() error {
	return ErrMalformedEvent
}

// AmbiguousTeamError reports a scoring play whose beneficiary cannot be
// determined from the feed signals.
type AmbiguousTeamError struct {
	GameID         string
	PlaySequence   int
	PossessionTeam string
	DeclaredTeam   string
	Reason         string
}

func (e *AmbiguousTeamError) Error() string {
	return fmt.Sprintf(
		"%s: game=%s play=%d posteam=%q td_team=%q: %s",
		ErrAmbiguousTeam, e.GameID, e.PlaySequence, e.PossessionTeam, e.DeclaredTeam, e.Reason,
	)
}

func (e *AmbiguousTeamError) Unwrap() error {
	return ErrAmbiguousTeam
}
