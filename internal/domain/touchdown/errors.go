package touchdown

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrDuplicatePlaySequence = crerr.New("duplicate play sequence")
	ErrGameMismatch          = crerr.New("event belongs to another game")
)

// IntegrityError reports a feed defect that prevents deriving a game.
type IntegrityError struct {
	GameID       string
	PlaySequence int
	Count        int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: game=%s play=%d occurrences=%d", ErrDuplicatePlaySequence, e.GameID, e.PlaySequence, e.Count)
}

func (e *IntegrityError) Unwrap() error {
	return ErrDuplicatePlaySequence
}
