package playfeed

import "context"

// Repository stores the latest feed snapshot and the normalized events of
// each game.
type Repository interface {
	SaveSnapshot(ctx context.Context, snapshot GameSnapshot) error
	GetSnapshot(ctx context.Context, gameID string) (GameSnapshot, bool, error)

	// ReplaceGameEvents swaps the full event set of one game.
	ReplaceGameEvents(ctx context.Context, gameID string, events []ScoringEvent) error
	ListGameEvents(ctx context.Context, gameID string) ([]ScoringEvent, error)
}
