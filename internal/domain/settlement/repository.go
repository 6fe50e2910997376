package settlement

import "context"

type Repository interface {
	GetByPrediction(ctx context.Context, predictionID string) (Record, bool, error)
	// Replace atomically swaps the record of a prediction.
	Replace(ctx context.Context, record Record) error
	DeleteByPrediction(ctx context.Context, predictionID string) error
	ListByGame(ctx context.Context, gameID string) ([]Record, error)
	ListBySeason(ctx context.Context, season int) ([]Record, error)
}
