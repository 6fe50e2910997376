package prediction

import "context"

type Repository interface {
	GetByID(ctx context.Context, predictionID string) (Prediction, bool, error)
	Upsert(ctx context.Context, item Prediction) error
	ListByGame(ctx context.Context, gameID string) ([]Prediction, error)
	ListBySeason(ctx context.Context, season int) ([]Prediction, error)
}
