package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fast6/internal/domain/prediction"
)

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[string]prediction.Prediction
}

func NewPredictionRepository(seed []prediction.Prediction) *PredictionRepository {
	items := make(map[string]prediction.Prediction, len(seed))
	for _, item := range seed {
		items[item.ID] = clonePrediction(item)
	}
	return &PredictionRepository{items: items}
}

func (r *PredictionRepository) GetByID(_ context.Context, predictionID string) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[predictionID]
	if !ok {
		return prediction.Prediction{}, false, nil
	}
	return clonePrediction(item), true, nil
}

func (r *PredictionRepository) Upsert(_ context.Context, item prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = clonePrediction(item)
	return nil
}

func (r *PredictionRepository) ListByGame(_ context.Context, gameID string) ([]prediction.Prediction, error) {
	return r.list(func(item prediction.Prediction) bool { return item.GameID == gameID }), nil
}

func (r *PredictionRepository) ListBySeason(_ context.Context, season int) ([]prediction.Prediction, error) {
	return r.list(func(item prediction.Prediction) bool { return item.Season == season }), nil
}

func (r *PredictionRepository) list(keep func(prediction.Prediction) bool) []prediction.Prediction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.items {
		if keep(item) {
			out = append(out, clonePrediction(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func clonePrediction(item prediction.Prediction) prediction.Prediction {
	copied := item
	if item.PayoutOdds != nil {
		odds := *item.PayoutOdds
		copied.PayoutOdds = &odds
	}
	return copied
}
