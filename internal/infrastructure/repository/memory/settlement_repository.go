package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fast6/internal/domain/settlement"
)

type SettlementRepository struct {
	mu      sync.RWMutex
	records map[string]settlement.Record
}

func NewSettlementRepository() *SettlementRepository {
	return &SettlementRepository{records: make(map[string]settlement.Record)}
}

func (r *SettlementRepository) GetByPrediction(_ context.Context, predictionID string) (settlement.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.records[predictionID]
	if !ok {
		return settlement.Record{}, false, nil
	}
	return cloneRecord(item), true, nil
}

func (r *SettlementRepository) Replace(_ context.Context, record settlement.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.PredictionID] = cloneRecord(record)
	return nil
}

func (r *SettlementRepository) DeleteByPrediction(_ context.Context, predictionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, predictionID)
	return nil
}

func (r *SettlementRepository) ListByGame(_ context.Context, gameID string) ([]settlement.Record, error) {
	return r.list(func(item settlement.Record) bool { return item.GameID == gameID }), nil
}

func (r *SettlementRepository) ListBySeason(_ context.Context, season int) ([]settlement.Record, error) {
	return r.list(func(item settlement.Record) bool { return item.Season == season }), nil
}

func (r *SettlementRepository) list(keep func(settlement.Record) bool) []settlement.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]settlement.Record, 0)
	for _, item := range r.records {
		if keep(item) {
			out = append(out, cloneRecord(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PredictionID < out[j].PredictionID
	})
	return out
}

func cloneRecord(item settlement.Record) settlement.Record {
	copied := item
	if item.MatchedActualScorerName != nil {
		name := *item.MatchedActualScorerName
		copied.MatchedActualScorerName = &name
	}
	return copied
}
