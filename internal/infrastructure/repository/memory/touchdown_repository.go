package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fast6/internal/domain/touchdown"
)

type TouchdownRepository struct {
	mu    sync.RWMutex
	facts map[string]touchdown.Facts
	flags map[string]touchdown.ReviewFlag
}

func NewTouchdownRepository() *TouchdownRepository {
	return &TouchdownRepository{
		facts: make(map[string]touchdown.Facts),
		flags: make(map[string]touchdown.ReviewFlag),
	}
}

func (r *TouchdownRepository) GetFacts(_ context.Context, gameID string) (touchdown.Facts, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.facts[gameID]
	if !ok {
		return touchdown.Facts{}, false, nil
	}
	return cloneFacts(item), true, nil
}

func (r *TouchdownRepository) UpsertFacts(_ context.Context, facts touchdown.Facts) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.facts[facts.GameID] = cloneFacts(facts)
	return nil
}

func (r *TouchdownRepository) DeleteFacts(_ context.Context, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.facts, gameID)
	return nil
}

func (r *TouchdownRepository) ListFinalGameIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.facts))
	for gameID, item := range r.facts {
		if item.Final {
			out = append(out, gameID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *TouchdownRepository) ListFactsBySeason(_ context.Context, season int) ([]touchdown.Facts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]touchdown.Facts, 0)
	for _, item := range r.facts {
		if item.Season == season {
			out = append(out, cloneFacts(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GameID < out[j].GameID
	})
	return out, nil
}

func (r *TouchdownRepository) GetReviewFlag(_ context.Context, gameID string) (touchdown.ReviewFlag, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.flags[gameID]
	if !ok {
		return touchdown.ReviewFlag{}, false, nil
	}
	return cloneFlag(item), true, nil
}

func (r *TouchdownRepository) UpsertReviewFlag(_ context.Context, flag touchdown.ReviewFlag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flags[flag.GameID] = cloneFlag(flag)
	return nil
}

func (r *TouchdownRepository) DeleteReviewFlag(_ context.Context, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.flags, gameID)
	return nil
}

func (r *TouchdownRepository) ListReviewFlags(_ context.Context) ([]touchdown.ReviewFlag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]touchdown.ReviewFlag, 0, len(r.flags))
	for _, item := range r.flags {
		out = append(out, cloneFlag(item))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GameID < out[j].GameID
	})
	return out, nil
}

func cloneFacts(item touchdown.Facts) touchdown.Facts {
	copied := item
	copied.Scorers = append([]touchdown.Scorer(nil), item.Scorers...)
	return copied
}

func cloneFlag(item touchdown.ReviewFlag) touchdown.ReviewFlag {
	copied := item
	if item.PlaySequence != nil {
		seq := *item.PlaySequence
		copied.PlaySequence = &seq
	}
	return copied
}
