package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fast6/internal/domain/playfeed"
)

type PlayFeedRepository struct {
	mu        sync.RWMutex
	snapshots map[string]playfeed.GameSnapshot
	events    map[string][]playfeed.ScoringEvent
}

func NewPlayFeedRepository() *PlayFeedRepository {
	return &PlayFeedRepository{
		snapshots: make(map[string]playfeed.GameSnapshot),
		events:    make(map[string][]playfeed.ScoringEvent),
	}
}

func (r *PlayFeedRepository) SaveSnapshot(_ context.Context, snapshot playfeed.GameSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snapshot.GameID] = cloneSnapshot(snapshot)
	return nil
}

func (r *PlayFeedRepository) GetSnapshot(_ context.Context, gameID string) (playfeed.GameSnapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.snapshots[gameID]
	if !ok {
		return playfeed.GameSnapshot{}, false, nil
	}
	return cloneSnapshot(item), true, nil
}

func (r *PlayFeedRepository) ReplaceGameEvents(_ context.Context, gameID string, events []playfeed.ScoringEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(events) == 0 {
		delete(r.events, gameID)
		return nil
	}
	r.events[gameID] = append([]playfeed.ScoringEvent(nil), events...)
	return nil
}

func (r *PlayFeedRepository) ListGameEvents(_ context.Context, gameID string) ([]playfeed.ScoringEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]playfeed.ScoringEvent(nil), r.events[gameID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlaySequence < out[j].PlaySequence
	})
	return out, nil
}

func cloneSnapshot(item playfeed.GameSnapshot) playfeed.GameSnapshot {
	copied := item
	copied.Plays = make([]playfeed.RawPlay, 0, len(item.Plays))
	for _, play := range item.Plays {
		if play.PlaySequence != nil {
			seq := *play.PlaySequence
			play.PlaySequence = &seq
		}
		copied.Plays = append(copied.Plays, play)
	}
	return copied
}
