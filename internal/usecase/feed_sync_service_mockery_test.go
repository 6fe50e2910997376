package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fast6/internal/domain/playfeed"
	"github.com/riskibarqy/fast6/internal/domain/touchdown"
	playfeedmock "github.com/riskibarqy/fast6/internal/mocks/domain/playfeed"
	touchdownmock "github.com/riskibarqy/fast6/internal/mocks/domain/touchdown"
	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestFeedSyncService_Sync_RejectsInvalidBatches(t *testing.T) {
	t.Parallel()

	service := NewFeedSyncService(playfeedmock.NewRepository(t), touchdownmock.NewRepository(t), nil, nil, nil, logging.NewNop(), FeedSyncServiceConfig{})

	tests := []struct {
		name      string
		snapshots []playfeed.GameSnapshot
	}{
		{name: "empty", snapshots: nil},
		{name: "blank game id", snapshots: []playfeed.GameSnapshot{{GameID: " "}}},
		{name: "duplicate game", snapshots: []playfeed.GameSnapshot{{GameID: "G1"}, {GameID: "G1"}}},
	}
	for _, tc := range tests {
		if _, err := service.Sync(context.Background(), SyncInput{Snapshots: tc.snapshots}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestFeedSyncService_Sync_SnapshotWriteFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	feedRepo := playfeedmock.NewRepository(t)
	factsRepo := touchdownmock.NewRepository(t)
	service := NewFeedSyncService(feedRepo, factsRepo, nil, nil, nil, logging.NewNop(), FeedSyncServiceConfig{})

	feedRepo.
		On("SaveSnapshot", mock.Anything, mock.MatchedBy(func(s playfeed.GameSnapshot) bool { return s.GameID == "G1" })).
		Return(errors.New("disk full")).
		Once()

	result, err := service.Sync(ctx, SyncInput{Snapshots: []playfeed.GameSnapshot{{GameID: "G1", Season: 2025}}})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.FailedCount != 1 || result.Games[0].Status != syncStatusFailed {
		t.Fatalf("expected failed game row, got=%+v", result)
	}
	factsRepo.AssertNotCalled(t, "UpsertFacts", mock.Anything, mock.Anything)
}

func TestFeedSyncService_ResolveReview_NotFlaggedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	feedRepo := playfeedmock.NewRepository(t)
	factsRepo := touchdownmock.NewRepository(t)
	service := NewFeedSyncService(feedRepo, factsRepo, nil, nil, nil, logging.NewNop(), FeedSyncServiceConfig{})

	factsRepo.On("GetReviewFlag", sameCtx(ctx), "G1").Return(touchdown.ReviewFlag{}, false, nil).Once()

	if _, err := service.ResolveReview(ctx, "G1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type stubFetcher struct {
	snapshots map[string]playfeed.GameSnapshot
}

func (f stubFetcher) FetchGameSnapshot(_ context.Context, gameID string) (playfeed.GameSnapshot, error) {
	snapshot, ok := f.snapshots[gameID]
	if !ok {
		return playfeed.GameSnapshot{}, errors.New("provider status=404")
	}
	return snapshot, nil
}

func TestFeedSyncService_Pull(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, false)
	engine.feed.fetcher = stubFetcher{snapshots: map[string]playfeed.GameSnapshot{
		"G1": finalSnapshot("G1", 1, offenseScore("G1", 2, "HME", "A. Smith")),
	}}

	result, err := engine.feed.Pull(context.Background(), PullInput{GameIDs: []string{"G1", "missing", "G1", " "}})
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if result.GameCount != 2 || result.DerivedCount != 1 || result.FailedCount != 1 {
		t.Fatalf("unexpected pull result: %+v", result)
	}
	if result.Games[0].GameID != "G1" || result.Games[1].GameID != "missing" {
		t.Fatalf("expected sorted rows, got=%+v", result.Games)
	}

	engine.feed.fetcher = nil
	if _, err := engine.feed.Pull(context.Background(), PullInput{GameIDs: []string{"G1"}}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable without a fetcher, got %v", err)
	}
}
