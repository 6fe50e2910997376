package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fast6/internal/domain/prediction"
	"github.com/riskibarqy/fast6/internal/domain/settlement"
	"github.com/riskibarqy/fast6/internal/domain/touchdown"
	predictionmock "github.com/riskibarqy/fast6/internal/mocks/domain/prediction"
	settlementmock "github.com/riskibarqy/fast6/internal/mocks/domain/settlement"
	touchdownmock "github.com/riskibarqy/fast6/internal/mocks/domain/touchdown"
	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func sameCtx(ctx context.Context) any {
	return mock.MatchedBy(func(v context.Context) bool { return v == ctx })
}

func concludedFacts(gameID string) touchdown.Facts {
	return touchdown.Facts{
		GameID:      gameID,
		Season:      2025,
		Week:        3,
		Final:       true,
		Scorers:     []touchdown.Scorer{{Name: "A. Smith", Team: "HME", IsFirst: true, PlaySequence: 4}},
		Fingerprint: "fp-1",
		DerivedAt:   time.Date(2025, 9, 21, 23, 0, 0, 0, time.UTC),
	}
}

func TestSettlementService_SettleGame_FlaggedGameUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	predictionRepo := predictionmock.NewRepository(t)
	settlementRepo := settlementmock.NewRepository(t)
	factsRepo := touchdownmock.NewRepository(t)
	service := NewSettlementService(predictionRepo, settlementRepo, factsRepo, nil, logging.NewNop(), SettlementServiceConfig{})

	factsRepo.
		On("GetReviewFlag", sameCtx(ctx), "G1").
		Return(touchdown.ReviewFlag{GameID: "G1", Reason: touchdown.ReviewReasonDuplicatePlaySequence}, true, nil).
		Once()

	row, err := service.SettleGame(ctx, "G1", false)
	if !errors.Is(err, ErrNeedsReview) {
		t.Fatalf("expected ErrNeedsReview, got %v", err)
	}
	if row.Status != settleStatusNeedsReview || row.Message != touchdown.ReviewReasonDuplicatePlaySequence {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestSettlementService_SettleGame_SkipsUnchangedRecordUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	predictionRepo := predictionmock.NewRepository(t)
	settlementRepo := settlementmock.NewRepository(t)
	factsRepo := touchdownmock.NewRepository(t)
	service := NewSettlementService(predictionRepo, settlementRepo, factsRepo, nil, logging.NewNop(), SettlementServiceConfig{})

	facts := concludedFacts("G1")
	item := prediction.Prediction{ID: "p1", UserID: "u1", GameID: "G1", Season: 2025, Team: "HME", PredictedPlayerName: "A Smith"}
	existing, _, err := settlement.Settle(item, &facts)
	if err != nil {
		t.Fatalf("settle fixture: %v", err)
	}

	factsRepo.On("GetReviewFlag", sameCtx(ctx), "G1").Return(touchdown.ReviewFlag{}, false, nil).Once()
	factsRepo.On("GetFacts", sameCtx(ctx), "G1").Return(facts, true, nil).Once()
	predictionRepo.On("ListByGame", sameCtx(ctx), "G1").Return([]prediction.Prediction{item}, nil).Once()
	settlementRepo.On("GetByPrediction", sameCtx(ctx), "p1").Return(existing, true, nil).Once()

	row, err := service.SettleGame(ctx, "G1", false)
	if err != nil {
		t.Fatalf("settle game: %v", err)
	}
	if row.Unchanged != 1 || row.Settled != 0 || row.Resettled != 0 {
		t.Fatalf("expected unchanged record to skip the write, got=%+v", row)
	}
	settlementRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestSettlementService_SettleGame_ReportsInvalidPredictionsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	predictionRepo := predictionmock.NewRepository(t)
	settlementRepo := settlementmock.NewRepository(t)
	factsRepo := touchdownmock.NewRepository(t)
	service := NewSettlementService(predictionRepo, settlementRepo, factsRepo, nil, logging.NewNop(), SettlementServiceConfig{})

	facts := concludedFacts("G1")
	valid := prediction.Prediction{ID: "p1", UserID: "u1", GameID: "G1", Season: 2025, Team: "HME", PredictedPlayerName: "A. Smith"}
	broken := prediction.Prediction{ID: "p0", UserID: "u2", GameID: "G1", Season: 2025, Team: "", PredictedPlayerName: "A. Smith"}

	factsRepo.On("GetReviewFlag", sameCtx(ctx), "G1").Return(touchdown.ReviewFlag{}, false, nil).Once()
	factsRepo.On("GetFacts", sameCtx(ctx), "G1").Return(facts, true, nil).Once()
	predictionRepo.On("ListByGame", sameCtx(ctx), "G1").Return([]prediction.Prediction{valid, broken}, nil).Once()
	settlementRepo.On("GetByPrediction", sameCtx(ctx), "p1").Return(settlement.Record{}, false, nil).Once()
	settlementRepo.
		On("Replace", sameCtx(ctx), mock.MatchedBy(func(record settlement.Record) bool {
			return record.PredictionID == "p1" && record.IsFirstScorerCorrect && record.SettledAt.Equal(facts.DerivedAt)
		})).
		Return(nil).
		Once()

	row, err := service.SettleGame(ctx, "G1", false)
	if err != nil {
		t.Fatalf("settle game: %v", err)
	}
	if row.Settled != 1 || len(row.Invalid) != 1 || row.Invalid[0].PredictionID != "p0" {
		t.Fatalf("expected one settled and one invalid, got=%+v", row)
	}
}

func TestSettlementService_SettleGame_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	predictionRepo := predictionmock.NewRepository(t)
	settlementRepo := settlementmock.NewRepository(t)
	factsRepo := touchdownmock.NewRepository(t)
	service := NewSettlementService(predictionRepo, settlementRepo, factsRepo, nil, logging.NewNop(), SettlementServiceConfig{})

	boom := errors.New("connection reset")
	factsRepo.On("GetReviewFlag", sameCtx(ctx), "G1").Return(touchdown.ReviewFlag{}, false, nil).Once()
	factsRepo.On("GetFacts", sameCtx(ctx), "G1").Return(concludedFacts("G1"), true, nil).Once()
	predictionRepo.On("ListByGame", sameCtx(ctx), "G1").Return(nil, boom).Once()

	if _, err := service.SettleGame(ctx, "G1", false); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestSettlementService_RecordPredictionEdit_InvalidInputUsingMockery(t *testing.T) {
	t.Parallel()

	predictionRepo := predictionmock.NewRepository(t)
	settlementRepo := settlementmock.NewRepository(t)
	factsRepo := touchdownmock.NewRepository(t)
	service := NewSettlementService(predictionRepo, settlementRepo, factsRepo, nil, logging.NewNop(), SettlementServiceConfig{})

	_, err := service.RecordPredictionEdit(context.Background(), prediction.Prediction{ID: "p1", GameID: "G1"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSettlementService_PredictionStatus_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	predictionRepo := predictionmock.NewRepository(t)
	settlementRepo := settlementmock.NewRepository(t)
	factsRepo := touchdownmock.NewRepository(t)
	service := NewSettlementService(predictionRepo, settlementRepo, factsRepo, nil, logging.NewNop(), SettlementServiceConfig{})

	predictionRepo.On("GetByID", sameCtx(ctx), "missing").Return(prediction.Prediction{}, false, nil).Once()

	if _, err := service.PredictionStatus(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNormalizeWorkerCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested int
		fallback  int
		tasks     int
		want      int
	}{
		{name: "requested wins", requested: 3, fallback: 8, tasks: 10, want: 3},
		{name: "fallback when unset", requested: 0, fallback: 4, tasks: 10, want: 4},
		{name: "capped by tasks", requested: 16, fallback: 4, tasks: 2, want: 2},
		{name: "at least one", requested: -1, fallback: 0, tasks: 0, want: 1},
	}

	for _, tc := range tests {
		if got := normalizeWorkerCount(tc.requested, tc.fallback, tc.tasks); got != tc.want {
			t.Fatalf("%s: got=%d want=%d", tc.name, got, tc.want)
		}
	}
}
