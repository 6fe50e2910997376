package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fast6/internal/domain/prediction"
	"github.com/riskibarqy/fast6/internal/domain/settlement"
	"github.com/riskibarqy/fast6/internal/domain/touchdown"
	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/riskibarqy/fast6/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

const (
	settleStatusSettled     = "settled"
	settleStatusPending     = "pending"
	settleStatusNeedsReview = "needs_review"
	settleStatusFailed      = "failed"

	defaultSettlementWorkers = 4
)

type SettlementService struct {
	predictionRepo prediction.Repository
	settlementRepo settlement.Repository
	factsRepo      touchdown.Repository
	gameLocks      *resilience.KeyedMutex
	logger         *logging.Logger
	now            func() time.Time
	maxWorkers     int
}

type SettlementServiceConfig struct {
	MaxWorkers int
}

func NewSettlementService(
	predictionRepo prediction.Repository,
	settlementRepo settlement.Repository,
	factsRepo touchdown.Repository,
	gameLocks *resilience.KeyedMutex,
	logger *logging.Logger,
	cfg SettlementServiceConfig,
) *SettlementService {
	if gameLocks == nil {
		gameLocks = &resilience.KeyedMutex{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = defaultSettlementWorkers
	}
	return &SettlementService{
		predictionRepo: predictionRepo,
		settlementRepo: settlementRepo,
		factsRepo:      factsRepo,
		gameLocks:      gameLocks,
		logger:         logger,
		now:            time.Now,
		maxWorkers:     maxWorkers,
	}
}

type PredictionError struct {
	PredictionID string `json:"prediction_id"`
	Message      string `json:"message"`
}

type SettleGameResult struct {
	GameID      string            `json:"game_id"`
	Status      string            `json:"status"`
	Predictions int               `json:"predictions"`
	Settled     int               `json:"settled"`
	Resettled   int               `json:"resettled"`
	Unchanged   int               `json:"unchanged"`
	Invalid     []PredictionError `json:"invalid,omitempty"`
	Message     string            `json:"message,omitempty"`
}

type SettleAllInput struct {
	MaxWorkers int
	// Force rewrites records even when the outcome is unchanged.
	Force bool
}

type SettleAllResult struct {
	GameCount    int                `json:"game_count"`
	WorkerCount  int                `json:"worker_count"`
	SuccessCount int                `json:"success_count"`
	SkippedCount int                `json:"skipped_count"`
	FailedCount  int                `json:"failed_count"`
	Games        []SettleGameResult `json:"games"`
}

type PredictionStatusResult struct {
	PredictionID string             `json:"prediction_id"`
	GameID       string             `json:"game_id"`
	Status       settlement.Status  `json:"status"`
	Record       *settlement.Record `json:"record,omitempty"`
	ReviewReason string             `json:"review_reason,omitempty"`
}

// SettleGame settles every prediction of one game against its stored facts.
// A game without concluded facts reports pending; a flagged game fails with
// ErrNeedsReview.
func (s *SettlementService) SettleGame(ctx context.Context, gameID string, force bool) (SettleGameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleGame", attribute.String("game_id", gameID))
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return SettleGameResult{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	unlock := s.gameLocks.Lock(gameID)
	defer unlock()
	return s.settleGameLocked(ctx, gameID, force)
}

// settleGameLocked requires the caller to hold the game lock.
func (s *SettlementService) settleGameLocked(ctx context.Context, gameID string, force bool) (SettleGameResult, error) {
	result := SettleGameResult{GameID: gameID}

	flag, flagged, err := s.factsRepo.GetReviewFlag(ctx, gameID)
	if err != nil {
		return result, fmt.Errorf("get review flag game=%s: %w", gameID, err)
	}
	if flagged {
		result.Status = settleStatusNeedsReview
		result.Message = flag.Reason
		return result, fmt.Errorf("%w: game=%s reason=%s", ErrNeedsReview, gameID, flag.Reason)
	}

	facts, ok, err := s.factsRepo.GetFacts(ctx, gameID)
	if err != nil {
		return result, fmt.Errorf("get touchdown facts game=%s: %w", gameID, err)
	}
	if !ok || !facts.Final {
		result.Status = settleStatusPending
		return result, nil
	}

	items, err := s.predictionRepo.ListByGame(ctx, gameID)
	if err != nil {
		return result, fmt.Errorf("list predictions game=%s: %w", gameID, err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	result.Predictions = len(items)

	for _, item := range items {
		outcome, err := s.settleOneLocked(ctx, item, &facts, force)
		if err != nil {
			if errors.Is(err, prediction.ErrInvalidPrediction) {
				s.logger.WarnContext(ctx, "prediction rejected by settlement",
					"game_id", gameID,
					"prediction_id", item.ID,
					"error", err,
				)
				result.Invalid = append(result.Invalid, PredictionError{PredictionID: item.ID, Message: err.Error()})
				continue
			}
			return result, err
		}
		switch outcome {
		case outcomeSettled:
			result.Settled++
		case outcomeResettled:
			result.Resettled++
		case outcomeUnchanged:
			result.Unchanged++
		}
	}

	result.Status = settleStatusSettled
	s.logger.InfoContext(ctx, "game settled",
		"game_id", gameID,
		"facts_fingerprint", facts.Fingerprint,
		"predictions", result.Predictions,
		"settled", result.Settled,
		"resettled", result.Resettled,
		"unchanged", result.Unchanged,
		"invalid", len(result.Invalid),
	)
	return result, nil
}

type settleOutcome int

const (
	outcomePending settleOutcome = iota
	outcomeSettled
	outcomeResettled
	outcomeUnchanged
)

func (s *SettlementService) settleOneLocked(
	ctx context.Context,
	item prediction.Prediction,
	facts *touchdown.Facts,
	force bool,
) (settleOutcome, error) {
	record, ok, err := settlement.Settle(item, facts)
	if err != nil {
		return outcomePending, err
	}
	if !ok {
		if err := s.settlementRepo.DeleteByPrediction(ctx, item.ID); err != nil {
			return outcomePending, fmt.Errorf("clear settlement record prediction=%s: %w", item.ID, err)
		}
		return outcomePending, nil
	}

	existing, exists, err := s.settlementRepo.GetByPrediction(ctx, item.ID)
	if err != nil {
		return outcomePending, fmt.Errorf("get settlement record prediction=%s: %w", item.ID, err)
	}
	if exists && existing.Equal(record) && !force {
		return outcomeUnchanged, nil
	}
	if err := s.settlementRepo.Replace(ctx, record); err != nil {
		return outcomePending, fmt.Errorf("replace settlement record prediction=%s: %w", item.ID, err)
	}
	if !record.IsAnyTimeScorerHit {
		s.logger.DebugContext(ctx, "prediction missed",
			"prediction_id", item.ID,
			"game_id", item.GameID,
			"reason", settlement.Explain(item, *facts),
		)
	}
	if exists {
		return outcomeResettled, nil
	}
	return outcomeSettled, nil
}

// SettleAllPending settles every game with concluded facts, one worker task
// per game.
func (s *SettlementService) SettleAllPending(ctx context.Context, input SettleAllInput) (SettleAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleAllPending")
	defer span.End()

	gameIDs, err := s.factsRepo.ListFinalGameIDs(ctx)
	if err != nil {
		return SettleAllResult{}, fmt.Errorf("list final games: %w", err)
	}

	workerCount := normalizeWorkerCount(input.MaxWorkers, s.maxWorkers, len(gameIDs))
	result := SettleAllResult{
		GameCount:   len(gameIDs),
		WorkerCount: workerCount,
		Games:       make([]SettleGameResult, 0, len(gameIDs)),
	}
	if len(gameIDs) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SettleAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan SettleGameResult, len(gameIDs))
	var successCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, gameID := range gameIDs {
		gameID := gameID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if ctx.Err() != nil {
				failedCount.Add(1)
				results <- SettleGameResult{GameID: gameID, Status: settleStatusFailed, Message: ctx.Err().Error()}
				return
			}

			row, err := s.SettleGame(ctx, gameID, input.Force)
			switch {
			case errors.Is(err, ErrNeedsReview):
				skippedCount.Add(1)
			case err != nil:
				failedCount.Add(1)
				row.GameID = gameID
				row.Status = settleStatusFailed
				row.Message = err.Error()
				s.logger.ErrorContext(ctx, "settle game failed", "game_id", gameID, "error", err)
			case row.Status == settleStatusPending:
				skippedCount.Add(1)
			default:
				successCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return SettleAllResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Games = append(result.Games, row)
	}
	sort.SliceStable(result.Games, func(i, j int) bool {
		return result.Games[i].GameID < result.Games[j].GameID
	})

	result.SuccessCount = int(successCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

// RecordPredictionEdit stores a new or edited prediction and brings its
// settlement record in line with the current facts of its game.
func (s *SettlementService) RecordPredictionEdit(ctx context.Context, item prediction.Prediction) (PredictionStatusResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.RecordPredictionEdit", attribute.String("prediction_id", item.ID))
	defer span.End()

	item = item.Normalize()
	if err := item.Validate(); err != nil {
		return PredictionStatusResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	previous, hadPrevious, err := s.predictionRepo.GetByID(ctx, item.ID)
	if err != nil {
		return PredictionStatusResult{}, fmt.Errorf("get prediction id=%s: %w", item.ID, err)
	}
	gameIDs := []string{item.GameID}
	if hadPrevious && previous.GameID != item.GameID {
		gameIDs = append(gameIDs, previous.GameID)
	}
	unlock := s.lockGames(gameIDs...)
	defer unlock()

	item.UpdatedAt = s.now().UTC()
	if err := s.predictionRepo.Upsert(ctx, item); err != nil {
		return PredictionStatusResult{}, fmt.Errorf("upsert prediction id=%s: %w", item.ID, err)
	}

	return s.resettleLocked(ctx, item, true)
}

// ResettlePrediction forces re-settlement of one stored prediction.
func (s *SettlementService) ResettlePrediction(ctx context.Context, predictionID string) (PredictionStatusResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.ResettlePrediction", attribute.String("prediction_id", predictionID))
	defer span.End()

	item, err := s.getPrediction(ctx, predictionID)
	if err != nil {
		return PredictionStatusResult{}, err
	}

	unlock := s.gameLocks.Lock(item.GameID)
	defer unlock()
	return s.resettleLocked(ctx, item, false)
}

// resettleLocked regrades one prediction. edited drops the stored record when
// the game is flagged, since it was graded against the old pick.
func (s *SettlementService) resettleLocked(ctx context.Context, item prediction.Prediction, edited bool) (PredictionStatusResult, error) {
	flag, flagged, err := s.factsRepo.GetReviewFlag(ctx, item.GameID)
	if err != nil {
		return PredictionStatusResult{}, fmt.Errorf("get review flag game=%s: %w", item.GameID, err)
	}
	if flagged {
		if edited {
			if err := s.settlementRepo.DeleteByPrediction(ctx, item.ID); err != nil {
				return PredictionStatusResult{}, fmt.Errorf("clear settlement record prediction=%s: %w", item.ID, err)
			}
		}
		return s.statusLocked(ctx, item, flag, true)
	}

	facts, ok, err := s.factsRepo.GetFacts(ctx, item.GameID)
	if err != nil {
		return PredictionStatusResult{}, fmt.Errorf("get touchdown facts game=%s: %w", item.GameID, err)
	}
	var factsPtr *touchdown.Facts
	if ok {
		factsPtr = &facts
	}
	if _, err := s.settleOneLocked(ctx, item, factsPtr, true); err != nil {
		if errors.Is(err, prediction.ErrInvalidPrediction) {
			return PredictionStatusResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return PredictionStatusResult{}, err
	}
	return s.statusLocked(ctx, item, touchdown.ReviewFlag{}, false)
}

// PredictionStatus reports whether a prediction is pending, needs review,
// won, hit any-time only, or lost.
func (s *SettlementService) PredictionStatus(ctx context.Context, predictionID string) (PredictionStatusResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.PredictionStatus", attribute.String("prediction_id", predictionID))
	defer span.End()

	item, err := s.getPrediction(ctx, predictionID)
	if err != nil {
		return PredictionStatusResult{}, err
	}
	flag, flagged, err := s.factsRepo.GetReviewFlag(ctx, item.GameID)
	if err != nil {
		return PredictionStatusResult{}, fmt.Errorf("get review flag game=%s: %w", item.GameID, err)
	}
	return s.statusLocked(ctx, item, flag, flagged)
}

func (s *SettlementService) statusLocked(
	ctx context.Context,
	item prediction.Prediction,
	flag touchdown.ReviewFlag,
	flagged bool,
) (PredictionStatusResult, error) {
	record, ok, err := s.settlementRepo.GetByPrediction(ctx, item.ID)
	if err != nil {
		return PredictionStatusResult{}, fmt.Errorf("get settlement record prediction=%s: %w", item.ID, err)
	}

	out := PredictionStatusResult{
		PredictionID: item.ID,
		GameID:       item.GameID,
	}
	if ok {
		out.Record = &record
	}
	if flagged {
		out.ReviewReason = flag.Reason
	}
	out.Status = settlement.StatusOf(out.Record, flagged)
	return out, nil
}

func (s *SettlementService) getPrediction(ctx context.Context, predictionID string) (prediction.Prediction, error) {
	predictionID = strings.TrimSpace(predictionID)
	if predictionID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction id is required", ErrInvalidInput)
	}
	item, ok, err := s.predictionRepo.GetByID(ctx, predictionID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get prediction id=%s: %w", predictionID, err)
	}
	if !ok {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction=%s", ErrNotFound, predictionID)
	}
	return item, nil
}

// lockGames acquires the locks of several games in a fixed order.
func (s *SettlementService) lockGames(gameIDs ...string) func() {
	unique := make([]string, 0, len(gameIDs))
	seen := make(map[string]struct{}, len(gameIDs))
	for _, gameID := range gameIDs {
		if _, ok := seen[gameID]; ok {
			continue
		}
		seen[gameID] = struct{}{}
		unique = append(unique, gameID)
	}
	sort.Strings(unique)

	unlocks := make([]func(), 0, len(unique))
	for _, gameID := range unique {
		unlocks = append(unlocks, s.gameLocks.Lock(gameID))
	}
	return func() {
		for idx := len(unlocks) - 1; idx >= 0; idx-- {
			unlocks[idx]()
		}
	}
}

func normalizeWorkerCount(requested, fallback, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = fallback
	}
	if workers <= 0 {
		workers = 1
	}
	if tasks > 0 && workers > tasks {
		workers = tasks
	}
	return workers
}
