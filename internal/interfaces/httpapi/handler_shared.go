package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fast6/internal/domain/performance"
	"github.com/riskibarqy/fast6/internal/domain/settlement"
	"github.com/riskibarqy/fast6/internal/domain/touchdown"
	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/riskibarqy/fast6/internal/usecase"
)

const maxRequestBodyBytes = 8 << 20

type Handler struct {
	feedSyncService    *usecase.FeedSyncService
	settlementService  *usecase.SettlementService
	leaderboardService *usecase.LeaderboardService
	logger             *logging.Logger
	validator          *validator.Validate
	now                func() time.Time
}

func NewHandler(
	feedSyncService *usecase.FeedSyncService,
	settlementService *usecase.SettlementService,
	leaderboardService *usecase.LeaderboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		feedSyncService:    feedSyncService,
		settlementService:  settlementService,
		leaderboardService: leaderboardService,
		logger:             logger,
		validator:          validator.New(),
		now:                time.Now,
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	return raw, nil
}

// decodeJSONBody decodes a strict JSON body into dst. An empty body leaves
// dst untouched when allowEmpty is set.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	raw, err := readBody(w, r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}

	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseIntQuery(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}

type pullFeedRequest struct {
	GameIDs    []string `json:"game_ids" validate:"required,min=1,max=200,dive,required"`
	MaxWorkers int      `json:"max_workers" validate:"omitempty,min=1,max=64"`
}

type runSettlementRequest struct {
	GameID     string `json:"game_id" validate:"omitempty,max=64"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,min=1,max=64"`
	Force      bool   `json:"force"`
}

type upsertPredictionRequest struct {
	UserID              string `json:"user_id" validate:"required,max=128"`
	GameID              string `json:"game_id" validate:"required,max=64"`
	Season              int    `json:"season" validate:"required,gte=1"`
	Team                string `json:"team" validate:"required,max=8"`
	PredictedPlayerName string `json:"predicted_player_name" validate:"required,max=128"`
	PayoutOdds          *int   `json:"payout_odds"`
}

type settlementRecordDTO struct {
	PredictionID            string  `json:"prediction_id"`
	UserID                  string  `json:"user_id"`
	GameID                  string  `json:"game_id"`
	Season                  int     `json:"season"`
	Week                    int     `json:"week"`
	IsFirstScorerCorrect    bool    `json:"is_first_scorer_correct"`
	IsAnyTimeScorerHit      bool    `json:"is_any_time_scorer_hit"`
	MatchedActualScorerName *string `json:"matched_actual_scorer_name"`
	FactsFingerprint        string  `json:"facts_fingerprint"`
	SettledAt               string  `json:"settled_at"`
}

type predictionStatusDTO struct {
	PredictionID string               `json:"prediction_id"`
	GameID       string               `json:"game_id"`
	Status       settlement.Status    `json:"status"`
	ReviewReason string               `json:"review_reason,omitempty"`
	Record       *settlementRecordDTO `json:"record,omitempty"`
}

type reviewFlagDTO struct {
	GameID       string `json:"game_id"`
	Reason       string `json:"reason"`
	Detail       string `json:"detail,omitempty"`
	PlaySequence *int   `json:"play_sequence,omitempty"`
	FlaggedAt    string `json:"flagged_at"`
}

type leaderboardEntryDTO struct {
	Rank        int      `json:"rank"`
	UserID      string   `json:"user_id"`
	Points      int      `json:"points"`
	Picks       int      `json:"picks"`
	Correct     int      `json:"correct"`
	Incorrect   int      `json:"incorrect"`
	AnyTimeHits int      `json:"any_time_hits"`
	Staked      string   `json:"staked"`
	Return      string   `json:"return"`
	ROI         *string  `json:"roi"`
	WinRate     *float64 `json:"win_rate"`
}

type leaderboardDTO struct {
	Season  int                   `json:"season"`
	Week    int                   `json:"week,omitempty"`
	Entries []leaderboardEntryDTO `json:"entries"`
}

func predictionStatusToDTO(result usecase.PredictionStatusResult) predictionStatusDTO {
	out := predictionStatusDTO{
		PredictionID: result.PredictionID,
		GameID:       result.GameID,
		Status:       result.Status,
		ReviewReason: result.ReviewReason,
	}
	if result.Record != nil {
		record := settlementRecordToDTO(*result.Record)
		out.Record = &record
	}
	return out
}

func settlementRecordToDTO(record settlement.Record) settlementRecordDTO {
	return settlementRecordDTO{
		PredictionID:            record.PredictionID,
		UserID:                  record.UserID,
		GameID:                  record.GameID,
		Season:                  record.Season,
		Week:                    record.Week,
		IsFirstScorerCorrect:    record.IsFirstScorerCorrect,
		IsAnyTimeScorerHit:      record.IsAnyTimeScorerHit,
		MatchedActualScorerName: record.MatchedActualScorerName,
		FactsFingerprint:        record.FactsFingerprint,
		SettledAt:               record.SettledAt.UTC().Format(time.RFC3339),
	}
}

func reviewFlagToDTO(flag touchdown.ReviewFlag) reviewFlagDTO {
	return reviewFlagDTO{
		GameID:       flag.GameID,
		Reason:       flag.Reason,
		Detail:       flag.Detail,
		PlaySequence: flag.PlaySequence,
		FlaggedAt:    flag.FlaggedAt.UTC().Format(time.RFC3339),
	}
}

func leaderboardEntryToDTO(snapshot performance.Snapshot) leaderboardEntryDTO {
	out := leaderboardEntryDTO{
		Rank:        snapshot.Rank,
		UserID:      snapshot.UserID,
		Points:      snapshot.Points,
		Picks:       snapshot.Picks,
		Correct:     snapshot.Correct,
		Incorrect:   snapshot.Incorrect,
		AnyTimeHits: snapshot.AnyTimeHits,
		Staked:      snapshot.Staked.StringFixed(2),
		Return:      snapshot.Return.StringFixed(2),
		WinRate:     snapshot.WinRate,
	}
	if snapshot.ROI != nil {
		roi := snapshot.ROI.StringFixed(4)
		out.ROI = &roi
	}
	return out
}
