package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/fast6/internal/domain/performance"
	"github.com/riskibarqy/fast6/internal/domain/prediction"
	"github.com/riskibarqy/fast6/internal/usecase"
)

// RunSettlement settles one game when game_id is set, otherwise every game
// with concluded facts.
func (h *Handler) RunSettlement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSettlement")
	defer span.End()

	var req runSettlementRequest
	if err := decodeJSONBody(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if gameID := strings.TrimSpace(req.GameID); gameID != "" {
		result, err := h.settlementService.SettleGame(ctx, gameID, req.Force)
		if err != nil {
			h.logger.WarnContext(ctx, "settle game failed", "game_id", gameID, "force", req.Force, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, result)
		return
	}

	result, err := h.settlementService.SettleAllPending(ctx, usecase.SettleAllInput{
		MaxWorkers: req.MaxWorkers,
		Force:      req.Force,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "settle pending games failed", "force", req.Force, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) UpsertPrediction(w http.ResponseWriter, r *http.Request) {
	predictionID := strings.TrimSpace(r.PathValue("predictionID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertPrediction", predictionIDAttr(predictionID))
	defer span.End()

	if predictionID == "" {
		writeError(ctx, w, fmt.Errorf("%w: prediction id is required", usecase.ErrInvalidInput))
		return
	}

	var req upsertPredictionRequest
	if err := decodeJSONBody(w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.settlementService.RecordPredictionEdit(ctx, prediction.Prediction{
		ID:                  predictionID,
		UserID:              req.UserID,
		GameID:              req.GameID,
		Season:              req.Season,
		Team:                req.Team,
		PredictedPlayerName: req.PredictedPlayerName,
		PayoutOdds:          req.PayoutOdds,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record prediction edit failed", "prediction_id", predictionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionStatusToDTO(result))
}

func (h *Handler) ResettlePrediction(w http.ResponseWriter, r *http.Request) {
	predictionID := strings.TrimSpace(r.PathValue("predictionID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResettlePrediction", predictionIDAttr(predictionID))
	defer span.End()

	result, err := h.settlementService.ResettlePrediction(ctx, predictionID)
	if err != nil {
		h.logger.WarnContext(ctx, "resettle prediction failed", "prediction_id", predictionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionStatusToDTO(result))
}

func (h *Handler) GetPredictionStatus(w http.ResponseWriter, r *http.Request) {
	predictionID := strings.TrimSpace(r.PathValue("predictionID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPredictionStatus", predictionIDAttr(predictionID))
	defer span.End()

	result, err := h.settlementService.PredictionStatus(ctx, predictionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get prediction status failed", "prediction_id", predictionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionStatusToDTO(result))
}

// GetLeaderboard ranks users for ?season=, optionally narrowed to ?week=.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	season, err := parseIntQuery(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := parseIntQuery(r, "week", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scope := performance.Scope{Season: season, Week: week}
	snapshots, err := h.leaderboardService.Leaderboard(ctx, scope)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "season", season, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	entries := make([]leaderboardEntryDTO, 0, len(snapshots))
	for _, snapshot := range snapshots {
		entries = append(entries, leaderboardEntryToDTO(snapshot))
	}
	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{
		Season:  season,
		Week:    week,
		Entries: entries,
	})
}
