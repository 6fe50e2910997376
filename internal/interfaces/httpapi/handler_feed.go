package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/fast6/external/playbyplay"
	"github.com/riskibarqy/fast6/internal/usecase"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// IngestFeedSnapshots accepts a raw play-by-play payload, one game or a
// {"games": [...]} batch, and syncs every game in it.
func (h *Handler) IngestFeedSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestFeedSnapshots")
	defer span.End()

	raw, err := readBody(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	snapshots, err := playbyplay.Decode(raw, h.now().UTC())
	if err != nil {
		h.logger.WarnContext(ctx, "decode feed payload failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	result, err := h.feedSyncService.Sync(ctx, usecase.SyncInput{Snapshots: snapshots})
	if err != nil {
		h.logger.WarnContext(ctx, "sync feed snapshots failed", "games", len(snapshots), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) PullFeedGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PullFeedGames")
	defer span.End()

	var req pullFeedRequest
	if err := decodeJSONBody(w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.feedSyncService.Pull(ctx, usecase.PullInput{
		GameIDs:    req.GameIDs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "pull feed games failed", "games", len(req.GameIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListReviewQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListReviewQueue")
	defer span.End()

	flags, err := h.feedSyncService.ReviewQueue(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list review queue failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]reviewFlagDTO, 0, len(flags))
	for _, flag := range flags {
		items = append(items, reviewFlagToDTO(flag))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ResolveGameReview(w http.ResponseWriter, r *http.Request) {
	gameID := strings.TrimSpace(r.PathValue("gameID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveGameReview", gameIDAttr(gameID))
	defer span.End()

	if gameID == "" {
		writeError(ctx, w, fmt.Errorf("%w: game id is required", usecase.ErrInvalidInput))
		return
	}

	result, err := h.feedSyncService.ResolveReview(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve game review failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
