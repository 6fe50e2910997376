package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/predictions/{predictionID}/status", handler.GetPredictionStatus)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	guard := func(h http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, h)
	}

	mux.Handle("POST /v1/internal/feed/snapshots", guard(handler.IngestFeedSnapshots))
	mux.Handle("POST /v1/internal/feed/pull", guard(handler.PullFeedGames))
	mux.Handle("GET /v1/internal/feed/review-queue", guard(handler.ListReviewQueue))
	mux.Handle("POST /v1/internal/feed/games/{gameID}/resolve-review", guard(handler.ResolveGameReview))
	mux.Handle("POST /v1/internal/settlement/run", guard(handler.RunSettlement))
	mux.Handle("POST /v1/internal/settlement/predictions/{predictionID}/resettle", guard(handler.ResettlePrediction))
	// Prediction writes come from the pick service, not end users.
	mux.Handle("PUT /v1/predictions/{predictionID}", guard(handler.UpsertPrediction))
}
