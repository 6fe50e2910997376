package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/fast6/internal/config"
	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/shopspring/decimal"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:               config.EnvDev,
		HTTPAddr:             ":0",
		FirstScorerPoints:    3,
		AnyTimePoints:        1,
		Stake:                decimal.NewFromInt(1),
		SettlementMaxWorkers: 2,
		FeedSyncMaxWorkers:   2,
		CORSAllowedOrigins:   []string{"*"},
		InternalJobToken:     "secret",
	}
}

func TestNewHTTPServer_MemoryStore(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	t.Cleanup(func() { _ = cleanup() })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leaderboard?season=2025", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected empty leaderboard 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNewHTTPServer_Validation(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, _, err := NewHTTPServer(cfg, nil); err == nil {
		t.Fatalf("expected error for empty http addr")
	}

	cfg = memoryConfig()
	cfg.AnyTimePoints = 5
	if _, _, err := NewHTTPServer(cfg, nil); err == nil {
		t.Fatalf("expected error for invalid scoring rules")
	}
}
