package playbyplay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fast6/internal/platform/resilience"
	"github.com/riskibarqy/fast6/internal/usecase"
)

func TestClient_FetchGameSnapshot(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/games/G1/plays" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if calls.Load() == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"game_id": "G1", "season": 2025, "week": 1, "game_status": "FINAL",
			"plays": [{"play_id": 7, "posteam": "KC", "td_player_name": "T.Kelce", "touchdown": 1}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Token:      "secret",
		MaxRetries: 1,
	})

	snapshot, err := client.FetchGameSnapshot(context.Background(), "G1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one retry after 502, got calls=%d", calls.Load())
	}
	if snapshot.GameID != "G1" || len(snapshot.Plays) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
}

func TestClient_NonRetryableStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{HTTPClient: server.Client(), BaseURL: server.URL, MaxRetries: 3})
	_, err := client.FetchGameSnapshot(context.Background(), "G404")
	if err == nil {
		t.Fatalf("expected error for 404")
	}
	if errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected 404 to not be reported as dependency unavailable, got=%v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected no retries for 404, got calls=%d", calls.Load())
	}
}

func TestClient_BreakerStopsCallingFailingProvider(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Breaker:    resilience.BreakerConfig{FailureThreshold: 2, Cooldown: time.Minute},
	})

	for i := 0; i < 4; i++ {
		_, err := client.FetchGameSnapshot(context.Background(), "G503")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("call %d: expected dependency unavailable, got %v", i, err)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected breaker to stop after 2 provider calls, got calls=%d", calls.Load())
	}
}

func TestClient_RequiresBaseURL(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	_, err := client.FetchGameSnapshot(context.Background(), "G1")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got=%v", err)
	}
}
