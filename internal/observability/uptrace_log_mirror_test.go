package observability

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/shopspring/decimal"
	otellog "go.opentelemetry.io/otel/log"
)

func TestIsQuietRequestLog(t *testing.T) {
	if !isQuietRequestLog("http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if isQuietRequestLog("http request", []any{"path", "/v1/leaderboard"}) {
		t.Fatalf("did not expect leaderboard request log to be skipped")
	}
	if isQuietRequestLog("game derived", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non-request log to be skipped")
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"game_id", "2025_01_KC_BAL", "scorers", 3, "error", errors.New("boom"), "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "game_id" || attrs[0].Value.AsString() != "2025_01_KC_BAL" {
		t.Fatalf("unexpected game_id attribute")
	}
	if attrs[1].Key != "scorers" || attrs[1].Value.AsInt64() != 3 {
		t.Fatalf("unexpected scorers attribute")
	}
	if attrs[2].Value.AsString() != "boom" {
		t.Fatalf("unexpected error attribute")
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute")
	}
}

func TestToOTelLogValue(t *testing.T) {
	if v := toOTelLogValue(decimal.RequireFromString("4.50"), 0); v.AsString() != "4.5" {
		t.Fatalf("expected decimal to log as string, got %v", v)
	}
	if v := toOTelLogValue(int32(7), 0); v.AsInt64() != 7 {
		t.Fatalf("expected int32 as int64, got %v", v)
	}

	v := toOTelLogValue(map[string]any{"won": 2, "lost": []string{"p3"}}, 0)
	if v.Kind() != otellog.KindMap || len(v.AsMap()) != 2 {
		t.Fatalf("expected map value with 2 items, got %v", v)
	}
}

func TestToOTelSeverity(t *testing.T) {
	if toOTelSeverity(logging.LevelWarn) != otellog.SeverityWarn {
		t.Fatalf("unexpected warn severity")
	}
	if toOTelSeverity(logging.LevelError) != otellog.SeverityError {
		t.Fatalf("unexpected error severity")
	}
}
