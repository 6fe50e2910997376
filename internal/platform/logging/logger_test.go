package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestLogger_WritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).With("component", "settlement")

	logger.Info("game settled", "game_id", "G1", "records", 3, "err", errors.New("boom"), "dangling")
	logger.Debug("hidden")

	out := buf.String()
	for _, want := range []string{`"msg":"game settled"`, `"component":"settlement"`, `"game_id":"G1"`, `"records":3`, `"err":"boom"`, `"dangling":null`, `"level":"INFO"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log output: %s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should be filtered at info level")
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelDebug)

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.WarnContext(ctx, "game flagged", "game_id", "G1")
	out := buf.String()
	if !strings.Contains(out, `"trace_id":"0102030405060708090a0b0c0d0e0f10"`) || !strings.Contains(out, `"span_id":"0102030405060708"`) {
		t.Fatalf("expected trace fields in log output: %s", out)
	}
}

func TestDefault_NilSafe(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	logger.With("k", "v").Info("no panic")

	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("expected default logger")
	}
}

func TestSetMirror_ReceivesEnabledEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("filtered")
	logger.Warn("game flagged", "game_id", "G1")

	if len(got) != 1 || got[0] != "warn:game flagged" {
		t.Fatalf("unexpected mirrored entries: %v", got)
	}

	SetMirror(nil)
	logger.Error("after removal")
	if len(got) != 1 {
		t.Fatalf("mirror should be removed, got %v", got)
	}
}
