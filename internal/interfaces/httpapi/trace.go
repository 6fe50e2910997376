package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("fast6/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a child span for handler entry points only. Helpers and
// middleware share the request span created by otelhttp.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	if !strings.HasPrefix(name, "httpapi.Handler.") {
		return false
	}
	// Unexported handler helpers such as validateRequest stay on the parent span.
	method := strings.TrimPrefix(name, "httpapi.Handler.")
	return method != "" && method[0] >= 'A' && method[0] <= 'Z'
}

func gameIDAttr(gameID string) attribute.KeyValue {
	return attribute.String("fast6.game_id", gameID)
}

func predictionIDAttr(predictionID string) attribute.KeyValue {
	return attribute.String("fast6.prediction_id", predictionID)
}
