package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantHeaders bool
	}{
		{
			name:        "configured origin is echoed",
			allowed:     []string{"https://picks.fast6.example.com"},
			method:      http.MethodGet,
			origin:      "https://picks.fast6.example.com",
			wantStatus:  http.StatusOK,
			wantOrigin:  "https://picks.fast6.example.com",
			wantHeaders: true,
		},
		{
			name:        "wildcard preflight",
			allowed:     []string{"*"},
			method:      http.MethodOptions,
			origin:      "https://picks.fast6.example.com",
			wantStatus:  http.StatusNoContent,
			wantOrigin:  "*",
			wantHeaders: true,
		},
		{
			name:       "unconfigured origin gets no headers",
			allowed:    []string{"https://allowed.example.com"},
			method:     http.MethodGet,
			origin:     "https://not-allowed.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no origin passes through",
			allowed:    []string{"*"},
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := CORS(tt.allowed, next)

			req := httptest.NewRequest(tt.method, "/v1/leaderboard", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
			}
			allowHeaders := rec.Header().Get("Access-Control-Allow-Headers")
			if tt.wantHeaders != strings.Contains(allowHeaders, internalJobTokenHeader) {
				t.Fatalf("unexpected Access-Control-Allow-Headers: %q", allowHeaders)
			}
		})
	}
}
