package playbyplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fast6/internal/domain/playfeed"
	"github.com/riskibarqy/fast6/internal/platform/logging"
	"github.com/riskibarqy/fast6/internal/platform/resilience"
	"github.com/riskibarqy/fast6/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 8 << 20

var errTransient = crerr.New("play-by-play transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	Breaker    resilience.BreakerConfig
	Logger     *logging.Logger
}

// Client fetches per-game play-by-play snapshots from the feed provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxRetries int
	logger     *logging.Logger
	now        func() time.Time
	breaker    *resilience.Breaker
	flight     resilience.Group[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:      strings.TrimSpace(cfg.Token),
		maxRetries: maxRetries,
		logger:     logger,
		now:        time.Now,
		breaker:    resilience.NewBreaker(cfg.Breaker),
	}
}

// FetchGameSnapshot downloads and decodes the current feed view of one game.
func (c *Client) FetchGameSnapshot(ctx context.Context, gameID string) (playfeed.GameSnapshot, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return playfeed.GameSnapshot{}, fmt.Errorf("%w: game id is required", usecase.ErrInvalidInput)
	}
	if c.baseURL == "" {
		return playfeed.GameSnapshot{}, fmt.Errorf("%w: play-by-play feed is not configured", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + "/games/" + url.PathEscape(gameID) + "/plays"
	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "play-by-play circuit breaker rejected request", "game_id", gameID, "state", c.breaker.State())
			return nil, fmt.Errorf("%w: %v", errTransient, err)
		}
		raw, err := c.executeRequest(ctx, fullURL)
		c.breaker.Done(errors.Is(err, errTransient))
		return raw, err
	})
	if err != nil {
		if errors.Is(err, errTransient) {
			return playfeed.GameSnapshot{}, fmt.Errorf("%w: fetch game=%s: %v", usecase.ErrDependencyUnavailable, gameID, err)
		}
		return playfeed.GameSnapshot{}, fmt.Errorf("fetch game=%s: %w", gameID, err)
	}

	snapshots, err := Decode(raw, c.now())
	if err != nil {
		return playfeed.GameSnapshot{}, fmt.Errorf("decode game=%s: %w", gameID, err)
	}
	for _, snapshot := range snapshots {
		if snapshot.GameID == gameID {
			return snapshot, nil
		}
	}
	return playfeed.GameSnapshot{}, fmt.Errorf("%w: feed response does not contain game=%s", ErrInvalidPayload, gameID)
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, redact(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * 500 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "play-by-play request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redact(value, token string) string {
	if token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
