package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold, trials int) (*Breaker, *time.Time) {
	clock := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	b := NewBreaker(BreakerConfig{FailureThreshold: threshold, Cooldown: 30 * time.Second, HalfOpenCalls: trials})
	b.now = func() time.Time { return clock }
	return b, &clock
}

func TestBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(2, 1)

	for i := 0; i < 2; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("call %d rejected while closed: %v", i, err)
		}
		b.Done(true)
	}
	if b.State() != BreakerOpen {
		t.Fatalf("expected open breaker, got %s", b.State())
	}
	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("expected ErrBreakerOpen, got %v", err)
	}
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(2, 1)

	_ = b.Allow()
	b.Done(true)
	_ = b.Allow()
	b.Done(false)
	_ = b.Allow()
	b.Done(true)

	if b.State() != BreakerClosed {
		t.Fatalf("expected closed breaker, got %s", b.State())
	}
}

func TestBreaker_HalfOpenCalls(t *testing.T) {
	b, clock := newTestBreaker(1, 2)

	_ = b.Allow()
	b.Done(true)
	*clock = clock.Add(31 * time.Second)

	if b.State() != BreakerHalfOpen {
		t.Fatalf("expected half-open after cooldown, got %s", b.State())
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("first half-open call rejected: %v", err)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("second half-open call rejected: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("expected third half-open call to be rejected, got %v", err)
	}
	b.Done(false)
	b.Done(false)
	if b.State() != BreakerClosed {
		t.Fatalf("expected closed after successful half-open calls, got %s", b.State())
	}
}

func TestBreaker_FailedHalfOpenCallReopens(t *testing.T) {
	b, clock := newTestBreaker(1, 1)

	_ = b.Allow()
	b.Done(true)
	*clock = clock.Add(31 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("half-open call rejected: %v", err)
	}
	b.Done(true)
	if b.State() != BreakerOpen {
		t.Fatalf("expected breaker to reopen, got %s", b.State())
	}
}

func TestBreaker_DisabledAllowsEverything(t *testing.T) {
	b := NewBreaker(BreakerConfig{})
	if b != nil {
		t.Fatalf("expected nil breaker for zero threshold")
	}
	for i := 0; i < 10; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("disabled breaker rejected call: %v", err)
		}
		b.Done(true)
	}
	if b.State() != BreakerClosed {
		t.Fatalf("expected disabled breaker to report closed")
	}
}
