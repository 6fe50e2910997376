package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrBreakerOpen = errors.New("circuit breaker is open")

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

// BreakerConfig configures a Breaker. A zero FailureThreshold disables it.
type BreakerConfig struct {
	FailureThreshold int
	Cooldown         time.Duration
	HalfOpenCalls    int
}

// Breaker trips after FailureThreshold consecutive failures and rejects calls
// for Cooldown. It then lets HalfOpenCalls trial calls through; all of them must
// succeed to close again.
type Breaker struct {
	mu  sync.Mutex
	cfg BreakerConfig
	now func() time.Time

	state    BreakerState
	failures int
	openedAt time.Time
	trials   int
	passed   int
}

// NewBreaker returns nil when cfg disables the breaker. A nil *Breaker allows
// every call.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		return nil
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.HalfOpenCalls < 1 {
		cfg.HalfOpenCalls = 1
	}
	return &Breaker{cfg: cfg, now: time.Now, state: BreakerClosed}
}

// Allow reserves a call slot. Every nil result must be paired with Done.
func (b *Breaker) Allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen {
		if b.now().Sub(b.openedAt) < b.cfg.Cooldown {
			return ErrBreakerOpen
		}
		b.state = BreakerHalfOpen
		b.trials = 0
		b.passed = 0
	}
	if b.state == BreakerHalfOpen {
		if b.trials >= b.cfg.HalfOpenCalls {
			return ErrBreakerOpen
		}
		b.trials++
	}
	return nil
}

// Done records the outcome of a call admitted by Allow.
func (b *Breaker) Done(failed bool) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case BreakerHalfOpen:
		if failed {
			b.trip()
			return
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenCalls {
			b.state = BreakerClosed
			b.failures = 0
		}
	case BreakerOpen:
		// A call admitted before the trip finished late.
		if failed {
			b.openedAt = b.now()
		}
	}
}

func (b *Breaker) State() BreakerState {
	if b == nil {
		return BreakerClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cfg.Cooldown {
		return BreakerHalfOpen
	}
	return b.state
}

func (b *Breaker) trip() {
	b.state = BreakerOpen
	b.openedAt = b.now()
	b.failures = 0
	b.trials = 0
	b.passed = 0
}
