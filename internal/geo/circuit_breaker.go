package geo

import (
	"log/slog"
	"sync"
	"time"
)

type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type CircuitBreakerConfig struct {
	FailureThreshold int           // Consecutive failures before opening
	SuccessThreshold int           // Successes in half-open before closing
	Cooldown         time.Duration // Time to wait before transitioning to half-open
	Provider         string
	Logger           *slog.Logger
	now              func() time.Time
}

// CircuitBreaker stops calling a geolocation provider that keeps failing.
type CircuitBreaker struct {
	mu              sync.Mutex
	state           CircuitState
	failureCount    int
	successCount    int
	probing         bool // a half-open trial call is outstanding
	config          CircuitBreakerConfig
	lastStateChange time.Time
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 5
	}
	if config.SuccessThreshold == 0 {
		config.SuccessThreshold = 1
	}
	if config.Cooldown == 0 {
		config.Cooldown = 30 * time.Second
	}
	if config.now == nil {
		config.now = time.Now
	}

	return &CircuitBreaker{
		state:  CircuitClosed,
		config: config,
	}
}

func (cb *CircuitBreaker) logStateTransition(from, to CircuitState) {
	if cb.config.Logger != nil {
		cb.config.Logger.Info("circuit_breaker_state_change",
			slog.String("provider", cb.config.Provider),
			slog.String("from_state", from.String()),
			slog.String("to_state", to.String()),
			slog.Int("failure_count", cb.failureCount),
		)
	}
}

func (cb *CircuitBreaker) setState(to CircuitState) {
	prev := cb.state
	cb.state = to
	cb.lastStateChange = cb.config.now()
	cb.logStateTransition(prev, to)
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// AllowRequest reports whether a call may go out. An open breaker moves to
// half-open once the cooldown has elapsed. While half-open, only one trial call is
// outstanding at a time; the caller must report its outcome with
// RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) AllowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitOpen:
		if cb.config.now().Sub(cb.lastStateChange) < cb.config.Cooldown {
			return false
		}
		cb.successCount = 0
		cb.failureCount = 0
		cb.setState(CircuitHalfOpen)
		cb.probing = true
		return true
	case CircuitHalfOpen:
		if cb.probing {
			return false
		}
		cb.probing = true
		return true
	default:
		return true
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probing = false

	switch cb.state {
	case CircuitHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.config.SuccessThreshold {
			cb.failureCount = 0
			cb.successCount = 0
			cb.setState(CircuitClosed)
		}
	case CircuitClosed:
		cb.failureCount = 0
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probing = false

	switch cb.state {
	case CircuitHalfOpen:
		cb.failureCount = 0
		cb.successCount = 0
		cb.setState(CircuitOpen)
	case CircuitClosed:
		cb.failureCount++
		if cb.failureCount >= cb.config.FailureThreshold {
			cb.setState(CircuitOpen)
		}
	}
}
