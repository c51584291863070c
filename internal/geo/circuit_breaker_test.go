package geo

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestCircuitBreakerLifecycle(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		Cooldown:         10 * time.Second,
		Provider:         "test",
		now:              clock.now,
	})

	if !cb.AllowRequest() || cb.State() != CircuitClosed {
		t.Fatal("new breaker should be closed")
	}

	cb.RecordFailure()
	if cb.State() != CircuitClosed {
		t.Fatal("one failure should not open the breaker")
	}
	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Fatalf("state = %s, want open", cb.State())
	}
	if cb.AllowRequest() {
		t.Fatal("open breaker should reject requests during cooldown")
	}

	clock.t = clock.t.Add(11 * time.Second)
	if !cb.AllowRequest() {
		t.Fatal("breaker should allow a trial call after cooldown")
	}
	if cb.State() != CircuitHalfOpen {
		t.Fatalf("state = %s, want half-open", cb.State())
	}

	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Fatal("failed trial call should reopen the breaker")
	}

	clock.t = clock.t.Add(11 * time.Second)
	cb.AllowRequest()
	cb.RecordSuccess()
	if cb.State() != CircuitClosed {
		t.Fatalf("state = %s, want closed after successful trial call", cb.State())
	}
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2})
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	if cb.State() != CircuitClosed {
		t.Fatal("non-consecutive failures should not open the breaker")
	}
}

func TestCircuitBreakerHalfOpenAllowsOneTrialCall(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 2,
		Cooldown:         10 * time.Second,
		now:              clock.now,
	})
	cb.RecordFailure()
	clock.t = clock.t.Add(11 * time.Second)

	var allowed int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if cb.AllowRequest() {
				atomic.AddInt32(&allowed, 1)
			}
		}()
	}
	wg.Wait()
	if allowed != 1 {
		t.Fatalf("%d concurrent trial calls allowed, want 1", allowed)
	}

	cb.RecordSuccess()
	if cb.State() != CircuitHalfOpen {
		t.Fatalf("state = %s, want half-open until the second success", cb.State())
	}
	if !cb.AllowRequest() {
		t.Fatal("next trial call should go out once the previous one reported")
	}
	if cb.AllowRequest() {
		t.Fatal("only one trial call may be outstanding")
	}
	cb.RecordSuccess()
	if cb.State() != CircuitClosed {
		t.Fatalf("state = %s, want closed", cb.State())
	}
	if !cb.AllowRequest() || !cb.AllowRequest() {
		t.Fatal("closed breaker should allow every request")
	}
}
