package ratelimit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestTokenBucketRefills(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tb := NewTokenBucket(2, 1, start)

	for i := 0; i < 2; i++ {
		if ok, _ := tb.Take(start); !ok {
			t.Fatalf("take %d should succeed within burst", i)
		}
	}
	ok, wait := tb.Take(start)
	if ok {
		t.Fatal("bucket should be empty")
	}
	if wait != time.Second {
		t.Fatalf("wait = %v, want 1s", wait)
	}
	if ok, _ := tb.Take(start.Add(1500 * time.Millisecond)); !ok {
		t.Fatal("token should have refilled")
	}
	if ok, _ := tb.Take(start.Add(1500 * time.Millisecond)); ok {
		t.Fatal("only one token should have refilled")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := New(Config{RequestsPerSecond: 1, BurstSize: 1})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if ok, _ := l.Allow("1.1.1.1"); !ok {
		t.Fatal("first request should pass")
	}
	if ok, _ := l.Allow("1.1.1.1"); ok {
		t.Fatal("second request from the same key should be limited")
	}
	if ok, _ := l.Allow("2.2.2.2"); !ok {
		t.Fatal("another key has its own bucket")
	}

	if removed := l.Sweep(now.Add(11 * time.Minute)); removed != 2 {
		t.Fatalf("Sweep removed %d, want 2", removed)
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := New(Config{RequestsPerSecond: 0.5, BurstSize: 1})
	r := gin.New()
	r.GET("/geo/detect", Middleware(l, nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/geo/detect", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		r.ServeHTTP(w, req)
		return w
	}
	if w := do(); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}
	w := do()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("429 should carry Retry-After")
	}
}

func TestMiddlewareForwardedHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(trusted []string) *gin.Engine {
		r := gin.New()
		if err := r.SetTrustedProxies(trusted); err != nil {
			t.Fatal(err)
		}
		l := New(Config{RequestsPerSecond: 0.01, BurstSize: 1})
		r.GET("/geo/detect", Middleware(l, nil), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}
	do := func(r *gin.Engine, remote, forwarded string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/geo/detect", nil)
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", forwarded)
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("untrusted peer cannot rotate X-Forwarded-For", func(t *testing.T) {
		r := newRouter(nil)
		allowed := 0
		for i := 1; i <= 20; i++ {
			if do(r, "203.0.113.7:4000", fmt.Sprintf("198.51.100.%d", i)) == http.StatusOK {
				allowed++
			}
		}
		if allowed != 1 {
			t.Fatalf("%d of 20 requests allowed, want 1", allowed)
		}
	})

	t.Run("trusted proxy forwards distinct clients", func(t *testing.T) {
		r := newRouter([]string{"10.0.0.0/8"})
		for i := 1; i <= 3; i++ {
			if code := do(r, "10.0.0.2:4000", fmt.Sprintf("198.51.100.%d", i)); code != http.StatusOK {
				t.Fatalf("client %d status = %d, want 200", i, code)
			}
		}
		if code := do(r, "10.0.0.2:4000", "198.51.100.1"); code != http.StatusTooManyRequests {
			t.Fatalf("repeat client status = %d, want 429", code)
		}
	})
}
