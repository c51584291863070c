package geo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func countingServer(t *testing.T, hits *int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func ipapiOK(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"ip":"81.2.69.142","country_name":"United Kingdom","country_code":"GB","city":"London","region":"England"}`)
}

func ipapiComOK(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status":"success","country":"Nigeria","countryCode":"NG","regionName":"Lagos","city":"Lagos"}`)
}

func newTestResolver(primaryURL, secondaryURL string, cfg ResolverConfig) *Resolver {
	logger := quietLogger()
	primary := NewIPAPIProvider(ProviderConfig{BaseURL: primaryURL, Timeout: time.Second}, logger)
	secondary := NewIPAPIComProvider(ProviderConfig{BaseURL: secondaryURL, Timeout: time.Second}, logger)
	return NewResolver(cfg, logger, primary, secondary)
}

func TestResolveUsesPrimaryWhenHealthy(t *testing.T) {
	var primaryHits, secondaryHits int32
	primary := countingServer(t, &primaryHits, ipapiOK)
	secondary := countingServer(t, &secondaryHits, ipapiComOK)

	r := newTestResolver(primary.URL, secondary.URL, ResolverConfig{})
	loc := r.ResolveCountry(context.Background(), "81.2.69.142")

	if loc.CountryCode != "GB" || loc.Country != "United Kingdom" || loc.City != "London" || loc.Region != "England" {
		t.Fatalf("unexpected location: %+v", loc)
	}
	if atomic.LoadInt32(&secondaryHits) != 0 {
		t.Fatalf("secondary should not be called, got %d hits", secondaryHits)
	}
}

func TestResolveFallsBackToSecondary(t *testing.T) {
	tests := []struct {
		name    string
		primary http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "slow down", http.StatusTooManyRequests)
		}},
		{"malformed payload", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"country_code":`)
		}},
		{"provider error flag", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"error":true,"reason":"RateLimited"}`)
		}},
		{"missing country", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"ip":"81.2.69.142"}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var primaryHits, secondaryHits int32
			primary := countingServer(t, &primaryHits, tt.primary)
			secondary := countingServer(t, &secondaryHits, ipapiComOK)

			r := newTestResolver(primary.URL, secondary.URL, ResolverConfig{})
			loc := r.ResolveCountry(context.Background(), "102.89.1.1")

			if loc.CountryCode != "NG" || loc.Country != "Nigeria" {
				t.Fatalf("expected secondary location, got %+v", loc)
			}
			if atomic.LoadInt32(&primaryHits) != 1 || atomic.LoadInt32(&secondaryHits) != 1 {
				t.Fatalf("hits primary=%d secondary=%d, want 1/1", primaryHits, secondaryHits)
			}
		})
	}
}

func TestResolveReturnsDefaultWhenAllProvidersFail(t *testing.T) {
	var hits int32
	failing := countingServer(t, &hits, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	secondaryFail := countingServer(t, &hits, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status":"fail","message":"reserved range"}`)
	})

	r := newTestResolver(failing.URL, secondaryFail.URL, ResolverConfig{})
	loc := r.ResolveCountry(context.Background(), "8.8.8.8")

	if loc.CountryCode != "US" || loc.Country != "United States" {
		t.Fatalf("expected default location, got %+v", loc)
	}
}

func TestResolveReturnsDefaultWhenProvidersUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	r := newTestResolver(url, url, ResolverConfig{})
	loc := r.ResolveCountry(context.Background(), "8.8.8.8")
	if loc != DefaultLocation {
		t.Fatalf("expected default location, got %+v", loc)
	}
}

func TestResolveTreatsTimeoutAsFailure(t *testing.T) {
	var primaryHits, secondaryHits int32
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	slow := countingServer(t, &primaryHits, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	secondary := countingServer(t, &secondaryHits, ipapiComOK)

	r := newTestResolver(slow.URL, secondary.URL, ResolverConfig{ProviderTimeout: 50 * time.Millisecond})

	start := time.Now()
	loc := r.ResolveCountry(context.Background(), "102.89.1.1")
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("resolution took too long: %v", elapsed)
	}
	if loc.CountryCode != "NG" {
		t.Fatalf("expected secondary after timeout, got %+v", loc)
	}
}

func TestResolveUsesConfiguredDefault(t *testing.T) {
	r := NewResolver(ResolverConfig{Default: Location{Country: "Canada", CountryCode: "CA"}}, quietLogger())
	if loc := r.ResolveCountry(context.Background(), "8.8.8.8"); loc.CountryCode != "CA" {
		t.Fatalf("expected configured default, got %+v", loc)
	}
}

func TestResolveSkipsProviderWithOpenBreaker(t *testing.T) {
	var primaryHits, secondaryHits int32
	primary := countingServer(t, &primaryHits, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	secondary := countingServer(t, &secondaryHits, ipapiComOK)

	r := newTestResolver(primary.URL, secondary.URL, ResolverConfig{FailureThreshold: 2, BreakerCooldown: time.Hour})
	for i := 0; i < 5; i++ {
		if loc := r.ResolveCountry(context.Background(), "102.89.1.1"); loc.CountryCode != "NG" {
			t.Fatalf("call %d: expected secondary location, got %+v", i, loc)
		}
	}
	if atomic.LoadInt32(&primaryHits) != 2 {
		t.Fatalf("primary should be skipped after breaker opens, got %d hits", primaryHits)
	}
	if atomic.LoadInt32(&secondaryHits) != 5 {
		t.Fatalf("secondary hits = %d, want 5", secondaryHits)
	}
}

func TestPrivateAddressesUseSelfLookup(t *testing.T) {
	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		ipapiOK(w, r)
	}))
	defer srv.Close()

	p := NewIPAPIProvider(ProviderConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)
	r := NewResolver(ResolverConfig{}, quietLogger(), p)
	r.ResolveCountry(context.Background(), "10.0.0.7")

	if gotPath := <-paths; gotPath != "/json/" {
		t.Fatalf("path = %q, want self lookup /json/", gotPath)
	}
}

func TestPublicIP(t *testing.T) {
	tests := map[string]string{
		"8.8.8.8":              "8.8.8.8",
		"127.0.0.1":            "",
		"192.168.1.4":          "",
		"::1":                  "",
		"garbage":              "",
		"":                     "",
		"2001:4860:4860::8888": "2001:4860:4860::8888",
	}
	for in, want := range tests {
		if got := publicIP(in); got != want {
			t.Errorf("publicIP(%q) = %q, want %q", in, got, want)
		}
	}
}
