package geo

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/thrillee/glowshop/internal/logging"
)

// DefaultLocation is returned when every provider failed.
var DefaultLocation = Location{Country: "United States", CountryCode: "US"}

type ResolverConfig struct {
	ProviderTimeout  time.Duration
	FailureThreshold int
	BreakerCooldown  time.Duration
	Default          Location
}

type guardedProvider struct {
	provider Provider
	breaker  *CircuitBreaker
}

// Resolver maps a caller address to a country by trying each provider in
// order. It always returns a Location; provider failures are logged and
// swallowed.
type Resolver struct {
	providers []guardedProvider
	timeout   time.Duration
	fallback  Location
	logger    *slog.Logger
}

func NewResolver(config ResolverConfig, logger *slog.Logger, providers ...Provider) *Resolver {
	if config.ProviderTimeout <= 0 {
		config.ProviderTimeout = 5 * time.Second
	}
	if config.Default.CountryCode == "" {
		config.Default = DefaultLocation
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		timeout:  config.ProviderTimeout,
		fallback: config.Default,
		logger:   logger,
	}
	for _, p := range providers {
		r.providers = append(r.providers, guardedProvider{
			provider: p,
			breaker: NewCircuitBreaker(CircuitBreakerConfig{
				FailureThreshold: config.FailureThreshold,
				Cooldown:         config.BreakerCooldown,
				Provider:         p.Name(),
				Logger:           logger,
			}),
		})
	}
	return r
}

// ResolveCountry returns the first successful provider answer, or the default.
func (r *Resolver) ResolveCountry(ctx context.Context, ip string) Location {
	lookupIP := publicIP(ip)
	for _, gp := range r.providers {
		if ctx.Err() != nil {
			break
		}
		logCtx := logging.ContextWithProvider(ctx, gp.provider.Name())
		if !gp.breaker.AllowRequest() {
			r.logger.WarnContext(logCtx, "Skipping geolocation provider, circuit open")
			continue
		}

		loc, err := r.lookup(logCtx, gp.provider, lookupIP)
		if err != nil {
			gp.breaker.RecordFailure()
			r.logger.WarnContext(logCtx, "Geolocation provider failed, trying next", slog.Any("error", err))
			continue
		}
		gp.breaker.RecordSuccess()
		return loc
	}

	r.logger.InfoContext(ctx, "Falling back to default location", slog.String("country_code", r.fallback.CountryCode))
	return r.fallback
}

func (r *Resolver) lookup(ctx context.Context, p Provider, ip string) (Location, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return p.Lookup(callCtx, ip)
}

// publicIP returns ip when it is routable, or "" so the provider geolocates
// the egress address instead.
func publicIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() || parsed.IsLinkLocalUnicast() {
		return ""
	}
	return parsed.String()
}
