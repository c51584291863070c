package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thrillee/glowshop/internal/checkout"
	cfg "github.com/thrillee/glowshop/internal/config"
	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/geo"
	"github.com/thrillee/glowshop/internal/httpserver"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/notification"
	"github.com/thrillee/glowshop/internal/orders"
	"github.com/thrillee/glowshop/internal/payment"
	"github.com/thrillee/glowshop/internal/pricing"
	"github.com/thrillee/glowshop/internal/ratelimit"
	"github.com/thrillee/glowshop/internal/session"
	storefront "github.com/thrillee/glowshop/internal/storefront/handlers"
	"github.com/thrillee/glowshop/internal/workers"
)

func main() {
	appCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	config, err := cfg.Load()
	if err != nil {
		log.Fatalf("Config load error: %v", err)
	}
	logger := logging.Setup(config.LogLevel)

	// --- Database ---
	slog.Info("Connecting to database...")
	dbpool, err := pgxpool.New(appCtx, config.DatabaseURL)
	if err != nil {
		slog.Error("DB connect error", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()
	if err := dbpool.Ping(appCtx); err != nil {
		slog.Error("DB ping error", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Database connection established")
	store := database.NewStore(dbpool)

	// --- Pricing ---
	table := pricing.DefaultTable()
	if config.Pricing.CountryTablePath != "" {
		table, err = pricing.LoadTable(config.Pricing.CountryTablePath)
		if err != nil {
			slog.Error("Failed to load country table", slog.String("path", config.Pricing.CountryTablePath), slog.Any("error", err))
			os.Exit(1)
		}
	}
	calc := pricing.NewCalculator(table, config.Pricing.BaseCurrency)

	// --- Geolocation ---
	resolver := geo.NewResolver(geo.ResolverConfig{
		ProviderTimeout:  config.Geo.ProviderTimeout,
		FailureThreshold: config.Geo.FailureThreshold,
		BreakerCooldown:  config.Geo.BreakerCooldown,
		Default:          geo.Location{Country: config.Geo.DefaultCountry, CountryCode: config.Geo.DefaultCountryISO},
	}, logger,
		geo.NewIPAPIProvider(geo.ProviderConfig{Name: "ipapi.co", BaseURL: config.Geo.PrimaryURL, Timeout: config.Geo.ProviderTimeout}, logger),
		geo.NewIPAPIComProvider(geo.ProviderConfig{Name: "ip-api.com", BaseURL: config.Geo.SecondaryURL, Timeout: config.Geo.ProviderTimeout}, logger),
	)

	sessions := session.NewManager(resolver, calc, session.Config{IdleTTL: config.Session.IdleTTL, ResolveTimeout: config.Geo.ProviderTimeout * 3}, logger)
	defer sessions.Close()

	detectLimiter := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: config.Geo.DetectRatePerSec,
		BurstSize:         config.Geo.DetectBurst,
	})

	// --- Checkout, payments & e-mail ---
	rules, err := checkout.LoadShippingRules(config.Shipping.RulesPath)
	if err != nil {
		slog.Error("Failed to load shipping rules", slog.Any("error", err))
		os.Exit(1)
	}
	shipping, err := checkout.NewShippingCalculator(rules, logger)
	if err != nil {
		slog.Error("Invalid shipping rules", slog.Any("error", err))
		os.Exit(1)
	}
	payments := payment.NewStripeProvider(payment.ProviderConfig{
		BaseURL:   config.Payment.BaseURL,
		SecretKey: config.Payment.SecretKey,
		Timeout:   config.Payment.RequestTimeout,
	}, logger)
	if config.Payment.WebhookSecret == "" {
		slog.Warn("PAYMENT_WEBHOOK_SECRET is not set; payment webhooks will be rejected")
	}

	var notifier notification.Notifier
	if config.Email.APIKey != "" {
		notifier = notification.NewEmailNotifier(notification.EmailConfig{
			BaseURL: config.Email.BaseURL,
			APIKey:  config.Email.APIKey,
			From:    config.Email.From,
			Timeout: config.Email.RequestTimeout,
		}, logger)
	} else {
		slog.Warn("EMAIL_API_KEY is not set; e-mails will only be logged")
		notifier = notification.NewLogNotifier(logger)
	}

	checkoutService := checkout.NewService(store, sessions, shipping, payments, calc.BaseCurrency(), logger)
	orderService := orders.NewService(store, notifier, logger)

	// --- Housekeeping loops ---
	go workers.RunLoop(appCtx, "SessionSweep", config.Session.SweepInterval, 0, func(ctx context.Context, _ int) (int, error) {
		return sessions.Sweep(time.Now()), nil
	})
	go workers.RunLoop(appCtx, "RateLimiterSweep", config.Session.SweepInterval, 0, func(ctx context.Context, _ int) (int, error) {
		return detectLimiter.Sweep(time.Now()), nil
	})

	// --- Gin Router Setup ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if err := router.SetTrustedProxies(config.StorefrontAPI.TrustedProxies); err != nil {
		logger.Error("Invalid trusted proxy list", slog.Any("error", err))
		os.Exit(1)
	}
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		if err := dbpool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "db": "error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "sessions": sessions.Len()})
	})

	storefront.SetupRoutes(router.Group("/api/v1"), storefront.Dependencies{
		Queries:       store,
		Resolver:      resolver,
		Sessions:      sessions,
		Calc:          calc,
		Checkout:      checkoutService,
		Orders:        orderService,
		Webhook:       storefront.WebhookConfig{Secret: config.Payment.WebhookSecret, Tolerance: config.Payment.WebhookTolerance},
		DetectLimiter: detectLimiter,
	})

	// --- HTTP Server ---
	srv := httpserver.NewServer("storefront", config.StorefrontAPI, router)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			rootCancel()
		}
	}()

	<-appCtx.Done()
	slog.Info("Shutdown signal received for storefront server.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Storefront server forced to shutdown", slog.Any("error", err))
	}
	slog.Info("Storefront server stopped.")
}
