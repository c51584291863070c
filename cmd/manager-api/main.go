package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thrillee/glowshop/internal/auth"
	cfg "github.com/thrillee/glowshop/internal/config"
	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/httpserver"
	"github.com/thrillee/glowshop/internal/logging"
	apihandlers "github.com/thrillee/glowshop/internal/managerapi/handlers"
	"github.com/thrillee/glowshop/internal/notification"
	"github.com/thrillee/glowshop/internal/orders"
)

func main() {
	hashKey := flag.String("hash-key", "", "print the bcrypt hash for an admin API key and exit")
	flag.Parse()
	if *hashKey != "" {
		hash, err := auth.HashAPIKey(*hashKey)
		if err != nil {
			log.Fatalf("Failed to hash key: %v", err)
		}
		fmt.Println(hash)
		return
	}

	appCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	config, err := cfg.Load()
	if err != nil {
		log.Fatalf("Config load error: %v", err)
	}
	logger := logging.Setup(config.LogLevel)
	if config.Admin.APIKeyHash == "" {
		slog.Warn("ADMIN_API_KEY_HASH is not set; every back office request will be rejected")
	}

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

	var notifier notification.Notifier
	if config.Email.APIKey != "" {
		notifier = notification.NewEmailNotifier(notification.EmailConfig{
			BaseURL: config.Email.BaseURL,
			APIKey:  config.Email.APIKey,
			From:    config.Email.From,
			Timeout: config.Email.RequestTimeout,
		}, logger)
	} else {
		notifier = notification.NewLogNotifier(logger)
	}

	// --- Gin Router Setup ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if err := router.SetTrustedProxies(config.ManagerAPI.TrustedProxies); err != nil {
		logger.Error("Invalid trusted proxy list", slog.Any("error", err))
		os.Exit(1)
	}
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		if err := dbpool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "db": "error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	apihandlers.SetupRoutes(router.Group("/api/v1"), apihandlers.Dependencies{
		Queries:      store,
		Orders:       orders.NewService(store, notifier, logger),
		Guard:        auth.NewAdminGuard(config.Admin.APIKeyHash),
		BaseCurrency: config.Pricing.BaseCurrency,
	})

	// --- HTTP Server ---
	srv := httpserver.NewServer("manager-api", config.ManagerAPI, router)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			rootCancel() // Trigger shutdown on server error
		}
	}()

	<-appCtx.Done()
	slog.Info("Shutdown signal received for Management API server.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Management API server forced to shutdown", slog.Any("error", err))
	}
	slog.Info("Management API server stopped.")
}
