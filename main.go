package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thrillee/glowshop/internal/config"
	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/notification"
	"github.com/thrillee/glowshop/internal/workers"
)

// The root binary runs the background workers: pending order expiry and
// low-stock alerts.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.Setup(cfg.LogLevel)

	dbpool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer dbpool.Close()
	if err := dbpool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	slog.Info("Database connection pool established")

	dbQueries := database.New(dbpool)

	var notifier notification.Notifier
	if cfg.Email.APIKey != "" {
		notifier = notification.NewEmailNotifier(notification.EmailConfig{
			BaseURL: cfg.Email.BaseURL,
			APIKey:  cfg.Email.APIKey,
			From:    cfg.Email.From,
			Timeout: cfg.Email.RequestTimeout,
		}, logger)
	} else {
		notifier = notification.NewLogNotifier(logger)
	}

	workerManager := workers.NewManager(dbQueries, notifier, workers.Config{
		OrderExpiryInterval: cfg.Worker.OrderExpiryInterval,
		OrderExpiryAge:      cfg.Worker.OrderExpiryAge,
		OrderExpiryBatch:    cfg.Worker.OrderExpiryBatch,
		LowStockInterval:    cfg.Worker.LowStockInterval,
		LowStockThreshold:   int32(cfg.Worker.LowStockThreshold),
		LowStockBatch:       cfg.Worker.LowStockBatch,
		RunTimeout:          cfg.Worker.RunTimeout,
		AdminEmail:          cfg.Email.AdminAddress,
	}, logger)

	workerManager.Start(ctx)

	<-ctx.Done()
	slog.Info("Shutdown signal received, workers stopping")
}
