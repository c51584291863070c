package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/notification"
)

// Config holds configuration for worker intervals and batch sizes.
type Config struct {
	OrderExpiryInterval time.Duration
	OrderExpiryAge      time.Duration
	OrderExpiryBatch    int
	LowStockInterval    time.Duration
	LowStockThreshold   int32
	LowStockBatch       int
	RunTimeout          time.Duration
	AdminEmail          string
}

// Manager orchestrates the background worker loops.
type Manager struct {
	dbQueries database.Querier
	notifier  notification.Notifier
	config    Config
	logger    *slog.Logger
	now       func() time.Time
}

func NewManager(queries database.Querier, notifier notification.Notifier, cfg Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		dbQueries: queries,
		notifier:  notifier,
		config:    cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Start launches the order expiry and low stock loops. It returns immediately.
func (m *Manager) Start(ctx context.Context) {
	m.logger.InfoContext(ctx, "Starting background workers")
	go runWorkerLoop(ctx, "OrderExpiry", m.config.OrderExpiryInterval, m.config.OrderExpiryBatch, m.config.RunTimeout, m.ExpirePendingOrders)
	go runWorkerLoop(ctx, "LowStockNotifier", m.config.LowStockInterval, m.config.LowStockBatch, m.config.RunTimeout, m.NotifyLowStock)
}

// ExpirePendingOrders cancels unpaid orders older than the configured age.
func (m *Manager) ExpirePendingOrders(ctx context.Context, batchSize int) (int, error) {
	cutoff := m.now().Add(-m.config.OrderExpiryAge)
	expired, err := m.dbQueries.ExpirePendingOrders(ctx, database.ExpirePendingOrdersParams{
		CreatedBefore: pgtype.Timestamptz{Time: cutoff, Valid: true},
		Limit:         int32(batchSize),
	})
	if err != nil {
		return 0, err
	}
	for _, order := range expired {
		m.logger.InfoContext(logging.ContextWithOrderID(ctx, order.ID.String()), "Expired unpaid order",
			slog.Time("created_at", order.CreatedAt.Time))
	}
	return len(expired), nil
}

// NotifyLowStock sends one alert listing every active product at or below the
// threshold that has not been reported yet, then marks those products.
func (m *Manager) NotifyLowStock(ctx context.Context, batchSize int) (int, error) {
	products, err := m.dbQueries.ListLowStockProducts(ctx, database.ListLowStockProductsParams{
		Threshold: m.config.LowStockThreshold,
		Limit:     int32(batchSize),
	})
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}

	items := make([]notification.LowStockItem, 0, len(products))
	for _, p := range products {
		items = append(items, notification.LowStockItem{Slug: p.Slug, Name: p.Name, Stock: p.Stock})
	}
	msg, err := notification.LowStockAlert(m.config.AdminEmail, m.config.LowStockThreshold, items)
	if err != nil {
		return 0, err
	}
	if err := m.notifier.Send(ctx, msg); err != nil {
		// Products stay unmarked so the next run retries the alert.
		return 0, err
	}

	processedCount := 0
	for _, p := range products {
		if err := m.dbQueries.MarkLowStockNotified(ctx, p.ID); err != nil {
			m.logger.ErrorContext(logging.ContextWithProductID(ctx, p.ID), "Failed to mark low stock notification", slog.Any("error", err))
			continue
		}
		processedCount++
	}
	return processedCount, nil
}
