package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/notification"
	"github.com/thrillee/glowshop/internal/payment"
	"github.com/thrillee/glowshop/internal/workers"
	"github.com/thrillee/glowshop/pkg/codes"
	"github.com/thrillee/glowshop/pkg/errormapper"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrInvalidStatus     = errors.New("unknown order status")
)

const defaultEmailTimeout = 30 * time.Second

var transitions = map[string][]string{
	codes.OrderStatusPending:    {codes.OrderStatusProcessing, codes.OrderStatusCancelled},
	codes.OrderStatusProcessing: {codes.OrderStatusShipped, codes.OrderStatusCancelled},
	codes.OrderStatusShipped:    {codes.OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
// Staying in the same status is always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Detail is an order with its line items. Shortfalls lists paid lines stock
// could not cover and is only loaded for the back office.
type Detail struct {
	Order      database.Order
	Items      []database.OrderItem
	Shortfalls []database.OrderStockShortfall
}

// Update is the outcome of a status change. Notification is set when a
// customer e-mail was queued.
type Update struct {
	Order        database.Order
	Changed      bool
	Notification *workers.Task
}

type Service struct {
	store        database.Store
	notifier     notification.Notifier
	logger       *slog.Logger
	emailTimeout time.Duration
}

func NewService(store database.Store, notifier notification.Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:        store,
		notifier:     notifier,
		logger:       logger,
		emailTimeout: defaultEmailTimeout,
	}
}

// GetForUser returns one of the user's orders.
func (s *Service) GetForUser(ctx context.Context, userID string, id uuid.UUID) (Detail, error) {
	order, err := s.store.GetUserOrder(ctx, database.GetUserOrderParams{ID: id, UserID: userID})
	if err != nil {
		return Detail{}, notFound(err)
	}
	return s.withItems(ctx, order)
}

// Get returns any order. Used by the back office.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Detail, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return Detail{}, notFound(err)
	}
	detail, err := s.withItems(ctx, order)
	if err != nil {
		return Detail{}, err
	}
	detail.Shortfalls, err = s.store.ListOrderStockShortfalls(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("failed to load stock shortfalls: %w", err)
	}
	return detail, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string, limit, offset int32) ([]database.Order, int64, error) {
	orders, err := s.store.ListUserOrders(ctx, database.ListUserOrdersParams{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	total, err := s.store.CountUserOrders(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return orders, total, nil
}

// List returns orders across all users, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *string, limit, offset int32) ([]database.Order, int64, error) {
	if status != nil && !codes.IsOrderStatus(*status) {
		return nil, 0, errormapper.Wrap(errormapper.ErrorCodeValidationFailure, "unknown order status", ErrInvalidStatus)
	}
	orders, err := s.store.ListOrders(ctx, database.ListOrdersParams{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	total, err := s.store.CountOrders(ctx, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return orders, total, nil
}

// UpdateStatus moves an order along its lifecycle on behalf of an operator.
// Shipped, delivered and cancelled orders trigger a customer e-mail.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Update, error) {
	ctx = logging.ContextWithOrderID(ctx, id.String())
	if !codes.IsOrderStatus(status) {
		return Update{}, errormapper.Wrap(errormapper.ErrorCodeValidationFailure, "unknown order status", ErrInvalidStatus)
	}

	var result Update
	err := s.store.ExecTx(ctx, func(q database.Querier) error {
		order, err := q.GetOrderForUpdate(ctx, id)
		if err != nil {
			return notFound(err)
		}
		result.Order = order
		if order.Status == status {
			return nil
		}
		if !CanTransition(order.Status, status) {
			return errormapper.Wrap(errormapper.ErrorCodeInvalidTransition,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, status), ErrInvalidTransition)
		}
		updated, err := q.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
			ID:            id,
			Status:        status,
			PaymentStatus: order.PaymentStatus,
		})
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		result.Order = updated
		result.Changed = true
		return nil
	})
	if err != nil {
		return Update{}, err
	}
	if result.Changed {
		s.logger.InfoContext(ctx, "Order status updated", slog.String("status", status))
		result.Notification = s.notifyStatus(ctx, result.Order)
	}
	return result, nil
}

// ApplyPaymentEvent records a verified payment provider event on its order.
// Events are idempotent: replaying one leaves the order unchanged.
func (s *Service) ApplyPaymentEvent(ctx context.Context, ev payment.Event) (Update, error) {
	ctx = logging.ContextWithPaymentIntent(ctx, ev.IntentID)
	switch ev.Type {
	case codes.EventPaymentSucceeded, codes.EventPaymentFailed, codes.EventPaymentCanceled, codes.EventChargeRefunded:
	default:
		s.logger.DebugContext(ctx, "Ignoring payment event", slog.String("event_type", ev.Type))
		return Update{}, nil
	}

	id, err := s.locate(ctx, ev)
	if err != nil {
		return Update{}, err
	}
	ctx = logging.ContextWithOrderID(ctx, id.String())

	var result Update
	var confirm bool
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		order, err := q.GetOrderForUpdate(ctx, id)
		if err != nil {
			return notFound(err)
		}
		result.Order = order

		status, paymentStatus := order.Status, order.PaymentStatus
		switch ev.Type {
		case codes.EventPaymentSucceeded:
			if paymentStatus == codes.PaymentStatusPaid || paymentStatus == codes.PaymentStatusRefunded {
				return nil
			}
			paymentStatus = codes.PaymentStatusPaid
			if !CanTransition(status, codes.OrderStatusProcessing) {
				s.logger.WarnContext(ctx, "Payment received for an order that is no longer open",
					slog.String("status", status))
				break
			}
			if err := s.reserveStock(ctx, q, id); err != nil {
				return err
			}
			status = codes.OrderStatusProcessing
			confirm = true
		case codes.EventPaymentFailed:
			if paymentStatus != codes.PaymentStatusUnpaid {
				return nil
			}
			paymentStatus = codes.PaymentStatusFailed
		case codes.EventPaymentCanceled:
			if paymentStatus == codes.PaymentStatusPaid || paymentStatus == codes.PaymentStatusRefunded {
				return nil
			}
			if CanTransition(status, codes.OrderStatusCancelled) {
				status = codes.OrderStatusCancelled
			}
		case codes.EventChargeRefunded:
			paymentStatus = codes.PaymentStatusRefunded
			if CanTransition(status, codes.OrderStatusCancelled) {
				status = codes.OrderStatusCancelled
			}
		}

		if status == order.Status && paymentStatus == order.PaymentStatus {
			return nil
		}
		updated, err := q.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
			ID:            id,
			Status:        status,
			PaymentStatus: paymentStatus,
		})
		if err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		result.Order = updated
		result.Changed = true
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to apply payment event", slog.String("event_type", ev.Type), slog.Any("error", err))
		return Update{}, err
	}
	if !result.Changed {
		s.logger.InfoContext(ctx, "Payment event already applied", slog.String("event_type", ev.Type))
		return result, nil
	}

	s.logger.InfoContext(ctx, "Payment event applied",
		slog.String("event_type", ev.Type),
		slog.String("status", result.Order.Status),
		slog.String("payment_status", result.Order.PaymentStatus),
	)
	switch {
	case confirm:
		result.Notification = s.notify(ctx, result.Order, func(to string, summary notification.OrderSummary) (notification.Message, error) {
			return notification.OrderConfirmation(to, summary)
		})
	case ev.Type == codes.EventChargeRefunded && result.Order.Status == codes.OrderStatusCancelled:
		result.Notification = s.notifyStatus(ctx, result.Order)
	}
	return result, nil
}

// locate finds the order an event belongs to, by intent id first and by the
// order id carried in the intent metadata otherwise.
func (s *Service) locate(ctx context.Context, ev payment.Event) (uuid.UUID, error) {
	if ev.IntentID != "" {
		intentID := ev.IntentID
		order, err := s.store.GetOrderByPaymentIntent(ctx, &intentID)
		if err == nil {
			return order.ID, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("failed to look up order by payment intent: %w", err)
		}
	}
	if id, err := uuid.Parse(ev.OrderID); err == nil {
		return id, nil
	}
	return uuid.Nil, errormapper.Wrap(errormapper.ErrorCodeNotFound, "no order matches the payment event", ErrOrderNotFound)
}

// reserveStock decrements stock for every item of a paid order. A line that
// can no longer be covered keeps its stock and is recorded as a shortfall for
// the back office to resolve.
func (s *Service) reserveStock(ctx context.Context, q database.Querier, id uuid.UUID) error {
	items, err := q.ListOrderItems(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	for _, item := range items {
		n, err := q.DecrementProductStock(ctx, database.DecrementProductStockParams{Quantity: item.Quantity, ID: item.ProductID})
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		if n > 0 {
			continue
		}
		shortfall, err := q.CreateStockShortfall(ctx, database.CreateStockShortfallParams{
			OrderID:   id,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to record stock shortfall: %w", err)
		}
		s.logger.WarnContext(logging.ContextWithProductID(ctx, item.ProductID), "Paid order exceeds available stock",
			slog.Int("quantity", int(item.Quantity)),
			slog.Int("available", int(shortfall.Available)))
	}
	return nil
}

func (s *Service) notifyStatus(ctx context.Context, order database.Order) *workers.Task {
	switch order.Status {
	case codes.OrderStatusShipped, codes.OrderStatusDelivered, codes.OrderStatusCancelled:
	default:
		return nil
	}
	status := order.Status
	return s.notify(ctx, order, func(to string, summary notification.OrderSummary) (notification.Message, error) {
		return notification.OrderStatusChanged(to, summary, status)
	})
}

func (s *Service) notify(ctx context.Context, order database.Order, render func(string, notification.OrderSummary) (notification.Message, error)) *workers.Task {
	if s.notifier == nil || order.CustomerEmail == "" {
		return nil
	}
	return workers.Go(ctx, "OrderEmail", s.emailTimeout, func(ctx context.Context) error {
		items, err := s.store.ListOrderItems(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("failed to load order items: %w", err)
		}
		msg, err := render(order.CustomerEmail, Summary(order, items))
		if err != nil {
			return err
		}
		return s.notifier.Send(ctx, msg)
	})
}

// Summary builds the e-mail view of an order in the currency it was charged in.
func Summary(order database.Order, items []database.OrderItem) notification.OrderSummary {
	summary := notification.OrderSummary{
		OrderID:  order.ID.String(),
		Currency: order.ChargeCurrency,
		Total:    order.ChargeAmount,
	}
	linesTotal := decimal.Zero
	for _, item := range items {
		summary.Lines = append(summary.Lines, notification.OrderLine{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.ChargedUnitPrice,
			LineTotal: item.LineTotal,
		})
		linesTotal = linesTotal.Add(item.LineTotal)
	}
	summary.Shipping = order.ChargeAmount.Sub(linesTotal)
	if summary.Shipping.IsNegative() {
		summary.Shipping = decimal.Zero
	}
	return summary
}

func (s *Service) withItems(ctx context.Context, order database.Order) (Detail, error) {
	items, err := s.store.ListOrderItems(ctx, order.ID)
	if err != nil {
		return Detail{}, fmt.Errorf("failed to load order items: %w", err)
	}
	return Detail{Order: order, Items: items}, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errormapper.Wrap(errormapper.ErrorCodeNotFound, "order not found", ErrOrderNotFound)
	}
	return fmt.Errorf("failed to load order: %w", err)
}
