package logging

import (
	"context"
	"log/slog"
	"os"
)

type contextKey string

const (
	HandlerKey       contextKey = "handler"
	SessionIDKey     contextKey = "session_id"
	UserIDKey        contextKey = "user_id"
	OrderIDKey       contextKey = "order_id"
	ProductIDKey     contextKey = "product_id"
	CountryCodeKey   contextKey = "country_code"
	CurrencyCodeKey  contextKey = "currency_code"
	ProviderKey      contextKey = "provider"
	PaymentIntentKey contextKey = "payment_intent_id"
	WorkerKey        contextKey = "worker"
	ClientIPKey      contextKey = "client_ip"
)

// stringKeys are copied verbatim into every record when present.
var stringKeys = []contextKey{
	HandlerKey,
	SessionIDKey,
	UserIDKey,
	OrderIDKey,
	CountryCodeKey,
	CurrencyCodeKey,
	ProviderKey,
	PaymentIntentKey,
	WorkerKey,
	ClientIPKey,
}

// ContextHandler wraps another slog.Handler and adds attributes from context.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler creates a handler that extracts values from context.
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

// Handle adds context attributes before calling the wrapped handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		for _, key := range stringKeys {
			if v, ok := ctx.Value(key).(string); ok && v != "" {
				r.AddAttrs(slog.String(string(key), v))
			}
		}
		if productID, ok := ctx.Value(ProductIDKey).(int64); ok {
			r.AddAttrs(slog.Int64(string(ProductIDKey), productID))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// Setup installs the JSON context-aware logger as the slog default.
func Setup(logLevelStr string) *slog.Logger {
	logLevel := slog.LevelInfo
	if logLevelStr == "debug" {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel, AddSource: logLevel <= slog.LevelDebug}
	baseHandler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(NewContextHandler(baseHandler))
	slog.SetDefault(logger)
	slog.Info("Logging initialized", "level", logLevel.String())
	return logger
}

// Helper functions to add values to context
func ContextWithHandler(ctx context.Context, handler string) context.Context {
	return context.WithValue(ctx, HandlerKey, handler)
}

func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func ContextWithOrderID(ctx context.Context, orderID string) context.Context {
	return context.WithValue(ctx, OrderIDKey, orderID)
}

func ContextWithProductID(ctx context.Context, productID int64) context.Context {
	return context.WithValue(ctx, ProductIDKey, productID)
}

func ContextWithCountry(ctx context.Context, countryCode string) context.Context {
	return context.WithValue(ctx, CountryCodeKey, countryCode)
}

func ContextWithCurrency(ctx context.Context, currencyCode string) context.Context {
	return context.WithValue(ctx, CurrencyCodeKey, currencyCode)
}

func ContextWithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

func ContextWithPaymentIntent(ctx context.Context, intentID string) context.Context {
	return context.WithValue(ctx, PaymentIntentKey, intentID)
}

func ContextWithWorker(ctx context.Context, worker string) context.Context {
	return context.WithValue(ctx, WorkerKey, worker)
}

func ContextWithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ClientIPKey, ip)
}
