package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/orders"
	"github.com/thrillee/glowshop/internal/payment"
	"github.com/thrillee/glowshop/pkg/errormapper"
)

const maxWebhookBody = 64 << 10

type WebhookConfig struct {
	Secret    string
	Tolerance time.Duration
}

type WebhookHandler struct {
	orders OrderService
	config WebhookConfig
	now    func() time.Time
}

func NewWebhookHandler(service OrderService, config WebhookConfig) *WebhookHandler {
	if config.Tolerance <= 0 {
		config.Tolerance = 5 * time.Minute
	}
	return &WebhookHandler{orders: service, config: config, now: time.Now}
}

// HandlePaymentEvent handles POST /webhooks/payments
func (h *WebhookHandler) HandlePaymentEvent(c *gin.Context) {
	logCtx := logging.ContextWithProvider(logging.ContextWithHandler(c.Request.Context(), "HandlePaymentEvent"), "stripe")

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, "could not read body")
		return
	}
	if err := payment.VerifySignature(c.GetHeader(payment.SignatureHeader), body, h.config.Secret, h.config.Tolerance, h.now()); err != nil {
		slog.WarnContext(logCtx, "Rejected payment webhook", slog.Any("error", err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature", "code": errormapper.ErrorCodeInvalidSignature})
		return
	}
	ev, err := payment.ParseEvent(body)
	if err != nil {
		slog.WarnContext(logCtx, "Malformed payment webhook", slog.Any("error", err))
		badRequest(c, "invalid payload")
		return
	}
	logCtx = logging.ContextWithPaymentIntent(logCtx, ev.IntentID)

	if _, err := h.orders.ApplyPaymentEvent(logCtx, ev); err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			// Not ours: acknowledge so the provider stops retrying.
			slog.WarnContext(logCtx, "Payment event for unknown order", slog.String("event_id", ev.ID), slog.String("event_type", ev.Type))
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		respondError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
