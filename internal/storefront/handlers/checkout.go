package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thrillee/glowshop/internal/auth"
	"github.com/thrillee/glowshop/internal/checkout"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/storefront/handlers/dto"
)

// Checkout is satisfied by *checkout.Service.
type Checkout interface {
	CartQuoter
	CreatePaymentIntent(ctx context.Context, req checkout.Request) (checkout.Result, error)
}

type CheckoutHandler struct {
	service Checkout
}

func NewCheckoutHandler(service Checkout) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// CreateCheckout handles POST /checkout. The charge is computed server side
// from the stored cart and the pricing session.
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "CreateCheckout")
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(logCtx, "Failed to bind request JSON", slog.Any("error", err))
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = c.GetHeader(SessionHeader)
	}

	result, err := h.service.CreatePaymentIntent(logCtx, checkout.Request{
		SessionID:     sessionID,
		UserID:        auth.UserID(c),
		CustomerEmail: req.CustomerEmail,
		Address:       req.ShippingAddress,
	})
	if err != nil {
		respondError(c, logCtx, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		OrderID:         result.OrderID,
		PaymentIntentID: result.PaymentIntentID,
		ClientSecret:    result.ClientSecret,
		Amount:          dto.NewMoney(result.Quote.Amount, result.Quote.CurrencyCode),
		Country:         result.Quote.Country,
		CountryCode:     result.Quote.CountryCode,
		Cart:            dto.NewCartResponse(result.Quote),
	})
}
