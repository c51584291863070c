package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thrillee/glowshop/internal/auth"
	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/orders"
	"github.com/thrillee/glowshop/internal/payment"
	"github.com/thrillee/glowshop/internal/storefront/handlers/dto"
)

// OrderService is satisfied by *orders.Service.
type OrderService interface {
	GetForUser(ctx context.Context, userID string, id uuid.UUID) (orders.Detail, error)
	ListForUser(ctx context.Context, userID string, limit, offset int32) ([]database.Order, int64, error)
	ApplyPaymentEvent(ctx context.Context, ev payment.Event) (orders.Update, error)
}

type OrderHandler struct {
	orders OrderService
}

func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{orders: service}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "ListOrders")
	limit, offset := parsePagination(c)
	list, total, err := h.orders.ListForUser(logCtx, auth.UserID(c), limit, offset)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	respData := make([]dto.OrderResponse, len(list))
	for i, o := range list {
		respData[i] = dto.NewOrderResponse(o, nil)
	}
	c.JSON(http.StatusOK, dto.PaginatedListResponse{
		Data:       respData,
		Pagination: dto.PaginationResponse{Total: total, Limit: limit, Offset: offset},
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "GetOrder")
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	logCtx = logging.ContextWithOrderID(logCtx, id.String())
	detail, err := h.orders.GetForUser(logCtx, auth.UserID(c), id)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(detail.Order, detail.Items))
}
