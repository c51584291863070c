package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/managerapi/handlers/dto"
	"github.com/thrillee/glowshop/internal/orders"
)

// OrderService is satisfied by *orders.Service.
type OrderService interface {
	Get(ctx context.Context, id uuid.UUID) (orders.Detail, error)
	List(ctx context.Context, status *string, limit, offset int32) ([]database.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (orders.Update, error)
}

type OrderHandler struct {
	orders OrderService
}

func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{orders: service}
}

// ListOrders handles GET /orders?status=&limit=&offset=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "AdminListOrders")
	limit, offset := parsePagination(c)
	var status *string
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		status = &v
	}

	list, total, err := h.orders.List(logCtx, status, limit, offset)
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
	logCtx := logging.ContextWithHandler(c.Request.Context(), "AdminGetOrder")
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	logCtx = logging.ContextWithOrderID(logCtx, id.String())

	detail, err := h.orders.Get(logCtx, id)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	resp := dto.NewOrderResponse(detail.Order, detail.Items)
	if len(detail.Shortfalls) > 0 {
		resp.StockShortfalls = dto.NewStockShortfalls(detail.Shortfalls)
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateOrderStatus handles PUT /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "UpdateOrderStatus")
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	logCtx = logging.ContextWithOrderID(logCtx, id.String())

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(logCtx, "Failed to bind request JSON", slog.Any("error", err))
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	update, err := h.orders.UpdateStatus(logCtx, id, req.Status)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	if update.Changed {
		slog.InfoContext(logCtx, "Order status updated by admin", slog.String("status", update.Order.Status))
	}
	c.JSON(http.StatusOK, dto.UpdateOrderStatusResponse{
		Order:   dto.NewOrderResponse(update.Order, nil),
		Changed: update.Changed,
	})
}
