package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/session"
	"github.com/thrillee/glowshop/internal/storefront/handlers/dto"
)

type CatalogHandler struct {
	dbQueries    database.Querier
	sessions     *session.Manager
	baseCurrency string
}

func NewCatalogHandler(q database.Querier, sessions *session.Manager, baseCurrency string) *CatalogHandler {
	return &CatalogHandler{dbQueries: q, sessions: sessions, baseCurrency: baseCurrency}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "ListProducts")
	limit, offset := parsePagination(c)
	var category *string
	if v := strings.TrimSpace(c.Query("category")); v != "" {
		category = &v
	}

	total, err := h.dbQueries.CountProducts(logCtx, category)
	if err != nil {
		slog.ErrorContext(logCtx, "Failed to count products", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product count"})
		return
	}
	if total == 0 || offset >= int32(total) {
		c.JSON(http.StatusOK, dto.PaginatedListResponse{Data: []dto.ProductResponse{}, Pagination: dto.PaginationResponse{Total: total, Limit: limit, Offset: offset}})
		return
	}

	products, err := h.dbQueries.ListProducts(logCtx, database.ListProductsParams{Category: category, Limit: limit, Offset: offset})
	if err != nil {
		slog.ErrorContext(logCtx, "Failed to list products", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}

	sess, priced := h.session(c)
	respData := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		respData[i] = h.toResponse(p, sess, priced)
	}
	c.JSON(http.StatusOK, dto.PaginatedListResponse{
		Data:       respData,
		Pagination: dto.PaginationResponse{Total: total, Limit: limit, Offset: offset},
	})
}

// GetProduct handles GET /products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "GetProduct")
	p, err := h.dbQueries.GetProductBySlug(logCtx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "code": "NOT_FOUND"})
			return
		}
		slog.ErrorContext(logCtx, "Failed to get product", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	sess, priced := h.session(c)
	c.JSON(http.StatusOK, h.toResponse(p, sess, priced))
}

// session returns the caller's pricing session. An unknown or absent session
// means products are shown without a display price.
func (h *CatalogHandler) session(c *gin.Context) (session.Session, bool) {
	id := c.GetHeader(SessionHeader)
	if id == "" {
		return session.Session{}, false
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		slog.DebugContext(logging.ContextWithSessionID(c.Request.Context(), id), "Ignoring unknown pricing session")
		return session.Session{}, false
	}
	return s, true
}

func (h *CatalogHandler) toResponse(p database.Product, s session.Session, priced bool) dto.ProductResponse {
	resp := dto.NewProductResponse(p, h.baseCurrency)
	if priced {
		result := h.sessions.PriceFor(s, p.Price)
		display := dto.NewMoney(result.AdjustedPrice, result.CurrencyCode)
		resp.DisplayPrice = &display
	}
	return resp
}
