package handlers

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/managerapi/handlers/dto"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type ProductHandler struct {
	dbQueries database.Querier
}

func NewProductHandler(q database.Querier) *ProductHandler {
	return &ProductHandler{dbQueries: q}
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "CreateProduct")
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(logCtx, "Failed to bind request JSON", slog.Any("error", err))
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if !slugPattern.MatchString(req.Slug) {
		badRequest(c, "slug must be lowercase letters, digits and hyphens")
		return
	}
	if req.Price.IsNegative() {
		badRequest(c, "price must not be negative")
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p, err := h.dbQueries.CreateProduct(logCtx, database.CreateProductParams{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price.Round(2),
		ImageUrl:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    active,
	})
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	logCtx = logging.ContextWithProductID(logCtx, p.ID)
	slog.InfoContext(logCtx, "Product created", slog.String("slug", p.Slug))
	c.JSON(http.StatusCreated, dto.NewProductResponse(p))
}

// UpdateProduct handles PUT /products/:id. Changing stock re-arms the
// low-stock alert.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "UpdateProduct")
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	logCtx = logging.ContextWithProductID(logCtx, id)

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(logCtx, "Failed to bind request JSON", slog.Any("error", err))
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	params := database.UpdateProductParams{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageUrl:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			badRequest(c, "price must not be negative")
			return
		}
		params.Price = decimal.NullDecimal{Decimal: req.Price.Round(2), Valid: true}
	}

	p, err := h.dbQueries.UpdateProduct(logCtx, params)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	slog.InfoContext(logCtx, "Product updated")
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}
