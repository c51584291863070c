package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/thrillee/glowshop/internal/auth"
	"github.com/thrillee/glowshop/internal/checkout"
	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/storefront/handlers/dto"
	"github.com/thrillee/glowshop/pkg/errormapper"
)

// CartQuoter is satisfied by *checkout.Service.
type CartQuoter interface {
	Quote(ctx context.Context, sessionID, userID, country string) (checkout.Quote, error)
}

type CartHandler struct {
	dbQueries    database.Querier
	quoter       CartQuoter
	baseCurrency string
}

func NewCartHandler(q database.Querier, quoter CartQuoter, baseCurrency string) *CartHandler {
	return &CartHandler{dbQueries: q, quoter: quoter, baseCurrency: baseCurrency}
}

// GetCart handles GET /cart?country=
func (h *CartHandler) GetCart(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "GetCart")
	quote, err := h.quoter.Quote(logCtx, c.GetHeader(SessionHeader), auth.UserID(c), c.Query("country"))
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusOK, dto.EmptyCart(h.baseCurrency))
			return
		}
		respondError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(quote))
}

// AddCartItem handles POST /cart/items
func (h *CartHandler) AddCartItem(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "AddCartItem")
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(logCtx, "Failed to bind request JSON", slog.Any("error", err))
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	logCtx = logging.ContextWithProductID(logCtx, req.ProductID)
	if err := h.requireActiveProduct(logCtx, req.ProductID); err != nil {
		respondError(c, logCtx, err)
		return
	}

	item, err := h.dbQueries.UpsertCartItem(logCtx, database.UpsertCartItemParams{
		UserID:    auth.UserID(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product_id": item.ProductID, "quantity": item.Quantity})
}

// UpdateCartItem handles PUT /cart/items/:product_id. A quantity of zero
// removes the line.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "UpdateCartItem")
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var n int64
	var err error
	if *req.Quantity == 0 {
		n, err = h.dbQueries.DeleteCartItem(logCtx, database.DeleteCartItemParams{UserID: auth.UserID(c), ProductID: productID})
	} else {
		n, err = h.dbQueries.SetCartItemQuantity(logCtx, database.SetCartItemQuantityParams{
			UserID:    auth.UserID(c),
			ProductID: productID,
			Quantity:  *req.Quantity,
		})
	}
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item is not in the cart", "code": errormapper.ErrorCodeNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": productID, "quantity": *req.Quantity})
}

// RemoveCartItem handles DELETE /cart/items/:product_id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "RemoveCartItem")
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	n, err := h.dbQueries.DeleteCartItem(logCtx, database.DeleteCartItemParams{UserID: auth.UserID(c), ProductID: productID})
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item is not in the cart", "code": errormapper.ErrorCodeNotFound})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListWishlist handles GET /wishlist
func (h *CartHandler) ListWishlist(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "ListWishlist")
	rows, err := h.dbQueries.ListWishlist(logCtx, auth.UserID(c))
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	resp := make([]dto.WishlistItemResponse, len(rows))
	for i, r := range rows {
		resp[i] = dto.WishlistItemResponse{
			ProductID: r.ProductID,
			Slug:      r.Slug,
			Name:      r.Name,
			ImageURL:  r.ImageUrl,
			Price:     r.Price,
			InStock:   r.Stock > 0,
			AddedAt:   r.AddedAt.Time,
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// AddWishlistItem handles POST /wishlist/:product_id
func (h *CartHandler) AddWishlistItem(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "AddWishlistItem")
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.requireActiveProduct(logCtx, productID); err != nil {
		respondError(c, logCtx, err)
		return
	}
	if err := h.dbQueries.AddWishlistItem(logCtx, database.AddWishlistItemParams{UserID: auth.UserID(c), ProductID: productID}); err != nil {
		respondError(c, logCtx, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveWishlistItem handles DELETE /wishlist/:product_id
func (h *CartHandler) RemoveWishlistItem(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "RemoveWishlistItem")
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	n, err := h.dbQueries.DeleteWishlistItem(logCtx, database.DeleteWishlistItemParams{UserID: auth.UserID(c), ProductID: productID})
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item is not in the wishlist", "code": errormapper.ErrorCodeNotFound})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) requireActiveProduct(ctx context.Context, id int64) error {
	p, err := h.dbQueries.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errormapper.New(errormapper.ErrorCodeNotFound, "product not found")
		}
		return err
	}
	if !p.IsActive {
		return errormapper.Wrap(errormapper.ErrorCodeProductInactive, p.Name+" is no longer available", checkout.ErrProductUnavailable)
	}
	return nil
}
