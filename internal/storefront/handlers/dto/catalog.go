package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/database"
)

type ProductResponse struct {
	ID           int64           `json:"id"`
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	BaseCurrency string          `json:"base_currency"`
	ImageURL     *string         `json:"image_url"`
	InStock      bool            `json:"in_stock"`
	Stock        int32           `json:"stock"`
	DisplayPrice *Money          `json:"display_price,omitempty"`
}

func NewProductResponse(p database.Product, baseCurrency string) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Slug:         p.Slug,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        p.Price,
		BaseCurrency: baseCurrency,
		ImageURL:     p.ImageUrl,
		InStock:      p.Stock > 0,
		Stock:        p.Stock,
	}
}

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int32 `json:"quantity"   binding:"required,gt=0,lte=99"`
}

type UpdateCartItemRequest struct {
	Quantity *int32 `json:"quantity" binding:"required,gte=0,lte=99"`
}

type CartLineResponse struct {
	ProductID int64  `json:"product_id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	LineTotal Money  `json:"line_total"`
}

type CartResponse struct {
	Lines       []CartLineResponse `json:"lines"`
	Items       int                `json:"items"`
	CountryCode string             `json:"country_code"`
	Subtotal    Money              `json:"subtotal"`
	Shipping    Money              `json:"shipping"`
	Total       Money              `json:"total"`
}

type WishlistItemResponse struct {
	ProductID int64           `json:"product_id"`
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	ImageURL  *string         `json:"image_url"`
	Price     decimal.Decimal `json:"price"`
	InStock   bool            `json:"in_stock"`
	AddedAt   time.Time       `json:"added_at"`
}
