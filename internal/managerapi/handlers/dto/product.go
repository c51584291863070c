package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/database"
)

type CreateProductRequest struct {
	Slug        string           `json:"slug" binding:"required,max=120"`
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description"`
	Category    string           `json:"category" binding:"required,max=60"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,url"`
	Stock       int32            `json:"stock" binding:"gte=0"`
	IsActive    *bool            `json:"is_active"` // defaults to true
}

// UpdateProductRequest patches a product; absent fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" binding:"omitempty,min=1,max=60"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,url"`
	Stock       *int32           `json:"stock" binding:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active"`
}

type ProductResponse struct {
	ID                 int64           `json:"id"`
	Slug               string          `json:"slug"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Price              decimal.Decimal `json:"price"`
	ImageURL           *string         `json:"image_url"`
	Stock              int32           `json:"stock"`
	IsActive           bool            `json:"is_active"`
	LowStockNotifiedAt *time.Time      `json:"low_stock_notified_at"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func NewProductResponse(p database.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		ImageURL:    p.ImageUrl,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
	if p.LowStockNotifiedAt.Valid {
		t := p.LowStockNotifiedAt.Time
		resp.LowStockNotifiedAt = &t
	}
	return resp
}
