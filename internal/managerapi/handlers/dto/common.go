package dto

import (
	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/pricing"
)

// PaginationResponse provides standard pagination details.
type PaginationResponse struct {
	Total  int64 `json:"total"`  // Total number of records available
	Limit  int32 `json:"limit"`  // Number of records per page
	Offset int32 `json:"offset"` // Starting record index
}

// PaginatedListResponse is a generic wrapper for list API responses.
type PaginatedListResponse struct {
	Data       any                `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
	Formatted    string          `json:"formatted"`
}

func NewMoney(amount decimal.Decimal, currencyCode string) Money {
	return Money{Amount: amount, CurrencyCode: currencyCode, Formatted: pricing.Format(amount, currencyCode)}
}
