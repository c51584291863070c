package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/pricing"
)

type CountryResponse struct {
	Code           string          `json:"code"`
	DisplayName    string          `json:"display_name"`
	CurrencyCode   string          `json:"currency_code"`
	CurrencySymbol string          `json:"currency_symbol"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	PPPMultiplier  decimal.Decimal `json:"ppp_multiplier"`
}

func NewCountryResponse(p pricing.Profile) CountryResponse {
	return CountryResponse{
		Code:           p.Code,
		DisplayName:    p.DisplayName,
		CurrencyCode:   p.CurrencyCode,
		CurrencySymbol: pricing.SymbolFor(p.CurrencyCode),
		ExchangeRate:   p.ExchangeRate,
		PPPMultiplier:  p.PPPMultiplier,
	}
}

// QuoteResponse is a calculator result with its display string.
type QuoteResponse struct {
	pricing.Result
	Formatted string `json:"formatted"`
}

func NewQuoteResponse(r pricing.Result) QuoteResponse {
	return QuoteResponse{Result: r, Formatted: pricing.Format(r.AdjustedPrice, r.CurrencyCode)}
}

type SessionResponse struct {
	SessionID       string           `json:"session_id"`
	SelectedCountry *string          `json:"selected_country"`
	Enabled         bool             `json:"enabled"`
	Country         *CountryResponse `json:"country,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	LastSeen        time.Time        `json:"last_seen"`
}

type SetRegionalPricingRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type SelectCountryRequest struct {
	CountryCode string `json:"country_code" binding:"required,len=2"`
}
