package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/pricing"
	"github.com/thrillee/glowshop/internal/storefront/handlers/dto"
)

type PricingHandler struct {
	calc *pricing.Calculator
}

func NewPricingHandler(calc *pricing.Calculator) *PricingHandler {
	return &PricingHandler{calc: calc}
}

// ListCountries handles GET /pricing/countries
func (h *PricingHandler) ListCountries(c *gin.Context) {
	profiles := h.calc.Table().ListActive()
	resp := make([]dto.CountryResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = dto.NewCountryResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "base_currency": h.calc.BaseCurrency()})
}

// QuotePrice handles GET /pricing/quote?amount=&country=
func (h *PricingHandler) QuotePrice(c *gin.Context) {
	amount, err := parseAmount(c.Query("amount"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	var result pricing.Result
	if country := strings.TrimSpace(c.Query("country")); country != "" {
		result = h.calc.Adjust(amount, country)
	} else {
		result = h.calc.Passthrough(amount)
	}
	c.JSON(http.StatusOK, dto.NewQuoteResponse(result))
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, errors.New("amount is required")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, errors.New("amount must be a non-negative number")
	}
	return amount, nil
}
