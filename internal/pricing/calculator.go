package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseCurrency = "USD"
	// neutralCountry is reported when no profile matched.
	neutralCountry = "US"
)

// Result is the outcome of a price adjustment. It is recomputed on every call.
type Result struct {
	OriginalPrice decimal.Decimal `json:"original_price"`
	AdjustedPrice decimal.Decimal `json:"adjusted_price"`
	CurrencyCode  string          `json:"currency_code"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	PPPMultiplier decimal.Decimal `json:"ppp_multiplier"`
	Country       string          `json:"country"`
	Adjusted      bool            `json:"adjusted"`
}

// Calculator converts base-currency prices into PPP-adjusted local prices.
type Calculator struct {
	table        *Table
	baseCurrency string
}

func NewCalculator(table *Table, baseCurrency string) *Calculator {
	if baseCurrency == "" {
		baseCurrency = DefaultBaseCurrency
	}
	return &Calculator{table: table, baseCurrency: strings.ToUpper(baseCurrency)}
}

func (c *Calculator) Table() *Table { return c.table }

func (c *Calculator) BaseCurrency() string { return c.baseCurrency }

// Adjust prices in the calculator's base currency.
func (c *Calculator) Adjust(price decimal.Decimal, countryCode string) Result {
	return c.AdjustIn(price, countryCode, c.baseCurrency)
}

// AdjustIn computes round2(price * exchangeRate * pppMultiplier) for an active
// profile. Unknown or inactive countries get the price back unchanged in
// baseCurrency. Negative prices are clamped to zero.
func (c *Calculator) AdjustIn(price decimal.Decimal, countryCode, baseCurrency string) Result {
	if price.IsNegative() {
		price = decimal.Zero
	}
	profile, ok := c.table.Lookup(countryCode)
	if !ok {
		return passthrough(price, baseCurrency)
	}
	local := price.Mul(profile.ExchangeRate)
	adjusted := local.Mul(profile.PPPMultiplier).Round(2)
	return Result{
		OriginalPrice: price,
		AdjustedPrice: adjusted,
		CurrencyCode:  profile.CurrencyCode,
		ExchangeRate:  profile.ExchangeRate,
		PPPMultiplier: profile.PPPMultiplier,
		Country:       profile.DisplayName,
		Adjusted:      true,
	}
}

// Passthrough returns the neutral result for price in the base currency.
func (c *Calculator) Passthrough(price decimal.Decimal) Result {
	if price.IsNegative() {
		price = decimal.Zero
	}
	return passthrough(price, c.baseCurrency)
}

func passthrough(price decimal.Decimal, baseCurrency string) Result {
	if baseCurrency == "" {
		baseCurrency = DefaultBaseCurrency
	}
	return Result{
		OriginalPrice: price,
		AdjustedPrice: price,
		CurrencyCode:  strings.ToUpper(baseCurrency),
		ExchangeRate:  decimal.NewFromInt(1),
		PPPMultiplier: decimal.NewFromInt(1),
		Country:       neutralCountry,
	}
}
