package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAdjustScenarios(t *testing.T) {
	calc := NewCalculator(DefaultTable(), "USD")

	tests := []struct {
		name     string
		price    string
		country  string
		want     string
		currency string
		adjusted bool
	}{
		{name: "united kingdom", price: "100", country: "GB", want: "67.15", currency: "GBP", adjusted: true},
		{name: "nigeria", price: "50", country: "NG", want: "20000.00", currency: "NGN", adjusted: true},
		{name: "lower case code", price: "100", country: "gb", want: "67.15", currency: "GBP", adjusted: true},
		{name: "united states is neutral", price: "42.50", country: "US", want: "42.50", currency: "USD", adjusted: true},
		{name: "unknown country", price: "42.50", country: "ZZ", want: "42.50", currency: "USD"},
		{name: "empty country", price: "19.99", country: "", want: "19.99", currency: "USD"},
		{name: "inactive country", price: "10", country: "RU", want: "10", currency: "USD"},
		{name: "rounds half up", price: "9.99", country: "GB", want: "6.71", currency: "GBP", adjusted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Adjust(d(tt.price), tt.country)
			if !got.AdjustedPrice.Equal(d(tt.want)) {
				t.Errorf("AdjustedPrice = %s, want %s", got.AdjustedPrice, tt.want)
			}
			if got.CurrencyCode != tt.currency {
				t.Errorf("CurrencyCode = %s, want %s", got.CurrencyCode, tt.currency)
			}
			if got.Adjusted != tt.adjusted {
				t.Errorf("Adjusted = %v, want %v", got.Adjusted, tt.adjusted)
			}
			if !got.OriginalPrice.Equal(d(tt.price)) {
				t.Errorf("OriginalPrice = %s, want %s", got.OriginalPrice, tt.price)
			}
		})
	}
}

func TestAdjustMatchesFormulaForEveryActiveCountry(t *testing.T) {
	table := DefaultTable()
	calc := NewCalculator(table, "USD")
	prices := []string{"0", "0.01", "1", "12.34", "49.99", "100", "1234.56"}

	for _, p := range table.ListActive() {
		for _, price := range prices {
			got := calc.Adjust(d(price), p.Code)
			want := d(price).Mul(p.ExchangeRate).Mul(p.PPPMultiplier).Round(2)
			if !got.AdjustedPrice.Equal(want) {
				t.Errorf("%s @ %s: got %s, want %s", p.Code, price, got.AdjustedPrice, want)
			}
			if got.CurrencyCode != p.CurrencyCode {
				t.Errorf("%s: currency %s, want %s", p.Code, got.CurrencyCode, p.CurrencyCode)
			}
			if got.Country != p.DisplayName {
				t.Errorf("%s: country %s, want %s", p.Code, got.Country, p.DisplayName)
			}
		}
	}
}

func TestAdjustZeroPriceIsZeroEverywhere(t *testing.T) {
	table := DefaultTable()
	calc := NewCalculator(table, "USD")
	for _, p := range table.ListActive() {
		if got := calc.Adjust(decimal.Zero, p.Code); !got.AdjustedPrice.IsZero() {
			t.Errorf("%s: adjust(0) = %s, want 0", p.Code, got.AdjustedPrice)
		}
	}
}

func TestAdjustUnknownCountryUsesCallerBaseCurrency(t *testing.T) {
	calc := NewCalculator(DefaultTable(), "USD")
	got := calc.AdjustIn(d("25"), "XX", "cad")

	if !got.AdjustedPrice.Equal(d("25")) {
		t.Fatalf("AdjustedPrice = %s, want 25", got.AdjustedPrice)
	}
	if got.CurrencyCode != "CAD" {
		t.Fatalf("CurrencyCode = %s, want CAD", got.CurrencyCode)
	}
	if !got.ExchangeRate.Equal(decimal.NewFromInt(1)) || !got.PPPMultiplier.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("neutral fallback should use unit rates, got %s/%s", got.ExchangeRate, got.PPPMultiplier)
	}
	if got.Country != "US" {
		t.Fatalf("Country = %s, want US", got.Country)
	}
}

func TestAdjustIsDeterministic(t *testing.T) {
	calc := NewCalculator(DefaultTable(), "USD")
	first := calc.Adjust(d("73.21"), "IN")
	second := calc.Adjust(d("73.21"), "IN")

	if !first.AdjustedPrice.Equal(second.AdjustedPrice) || first.CurrencyCode != second.CurrencyCode {
		t.Fatalf("adjust not deterministic: %+v vs %+v", first, second)
	}
}

func TestAdjustClampsNegativePrice(t *testing.T) {
	calc := NewCalculator(DefaultTable(), "USD")
	got := calc.Adjust(d("-5"), "GB")
	if !got.AdjustedPrice.IsZero() {
		t.Fatalf("negative price should clamp to zero, got %s", got.AdjustedPrice)
	}
}

func TestAdjustWithSyntheticTable(t *testing.T) {
	table, err := NewTable([]Profile{
		{Code: "AA", DisplayName: "Alpha", CurrencyCode: "AAA", ExchangeRate: d("2"), PPPMultiplier: d("0.5"), Active: true},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	calc := NewCalculator(table, "")

	got := calc.Adjust(d("10.005"), "aa")
	if !got.AdjustedPrice.Equal(d("10.01")) {
		t.Fatalf("AdjustedPrice = %s, want 10.01", got.AdjustedPrice)
	}
	if calc.BaseCurrency() != DefaultBaseCurrency {
		t.Fatalf("BaseCurrency = %s, want %s", calc.BaseCurrency(), DefaultBaseCurrency)
	}
	// GB is not part of the synthetic table.
	if got := calc.Adjust(d("10"), "GB"); got.Adjusted {
		t.Fatalf("GB should not match synthetic table")
	}
}

func TestPassthrough(t *testing.T) {
	calc := NewCalculator(DefaultTable(), "USD")
	got := calc.Passthrough(d("18.00"))
	if !got.AdjustedPrice.Equal(d("18")) || got.CurrencyCode != "USD" || got.Adjusted {
		t.Fatalf("unexpected passthrough result: %+v", got)
	}
}
