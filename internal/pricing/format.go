package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"CAD": "CA$",
	"AUD": "A$",
	"CHF": "CHF ",
	"JPY": "¥",
	"KRW": "₩",
	"INR": "₹",
	"NGN": "₦",
	"GHS": "GH₵",
	"KES": "KSh ",
	"ZAR": "R",
	"BRL": "R$",
	"MXN": "MX$",
	"PHP": "₱",
	"IDR": "Rp ",
	"RUB": "₽",
}

// currencyLocales picks the digit grouping convention for a currency.
var currencyLocales = map[string]language.Tag{
	"USD": language.AmericanEnglish,
	"GBP": language.BritishEnglish,
	"EUR": language.German,
	"CAD": language.MustParse("en-CA"),
	"AUD": language.MustParse("en-AU"),
	"CHF": language.MustParse("de-CH"),
	"JPY": language.Japanese,
	"KRW": language.Korean,
	"INR": language.MustParse("en-IN"),
	"NGN": language.MustParse("en-NG"),
	"GHS": language.MustParse("en-GH"),
	"KES": language.MustParse("en-KE"),
	"ZAR": language.MustParse("en-ZA"),
	"BRL": language.BrazilianPortuguese,
	"MXN": language.MustParse("es-MX"),
	"PHP": language.MustParse("en-PH"),
	"IDR": language.Indonesian,
	"RUB": language.Russian,
}

// SymbolFor returns a short display glyph for a currency code, or the code itself.
func SymbolFor(currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code
}

// Format renders amount with exactly two fraction digits using the currency's
// locale conventions, prefixed by its symbol.
func Format(amount decimal.Decimal, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	tag, ok := currencyLocales[code]
	if !ok {
		tag = language.AmericanEnglish
	}
	p := message.NewPrinter(tag)
	value, _ := amount.Round(2).Float64()
	digits := p.Sprint(number.Decimal(value, number.Scale(2)))

	sym := SymbolFor(code)
	if sym == code {
		return code + " " + digits
	}
	return sym + digits
}
