package pricing

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var defaultCountriesYAML []byte

var (
	ErrInvalidProfile   = errors.New("invalid country pricing profile")
	ErrDuplicateCountry = errors.New("duplicate active country code")
)

// Profile is one row of the country reference table.
type Profile struct {
	Code          string          `json:"code"`
	DisplayName   string          `json:"display_name"`
	CurrencyCode  string          `json:"currency_code"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`  // local units per 1 base unit
	PPPMultiplier decimal.Decimal `json:"ppp_multiplier"` // purchasing-power adjustment
	Active        bool            `json:"active"`
}

// Table is an immutable country reference table. Safe for concurrent use.
type Table struct {
	profiles []Profile
	byCode   map[string]int // upper-cased code -> index into profiles (active only)
}

// NewTable validates profiles and builds a lookup table preserving declaration order.
func NewTable(profiles []Profile) (*Table, error) {
	t := &Table{
		profiles: make([]Profile, 0, len(profiles)),
		byCode:   make(map[string]int, len(profiles)),
	}
	for i, p := range profiles {
		p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
		p.CurrencyCode = strings.ToUpper(strings.TrimSpace(p.CurrencyCode))
		if err := validateProfile(p); err != nil {
			return nil, fmt.Errorf("profile #%d (%q): %w", i, p.Code, err)
		}
		t.profiles = append(t.profiles, p)
		if !p.Active {
			continue
		}
		if _, exists := t.byCode[p.Code]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCountry, p.Code)
		}
		t.byCode[p.Code] = len(t.profiles) - 1
	}
	return t, nil
}

func validateProfile(p Profile) error {
	if len(p.Code) != 2 {
		return fmt.Errorf("%w: country code must have 2 letters", ErrInvalidProfile)
	}
	if len(p.CurrencyCode) != 3 {
		return fmt.Errorf("%w: currency code must have 3 letters", ErrInvalidProfile)
	}
	if !p.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", ErrInvalidProfile)
	}
	if !p.PPPMultiplier.IsPositive() {
		return fmt.Errorf("%w: ppp multiplier must be positive", ErrInvalidProfile)
	}
	return nil
}

// Lookup finds the active profile for a country code, ignoring case.
func (t *Table) Lookup(code string) (Profile, bool) {
	if t == nil {
		return Profile{}, false
	}
	idx, ok := t.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Profile{}, false
	}
	return t.profiles[idx], true
}

// ListActive returns the active profiles in declaration order.
func (t *Table) ListActive() []Profile {
	if t == nil {
		return nil
	}
	active := make([]Profile, 0, len(t.byCode))
	for _, p := range t.profiles {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

type tableFile struct {
	Countries []struct {
		Code          string `yaml:"code"`
		Name          string `yaml:"name"`
		Currency      string `yaml:"currency"`
		ExchangeRate  string `yaml:"exchange_rate"`
		PPPMultiplier string `yaml:"ppp_multiplier"`
		Active        bool   `yaml:"active"`
	} `yaml:"countries"`
}

// ParseTable builds a table from a YAML document.
func ParseTable(data []byte) (*Table, error) {
	var doc tableFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse country table: %w", err)
	}
	profiles := make([]Profile, 0, len(doc.Countries))
	for _, c := range doc.Countries {
		rate, err := decimal.NewFromString(c.ExchangeRate)
		if err != nil {
			return nil, fmt.Errorf("%w: exchange rate for %s: %v", ErrInvalidProfile, c.Code, err)
		}
		multiplier, err := decimal.NewFromString(c.PPPMultiplier)
		if err != nil {
			return nil, fmt.Errorf("%w: ppp multiplier for %s: %v", ErrInvalidProfile, c.Code, err)
		}
		profiles = append(profiles, Profile{
			Code:          c.Code,
			DisplayName:   c.Name,
			CurrencyCode:  c.Currency,
			ExchangeRate:  rate,
			PPPMultiplier: multiplier,
			Active:        c.Active,
		})
	}
	return NewTable(profiles)
}

// LoadTable reads a YAML country table from disk.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read country table %s: %w", path, err)
	}
	return ParseTable(data)
}

// DefaultTable returns the compiled-in country table.
func DefaultTable() *Table {
	t, err := ParseTable(defaultCountriesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded country table is invalid: %v", err))
	}
	return t
}
