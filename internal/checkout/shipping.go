package checkout

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ShippingRule sets Fee when Expression evaluates to true. Expressions see
// subtotal (double, base currency), country (string) and items (int).
type ShippingRule struct {
	Name       string
	Expression string
	Fee        decimal.Decimal
}

// DefaultShippingRules ships free from 75.00 and charges a flat 8.00 below.
var DefaultShippingRules = []ShippingRule{
	{Name: "free-over-75", Expression: "subtotal >= 75.0", Fee: decimal.Zero},
	{Name: "flat-rate", Expression: "true", Fee: decimal.RequireFromString("8.00")},
}

type compiledRule struct {
	rule    ShippingRule
	program cel.Program
}

// ShippingCalculator evaluates rules in order; the first match wins.
type ShippingCalculator struct {
	rules  []compiledRule
	logger *slog.Logger
}

func NewShippingCalculator(rules []ShippingRule, logger *slog.Logger) (*ShippingCalculator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	env, err := cel.NewEnv(
		cel.Variable("subtotal", cel.DoubleType),
		cel.Variable("country", cel.StringType),
		cel.Variable("items", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	sc := &ShippingCalculator{logger: logger}
	for _, r := range rules {
		if r.Fee.IsNegative() {
			return nil, fmt.Errorf("shipping rule %q: negative fee %s", r.Name, r.Fee)
		}
		ast, issues := env.Compile(r.Expression)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("shipping rule %q: compile error: %w", r.Name, issues.Err())
		}
		prog, err := env.Program(ast, cel.CostLimit(10000))
		if err != nil {
			return nil, fmt.Errorf("shipping rule %q: program creation error: %w", r.Name, err)
		}
		sc.rules = append(sc.rules, compiledRule{rule: r, program: prog})
	}
	return sc, nil
}

// Fee returns the base-currency shipping fee for an order, or zero when no
// rule matches. Rules that fail to evaluate or yield a non-boolean are skipped.
func (s *ShippingCalculator) Fee(subtotal decimal.Decimal, country string, items int) decimal.Decimal {
	sub, _ := subtotal.Float64()
	vars := map[string]any{
		"subtotal": sub,
		"country":  strings.ToUpper(country),
		"items":    int64(items),
	}
	for _, cr := range s.rules {
		out, _, err := cr.program.Eval(vars)
		if err != nil {
			s.logger.Warn("Shipping rule evaluation failed", slog.String("rule", cr.rule.Name), slog.Any("error", err))
			continue
		}
		if matched, ok := out.Value().(bool); ok && matched {
			return cr.rule.Fee
		}
	}
	return decimal.Zero
}

type shippingRuleFile struct {
	Rules []struct {
		Name       string `yaml:"name"`
		Expression string `yaml:"expression"`
		Fee        string `yaml:"fee"`
	} `yaml:"rules"`
}

// ParseShippingRules reads rules from YAML:
//
//	rules:
//	  - name: free-over-75
//	    expression: subtotal >= 75.0
//	    fee: "0"
func ParseShippingRules(data []byte) ([]ShippingRule, error) {
	var f shippingRuleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse shipping rules: %w", err)
	}
	rules := make([]ShippingRule, 0, len(f.Rules))
	for _, r := range f.Rules {
		fee, err := decimal.NewFromString(r.Fee)
		if err != nil {
			return nil, fmt.Errorf("shipping rule %q: invalid fee %q: %w", r.Name, r.Fee, err)
		}
		rules = append(rules, ShippingRule{Name: r.Name, Expression: r.Expression, Fee: fee})
	}
	return rules, nil
}

// LoadShippingRules returns DefaultShippingRules when path is empty.
func LoadShippingRules(path string) ([]ShippingRule, error) {
	if path == "" {
		return DefaultShippingRules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shipping rules %s: %w", path, err)
	}
	return ParseShippingRules(data)
}
