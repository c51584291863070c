package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/logging"
)

var (
	ErrPaymentFailed = errors.New("payment provider request failed")
	ErrInvalidAmount = errors.New("invalid payment amount")
	ErrNotConfigured = errors.New("payment provider is not configured")
)

// IntentRequest is what checkout asks the processor to collect. Amount is in
// major units of CurrencyCode.
type IntentRequest struct {
	Amount         decimal.Decimal
	CurrencyCode   string
	OrderID        string
	UserID         string
	CustomerEmail  string
	IdempotencyKey string
}

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type Provider interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (Intent, error)
	Name() string
}

type ProviderConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// zeroDecimalCurrencies are charged in whole units.
var zeroDecimalCurrencies = map[string]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true, "JPY": true, "KMF": true,
	"KRW": true, "MGA": true, "PYG": true, "RWF": true, "UGX": true, "VND": true,
	"VUV": true, "XAF": true, "XOF": true, "XPF": true,
}

// CurrencyExponent is the number of minor-unit digits the processor charges
// currencyCode in.
func CurrencyExponent(currencyCode string) int32 {
	if zeroDecimalCurrencies[strings.ToUpper(currencyCode)] {
		return 0
	}
	return 2
}

// RoundToCurrency rounds a major-unit amount half up to the precision the
// processor charges in.
func RoundToCurrency(amount decimal.Decimal, currencyCode string) decimal.Decimal {
	return amount.Round(CurrencyExponent(currencyCode))
}

// ToMinorUnits converts a major-unit amount to the integer the processor
// expects, rounding half up at the currency's precision.
func ToMinorUnits(amount decimal.Decimal, currencyCode string) (int64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount)
	}
	return RoundToCurrency(amount, currencyCode).Shift(CurrencyExponent(currencyCode)).IntPart(), nil
}

// StripeProvider creates PaymentIntents through the Stripe REST API.
type StripeProvider struct {
	client    *http.Client
	baseURL   string
	secretKey string
	logger    *slog.Logger
}

func NewStripeProvider(config ProviderConfig, logger *slog.Logger) *StripeProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &StripeProvider{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
		secretKey: config.SecretKey,
		logger:    logger,
	}
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, in IntentRequest) (Intent, error) {
	if s.secretKey == "" {
		return Intent{}, ErrNotConfigured
	}
	minor, err := ToMinorUnits(in.Amount, in.CurrencyCode)
	if err != nil {
		return Intent{}, err
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(minor, 10))
	form.Set("currency", strings.ToLower(in.CurrencyCode))
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("metadata[order_id]", in.OrderID)
	form.Set("metadata[user_id]", in.UserID)
	if in.CustomerEmail != "" {
		form.Set("receipt_email", in.CustomerEmail)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return Intent{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if in.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", in.IdempotencyKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Intent{}, fmt.Errorf("%w: failed to read response: %v", ErrPaymentFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr stripeErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		return Intent{}, fmt.Errorf("%w: status %d: %s %s", ErrPaymentFailed, resp.StatusCode, apiErr.Error.Code, apiErr.Error.Message)
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return Intent{}, fmt.Errorf("%w: failed to parse response: %v", ErrPaymentFailed, err)
	}
	if intent.ID == "" {
		return Intent{}, fmt.Errorf("%w: response carried no intent id", ErrPaymentFailed)
	}

	s.logger.InfoContext(logging.ContextWithPaymentIntent(ctx, intent.ID), "Payment intent created",
		slog.Int64("amount_minor", minor),
		slog.String("currency", intent.Currency),
		slog.String("status", intent.Status),
	)
	return intent, nil
}

func (s *StripeProvider) Name() string { return "stripe" }

var _ Provider = (*StripeProvider)(nil)
