package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     int64
	}{
		{"67.15", "GBP", 6715},
		{"20000.00", "NGN", 2000000},
		{"0.00", "USD", 0},
		{"19.995", "USD", 2000},
		{"1500", "JPY", 1500},
		{"1500.5", "jpy", 1501},
		{"12000", "KRW", 12000},
	}
	for _, tt := range tests {
		got, err := ToMinorUnits(decimal.RequireFromString(tt.amount), tt.currency)
		if err != nil {
			t.Fatalf("ToMinorUnits(%s, %s): %v", tt.amount, tt.currency, err)
		}
		if got != tt.want {
			t.Errorf("ToMinorUnits(%s, %s) = %d, want %d", tt.amount, tt.currency, got, tt.want)
		}
	}

	if _, err := ToMinorUnits(decimal.RequireFromString("-1"), "USD"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative amount error = %v, want ErrInvalidAmount", err)
	}
}

func TestRoundToCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"2241.38", "JPY", "2241"},
		{"6724.50", "KRW", "6725"},
		{"67.154", "GBP", "67.15"},
		{"67.155", "gbp", "67.16"},
	}
	for _, tt := range tests {
		got := RoundToCurrency(decimal.RequireFromString(tt.amount), tt.currency)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("RoundToCurrency(%s, %s) = %s, want %s", tt.amount, tt.currency, got, tt.want)
		}
	}
	if CurrencyExponent("JPY") != 0 || CurrencyExponent("NGN") != 2 {
		t.Fatal("unexpected currency exponents")
	}
}

func newTestStripe(url, key string) *StripeProvider {
	return NewStripeProvider(ProviderConfig{BaseURL: url, SecretKey: key, Timeout: time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStripeCreatePaymentIntent(t *testing.T) {
	type captured struct {
		path, auth, idem, contentType string
		form                          map[string]string
	}
	got := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		form := map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		got <- captured{
			path:        r.URL.Path,
			auth:        r.Header.Get("Authorization"),
			idem:        r.Header.Get("Idempotency-Key"),
			contentType: r.Header.Get("Content-Type"),
			form:        form,
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"pi_123","client_secret":"pi_123_secret_abc","status":"requires_payment_method","amount":6715,"currency":"gbp"}`)
	}))
	defer srv.Close()

	p := newTestStripe(srv.URL, "sk_test_123")
	intent, err := p.CreatePaymentIntent(context.Background(), IntentRequest{
		Amount:         decimal.RequireFromString("67.15"),
		CurrencyCode:   "GBP",
		OrderID:        "order-1",
		UserID:         "user-1",
		CustomerEmail:  "ada@example.com",
		IdempotencyKey: "order-1",
	})
	if err != nil {
		t.Fatalf("CreatePaymentIntent: %v", err)
	}
	if intent.ID != "pi_123" || intent.ClientSecret != "pi_123_secret_abc" || intent.Amount != 6715 {
		t.Fatalf("unexpected intent %+v", intent)
	}

	req := <-got
	if req.path != "/v1/payment_intents" {
		t.Errorf("path = %q", req.path)
	}
	if req.auth != "Bearer sk_test_123" {
		t.Errorf("Authorization = %q", req.auth)
	}
	if req.idem != "order-1" {
		t.Errorf("Idempotency-Key = %q", req.idem)
	}
	if req.contentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", req.contentType)
	}
	want := map[string]string{
		"amount":             "6715",
		"currency":           "gbp",
		"metadata[order_id]": "order-1",
		"metadata[user_id]":  "user-1",
		"receipt_email":      "ada@example.com",
	}
	for k, v := range want {
		if req.form[k] != v {
			t.Errorf("form[%s] = %q, want %q", k, req.form[k], v)
		}
	}
}

func TestStripeCreatePaymentIntentFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = io.WriteString(w, `{"error":{"type":"card_error","code":"amount_too_small","message":"Amount must be at least 50 cents"}}`)
	}))
	defer srv.Close()

	req := IntentRequest{Amount: decimal.RequireFromString("0.10"), CurrencyCode: "USD", OrderID: "o"}

	if _, err := newTestStripe(srv.URL, "sk_test").CreatePaymentIntent(context.Background(), req); !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("error = %v, want ErrPaymentFailed", err)
	}
	if _, err := newTestStripe(srv.URL, "").CreatePaymentIntent(context.Background(), req); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}

	srv.Close()
	if _, err := newTestStripe(srv.URL, "sk_test").CreatePaymentIntent(context.Background(), req); !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("unreachable provider error = %v, want ErrPaymentFailed", err)
	}
}
