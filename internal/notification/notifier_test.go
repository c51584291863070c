package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmailNotifierSend(t *testing.T) {
	var got sendEmailRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = io.WriteString(w, `{"id":"email_1"}`)
	}))
	defer srv.Close()

	n := NewEmailNotifier(EmailConfig{BaseURL: srv.URL, APIKey: "re_test", From: "Glow <shop@example.com>", Timeout: time.Second}, quietLogger())
	err := n.Send(context.Background(), Message{To: "ada@example.com", Subject: "Hi", HTML: "<p>Hi</p>"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if auth != "Bearer re_test" {
		t.Errorf("Authorization = %q", auth)
	}
	if got.From != "Glow <shop@example.com>" || len(got.To) != 1 || got.To[0] != "ada@example.com" || got.Subject != "Hi" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestEmailNotifierFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewEmailNotifier(EmailConfig{BaseURL: srv.URL, Timeout: time.Second}, quietLogger())
	if err := n.Send(context.Background(), Message{To: "a@example.com"}); !errors.Is(err, ErrSendFailed) {
		t.Fatalf("error = %v, want ErrSendFailed", err)
	}
	if err := n.Send(context.Background(), Message{}); !errors.Is(err, ErrSendFailed) {
		t.Fatalf("missing recipient error = %v, want ErrSendFailed", err)
	}
}

func TestLogNotifierHonoursCancellation(t *testing.T) {
	n := NewLogNotifier(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Send(ctx, Message{To: "a@example.com"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if err := n.Send(context.Background(), Message{To: "a@example.com"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func sampleOrder() OrderSummary {
	return OrderSummary{
		OrderID:  "5f0c7d2a-1111-2222-3333-444455556666",
		Currency: "GBP",
		Lines: []OrderLine{
			{Name: "Vitamin C Serum", Quantity: 2, UnitPrice: decimal.RequireFromString("23.17"), LineTotal: decimal.RequireFromString("46.34")},
		},
		Shipping: decimal.RequireFromString("5.37"),
		Total:    decimal.RequireFromString("51.71"),
	}
}

func TestOrderConfirmation(t *testing.T) {
	msg, err := OrderConfirmation("ada@example.com", sampleOrder())
	if err != nil {
		t.Fatalf("OrderConfirmation: %v", err)
	}
	if msg.To != "ada@example.com" || msg.Subject != "Order confirmed (5f0c7d2a)" {
		t.Fatalf("unexpected message header %+v", msg)
	}
	for _, want := range []string{"Vitamin C Serum", "£46.34", "£5.37", "£51.71"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("html missing %q:\n%s", want, msg.HTML)
		}
	}
}

func TestOrderStatusChanged(t *testing.T) {
	for _, status := range []string{"shipped", "delivered", "cancelled"} {
		msg, err := OrderStatusChanged("ada@example.com", sampleOrder(), status)
		if err != nil {
			t.Fatalf("OrderStatusChanged(%s): %v", status, err)
		}
		if !strings.Contains(msg.HTML, "5f0c7d2a-1111") {
			t.Errorf("%s e-mail does not mention the order", status)
		}
	}
	if _, err := OrderStatusChanged("ada@example.com", sampleOrder(), "processing"); err == nil {
		t.Fatal("expected an error for a status without a template")
	}
}

func TestTemplatesEscapeProductNames(t *testing.T) {
	order := sampleOrder()
	order.Lines[0].Name = `<script>alert("x")</script>`
	msg, err := OrderConfirmation("ada@example.com", order)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Fatal("product names must be HTML escaped")
	}
}

func TestLowStockAlert(t *testing.T) {
	msg, err := LowStockAlert("ops@example.com", 10, []LowStockItem{{Slug: "night-cream", Name: "Night Cream", Stock: 3}})
	if err != nil {
		t.Fatalf("LowStockAlert: %v", err)
	}
	if !strings.Contains(msg.HTML, "Night Cream (night-cream): 3 left") {
		t.Fatalf("unexpected html:\n%s", msg.HTML)
	}
	if msg.Subject != "Low stock: 1 product(s) at or below 10 units" {
		t.Fatalf("subject = %q", msg.Subject)
	}
}
