package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/pricing"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// OrderLine is one item as the customer was charged for it.
type OrderLine struct {
	Name      string
	Quantity  int32
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// OrderSummary is the data behind every order e-mail. Amounts are in
// Currency.
type OrderSummary struct {
	OrderID  string
	Currency string
	Lines    []OrderLine
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

func (o OrderSummary) Money(amount decimal.Decimal) string {
	return pricing.Format(amount, o.Currency)
}

type LowStockItem struct {
	Slug  string
	Name  string
	Stock int32
}

type lowStockData struct {
	Threshold int32
	Items     []LowStockItem
}

var statusSubjects = map[string]string{
	"shipped":   "Your order is on its way",
	"delivered": "Your order has been delivered",
	"cancelled": "Your order has been cancelled",
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func OrderConfirmation(to string, order OrderSummary) (Message, error) {
	html, err := render("order_confirmation.html", order)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Order confirmed (%s)", shortID(order.OrderID)),
		HTML:    html,
		Text:    fmt.Sprintf("Thank you for your order %s. Total charged: %s.", order.OrderID, order.Money(order.Total)),
	}, nil
}

// OrderStatusChanged renders the customer notice for shipped, delivered and
// cancelled orders.
func OrderStatusChanged(to string, order OrderSummary, status string) (Message, error) {
	subject, ok := statusSubjects[status]
	if !ok {
		return Message{}, fmt.Errorf("no e-mail for order status %q", status)
	}
	html, err := render("order_"+status+".html", order)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("%s (%s)", subject, shortID(order.OrderID)),
		HTML:    html,
	}, nil
}

func LowStockAlert(to string, threshold int32, items []LowStockItem) (Message, error) {
	html, err := render("low_stock.html", lowStockData{Threshold: threshold, Items: items})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Low stock: %d product(s) at or below %d units", len(items), threshold),
		HTML:    html,
	}, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
