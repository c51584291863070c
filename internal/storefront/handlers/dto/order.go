package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/checkout"
	"github.com/thrillee/glowshop/internal/database"
)

type CheckoutRequest struct {
	SessionID       string                   `json:"session_id"`
	CustomerEmail   string                   `json:"customer_email" binding:"required,email"`
	ShippingAddress checkout.ShippingAddress `json:"shipping_address"`
}

type CheckoutResponse struct {
	OrderID         uuid.UUID    `json:"order_id"`
	PaymentIntentID string       `json:"payment_intent_id"`
	ClientSecret    string       `json:"client_secret"`
	Amount          Money        `json:"amount"`
	Country         string       `json:"country"`
	CountryCode     string       `json:"country_code"`
	Cart            CartResponse `json:"cart"`
}

type OrderItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	LineTotal Money  `json:"line_total"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	CountryCode     string              `json:"country_code"`
	Total           Money               `json:"total"`
	ShippingAddress json.RawMessage     `json:"shipping_address,omitempty"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

func NewOrderResponse(o database.Order, items []database.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		CountryCode:   o.CountryCode,
		Total:         NewMoney(o.ChargeAmount, o.ChargeCurrency),
		CreatedAt:     o.CreatedAt.Time,
	}
	if len(o.ShippingAddress) > 0 {
		resp.ShippingAddress = json.RawMessage(o.ShippingAddress)
	}
	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: NewMoney(item.ChargedUnitPrice, o.ChargeCurrency),
			LineTotal: NewMoney(item.LineTotal, o.ChargeCurrency),
		})
	}
	return resp
}

func NewCartResponse(q checkout.Quote) CartResponse {
	resp := CartResponse{
		Lines:       make([]CartLineResponse, 0, len(q.Lines)),
		Items:       q.Items,
		CountryCode: q.CountryCode,
		Subtotal:    NewMoney(q.Subtotal, q.CurrencyCode),
		Shipping:    NewMoney(q.Shipping, q.CurrencyCode),
		Total:       NewMoney(q.Amount, q.CurrencyCode),
	}
	for _, line := range q.Lines {
		resp.Lines = append(resp.Lines, CartLineResponse{
			ProductID: line.ProductID,
			Slug:      line.Slug,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: NewMoney(line.ChargedUnitPrice, q.CurrencyCode),
			LineTotal: NewMoney(line.LineTotal, q.CurrencyCode),
		})
	}
	return resp
}

// EmptyCart is the response for a cart without lines.
func EmptyCart(currencyCode string) CartResponse {
	zero := NewMoney(decimal.Zero, currencyCode)
	return CartResponse{Lines: []CartLineResponse{}, Subtotal: zero, Shipping: zero, Total: zero}
}
