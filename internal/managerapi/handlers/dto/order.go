package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/database"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

type OrderItemResponse struct {
	ProductID        int64           `json:"product_id"`
	Name             string          `json:"name"`
	Quantity         int32           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ChargedUnitPrice decimal.Decimal `json:"charged_unit_price"`
	LineTotal        decimal.Decimal `json:"line_total"`
}

// OrderResponse is the back office view of an order: base currency totals
// next to what the customer was charged.
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          string              `json:"user_id"`
	CustomerEmail   string              `json:"customer_email"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	PaymentIntentID *string             `json:"payment_intent_id"`
	CountryCode     string              `json:"country_code"`
	Subtotal        Money               `json:"subtotal"`
	ShippingFee     Money               `json:"shipping_fee"`
	Total           Money               `json:"total"`
	Charged         Money               `json:"charged"`
	ExchangeRate    decimal.Decimal     `json:"exchange_rate"`
	PPPMultiplier   decimal.Decimal     `json:"ppp_multiplier"`
	ShippingAddress json.RawMessage     `json:"shipping_address,omitempty"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	StockShortfalls []StockShortfall    `json:"stock_shortfalls,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func NewOrderResponse(o database.Order, items []database.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		CustomerEmail:   o.CustomerEmail,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		PaymentIntentID: o.PaymentIntentID,
		CountryCode:     o.CountryCode,
		Subtotal:        NewMoney(o.Subtotal, o.BaseCurrency),
		ShippingFee:     NewMoney(o.ShippingFee, o.BaseCurrency),
		Total:           NewMoney(o.Total, o.BaseCurrency),
		Charged:         NewMoney(o.ChargeAmount, o.ChargeCurrency),
		ExchangeRate:    o.ExchangeRate,
		PPPMultiplier:   o.PppMultiplier,
		CreatedAt:       o.CreatedAt.Time,
		UpdatedAt:       o.UpdatedAt.Time,
	}
	if json.Valid(o.ShippingAddress) {
		resp.ShippingAddress = json.RawMessage(o.ShippingAddress)
	}
	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID:        item.ProductID,
			Name:             item.ProductName,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			ChargedUnitPrice: item.ChargedUnitPrice,
			LineTotal:        item.LineTotal,
		})
	}
	return resp
}

// StockShortfall is a paid line that stock could not cover when payment
// arrived.
type StockShortfall struct {
	ProductID  int64     `json:"product_id"`
	Quantity   int32     `json:"quantity"`
	Available  int32     `json:"available"`
	RecordedAt time.Time `json:"recorded_at"`
}

func NewStockShortfalls(rows []database.OrderStockShortfall) []StockShortfall {
	out := make([]StockShortfall, 0, len(rows))
	for _, r := range rows {
		out = append(out, StockShortfall{
			ProductID:  r.ProductID,
			Quantity:   r.Quantity,
			Available:  r.Available,
			RecordedAt: r.CreatedAt.Time,
		})
	}
	return out
}

type UpdateOrderStatusResponse struct {
	Order   OrderResponse `json:"order"`
	Changed bool          `json:"changed"`
}
