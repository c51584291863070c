package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/payment"
	"github.com/thrillee/glowshop/internal/pricing"
	"github.com/thrillee/glowshop/internal/session"
	"github.com/thrillee/glowshop/pkg/codes"
	"github.com/thrillee/glowshop/pkg/errormapper"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOutOfStock         = errors.New("insufficient stock")
	ErrProductUnavailable = errors.New("product is no longer available")
	ErrSessionNotFound    = errors.New("pricing session not found")
	ErrInvalidRequest     = errors.New("invalid checkout request")
	ErrPaymentFailed      = errors.New("payment could not be started")
)

// SessionPricer is satisfied by *session.Manager.
type SessionPricer interface {
	Get(id string) (session.Session, error)
	PriceFor(s session.Session, basePrice decimal.Decimal) pricing.Result
}

type ShippingAddress struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Request struct {
	SessionID     string
	UserID        string
	CustomerEmail string
	Address       ShippingAddress
}

// PricedLine is a cart line priced for the session. UnitPrice is the catalog
// price in the base currency; the Charged* fields are in Quote.CurrencyCode.
type PricedLine struct {
	ProductID        int64           `json:"product_id"`
	Slug             string          `json:"slug"`
	Name             string          `json:"name"`
	Quantity         int32           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ChargedUnitPrice decimal.Decimal `json:"charged_unit_price"`
	LineTotal        decimal.Decimal `json:"line_total"`
}

// Quote is the server's authoritative view of what a cart costs.
type Quote struct {
	Lines         []PricedLine    `json:"lines"`
	Items         int             `json:"items"`
	BaseCurrency  string          `json:"base_currency"`
	BaseSubtotal  decimal.Decimal `json:"base_subtotal"`
	BaseShipping  decimal.Decimal `json:"base_shipping"`
	CurrencyCode  string          `json:"currency_code"`
	CountryCode   string          `json:"country_code"`
	Country       string          `json:"country"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	PPPMultiplier decimal.Decimal `json:"ppp_multiplier"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Shipping      decimal.Decimal `json:"shipping"`
	Amount        decimal.Decimal `json:"amount"`
}

type Result struct {
	OrderID         uuid.UUID `json:"order_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	ClientSecret    string    `json:"client_secret"`
	Quote           Quote     `json:"quote"`
}

type Service struct {
	store        database.Store
	sessions     SessionPricer
	shipping     *ShippingCalculator
	payments     payment.Provider
	baseCurrency string
	logger       *slog.Logger
	newID        func() uuid.UUID
}

func NewService(store database.Store, sessions SessionPricer, shipping *ShippingCalculator, payments payment.Provider, baseCurrency string, logger *slog.Logger) *Service {
	if baseCurrency == "" {
		baseCurrency = pricing.DefaultBaseCurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:        store,
		sessions:     sessions,
		shipping:     shipping,
		payments:     payments,
		baseCurrency: baseCurrency,
		logger:       logger,
		newID:        uuid.New,
	}
}

// Quote prices the user's current cart for a session without placing an
// order. An empty or unknown sessionID prices in the base currency, the same
// way the catalog drops display prices for it.
func (s *Service) Quote(ctx context.Context, sessionID, userID, country string) (Quote, error) {
	sess, err := s.lookupSession(sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		s.logger.DebugContext(logging.ContextWithSessionID(ctx, sessionID), "Quoting unknown pricing session in base currency")
		sess, err = session.Session{}, nil
	}
	if err != nil {
		return Quote{}, err
	}
	lines, err := s.store.ListCartLines(ctx, userID)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.price(sess, lines, country, false)
}

// CreatePaymentIntent places a pending order for the user's cart and asks the
// payment provider to collect the amount computed here. Nothing the client
// sends besides identity, e-mail and address affects the charge.
func (s *Service) CreatePaymentIntent(ctx context.Context, req Request) (Result, error) {
	logCtx := logging.ContextWithSessionID(logging.ContextWithUserID(ctx, req.UserID), req.SessionID)

	if err := validateRequest(req); err != nil {
		return Result{}, err
	}
	if req.SessionID == "" {
		return Result{}, errormapper.Wrap(errormapper.ErrorCodeSessionNotFound, "pricing session is required", ErrSessionNotFound)
	}
	sess, err := s.lookupSession(req.SessionID)
	if err != nil {
		return Result{}, err
	}

	lines, err := s.store.ListCartLines(logCtx, req.UserID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load cart: %w", err)
	}
	quote, err := s.price(sess, lines, req.Address.Country, true)
	if err != nil {
		return Result{}, err
	}

	orderID := s.newID()
	logCtx = logging.ContextWithOrderID(logCtx, orderID.String())
	address, err := json.Marshal(req.Address)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode shipping address: %w", err)
	}

	err = s.store.ExecTx(logCtx, func(q database.Querier) error {
		if _, err := q.CreateOrder(logCtx, database.CreateOrderParams{
			ID:              orderID,
			UserID:          req.UserID,
			CustomerEmail:   req.CustomerEmail,
			BaseCurrency:    quote.BaseCurrency,
			Subtotal:        quote.BaseSubtotal,
			ShippingFee:     quote.BaseShipping,
			Total:           quote.BaseSubtotal.Add(quote.BaseShipping),
			ChargeCurrency:  quote.CurrencyCode,
			ChargeAmount:    quote.Amount,
			CountryCode:     quote.CountryCode,
			ExchangeRate:    quote.ExchangeRate,
			PppMultiplier:   quote.PPPMultiplier,
			ShippingAddress: address,
		}); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for _, line := range quote.Lines {
			if _, err := q.CreateOrderItem(logCtx, database.CreateOrderItemParams{
				OrderID:          orderID,
				ProductID:        line.ProductID,
				ProductName:      line.Name,
				Quantity:         line.Quantity,
				UnitPrice:        line.UnitPrice,
				ChargedUnitPrice: line.ChargedUnitPrice,
				LineTotal:        line.LineTotal,
			}); err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
		if err := q.ClearCart(logCtx, req.UserID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(logCtx, "Order placement failed", slog.Any("error", err))
		return Result{}, err
	}

	s.logger.InfoContext(logCtx, "Order placed, creating payment intent",
		slog.String("amount", quote.Amount.String()),
		slog.String("currency", quote.CurrencyCode),
		slog.String("country_code", quote.CountryCode),
	)

	intent, err := s.payments.CreatePaymentIntent(logCtx, payment.IntentRequest{
		Amount:         quote.Amount,
		CurrencyCode:   quote.CurrencyCode,
		OrderID:        orderID.String(),
		UserID:         req.UserID,
		CustomerEmail:  req.CustomerEmail,
		IdempotencyKey: orderID.String(),
	})
	if err != nil {
		s.logger.ErrorContext(logCtx, "Payment intent creation failed, cancelling order", slog.Any("error", err))
		if _, upErr := s.store.UpdateOrderStatus(logCtx, database.UpdateOrderStatusParams{
			ID:            orderID,
			Status:        codes.OrderStatusCancelled,
			PaymentStatus: codes.PaymentStatusFailed,
		}); upErr != nil {
			s.logger.ErrorContext(logCtx, "Failed to cancel order after payment failure", slog.Any("error", upErr))
		}
		return Result{}, errormapper.Wrap(errormapper.ErrorCodePaymentFailure, "payment could not be started", fmt.Errorf("%w: %w", ErrPaymentFailed, err))
	}

	intentID := intent.ID
	if err := s.store.SetOrderPaymentIntent(logCtx, database.SetOrderPaymentIntentParams{ID: orderID, PaymentIntentID: &intentID}); err != nil {
		// The webhook carries the order id in metadata, so the order can
		// still be matched without the stored intent id.
		s.logger.ErrorContext(logCtx, "Failed to store payment intent on order", slog.Any("error", err))
	}

	return Result{
		OrderID:         orderID,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Quote:           quote,
	}, nil
}

func (s *Service) lookupSession(id string) (session.Session, error) {
	if id == "" {
		return session.Session{}, nil
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return session.Session{}, errormapper.Wrap(errormapper.ErrorCodeSessionNotFound, "pricing session not found", ErrSessionNotFound)
		}
		return session.Session{}, err
	}
	return sess, nil
}

// price applies the session's regional pricing to every line and to the
// shipping fee. Unit prices and shipping are rounded to the precision the
// processor charges in, and line totals are those unit prices times quantity.
func (s *Service) price(sess session.Session, lines []database.CartLine, country string, strict bool) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, errormapper.Wrap(errormapper.ErrorCodeEmptyCart, "cart is empty", ErrEmptyCart)
	}

	q := Quote{
		BaseCurrency: s.baseCurrency,
		BaseSubtotal: decimal.Zero,
		Subtotal:     decimal.Zero,
	}
	for _, line := range lines {
		if strict && !line.IsActive {
			return Quote{}, errormapper.Wrap(errormapper.ErrorCodeProductInactive, fmt.Sprintf("%s is no longer available", line.Name), ErrProductUnavailable)
		}
		if strict && line.Stock < line.Quantity {
			return Quote{}, errormapper.Wrap(errormapper.ErrorCodeOutOfStock, fmt.Sprintf("not enough stock for %s", line.Name), ErrOutOfStock)
		}
		qty := decimal.NewFromInt32(line.Quantity)
		unit := s.sessions.PriceFor(sess, line.Price)
		charged := payment.RoundToCurrency(unit.AdjustedPrice, unit.CurrencyCode)
		lineTotal := charged.Mul(qty)

		q.Lines = append(q.Lines, PricedLine{
			ProductID:        line.ProductID,
			Slug:             line.Slug,
			Name:             line.Name,
			Quantity:         line.Quantity,
			UnitPrice:        line.Price,
			ChargedUnitPrice: charged,
			LineTotal:        lineTotal,
		})
		q.Items += int(line.Quantity)
		q.BaseSubtotal = q.BaseSubtotal.Add(line.Price.Mul(qty))
		q.Subtotal = q.Subtotal.Add(lineTotal)
	}

	q.BaseShipping = s.shipping.Fee(q.BaseSubtotal, country, q.Items)
	ship := s.sessions.PriceFor(sess, q.BaseShipping)
	q.Shipping = payment.RoundToCurrency(ship.AdjustedPrice, ship.CurrencyCode)
	q.CurrencyCode = ship.CurrencyCode
	q.Country = ship.Country
	q.CountryCode = ship.Country
	if ship.Adjusted {
		q.CountryCode = strings.ToUpper(sess.SelectedCountry)
	}
	q.ExchangeRate = ship.ExchangeRate
	q.PPPMultiplier = ship.PPPMultiplier
	q.Amount = q.Subtotal.Add(q.Shipping)
	return q, nil
}

func validateRequest(req Request) error {
	var problems []string
	if req.UserID == "" {
		problems = append(problems, "user is required")
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		problems = append(problems, "valid customer email is required")
	}
	if strings.TrimSpace(req.Address.Line1) == "" || strings.TrimSpace(req.Address.City) == "" {
		problems = append(problems, "shipping address line1 and city are required")
	}
	if len(strings.TrimSpace(req.Address.Country)) != 2 {
		problems = append(problems, "shipping address country must be a 2-letter code")
	}
	if len(problems) > 0 {
		return errormapper.Wrap(errormapper.ErrorCodeValidationFailure, strings.Join(problems, "; "), ErrInvalidRequest)
	}
	return nil
}
