package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/geo"
	"github.com/thrillee/glowshop/internal/payment"
	"github.com/thrillee/glowshop/internal/pricing"
	"github.com/thrillee/glowshop/internal/session"
	"github.com/thrillee/glowshop/pkg/codes"
	"github.com/thrillee/glowshop/pkg/errormapper"
)

// fakeStore implements the queries checkout uses; anything else panics via
// the nil embedded Querier.
type fakeStore struct {
	database.Querier

	cart        []database.CartLine
	orders      []database.CreateOrderParams
	items       []database.CreateOrderItemParams
	statuses    []database.UpdateOrderStatusParams
	intentIDs   map[uuid.UUID]string
	cartCleared bool
	failItems   bool
	committed   bool
}

func (f *fakeStore) ExecTx(_ context.Context, fn func(database.Querier) error) error {
	snapshotOrders, snapshotItems, snapshotCleared := len(f.orders), len(f.items), f.cartCleared
	if err := fn(f); err != nil {
		f.orders, f.items, f.cartCleared = f.orders[:snapshotOrders], f.items[:snapshotItems], snapshotCleared
		return err
	}
	f.committed = true
	return nil
}

func (f *fakeStore) ListCartLines(_ context.Context, _ string) ([]database.ListCartLinesRow, error) {
	return f.cart, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, arg database.CreateOrderParams) (database.Order, error) {
	f.orders = append(f.orders, arg)
	return database.Order{ID: arg.ID, Status: codes.OrderStatusPending, PaymentStatus: codes.PaymentStatusUnpaid}, nil
}

func (f *fakeStore) CreateOrderItem(_ context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error) {
	if f.failItems {
		return database.OrderItem{}, errors.New("insert failed")
	}
	f.items = append(f.items, arg)
	return database.OrderItem{OrderID: arg.OrderID}, nil
}

func (f *fakeStore) ClearCart(_ context.Context, _ string) error {
	f.cartCleared = true
	return nil
}

func (f *fakeStore) UpdateOrderStatus(_ context.Context, arg database.UpdateOrderStatusParams) (database.Order, error) {
	f.statuses = append(f.statuses, arg)
	return database.Order{ID: arg.ID, Status: arg.Status, PaymentStatus: arg.PaymentStatus}, nil
}

func (f *fakeStore) SetOrderPaymentIntent(_ context.Context, arg database.SetOrderPaymentIntentParams) error {
	if f.intentIDs == nil {
		f.intentIDs = map[uuid.UUID]string{}
	}
	f.intentIDs[arg.ID] = *arg.PaymentIntentID
	return nil
}

type fakePayments struct {
	requests []payment.IntentRequest
	err      error
}

func (f *fakePayments) CreatePaymentIntent(_ context.Context, req payment.IntentRequest) (payment.Intent, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return payment.Intent{}, f.err
	}
	return payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func (f *fakePayments) Name() string { return "fake" }

type staticResolver struct{ code string }

func (r staticResolver) ResolveCountry(context.Context, string) geo.Location {
	return geo.Location{CountryCode: r.code}
}

func cartLine(id int64, name, price string, qty, stock int32) database.CartLine {
	return database.CartLine{
		ProductID: id,
		Slug:      name,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		IsActive:  true,
		Quantity:  qty,
	}
}

type fixture struct {
	svc      *Service
	store    *fakeStore
	payments *fakePayments
	sessions *session.Manager
}

func newFixture(t *testing.T, cart ...database.CartLine) fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	calc := pricing.NewCalculator(pricing.DefaultTable(), pricing.DefaultBaseCurrency)
	sessions := session.NewManager(staticResolver{code: "US"}, calc, session.Config{ResolveTimeout: time.Second}, logger)
	t.Cleanup(sessions.Close)

	shipping, err := NewShippingCalculator(DefaultShippingRules, logger)
	if err != nil {
		t.Fatal(err)
	}
	store := &fakeStore{cart: cart}
	payments := &fakePayments{}
	return fixture{
		svc:      NewService(store, sessions, shipping, payments, "USD", logger),
		store:    store,
		payments: payments,
		sessions: sessions,
	}
}

// regionalSession returns a session with pricing enabled for country.
func (f fixture) regionalSession(t *testing.T, country string) string {
	t.Helper()
	s := f.sessions.Create(context.Background(), "10.0.0.1")
	if _, err := f.sessions.SelectCountry(s.ID, country); err != nil {
		t.Fatalf("SelectCountry: %v", err)
	}
	if _, err := f.sessions.SetEnabled(context.Background(), s.ID, true, ""); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	return s.ID
}

func validRequest(sessionID string) Request {
	return Request{
		SessionID:     sessionID,
		UserID:        "user-1",
		CustomerEmail: "ada@example.com",
		Address:       ShippingAddress{Name: "Ada", Line1: "1 High St", City: "London", PostalCode: "N1 1AA", Country: "GB"},
	}
}

func TestCreatePaymentIntentRecomputesRegionalAmount(t *testing.T) {
	f := newFixture(t,
		cartLine(1, "vitamin-c-serum", "34.50", 2, 10),
		cartLine(2, "night-cream", "22.00", 1, 5),
	)
	sid := f.regionalSession(t, "GB")

	res, err := f.svc.CreatePaymentIntent(context.Background(), validRequest(sid))
	if err != nil {
		t.Fatalf("CreatePaymentIntent: %v", err)
	}

	// 34.50 * 0.79 * 0.85 = 23.17 per unit, 22.00 -> 14.77; base subtotal 91 ships free.
	if len(f.payments.requests) != 1 {
		t.Fatalf("payment requests = %d, want 1", len(f.payments.requests))
	}
	req := f.payments.requests[0]
	if req.CurrencyCode != "GBP" || req.Amount.String() != "61.11" {
		t.Fatalf("charged %s %s, want GBP 61.11", req.Amount, req.CurrencyCode)
	}
	if req.IdempotencyKey != res.OrderID.String() || req.OrderID != res.OrderID.String() || req.UserID != "user-1" {
		t.Fatalf("intent request not keyed by the order: %+v", req)
	}

	if !f.store.committed || !f.store.cartCleared {
		t.Fatal("order placement should commit and clear the cart")
	}
	order := f.store.orders[0]
	if !order.Total.Equal(decimal.NewFromInt(91)) || !order.ShippingFee.IsZero() || order.BaseCurrency != "USD" {
		t.Fatalf("base totals wrong: %+v", order)
	}
	if order.CountryCode != "GB" || order.ChargeCurrency != "GBP" || order.ChargeAmount.String() != "61.11" {
		t.Fatalf("charge fields wrong: %+v", order)
	}
	if len(f.store.items) != 2 || f.store.items[0].ChargedUnitPrice.String() != "23.17" || f.store.items[0].LineTotal.String() != "46.34" {
		t.Fatalf("order items wrong: %+v", f.store.items)
	}
	if f.store.intentIDs[res.OrderID] != "pi_test" {
		t.Fatal("intent id should be stored on the order")
	}
	if res.ClientSecret != "pi_test_secret" || res.PaymentIntentID != "pi_test" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCreatePaymentIntentAdjustsShipping(t *testing.T) {
	f := newFixture(t, cartLine(2, "night-cream", "22.00", 1, 5))
	sid := f.regionalSession(t, "GB")

	res, err := f.svc.CreatePaymentIntent(context.Background(), validRequest(sid))
	if err != nil {
		t.Fatalf("CreatePaymentIntent: %v", err)
	}
	// 14.77 + 8.00 shipping adjusted to 5.37
	if res.Quote.Shipping.String() != "5.37" || res.Quote.Amount.String() != "20.14" {
		t.Fatalf("shipping %s amount %s, want 5.37 and 20.14", res.Quote.Shipping, res.Quote.Amount)
	}
	if !res.Quote.BaseShipping.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("base shipping = %s, want 8", res.Quote.BaseShipping)
	}
}

func TestCreatePaymentIntentZeroDecimalCurrency(t *testing.T) {
	f := newFixture(t, cartLine(3, "sheet-mask", "19.99", 3, 10))
	sid := f.regionalSession(t, "JP")

	res, err := f.svc.CreatePaymentIntent(context.Background(), validRequest(sid))
	if err != nil {
		t.Fatalf("CreatePaymentIntent: %v", err)
	}
	// 19.99 * 149.50 * 0.75 = 2241.38, charged as 2241 yen; 8.00 shipping -> 897.
	q := res.Quote
	if q.CurrencyCode != "JPY" || !q.Lines[0].ChargedUnitPrice.Equal(decimal.NewFromInt(2241)) {
		t.Fatalf("charged unit price %s %s, want 2241 JPY", q.Lines[0].ChargedUnitPrice, q.CurrencyCode)
	}
	if !q.Shipping.Equal(decimal.NewFromInt(897)) || !q.Amount.Equal(decimal.NewFromInt(7620)) {
		t.Fatalf("shipping %s amount %s, want 897 and 7620", q.Shipping, q.Amount)
	}

	req := f.payments.requests[0]
	minor, err := payment.ToMinorUnits(req.Amount, req.CurrencyCode)
	if err != nil {
		t.Fatal(err)
	}
	if minor != 7620 || !req.Amount.Equal(q.Amount) {
		t.Fatalf("processor asked for %d (%s), quote says %s", minor, req.Amount, q.Amount)
	}
	if order := f.store.orders[0]; !order.ChargeAmount.Equal(req.Amount) {
		t.Fatalf("order records %s but processor charges %s", order.ChargeAmount, req.Amount)
	}
	if !f.store.items[0].LineTotal.Equal(decimal.NewFromInt(6723)) {
		t.Fatalf("line total = %s, want 6723", f.store.items[0].LineTotal)
	}
}

func TestCreatePaymentIntentDisabledSessionPassesThrough(t *testing.T) {
	f := newFixture(t, cartLine(1, "vitamin-c-serum", "34.50", 2, 10))
	s := f.sessions.Create(context.Background(), "10.0.0.1")
	if _, err := f.sessions.SelectCountry(s.ID, "NG"); err != nil {
		t.Fatal(err)
	}

	res, err := f.svc.CreatePaymentIntent(context.Background(), validRequest(s.ID))
	if err != nil {
		t.Fatalf("CreatePaymentIntent: %v", err)
	}
	// 69.00 is under the free-shipping threshold
	if res.Quote.CurrencyCode != "USD" || res.Quote.Amount.String() != "77" {
		t.Fatalf("disabled session should charge base prices, got %s %s", res.Quote.Amount, res.Quote.CurrencyCode)
	}
}

func TestCreatePaymentIntentRejections(t *testing.T) {
	tests := []struct {
		name     string
		cart     []database.CartLine
		mutate   func(*Request)
		wantErr  error
		wantCode string
	}{
		{
			name:     "empty cart",
			wantErr:  ErrEmptyCart,
			wantCode: errormapper.ErrorCodeEmptyCart,
		},
		{
			name:     "insufficient stock",
			cart:     []database.CartLine{cartLine(1, "serum", "10", 3, 2)},
			wantErr:  ErrOutOfStock,
			wantCode: errormapper.ErrorCodeOutOfStock,
		},
		{
			name: "inactive product",
			cart: []database.CartLine{func() database.CartLine {
				l := cartLine(1, "serum", "10", 1, 5)
				l.IsActive = false
				return l
			}()},
			wantErr:  ErrProductUnavailable,
			wantCode: errormapper.ErrorCodeProductInactive,
		},
		{
			name:     "unknown session",
			cart:     []database.CartLine{cartLine(1, "serum", "10", 1, 5)},
			mutate:   func(r *Request) { r.SessionID = "missing" },
			wantErr:  ErrSessionNotFound,
			wantCode: errormapper.ErrorCodeSessionNotFound,
		},
		{
			name:     "bad email",
			cart:     []database.CartLine{cartLine(1, "serum", "10", 1, 5)},
			mutate:   func(r *Request) { r.CustomerEmail = "not-an-email" },
			wantErr:  ErrInvalidRequest,
			wantCode: errormapper.ErrorCodeValidationFailure,
		},
		{
			name:     "missing address",
			cart:     []database.CartLine{cartLine(1, "serum", "10", 1, 5)},
			mutate:   func(r *Request) { r.Address = ShippingAddress{} },
			wantErr:  ErrInvalidRequest,
			wantCode: errormapper.ErrorCodeValidationFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.cart...)
			req := validRequest(f.sessions.Create(context.Background(), "10.0.0.1").ID)
			if tt.mutate != nil {
				tt.mutate(&req)
			}
			_, err := f.svc.CreatePaymentIntent(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if code := errormapper.CodeOf(err); code != tt.wantCode {
				t.Fatalf("code = %s, want %s", code, tt.wantCode)
			}
			if len(f.payments.requests) != 0 || len(f.store.orders) != 0 {
				t.Fatal("rejected checkout must not create orders or intents")
			}
		})
	}
}

func TestCreatePaymentIntentProviderFailureCancelsOrder(t *testing.T) {
	f := newFixture(t, cartLine(1, "serum", "10", 1, 5))
	f.payments.err = payment.ErrPaymentFailed
	req := validRequest(f.sessions.Create(context.Background(), "10.0.0.1").ID)

	_, err := f.svc.CreatePaymentIntent(context.Background(), req)
	if !errors.Is(err, ErrPaymentFailed) || !errors.Is(err, payment.ErrPaymentFailed) {
		t.Fatalf("error = %v, want payment failure", err)
	}
	if errormapper.CodeOf(err) != errormapper.ErrorCodePaymentFailure {
		t.Fatalf("code = %s", errormapper.CodeOf(err))
	}
	if len(f.store.statuses) != 1 {
		t.Fatalf("order should be cancelled once, got %d updates", len(f.store.statuses))
	}
	st := f.store.statuses[0]
	if st.ID != f.store.orders[0].ID || st.Status != codes.OrderStatusCancelled || st.PaymentStatus != codes.PaymentStatusFailed {
		t.Fatalf("unexpected status update %+v", st)
	}
}

func TestCreatePaymentIntentRollsBackOnStoreError(t *testing.T) {
	f := newFixture(t, cartLine(1, "serum", "10", 1, 5))
	f.store.failItems = true
	req := validRequest(f.sessions.Create(context.Background(), "10.0.0.1").ID)

	if _, err := f.svc.CreatePaymentIntent(context.Background(), req); err == nil {
		t.Fatal("expected an error")
	}
	if f.store.committed || f.store.cartCleared || len(f.store.orders) != 0 {
		t.Fatal("failed placement must roll back")
	}
	if len(f.payments.requests) != 0 {
		t.Fatal("no payment intent should be created for a failed placement")
	}
}

func TestQuoteWithoutSession(t *testing.T) {
	f := newFixture(t, cartLine(1, "serum", "80", 1, 0))
	q, err := f.svc.Quote(context.Background(), "", "user-1", "US")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	// quotes do not enforce stock
	if q.CurrencyCode != "USD" || !q.Amount.Equal(decimal.NewFromInt(80)) || !q.Shipping.IsZero() {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestQuoteUnknownSessionPricesInBaseCurrency(t *testing.T) {
	f := newFixture(t, cartLine(1, "serum", "34.50", 2, 10))
	q, err := f.svc.Quote(context.Background(), "gone", "user-1", "US")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.CurrencyCode != "USD" || !q.Subtotal.Equal(decimal.RequireFromString("69")) {
		t.Fatalf("unexpected quote %+v", q)
	}

	// placing an order still needs a live session
	_, err = f.svc.CreatePaymentIntent(context.Background(), validRequest("gone"))
	if !errors.Is(err, ErrSessionNotFound) || errormapper.CodeOf(err) != errormapper.ErrorCodeSessionNotFound {
		t.Fatalf("CreatePaymentIntent error = %v, want ErrSessionNotFound", err)
	}
}
