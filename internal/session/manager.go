package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/geo"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/pricing"
)

var (
	ErrNotFound          = errors.New("session not found")
	ErrUnknownCountry    = errors.New("country is not available for regional pricing")
	ErrCountryUnresolved = errors.New("country could not be resolved")
)

// Session is the regional pricing state of one browsing session.
type Session struct {
	ID              string    `json:"session_id"`
	SelectedCountry string    `json:"selected_country,omitempty"`
	Enabled         bool      `json:"enabled"`
	CreatedAt       time.Time `json:"created_at"`
	LastSeen        time.Time `json:"last_seen"`
}

// CountryResolver is satisfied by *geo.Resolver.
type CountryResolver interface {
	ResolveCountry(ctx context.Context, ip string) geo.Location
}

type Config struct {
	IdleTTL        time.Duration
	ResolveTimeout time.Duration
}

type entry struct {
	session   Session
	resolving chan struct{} // closed when the in-flight resolution finishes
}

// Manager keeps sessions in memory. Each session is handed out by value so
// callers never share mutable state.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	resolver CountryResolver
	calc     *pricing.Calculator
	config   Config
	logger   *slog.Logger
	now      func() time.Time

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewManager(resolver CountryResolver, calc *pricing.Calculator, config Config, logger *slog.Logger) *Manager {
	if config.IdleTTL <= 0 {
		config.IdleTTL = 2 * time.Hour
	}
	if config.ResolveTimeout <= 0 {
		config.ResolveTimeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		sessions: make(map[string]*entry),
		resolver: resolver,
		calc:     calc,
		config:   config,
		logger:   logger,
		now:      time.Now,
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Create registers a new session with pricing disabled and starts detecting
// its country in the background.
func (m *Manager) Create(ctx context.Context, clientIP string) Session {
	now := m.now()
	s := Session{ID: uuid.NewString(), CreatedAt: now, LastSeen: now}

	m.mu.Lock()
	m.sessions[s.ID] = &entry{session: s}
	m.mu.Unlock()

	logCtx := logging.ContextWithSessionID(ctx, s.ID)
	m.logger.InfoContext(logCtx, "Regional pricing session created")

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		initCtx, cancel := context.WithTimeout(logging.ContextWithSessionID(m.baseCtx, s.ID), m.config.ResolveTimeout)
		defer cancel()
		if err := m.Initialize(initCtx, s.ID, clientIP); err != nil && !errors.Is(err, ErrNotFound) {
			m.logger.WarnContext(initCtx, "Background country detection did not complete", slog.Any("error", err))
		}
	}()
	return s
}

// Initialize resolves the session's country once. Concurrent callers wait for
// the in-flight resolution. A result that arrives after the session was
// deleted is dropped.
func (m *Manager) Initialize(ctx context.Context, id, clientIP string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	if e.session.SelectedCountry != "" {
		m.mu.Unlock()
		return nil
	}
	if wait := e.resolving; wait != nil {
		m.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return ctx.Err()
		}
		_, err := m.Get(id)
		return err
	}
	done := make(chan struct{})
	e.resolving = done
	m.mu.Unlock()

	loc := m.resolver.ResolveCountry(ctx, clientIP)

	m.mu.Lock()
	defer func() {
		m.mu.Unlock()
		close(done)
	}()
	e.resolving = nil
	if current, ok := m.sessions[id]; !ok || current != e {
		return ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.session.SelectedCountry == "" {
		e.session.SelectedCountry = strings.ToUpper(loc.CountryCode)
		m.logger.InfoContext(logging.ContextWithCountry(ctx, e.session.SelectedCountry), "Session country detected")
	}
	return nil
}

// SetEnabled toggles regional pricing. Enabling a session without a country
// resolves it first and only enables when that succeeds.
func (m *Manager) SetEnabled(ctx context.Context, id string, enabled bool, clientIP string) (Session, error) {
	if !enabled {
		return m.update(id, func(s *Session) error {
			s.Enabled = false
			return nil
		})
	}

	current, err := m.Get(id)
	if err != nil {
		return Session{}, err
	}
	if current.SelectedCountry == "" {
		if err := m.Initialize(ctx, id, clientIP); err != nil {
			return Session{}, err
		}
	}
	return m.update(id, func(s *Session) error {
		if s.SelectedCountry == "" {
			return ErrCountryUnresolved
		}
		s.Enabled = true
		return nil
	})
}

// SelectCountry records an explicit user choice of country.
func (m *Manager) SelectCountry(id, countryCode string) (Session, error) {
	profile, ok := m.calc.Table().Lookup(countryCode)
	if !ok {
		return Session{}, ErrUnknownCountry
	}
	return m.update(id, func(s *Session) error {
		s.SelectedCountry = profile.Code
		return nil
	})
}

// CurrentPricing prices basePrice for the session: adjusted when enabled with
// a selected country, passthrough otherwise.
func (m *Manager) CurrentPricing(id string, basePrice decimal.Decimal) (pricing.Result, error) {
	s, err := m.Get(id)
	if err != nil {
		return pricing.Result{}, err
	}
	return m.PriceFor(s, basePrice), nil
}

// PriceFor prices basePrice against a session snapshot.
func (m *Manager) PriceFor(s Session, basePrice decimal.Decimal) pricing.Result {
	if s.Enabled && s.SelectedCountry != "" {
		return m.calc.Adjust(basePrice, s.SelectedCountry)
	}
	return m.calc.Passthrough(basePrice)
}

// Get returns a copy of the session and marks it as seen.
func (m *Manager) Get(id string) (Session, error) {
	return m.update(id, func(*Session) error { return nil })
}

// Delete ends a session. An in-flight country detection for it is ignored.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Sweep removes sessions idle for longer than the configured TTL.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.sessions {
		if now.Sub(e.session.LastSeen) > m.config.IdleTTL {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close cancels background detections and waits for them to return.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}

func (m *Manager) update(id string, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	next := e.session
	if err := fn(&next); err != nil {
		return e.session, err
	}
	next.LastSeen = m.now()
	e.session = next
	return next, nil
}
