package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mostrador-pos/cart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Manager opens, mutates and closes sale sessions. Mutations of one session
// run one at a time; different sessions proceed in parallel.
type Manager struct {
	store    Store
	taxRate  decimal.Decimal
	currency cart.Currency
	logger   *zap.Logger
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is held in Manager.locks only while someone uses or waits on it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store, taxRate decimal.Decimal, currency cart.Currency, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:    store,
		taxRate:  taxRate,
		currency: currency,
		logger:   logger,
		now:      time.Now,
		locks:    make(map[string]*sessionLock),
	}
}

// Start opens a new session with an empty cart.
func (m *Manager) Start(ctx context.Context, cashier string) (*Session, error) {
	c := cart.New(m.taxRate, m.currency)
	s := &Session{
		ID:        uuid.NewString(),
		Cashier:   cashier,
		StartedAt: m.now().UTC(),
		Cart:      c.State(),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	m.logger.Sugar().Infof("🛒 Session %s started by %q", s.ID, cashier)
	return s, nil
}

// Get loads a session and rebuilds its cart.
func (m *Manager) Get(ctx context.Context, id string) (*Session, *cart.Cart, error) {
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return s, m.open(s), nil
}

// Update applies fn to the session cart and saves the result. When fn
// returns an error nothing is saved.
func (m *Manager) Update(ctx context.Context, id string, fn func(c *cart.Cart) error) (*Session, *cart.Cart, error) {
	defer m.lock(id)()

	s, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	c := m.open(s)
	if err := fn(c); err != nil {
		return s, m.open(s), err
	}

	s.Cart = c.State()
	if err := m.store.Save(ctx, s); err != nil {
		return nil, nil, err
	}
	return s, c, nil
}

// Finish runs fn under the session lock and closes the session when fn
// succeeds. Checkout uses it so a cart cannot change while it is sold.
//
// Once fn succeeded its work is committed elsewhere, so failing to drop the
// session is only logged. The cart as fn left it is saved instead, which
// keeps a retry from selling the same cart twice.
func (m *Manager) Finish(ctx context.Context, id string, fn func(s *Session, c *cart.Cart) error) error {
	defer m.lock(id)()

	s, err := m.store.Load(ctx, id)
	if err != nil {
		return err
	}
	c := m.open(s)
	if err := fn(s, c); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.Sugar().Errorf("❌ Session %s finished but not deleted: %v", id, err)
		s.Cart = c.State()
		if err := m.store.Save(ctx, s); err != nil {
			m.logger.Sugar().Errorf("❌ Session %s finished but its cart was not cleared: %v", id, err)
		}
	}
	return nil
}

// Discard abandons a session and its cart.
func (m *Manager) Discard(ctx context.Context, id string) error {
	defer m.lock(id)()

	if _, err := m.store.Load(ctx, id); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.logger.Sugar().Infof("🗑️ Session %s discarded", id)
	return nil
}

func (m *Manager) open(s *Session) *cart.Cart {
	return cart.FromState(s.Cart, cart.WithLogger(m.logger))
}

// lock takes the mutex of session id and returns its release. The entry is
// dropped from the map when the last holder releases it, so unknown or
// expired ids leave nothing behind.
func (m *Manager) lock(id string) (unlock func()) {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
