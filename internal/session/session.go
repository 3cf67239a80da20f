// Package session keeps per-guest browsing state (cart plus checkout
// record) in memory for the lifetime of a browsing session. Nothing is
// persisted: an idle session is swept away and an abandoned cart is simply
// gone, matching the product's no-backend-order-pipeline design.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/orofoodhouse/oro-orders/internal/domain/cart"
	"github.com/orofoodhouse/oro-orders/internal/domain/checkout"
)

// ErrNotFound is returned when a session id is unknown or already swept.
var ErrNotFound = errors.New("session not found")

// Session is one guest's browsing state. The embedded mutex serializes
// access: the cart store and checkout record themselves are plain
// single-owner data structures.
type Session struct {
	mu sync.Mutex

	ID       string
	Cart     *cart.Store
	Checkout *checkout.Session

	lastSeen time.Time
}

// Do runs fn while holding the session lock and refreshes the idle timer.
func (s *Session) Do(fn func(c *cart.Store, ck *checkout.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return fn(s.Cart, s.Checkout)
}

// Manager owns all live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager creates a Manager that considers sessions idle after ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create starts a new session with an empty cart and a checkout at the
// Details step.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:       uuid.New().String(),
		Cart:     cart.NewStore(),
		Checkout: checkout.NewSession(),
		lastSeen: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete drops a session. Unknown ids are a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// sweep removes sessions idle longer than the TTL.
func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastSeen)
		s.mu.Unlock()
		if idle >= m.ttl {
			delete(m.sessions, id)
		}
	}
}

// StartSweeper launches a background goroutine evicting idle sessions at
// the given interval. It stops when ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				m.sweep(now)
			}
		}
	}()
}
