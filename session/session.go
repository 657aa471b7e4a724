// Package session composes the per-visitor state objects (cart, wishlist,
// filters, toasts) and wires cart events to notifications. Nothing here is
// a global: each session owns its engines and can be reset independently,
// which is also what makes the engines testable in isolation.
package session

import (
	"fmt"
	"sync"
	"time"

	"phuler.GO/cart"
	"phuler.GO/core/kv"
	"phuler.GO/filter"
	"phuler.GO/toast"
	"phuler.GO/wishlist"
)

// Session is the state owned by one storefront visitor.
type Session struct {
	ID       string
	Cart     *cart.Engine
	Wishlist *wishlist.Engine
	Toasts   *toast.Queue

	mu       sync.Mutex
	filters  filter.State
	lastUsed time.Time
}

// New builds a session over the given durable store. Cart and wishlist are
// rehydrated from their namespaced keys; the toast queue observes cart adds.
func New(store kv.Store, id string) *Session {
	s := &Session{
		ID:       id,
		Cart:     cart.New(store, cartKey(id)),
		Wishlist: wishlist.New(store, wishlistKey(id)),
		Toasts:   toast.New(),
		filters:  filter.Default(),
		lastUsed: time.Now(),
	}
	s.Cart.Subscribe(func(ev cart.Event) {
		if ev.Kind == cart.EventItemAdded {
			s.Toasts.Push(ev.Item.Product.Name+" added to cart", "success", toast.DefaultDuration)
		}
	})
	return s
}

func cartKey(id string) string     { return "phuler:cart:" + id }
func wishlistKey(id string) string { return "phuler:wishlist:" + id }

// Filters returns a copy of the session's filter state.
func (s *Session) Filters() filter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters replaces the filter state. The caller (URL layer) is expected
// to guard with filter.CanonicalQuery before writing derived parameters
// back, so updates never loop.
func (s *Session) SetFilters(st filter.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = st
}

// UpdateFilters applies fn to the filter state under the session lock.
func (s *Session) UpdateFilters(fn func(*filter.State)) filter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.filters)
	return s.filters
}

// Touch records activity, deferring idle eviction.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
}

// IdleSince returns the last activity time.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Reset clears all session state including the durable records. Used by
// tests and by explicit "start over" flows.
func (s *Session) Reset() {
	s.Cart.ClearCart()
	s.Wishlist.Clear()
	s.Toasts.Stop()
	s.mu.Lock()
	s.filters = filter.Default()
	s.mu.Unlock()
}

// Manager hands out sessions by id, creating them on demand over a shared
// durable store. Sessions are in-memory; their cart/wishlist contents are
// durable, so an evicted session rehydrates on the next request.
type Manager struct {
	mu       sync.Mutex
	store    kv.Store
	sessions map[string]*Session
	counter  uint64
}

func NewManager(store kv.Store) *Manager {
	return &Manager{store: store, sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it when absent. An empty id gets
// a freshly generated one; callers should echo the id back to the client.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == "" {
		m.counter++
		id = fmt.Sprintf("anon-%d-%d", time.Now().UnixNano(), m.counter)
	}
	s, ok := m.sessions[id]
	if !ok {
		s = New(m.store, id)
		m.sessions[id] = s
	}
	s.Touch()
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle longer than maxIdle, stopping their toast
// timers. Durable cart/wishlist records are kept — eviction is a memory
// measure, not a data deletion. Returns the number evicted.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	evicted := 0
	for id, s := range m.sessions {
		if s.IdleSince().Before(cutoff) {
			s.Toasts.Stop()
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}
