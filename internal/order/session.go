package order

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/antojopicante/pedidos/internal/catalog"
)

// Session is one customer's order in progress. Every mutation takes the
// session lock, so each reducer operation is a single atomic state
// transition even when UI events arrive in quick succession.
type Session struct {
	ID string

	mu       sync.Mutex
	items    []Item
	customer Customer
	touched  time.Time
}

// Dispatch applies one reducer operation to the item list.
func (s *Session) Dispatch(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = Apply(s.items, op)
	s.touched = time.Now()
}

// SetCustomer replaces the customer context. When the service is not home
// delivery the zone selection is cleared, mirroring how the storefront
// resets the zone picker.
func (s *Session) SetCustomer(c Customer) {
	if c.Service != ServiceDelivery {
		c.Zone = nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = c
	s.touched = time.Now()
}

// State returns a consistent copy of the current items and customer context.
func (s *Session) State() ([]Item, Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.items))
	for i, it := range s.items {
		items[i] = it.clone()
	}
	return items, s.customer
}

// HasItem reports whether an item for the product is present, so the UI can
// clear its configuration focus when an item disappears.
func (s *Session) HasItem(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.items, productID) >= 0
}

// Snapshot computes the derived order view from a consistent copy of the
// session state.
func (s *Session) Snapshot(reg *catalog.Registry) Snapshot {
	items, cust := s.State()
	return BuildSnapshot(reg, items, cust)
}

func (s *Session) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// Store keeps active sessions in memory. Orders are never persisted; an
// abandoned session simply expires.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates a session store whose sessions expire after ttl of
// inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new empty session and returns it.
func (st *Store) Create() *Session {
	s := &Session{
		ID:      uuid.New().String(),
		touched: st.now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given id, or false when it does not exist
// or has expired.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if st.ttl > 0 && st.now().Sub(s.lastTouched()) > st.ttl {
		st.mu.Lock()
		delete(st.sessions, id)
		st.mu.Unlock()
		return nil, false
	}
	return s, true
}

// Len returns the number of sessions currently held, expired or not.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// sweep removes sessions idle past the TTL.
func (st *Store) sweep(now time.Time) {
	if st.ttl <= 0 {
		return
	}

	st.mu.RLock()
	var expired []string
	for id, s := range st.sessions {
		if now.Sub(s.lastTouched()) > st.ttl {
			expired = append(expired, id)
		}
	}
	st.mu.RUnlock()

	if len(expired) == 0 {
		return
	}
	st.mu.Lock()
	for _, id := range expired {
		delete(st.sessions, id)
	}
	st.mu.Unlock()
}

// StartSweeper launches a background goroutine that evicts expired sessions
// at the given interval until ctx is cancelled.
func (st *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				st.sweep(now)
			}
		}
	}()
}
