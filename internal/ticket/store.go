// Package ticket implements the quote ticket store: a bounded, TTL-limited
// in-memory map of opaque ids to priced routes. A ticket id doubles as a
// bearer credential for the swap handoff, so ids are random UUIDs, never
// counters.
package ticket

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	"github.com/clawswap/clawswap-api/internal/mayan"
	"github.com/clawswap/clawswap-api/internal/quote"
	"github.com/google/uuid"
)

const (
	DefaultTTL        = 5 * time.Minute
	DefaultMaxEntries = 10000

	sweepInterval = time.Minute
)

// Ticket binds a reservation id to the route selected for a validated swap
// intent. Read-only after insertion.
type Ticket struct {
	ID        string
	Route     mayan.Route
	Intent    quote.SwapIntent
	FeeBps    int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store is a concurrency-safe bounded cache with per-entry expiry. When full
// it evicts the single oldest-inserted entry (insertion order, not access
// order): correctness only requires bounding size, not optimizing hit rate.
// Reads never extend a ticket's lifetime. An expired ticket is
// indistinguishable from one that never existed.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*list.Element
	order   *list.List // front = oldest insert

	ttl time.Duration
	max int
	now func() time.Time

	expired atomic.Uint64
	evicted atomic.Uint64

	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a store with the given TTL and capacity, applying the
// defaults for non-positive values, and starts a background sweeper that
// reclaims expired entries. Close the store at shutdown.
func NewStore(ttl time.Duration, maxEntries int) *Store {
	s := newStore(ttl, maxEntries, time.Now)
	go s.sweep()
	return s
}

func newStore(ttl time.Duration, maxEntries int, now func() time.Time) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		ttl:     ttl,
		max:     maxEntries,
		now:     now,
		stop:    make(chan struct{}),
	}
}

// Put inserts a fresh ticket for the route and returns its id and deadline.
// If the store is at capacity the oldest-inserted entry is evicted first, so
// the entry count never exceeds the configured maximum.
func (s *Store) Put(route mayan.Route, intent quote.SwapIntent, feeBps int) (string, time.Time) {
	now := s.now()
	t := &Ticket{
		ID:        uuid.NewString(),
		Route:     route,
		Intent:    intent,
		FeeBps:    feeBps,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.entries) >= s.max {
		oldest := s.order.Front()
		if oldest == nil {
			break
		}
		s.removeLocked(oldest)
		s.evicted.Add(1)
	}

	s.entries[t.ID] = s.order.PushBack(t)
	return t.ID, t.ExpiresAt
}

// Get returns the ticket for id, or false if it is absent, expired or
// evicted. Expiry is checked at read time and the TTL is never refreshed.
func (s *Store) Get(id string) (*Ticket, bool) {
	s.mu.RLock()
	el, ok := s.entries[id]
	var t *Ticket
	if ok {
		t = el.Value.(*Ticket)
	}
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !s.now().Before(t.ExpiresAt) {
		s.expired.Add(1)
		return nil, false
	}
	return t, true
}

// Len reports the number of entries currently held, including ones that have
// expired but not yet been swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats exposes internal counters for observability. Callers of Get can
// never tell expired from evicted; these counters are the only place the
// distinction exists.
type Stats struct {
	Size    int
	Expired uint64
	Evicted uint64
}

func (s *Store) Stats() Stats {
	return Stats{
		Size:    s.Len(),
		Expired: s.expired.Load(),
		Evicted: s.evicted.Load(),
	}
}

// Close stops the background sweeper. Safe to call more than once.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) removeLocked(el *list.Element) {
	t := s.order.Remove(el).(*Ticket)
	delete(s.entries, t.ID)
}

// sweep periodically drops expired entries so abandoned tickets do not
// occupy capacity until eviction. Get already rejects expired tickets, so
// sweeping is purely a memory concern.
func (s *Store) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.removeExpired()
		}
	}
}

func (s *Store) removeExpired() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		if t := el.Value.(*Ticket); !now.Before(t.ExpiresAt) {
			s.removeLocked(el)
		}
		el = next
	}
}
