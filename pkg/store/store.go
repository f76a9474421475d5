// Package store provides the ephemeral conversation store used for
// response chaining. Entries map response IDs to reconstructable
// conversation turns, are write-once, and expire after a fixed retention
// window. The store is process-scoped and never persisted.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/graphgate/graphgate/pkg/graph"
)

// DefaultRetention is the age after which stored conversations become
// unreachable.
const DefaultRetention = 3600 * time.Second

// ErrConflict is returned when a conversation with the given ID already
// exists. Entries are write-once.
var ErrConflict = errors.New("conversation already stored")

// entry holds one stored conversation and its creation time.
type entry struct {
	turns     []graph.Turn
	createdAt time.Time
}

// Conversations is an in-memory conversation store with time-based
// eviction and an optional capacity bound.
//
// All methods are safe for concurrent use.
type Conversations struct {
	mu        sync.RWMutex
	entries   map[string]entry
	retention time.Duration
	maxSize   int // 0 = unlimited

	now func() time.Time // swapped in tests
}

// Option configures a Conversations store.
type Option func(*Conversations)

// WithRetention overrides the retention window.
func WithRetention(d time.Duration) Option {
	return func(s *Conversations) { s.retention = d }
}

// WithMaxSize bounds the number of stored conversations. When the bound is
// reached, the oldest entry is evicted on the next Put.
func WithMaxSize(n int) Option {
	return func(s *Conversations) { s.maxSize = n }
}

// New creates an empty conversation store.
func New(opts ...Option) *Conversations {
	s := &Conversations{
		entries:   make(map[string]entry),
		retention: DefaultRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put inserts a conversation under the given response ID, stamped with the
// current time. Entries are write-once; a duplicate ID returns ErrConflict.
// A sweep of expired entries runs opportunistically after every insert.
func (s *Conversations) Put(id string, turns []graph.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[id]; exists {
		return ErrConflict
	}

	if s.maxSize > 0 && len(s.entries) >= s.maxSize {
		s.evictOldestLocked()
	}

	stored := make([]graph.Turn, len(turns))
	copy(stored, turns)
	s.entries[id] = entry{turns: stored, createdAt: s.now()}

	s.sweepLocked()
	return nil
}

// Get retrieves the turns stored under id. A missing or evicted ID is not
// an error: it yields ok=false, which callers treat as "no prior context".
func (s *Conversations) Get(id string) ([]graph.Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.createdAt) > s.retention {
		// Expired but not yet swept.
		return nil, false
	}

	turns := make([]graph.Turn, len(e.turns))
	copy(turns, e.turns)
	return turns, true
}

// Delete removes a stored conversation. Removing an absent ID is a no-op.
func (s *Conversations) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Sweep removes all entries older than the retention window and returns
// the number removed.
func (s *Conversations) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

// Len returns the number of stored conversations, including any expired
// entries not yet swept.
func (s *Conversations) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Conversations) sweepLocked() int {
	cutoff := s.now().Add(-s.retention)
	removed := 0
	for id, e := range s.entries {
		if e.createdAt.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// evictOldestLocked removes the entry with the earliest creation time.
func (s *Conversations) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range s.entries {
		if oldestID == "" || e.createdAt.Before(oldest) {
			oldestID = id
			oldest = e.createdAt
		}
	}
	if oldestID != "" {
		delete(s.entries, oldestID)
	}
}
