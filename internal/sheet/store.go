package sheet

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store keeps one OrderSheet per session in memory. Sheets are created on
// first access and dropped once they have been idle past the ttl; nothing is
// ever written to disk.
type Store struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*storeEntry

	taxRate decimal.Decimal
	seed    bool
	ttl     time.Duration
	now     func() time.Time
}

type storeEntry struct {
	mu       sync.Mutex
	sheet    *OrderSheet
	lastSeen time.Time
}

// NewStore builds a session store seeding new sheets with the given tax rate.
// A ttl of zero disables idle eviction.
func NewStore(taxRate decimal.Decimal, seed bool, ttl time.Duration) *Store {
	return &Store{
		entries: make(map[uuid.UUID]*storeEntry),
		taxRate: taxRate,
		seed:    seed,
		ttl:     ttl,
		now:     time.Now,
	}
}

// With runs fn against the session's sheet under that session's lock,
// creating the sheet on first use. Expired idle sessions are pruned on the
// way in.
func (st *Store) With(sessionID uuid.UUID, fn func(*OrderSheet) error) error {
	st.mu.Lock()
	st.pruneLocked()
	entry, ok := st.entries[sessionID]
	if !ok {
		entry = &storeEntry{sheet: NewOrderSheet(st.taxRate, st.seed)}
		st.entries[sessionID] = entry
	}
	entry.lastSeen = st.now()
	st.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.sheet)
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

func (st *Store) pruneLocked() {
	if st.ttl <= 0 {
		return
	}
	cutoff := st.now().Add(-st.ttl)
	for id, entry := range st.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(st.entries, id)
		}
	}
}
