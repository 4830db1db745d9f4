// internal/scores/memory.go
//
// In-memory implementation of the Store interface.
// Used in tests and with SCORES_BACKEND=memory, when nothing should
// outlive the process.
//
// Characteristics:
//   - Holds a private copy of the record; callers never share pointers with it.
//   - Concurrency-safe via RWMutex.

package scores

import (
	"context"
	"sync"
)

// MemoryStore is a Store holding a single record in process memory.
type MemoryStore struct {
	mu    sync.RWMutex // guards rec and saves
	rec   Record
	saves int
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rec: Default()}
}

// Load returns a copy of the held record.
func (m *MemoryStore) Load(ctx context.Context) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rec.Clone(), nil
}

// Save replaces the held record with a copy of r.
func (m *MemoryStore) Save(ctx context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = r.Clone()
	m.saves++
	return nil
}

// Saves reports how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
