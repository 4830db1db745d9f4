// internal/scores/store.go
//
// Store is the persistence interface for the high-score record.
// Implementations:
//   - FileStore:   JSON file (default, high_scores.json).
//   - SQLiteStore: SQLite table, one row per difficulty.
//   - MemoryStore: process-local, nothing survives a restart.
//
// Open picks an implementation by backend name.

package scores

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// Store loads and saves the full record. Save overwrites whatever was there.
type Store interface {
	// Load returns the persisted record, or Default() if none exists yet.
	Load(ctx context.Context) (Record, error)

	// Save persists r in full.
	Save(ctx context.Context, r Record) error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options locate the backing storage for each backend.
type Options struct {
	Backend string
	File    string // JSON path
	DSN     string // SQLite path
}

// Open constructs the Store named by opts.Backend. The returned Closer
// releases any held resources and is never nil.
// Unknown backends fall back to JSON.
func Open(opts Options) (Store, io.Closer, error) {
	switch opts.Backend {
	case BackendSQLite:
		st, err := OpenSQLite(opts.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, st, nil
	case BackendMemory:
		return NewMemoryStore(), nopCloser{}, nil
	case BackendJSON, "":
	default:
		log.Warn().Str("backend", opts.Backend).Msg("unknown scores backend, using json")
	}
	return NewFileStore(opts.File), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
