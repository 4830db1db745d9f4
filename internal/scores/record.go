// internal/scores/record.go
//
// Record is the persisted best-attempt table: one optional positive integer
// per difficulty. A nil value means "no score yet". Lower is better.

package scores

import (
	"errors"
	"fmt"

	"github.com/robalobadob/guess/internal/game"
)

// ErrInvalidRecord is returned when a stored value is not a positive integer.
// SQLiteStore also returns it for a row naming an unknown difficulty;
// FileStore ignores unknown JSON keys and only checks easy/medium/hard.
var ErrInvalidRecord = errors.New("invalid score record")

// Record maps each difficulty to the fewest attempts used to win it.
// Field order matches the persisted layout.
type Record struct {
	Easy   *int `json:"easy"`
	Medium *int `json:"medium"`
	Hard   *int `json:"hard"`
}

// Default returns a record with every difficulty unset.
func Default() Record { return Record{} }

func (r *Record) slot(d game.Difficulty) **int {
	switch d {
	case game.Easy:
		return &r.Easy
	case game.Medium:
		return &r.Medium
	case game.Hard:
		return &r.Hard
	}
	return nil
}

// Best returns the stored attempts for d and whether one is set.
func (r Record) Best(d game.Difficulty) (int, bool) {
	p := r.slot(d)
	if p == nil || *p == nil {
		return 0, false
	}
	return **p, true
}

// Set stores attempts for d. Unknown difficulties are ignored.
func (r *Record) Set(d game.Difficulty, attempts int) {
	if p := r.slot(d); p != nil {
		v := attempts
		*p = &v
	}
}

// Clear unsets d.
func (r *Record) Clear(d game.Difficulty) {
	if p := r.slot(d); p != nil {
		*p = nil
	}
}

// Submit records a win. It overwrites the best for d only when none is set
// or attempts is strictly lower, and reports whether it did.
func (r *Record) Submit(d game.Difficulty, attempts int) bool {
	if attempts < 1 || !d.Valid() {
		return false
	}
	if best, ok := r.Best(d); ok && attempts >= best {
		return false
	}
	r.Set(d, attempts)
	return true
}

// Clone returns a deep copy that shares no pointers with r.
func (r Record) Clone() Record {
	var out Record
	for _, d := range game.Difficulties() {
		if v, ok := r.Best(d); ok {
			out.Set(d, v)
		}
	}
	return out
}

// Equal reports field-for-field equality.
func (r Record) Equal(o Record) bool {
	for _, d := range game.Difficulties() {
		a, aok := r.Best(d)
		b, bok := o.Best(d)
		if aok != bok || a != b {
			return false
		}
	}
	return true
}

// Validate checks that every set value is a positive integer.
func (r Record) Validate() error {
	for _, d := range game.Difficulties() {
		if v, ok := r.Best(d); ok && v < 1 {
			return fmt.Errorf("%w: %s = %d", ErrInvalidRecord, d, v)
		}
	}
	return nil
}
