// Package marginal implements the sensitivity analysis: the store of
// user-edited per-stat deltas and the analyzer that ranks stats by the
// damage gain one incremental change yields.
package marginal

import (
	"math"

	"github.com/udisondev/zzzcalc/internal/data"
	"github.com/udisondev/zzzcalc/internal/model"
)

// Store holds the user-edited sensitivity-table deltas for one session. It
// is owned by the calling application and passed into Analyze explicitly;
// nothing here is process-global. Store is not safe for concurrent use.
type Store struct {
	applied map[string]model.Delta
}

// NewStore returns an empty override store.
func NewStore() *Store {
	return &Store{applied: make(map[string]model.Delta)}
}

// Get returns the override for a stat key, if one is set.
func (s *Store) Get(key string) (model.Delta, bool) {
	d, ok := s.applied[key]
	return d, ok
}

// Set records an override. Keys outside the stat registry are ignored.
// A non-finite value removes the entry instead (the way clearing the
// sensitivity-table cell does).
func (s *Store) Set(key string, kind data.StatKind, value float64) {
	if _, ok := data.StatByKey(key); !ok {
		return
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		delete(s.applied, key)
		return
	}
	s.applied[key] = model.Delta{Kind: kind, Value: value}
}

// Clear removes every override.
func (s *Store) Clear() {
	clear(s.applied)
}

// Snapshot returns a serialization-safe copy: known stat keys, valid kinds,
// and finite values only. This is the shape the persistence and export
// collaborators consume.
func (s *Store) Snapshot() map[string]model.Delta {
	return model.FilterOverrides(s.applied)
}

// Load replaces the store contents from a decoded document map. Unknown
// stat keys and malformed entries are dropped silently.
func (s *Store) Load(src map[string]model.Delta) {
	s.applied = model.FilterOverrides(src)
}

// Len reports the number of overrides currently set.
func (s *Store) Len() int {
	return len(s.applied)
}
