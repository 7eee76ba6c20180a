// Package binding implements the in-memory mapping from input-event
// identifiers to keystroke sequences.
package binding

import (
	"sync"

	"github.com/choden-dev/ajazz-launchpad/internal/inputevent"
	"github.com/choden-dev/ajazz-launchpad/internal/keys"
)

// Executor is the capability that injects a keystroke sequence into the
// host OS.
type Executor interface {
	Execute(seq keys.Sequence) error
}

// Table is an in-memory mapping from input-event identifier to keystroke
// sequence.
type Table struct {
	mu      sync.RWMutex
	entries map[uint16]keys.Sequence
}

// New returns an empty binding table.
func New() *Table {
	return &Table{entries: make(map[uint16]keys.Sequence)}
}

// Set installs or replaces the binding for id. Setting the same id twice
// keeps the latest write; there is never more than one row per id.
func (t *Table) Set(id uint16, seq keys.Sequence) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = seq
}

// Get returns the bound sequence for id, if any.
func (t *Table) Get(id uint16) (keys.Sequence, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	seq, ok := t.entries[id]
	return seq, ok
}

// All returns every bound entry in unspecified order.
func (t *Table) All() map[uint16]keys.Sequence {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[uint16]keys.Sequence, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

// OverrideMerge inserts every entry from other into t, replacing any
// existing entry with the same key. Entries unique to t are retained.
// Merging the same table twice is idempotent.
func (t *Table) OverrideMerge(other *Table) {
	other.mu.RLock()
	entries := make(map[uint16]keys.Sequence, len(other.entries))
	for k, v := range other.entries {
		entries[k] = v
	}
	other.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	for k, v := range entries {
		t.entries[k] = v
	}
}

// Execute invokes executor with the sequence bound to event, if any.
// inputevent.Unknown is always ignored, regardless of any binding.
func (t *Table) Execute(event inputevent.InputEvent, executor Executor) error {
	if event.Kind == inputevent.KindUnknown {
		return nil
	}
	id, err := event.ID()
	if err != nil {
		return nil
	}
	seq, ok := t.Get(id)
	if !ok {
		return nil
	}
	return executor.Execute(seq)
}
