package history

import (
	"sync"

	"github.com/dshills/caretjar/internal/engine/position"
	"github.com/dshills/caretjar/internal/tree"
)

// DefaultMaxEntries is the capacity used when none is configured.
const DefaultMaxEntries = 300

// Record is one recoverable editor state.
type Record struct {
	Snapshot tree.Snapshot
	Position position.Position
}

// same reports whether two records describe the same state. Direction is
// not compared.
func (r Record) same(o Record) bool {
	return r.Snapshot.Equal(o.Snapshot) && r.Position.SameRange(o.Position)
}

// Stack is a bounded undo/redo log with a movable cursor.
type Stack struct {
	mu sync.Mutex

	records []Record
	at      int

	maxEntries int
}

// NewStack creates an empty stack holding at most maxEntries records.
func NewStack(maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Stack{at: -1, maxEntries: maxEntries}
}

// Push appends r after the cursor and moves the cursor onto it.
// Records after the cursor are discarded. Push reports false when r matches
// the record under the cursor and nothing was stored.
func (s *Stack) Push(r Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.at >= 0 && s.records[s.at].same(r) {
		return false
	}

	s.at++
	s.records = append(s.records[:s.at], r)

	s.evictLocked()
	return true
}

// evictLocked drops the oldest records until the capacity holds.
func (s *Stack) evictLocked() {
	for len(s.records) > s.maxEntries {
		s.records[0] = Record{}
		s.records = s.records[1:]
		s.at--
	}
	if s.at < -1 {
		s.at = -1
	}
}

// Undo moves the cursor back one record and returns it.
// It reports false when the cursor is already at the oldest record or the
// stack is empty.
func (s *Stack) Undo() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return Record{}, false
	}
	s.at--
	if s.at < 0 {
		s.at = 0
		return Record{}, false
	}
	return s.records[s.at], true
}

// Redo moves the cursor forward one record and returns it.
// It reports false when the cursor is already at the newest record or the
// stack is empty.
func (s *Stack) Redo() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return Record{}, false
	}
	s.at++
	if s.at >= len(s.records) {
		s.at = len(s.records) - 1
		return Record{}, false
	}
	return s.records[s.at], true
}

// Current returns the record under the cursor.
func (s *Stack) Current() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.at < 0 {
		return Record{}, false
	}
	return s.records[s.at], true
}

// CanUndo returns true if a record exists before the cursor.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.at > 0
}

// CanRedo returns true if a record exists after the cursor.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.at >= 0 && s.at < len(s.records)-1
}

// Len returns the number of stored records.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// At returns the cursor index, or -1 when the stack is empty.
func (s *Stack) At() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.at
}

// Records returns a copy of the stored records, oldest first.
func (s *Stack) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Clear removes all records.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.at = -1
}

// SetMaxEntries changes the capacity.
// If the current stack is larger, oldest records are removed.
func (s *Stack) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxEntries = max
	s.evictLocked()
	if s.at < 0 && len(s.records) > 0 {
		s.at = 0
	}
}

// MaxEntries returns the capacity.
func (s *Stack) MaxEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxEntries
}
