// Package history keeps the undo/redo log for an editor.
//
// The log is a bounded sequence of Records, each a full snapshot of the
// content tree plus the selection at the time it was taken. A cursor marks
// the current record:
//
//	s := NewStack(300)
//	s.Push(Record{Snapshot: tree.Take(root), Position: pos})
//
//	// Undo/redo move the cursor and hand back the record to restore.
//	if r, ok := s.Undo(); ok {
//		root.ReplaceChildren(r.Snapshot)
//	}
//
// # Branching
//
// Pushing after an undo discards every record after the cursor, so a new
// edit starts a fresh branch. A push identical to the record under the
// cursor is dropped; records further ahead are not consulted.
//
// # Capacity
//
// Once the log holds more than the configured maximum, the oldest record
// is evicted and the cursor shifts down with it.
package history
