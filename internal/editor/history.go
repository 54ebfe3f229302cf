package editor

import (
	"github.com/dshills/caretjar/internal/engine/history"
	"github.com/dshills/caretjar/internal/tree"
)

// RecordHistory stores the current content and selection as an undo
// point. Nothing is recorded while the surface is unfocused or when the
// state matches the record under the history cursor.
func (e *Editor) RecordHistory() {
	e.recordHistory()
}

func (e *Editor) recordHistory() {
	if !e.focused {
		return
	}
	pos, ok := e.mustSave()
	if !ok {
		return
	}
	rec := history.Record{Snapshot: tree.Take(e.surface.Root()), Position: pos}
	if e.history.Push(rec) {
		e.Debug("history record %d at %s", e.history.At(), pos)
	}
}

func (e *Editor) debouncedHistory(ev *KeyEvent) {
	if !e.opts.History || !shouldRecord(ev) {
		return
	}
	e.recordHistory()
	e.recording = false
}

// Undo restores the previous record. It reports false when there is none.
func (e *Editor) Undo() bool {
	rec, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.apply(rec)
	return true
}

// Redo restores the next record. It reports false when there is none.
func (e *Editor) Redo() bool {
	rec, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.apply(rec)
	return true
}

func (e *Editor) apply(rec history.Record) {
	e.surface.Root().ReplaceChildren(rec.Snapshot)
	e.Restore(rec.Position)
}

// History returns the editor's history stack.
func (e *Editor) History() *history.Stack { return e.history }
