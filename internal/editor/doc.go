// Package editor turns an editable content tree into a coordinated text
// editor.
//
// An Editor owns no content. It is handed a Surface (a root node plus a
// selection adapter) and reacts to lifecycle events the host delivers:
// KeyDown, KeyUp, Click, FocusIn, Blur, Paste, Cut, Scroll and Resize. Each
// event is first offered to the action dispatcher, where the system handler
// and plugins may abort it; otherwise the editor applies its own editing
// behavior (indentation, auto-closing pairs, tab handling, undo/redo) and
// schedules debounced highlight, history and update work.
//
// # Threading
//
// Event handlers and debounced callbacks run under one event lock, so a
// host may deliver events from its own goroutine while timers fire on
// others. Public operations such as UpdateCode or Undo do not take the
// lock: call them from inside a handler, a plugin callback, a function
// passed to Do, or a host using WithPost to keep every callback on one
// goroutine.
//
// # Key defaults
//
// When KeyDown returns without the event's default being prevented, the
// host applies its normal key behavior. Press bundles KeyDown, that default
// behavior for tree-backed surfaces, and KeyUp.
package editor
