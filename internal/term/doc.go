// Package term hosts an editor in a tcell screen.
//
// The Host owns a tree.Surface, renders it with syntax colours taken from
// the highlighter's chroma style, and translates tcell events into editor
// lifecycle calls. Debounced editor and plugin callbacks are posted back to
// the event loop as interrupt events, so all editor work happens on the
// goroutine running Run.
package term
