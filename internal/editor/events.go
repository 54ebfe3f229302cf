package editor

import "strings"

// KeyEvent describes one key press or release.
type KeyEvent struct {
	// Key is the key value: a single character for printable keys, or a
	// name such as "Enter", "Tab", "Backspace" or "ArrowLeft".
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool
	// Composing is set while an input method is composing text.
	Composing bool

	prevented bool
	stopped   bool
}

// PreventDefault suppresses the host's default handling of the key.
func (k *KeyEvent) PreventDefault() { k.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (k *KeyEvent) DefaultPrevented() bool { return k.prevented }

// StopPropagation marks the event as consumed by the editor.
func (k *KeyEvent) StopPropagation() { k.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (k *KeyEvent) PropagationStopped() bool { return k.stopped }

// code returns the upper-cased key value.
func (k *KeyEvent) code() string { return strings.ToUpper(k.Key) }

func isCtrl(ev *KeyEvent) bool { return ev.Meta || ev.Ctrl }

func isUndo(ev *KeyEvent) bool {
	return isCtrl(ev) && !ev.Shift && ev.code() == "Z"
}

func isRedo(ev *KeyEvent) bool {
	if !isCtrl(ev) {
		return false
	}
	code := ev.code()
	return (ev.Shift && code == "Z") || (!ev.Shift && code == "Y")
}

func isCopy(ev *KeyEvent) bool {
	return isCtrl(ev) && ev.code() == "C"
}

// shouldRecord reports whether a key may change content and so deserves a
// history record.
func shouldRecord(ev *KeyEvent) bool {
	return !isUndo(ev) &&
		!isRedo(ev) &&
		ev.Key != "Meta" &&
		ev.Key != "Control" &&
		ev.Key != "Alt" &&
		!strings.HasPrefix(ev.Key, "Arrow")
}

// ClipboardEvent carries clipboard text for paste and cut.
type ClipboardEvent struct {
	data      string
	prevented bool
}

// NewClipboardEvent creates an event holding text, the clipboard content
// for a paste.
func NewClipboardEvent(text string) *ClipboardEvent {
	return &ClipboardEvent{data: text}
}

// Data returns the plain-text clipboard content.
func (c *ClipboardEvent) Data() string { return c.data }

// SetData replaces the plain-text clipboard content.
func (c *ClipboardEvent) SetData(text string) { c.data = text }

// PreventDefault suppresses the host's default clipboard handling.
func (c *ClipboardEvent) PreventDefault() { c.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (c *ClipboardEvent) DefaultPrevented() bool { return c.prevented }
