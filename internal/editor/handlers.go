package editor

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/caretjar/internal/dispatcher"
	"github.com/dshills/caretjar/internal/engine/position"
)

// KeyDown handles a key press before the host applies its default. An
// aborted keydown action prevents the default and skips every editing
// behavior.
func (e *Editor) KeyDown(ev *KeyEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	if e.Dispatch(dispatcher.ActionKeyDown, ev) {
		ev.PreventDefault()
		return
	}
	if ev.DefaultPrevented() {
		return
	}

	e.prev = e.ToString()
	if e.opts.PreserveIndent {
		e.handleNewLine(ev)
	} else {
		e.mode.FixNewLine(e, ev)
	}
	if e.opts.CatchTab {
		e.handleTab(ev)
	}
	if e.opts.AddClosing {
		e.handleSelfClosing(ev)
	}
	if e.opts.History {
		e.handleUndoRedo(ev)
		if shouldRecord(ev) && !e.recording {
			e.recordHistory()
			e.recording = true
		}
	}
	e.mode.AfterKeyDown(e, ev)
}

// KeyUp handles a key release. Changed text schedules a highlight; every
// release schedules history and update work.
func (e *Editor) KeyUp(ev *KeyEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	if e.Dispatch(dispatcher.ActionKeyUp, ev) {
		ev.PreventDefault()
		return
	}
	if ev.DefaultPrevented() || ev.Composing {
		return
	}

	code := e.ToString()
	if e.prev != code {
		e.highlightCh.Call(struct{}{})
	}
	e.historyCh.Call(ev)
	e.updateCh.Call(code)
}

// Click reports a pointer click.
func (e *Editor) Click(event any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.Dispatch(dispatcher.ActionClick, event)
}

// FocusIn reports that the surface gained focus. History is only recorded
// while focused.
func (e *Editor) FocusIn(event any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.Dispatch(dispatcher.ActionFocus, event)
	e.focused = true
}

// Blur reports that the surface lost focus.
func (e *Editor) Blur(event any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.Dispatch(dispatcher.ActionBlur, event)
	e.focused = false
}

// Scroll reports that the surface scrolled.
func (e *Editor) Scroll(event any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.Dispatch(dispatcher.ActionScroll, event)
}

// Resize reports that the surface changed size.
func (e *Editor) Resize() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.Dispatch(dispatcher.ActionResize, nil)
}

// Paste inserts the clipboard text at the selection. The states before and
// after the paste are both recorded, whatever the paste action returns.
func (e *Editor) Paste(ev *ClipboardEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.recordHistory()
	e.handlePaste(ev)
	e.Dispatch(dispatcher.ActionPaste, ev)
	e.recordHistory()
	e.updateCh.Call(e.ToString())
}

// Cut moves the selected text to the clipboard event. The states before and
// after the cut are both recorded.
func (e *Editor) Cut(ev *ClipboardEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.recordHistory()
	e.handleCut(ev)
	e.Dispatch(dispatcher.ActionCut, ev)
	e.recordHistory()
	e.updateCh.Call(e.ToString())
}

func (e *Editor) handlePaste(ev *ClipboardEvent) {
	if ev.DefaultPrevented() {
		return
	}
	ev.PreventDefault()
	if e.checkReadonly() {
		return
	}

	text := strings.ReplaceAll(ev.Data(), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if e.opts.NormalizeUnicode {
		text = norm.NFC.String(text)
	}

	pos, ok := e.mustSave()
	if !ok {
		return
	}
	e.insert(text)
	e.doHighlight(nil)
	at := pos.Min() + len([]rune(text))
	e.Restore(position.Position{Start: at, End: at, Dir: position.DirBackward})
}

func (e *Editor) handleCut(ev *ClipboardEvent) {
	pos, ok := e.mustSave()
	if !ok {
		return
	}
	ev.SetData(e.surface.SelectedText())
	ev.PreventDefault()
	if e.checkReadonly() {
		return
	}
	e.surface.DeleteSelection()
	e.doHighlight(nil)
	at := pos.Min()
	e.Restore(position.Position{Start: at, End: at, Dir: position.DirBackward})
}

// Press delivers a complete key stroke: KeyDown, the default editing
// behavior for the key unless it was prevented, and KeyUp. The default
// inserts printable characters and newlines and deletes backward on
// Backspace.
func (e *Editor) Press(ev *KeyEvent) {
	e.KeyDown(ev)

	e.mu.Lock()
	if !e.destroyed && !ev.DefaultPrevented() && !e.checkReadonly() {
		e.applyDefault(ev)
	}
	e.mu.Unlock()

	up := &KeyEvent{
		Key:       ev.Key,
		Ctrl:      ev.Ctrl,
		Meta:      ev.Meta,
		Shift:     ev.Shift,
		Alt:       ev.Alt,
		Composing: ev.Composing,
	}
	e.KeyUp(up)
}

func (e *Editor) applyDefault(ev *KeyEvent) {
	switch {
	case ev.Key == "Enter":
		e.insert("\n")
	case ev.Key == "Backspace":
		if d, ok := e.surface.(BackwardDeleter); ok {
			d.DeleteBackward()
		} else {
			e.surface.DeleteSelection()
		}
	case isCtrl(ev) || ev.Alt:
	case len([]rune(ev.Key)) == 1:
		e.insert(ev.Key)
	}
}
