package editor

import (
	"github.com/dshills/caretjar/internal/engine/position"
	"github.com/dshills/caretjar/internal/tree"
)

// beforeCursor returns the text from the start of the content to the start
// of the selection.
func (e *Editor) beforeCursor() string {
	start, _, err := e.mapper.Bounds()
	if err != nil {
		return ""
	}
	return tree.TextBetween(e.surface.Root(), 0, start)
}

// afterCursor returns the text from the end of the selection to the end of
// the content.
func (e *Editor) afterCursor() string {
	_, end, err := e.mapper.Bounds()
	if err != nil {
		return ""
	}
	root := e.surface.Root()
	return tree.TextBetween(root, end, root.Len())
}

func (e *Editor) insert(text string) {
	e.surface.InsertText(text)
}

// findPadding returns the leading blanks of the last line of text and the
// rune offsets where that line and its blanks end.
func findPadding(text string) (padding string, start, end int) {
	r := []rune(text)
	i := len(r) - 1
	for i >= 0 && r[i] != '\n' {
		i--
	}
	i++
	j := i
	for j < len(r) && (r[j] == ' ' || r[j] == '\t') {
		j++
	}
	return string(r[i:j]), i, j
}

// handleNewLine carries the current line's indentation onto the new line,
// adding a level after IndentOn. A closing character right after the caret
// is moved to its own line at the original indentation.
func (e *Editor) handleNewLine(ev *KeyEvent) {
	if ev.Key != "Enter" {
		return
	}
	before := e.beforeCursor()
	after := e.afterCursor()

	padding, _, _ := findPadding(before)
	newPadding := padding
	if e.opts.IndentOn != nil && e.opts.IndentOn.MatchString(before) {
		newPadding += e.opts.Tab
	}

	if newPadding != "" {
		ev.PreventDefault()
		ev.StopPropagation()
		e.insert("\n" + newPadding)
	} else {
		e.mode.FixNewLine(e, ev)
	}

	if newPadding != padding && e.opts.MoveToNewLine != nil && e.opts.MoveToNewLine.MatchString(after) {
		pos, ok := e.mustSave()
		if !ok {
			return
		}
		e.insert("\n" + padding)
		e.Restore(pos)
	}
}

// handleSelfClosing inserts the closing partner of an AutoClose opener,
// wrapping any selected text, and keeps the selection inside the pair.
func (e *Editor) handleSelfClosing(ev *KeyEvent) {
	closing, ok := e.opts.AutoClose.ClosingFor(ev.Key)
	if !ok {
		return
	}
	ev.PreventDefault()
	pos, ok := e.mustSave()
	if !ok {
		return
	}
	wrapped := ""
	if !pos.Collapsed() {
		wrapped = e.surface.SelectedText()
	}
	e.insert(ev.Key + wrapped + closing)
	pos.Start++
	pos.End++
	e.Restore(pos)
}

// handleTab inserts Tab, or removes up to one indent level from the start
// of the current line on Shift-Tab.
func (e *Editor) handleTab(ev *KeyEvent) {
	if ev.Key != "Tab" {
		return
	}
	ev.PreventDefault()
	if !ev.Shift {
		e.insert(e.opts.Tab)
		return
	}

	padding, start, _ := findPadding(e.beforeCursor())
	if padding == "" {
		return
	}
	pos, ok := e.mustSave()
	if !ok {
		return
	}
	n := min(len([]rune(e.opts.Tab)), len([]rune(padding)))
	e.Restore(position.Position{Start: start, End: start + n})
	e.surface.DeleteSelection()
	pos.Start -= n
	pos.End -= n
	e.Restore(pos)
}

func (e *Editor) handleUndoRedo(ev *KeyEvent) {
	if isUndo(ev) {
		ev.PreventDefault()
		e.Undo()
	}
	if isRedo(ev) {
		ev.PreventDefault()
		e.Redo()
	}
}
