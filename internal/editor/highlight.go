package editor

import (
	"github.com/dshills/caretjar/internal/dispatcher"
	"github.com/dshills/caretjar/internal/engine/position"
	"github.com/dshills/caretjar/internal/tree"
)

// Wrap style values applied to the root and its element children.
var (
	wrapOn  = [][2]string{{"overflow-wrap", "break-word"}, {"white-space", "pre-wrap"}, {"word-break", "break-all"}}
	wrapOff = [][2]string{{"overflow-wrap", "normal"}, {"white-space", "pre"}, {"word-break", "keep-all"}}
)

// doHighlight runs the highlight callback, reapplies wrap styling and
// dispatches the highlight action. Without a callback it does nothing.
func (e *Editor) doHighlight(pos *position.Position) {
	if e.highlight == nil {
		return
	}
	root := e.surface.Root()
	e.keepSelection(func() { e.highlight(root, pos) })

	for _, c := range root.Children() {
		if c.IsElement() {
			e.applyWrap(c)
		}
	}
	e.applyWrap(root)

	e.Dispatch(dispatcher.ActionHighlight, nil)
}

func (e *Editor) applyWrap(n *tree.Node) {
	styles := wrapOff
	if e.opts.Wrap {
		styles = wrapOn
	}
	for _, s := range styles {
		n.SetStyleProperty(s[0], s[1])
	}
}

func (e *Editor) debouncedHighlight() {
	if e.highlight == nil {
		return
	}
	pos, ok := e.mustSave()
	if !ok {
		return
	}
	e.doHighlight(&pos)
	e.Restore(pos)
}

func (e *Editor) debouncedRefresh() {
	e.Debug("refresh")
	e.Dispatch(dispatcher.ActionRefresh, nil)
	e.doHighlight(nil)
}

// notifyUpdate runs the update callback unless beforeUpdate is aborted.
func (e *Editor) notifyUpdate(code string) {
	e.Debug("update, %d characters", len([]rune(code)))
	if e.Dispatch(dispatcher.ActionBeforeUpdate, nil) {
		return
	}
	e.onUpdate(code)
	e.Dispatch(dispatcher.ActionAfterUpdate, nil)
}

// keepSelection runs fn and, when fn detached the selection from the tree,
// recommits it at the offsets it had before.
func (e *Editor) keepSelection(fn func()) {
	root := e.surface.Root()
	sel := e.surface.Selection()

	before, had := e.liveOffsets()
	fn()
	if !had {
		return
	}
	a, okA := sel.Anchor()
	f, okF := sel.Focus()
	if okA && okF && root.Contains(a.Node) && root.Contains(f.Node) {
		return
	}
	e.Restore(before)
}

// liveOffsets reads the selection as offsets without touching the tree.
func (e *Editor) liveOffsets() (position.Position, bool) {
	sel := e.surface.Selection()
	a, okA := sel.Anchor()
	f, okF := sel.Focus()
	if !okA || !okF {
		return position.Position{}, false
	}
	start, ok1 := e.mapper.OffsetAt(a)
	end, ok2 := e.mapper.OffsetAt(f)
	if !ok1 || !ok2 {
		return position.Position{}, false
	}
	pos := position.Position{Start: start, End: end, Dir: position.DirForward}
	if start > end {
		pos.Dir = position.DirBackward
	}
	return pos, true
}
