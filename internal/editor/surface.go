package editor

import (
	"github.com/dshills/caretjar/internal/engine/position"
	"github.com/dshills/caretjar/internal/tree"
)

// Surface is the externally owned editable content the editor drives.
// tree.Surface is the stock in-memory implementation.
type Surface interface {
	// Root returns the root element. Its attributes carry editability and
	// wrap styling.
	Root() *tree.Node
	// Selection returns the live selection adapter.
	Selection() tree.SelectionAdapter
	// Focus gives the surface input focus and ensures a live selection.
	Focus()
	// InsertText replaces the selection with text and collapses the caret
	// after it.
	InsertText(text string)
	// DeleteSelection removes the selected text.
	DeleteSelection()
	// SelectedText returns the selected characters.
	SelectedText() string
}

// BackwardDeleter is implemented by surfaces that can delete the character
// before the caret. Press uses it for Backspace.
type BackwardDeleter interface {
	DeleteBackward()
}

// PlaintextProber is implemented by surfaces that can report whether they
// honor plaintext-only editability. DetectMode uses it.
type PlaintextProber interface {
	SupportsPlaintextOnly() bool
}

// ResizeObserver reports size changes of the surface.
type ResizeObserver interface {
	// Observe registers fn to run on every size change.
	Observe(fn func())
	// Disconnect stops observation.
	Disconnect()
}

// HighlightFunc re-renders decorations under root while preserving its text
// content. pos is the caret saved before highlighting, or nil when the
// highlight is not caret-driven.
type HighlightFunc func(root *tree.Node, pos *position.Position)
