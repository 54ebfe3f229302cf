// Package position converts between linear character offsets and
// structural locations in a live content tree.
//
// A Position records a selection as two character offsets into the
// concatenated text of the tree. Start is always the anchor offset and End
// the focus offset, so a backward selection has Start > End and Dir set to
// DirBackward. Saving and restoring a Position survives any structural
// rewrite that preserves text, such as re-highlighting.
package position

import (
	"errors"
	"fmt"
)

// ErrNoSelection is returned by Save when the host has no live selection.
var ErrNoSelection = errors.New("no live selection")

// ErrDetached is returned by Save when a selection endpoint does not lie
// inside the tree being mapped.
var ErrDetached = errors.New("selection endpoint outside tree")

// Direction records which end of a selection is the anchor.
type Direction int

const (
	// DirUnset means no direction was recorded. Restore treats it as forward.
	DirUnset Direction = iota
	// DirForward means the anchor precedes or equals the focus.
	DirForward
	// DirBackward means the focus precedes the anchor.
	DirBackward
)

// String returns the arrow form used in debug output.
func (d Direction) String() string {
	switch d {
	case DirForward:
		return "->"
	case DirBackward:
		return "<-"
	default:
		return ""
	}
}

// Position is a selection expressed as character offsets.
type Position struct {
	Start int
	End   int
	Dir   Direction
}

// Caret returns a collapsed forward position at offset.
func Caret(offset int) Position {
	return Position{Start: offset, End: offset, Dir: DirForward}
}

// Collapsed reports whether the position is a caret.
func (p Position) Collapsed() bool { return p.Start == p.End }

// Min returns the smaller of the two offsets.
func (p Position) Min() int { return min(p.Start, p.End) }

// Max returns the larger of the two offsets.
func (p Position) Max() int { return max(p.Start, p.End) }

// SameRange reports whether two positions cover the same offsets,
// ignoring direction.
func (p Position) SameRange(o Position) bool {
	return p.Start == o.Start && p.End == o.End
}

// String formats the position for logs.
func (p Position) String() string {
	return fmt.Sprintf("{%d %d %s}", p.Start, p.End, p.Dir)
}
