package tree

import "unicode/utf8"

// Offsets returns the selection endpoints of sel as ordered character
// offsets from the start of root.
func Offsets(root *Node, sel SelectionAdapter) (start, end int, ok bool) {
	a, okA := sel.Anchor()
	f, okF := sel.Focus()
	if !okA || !okF {
		return 0, 0, false
	}
	start, okA = OffsetOf(root, a)
	end, okF = OffsetOf(root, f)
	if !okA || !okF {
		return 0, 0, false
	}
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

// TextBetween returns the characters in [start, end) of root's text.
func TextBetween(root *Node, start, end int) string {
	runes := []rune(root.TextContent())
	start = clamp(start, 0, len(runes))
	end = clamp(end, 0, len(runes))
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// RangeText returns the text between two points.
func RangeText(root *Node, from, to Point) string {
	s, ok := OffsetOf(root, from)
	if !ok {
		return ""
	}
	e, ok := OffsetOf(root, to)
	if !ok {
		return ""
	}
	if s > e {
		s, e = e, s
	}
	return TextBetween(root, s, e)
}

// SelectedText returns the text covered by sel.
func SelectedText(root *Node, sel SelectionAdapter) string {
	s, e, ok := Offsets(root, sel)
	if !ok {
		return ""
	}
	return TextBetween(root, s, e)
}

// DeleteRange removes the characters in [start, end) from the leaves under
// root. Emptied leaves stay in place until the next Normalize.
func DeleteRange(root *Node, start, end int) {
	if start > end {
		start, end = end, start
	}
	if start == end {
		return
	}
	current := 0
	for _, leaf := range Leaves(root) {
		runes := []rune(leaf.text)
		ls, le := current, current+len(runes)
		current = le
		if le <= start {
			continue
		}
		if ls >= end {
			break
		}
		from := clamp(start-ls, 0, len(runes))
		to := clamp(end-ls, 0, len(runes))
		leaf.text = string(runes[:from]) + string(runes[to:])
	}
}

// DeleteSelection removes the selected characters and collapses the
// selection at the start of the removed range.
func DeleteSelection(root *Node, sel SelectionAdapter) {
	s, e, ok := Offsets(root, sel)
	if !ok {
		return
	}
	DeleteRange(root, s, e)
	collapse(sel, editablePoint(root, PointAt(root, s)))
}

// InsertText replaces the selected range with text and places the caret
// after the inserted characters. Without a selection the text is appended.
func InsertText(root *Node, sel SelectionAdapter, text string) {
	s, e, ok := Offsets(root, sel)
	if !ok {
		s = root.Len()
		e = s
	}
	DeleteRange(root, s, e)

	p := editablePoint(root, PointAt(root, s))
	if p.Node.kind != TextKind {
		leaf := NewText("")
		p.Node.InsertAt(p.Offset, leaf)
		p = Point{Node: leaf}
	}
	runes := []rune(p.Node.text)
	off := clamp(p.Offset, 0, len(runes))
	p.Node.text = string(runes[:off]) + text + string(runes[off:])
	collapse(sel, Point{Node: p.Node, Offset: off + utf8.RuneCountInString(text)})
}

// editablePoint moves a point that falls inside a non-editable subtree to a
// fresh empty leaf just before that subtree.
func editablePoint(root *Node, p Point) Point {
	u := Uneditable(root, p.Node)
	if u == nil || u.parent == nil {
		return p
	}
	leaf := NewText("")
	u.parent.InsertBefore(leaf, u)
	return Point{Node: leaf}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
