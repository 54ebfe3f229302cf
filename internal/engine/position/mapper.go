package position

import (
	"fmt"

	"github.com/dshills/caretjar/internal/tree"
)

// Source supplies the tree and the live selection being mapped.
type Source interface {
	Root() *tree.Node
	Selection() tree.SelectionAdapter
}

// Mapper saves and restores selections as Positions.
type Mapper struct {
	src Source
}

// NewMapper creates a mapper over src.
func NewMapper(src Source) *Mapper {
	return &Mapper{src: src}
}

// span is one text leaf and the offset of its first character.
type span struct {
	node   *tree.Node
	start  int
	length int
}

// leafSpans lists the text leaves under root with cumulative offsets. The
// list is built before any offset arithmetic so later structural edits do
// not disturb an in-progress walk.
func leafSpans(root *tree.Node) []span {
	var out []span
	current := 0
	for _, leaf := range tree.Leaves(root) {
		l := len([]rune(leaf.Text()))
		out = append(out, span{node: leaf, start: current, length: l})
		current += l
	}
	return out
}

func indexOf(spans []span, n *tree.Node) int {
	for i, s := range spans {
		if s.node == n {
			return i
		}
	}
	return -1
}

// Save reads the live selection and converts it to a Position.
//
// Endpoints that address an element are first given a synthesized empty
// leaf at that child index so both endpoints always resolve against a text
// leaf. The tree is normalized afterwards and the selection recommitted.
func (m *Mapper) Save() (Position, error) {
	root := m.src.Root()
	sel := m.src.Selection()

	a, okA := sel.Anchor()
	f, okF := sel.Focus()
	if !okA || !okF {
		return Position{}, ErrNoSelection
	}

	if a.Node == root && f.Node == root {
		total := root.Len()
		pos := Position{Dir: DirBackward}
		if a.Offset > 0 && total > 0 {
			pos.Start = total
		}
		if f.Offset > 0 && total > 0 {
			pos.End = total
		}
		if f.Offset >= a.Offset {
			pos.Dir = DirForward
		}
		return pos, nil
	}

	if !root.Contains(a.Node) || !root.Contains(f.Node) {
		return Position{}, ErrDetached
	}

	a, f = synthesizeLeaves(a, f)

	spans := leafSpans(root)
	ia, ifc := indexOf(spans, a.Node), indexOf(spans, f.Node)
	if ia < 0 || ifc < 0 {
		return Position{}, fmt.Errorf("resolving endpoints: %w", ErrDetached)
	}

	pos := Position{
		Start: spans[ia].start + clampInt(a.Offset, 0, spans[ia].length),
		End:   spans[ifc].start + clampInt(f.Offset, 0, spans[ifc].length),
		Dir:   DirBackward,
	}
	if ia < ifc || (ia == ifc && a.Offset <= f.Offset) {
		pos.Dir = DirForward
	}

	root.Normalize(&a, &f)
	sel.SetRange(a, f)
	return pos, nil
}

// synthesizeLeaves replaces element endpoints with empty leaves inserted at
// the addressed child index.
func synthesizeLeaves(a, f tree.Point) (tree.Point, tree.Point) {
	if a.Node.IsElement() {
		idx := clampInt(a.Offset, 0, a.Node.ChildCount())
		leaf := tree.NewText("")
		a.Node.InsertAt(idx, leaf)
		if f.Node == a.Node {
			switch {
			case f.Offset == a.Offset:
				f = tree.Point{Node: leaf}
			case f.Offset > idx:
				f.Offset++
			}
		}
		a = tree.Point{Node: leaf}
	}
	if f.Node.IsElement() {
		idx := clampInt(f.Offset, 0, f.Node.ChildCount())
		leaf := tree.NewText("")
		f.Node.InsertAt(idx, leaf)
		f = tree.Point{Node: leaf}
	}
	return a, f
}

// Restore commits pos to the live selection.
//
// The first leaf whose cumulative length reaches the start offset becomes
// the anchor leaf and accumulation continues to find the end leaf. An empty
// tree resolves both endpoints to the root after its last child. Endpoints
// that land under a non-editable ancestor are moved to an empty leaf
// inserted just before that ancestor.
func (m *Mapper) Restore(pos Position) {
	root := m.src.Root()

	if pos.Dir == DirUnset {
		pos.Dir = DirForward
	}
	pos.Start = max(pos.Start, 0)
	pos.End = max(pos.End, 0)

	start, end := pos.Start, pos.End
	if pos.Dir == DirBackward {
		start, end = end, start
	}

	spans := leafSpans(root)
	sp, ep := resolveRange(spans, start, end, true)
	if sp.Node == nil {
		sp, ep = resolveRange(spans, start, end, false)
	}
	if sp.Node == nil {
		sp = tree.Point{Node: root, Offset: root.ChildCount()}
	}
	if ep.Node == nil {
		ep = tree.Point{Node: root, Offset: root.ChildCount()}
	}

	if pos.Dir == DirBackward {
		sp, ep = ep, sp
	}

	sp, ep = retargetEditable(root, sp, ep)

	root.Normalize(&sp, &ep)
	m.src.Selection().SetRange(sp, ep)
}

// resolveRange finds the leaves holding start and end. With skipEmpty set,
// empty leaves are passed over so endpoints land on leaves that survive
// normalization.
func resolveRange(spans []span, start, end int, skipEmpty bool) (sp, ep tree.Point) {
	for _, s := range spans {
		if s.start+s.length < start || (skipEmpty && s.length == 0) {
			continue
		}
		if sp.Node == nil {
			sp = tree.Point{Node: s.node, Offset: start - s.start}
		}
		if s.start+s.length >= end {
			ep = tree.Point{Node: s.node, Offset: max(end-s.start, 0)}
			break
		}
	}
	return sp, ep
}

// retargetEditable moves endpoints out of non-editable subtrees.
func retargetEditable(root *tree.Node, sp, ep tree.Point) (tree.Point, tree.Point) {
	su := tree.Uneditable(root, sp.Node)
	eu := tree.Uneditable(root, ep.Node)
	if su != nil && su.Parent() != nil {
		leaf := tree.NewText("")
		su.Parent().InsertBefore(leaf, su)
		sp = tree.Point{Node: leaf}
		if eu == su {
			ep = sp
			eu = nil
		}
	}
	if eu != nil && eu.Parent() != nil {
		leaf := tree.NewText("")
		eu.Parent().InsertBefore(leaf, eu)
		ep = tree.Point{Node: leaf}
	}
	return sp, ep
}

// OffsetAt converts a single point to a character offset without touching
// the tree.
func (m *Mapper) OffsetAt(p tree.Point) (int, bool) {
	return tree.OffsetOf(m.src.Root(), p)
}

// Bounds returns the ordered offsets of the live selection without touching
// the tree.
func (m *Mapper) Bounds() (start, end int, err error) {
	s, e, ok := tree.Offsets(m.src.Root(), m.src.Selection())
	if !ok {
		return 0, 0, ErrNoSelection
	}
	return s, e, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
