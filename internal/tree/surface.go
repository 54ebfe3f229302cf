package tree

// Surface is the stock in-memory editable surface: a root element, a
// selection over it, and a focus flag.
type Surface struct {
	root    *Node
	sel     *Selection
	focused bool
}

// NewSurface wraps root. A nil root gets a fresh "div" element.
func NewSurface(root *Node) *Surface {
	if root == nil {
		root = NewElement("div")
	}
	return &Surface{root: root, sel: NewSelection()}
}

// Root returns the root element.
func (s *Surface) Root() *Node { return s.root }

// Selection returns the selection adapter.
func (s *Surface) Selection() SelectionAdapter { return s.sel }

// Focus marks the surface as focused. A surface without a selection gets a
// caret at the end of its content.
func (s *Surface) Focus() {
	s.focused = true
	if _, ok := s.sel.Anchor(); !ok {
		s.sel.Collapse(PointAt(s.root, s.root.Len()))
	}
}

// Blur clears the focus flag.
func (s *Surface) Blur() { s.focused = false }

// Focused reports whether Focus was called since the last Blur.
func (s *Surface) Focused() bool { return s.focused }

// Select sets the selection from character offsets.
func (s *Surface) Select(anchor, focus int) {
	s.sel.SetRange(PointAt(s.root, anchor), PointAt(s.root, focus))
}

// InsertText replaces the selection with text.
func (s *Surface) InsertText(text string) {
	InsertText(s.root, s.sel, text)
}

// DeleteSelection removes the selected text.
func (s *Surface) DeleteSelection() {
	DeleteSelection(s.root, s.sel)
}

// DeleteBackward removes the character before a collapsed caret, or the
// selection when it is not collapsed.
func (s *Surface) DeleteBackward() {
	start, end, ok := Offsets(s.root, s.sel)
	if !ok {
		return
	}
	if start == end {
		if start == 0 {
			return
		}
		start--
	}
	s.sel.SetRange(PointAt(s.root, start), PointAt(s.root, end))
	DeleteSelection(s.root, s.sel)
}

// SelectedText returns the selected characters.
func (s *Surface) SelectedText() string {
	return SelectedText(s.root, s.sel)
}
