package tree

// Selection is an in-memory selection adapter over a tree. The anchor is
// where the selection started and the focus is where it ends; the focus may
// come before the anchor in document order.
type Selection struct {
	anchor Point
	focus  Point
	set    bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Anchor returns the anchor endpoint.
func (s *Selection) Anchor() (Point, bool) {
	if !s.set || s.anchor.Node == nil {
		return Point{}, false
	}
	return s.anchor, true
}

// Focus returns the focus endpoint.
func (s *Selection) Focus() (Point, bool) {
	if !s.set || s.focus.Node == nil {
		return Point{}, false
	}
	return s.focus, true
}

// SetRange replaces both endpoints in one directional operation.
func (s *Selection) SetRange(anchor, focus Point) {
	s.anchor = anchor
	s.focus = focus
	s.set = true
}

// Collapse places a caret at p.
func (s *Selection) Collapse(p Point) {
	s.SetRange(p, p)
}

// Clear removes the selection entirely.
func (s *Selection) Clear() {
	*s = Selection{}
}

// SelectionAdapter is the capability a host exposes for reading and
// committing the live selection.
type SelectionAdapter interface {
	Anchor() (Point, bool)
	Focus() (Point, bool)
	SetRange(anchor, focus Point)
}

func collapse(sel SelectionAdapter, p Point) {
	sel.SetRange(p, p)
}
