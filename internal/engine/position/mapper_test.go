package position

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/caretjar/internal/tree"
)

func newSurface(children ...*tree.Node) (*tree.Surface, *Mapper) {
	s := tree.NewSurface(tree.NewElement("div", children...))
	return s, NewMapper(s)
}

func TestSaveWithoutSelection(t *testing.T) {
	_, m := newSurface(tree.NewText("abc"))
	if _, err := m.Save(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Save() error = %v, want ErrNoSelection", err)
	}
}

func TestSaveEmptyTree(t *testing.T) {
	s, m := newSurface()
	s.Focus()
	pos, err := m.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if pos.Start != 0 || pos.End != 0 {
		t.Errorf("Save() = %v, want {0 0}", pos)
	}
}

func TestSaveCaretAfterText(t *testing.T) {
	s, m := newSurface()
	s.Focus()
	s.InsertText("ab\ncd")

	pos, err := m.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if diff := cmp.Diff(Position{Start: 5, End: 5, Dir: DirForward}, pos); diff != "" {
		t.Errorf("Save() mismatch (-want +got):\n%s", diff)
	}

	m.Restore(Position{Start: 1, End: 1})
	s.InsertText("X")
	if got := s.Root().TextContent(); got != "aXb\ncd" {
		t.Errorf("TextContent() = %q, want %q", got, "aXb\ncd")
	}
}

func TestSaveRootEndpoints(t *testing.T) {
	s, m := newSurface(tree.NewText("abc"), tree.NewElement("b", tree.NewText("de")))
	root := s.Root()

	s.Selection().SetRange(tree.Point{Node: root, Offset: 2}, tree.Point{Node: root, Offset: 0})
	pos, err := m.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if diff := cmp.Diff(Position{Start: 5, End: 0, Dir: DirBackward}, pos); diff != "" {
		t.Errorf("Save() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveSynthesizesLeafForElementEndpoint(t *testing.T) {
	bold := tree.NewElement("b", tree.NewText("cd"))
	s, m := newSurface(tree.NewText("ab"), bold, tree.NewText("ef"))
	root := s.Root()

	// Anchor between "ab" and <b>, focus inside <b> after its only child.
	s.Selection().SetRange(tree.Point{Node: root, Offset: 1}, tree.Point{Node: bold, Offset: 1})
	pos, err := m.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if diff := cmp.Diff(Position{Start: 2, End: 4, Dir: DirForward}, pos); diff != "" {
		t.Errorf("Save() mismatch (-want +got):\n%s", diff)
	}
	if got := tree.Marshal(root); got != "<div>ab<b>cd</b>ef</div>" {
		t.Errorf("synthesized leaves not normalized away: %q", got)
	}

	// The recommitted selection still covers the same characters.
	start, end, err := m.Bounds()
	if err != nil || start != 2 || end != 4 {
		t.Errorf("Bounds() = %d, %d, %v; want 2, 4", start, end, err)
	}
}

func TestSaveBackwardSelection(t *testing.T) {
	s, m := newSurface(tree.NewText("ab"), tree.NewElement("i", tree.NewText("cd")))
	leaves := tree.Leaves(s.Root())
	s.Selection().SetRange(tree.Point{Node: leaves[1], Offset: 1}, tree.Point{Node: leaves[0], Offset: 1})

	pos, err := m.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if diff := cmp.Diff(Position{Start: 3, End: 1, Dir: DirBackward}, pos); diff != "" {
		t.Errorf("Save() mismatch (-want +got):\n%s", diff)
	}
}

func TestRestoreSaveRoundTrip(t *testing.T) {
	build := func() *tree.Node {
		return tree.NewElement("div",
			tree.NewText("func "),
			tree.NewElement("span", tree.NewText("main")),
			tree.NewText("() {\n\t"),
			tree.NewElement("span", tree.NewElement("em", tree.NewText("x")), tree.NewText(" := 1")),
			tree.NewText("\n}"),
		)
	}
	total := build().Len()

	for start := 0; start <= total; start++ {
		for _, end := range []int{start, total, 0, (start + total) / 2} {
			for _, dir := range []Direction{DirForward, DirBackward} {
				in := Position{Start: start, End: end, Dir: dir}
				if dir == DirForward && start > end {
					continue
				}
				if dir == DirBackward && start < end {
					continue
				}
				s := tree.NewSurface(build())
				m := NewMapper(s)
				m.Restore(in)
				got, err := m.Save()
				if err != nil {
					t.Fatalf("Save() after Restore(%v) error = %v", in, err)
				}
				if !got.SameRange(in) {
					t.Errorf("Restore(%v) then Save() = %v", in, got)
				}
			}
		}
	}
}

func TestRestoreEmptyTree(t *testing.T) {
	s, m := newSurface()
	m.Restore(Position{Start: 3, End: 3})
	a, ok := s.Selection().Anchor()
	if !ok || a.Node != s.Root() || a.Offset != 0 {
		t.Errorf("anchor = %+v, want root at 0", a)
	}
}

func TestRestoreClampsNegative(t *testing.T) {
	_, m := newSurface(tree.NewText("abc"))
	m.Restore(Position{Start: -4, End: -1})
	start, end, err := m.Bounds()
	if err != nil || start != 0 || end != 0 {
		t.Errorf("Bounds() = %d, %d, %v; want 0, 0", start, end, err)
	}
}

func TestRestoreBackwardKeepsDirection(t *testing.T) {
	s, m := newSurface(tree.NewText("abcdef"))
	m.Restore(Position{Start: 4, End: 1, Dir: DirBackward})

	a, _ := s.Selection().Anchor()
	f, _ := s.Selection().Focus()
	ao, _ := m.OffsetAt(a)
	fo, _ := m.OffsetAt(f)
	if ao != 4 || fo != 1 {
		t.Errorf("anchor/focus = %d/%d, want 4/1", ao, fo)
	}
}

func TestRestoreAvoidsUneditable(t *testing.T) {
	locked := tree.NewElement("mark", tree.NewText("ro"))
	locked.SetAttr(tree.AttrEditable, "false")
	s, m := newSurface(tree.NewText("ab"), locked)

	m.Restore(Position{Start: 3, End: 3})

	a, ok := s.Selection().Anchor()
	if !ok {
		t.Fatal("no anchor after restore")
	}
	if locked.Contains(a.Node) {
		t.Fatalf("caret landed inside non-editable subtree: %+v", a)
	}
	if tree.Uneditable(s.Root(), a.Node) != nil {
		t.Error("caret has a non-editable ancestor")
	}
	if got := tree.Marshal(s.Root()); got != `<div>ab<mark contenteditable="false">ro</mark></div>` {
		t.Errorf("Marshal() = %q", got)
	}
}

func TestRestoreAtLeafBoundaryPrefersEarlierLeaf(t *testing.T) {
	s, m := newSurface(tree.NewText("ab"), tree.NewElement("b", tree.NewText("cd")))
	m.Restore(Position{Start: 2, End: 2})
	a, _ := s.Selection().Anchor()
	if a.Node.Text() != "ab" || a.Offset != 2 {
		t.Errorf("anchor = %q@%d, want \"ab\"@2", a.Node.Text(), a.Offset)
	}
}

func TestRestoreSkipsEmptyLeafBeforeText(t *testing.T) {
	s, m := newSurface(tree.NewElement("span"), tree.NewText(""), tree.NewText("\n"))
	m.Restore(Position{Start: 0, End: 0})

	a, _ := s.Selection().Anchor()
	if a.Node == s.Root() {
		t.Fatalf("anchor = root@%d, want a text leaf", a.Offset)
	}
	got, err := m.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got.Start != 0 || got.End != 0 {
		t.Errorf("Save() = %v, want 0..0", got)
	}
}
