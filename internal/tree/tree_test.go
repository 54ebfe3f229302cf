package tree

import (
	"testing"
)

func sample() *Node {
	// <div>ab<span class="k">c</span>d<b>ef</b></div>
	return NewElement("div",
		NewText("ab"),
		NewElement("span", NewText("c")),
		NewText("d"),
		NewElement("b", NewText("ef")),
	)
}

func TestTextContentAndLen(t *testing.T) {
	root := sample()
	if got := root.TextContent(); got != "abcdef" {
		t.Errorf("TextContent() = %q, want %q", got, "abcdef")
	}
	if got := root.Len(); got != 6 {
		t.Errorf("Len() = %d, want 6", got)
	}

	uni := NewElement("div", NewText("héllo"), NewText("世界"))
	if got := uni.Len(); got != 7 {
		t.Errorf("Len() = %d, want 7 (runes, not bytes)", got)
	}
}

func TestWalkOrderAndStop(t *testing.T) {
	root := sample()
	var texts []string
	Walk(root, func(n *Node) bool {
		if n.IsText() {
			texts = append(texts, n.Text())
		}
		return true
	})
	want := []string{"ab", "c", "d", "ef"}
	if len(texts) != len(want) {
		t.Fatalf("visited %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], want[i])
		}
	}

	count := 0
	Walk(root, func(n *Node) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("walk did not stop, visited %d", count)
	}
}

func TestInsertAndRemoveChild(t *testing.T) {
	root := NewElement("div")
	a := NewText("a")
	b := NewText("b")
	root.AppendChild(b)
	root.InsertBefore(a, b)
	if root.TextContent() != "ab" {
		t.Fatalf("TextContent() = %q", root.TextContent())
	}
	if a.Parent() != root || a.NextSibling() != b {
		t.Error("parent/sibling links wrong")
	}

	other := NewElement("p")
	other.AppendChild(a)
	if root.ChildCount() != 1 || a.Parent() != other {
		t.Error("AppendChild should detach from previous parent")
	}

	if !other.RemoveChild(a) || a.Parent() != nil {
		t.Error("RemoveChild failed")
	}
	if other.RemoveChild(a) {
		t.Error("RemoveChild of non-child should report false")
	}
}

func TestSetTextContent(t *testing.T) {
	root := sample()
	root.SetTextContent("xyz")
	if root.ChildCount() != 1 || root.TextContent() != "xyz" {
		t.Errorf("SetTextContent: got %q with %d children", root.TextContent(), root.ChildCount())
	}
	root.SetTextContent("")
	if root.ChildCount() != 0 {
		t.Errorf("empty SetTextContent left %d children", root.ChildCount())
	}
}

func TestUneditable(t *testing.T) {
	locked := NewElement("span", NewText("x"))
	locked.SetAttr(AttrEditable, "false")
	root := NewElement("div", NewText("a"), locked)
	leaf := locked.FirstChild()

	if got := Uneditable(root, leaf); got != locked {
		t.Errorf("Uneditable() = %v, want locked span", got)
	}
	if got := Uneditable(root, root.FirstChild()); got != nil {
		t.Errorf("Uneditable() = %v, want nil", got)
	}
}

func TestNormalize(t *testing.T) {
	root := NewElement("div",
		NewText("a"),
		NewText(""),
		NewText("b"),
		NewElement("span", NewText(""), NewText("c"), NewText("d")),
		NewText(""),
	)
	root.Normalize()

	if got := Marshal(root); got != "<div>ab<span>cd</span></div>" {
		t.Errorf("Marshal() = %q", got)
	}
}

func TestNormalizeCarriesPoints(t *testing.T) {
	a := NewText("ab")
	empty := NewText("")
	c := NewText("cd")
	root := NewElement("div", a, empty, c)

	onEmpty := Point{Node: empty, Offset: 0}
	onC := Point{Node: c, Offset: 1}
	onRoot := Point{Node: root, Offset: 3}
	root.Normalize(&onEmpty, &onC, &onRoot)

	if root.ChildCount() != 1 {
		t.Fatalf("ChildCount() = %d, want 1", root.ChildCount())
	}
	merged := root.FirstChild()
	tests := []struct {
		name string
		p    Point
		want int
	}{
		{"empty leaf", onEmpty, 2},
		{"merged leaf", onC, 3},
		{"root end", onRoot, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, ok := OffsetOf(root, tt.p)
			if !ok {
				t.Fatal("point detached after normalize")
			}
			if off != tt.want {
				t.Errorf("offset = %d, want %d", off, tt.want)
			}
		})
	}
	if onC.Node != merged {
		t.Error("point on merged leaf should move to surviving leaf")
	}
}

func TestOffsetOfAndPointAt(t *testing.T) {
	root := sample()
	leaves := Leaves(root)

	tests := []struct {
		name string
		p    Point
		want int
	}{
		{"start", Point{leaves[0], 0}, 0},
		{"inside span", Point{leaves[1], 1}, 3},
		{"element boundary", Point{root, 2}, 3},
		{"root end", Point{root, root.ChildCount()}, 6},
		{"clamped", Point{leaves[3], 10}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := OffsetOf(root, tt.p)
			if !ok || got != tt.want {
				t.Errorf("OffsetOf() = %d, %v; want %d", got, ok, tt.want)
			}
		})
	}

	if _, ok := OffsetOf(root, Point{NewText("x"), 0}); ok {
		t.Error("detached point should not resolve")
	}

	p := PointAt(root, 2)
	if p.Node != leaves[0] || p.Offset != 2 {
		t.Errorf("PointAt(2) = %v/%d, want end of first leaf", p.Node.Text(), p.Offset)
	}
	empty := NewElement("div")
	p = PointAt(empty, 3)
	if p.Node != empty || p.Offset != 0 {
		t.Errorf("PointAt on empty tree = %+v", p)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	root := sample()
	root.Child(1).SetAttr("class", `a"b`)
	snap := Take(root)

	if got, want := snap.Markup(), `ab<span class="a&quot;b">c</span>d<b>ef</b>`; got != want {
		t.Errorf("Markup() = %q, want %q", got, want)
	}

	root.SetTextContent("changed")
	if Take(root).Equal(snap) {
		t.Error("snapshot should differ after change")
	}

	root.ReplaceChildren(snap)
	if !Take(root).Equal(snap) {
		t.Errorf("restored markup = %q", MarshalChildren(root))
	}

	// Mutating the restored tree must not leak into the snapshot.
	Leaves(root)[0].SetText("zz")
	root.ReplaceChildren(snap)
	if root.TextContent() != "abcdef" {
		t.Errorf("snapshot was mutated: %q", root.TextContent())
	}
}

func TestMarshalEscapesText(t *testing.T) {
	root := NewElement("div", NewText("a<b>&c"))
	if got := MarshalChildren(root); got != "a&lt;b&gt;&amp;c" {
		t.Errorf("MarshalChildren() = %q", got)
	}
}

func TestStyleProperty(t *testing.T) {
	n := NewElement("span")
	n.SetAttr(AttrStyle, "color: red; white-space: pre")

	n.SetStyleProperty("white-space", "pre-wrap")
	n.SetStyleProperty("word-break", "break-all")
	if got, _ := n.Attr(AttrStyle); got != "color: red; white-space: pre-wrap; word-break: break-all" {
		t.Errorf("style = %q", got)
	}
	if v, ok := n.StyleProperty("color"); !ok || v != "red" {
		t.Errorf("StyleProperty(color) = %q, %v", v, ok)
	}

	n.SetStyleProperty("color", "")
	n.SetStyleProperty("white-space", "")
	n.SetStyleProperty("word-break", "")
	if _, ok := n.Attr(AttrStyle); ok {
		t.Error("empty style attribute left behind")
	}

	leaf := NewText("x")
	leaf.SetStyleProperty("color", "red")
	if _, ok := leaf.StyleProperty("color"); ok {
		t.Error("text leaf accepted a style")
	}
}
