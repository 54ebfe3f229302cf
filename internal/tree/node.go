package tree

import (
	"sort"
	"unicode/utf8"
)

// Kind identifies what a node holds.
type Kind int

const (
	// TextKind is a leaf holding a run of characters.
	TextKind Kind = iota
	// ElementKind is a container with children.
	ElementKind
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case TextKind:
		return "text"
	case ElementKind:
		return "element"
	default:
		return "unknown"
	}
}

// AttrEditable is the attribute that marks a subtree as non-editable when
// set to "false".
const AttrEditable = "contenteditable"

// Node is a single node of a content tree.
type Node struct {
	kind     Kind
	tag      string
	text     string
	attrs    map[string]string
	parent   *Node
	children []*Node
}

// NewText creates a text leaf.
func NewText(s string) *Node {
	return &Node{kind: TextKind, text: s}
}

// NewElement creates an element with the given children appended in order.
func NewElement(tag string, children ...*Node) *Node {
	n := &Node{kind: ElementKind, tag: tag}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool { return n != nil && n.kind == TextKind }

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool { return n != nil && n.kind == ElementKind }

// Tag returns the element tag, or "" for text leaves.
func (n *Node) Tag() string { return n.tag }

// Text returns the characters of a text leaf.
func (n *Node) Text() string { return n.text }

// SetText replaces the characters of a text leaf. It is a no-op on elements.
func (n *Node) SetText(s string) {
	if n.kind == TextKind {
		n.text = s
	}
}

// Parent returns the parent node, or nil for a detached node or a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. Callers must not modify the slice.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the child at index i, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node { return n.Child(0) }

// NextSibling returns the node following n under the same parent, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.IndexOf(n)
	return n.parent.Child(i + 1)
}

// IndexOf returns the index of child c, or -1.
func (n *Node) IndexOf(c *Node) int {
	for i, ch := range n.children {
		if ch == c {
			return i
		}
	}
	return -1
}

// Attr returns an attribute value.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// SetAttr sets an attribute on an element.
func (n *Node) SetAttr(key, value string) {
	if n.kind != ElementKind {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(key string) {
	delete(n.attrs, key)
}

// AttrKeys returns attribute names in sorted order.
func (n *Node) AttrKeys() []string {
	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AppendChild adds c as the last child of n, detaching it from any
// previous parent.
func (n *Node) AppendChild(c *Node) {
	n.InsertAt(len(n.children), c)
}

// InsertBefore inserts c before ref. A nil or foreign ref appends.
func (n *Node) InsertBefore(c, ref *Node) {
	i := -1
	if ref != nil {
		i = n.IndexOf(ref)
	}
	if i < 0 {
		i = len(n.children)
	}
	n.InsertAt(i, c)
}

// InsertAt inserts c at child index i, clamped to the valid range.
func (n *Node) InsertAt(i int, c *Node) {
	if c == nil || n.kind != ElementKind {
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.parent = n
}

// RemoveChild detaches c from n. It reports whether c was a child.
func (n *Node) RemoveChild(c *Node) bool {
	i := n.IndexOf(c)
	if i < 0 {
		return false
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	c.parent = nil
	return true
}

// RemoveChildren detaches every child of n.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// TextContent returns the concatenated text of every leaf under n.
func (n *Node) TextContent() string {
	if n.kind == TextKind {
		return n.text
	}
	var buf []byte
	Walk(n, func(c *Node) bool {
		if c.kind == TextKind {
			buf = append(buf, c.text...)
		}
		return true
	})
	return string(buf)
}

// SetTextContent replaces all children of n with a single text leaf.
// An empty string leaves n without children.
func (n *Node) SetTextContent(s string) {
	if n.kind == TextKind {
		n.text = s
		return
	}
	n.RemoveChildren()
	if s != "" {
		n.AppendChild(NewText(s))
	}
}

// Len returns the number of characters under n.
func (n *Node) Len() int {
	if n.kind == TextKind {
		return utf8.RuneCountInString(n.text)
	}
	total := 0
	Walk(n, func(c *Node) bool {
		if c.kind == TextKind {
			total += utf8.RuneCountInString(c.text)
		}
		return true
	})
	return total
}

// Contains reports whether d is n or a descendant of n.
func (n *Node) Contains(d *Node) bool {
	for ; d != nil; d = d.parent {
		if d == n {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of n without a parent.
func (n *Node) Clone() *Node {
	c := &Node{kind: n.kind, tag: n.tag, text: n.text}
	if len(n.attrs) > 0 {
		c.attrs = make(map[string]string, len(n.attrs))
		for k, v := range n.attrs {
			c.attrs[k] = v
		}
	}
	for _, ch := range n.children {
		c.AppendChild(ch.Clone())
	}
	return c
}

// Walk visits every descendant of root in depth-first pre-order. Root
// itself is not visited. Returning false from fn stops the walk.
func Walk(root *Node, fn func(*Node) bool) {
	walk(root, fn)
}

func walk(n *Node, fn func(*Node) bool) bool {
	for _, c := range n.children {
		if !fn(c) {
			return false
		}
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// Leaves returns the text leaves under root in document order.
func Leaves(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.kind == TextKind {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Uneditable returns the nearest ancestor-or-self of n below root that has
// contenteditable="false", or nil.
func Uneditable(root, n *Node) *Node {
	for ; n != nil && n != root; n = n.parent {
		if n.kind != ElementKind {
			continue
		}
		if v, ok := n.attrs[AttrEditable]; ok && v == "false" {
			return n
		}
	}
	return nil
}
