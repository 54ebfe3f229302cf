package tree

import "strings"

// Snapshot is a full structural copy of the children of a node.
// Two snapshots are equal when their markup is equal.
type Snapshot struct {
	markup string
	nodes  []*Node
}

// Take captures the children of n.
func Take(n *Node) Snapshot {
	s := Snapshot{markup: MarshalChildren(n)}
	s.nodes = make([]*Node, len(n.children))
	for i, c := range n.children {
		s.nodes[i] = c.Clone()
	}
	return s
}

// Markup returns the serialized form of the snapshot.
func (s Snapshot) Markup() string { return s.markup }

// Equal reports whether two snapshots describe the same structure.
func (s Snapshot) Equal(o Snapshot) bool { return s.markup == o.markup }

// IsZero reports whether the snapshot was never taken.
func (s Snapshot) IsZero() bool { return s.nodes == nil && s.markup == "" }

// ReplaceChildren replaces the children of n with a fresh copy of the
// snapshot. The snapshot itself stays untouched and can be applied again.
func (n *Node) ReplaceChildren(s Snapshot) {
	n.RemoveChildren()
	for _, c := range s.nodes {
		n.AppendChild(c.Clone())
	}
}

// MarshalChildren serializes the children of n as markup, the way innerHTML
// does for a DOM element.
func MarshalChildren(n *Node) string {
	var b strings.Builder
	for _, c := range n.children {
		marshal(&b, c)
	}
	return b.String()
}

// Marshal serializes n and its subtree.
func Marshal(n *Node) string {
	var b strings.Builder
	marshal(&b, n)
	return b.String()
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func marshal(b *strings.Builder, n *Node) {
	if n.kind == TextKind {
		textEscaper.WriteString(b, n.text)
		return
	}
	b.WriteByte('<')
	b.WriteString(n.tag)
	for _, k := range n.AttrKeys() {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		attrEscaper.WriteString(b, n.attrs[k])
		b.WriteByte('"')
	}
	b.WriteByte('>')
	for _, c := range n.children {
		marshal(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
}
