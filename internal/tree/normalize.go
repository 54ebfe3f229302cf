package tree

import "unicode/utf8"

// Point is one endpoint of a selection. Offset is a character offset inside
// a text leaf or a child index inside an element.
type Point struct {
	Node   *Node
	Offset int
}

// IsZero reports whether p has no node.
func (p Point) IsZero() bool { return p.Node == nil }

// Normalize merges adjacent text leaves and removes empty ones in the
// subtree rooted at n. Every point in pts is updated in place so that it
// keeps addressing the same character position afterwards.
func (n *Node) Normalize(pts ...*Point) {
	if n.kind != ElementKind {
		return
	}
	i := 0
	for i < len(n.children) {
		c := n.children[i]
		if c.kind == ElementKind {
			c.Normalize(pts...)
			i++
			continue
		}
		if c.text == "" {
			n.removeAt(i, pts)
			continue
		}
		for i+1 < len(n.children) && n.children[i+1].kind == TextKind {
			next := n.children[i+1]
			shift := utf8.RuneCountInString(c.text)
			c.text += next.text
			for _, p := range pts {
				if p == nil {
					continue
				}
				switch {
				case p.Node == next:
					p.Node = c
					p.Offset += shift
				case p.Node == n && p.Offset == i+1:
					p.Node = c
					p.Offset = shift
				case p.Node == n && p.Offset > i+1:
					p.Offset--
				}
			}
			n.children = append(n.children[:i+1], n.children[i+2:]...)
			next.parent = nil
		}
		i++
	}
}

// removeAt drops the child at i, moving points that referenced it onto the
// parent boundary where it used to be.
func (n *Node) removeAt(i int, pts []*Point) {
	c := n.children[i]
	for _, p := range pts {
		if p == nil {
			continue
		}
		switch {
		case p.Node == c:
			p.Node = n
			p.Offset = i
		case p.Node == n && p.Offset > i:
			p.Offset--
		}
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	c.parent = nil
}

// OffsetOf converts a point into a character offset from the start of root.
// It reports false when the point does not lie under root.
func OffsetOf(root *Node, p Point) (int, bool) {
	if p.Node == nil || !root.Contains(p.Node) {
		return 0, false
	}
	if p.Node.kind == ElementKind {
		total := prefixLen(root, p.Node)
		for i, c := range p.Node.children {
			if i >= p.Offset {
				break
			}
			total += c.Len()
		}
		return total, true
	}
	off := p.Offset
	if l := utf8.RuneCountInString(p.Node.text); off > l {
		off = l
	}
	if off < 0 {
		off = 0
	}
	return prefixLen(root, p.Node) + off, true
}

// prefixLen counts characters of leaves that come before n in document
// order, excluding n's own subtree.
func prefixLen(root, n *Node) int {
	if n == root {
		return 0
	}
	total := 0
	Walk(root, func(c *Node) bool {
		if c == n {
			return false
		}
		if c.kind == TextKind {
			total += utf8.RuneCountInString(c.text)
		}
		return true
	})
	return total
}

// PointAt returns the leaf point for a character offset. The first leaf
// whose end reaches the offset wins, so boundary offsets resolve to the end
// of the earlier leaf. An empty tree yields root at its child count.
func PointAt(root *Node, offset int) Point {
	if offset < 0 {
		offset = 0
	}
	current := 0
	var last *Node
	for _, leaf := range Leaves(root) {
		l := utf8.RuneCountInString(leaf.text)
		if current+l >= offset {
			return Point{Node: leaf, Offset: offset - current}
		}
		current += l
		last = leaf
	}
	if last != nil {
		return Point{Node: last, Offset: utf8.RuneCountInString(last.text)}
	}
	return Point{Node: root, Offset: len(root.children)}
}
