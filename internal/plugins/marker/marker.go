// Package marker flags ranges of text with classed span elements.
//
// A mark wraps the words of the text leaf holding a character index. The
// text itself is unchanged, so marks survive selection saves and restores
// but not a re-highlight, which rebuilds the tree.
package marker

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/caretjar/internal/tree"
)

// Element and attribute names used for marks.
const (
	TagMark    = "span"
	AttrClass  = "class"
	AttrStyle  = "style"
	AttrTitle  = "title"
	DefaultID  = "caretjar-marker"
	classSplit = " "
)

// Spec describes one mark.
type Spec struct {
	// ID groups the spans of one mark. Marking a leaf already inside a span
	// carrying ID updates that span instead of nesting another.
	ID string
	// Index is the character index to mark. When zero, Line and Column
	// (both 1-based) locate the index instead.
	Index  int
	Line   int
	Column int
	// Message becomes the span's title.
	Message string
	Class   string
	Style   string
}

func (s Spec) id() string {
	if s.ID == "" {
		return DefaultID
	}
	return s.ID
}

func (s Spec) class() string {
	if s.Class == "" {
		return s.id()
	}
	return s.Class + classSplit + s.id()
}

// IndexAt converts a 1-based line and column into a character index in
// code. Lines past the end contribute nothing.
func IndexAt(code string, line, column int) int {
	index := 0
	lines := strings.Split(code, "\n")
	for i := 0; i < line-1; i++ {
		if i < len(lines) {
			index += utf8.RuneCountInString(lines[i])
		}
		index++
	}
	return index + column - 1
}

// HasClass reports whether n carries class among its space-separated
// classes.
func HasClass(n *tree.Node, class string) bool {
	v, _ := n.Attr(AttrClass)
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Insert marks the words of the text leaf holding character index start.
// It returns the span elements carrying the mark, or nil when there is no
// text to mark.
func Insert(root *tree.Node, spec Spec) []*tree.Node {
	leaf := leafAt(root, spec.Index)
	if leaf == nil {
		return nil
	}

	parent := leaf.Parent()
	if parent != root && HasClass(parent, spec.id()) {
		apply(parent, spec)
		return []*tree.Node{parent}
	}

	var marks []*tree.Node
	for _, frag := range fragments(leaf.Text()) {
		if strings.TrimSpace(frag) == "" {
			parent.InsertBefore(tree.NewText(frag), leaf)
			continue
		}
		span := tree.NewElement(TagMark, tree.NewText(frag))
		apply(span, spec)
		parent.InsertBefore(span, leaf)
		marks = append(marks, span)
	}
	parent.RemoveChild(leaf)
	return marks
}

func apply(n *tree.Node, spec Spec) {
	n.SetAttr(AttrClass, spec.class())
	setOrRemove(n, AttrStyle, spec.Style)
	setOrRemove(n, AttrTitle, spec.Message)
}

func setOrRemove(n *tree.Node, key, value string) {
	if value == "" {
		n.RemoveAttr(key)
		return
	}
	n.SetAttr(key, value)
}

// leafAt returns the first text leaf whose range extends past index.
func leafAt(root *tree.Node, index int) *tree.Node {
	current := 0
	var found *tree.Node
	tree.Walk(root, func(n *tree.Node) bool {
		if !n.IsText() || n.Text() == "" {
			return true
		}
		l := utf8.RuneCountInString(n.Text())
		if current+l > index {
			found = n
			return false
		}
		current += l
		return true
	})
	return found
}

// fragments splits s into alternating runs of space and non-space.
func fragments(s string) []string {
	var out []string
	start := 0
	prev := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if i > 0 && space != prev {
			out = append(out, s[start:i])
			start = i
		}
		prev = space
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// Unwrap replaces each mark with its children and merges the freed text.
func Unwrap(marks []*tree.Node) {
	parents := make(map[*tree.Node]bool)
	for _, m := range marks {
		parent := m.Parent()
		if parent == nil {
			continue
		}
		for _, c := range append([]*tree.Node(nil), m.Children()...) {
			parent.InsertBefore(c, m)
		}
		parent.RemoveChild(m)
		parents[parent] = true
	}
	for p := range parents {
		p.Normalize()
	}
}
