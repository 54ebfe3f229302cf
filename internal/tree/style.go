package tree

import "strings"

// AttrStyle holds inline style declarations.
const AttrStyle = "style"

// StyleProperty returns the value of one declaration in n's style
// attribute.
func (n *Node) StyleProperty(name string) (string, bool) {
	s, _ := n.Attr(AttrStyle)
	for _, decl := range parseStyle(s) {
		if decl[0] == name {
			return decl[1], true
		}
	}
	return "", false
}

// SetStyleProperty sets one declaration in n's style attribute, keeping
// the others in order. An empty value removes the declaration.
func (n *Node) SetStyleProperty(name, value string) {
	if n.kind != ElementKind {
		return
	}
	s, _ := n.Attr(AttrStyle)
	decls := parseStyle(s)
	found := false
	out := decls[:0]
	for _, d := range decls {
		if d[0] == name {
			found = true
			if value == "" {
				continue
			}
			d[1] = value
		}
		out = append(out, d)
	}
	if !found && value != "" {
		out = append(out, [2]string{name, value})
	}
	if len(out) == 0 {
		n.RemoveAttr(AttrStyle)
		return
	}
	parts := make([]string, len(out))
	for i, d := range out {
		parts[i] = d[0] + ": " + d[1]
	}
	n.SetAttr(AttrStyle, strings.Join(parts, "; "))
}

func parseStyle(s string) [][2]string {
	var out [][2]string
	for _, decl := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" {
			continue
		}
		out = append(out, [2]string{name, value})
	}
	return out
}
