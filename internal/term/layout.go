package term

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caretjar/internal/highlight"
	"github.com/dshills/caretjar/internal/plugins/jsonvalidate"
	"github.com/dshills/caretjar/internal/plugins/marker"
	"github.com/dshills/caretjar/internal/tree"
)

// glyph is one character of the text with its display style.
type glyph struct {
	r     rune
	style tcell.Style
}

// row is one screen row of laid-out text. offsets[i] is the character
// offset of column i; end is the offset just past the row.
type row struct {
	glyphs  []glyph
	offsets []int
	end     int
}

// start returns the offset of the row's first column, or -1 for an empty
// row.
func (r row) start() int {
	if len(r.offsets) == 0 {
		return -1
	}
	return r.offsets[0]
}

// glyphs flattens the tree into styled characters.
func glyphs(root *tree.Node, hl *highlight.Highlighter) []glyph {
	var out []glyph
	for _, leaf := range tree.Leaves(root) {
		style := leafStyle(root, leaf, hl)
		for _, r := range leaf.Text() {
			out = append(out, glyph{r: r, style: style})
		}
	}
	return out
}

func leafStyle(root, leaf *tree.Node, hl *highlight.Highlighter) tcell.Style {
	style := tcell.StyleDefault
	styled := false
	for n := leaf.Parent(); n != nil && n != root; n = n.Parent() {
		if marker.HasClass(n, jsonvalidate.MarkerID) || marker.HasClass(n, marker.DefaultID) {
			style = style.Underline(true)
		}
		if styled || hl == nil {
			continue
		}
		class, _ := n.Attr(highlight.AttrClass)
		for _, c := range strings.Fields(class) {
			if _, ok := highlight.TypeFor(c); ok {
				style = chromaStyle(style, hl.StyleFor(c))
				styled = true
				break
			}
		}
	}
	return style
}

// chromaStyle applies a chroma style entry's foreground and attributes.
// Backgrounds are left to the terminal.
func chromaStyle(st tcell.Style, e chroma.StyleEntry) tcell.Style {
	if e.Colour.IsSet() {
		st = st.Foreground(tcell.NewRGBColor(int32(e.Colour.Red()), int32(e.Colour.Green()), int32(e.Colour.Blue())))
	}
	if e.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if e.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if e.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

// layout splits glyphs into rows of at most width columns. Without wrap,
// long lines are cut at width but keep their offsets for caret placement.
func layout(gs []glyph, width int, wrap bool) []row {
	if width < 1 {
		width = 1
	}
	rows := []row{{}}
	cur := &rows[0]
	for i, g := range gs {
		if g.r == '\n' {
			cur.end = i
			rows = append(rows, row{})
			cur = &rows[len(rows)-1]
			continue
		}
		if len(cur.glyphs) == width && wrap {
			cur.end = i
			rows = append(rows, row{})
			cur = &rows[len(rows)-1]
		}
		cur.glyphs = append(cur.glyphs, g)
		cur.offsets = append(cur.offsets, i)
	}
	cur.end = len(gs)
	return rows
}

// locate returns the row and column of character offset off. Offsets of
// newlines and the end of text sit just past their row's last column.
func locate(rows []row, off int) (int, int) {
	for y, r := range rows {
		for x, o := range r.offsets {
			if o == off {
				return y, x
			}
		}
	}
	for y, r := range rows {
		if r.end == off {
			return y, len(r.offsets)
		}
	}
	last := len(rows) - 1
	return last, len(rows[last].offsets)
}

// offsetAt returns the character offset displayed at row y, column x.
func offsetAt(rows []row, y, x int) int {
	if len(rows) == 0 {
		return 0
	}
	y = min(max(y, 0), len(rows)-1)
	r := rows[y]
	if x < 0 {
		x = 0
	}
	if x < len(r.offsets) {
		return r.offsets[x]
	}
	return r.end
}
