// Package highlight renders syntax highlighting into a content tree with
// chroma. Each token becomes a span element whose class is chroma's short
// CSS class for the token type; plain text stays as bare leaves.
package highlight

import (
	"errors"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/caretjar/internal/engine/position"
	"github.com/dshills/caretjar/internal/tree"
)

// AttrClass holds the token class on generated spans.
const AttrClass = "class"

// TagToken is the tag of generated spans.
const TagToken = "span"

// ErrNoLexer is returned by New when no lexer matches.
var ErrNoLexer = errors.New("highlight: no lexer")

var (
	classTypesOnce sync.Once
	classTypes     map[string]chroma.TokenType
)

// Highlighter tokenises the tree text and rebuilds the tree from tokens.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style

	mu      sync.Mutex
	lastErr error
}

// New creates a highlighter for language, which may be a lexer name, an
// alias or a file name. An unknown style falls back to chroma's default.
func New(language, style string) (*Highlighter, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Match(language)
	}
	if lexer == nil {
		return nil, ErrNoLexer
	}
	return newHighlighter(lexer, style), nil
}

// Plain creates a highlighter that leaves text unstyled.
func Plain() *Highlighter {
	return newHighlighter(lexers.Fallback, "")
}

func newHighlighter(lexer chroma.Lexer, style string) *Highlighter {
	sty := styles.Get(style)
	if sty == nil {
		sty = styles.Fallback
	}
	return &Highlighter{lexer: chroma.Coalesce(lexer), style: sty}
}

// Name returns the lexer name.
func (h *Highlighter) Name() string {
	return h.lexer.Config().Name
}

// Highlight replaces the children of root with token spans. The text
// content is unchanged. On a tokenising error the tree is left untouched
// and the error is kept for LastError.
func (h *Highlighter) Highlight(root *tree.Node, _ *position.Position) {
	text := root.TextContent()
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		h.setErr(err)
		return
	}
	h.setErr(nil)

	root.RemoveChildren()
	rest := text
	for _, tok := range it.Tokens() {
		if rest == "" {
			break
		}
		v := tok.Value
		if !strings.HasPrefix(rest, v) {
			// Lexers may append a newline that is not in the text.
			v = commonPrefix(rest, v)
		}
		if v == "" {
			continue
		}
		rest = rest[len(v):]

		cls := ClassFor(tok.Type)
		if cls == "" {
			root.AppendChild(tree.NewText(v))
			continue
		}
		span := tree.NewElement(TagToken, tree.NewText(v))
		span.SetAttr(AttrClass, cls)
		root.AppendChild(span)
	}
	if rest != "" {
		root.AppendChild(tree.NewText(rest))
	}
	root.Normalize()
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func (h *Highlighter) setErr(err error) {
	h.mu.Lock()
	h.lastErr = err
	h.mu.Unlock()
}

// LastError returns the error of the most recent Highlight call.
func (h *Highlighter) LastError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// ClassFor returns the short class of a token type, falling back to its
// sub-category and category. Plain text has no class.
func ClassFor(t chroma.TokenType) string {
	for _, c := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if cls := chroma.StandardTypes[c]; cls != "" {
			return cls
		}
	}
	return ""
}

// TypeFor returns the token type with the given short class.
func TypeFor(class string) (chroma.TokenType, bool) {
	classTypesOnce.Do(func() {
		classTypes = make(map[string]chroma.TokenType, len(chroma.StandardTypes))
		for t, cls := range chroma.StandardTypes {
			if cls != "" {
				classTypes[cls] = t
			}
		}
	})
	t, ok := classTypes[class]
	return t, ok
}

// StyleFor returns the style entry for a span class. Unknown classes get
// the style's background entry.
func (h *Highlighter) StyleFor(class string) chroma.StyleEntry {
	t, ok := TypeFor(class)
	if !ok {
		t = chroma.Background
	}
	return h.style.Get(t)
}
