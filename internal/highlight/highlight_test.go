package highlight

import (
	"testing"

	"github.com/alecthomas/chroma/v2"

	"github.com/dshills/caretjar/internal/tree"
)

func TestHighlightPreservesText(t *testing.T) {
	h, err := New("go", "monokai")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []string{
		"",
		"package main",
		"func main() {\n\tx := 1\n}\n",
		"s := \"a<b>&c\"",
	}
	for _, src := range tests {
		root := tree.NewElement("div", tree.NewText(src))
		h.Highlight(root, nil)
		if got := root.TextContent(); got != src {
			t.Errorf("Highlight(%q) text = %q", src, got)
		}
		if err := h.LastError(); err != nil {
			t.Errorf("LastError() = %v", err)
		}
	}
}

func TestHighlightWrapsTokens(t *testing.T) {
	h, err := New("main.go", "monokai")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	root := tree.NewElement("div", tree.NewText("func f() {}"))
	h.Highlight(root, nil)

	first := root.FirstChild()
	if first == nil || !first.IsElement() {
		t.Fatalf("first child = %v, want span", first)
	}
	if cls, _ := first.Attr(AttrClass); cls != "kd" {
		t.Errorf("class of %q = %q, want kd", first.TextContent(), cls)
	}
	if first.TextContent() != "func" {
		t.Errorf("first token = %q, want func", first.TextContent())
	}
	if !h.StyleFor("kd").Colour.IsSet() {
		t.Error("StyleFor(kd) has no colour")
	}
}

func TestHighlightIsIdempotent(t *testing.T) {
	h, err := New("go", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	root := tree.NewElement("div", tree.NewText("var x = 1"))
	h.Highlight(root, nil)
	once := tree.Marshal(root)
	h.Highlight(root, nil)
	if got := tree.Marshal(root); got != once {
		t.Errorf("second Highlight() = %q, want %q", got, once)
	}
}

func TestUnknownLexer(t *testing.T) {
	if _, err := New("no-such-language-xyz", ""); err != ErrNoLexer {
		t.Errorf("New() error = %v, want ErrNoLexer", err)
	}
}

func TestPlain(t *testing.T) {
	root := tree.NewElement("div", tree.NewText("a"), tree.NewElement("b", tree.NewText("c")))
	Plain().Highlight(root, nil)
	if got := tree.Marshal(root); got != "<div>ac</div>" {
		t.Errorf("Marshal() = %q, want %q", got, "<div>ac</div>")
	}
}

func TestClassFor(t *testing.T) {
	tests := []struct {
		typ  chroma.TokenType
		want string
	}{
		{chroma.Keyword, "k"},
		{chroma.KeywordDeclaration, "kd"},
		{chroma.Text, ""},
		{chroma.LiteralStringDouble, "s2"},
	}
	for _, tt := range tests {
		if got := ClassFor(tt.typ); got != tt.want {
			t.Errorf("ClassFor(%v) = %q, want %q", tt.typ, got, tt.want)
		}
	}
	if typ, ok := TypeFor("kd"); !ok || typ != chroma.KeywordDeclaration {
		t.Errorf("TypeFor(kd) = %v, %v", typ, ok)
	}
}
