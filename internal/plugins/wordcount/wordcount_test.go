package wordcount

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/caretjar/internal/config"
	"github.com/dshills/caretjar/internal/debounce"
	"github.com/dshills/caretjar/internal/dispatcher"
	"github.com/dshills/caretjar/internal/editor"
	"github.com/dshills/caretjar/internal/tree"
)

func TestLineColumn(t *testing.T) {
	tests := []struct {
		source    string
		index     int
		line, col int
		ok        bool
	}{
		{"", 3, 0, 0, false},
		{"abc", 0, 0, 0, false},
		{"abc", 2, 1, 3, true},
		{"ab\ncd", 3, 2, 1, true},
		{"ab\ncd", 4, 2, 2, true},
		{"é\nx", 2, 2, 1, true},
		{"ab", 10, 1, 3, true},
	}
	for _, tt := range tests {
		line, col, ok := LineColumn(tt.source, tt.index)
		if line != tt.line || col != tt.col || ok != tt.ok {
			t.Errorf("LineColumn(%q, %d) = %d, %d, %v, want %d, %d, %v",
				tt.source, tt.index, line, col, ok, tt.line, tt.col, tt.ok)
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		index int
		want  Info
	}{
		{"empty", "", 0, Info{Row: 1, Col: 1}},
		{"words", "  one two\tthree\n", 5, Info{Words: 3, Chars: 16, Row: 1, Col: 6}},
		{"graphemes", "é 👍🏽", 1, Info{Words: 2, Chars: 3, Row: 1, Col: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Count(tt.code, tt.index)); diff != "" {
				t.Errorf("Count() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	got := Info{Words: 2, Chars: 9, Row: 3, Col: 4}.String()
	want := "9 characters, 2 words, line 3 column 4"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func newEditor(t *testing.T, text string, cfg Config) (*editor.Editor, *debounce.ManualClock, *Plugin, *[]string) {
	t.Helper()
	s := tree.NewSurface(nil)
	s.Root().SetTextContent(text)
	s.Focus()
	clock := debounce.NewManualClock()
	e := editor.New(s, nil, editor.WithClock(clock))
	e.FocusIn(nil)
	t.Cleanup(e.Destroy)

	var out []string
	cfg.Clock = clock
	cfg.Output = func(text string) { out = append(out, text) }
	p, ok := e.AddPlugin(dispatcher.Factory(New), cfg).(*Plugin)
	if !ok {
		t.Fatal("AddPlugin() did not return a word counter")
	}
	return e, clock, p, &out
}

func TestPluginCountsAfterKeyUp(t *testing.T) {
	e, clock, p, out := newEditor(t, "hello", Config{})

	if got := p.Info(); got != (Info{Words: 1, Chars: 5, Row: 1, Col: 6}) {
		t.Errorf("Info() after install = %+v", got)
	}

	e.Press(&editor.KeyEvent{Key: " "})
	e.Press(&editor.KeyEvent{Key: "x"})
	clock.Advance(DefaultDelay)

	want := Info{Words: 2, Chars: 7, Row: 1, Col: 8}
	if got := p.Info(); got != want {
		t.Errorf("Info() = %+v, want %+v", got, want)
	}
	if len(*out) != 2 {
		t.Fatalf("outputs = %q, want install and one debounced recount", *out)
	}
	if got := (*out)[1]; got != want.String() {
		t.Errorf("output = %q, want %q", got, want.String())
	}
}

func TestPluginHideAndFormat(t *testing.T) {
	e, clock, p, out := newEditor(t, "a b", Config{Hide: true})
	if got := p.Text(); got != "" {
		t.Errorf("Text() while hidden = %q, want empty", got)
	}

	e.UpdatePluginConfig(Name, Update{
		Show:   config.Bool(true),
		Format: func(i Info) string { return "w=" + string(rune('0'+i.Words)) },
	})
	e.Click(nil)
	clock.Advance(DefaultDelay)
	if got := p.Text(); got != "w=2" {
		t.Errorf("Text() = %q, want w=2", got)
	}

	e.UpdatePluginConfig(Name, Update{ShowFunc: func(code string) bool { return len(code) > 5 }})
	e.Click(nil)
	clock.Advance(DefaultDelay)
	if got := (*out)[len(*out)-1]; got != "" {
		t.Errorf("output with short text = %q, want empty", got)
	}
}

func TestPluginIgnoresOtherActions(t *testing.T) {
	e, clock, _, out := newEditor(t, "a", Config{Delay: time.Second})
	e.Scroll(nil)
	e.Dispatch(dispatcher.ActionResize, nil)
	clock.Advance(time.Second)
	if len(*out) != 1 {
		t.Errorf("outputs = %q, want only the install", *out)
	}
}

func TestPluginDestroyCancels(t *testing.T) {
	e, clock, _, out := newEditor(t, "a", Config{})
	e.Click(nil)
	e.RemovePlugin(Name)
	clock.Advance(DefaultDelay)
	if len(*out) != 1 {
		t.Errorf("outputs = %q, want only the install", *out)
	}
}
