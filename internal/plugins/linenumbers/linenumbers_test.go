package linenumbers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/caretjar/internal/debounce"
	"github.com/dshills/caretjar/internal/dispatcher"
	"github.com/dshills/caretjar/internal/editor"
	"github.com/dshills/caretjar/internal/tree"
)

func TestCount(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"", 1},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\r\nb\r\n", 2},
		{"\n\n", 2},
		{"a\n\n", 2},
	}
	for _, tt := range tests {
		if got := Count(tt.code); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	got := Render(10)
	if len(got) != 10 {
		t.Fatalf("Render(10) returned %d lines", len(got))
	}
	if got[0] != " 1" || got[9] != "10" {
		t.Errorf("Render(10) = %q", got)
	}
	if got := Render(0); len(got) != 0 {
		t.Errorf("Render(0) = %q, want empty", got)
	}
}

func newEditor(t *testing.T, text string, cfg Config) (*editor.Editor, *debounce.ManualClock, *Plugin, *[]int) {
	t.Helper()
	s := tree.NewSurface(nil)
	s.Root().SetTextContent(text)
	s.Focus()
	clock := debounce.NewManualClock()
	e := editor.New(s, nil, editor.WithClock(clock))
	e.FocusIn(nil)
	t.Cleanup(e.Destroy)

	var out []int
	cfg.Clock = clock
	cfg.Output = func(n int) { out = append(out, n) }
	p, ok := e.AddPlugin(dispatcher.Factory(New), cfg).(*Plugin)
	if !ok {
		t.Fatal("AddPlugin() did not return a line-number plugin")
	}
	return e, clock, p, &out
}

func TestPluginTracksResize(t *testing.T) {
	e, clock, p, out := newEditor(t, "a\nb", Config{})
	if got := p.Lines(); got != 2 {
		t.Errorf("Lines() = %d, want 2", got)
	}

	e.UpdateCode("a\nb\nc\n", false)
	e.Resize()
	if got := p.Lines(); got != 2 {
		t.Errorf("Lines() before the quiet window = %d, want 2", got)
	}
	clock.Advance(DefaultDelay)
	if got := p.Lines(); got != 3 {
		t.Errorf("Lines() = %d, want 3", got)
	}
	if diff := cmp.Diff([]int{2, 3}, *out); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, p.Gutter()); diff != "" {
		t.Errorf("Gutter() mismatch (-want +got):\n%s", diff)
	}
}

func TestPluginRefreshIsImmediate(t *testing.T) {
	e, clock, p, _ := newEditor(t, "a", Config{})
	e.UpdateCode("a\nb\nc\nd", false)
	e.Refresh()
	clock.Advance(e.Options().Debounce.UpdateDelay())
	if got := p.Lines(); got != 4 {
		t.Errorf("Lines() after refresh = %d, want 4", got)
	}
}

func TestPluginShowHide(t *testing.T) {
	e, clock, p, out := newEditor(t, "a\nb", Config{Hide: true})
	if got := p.Lines(); got != 0 {
		t.Errorf("Lines() while hidden = %d, want 0", got)
	}

	e.UpdatePluginConfig(Name, Update{Show: true})
	clock.Advance(e.Options().Debounce.UpdateDelay())
	if got := p.Lines(); got != 2 {
		t.Errorf("Lines() after show = %d, want 2", got)
	}

	e.UpdatePluginConfig(Name, &Update{Show: false})
	if got := p.Lines(); got != 0 {
		t.Errorf("Lines() after hide = %d, want 0", got)
	}
	if diff := cmp.Diff([]int{2, 0}, *out); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestPluginScroll(t *testing.T) {
	var events []any
	e, _, _, _ := newEditor(t, "a", Config{OnScroll: func(ev any) { events = append(events, ev) }})
	e.Scroll("top")
	e.Scroll(7)
	if diff := cmp.Diff([]any{"top", 7}, events); diff != "" {
		t.Errorf("scroll events mismatch (-want +got):\n%s", diff)
	}
}

func TestPluginDestroy(t *testing.T) {
	e, clock, p, out := newEditor(t, "a\nb", Config{})
	e.Resize()
	e.RemovePlugin(Name)
	clock.Advance(DefaultDelay)
	if got := p.Lines(); got != 0 {
		t.Errorf("Lines() after destroy = %d, want 0", got)
	}
	if diff := cmp.Diff([]int{2, 0}, *out); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}
