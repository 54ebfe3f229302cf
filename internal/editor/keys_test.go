package editor

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/caretjar/internal/config"
	"github.com/dshills/caretjar/internal/debounce"
	"github.com/dshills/caretjar/internal/engine/position"
	"github.com/dshills/caretjar/internal/tree"
)

func TestFindPadding(t *testing.T) {
	tests := []struct {
		text       string
		padding    string
		start, end int
	}{
		{"", "", 0, 0},
		{"abc", "", 0, 0},
		{"\tx", "\t", 0, 1},
		{"a\n  b", "  ", 2, 4},
		{"a\n\t \t", "\t \t", 2, 5},
		{"é\n\tü", "\t", 2, 3},
	}
	for _, tt := range tests {
		padding, start, end := findPadding(tt.text)
		if padding != tt.padding || start != tt.start || end != tt.end {
			t.Errorf("findPadding(%q) = %q, %d, %d; want %q, %d, %d",
				tt.text, padding, start, end, tt.padding, tt.start, tt.end)
		}
	}
}

func TestKeyPredicates(t *testing.T) {
	tests := []struct {
		name   string
		ev     KeyEvent
		undo   bool
		redo   bool
		cpy    bool
		record bool
	}{
		{"letter", KeyEvent{Key: "a"}, false, false, false, true},
		{"ctrl-z", KeyEvent{Key: "z", Ctrl: true}, true, false, false, false},
		{"cmd-z", KeyEvent{Key: "Z", Meta: true}, true, false, false, false},
		{"ctrl-shift-z", KeyEvent{Key: "Z", Ctrl: true, Shift: true}, false, true, false, false},
		{"ctrl-y", KeyEvent{Key: "y", Ctrl: true}, false, true, false, false},
		{"ctrl-c", KeyEvent{Key: "c", Ctrl: true}, false, false, true, true},
		{"arrow", KeyEvent{Key: "ArrowUp"}, false, false, false, false},
		{"control", KeyEvent{Key: "Control", Ctrl: true}, false, false, false, false},
		{"alt", KeyEvent{Key: "Alt"}, false, false, false, false},
		{"meta", KeyEvent{Key: "Meta"}, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tt.ev
			if got := isUndo(&ev); got != tt.undo {
				t.Errorf("isUndo() = %v, want %v", got, tt.undo)
			}
			if got := isRedo(&ev); got != tt.redo {
				t.Errorf("isRedo() = %v, want %v", got, tt.redo)
			}
			if got := isCopy(&ev); got != tt.cpy {
				t.Errorf("isCopy() = %v, want %v", got, tt.cpy)
			}
			if got := shouldRecord(&ev); got != tt.record {
				t.Errorf("shouldRecord() = %v, want %v", got, tt.record)
			}
		})
	}
}

func TestEnter(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		caret int
		want  string
		pos   int
	}{
		{"plain", "ab", 2, "ab\n", 3},
		{"keeps indent", "\tab", 3, "\tab\n\t", 5},
		{"indents after brace", "\tif x {", 7, "\tif x {\n\t\t", 10},
		{"moves closer", "f(){}", 4, "f(){\n\t\n}", 6},
		{"moves closer keeping indent", "\tf(){}", 5, "\tf(){\n\t\t\n\t}", 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, s, _ := newEditor(t, tt.text)
			s.Select(tt.caret, tt.caret)
			e.Press(key("Enter"))

			if got := e.ToString(); got != tt.want {
				t.Errorf("ToString() = %q, want %q", got, tt.want)
			}
			if pos := mustSave(t, e); pos.Start != tt.pos || pos.End != tt.pos {
				t.Errorf("caret = %v, want %d", pos, tt.pos)
			}
		})
	}
}

func TestEnterCompatMode(t *testing.T) {
	compat := WithModeDetector(func(Surface) EditingMode { return CompatMode{} })
	noIndent := WithPatch(config.Patch{PreserveIndent: config.Bool(false)})

	tests := []struct {
		name  string
		text  string
		caret int
		want  string
		pos   int
	}{
		{"at end", "ab", 2, "ab\n ", 3},
		{"in middle", "ab", 1, "a\nb", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, s, _ := newEditor(t, tt.text, compat, noIndent)
			s.Select(tt.caret, tt.caret)
			ev := key("Enter")
			e.Press(ev)

			if !ev.DefaultPrevented() || !ev.PropagationStopped() {
				t.Error("compat newline did not consume the event")
			}
			if got := e.ToString(); got != tt.want {
				t.Errorf("ToString() = %q, want %q", got, tt.want)
			}
			if pos := mustSave(t, e); pos.Start != tt.pos {
				t.Errorf("caret = %v, want %d", pos, tt.pos)
			}
		})
	}
}

func TestTab(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		caret int
		shift bool
		tab   string
		want  string
		pos   int
	}{
		{"insert", "ab", 1, false, "\t", "a\tb", 2},
		{"insert spaces", "ab", 2, false, "  ", "ab  ", 4},
		{"outdent", "x\n\t\tab", 6, true, "\t", "x\n\tab", 5},
		{"outdent partial", "x\n ab", 5, true, "    ", "x\nab", 4},
		{"outdent without padding", "ab", 1, true, "\t", "ab", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, s, _ := newEditor(t, tt.text, WithPatch(config.Patch{Tab: config.String(tt.tab)}))
			s.Select(tt.caret, tt.caret)
			ev := &KeyEvent{Key: "Tab", Shift: tt.shift}
			e.Press(ev)

			if !ev.DefaultPrevented() {
				t.Error("Tab not prevented")
			}
			if got := e.ToString(); got != tt.want {
				t.Errorf("ToString() = %q, want %q", got, tt.want)
			}
			if pos := mustSave(t, e); pos.Start != tt.pos {
				t.Errorf("caret = %v, want %d", pos, tt.pos)
			}
		})
	}
}

func TestTabNotCaught(t *testing.T) {
	e, s, _ := newEditor(t, "ab", WithPatch(config.Patch{CatchTab: config.Bool(false)}))
	s.Select(1, 1)
	ev := key("Tab")
	e.Press(ev)
	if ev.DefaultPrevented() {
		t.Error("Tab prevented with CatchTab off")
	}
	if got := e.ToString(); got != "ab" {
		t.Errorf("ToString() = %q, want %q", got, "ab")
	}
}

func TestAutoClose(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		anchor, foc  int
		key          string
		want         string
		wantSelected position.Position
	}{
		{"caret", "ab", 1, 1, "(", "a()b", position.Position{Start: 2, End: 2}},
		{"wraps selection", "abcd", 1, 3, "[", "a[bc]d", position.Position{Start: 2, End: 4}},
		{"quote", "", 0, 0, `"`, `""`, position.Position{Start: 1, End: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, s, _ := newEditor(t, tt.text)
			s.Select(tt.anchor, tt.foc)
			e.Press(key(tt.key))

			if got := e.ToString(); got != tt.want {
				t.Errorf("ToString() = %q, want %q", got, tt.want)
			}
			pos := mustSave(t, e)
			if !pos.SameRange(tt.wantSelected) {
				t.Errorf("selection = %v, want %v", pos, tt.wantSelected)
			}
		})
	}
}

func TestAutoCloseDisabled(t *testing.T) {
	e, s, _ := newEditor(t, "", WithPatch(config.Patch{AddClosing: config.Bool(false)}))
	s.Focus()
	e.Press(key("("))
	if got := e.ToString(); got != "(" {
		t.Errorf("ToString() = %q, want %q", got, "(")
	}
}

func TestBackspace(t *testing.T) {
	e, s, _ := newEditor(t, "abc")
	s.Select(3, 3)
	e.Press(key("Backspace"))
	if got := e.ToString(); got != "ab" {
		t.Errorf("ToString() = %q, want %q", got, "ab")
	}
}

func TestCursorWindows(t *testing.T) {
	e, s, _ := newEditor(t, "")
	root := s.Root()
	root.RemoveChildren()
	root.AppendChild(tree.NewText("ab"))
	root.AppendChild(tree.NewElement("span", tree.NewText("cd")))
	root.AppendChild(tree.NewText("ef"))

	s.Select(1, 5)
	if got := e.beforeCursor(); got != "a" {
		t.Errorf("beforeCursor() = %q, want %q", got, "a")
	}
	if got := e.afterCursor(); got != "f" {
		t.Errorf("afterCursor() = %q, want %q", got, "f")
	}

	s.Select(5, 1)
	if got := e.beforeCursor(); got != "a" {
		t.Errorf("beforeCursor() backward = %q, want %q", got, "a")
	}
}

func TestPaste(t *testing.T) {
	e, s, clock := newEditor(t, "ab")
	s.Select(1, 1)
	var updates []string
	e.OnUpdate(func(code string) { updates = append(updates, code) })

	ev := NewClipboardEvent("x\r\ny\rz")
	e.Paste(ev)

	if got := e.ToString(); got != "ax\ny\nzb" {
		t.Fatalf("ToString() = %q, want %q", got, "ax\ny\nzb")
	}
	if !ev.DefaultPrevented() {
		t.Error("paste not prevented")
	}
	pos := mustSave(t, e)
	if pos.Start != 6 || pos.End != 6 {
		t.Errorf("caret = %v, want 6", pos)
	}
	if got := e.History().Len(); got != 2 {
		t.Errorf("History().Len() = %d, want 2", got)
	}

	clock.Advance(settle)
	if diff := cmp.Diff([]string{"ax\ny\nzb"}, updates); diff != "" {
		t.Errorf("updates mismatch (-want +got):\n%s", diff)
	}

	e.Undo()
	if got := e.ToString(); got != "ab" {
		t.Errorf("after undo ToString() = %q, want %q", got, "ab")
	}
}

func TestPasteNormalizesUnicode(t *testing.T) {
	e, s, _ := newEditor(t, "", WithPatch(config.Patch{NormalizeUnicode: config.Bool(true)}))
	s.Focus()
	e.Paste(NewClipboardEvent("e\u0301"))
	if got := e.ToString(); got != "\u00e9" {
		t.Errorf("ToString() = %q, want %q", got, "\u00e9")
	}
}

func TestPasteReadOnly(t *testing.T) {
	e, _, _ := newEditor(t, "ab", WithPatch(config.Patch{ReadOnly: config.Bool(true)}))
	e.Paste(NewClipboardEvent("zz"))
	if got := e.ToString(); got != "ab" {
		t.Errorf("ToString() = %q, want %q", got, "ab")
	}
}

func TestCut(t *testing.T) {
	e, s, _ := newEditor(t, "hello")
	s.Select(1, 3)

	ev := NewClipboardEvent("")
	e.Cut(ev)

	if ev.Data() != "el" {
		t.Errorf("clipboard = %q, want %q", ev.Data(), "el")
	}
	if got := e.ToString(); got != "hlo" {
		t.Fatalf("ToString() = %q, want %q", got, "hlo")
	}
	if pos := mustSave(t, e); pos.Start != 1 || pos.End != 1 {
		t.Errorf("caret = %v, want 1", pos)
	}
	if got := e.History().Len(); got != 2 {
		t.Errorf("History().Len() = %d, want 2", got)
	}

	e.Undo()
	if got := e.ToString(); got != "hello" {
		t.Errorf("after undo ToString() = %q, want %q", got, "hello")
	}
}

func TestWithPostRoutesCallbacks(t *testing.T) {
	var queue []func()
	s := tree.NewSurface(nil)
	s.Focus()
	clock := debounce.NewManualClock()
	e := New(s, nil, WithClock(clock), WithPost(func(f func()) { queue = append(queue, f) }))
	defer e.Destroy()

	updated := ""
	e.OnUpdate(func(code string) { updated = code })
	e.Press(key("a"))
	clock.Advance(time.Second)

	if updated != "" {
		t.Fatal("update ran on the clock instead of the post queue")
	}
	for _, f := range queue {
		f()
	}
	if updated != "a" {
		t.Errorf("update = %q, want %q", updated, "a")
	}
}
