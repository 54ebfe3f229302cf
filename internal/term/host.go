package term

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caretjar/internal/debounce"
	"github.com/dshills/caretjar/internal/editor"
	"github.com/dshills/caretjar/internal/engine/position"
	"github.com/dshills/caretjar/internal/highlight"
	"github.com/dshills/caretjar/internal/logging"
	"github.com/dshills/caretjar/internal/plugins/linenumbers"
	"github.com/dshills/caretjar/internal/plugins/wordcount"
	"github.com/dshills/caretjar/internal/tree"
)

// Config configures a Host.
type Config struct {
	// Highlighter colours the text. Nil shows plain text.
	Highlighter *highlight.Highlighter
	// Clock drives editor and plugin debouncing. Nil means real time.
	Clock debounce.Clock
	// Logger receives editor diagnostics.
	Logger *logging.Logger
	// EditorOptions are applied after the host's own options.
	EditorOptions []editor.Option
	// OnSave receives the text when Ctrl-S is pressed.
	OnSave func(text string) error
}

// Host runs an editor in a tcell screen.
type Host struct {
	screen  tcell.Screen
	surface *tree.Surface
	ed      *editor.Editor
	hl      *highlight.Highlighter
	log     *logging.Logger
	onSave  func(string) error

	post     func(func())
	onResize func()

	gutter    *linenumbers.Plugin
	lines     int
	status    string
	message   string
	clipboard string

	pasting bool
	paste   strings.Builder

	rows []row
	top  int
}

// New creates a host over screen, which must already be initialized.
func New(screen tcell.Screen, cfg Config) *Host {
	h := &Host{
		screen:  screen,
		surface: tree.NewSurface(nil),
		hl:      cfg.Highlighter,
		log:     cfg.Logger,
		onSave:  cfg.OnSave,
	}
	if h.log == nil {
		h.log = logging.Null()
	}
	h.post = h.postEvent

	var hf editor.HighlightFunc
	if h.hl != nil {
		hf = h.hl.Highlight
	}
	opts := []editor.Option{
		editor.WithClock(cfg.Clock),
		editor.WithPost(h.Post),
		editor.WithLogger(h.log),
		editor.WithResizeObserver(h),
		editor.WithErrorHandler(func(err error) { h.log.Error("%v", err) }),
	}
	h.surface.Focus()
	h.ed = editor.New(h.surface, hf, append(opts, cfg.EditorOptions...)...)
	h.ed.FocusIn(nil)

	h.gutter, _ = h.ed.AddPlugin(linenumbers.New, linenumbers.Config{
		Clock:  cfg.Clock,
		Post:   h.Post,
		Output: func(n int) { h.lines = n },
	}).(*linenumbers.Plugin)
	h.ed.AddPlugin(wordcount.New, wordcount.Config{
		Clock:  cfg.Clock,
		Post:   h.Post,
		Output: func(s string) { h.status = s },
	})
	return h
}

// Editor returns the hosted editor.
func (h *Host) Editor() *editor.Editor { return h.ed }

// Post runs fn on the event loop.
func (h *Host) Post(fn func()) { h.post(fn) }

func (h *Host) postEvent(fn func()) {
	if err := h.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		h.log.Warn("event queue full, running callback directly: %v", err)
		fn()
	}
}

// Observe implements editor.ResizeObserver.
func (h *Host) Observe(fn func()) { h.onResize = fn }

// Disconnect implements editor.ResizeObserver.
func (h *Host) Disconnect() { h.onResize = nil }

// SetMessage shows msg in the status line until the next key.
func (h *Host) SetMessage(msg string) { h.message = msg }

// Run processes events until Ctrl-Q or until the screen is finalized.
func (h *Host) Run() error {
	h.Render()
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if h.HandleEvent(ev) {
			return nil
		}
	}
}

// HandleEvent applies one event and redraws. It reports whether the user
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	quit := false
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	case *tcell.EventKey:
		quit = h.handleKey(ev)
	case *tcell.EventPaste:
		h.handlePaste(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
		if h.onResize != nil {
			h.onResize()
		}
	case *tcell.EventFocus:
		if ev.Focused {
			h.ed.FocusIn(ev)
		} else {
			h.ed.Blur(ev)
		}
	}
	if !quit {
		h.Render()
	}
	return quit
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	if h.pasting {
		switch ev.Key() {
		case tcell.KeyRune:
			h.paste.WriteRune(ev.Rune())
		case tcell.KeyEnter:
			h.paste.WriteByte('\n')
		case tcell.KeyTab:
			h.paste.WriteByte('\t')
		}
		return false
	}

	k, ok := KeyEvent(ev)
	if !ok {
		return false
	}
	h.message = ""

	if k.Ctrl {
		switch k.Key {
		case "q":
			return true
		case "s":
			h.save()
			return false
		case "x":
			cb := editor.NewClipboardEvent("")
			h.ed.Cut(cb)
			h.clipboard = cb.Data()
			return false
		case "v":
			h.ed.Paste(editor.NewClipboardEvent(h.clipboard))
			return false
		case "c":
			h.clipboard = h.surface.SelectedText()
		}
	}

	switch k.Key {
	case KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown, KeyHome, KeyEnd, KeyDelete:
		h.ed.KeyDown(k)
		if !k.DefaultPrevented() {
			h.move(k)
		}
		h.ed.KeyUp(&editor.KeyEvent{Key: k.Key, Ctrl: k.Ctrl, Shift: k.Shift, Alt: k.Alt, Meta: k.Meta})
	default:
		h.ed.Press(k)
	}
	return false
}

func (h *Host) save() {
	if h.onSave == nil {
		return
	}
	if err := h.onSave(h.ed.ToString()); err != nil {
		h.message = "save failed: " + err.Error()
		h.log.Error("save: %v", err)
		return
	}
	h.message = "saved"
}

// move applies caret keys and forward delete. Shift extends the selection.
func (h *Host) move(k *editor.KeyEvent) {
	pos, err := h.ed.Save()
	if err != nil {
		return
	}
	text := []rune(h.ed.ToString())

	if k.Key == KeyDelete {
		if h.ed.ReadOnly() {
			return
		}
		if pos.Collapsed() && pos.End < len(text) {
			h.surface.Select(pos.End, pos.End+1)
		}
		h.surface.DeleteSelection()
		return
	}

	focus := pos.End
	switch k.Key {
	case KeyArrowLeft:
		if !pos.Collapsed() && !k.Shift {
			focus = pos.Min()
		} else {
			focus = max(focus-1, 0)
		}
	case KeyArrowRight:
		if !pos.Collapsed() && !k.Shift {
			focus = pos.Max()
		} else {
			focus = min(focus+1, len(text))
		}
	case KeyHome:
		focus = lineStart(text, focus)
	case KeyEnd:
		focus = lineEnd(text, focus)
	case KeyArrowUp:
		focus = verticalMove(text, focus, -1)
	case KeyArrowDown:
		focus = verticalMove(text, focus, 1)
	}

	anchor := focus
	if k.Shift {
		anchor = pos.Start
	}
	dir := position.DirForward
	if focus < anchor {
		dir = position.DirBackward
	}
	h.ed.Restore(position.Position{Start: anchor, End: focus, Dir: dir})
}

func lineStart(text []rune, off int) int {
	for off > 0 && text[off-1] != '\n' {
		off--
	}
	return off
}

func lineEnd(text []rune, off int) int {
	for off < len(text) && text[off] != '\n' {
		off++
	}
	return off
}

// verticalMove moves off by delta lines, keeping the column where the
// target line is long enough.
func verticalMove(text []rune, off, delta int) int {
	start := lineStart(text, off)
	col := off - start
	switch {
	case delta < 0:
		if start == 0 {
			return 0
		}
		prev := lineStart(text, start-1)
		return min(prev+col, start-1)
	default:
		end := lineEnd(text, off)
		if end == len(text) {
			return len(text)
		}
		next := end + 1
		return min(next+col, lineEnd(text, next))
	}
}

func (h *Host) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		h.pasting = true
		h.paste.Reset()
		return
	}
	h.pasting = false
	h.ed.Paste(editor.NewClipboardEvent(h.paste.String()))
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		h.top = max(h.top-1, 0)
		h.ed.Scroll(ev)
	case buttons&tcell.WheelDown != 0:
		h.top = min(h.top+1, max(len(h.rows)-1, 0))
		h.ed.Scroll(ev)
	case buttons&tcell.Button1 != 0:
		off := offsetAt(h.rows, y+h.top, x-h.gutterWidth())
		h.surface.Select(off, off)
		h.ed.Click(ev)
	}
}

func (h *Host) gutterWidth() int {
	if h.lines == 0 {
		return 0
	}
	return len(strconv.Itoa(h.lines)) + 1
}

// Render draws the text, gutter, caret and status line.
func (h *Host) Render() {
	h.screen.Clear()
	width, height := h.screen.Size()
	textHeight := max(height-1, 0)
	gw := h.gutterWidth()

	h.rows = layout(glyphs(h.surface.Root(), h.hl), width-gw, h.ed.Options().Wrap)

	pos, err := h.ed.Save()
	caretY, caretX := locate(h.rows, pos.End)
	if caretY < h.top {
		h.top = caretY
	}
	if textHeight > 0 && caretY >= h.top+textHeight {
		h.top = caretY - textHeight + 1
	}

	gutterStyle := tcell.StyleDefault.Dim(true)
	var gutter []string
	if h.gutter != nil {
		gutter = h.gutter.Gutter()
	}
	line := lineOfRow(h.rows, h.surface.Root().TextContent())
	for y := 0; y < textHeight && h.top+y < len(h.rows); y++ {
		ri := h.top + y
		r := h.rows[ri]
		if gw > 0 && ri < len(line) && line[ri] >= 0 && line[ri] < len(gutter) {
			drawString(h.screen, 0, y, gutter[line[ri]], gutterStyle)
		}
		for x, g := range r.glyphs {
			st := g.style
			if off := r.offsets[x]; off >= pos.Min() && off < pos.Max() {
				st = st.Reverse(true)
			}
			h.screen.SetContent(gw+x, y, g.r, nil, st)
		}
	}

	status := h.status
	if h.message != "" {
		status = h.message
	}
	if h.ed.ReadOnly() {
		status = "[read-only] " + status
	}
	drawString(h.screen, 0, height-1, status, tcell.StyleDefault.Reverse(true))

	if err == nil && caretY-h.top < textHeight {
		h.screen.ShowCursor(gw+caretX, caretY-h.top)
	} else {
		h.screen.HideCursor()
	}
	h.screen.Show()
}

// lineOfRow maps each row to the index of the text line it starts, or -1
// for continuation rows of a wrapped line.
func lineOfRow(rows []row, text string) []int {
	runes := []rune(text)
	out := make([]int, len(rows))
	line := 0
	for i, r := range rows {
		s := r.start()
		if s < 0 {
			s = r.end
		}
		if i > 0 && (s == 0 || s > len(runes) || runes[s-1] != '\n') {
			out[i] = -1
			continue
		}
		out[i] = line
		line++
	}
	return out
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// Close destroys the editor.
func (h *Host) Close() {
	h.ed.Destroy()
}
