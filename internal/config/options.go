package config

import (
	"regexp"
	"time"
)

// Defaults.
const (
	DefaultTab             = "\t"
	DefaultMaxHistory      = 300
	DefaultDebounce        = 300 * time.Millisecond
	DefaultHistoryDebounce = 300 * time.Millisecond
	DefaultAutoCloseOpen   = `([{'"`
	DefaultAutoCloseClose  = `)]}'"`
)

var (
	defaultIndentOn      = regexp.MustCompile(`[({\[]$`)
	defaultMoveToNewLine = regexp.MustCompile(`^[)}\]]`)
)

// AutoClose pairs opening characters with the closing character at the
// same index.
type AutoClose struct {
	Open  string
	Close string
}

// ClosingFor returns the closing partner of open and whether open is an
// opening character. A missing partner yields "".
func (a AutoClose) ClosingFor(open string) (string, bool) {
	if open == "" {
		return "", false
	}
	opens := []rune(a.Open)
	closes := []rune(a.Close)
	r := []rune(open)
	if len(r) != 1 {
		return "", false
	}
	for i, o := range opens {
		if o == r[0] {
			if i < len(closes) {
				return string(closes[i]), true
			}
			return "", true
		}
	}
	return "", false
}

// Debounce holds the quiet windows of the highlight and update channels.
// A zero window means DefaultDebounce.
type Debounce struct {
	Highlight time.Duration
	Update    time.Duration
}

// HighlightDelay returns the effective highlight window.
func (d Debounce) HighlightDelay() time.Duration {
	if d.Highlight <= 0 {
		return DefaultDebounce
	}
	return d.Highlight
}

// UpdateDelay returns the effective update window.
func (d Debounce) UpdateDelay() time.Duration {
	if d.Update <= 0 {
		return DefaultDebounce
	}
	return d.Update
}

// Options configures an editor.
type Options struct {
	// Tab is inserted by the Tab key and used as one indent level.
	Tab string
	// IndentOn matching the text before the caret adds an indent level on
	// newline.
	IndentOn *regexp.Regexp
	// MoveToNewLine matching the text after the caret moves it to its own
	// line when a newline adds indentation.
	MoveToNewLine *regexp.Regexp
	Spellcheck    bool
	// CatchTab handles Tab and Shift-Tab instead of moving focus.
	CatchTab bool
	// PreserveIndent carries the current line's indentation onto new lines.
	PreserveIndent bool
	// AddClosing inserts the closing partner of AutoClose characters.
	AddClosing bool
	// History enables undo/redo recording.
	History    bool
	MaxHistory int
	AutoClose  AutoClose
	Debounce   Debounce
	// HistoryDebounce is the quiet window before a keystroke burst is
	// recorded.
	HistoryDebounce time.Duration
	// Debug enables warning and debug logging.
	Debug bool
	// Wrap applies soft-wrap attributes after each highlight.
	Wrap     bool
	ReadOnly bool
	// NormalizeUnicode converts pasted text to NFC.
	NormalizeUnicode bool
}

// Default returns the default options.
func Default() Options {
	return Options{
		Tab:             DefaultTab,
		IndentOn:        defaultIndentOn,
		MoveToNewLine:   defaultMoveToNewLine,
		CatchTab:        true,
		PreserveIndent:  true,
		AddClosing:      true,
		History:         true,
		MaxHistory:      DefaultMaxHistory,
		AutoClose:       AutoClose{Open: DefaultAutoCloseOpen, Close: DefaultAutoCloseClose},
		Debounce:        Debounce{Highlight: DefaultDebounce, Update: DefaultDebounce},
		HistoryDebounce: DefaultHistoryDebounce,
		Wrap:            true,
	}
}

// Patch lists option changes. Nil fields leave the option unchanged.
type Patch struct {
	Tab              *string
	IndentOn         *regexp.Regexp
	MoveToNewLine    *regexp.Regexp
	Spellcheck       *bool
	CatchTab         *bool
	PreserveIndent   *bool
	AddClosing       *bool
	History          *bool
	MaxHistory       *int
	AutoClose        *AutoClose
	Debounce         *Debounce
	HistoryDebounce  *time.Duration
	Debug            *bool
	Wrap             *bool
	ReadOnly         *bool
	NormalizeUnicode *bool
}

// Apply merges p into o.
func (o *Options) Apply(p Patch) {
	if p.Tab != nil {
		o.Tab = *p.Tab
	}
	if p.IndentOn != nil {
		o.IndentOn = p.IndentOn
	}
	if p.MoveToNewLine != nil {
		o.MoveToNewLine = p.MoveToNewLine
	}
	setBool(&o.Spellcheck, p.Spellcheck)
	setBool(&o.CatchTab, p.CatchTab)
	setBool(&o.PreserveIndent, p.PreserveIndent)
	setBool(&o.AddClosing, p.AddClosing)
	setBool(&o.History, p.History)
	if p.MaxHistory != nil {
		o.MaxHistory = *p.MaxHistory
	}
	if p.AutoClose != nil {
		o.AutoClose = *p.AutoClose
	}
	if p.Debounce != nil {
		o.Debounce = *p.Debounce
	}
	if p.HistoryDebounce != nil {
		o.HistoryDebounce = *p.HistoryDebounce
	}
	setBool(&o.Debug, p.Debug)
	setBool(&o.Wrap, p.Wrap)
	setBool(&o.ReadOnly, p.ReadOnly)
	setBool(&o.NormalizeUnicode, p.NormalizeUnicode)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Merge returns a patch holding every non-nil field of p and q, with q
// winning on conflicts.
func (p Patch) Merge(q Patch) Patch {
	out := p
	if q.Tab != nil {
		out.Tab = q.Tab
	}
	if q.IndentOn != nil {
		out.IndentOn = q.IndentOn
	}
	if q.MoveToNewLine != nil {
		out.MoveToNewLine = q.MoveToNewLine
	}
	if q.Spellcheck != nil {
		out.Spellcheck = q.Spellcheck
	}
	if q.CatchTab != nil {
		out.CatchTab = q.CatchTab
	}
	if q.PreserveIndent != nil {
		out.PreserveIndent = q.PreserveIndent
	}
	if q.AddClosing != nil {
		out.AddClosing = q.AddClosing
	}
	if q.History != nil {
		out.History = q.History
	}
	if q.MaxHistory != nil {
		out.MaxHistory = q.MaxHistory
	}
	if q.AutoClose != nil {
		out.AutoClose = q.AutoClose
	}
	if q.Debounce != nil {
		out.Debounce = q.Debounce
	}
	if q.HistoryDebounce != nil {
		out.HistoryDebounce = q.HistoryDebounce
	}
	if q.Debug != nil {
		out.Debug = q.Debug
	}
	if q.Wrap != nil {
		out.Wrap = q.Wrap
	}
	if q.ReadOnly != nil {
		out.ReadOnly = q.ReadOnly
	}
	if q.NormalizeUnicode != nil {
		out.NormalizeUnicode = q.NormalizeUnicode
	}
	return out
}

// Bool returns a pointer to v, for building patches.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Duration returns a pointer to v.
func Duration(v time.Duration) *time.Duration { return &v }
