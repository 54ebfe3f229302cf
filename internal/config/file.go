package config

import (
	"fmt"
	"regexp"
	"time"
)

// File is the on-disk form of a Patch. Durations are in milliseconds and
// patterns are regular expression sources.
type File struct {
	Tab              *string        `toml:"tab" yaml:"tab" json:"tab"`
	IndentOn         *string        `toml:"indent_on" yaml:"indent_on" json:"indent_on"`
	MoveToNewLine    *string        `toml:"move_to_new_line" yaml:"move_to_new_line" json:"move_to_new_line"`
	Spellcheck       *bool          `toml:"spellcheck" yaml:"spellcheck" json:"spellcheck"`
	CatchTab         *bool          `toml:"catch_tab" yaml:"catch_tab" json:"catch_tab"`
	PreserveIndent   *bool          `toml:"preserve_indent" yaml:"preserve_indent" json:"preserve_indent"`
	AddClosing       *bool          `toml:"add_closing" yaml:"add_closing" json:"add_closing"`
	History          *bool          `toml:"history" yaml:"history" json:"history"`
	MaxHistory       *int           `toml:"max_history" yaml:"max_history" json:"max_history"`
	AutoClose        *FileAutoClose `toml:"autoclose" yaml:"autoclose" json:"autoclose"`
	Debounce         *FileDebounce  `toml:"debounce" yaml:"debounce" json:"debounce"`
	Debug            *bool          `toml:"debug" yaml:"debug" json:"debug"`
	Wrap             *bool          `toml:"wrap" yaml:"wrap" json:"wrap"`
	ReadOnly         *bool          `toml:"read_only" yaml:"read_only" json:"read_only"`
	NormalizeUnicode *bool          `toml:"normalize_unicode" yaml:"normalize_unicode" json:"normalize_unicode"`
}

// FileAutoClose is the on-disk form of AutoClose.
type FileAutoClose struct {
	Open  string `toml:"open" yaml:"open" json:"open"`
	Close string `toml:"close" yaml:"close" json:"close"`
}

// FileDebounce is the on-disk form of the debounce windows.
type FileDebounce struct {
	HighlightMS *int `toml:"highlight_ms" yaml:"highlight_ms" json:"highlight_ms"`
	UpdateMS    *int `toml:"update_ms" yaml:"update_ms" json:"update_ms"`
	HistoryMS   *int `toml:"history_ms" yaml:"history_ms" json:"history_ms"`
}

// Patch converts the file into a Patch, compiling patterns.
func (f File) Patch() (Patch, error) {
	p := Patch{
		Tab:              f.Tab,
		Spellcheck:       f.Spellcheck,
		CatchTab:         f.CatchTab,
		PreserveIndent:   f.PreserveIndent,
		AddClosing:       f.AddClosing,
		History:          f.History,
		MaxHistory:       f.MaxHistory,
		Debug:            f.Debug,
		Wrap:             f.Wrap,
		ReadOnly:         f.ReadOnly,
		NormalizeUnicode: f.NormalizeUnicode,
	}

	var err error
	if p.IndentOn, err = compile("indent_on", f.IndentOn); err != nil {
		return Patch{}, err
	}
	if p.MoveToNewLine, err = compile("move_to_new_line", f.MoveToNewLine); err != nil {
		return Patch{}, err
	}

	if f.AutoClose != nil {
		p.AutoClose = &AutoClose{Open: f.AutoClose.Open, Close: f.AutoClose.Close}
	}
	if d := f.Debounce; d != nil {
		if d.HighlightMS != nil || d.UpdateMS != nil {
			p.Debounce = &Debounce{
				Highlight: millis(d.HighlightMS),
				Update:    millis(d.UpdateMS),
			}
		}
		if d.HistoryMS != nil {
			p.HistoryDebounce = Duration(millis(d.HistoryMS))
		}
	}
	return p, nil
}

func compile(key string, src *string) (*regexp.Regexp, error) {
	if src == nil {
		return nil, nil
	}
	re, err := regexp.Compile(*src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, key, err)
	}
	return re, nil
}

func millis(v *int) time.Duration {
	if v == nil {
		return 0
	}
	return time.Duration(*v) * time.Millisecond
}
