// Package wordcount reports word, character and caret statistics for an
// editor's text.
package wordcount

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"

	"github.com/dshills/caretjar/internal/debounce"
	"github.com/dshills/caretjar/internal/dispatcher"
)

// Name is the plugin's registry name.
const Name = "word-counter"

// DefaultDelay is the quiet window before statistics are recomputed.
const DefaultDelay = 300 * time.Millisecond

// Info holds one set of statistics. Row and Col are 1-based.
type Info struct {
	Words int
	Chars int
	Row   int
	Col   int
}

// String formats the statistics the way the default formatter does.
func (i Info) String() string {
	return fmt.Sprintf("%d characters, %d words, line %d column %d", i.Chars, i.Words, i.Row, i.Col)
}

// Config configures the plugin. The zero value shows statistics through
// Info.String and discards the output.
type Config struct {
	// Hide suppresses output; Output then receives "".
	Hide bool
	// ShowFunc, when set, decides per text whether to show statistics and
	// overrides Hide.
	ShowFunc func(code string) bool
	// Format renders statistics. Nil means Info.String.
	Format func(Info) string
	// Output receives each rendered line.
	Output func(text string)

	Clock debounce.Clock
	Delay time.Duration
	Post  func(func())
}

// Update changes a running plugin's configuration. Nil fields are left
// unchanged.
type Update struct {
	Show     *bool
	ShowFunc func(code string) bool
	Format   func(Info) string
	Output   func(text string)
}

// LineColumn returns the 1-based line and column of character index in
// source. It reports false for an empty source or a non-positive index.
func LineColumn(source string, index int) (line, column int, ok bool) {
	if source == "" || index <= 0 {
		return 0, 0, false
	}
	line, column = 1, 1
	i := 0
	for _, r := range source {
		if i == index {
			break
		}
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
		i++
	}
	return line, column, true
}

// Count computes statistics for code with the caret at index. Characters
// are grapheme clusters.
func Count(code string, index int) Info {
	info := Info{
		Words: len(strings.Fields(code)),
		Chars: uniseg.GraphemeClusterCount(code),
		Row:   1,
		Col:   1,
	}
	if line, col, ok := LineColumn(code, index); ok {
		info.Row, info.Col = line, col
	}
	return info
}

// Plugin recomputes statistics after clicks, key releases and highlights.
type Plugin struct {
	host dispatcher.Host

	mu   sync.Mutex
	cfg  Config
	last Info
	text string

	compute *debounce.Debouncer[string]
}

// New is a dispatcher.Factory. config may be a Config, a *Config or nil.
// Statistics are computed once immediately.
func New(host dispatcher.Host, config any) dispatcher.Plugin {
	var cfg Config
	switch c := config.(type) {
	case Config:
		cfg = c
	case *Config:
		if c != nil {
			cfg = *c
		}
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}

	p := &Plugin{host: host, cfg: cfg}
	var opts []debounce.Option
	if cfg.Post != nil {
		opts = append(opts, debounce.WithPost(cfg.Post))
	}
	p.compute = debounce.New(cfg.Clock, cfg.Delay, func(code string) {
		dispatcher.RunLocked(host, func() { p.update(code) })
	}, opts...)

	p.update(host.ToString())
	return p
}

// Name returns the registry name.
func (p *Plugin) Name() string { return Name }

// OnAction schedules a recount. It never aborts.
func (p *Plugin) OnAction(a dispatcher.Action) bool {
	switch a.Name {
	case dispatcher.ActionClick, dispatcher.ActionKeyUp, dispatcher.ActionHighlight:
		p.compute.Call(a.Code)
	}
	return false
}

func (p *Plugin) update(code string) {
	p.mu.Lock()
	cfg := p.cfg
	p.mu.Unlock()

	show := !cfg.Hide
	if cfg.ShowFunc != nil {
		show = cfg.ShowFunc(p.host.ToString())
	}

	text := ""
	var info Info
	if show {
		index := 0
		if pos, err := p.host.Save(); err == nil {
			index = pos.Start
		}
		info = Count(code, index)
		format := cfg.Format
		if format == nil {
			format = Info.String
		}
		text = format(info)
	}

	p.mu.Lock()
	p.last = info
	p.text = text
	p.mu.Unlock()

	if cfg.Output != nil {
		cfg.Output(text)
	}
}

// Info returns the latest statistics. It is zero while hidden.
func (p *Plugin) Info() Info {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Text returns the latest rendered output.
func (p *Plugin) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text
}

// UpdateConfig applies an Update or *Update. Other values are ignored.
func (p *Plugin) UpdateConfig(config any) {
	var u Update
	switch c := config.(type) {
	case Update:
		u = c
	case *Update:
		if c == nil {
			return
		}
		u = *c
	default:
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if u.Show != nil {
		p.cfg.Hide = !*u.Show
		p.cfg.ShowFunc = nil
	}
	if u.ShowFunc != nil {
		p.cfg.ShowFunc = u.ShowFunc
	}
	if u.Format != nil {
		p.cfg.Format = u.Format
	}
	if u.Output != nil {
		p.cfg.Output = u.Output
	}
}

// Destroy cancels a pending recount.
func (p *Plugin) Destroy() {
	p.compute.Cancel()
}
