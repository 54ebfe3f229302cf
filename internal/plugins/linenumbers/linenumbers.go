// Package linenumbers keeps a line-number gutter in step with an editor's
// text.
package linenumbers

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dshills/caretjar/internal/debounce"
	"github.com/dshills/caretjar/internal/dispatcher"
)

// Name is the plugin's registry name.
const Name = "line-numbers"

// DefaultDelay is the quiet window before the gutter is recounted.
const DefaultDelay = 300 * time.Millisecond

// Count returns the number of lines in code. A trailing newline does not
// start a line of its own.
func Count(code string) int {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	n := strings.Count(code, "\n") + 1
	if n > 1 && strings.HasSuffix(code, "\n") {
		n--
	}
	return n
}

// Render returns the gutter for count lines, right-aligned to the widest
// number.
func Render(count int) []string {
	width := len(strconv.Itoa(count))
	out := make([]string, count)
	for i := range out {
		n := strconv.Itoa(i + 1)
		out[i] = strings.Repeat(" ", width-len(n)) + n
	}
	return out
}

// Refresher is implemented by hosts that can schedule a refresh.
type Refresher interface {
	Refresh()
}

// Config configures the plugin.
type Config struct {
	Hide bool
	// Output receives the line count after each change; 0 means the gutter
	// is hidden.
	Output func(lines int)
	// OnScroll receives scroll events so the host can align the gutter.
	OnScroll func(event any)

	Clock debounce.Clock
	Delay time.Duration
	Post  func(func())
}

// Update changes a running plugin's configuration.
type Update struct {
	Show bool
}

// Plugin recounts lines after highlights, resizes, key releases and
// update notifications, and immediately on refresh.
type Plugin struct {
	host dispatcher.Host

	mu    sync.Mutex
	cfg   Config
	lines int

	recount *debounce.Debouncer[string]
}

// New is a dispatcher.Factory. config may be a Config, a *Config or nil.
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
	p.recount = debounce.New(cfg.Clock, cfg.Delay, func(code string) {
		dispatcher.RunLocked(host, func() { p.update(code) })
	}, opts...)

	p.update(host.ToString())
	return p
}

// Name returns the registry name.
func (p *Plugin) Name() string { return Name }

// OnAction never aborts.
func (p *Plugin) OnAction(a dispatcher.Action) bool {
	switch a.Name {
	case dispatcher.ActionHighlight, dispatcher.ActionResize, dispatcher.ActionKeyUp, dispatcher.ActionAfterUpdate:
		p.recount.Call(a.Code)
	case dispatcher.ActionRefresh:
		p.recount.Cancel()
		p.update(a.Code)
	case dispatcher.ActionScroll:
		p.mu.Lock()
		cfg := p.cfg
		p.mu.Unlock()
		if !cfg.Hide && cfg.OnScroll != nil {
			cfg.OnScroll(a.Event)
		}
	}
	return false
}

func (p *Plugin) update(code string) {
	p.mu.Lock()
	lines := 0
	if !p.cfg.Hide {
		lines = Count(code)
	}
	changed := lines != p.lines
	p.lines = lines
	out := p.cfg.Output
	p.mu.Unlock()

	if changed && out != nil {
		out(lines)
	}
}

// Lines returns the current line count, or 0 while hidden.
func (p *Plugin) Lines() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lines
}

// Gutter returns the rendered gutter lines.
func (p *Plugin) Gutter() []string {
	return Render(p.Lines())
}

// UpdateConfig applies an Update or *Update. Showing the gutter asks the
// host for a refresh; hiding it clears the gutter at once.
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
	p.cfg.Hide = !u.Show
	p.mu.Unlock()

	if !u.Show {
		p.recount.Cancel()
		p.update("")
		return
	}
	if r, ok := p.host.(Refresher); ok {
		r.Refresh()
		return
	}
	p.update(p.host.ToString())
}

// Destroy clears the gutter.
func (p *Plugin) Destroy() {
	p.recount.Cancel()
	p.mu.Lock()
	p.cfg.Hide = true
	p.mu.Unlock()
	p.update("")
}
