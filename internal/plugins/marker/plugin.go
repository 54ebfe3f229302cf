package marker

import (
	"sort"
	"sync"

	"github.com/dshills/caretjar/internal/dispatcher"
	"github.com/dshills/caretjar/internal/tree"
)

// Name is the plugin's registry name.
const Name = "insert-mark"

// Plugin keeps marks by ID so they can be replaced and removed.
type Plugin struct {
	host dispatcher.Host

	mu        sync.Mutex
	marks     map[string][]*tree.Node
	destroyed bool
}

// New is a dispatcher.Factory. config is ignored.
func New(host dispatcher.Host, _ any) dispatcher.Plugin {
	return &Plugin{
		host:  host,
		marks: make(map[string][]*tree.Node),
	}
}

// Name returns the registry name.
func (p *Plugin) Name() string { return Name }

// OnAction never aborts.
func (p *Plugin) OnAction(dispatcher.Action) bool { return false }

// Add places a mark, replacing any mark with the same ID. The selection is
// kept.
func (p *Plugin) Add(spec Spec) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return false
	}
	spec.ID = spec.id()
	p.removeLocked(spec.ID)

	if spec.Index <= 0 && spec.Line > 0 {
		spec.Index = IndexAt(p.host.ToString(), spec.Line, spec.Column)
	}
	marks := p.keepSelection(func() []*tree.Node {
		return Insert(p.host.Root(), spec)
	})
	if len(marks) == 0 {
		return false
	}
	p.marks[spec.ID] = marks
	return true
}

// Remove unwraps the mark with id and reports whether it existed.
func (p *Plugin) Remove(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.removeLocked(id)
}

func (p *Plugin) removeLocked(id string) bool {
	marks, ok := p.marks[id]
	if !ok {
		return false
	}
	delete(p.marks, id)
	p.keepSelection(func() []*tree.Node {
		Unwrap(marks)
		return nil
	})
	return true
}

// RemoveAll unwraps every mark.
func (p *Plugin) RemoveAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id := range p.marks {
		p.removeLocked(id)
	}
}

// IDs returns the IDs of live marks.
func (p *Plugin) IDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.marks))
	for id := range p.marks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Destroy removes every mark. Later calls to Add do nothing.
func (p *Plugin) Destroy() {
	p.RemoveAll()
	p.mu.Lock()
	p.destroyed = true
	p.mu.Unlock()
}

// keepSelection runs fn and restores the selection when one was readable.
func (p *Plugin) keepSelection(fn func() []*tree.Node) []*tree.Node {
	pos, err := p.host.Save()
	out := fn()
	if err == nil {
		p.host.Restore(pos)
	}
	return out
}
