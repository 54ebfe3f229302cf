package dispatcher

import (
	"fmt"
	"sync"
)

// Logger receives registry diagnostics.
type Logger interface {
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}

// Registry holds plugins in registration order with a name index.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	index   map[string]int
	log     Logger
}

// NewRegistry creates an empty registry. A nil log discards diagnostics.
func NewRegistry(log Logger) *Registry {
	if log == nil {
		log = nopLogger{}
	}
	return &Registry{
		index: make(map[string]int),
		log:   log,
	}
}

// NameOf returns the plugin name addressed by target, which may be a
// Plugin or a name.
func NameOf(target any) string {
	switch t := target.(type) {
	case string:
		return t
	case Plugin:
		return t.Name()
	default:
		return ""
	}
}

// Add registers a plugin built from source and returns it.
//
// source may be a Factory, a func(Host, any) Plugin, or a prebuilt Plugin;
// a prebuilt plugin implementing Initializer is initialized with host and
// config first. Add logs a warning and returns nil when source is nil, the
// factory builds nothing, or the name is already registered.
func (r *Registry) Add(host Host, source any, config any) Plugin {
	p, err := build(host, source, config)
	if err != nil {
		r.log.Warn("add plugin: %v", err)
		return nil
	}

	name := p.Name()

	r.mu.Lock()
	if _, exists := r.index[name]; exists {
		r.mu.Unlock()
		r.log.Warn("add plugin: %q: %v", name, ErrDuplicateName)
		return nil
	}
	r.index[name] = len(r.plugins)
	r.plugins = append(r.plugins, p)
	r.mu.Unlock()

	r.log.Debug("%q plugin added", name)
	return p
}

func build(host Host, source any, config any) (Plugin, error) {
	var p Plugin
	switch s := source.(type) {
	case nil:
		return nil, ErrNilPlugin
	case Factory:
		if s == nil {
			return nil, ErrNilPlugin
		}
		p = s(host, config)
	case func(Host, any) Plugin:
		if s == nil {
			return nil, ErrNilPlugin
		}
		p = s(host, config)
	case Plugin:
		if in, ok := s.(Initializer); ok {
			in.Init(host, config)
		}
		p = s
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidSource, source)
	}
	if p == nil {
		return nil, ErrNilPlugin
	}
	if p.Name() == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNilPlugin)
	}
	return p, nil
}

// Remove destroys and unregisters the plugin named by target.
// It logs a warning and returns false if no such plugin exists.
func (r *Registry) Remove(target any) bool {
	name := NameOf(target)
	if name == "" {
		r.log.Warn("remove plugin: name is required")
		return false
	}

	r.mu.Lock()
	i, ok := r.index[name]
	if !ok {
		r.mu.Unlock()
		r.log.Warn("remove plugin: %q: %v", name, ErrUnknownPlugin)
		return false
	}
	p := r.plugins[i]
	r.plugins = append(r.plugins[:i], r.plugins[i+1:]...)
	r.reindexLocked()
	r.mu.Unlock()

	if d, ok := p.(Destroyer); ok {
		d.Destroy()
		r.log.Debug("%q plugin destroyed", name)
	}
	r.log.Debug("%q plugin removed", name)
	return true
}

func (r *Registry) reindexLocked() {
	r.index = make(map[string]int, len(r.plugins))
	for i, p := range r.plugins {
		r.index[p.Name()] = i
	}
}

// UpdateConfig forwards config to the plugin named by target if it
// implements ConfigUpdater. Unknown names are logged.
func (r *Registry) UpdateConfig(target any, config any) bool {
	name := NameOf(target)
	if name == "" {
		r.log.Warn("update plugin config: name is required")
		return false
	}
	p := r.Get(name)
	if p == nil {
		r.log.Warn("update plugin config: %q: %v", name, ErrUnknownPlugin)
		return false
	}
	u, ok := p.(ConfigUpdater)
	if !ok {
		return false
	}
	u.UpdateConfig(config)
	return true
}

// Get returns the named plugin or nil.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[name]
	if !ok {
		return nil
	}
	return r.plugins[i]
}

// Names returns plugin names in dispatch order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name()
	}
	return names
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// Plugins returns a copy of the registered plugins in dispatch order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// DestroyAll destroys every plugin in order, then clears the registry.
func (r *Registry) DestroyAll() {
	r.mu.Lock()
	plugins := r.plugins
	r.plugins = nil
	r.index = make(map[string]int)
	r.mu.Unlock()

	for _, p := range plugins {
		if d, ok := p.(Destroyer); ok {
			d.Destroy()
			r.log.Debug("%q plugin destroyed", p.Name())
		}
	}
	r.log.Debug("all plugins destroyed")
}
