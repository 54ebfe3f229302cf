package dispatcher

import (
	"github.com/dshills/caretjar/internal/engine/position"
	"github.com/dshills/caretjar/internal/tree"
)

// Plugin observes editor actions. OnAction returns true to abort.
type Plugin interface {
	Name() string
	OnAction(a Action) bool
}

// ConfigUpdater is implemented by plugins that accept configuration
// changes after registration.
type ConfigUpdater interface {
	UpdateConfig(config any)
}

// Destroyer is implemented by plugins that hold resources.
type Destroyer interface {
	Destroy()
}

// Initializer is implemented by prebuilt plugins that need the host.
type Initializer interface {
	Init(host Host, config any)
}

// Factory builds a plugin for host. Returning nil rejects the plugin.
type Factory func(host Host, config any) Plugin

// Host is the editor surface plugins are given.
type Host interface {
	// ID identifies the editor instance.
	ID() string
	// ToString returns the full text.
	ToString() string
	// Root returns the live content tree.
	Root() *tree.Node
	// Save reads the current selection as offsets.
	Save() (position.Position, error)
	// Restore commits pos to the selection.
	Restore(pos position.Position)
	// Warn and Debug log through the editor's gated logger.
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Func adapts a name and handler function into a Plugin.
type Func struct {
	PluginName string
	Handler    func(Action) bool
}

// Name returns the plugin name.
func (f Func) Name() string { return f.PluginName }

// OnAction calls the handler. A nil handler never aborts.
func (f Func) OnAction(a Action) bool {
	if f.Handler == nil {
		return false
	}
	return f.Handler(a)
}

// Serializer is implemented by hosts that run work under their event lock.
type Serializer interface {
	Do(fn func()) error
}

// RunLocked runs fn under host's event lock when host is a Serializer and
// directly otherwise. Plugins use it for work started off the event path,
// such as their own debounced callbacks. fn does not run once the host
// refuses it.
func RunLocked(host Host, fn func()) {
	if s, ok := host.(Serializer); ok {
		_ = s.Do(fn)
		return
	}
	fn()
}
