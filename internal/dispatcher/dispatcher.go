package dispatcher

import "sync"

// SystemHandler runs before any plugin. Returning true aborts the action.
type SystemHandler func(name, code string, event any) bool

// Dispatcher runs actions through the system handler and the registry.
type Dispatcher struct {
	*Registry

	mu       sync.RWMutex
	system   SystemHandler
	readOnly func() bool
}

// New creates a dispatcher. readOnly is consulted on every dispatch; nil
// means never read-only.
func New(log Logger, readOnly func() bool) *Dispatcher {
	return &Dispatcher{
		Registry: NewRegistry(log),
		readOnly: readOnly,
	}
}

// SetSystem replaces the system handler.
func (d *Dispatcher) SetSystem(h SystemHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.system = h
}

// Dispatch delivers a to the system handler and then to every plugin.
// It returns true if the action should be aborted.
func (d *Dispatcher) Dispatch(a Action) bool {
	if d.readOnly != nil && d.readOnly() && !Passive(a.Name) {
		return true
	}

	d.mu.RLock()
	system := d.system
	d.mu.RUnlock()

	if system != nil && system(a.Name, a.Code, a.Event) {
		return true
	}

	abort := false
	for _, p := range d.Plugins() {
		if p.OnAction(a) {
			abort = true
		}
	}
	return abort
}
