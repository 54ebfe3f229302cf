package debounce

import "sync"

// Canceler is anything with pending work that can be dropped.
type Canceler interface {
	Cancel()
}

// Group tracks debouncers so they can be cancelled together.
type Group struct {
	mu      sync.Mutex
	members []Canceler
}

// Add registers c with the group and returns it.
func (g *Group) Add(c Canceler) Canceler {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members = append(g.members, c)
	return c
}

// Len returns the number of registered members.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}

// CancelAll cancels every member's pending work.
func (g *Group) CancelAll() {
	g.mu.Lock()
	members := make([]Canceler, len(g.members))
	copy(members, g.members)
	g.mu.Unlock()

	for _, c := range members {
		c.Cancel()
	}
}
