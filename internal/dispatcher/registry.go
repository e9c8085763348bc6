package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/cursorkit/internal/dispatcher/handler"
)

// Registry resolves exact action names that no namespace claims.
// A name may carry several handlers; Lookup returns the one with the
// highest priority, and among equals the one registered first.
type Registry struct {
	mu     sync.RWMutex
	byName map[string][]handler.Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string][]handler.Handler)}
}

// Register adds h under name.
func (r *Registry) Register(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.byName[name]
	// Insert after every handler of equal or higher priority.
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Priority() < h.Priority()
	})
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = h
	r.byName[name] = list
}

// Unregister drops every handler under name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.byName, name)
	r.mu.Unlock()
}

// Lookup returns the winning handler for name.
func (r *Registry) Lookup(name string) (handler.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if list := r.byName[name]; len(list) > 0 {
		return list[0], true
	}
	return nil, false
}

// Has reports whether name has a handler.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names lists registered action names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len is the number of distinct registered names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Reset empties the registry.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.byName = make(map[string][]handler.Handler)
	r.mu.Unlock()
}
