package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/cursorkit/internal/dispatcher/handler"
)

// Router routes actions to namespace handlers.
// Each namespace handler declares the action names it serves; the router
// indexes them so lookup is a single map access.
type Router struct {
	mu sync.RWMutex

	// Namespace handlers by name (e.g., "cursor")
	namespaces map[string]handler.NamespaceHandler

	// action name -> namespace
	index map[string]string
}

// NewRouter creates a new action router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]handler.NamespaceHandler),
		index:      make(map[string]string),
	}
}

// RegisterNamespace registers a handler for every action it declares.
// A later namespace claiming the same action name takes it over.
func (r *Router) RegisterNamespace(h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ns := h.Namespace()
	r.dropIndexLocked(ns)
	r.namespaces[ns] = h
	for _, name := range h.Actions() {
		r.index[name] = ns
	}
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropIndexLocked(namespace)
	delete(r.namespaces, namespace)
}

func (r *Router) dropIndexLocked(namespace string) {
	for name, ns := range r.index {
		if ns == namespace {
			delete(r.index, name)
		}
	}
}

// Route finds the handler for an action.
// Returns nil if no namespace claims it.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ns, ok := r.index[actionName]
	if !ok {
		return nil
	}
	h := r.namespaces[ns]
	if h == nil || !h.CanHandle(actionName) {
		return nil
	}
	return handler.NewNamespaceAdapter(h)
}

// GetNamespaceHandler returns the handler for a namespace.
// Returns nil if no handler is registered.
func (r *Router) GetNamespaceHandler(namespace string) handler.NamespaceHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namespaces[namespace]
}

// Namespaces returns all registered namespace names, sorted.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Actions returns every routed action name, sorted.
func (r *Router) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.index))
	for name := range r.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamespaceOf returns the namespace that serves an action, if any.
func (r *Router) NamespaceOf(actionName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ns, ok := r.index[actionName]
	return ns, ok
}
