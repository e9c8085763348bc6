// Package handler defines what the dispatcher calls: the Handler and
// NamespaceHandler interfaces, the Result they return, and helpers for
// building both.
package handler

import (
	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/input"
)

// Handler runs actions the dispatcher has routed to it.
type Handler interface {
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle reports whether the handler serves actionName.
	CanHandle(actionName string) bool

	// Priority orders handlers registered under the same name; higher
	// runs first.
	Priority() int
}

// ActionFunc implements a single command.
type ActionFunc func(action input.Action, ctx *execctx.ExecutionContext) Result

// HandlerFunc turns an ActionFunc into a Handler. It claims every name,
// so it only makes sense behind an exact-name registration.
type HandlerFunc struct {
	fn       ActionFunc
	priority int
}

// NewHandlerFunc wraps fn at priority zero.
func NewHandlerFunc(fn ActionFunc) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// NewHandlerFuncWithPriority wraps fn at the given priority.
func NewHandlerFuncWithPriority(fn ActionFunc, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, priority: priority}
}

func (f *HandlerFunc) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f.fn == nil {
		return Errorf("no function bound for %s", action.Name)
	}
	return f.fn(action, ctx)
}

func (f *HandlerFunc) CanHandle(string) bool { return true }
func (f *HandlerFunc) Priority() int         { return f.priority }

// NamespaceHandler owns a fixed group of commands, such as every
// cursor motion. The router indexes it by the names Actions returns.
type NamespaceHandler interface {
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result
	CanHandle(actionName string) bool
	Namespace() string
	Actions() []string
}

// NewNamespaceAdapter exposes h as a zero-priority Handler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return namespaceAdapter{h}
}

type namespaceAdapter struct{ ns NamespaceHandler }

func (a namespaceAdapter) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return a.ns.HandleAction(action, ctx)
}

func (a namespaceAdapter) CanHandle(name string) bool { return a.ns.CanHandle(name) }
func (a namespaceAdapter) Priority() int              { return 0 }

// BaseNamespaceHandler is a NamespaceHandler backed by a table of
// ActionFuncs. Concrete namespaces embed it and Register their
// commands in their constructor.
type BaseNamespaceHandler struct {
	namespace string
	funcs     map[string]ActionFunc
	names     []string
}

// NewBaseNamespaceHandler returns an empty namespace called namespace.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{namespace: namespace, funcs: make(map[string]ActionFunc)}
}

// Register binds name to fn. Registering a name again replaces its
// function but keeps its original position in Actions.
func (h *BaseNamespaceHandler) Register(name string, fn ActionFunc) {
	if _, dup := h.funcs[name]; !dup {
		h.names = append(h.names, name)
	}
	h.funcs[name] = fn
}

func (h *BaseNamespaceHandler) Namespace() string { return h.namespace }

// Actions lists the registered names in registration order.
func (h *BaseNamespaceHandler) Actions() []string {
	return append([]string(nil), h.names...)
}

func (h *BaseNamespaceHandler) CanHandle(name string) bool {
	_, ok := h.funcs[name]
	return ok
}

func (h *BaseNamespaceHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := h.funcs[action.Name]
	if !ok {
		return Errorf("%s: unknown action %s", h.namespace, action.Name)
	}
	return fn(action, ctx)
}
