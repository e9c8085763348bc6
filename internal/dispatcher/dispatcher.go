// Package dispatcher routes actions to handlers and coordinates execution.
package dispatcher

import (
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/input"
)

// Dispatcher resolves action names to handlers and runs them against
// the current engine. Namespace routes win over exact registrations.
type Dispatcher struct {
	mu sync.RWMutex

	router   *Router
	registry *Registry
	metrics  *Metrics
	config   Config

	engine execctx.EngineInterface
	logger execctx.Logger

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook

	// Dispatches currently on the stack.
	depth int
}

// New builds a dispatcher from config.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		router:   NewRouter(),
		registry: NewRegistry(),
		config:   config,
		logger:   execctx.NopLogger,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults is New(DefaultConfig()).
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetEngine points subsequent dispatches at engine.
func (d *Dispatcher) SetEngine(engine execctx.EngineInterface) {
	d.mu.Lock()
	d.engine = engine
	d.mu.Unlock()
}

// Engine returns the engine dispatches run against.
func (d *Dispatcher) Engine() execctx.EngineInterface {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine
}

// SetLogger sets the logger handed to handlers. Nil silences them.
func (d *Dispatcher) SetLogger(logger execctx.Logger) {
	if logger == nil {
		logger = execctx.NopLogger
	}
	d.mu.Lock()
	d.logger = logger
	d.mu.Unlock()
}

// Dispatch runs action to completion and returns its result. Failures
// of the dispatcher itself come back as error results wrapping one of
// the package's sentinel errors.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	start := time.Now()

	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}
	if action.Args == nil {
		action.Args = input.Args{}
	}

	if err := d.enter(action.Name); err != nil {
		return handler.Error(err)
	}
	defer d.leave()

	ctx, pre, post := d.prepare()

	for _, hook := range pre {
		if !hook.PreDispatch(&action, ctx) {
			result := handler.CancelledWithMessage("cancelled by hook")
			result.Error = fmt.Errorf("%w: %s", ErrActionCancelled, action.Name)
			d.record(action.Name, start, result.Status)
			return result
		}
	}

	h := d.resolve(action.Name)
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	result := d.invoke(h, action, ctx)

	for _, hook := range post {
		hook.PostDispatch(&action, ctx, &result)
	}

	d.record(action.Name, start, result.Status)
	return result
}

func (d *Dispatcher) record(name string, start time.Time, status handler.ResultStatus) {
	if d.metrics != nil {
		d.metrics.Record(name, time.Since(start), status)
	}
}

// Execute dispatches action and keeps only its error, which makes the
// dispatcher usable as a handler's execctx.CommandRunner.
func (d *Dispatcher) Execute(action input.Action) error {
	return d.Dispatch(action).Err()
}

func (d *Dispatcher) enter(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.config.MaxDepth > 0 && d.depth >= d.config.MaxDepth {
		return fmt.Errorf("%w: %s", ErrMaxDepth, name)
	}
	d.depth++
	return nil
}

func (d *Dispatcher) leave() {
	d.mu.Lock()
	d.depth--
	d.mu.Unlock()
}

// prepare builds the handler context and snapshots the hooks so that
// hooks registered mid-dispatch only apply to later actions.
func (d *Dispatcher) prepare() (*execctx.ExecutionContext, []PreDispatchHook, []PostDispatchHook) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := execctx.New().
		WithEngine(d.engine).
		WithCommands(d).
		WithLogger(d.logger)
	pre := append([]PreDispatchHook(nil), d.preHooks...)
	post := append([]PostDispatchHook(nil), d.postHooks...)
	return ctx, pre, post
}

func (d *Dispatcher) resolve(name string) handler.Handler {
	if h := d.router.Route(name); h != nil {
		return h
	}
	h, _ := d.registry.Lookup(name)
	return h
}

func (d *Dispatcher) invoke(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	if !d.config.RecoverFromPanic {
		return h.Handle(action, ctx)
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ctx.Log.Error("handler for %s panicked: %v\n%s", action.Name, r, debug.Stack())
		result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))
		if d.metrics != nil {
			d.metrics.RecordPanic()
		}
	}()
	return h.Handle(action, ctx)
}

// RegisterHandler binds h to an exact action name.
func (d *Dispatcher) RegisterHandler(name string, h handler.Handler) {
	d.registry.Register(name, h)
}

// RegisterHandlerFunc binds fn to an exact action name.
func (d *Dispatcher) RegisterHandlerFunc(name string, fn handler.ActionFunc) {
	d.registry.Register(name, handler.NewHandlerFunc(fn))
}

// UnregisterHandler drops the exact-name handlers for name.
func (d *Dispatcher) UnregisterHandler(name string) {
	d.registry.Unregister(name)
}

// RegisterNamespace routes every action h claims to h.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h)
}

// Has reports whether name would reach a handler.
func (d *Dispatcher) Has(name string) bool {
	if _, ok := d.router.NamespaceOf(name); ok {
		return true
	}
	return d.registry.Has(name)
}

// Commands lists every dispatchable name in sorted order.
func (d *Dispatcher) Commands() []string {
	set := make(map[string]struct{})
	for _, name := range d.router.Actions() {
		set[name] = struct{}{}
	}
	for _, name := range d.registry.Names() {
		set[name] = struct{}{}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterPreHook appends a hook run before every dispatch.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	d.preHooks = append(d.preHooks, hook)
	d.mu.Unlock()
}

// RegisterPostHook appends a hook run after every handled dispatch.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	d.postHooks = append(d.postHooks, hook)
	d.mu.Unlock()
}

// Registry exposes the exact-name registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Router exposes the namespace router.
func (d *Dispatcher) Router() *Router { return d.router }

// Metrics returns the collector, or nil when metrics are off.
func (d *Dispatcher) Metrics() *Metrics { return d.metrics }

// Config returns the configuration the dispatcher was built with.
func (d *Dispatcher) Config() Config { return d.config }
