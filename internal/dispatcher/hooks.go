package dispatcher

import (
	"time"

	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/input"
)

// PreDispatchHook runs before the handler is looked up. It may rewrite
// the action in place; returning false cancels the dispatch.
type PreDispatchHook interface {
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook runs after the handler returns and may adjust the
// result. It is skipped when the dispatch was cancelled or found no
// handler.
type PostDispatchHook interface {
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// PreDispatchFunc adapts a function to PreDispatchHook.
type PreDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext) bool

func (f PreDispatchFunc) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return f(action, ctx)
}

// PostDispatchFunc adapts a function to PostDispatchHook.
type PostDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)

func (f PostDispatchFunc) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	f(action, ctx, result)
}

// Context data key under which LoggingHook stores the start time.
const dataDispatchStart = "dispatch.start"

// LoggingHook traces dispatches through ctx.Log. Register the same
// value as both a pre and a post hook: successes are logged at debug
// with their duration, failures at error.
type LoggingHook struct {
	now func() time.Time
}

func NewLoggingHook() *LoggingHook {
	return &LoggingHook{now: time.Now}
}

func (h *LoggingHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	ctx.SetData(dataDispatchStart, h.now())
	ctx.Log.Debug("dispatching %s (source=%s)", action.Name, action.Source)
	return true
}

func (h *LoggingHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	var took time.Duration
	if start, ok := ctx.GetData(dataDispatchStart); ok {
		if t, ok := start.(time.Time); ok {
			took = h.now().Sub(t)
		}
	}
	if err := result.Err(); err != nil {
		ctx.Log.Error("%s failed after %s: %v", action.Name, took, err)
		return
	}
	ctx.Log.Debug("%s -> %s in %s", action.Name, result.Status, took)
}
