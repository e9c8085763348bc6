package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/cursor"
	"github.com/dshills/cursorkit/internal/input"
)

// DataCursorCount is the result data key holding the number of
// selections a script command left behind.
const DataCursorCount = "cursors"

// Handler implements the script namespace: one action per command a
// script defined.
type Handler struct {
	*handler.BaseNamespaceHandler
	state *State
	fns   map[string]*lua.LFunction
}

func newHandler(state *State) *Handler {
	return &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("script"),
		state:                state,
		fns:                  make(map[string]*lua.LFunction),
	}
}

func (h *Handler) define(name string, fn *lua.LFunction) error {
	if name == "" {
		return fmt.Errorf("script command name: %w", handler.ErrInvalidArgument)
	}
	if _, ok := h.fns[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	h.fns[name] = fn
	h.Register(name, func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return h.invoke(fn, ctx)
	})
	return nil
}

// HandleAction processes a script command.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	return h.BaseNamespaceHandler.HandleAction(action, ctx)
}

func (h *Handler) invoke(fn *lua.LFunction, ctx *execctx.ExecutionContext) handler.Result {
	ret, err := h.state.call(fn, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{newView(L, ctx.Engine)}
	})
	if err != nil {
		return handler.Error(err)
	}
	if ret == lua.LNil {
		return handler.NoOp()
	}

	offs, err := offsets(ret)
	if err != nil {
		return handler.Error(err)
	}
	sels := make([]cursor.Selection, len(offs))
	for i, off := range offs {
		sels[i] = cursor.NewCursorSelection(buffer.ByteOffset(off))
	}
	if err := ctx.Engine.SetSelections(sels); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithData(DataCursorCount, len(ctx.Engine.Selections()))
}

// newView snapshots the selections into a table and exposes read
// helpers over the live engine.
func newView(L *lua.LState, eng execctx.EngineInterface) *lua.LTable {
	view := L.NewTable()

	sels := L.NewTable()
	for _, sel := range eng.Selections() {
		r := sel.Range()
		sels.Append(span(L, int64(r.Start), int64(r.End)))
	}
	view.RawSetString("selections", sels)
	view.RawSetString("len", lua.LNumber(eng.Len()))

	view.RawSetString("text", L.NewFunction(func(L *lua.LState) int {
		a := checkOffset(L, 1, eng.Len())
		b := checkOffset(L, 2, eng.Len())
		if b < a {
			a, b = b, a
		}
		L.Push(lua.LString(eng.TextRange(a, b)))
		return 1
	}))

	view.RawSetString("line", L.NewFunction(func(L *lua.LState) int {
		line := eng.LineAt(checkOffset(L, 1, eng.Len()))
		L.Push(span(L, int64(line.Start), int64(line.End)))
		return 1
	}))
	return view
}

func checkOffset(L *lua.LState, n int, limit buffer.ByteOffset) buffer.ByteOffset {
	v := L.CheckNumber(n)
	if float64(v) != float64(int64(v)) || v < 0 || buffer.ByteOffset(v) > limit {
		L.ArgError(n, fmt.Sprintf("offset must be a whole number in [0, %d]", limit))
	}
	return buffer.ByteOffset(v)
}
