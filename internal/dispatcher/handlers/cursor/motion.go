package cursor

import (
	"fmt"

	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/cursor"
	"github.com/dshills/cursorkit/internal/input"
)

// Values of the "line" argument of the custom-end commands.
const (
	ArgLine      = "line"
	LineFirst    = "first"
	LineLast     = "last"
	defaultWhich = LineFirst
)

// mapSelections replaces every selection with fn's result.
func mapSelections(ctx *execctx.ExecutionContext, fn func(sel cursor.Selection) cursor.Selection) handler.Result {
	sels := ctx.Engine.Selections()
	if len(sels) == 0 {
		return handler.NoOp()
	}
	out := make([]cursor.Selection, len(sels))
	for i, sel := range sels {
		out[i] = fn(sel)
	}
	return replaceSelections(ctx, out)
}

func (h *Handler) goToSoftBegin(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	return mapSelections(ctx, func(sel cursor.Selection) cursor.Selection {
		line := ctx.Engine.LineAt(sel.Start())
		return cursor.NewCursorSelection(softBegin(ctx.Engine, line))
	})
}

func (h *Handler) selectToSoftBegin(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	return mapSelections(ctx, func(sel cursor.Selection) cursor.Selection {
		line := ctx.Engine.LineAt(sel.Start())
		return cursor.NewSelection(softBegin(ctx.Engine, line), sel.End())
	})
}

func (h *Handler) goToCustomEnd(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	return h.customEnd(action, ctx, false)
}

func (h *Handler) selectToCustomEnd(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	return h.customEnd(action, ctx, true)
}

// customEnd moves each head to the true end of its first (or last)
// line, or to the line's custom end when it is already at the true end.
func (h *Handler) customEnd(action input.Action, ctx *execctx.ExecutionContext, extend bool) handler.Result {
	which, err := lineArg(action.Args)
	if err != nil {
		return handler.Error(err)
	}

	return mapSelections(ctx, func(sel cursor.Selection) cursor.Selection {
		at := sel.Start()
		if which == LineLast {
			at = sel.End()
		}
		line := ctx.Engine.LineAt(at)

		target := line.End
		if sel.Head == line.End {
			target = customEnd(ctx.Engine, line)
		}
		if extend {
			return sel.Extend(target)
		}
		return sel.MoveTo(target)
	})
}

func lineArg(args input.Args) (string, error) {
	v, ok := args.Get(ArgLine)
	if !ok || v == nil {
		return defaultWhich, nil
	}
	s, ok := v.(string)
	if !ok || (s != LineFirst && s != LineLast) {
		return "", fmt.Errorf("%s: %q must be %q or %q, got %v: %w",
			ActionGoToCustomEnd, ArgLine, LineFirst, LineLast, v, handler.ErrInvalidArgument)
	}
	return s, nil
}

// moveToVisibleBegin leaves a single cursor at the start of the second
// visible line, or the first when only one line is visible.
func (h *Handler) moveToVisibleBegin(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	lines := ctx.Engine.Lines(ctx.Engine.VisibleRegion())
	if len(lines) == 0 {
		return handler.NoOp()
	}

	var target buffer.ByteOffset
	if len(lines) > 1 {
		target = lines[1].Start
	} else {
		target = lines[0].Start
	}
	return replaceSelections(ctx, []cursor.Selection{cursor.NewCursorSelection(target)})
}
