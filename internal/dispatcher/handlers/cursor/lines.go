package cursor

import (
	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/commascan"
	"github.com/dshills/cursorkit/internal/engine/cursor"
	"github.com/dshills/cursorkit/internal/input"
)

func (h *Handler) cursorsFromSelection(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	return cursorsAtLineStarts(ctx, func(line buffer.Range) buffer.ByteOffset {
		return line.Start
	})
}

func (h *Handler) cursorsFromSelectionSoft(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	return cursorsAtLineStarts(ctx, func(line buffer.Range) buffer.ByteOffset {
		return softBegin(ctx.Engine, line)
	})
}

// cursorsAtLineStarts puts one cursor on every line touched by any
// selection, at the offset begin picks.
func cursorsAtLineStarts(ctx *execctx.ExecutionContext, begin func(line buffer.Range) buffer.ByteOffset) handler.Result {
	sels := ctx.Engine.Selections()
	if len(sels) == 0 {
		return handler.NoOp()
	}

	var cursors []cursor.Selection
	for _, sel := range sels {
		for _, line := range ctx.Engine.Lines(sel.Range()) {
			cursors = append(cursors, cursor.NewCursorSelection(begin(line)))
		}
	}
	return replaceSelections(ctx, cursors)
}

// cursorsFromCommaList scans each selection's text for comma-list items.
// A selection with no items contributes no cursor.
func (h *Handler) cursorsFromCommaList(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	sels := ctx.Engine.Selections()
	if len(sels) == 0 {
		return handler.NoOp()
	}

	cursors := []cursor.Selection{}
	for _, sel := range sels {
		r := sel.Range()
		text := ctx.Engine.TextRange(r.Start, r.End)
		for _, off := range commascan.ScanFrom(text, r.Start) {
			cursors = append(cursors, cursor.NewCursorSelection(off))
		}
	}
	ctx.Log.Debug("comma list: %d selections -> %d cursors", len(sels), len(cursors))
	return replaceSelections(ctx, cursors)
}
