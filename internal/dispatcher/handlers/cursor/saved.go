package cursor

import (
	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/engine/cursor"
	"github.com/dshills/cursorkit/internal/input"
)

// saveCursors overwrites the shared slot with every selection head.
func (h *Handler) saveCursors(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	sels := ctx.Engine.Selections()
	heads := cursor.NewCursorSet(sels...).Heads()
	h.store.Save(heads)
	ctx.Log.Debug("saved %d cursor locations", len(heads))
	return handler.Success().WithData(DataCursorCount, len(heads))
}

// restoreCursors replaces the selections with cursors at the saved
// offsets. Nothing saved is a no-op; stale offsets fail in the engine.
func (h *Handler) restoreCursors(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	offsets, ok := h.store.Load()
	if !ok || len(offsets) == 0 {
		return handler.NoOpWithMessage("no saved cursor locations")
	}

	cursors := make([]cursor.Selection, len(offsets))
	for i, off := range offsets {
		cursors[i] = cursor.NewCursorSelection(off)
	}
	return replaceSelections(ctx, cursors)
}
