package cursor

import (
	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/cursor"
	"github.com/dshills/cursorkit/internal/engine/lineinfo"
	"github.com/dshills/cursorkit/internal/input"
	"github.com/dshills/cursorkit/internal/locstore"
)

// Action names for selection commands.
const (
	ActionCursorsFromSelection     = "cursors_from_selection"
	ActionCursorsFromSelectionSoft = "cursors_from_selection_soft"
	ActionCursorsFromCommaList     = "cursors_from_comma_list"
	ActionGoToSoftBegin            = "go_to_soft_begin"
	ActionSelectToSoftBegin        = "select_to_soft_begin"
	ActionGoToCustomEnd            = "go_to_custom_end"
	ActionSelectToCustomEnd        = "select_to_custom_end"
	ActionMoveToVisibleBegin       = "move_to_visible_begin"
	ActionSaveCursors              = "save_cursors"
	ActionRestoreCursors           = "restore_cursors"
)

// DataCursorCount is the result data key holding the number of
// selections after the command ran.
const DataCursorCount = "cursors"

// Handler implements the cursor namespace.
type Handler struct {
	*handler.BaseNamespaceHandler
	store *locstore.Store
}

// NewHandler creates a cursor handler. save_cursors and restore_cursors
// share store; a nil store gets a private one.
func NewHandler(store *locstore.Store) *Handler {
	if store == nil {
		store = locstore.New()
	}
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("cursor"),
		store:                store,
	}

	h.Register(ActionCursorsFromSelection, h.cursorsFromSelection)
	h.Register(ActionCursorsFromSelectionSoft, h.cursorsFromSelectionSoft)
	h.Register(ActionCursorsFromCommaList, h.cursorsFromCommaList)
	h.Register(ActionGoToSoftBegin, h.goToSoftBegin)
	h.Register(ActionSelectToSoftBegin, h.selectToSoftBegin)
	h.Register(ActionGoToCustomEnd, h.goToCustomEnd)
	h.Register(ActionSelectToCustomEnd, h.selectToCustomEnd)
	h.Register(ActionMoveToVisibleBegin, h.moveToVisibleBegin)
	h.Register(ActionSaveCursors, h.saveCursors)
	h.Register(ActionRestoreCursors, h.restoreCursors)
	return h
}

// Store returns the saved-location store.
func (h *Handler) Store() *locstore.Store {
	return h.store
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	return h.BaseNamespaceHandler.HandleAction(action, ctx)
}

// replaceSelections swaps in sels and reports how many survived
// normalization.
func replaceSelections(ctx *execctx.ExecutionContext, sels []cursor.Selection) handler.Result {
	if err := ctx.Engine.SetSelections(sels); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithData(DataCursorCount, len(ctx.Engine.Selections()))
}

// lineText returns the content of line.
func lineText(e execctx.EngineInterface, line buffer.Range) string {
	return e.TextRange(line.Start, line.End)
}

// softBegin returns the absolute soft-begin offset of line.
func softBegin(e execctx.EngineInterface, line buffer.Range) buffer.ByteOffset {
	return line.Start + buffer.ByteOffset(lineinfo.SoftBegin(lineText(e, line)))
}

// customEnd returns the absolute custom-end offset of line.
func customEnd(e execctx.EngineInterface, line buffer.Range) buffer.ByteOffset {
	return line.Start + buffer.ByteOffset(lineinfo.CustomEnd(lineText(e, line)))
}
