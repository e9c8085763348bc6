package editor

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/history"
	"github.com/dshills/cursorkit/internal/engine/lineinfo"
	"github.com/dshills/cursorkit/internal/input"
)

// Action names for editing commands.
const (
	ActionDeleteToSoftBegin = "delete_to_soft_begin"
	ActionFixFirstLetter    = "fix_first_letter"
)

// Handler implements the editor namespace.
type Handler struct {
	*handler.BaseNamespaceHandler
	upper cases.Caser
}

// NewHandler creates an editor handler.
func NewHandler() *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("editor"),
		upper:                cases.Upper(language.Und),
	}
	h.Register(ActionDeleteToSoftBegin, h.deleteToSoftBegin)
	h.Register(ActionFixFirstLetter, h.fixFirstLetter)
	return h
}

// HandleAction processes an editor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	return h.BaseNamespaceHandler.HandleAction(action, ctx)
}

// commit applies tx and reports its edits. An empty transaction is a no-op.
func commit(ctx *execctx.ExecutionContext, tx *history.Transaction) handler.Result {
	if tx.IsEmpty() {
		return handler.NoOp()
	}
	if err := ctx.Engine.Commit(tx); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithEdits(handler.EditsFrom(tx.Applied()))
}

// deleteToSoftBegin erases, for every selection, the span between its
// first line's soft begin and its anchor. Spans from selections sharing
// a line are merged so the transaction never overlaps itself.
func (h *Handler) deleteToSoftBegin(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	sels := ctx.Engine.Selections()
	if len(sels) == 0 {
		return handler.NoOp()
	}

	var spans []buffer.Range
	for _, sel := range sels {
		line := ctx.Engine.LineAt(sel.Start())
		soft := line.Start + buffer.ByteOffset(lineinfo.SoftBegin(ctx.Engine.TextRange(line.Start, line.End)))
		r := buffer.NewRange(min(soft, sel.Anchor), max(soft, sel.Anchor))
		if !r.IsEmpty() {
			spans = append(spans, r)
		}
	}

	tx := ctx.Engine.Begin(ActionDeleteToSoftBegin)
	for _, r := range mergeRanges(spans) {
		tx.Erase(r)
	}
	return commit(ctx, tx)
}

// mergeRanges sorts ranges and joins the ones that overlap or touch.
func mergeRanges(ranges []buffer.Range) []buffer.Range {
	if len(ranges) < 2 {
		return ranges
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			last.End = max(last.End, r.End)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// fixFirstLetter uppercases the first letter or digit on every line
// touched by the selections. Lines already capitalized are left alone.
func (h *Handler) fixFirstLetter(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	sels := ctx.Engine.Selections()
	if len(sels) == 0 {
		return handler.NoOp()
	}

	tx := ctx.Engine.Begin(ActionFixFirstLetter)
	seen := make(map[buffer.ByteOffset]bool)
	for _, sel := range sels {
		for _, line := range ctx.Engine.Lines(sel.Range()) {
			if seen[line.Start] {
				continue
			}
			seen[line.Start] = true

			text := ctx.Engine.TextRange(line.Start, line.End)
			idx, r, ok := firstAlnum(text)
			if !ok {
				continue
			}
			old := string(r)
			if upper := h.upper.String(old); upper != old {
				start := line.Start + buffer.ByteOffset(idx)
				tx.Replace(buffer.NewRange(start, start+buffer.ByteOffset(len(old))), upper)
			}
		}
	}
	ctx.Log.Debug("fix_first_letter: %d lines, %d edits", len(seen), tx.Len())
	return commit(ctx, tx)
}

// firstAlnum returns the byte index and value of the first letter or
// digit in s.
func firstAlnum(s string) (int, rune, bool) {
	for i, r := range s {
		if r == utf8.RuneError {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return i, r, true
		}
	}
	return 0, 0, false
}
