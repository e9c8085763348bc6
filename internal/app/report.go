package app

import (
	"github.com/rivo/uniseg"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	cmdchain "github.com/dshills/cursorkit/internal/dispatcher/chain"
	chainhandler "github.com/dshills/cursorkit/internal/dispatcher/handlers/chain"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/engine"
)

// ReportOptions selects optional report sections.
type ReportOptions struct {
	// Diff adds a patch from the original text to the current text.
	Diff bool
	// Pretty indents the JSON.
	Pretty bool
	// Stats adds per-command dispatch counts.
	Stats bool
}

// Position is a line and a column counted in grapheme clusters, both
// zero-based.
type Position struct {
	Line   uint32 `json:"line"`
	Column int    `json:"column"`
}

type selectionReport struct {
	Anchor int64    `json:"anchor"`
	Head   int64    `json:"head"`
	Start  Position `json:"start"`
	End    Position `json:"end"`
}

type journalReport struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Edits int    `json:"edits"`
	Delta int64  `json:"delta"`
}

type commandStats struct {
	Name       string `json:"name"`
	Dispatches uint64 `json:"dispatches"`
	Errors     uint64 `json:"errors"`
	Last       string `json:"last_status"`
	MeanMicros int64  `json:"mean_us"`
}

type chainReport struct {
	State      string `json:"state"`
	Invoked    int    `json:"invoked"`
	DeferredTo string `json:"deferred_to,omitempty"`
	Pending    int    `json:"pending,omitempty"`
}

// Report renders doc and the result of the last command as JSON.
func (app *Application) Report(doc *Document, result handler.Result, opts ReportOptions) ([]byte, error) {
	json := "{}"
	var err error
	set := func(path string, value any) {
		if err == nil {
			json, err = sjson.Set(json, path, value)
		}
	}

	set("file", doc.Name)
	set("status", result.Status.String())
	if result.Message != "" {
		set("message", result.Message)
	}
	if result.Error != nil {
		set("error", result.Error.Error())
	}
	set("text", doc.Engine.Text())
	set("modified", doc.Modified())

	set("selections", []any{})
	for _, sel := range doc.Engine.Selections() {
		r := sel.Range()
		set("selections.-1", selectionReport{
			Anchor: int64(sel.Anchor),
			Head:   int64(sel.Head),
			Start:  PositionOf(doc.Engine, r.Start),
			End:    PositionOf(doc.Engine, r.End),
		})
	}

	if v, ok := result.GetData(chainhandler.DataOutcome); ok {
		if out, ok := v.(cmdchain.Outcome); ok {
			set("chain", chainReport{
				State:      out.State.String(),
				Invoked:    out.Invoked,
				DeferredTo: out.DeferredTo,
				Pending:    out.Pending,
			})
		}
	}

	if targets, waiting, ok := app.PendingJump(); ok {
		labels := make(map[string]int64, len(targets))
		for _, t := range targets {
			labels[t.Label] = int64(t.Offset)
		}
		set("pending_jump.targets", labels)
		set("pending_jump.waiting", waiting)
	}

	set("journal", []any{})
	for _, e := range doc.Engine.Journal() {
		set("journal.-1", journalReport{
			ID:    e.ID.String(),
			Name:  e.Name,
			Edits: e.Edits,
			Delta: int64(e.Delta),
		})
	}

	if m := app.dispatcher.Metrics(); opts.Stats && m != nil {
		tot := m.Totals()
		set("stats.dispatches", tot.Dispatches)
		set("stats.errors", tot.Errors)
		set("stats.cancelled", tot.Cancelled)
		set("stats.panics", m.Panics())
		set("stats.commands", []any{})
		for _, s := range m.Snapshot() {
			set("stats.commands.-1", commandStats{
				Name:       s.Name,
				Dispatches: s.Dispatches,
				Errors:     s.Errors,
				Last:       s.Last.String(),
				MeanMicros: s.Mean().Microseconds(),
			})
		}
	}

	if opts.Diff {
		set("diff", Diff(doc.Original(), doc.Engine.Text()))
	}
	if err != nil {
		return nil, NewOperationError("report", doc.Name, err)
	}

	out := []byte(json)
	if opts.Pretty {
		out = pretty.Pretty(out)
	}
	return out, nil
}

// PositionOf converts offset into a line and a grapheme column.
func PositionOf(eng *engine.Engine, offset engine.ByteOffset) Position {
	pt := eng.OffsetToPoint(offset)
	line := eng.LineAt(offset)
	prefix := eng.TextRange(line.Start, offset)
	return Position{Line: pt.Line, Column: uniseg.GraphemeClusterCount(prefix)}
}

// Diff returns a unified-style patch turning before into after, or ""
// when they match.
func Diff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.PatchToText(dmp.PatchMake(before, diffs))
}
