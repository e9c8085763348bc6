package cursor_test

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/cursorkit/internal/dispatcher/handlers/cursor"
	"github.com/dshills/cursorkit/internal/engine"
	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/cursor"
	"github.com/dshills/cursorkit/internal/input"
	"github.com/dshills/cursorkit/internal/locstore"
)

func run(t *testing.T, h *cursorhandler.Handler, e *engine.Engine, name string, args input.Args) handler.Result {
	t.Helper()
	ctx := execctx.New().WithEngine(e)
	return h.HandleAction(input.NewAction(name).WithArgs(args), ctx)
}

func expectSelections(t *testing.T, e *engine.Engine, want ...cursor.Selection) {
	t.Helper()
	got := e.Selections()
	if len(got) != len(want) {
		t.Fatalf("expected selections %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selection %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func cursorsAt(offsets ...buffer.ByteOffset) []cursor.Selection {
	out := make([]cursor.Selection, len(offsets))
	for i, off := range offsets {
		out[i] = cursor.NewCursorSelection(off)
	}
	return out
}

func TestHandlerActions(t *testing.T) {
	h := cursorhandler.NewHandler(nil)

	if h.Namespace() != "cursor" {
		t.Errorf("expected namespace cursor, got %q", h.Namespace())
	}
	if len(h.Actions()) != 10 {
		t.Errorf("expected 10 actions, got %v", h.Actions())
	}
	if !h.CanHandle(cursorhandler.ActionSaveCursors) {
		t.Error("expected save_cursors to be handled")
	}
	if h.CanHandle("cursor.moveLeft") {
		t.Error("unexpected action handled")
	}
}

func TestHandlerRequiresEngine(t *testing.T) {
	h := cursorhandler.NewHandler(nil)
	result := h.HandleAction(input.NewAction(cursorhandler.ActionGoToSoftBegin), execctx.New())

	if !errors.Is(result.Error, execctx.ErrMissingEngine) {
		t.Errorf("expected ErrMissingEngine, got %v", result.Error)
	}
}

func TestCursorsFromSelection(t *testing.T) {
	// "  ab" [0,4)  "\tcd" [5,8)  "ef" [9,11)
	content := "  ab\n\tcd\nef"

	tests := []struct {
		name   string
		action string
		want   []cursor.Selection
	}{
		{"hard begin", cursorhandler.ActionCursorsFromSelection, cursorsAt(0, 5, 9)},
		{"soft begin", cursorhandler.ActionCursorsFromSelectionSoft, cursorsAt(2, 6, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engine.New(engine.WithContent(content), engine.WithSelections(cursor.NewSelection(9, 1)))
			result := run(t, cursorhandler.NewHandler(nil), e, tt.action, nil)

			if result.Status != handler.StatusOK {
				t.Fatalf("expected OK, got %v: %v", result.Status, result.Error)
			}
			if n := result.GetDataInt(cursorhandler.DataCursorCount); n != 3 {
				t.Errorf("expected 3 cursors reported, got %d", n)
			}
			expectSelections(t, e, tt.want...)
		})
	}
}

func TestCursorsFromSelectionSharedLine(t *testing.T) {
	// Two selections on the same line collapse into one cursor.
	e := engine.New(
		engine.WithContent("  abcdef\nxy"),
		engine.WithSelections(cursor.NewSelection(2, 3), cursor.NewSelection(5, 6)),
	)
	run(t, cursorhandler.NewHandler(nil), e, cursorhandler.ActionCursorsFromSelectionSoft, nil)

	expectSelections(t, e, cursorsAt(2)...)
}

func TestCursorsFromSelectionEmpty(t *testing.T) {
	e := engine.New(engine.WithContent("abc"))
	if err := e.SetSelections(nil); err != nil {
		t.Fatal(err)
	}

	result := run(t, cursorhandler.NewHandler(nil), e, cursorhandler.ActionCursorsFromSelection, nil)
	if result.Status != handler.StatusNoOp {
		t.Errorf("expected NoOp, got %v", result.Status)
	}
}

func TestCursorsFromCommaList(t *testing.T) {
	e := engine.New(
		engine.WithContent("x = f(a, b,  c)\ng(\td, e)"),
		engine.WithSelections(cursor.NewSelection(6, 14), cursor.NewSelection(18, 23)),
	)
	run(t, cursorhandler.NewHandler(nil), e, cursorhandler.ActionCursorsFromCommaList, nil)

	// The tab after "g(" is not skipped.
	expectSelections(t, e, cursorsAt(6, 9, 13, 18, 22)...)
}

func TestCursorsFromCommaListNoItems(t *testing.T) {
	e := engine.New(engine.WithContent("a, b"), engine.WithSelections(cursor.NewCursorSelection(1)))
	result := run(t, cursorhandler.NewHandler(nil), e, cursorhandler.ActionCursorsFromCommaList, nil)

	if result.Status != handler.StatusOK {
		t.Fatalf("expected OK, got %v", result.Status)
	}
	expectSelections(t, e)
}

func TestSoftBegin(t *testing.T) {
	content := "    foo bar\n"

	e := engine.New(engine.WithContent(content), engine.WithSelections(cursor.NewCursorSelection(9)))
	run(t, cursorhandler.NewHandler(nil), e, cursorhandler.ActionGoToSoftBegin, nil)
	expectSelections(t, e, cursorsAt(4)...)

	e = engine.New(engine.WithContent(content), engine.WithSelections(cursor.NewSelection(9, 6)))
	run(t, cursorhandler.NewHandler(nil), e, cursorhandler.ActionSelectToSoftBegin, nil)
	expectSelections(t, e, cursor.NewSelection(4, 9))
}

func TestGoToCustomEndToggles(t *testing.T) {
	e := engine.New(engine.WithContent("foo(x, y):\nnext"), engine.WithSelections(cursor.NewCursorSelection(2)))
	h := cursorhandler.NewHandler(nil)

	for i, want := range []buffer.ByteOffset{10, 9, 10} {
		run(t, h, e, cursorhandler.ActionGoToCustomEnd, nil)
		got := e.Selections()
		if len(got) != 1 || got[0] != cursor.NewCursorSelection(want) {
			t.Fatalf("step %d: expected cursor at %d, got %v", i, want, got)
		}
	}
}

func TestSelectToCustomEndLastLine(t *testing.T) {
	// "a)" [0,2)  "foo]" [3,7)
	e := engine.New(engine.WithContent("a)\nfoo]"), engine.WithSelections(cursor.NewSelection(0, 5)))
	h := cursorhandler.NewHandler(nil)
	args := input.Args{cursorhandler.ArgLine: cursorhandler.LineLast}

	run(t, h, e, cursorhandler.ActionSelectToCustomEnd, args)
	expectSelections(t, e, cursor.NewSelection(0, 7))

	run(t, h, e, cursorhandler.ActionSelectToCustomEnd, args)
	expectSelections(t, e, cursor.NewSelection(0, 6))
}

func TestCustomEndFirstLineOfSelection(t *testing.T) {
	e := engine.New(engine.WithContent("a)\nfoo]"), engine.WithSelections(cursor.NewSelection(5, 1)))
	run(t, cursorhandler.NewHandler(nil), e, cursorhandler.ActionGoToCustomEnd,
		input.Args{cursorhandler.ArgLine: cursorhandler.LineFirst})

	expectSelections(t, e, cursorsAt(2)...)
}

func TestCustomEndInvalidLine(t *testing.T) {
	e := engine.New(engine.WithContent("abc"), engine.WithSelections(cursor.NewCursorSelection(1)))

	for _, v := range []any{"middle", 3} {
		result := run(t, cursorhandler.NewHandler(nil), e, cursorhandler.ActionGoToCustomEnd,
			input.Args{cursorhandler.ArgLine: v})
		if !errors.Is(result.Error, handler.ErrInvalidArgument) {
			t.Errorf("line=%v: expected ErrInvalidArgument, got %v", v, result.Error)
		}
	}
	expectSelections(t, e, cursorsAt(1)...)
}

func TestMoveToVisibleBegin(t *testing.T) {
	// Lines start at 0, 3, 6, 9, 12.
	content := "l0\nl1\nl2\nl3\nl4"

	tests := []struct {
		name        string
		first, last uint32
		want        buffer.ByteOffset
	}{
		{"second visible line", 1, 3, 6},
		{"single visible line", 2, 2, 6},
		{"top of file", 0, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engine.New(
				engine.WithContent(content),
				engine.WithVisibleLines(tt.first, tt.last),
				engine.WithSelections(cursorsAt(0, 13)...),
			)
			run(t, cursorhandler.NewHandler(nil), e, cursorhandler.ActionMoveToVisibleBegin, nil)
			expectSelections(t, e, cursorsAt(tt.want)...)
		})
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	store := locstore.New()
	h := cursorhandler.NewHandler(store)
	e := engine.New(engine.WithContent("0123456789"), engine.WithSelections(cursorsAt(3, 7)...))

	run(t, h, e, cursorhandler.ActionSaveCursors, nil)

	if err := e.SetSelections([]cursor.Selection{cursor.NewSelection(0, 9)}); err != nil {
		t.Fatal(err)
	}
	result := run(t, h, e, cursorhandler.ActionRestoreCursors, nil)

	if result.Status != handler.StatusOK {
		t.Fatalf("expected OK, got %v: %v", result.Status, result.Error)
	}
	expectSelections(t, e, cursorsAt(3, 7)...)
}

func TestSaveStoresHeads(t *testing.T) {
	store := locstore.New()
	e := engine.New(engine.WithContent("0123456789"), engine.WithSelections(cursor.NewSelection(8, 2)))

	run(t, cursorhandler.NewHandler(store), e, cursorhandler.ActionSaveCursors, nil)

	saved, ok := store.Load()
	if !ok || len(saved) != 1 || saved[0] != 2 {
		t.Errorf("expected head 2 saved, got %v", saved)
	}
}

func TestRestoreRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := locstore.New()
		h := cursorhandler.NewHandler(store)
		e := engine.New(engine.WithContent("0123456789"), engine.WithSelections(cursorsAt(3, 7)...))
		ctx := execctx.New().WithEngine(e)

		h.HandleAction(input.NewAction(cursorhandler.ActionSaveCursors), ctx)

		n := rapid.IntRange(0, 4).Draw(rt, "selections")
		var sels []cursor.Selection
		for i := 0; i < n; i++ {
			a := buffer.ByteOffset(rapid.IntRange(0, 10).Draw(rt, "anchor"))
			b := buffer.ByteOffset(rapid.IntRange(0, 10).Draw(rt, "head"))
			sels = append(sels, cursor.NewSelection(a, b))
		}
		if err := e.SetSelections(sels); err != nil {
			rt.Fatal(err)
		}

		h.HandleAction(input.NewAction(cursorhandler.ActionRestoreCursors), ctx)

		got := e.Selections()
		if len(got) != 2 || got[0] != cursor.NewCursorSelection(3) || got[1] != cursor.NewCursorSelection(7) {
			rt.Fatalf("expected cursors at 3 and 7, got %v", got)
		}
	})
}

func TestRestoreNothingSaved(t *testing.T) {
	e := engine.New(engine.WithContent("abc"), engine.WithSelections(cursor.NewSelection(0, 2)))
	result := run(t, cursorhandler.NewHandler(nil), e, cursorhandler.ActionRestoreCursors, nil)

	if result.Status != handler.StatusNoOp {
		t.Errorf("expected NoOp, got %v", result.Status)
	}
	expectSelections(t, e, cursor.NewSelection(0, 2))
}

func TestRestoreSharedAcrossEngines(t *testing.T) {
	store := locstore.New()
	long := engine.New(engine.WithContent("0123456789"), engine.WithSelections(cursorsAt(3, 7)...))
	short := engine.New(engine.WithContent("ab"))

	run(t, cursorhandler.NewHandler(store), long, cursorhandler.ActionSaveCursors, nil)
	result := run(t, cursorhandler.NewHandler(store), short, cursorhandler.ActionRestoreCursors, nil)

	if !errors.Is(result.Error, buffer.ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", result.Error)
	}
	expectSelections(t, short, cursorsAt(0)...)
}
