// Package engine provides the reference host that commands run against.
//
// An Engine owns one document: its buffer, the active selections, the
// visible viewport and a journal of committed edit transactions. It
// satisfies execctx.EngineInterface, so every command handler can be
// driven by it from the CLI or from tests.
//
// # Basic Usage
//
//	e := engine.New(
//	    engine.WithContent("alpha, beta\n    gamma\n"),
//	    engine.WithSelections(cursor.NewSelection(0, 11)),
//	    engine.WithVisibleLines(0, 40),
//	)
//
//	tx := e.Begin("upper")
//	tx.Replace(buffer.NewRange(0, 1), "A")
//	err := e.Commit(tx)
//
// Commit moves every selection through the applied edits, the way an
// editor keeps cursors attached to the text around them.
//
// # Thread Safety
//
// All Engine operations are thread-safe. Commands themselves are run
// one at a time by the dispatcher.
package engine
