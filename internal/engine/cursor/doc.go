// Package cursor provides the selection model commands operate on.
//
// Selection Model:
//
// A Selection uses an anchor/head pair:
//   - Anchor: the position where the selection started
//   - Head: the cursor position (where typing would occur)
//
// When Anchor == Head the selection is a plain cursor. Range() always
// returns the ordered [Start, End) span regardless of direction.
//
// Multi-Cursor Support:
//
// CursorSet holds the regions active on a view. It is:
//   - ordered by ascending start
//   - unique by (start, end)
//   - free of overlapping regions (overlaps are merged)
//
// Commands replace a CursorSet wholesale with SetAll. An empty set is
// allowed and means nothing is selected.
//
//	cs := cursor.NewCursorSet()
//	cs.SetAll([]cursor.Selection{
//	    cursor.NewCursorSelection(10),
//	    cursor.NewSelection(20, 25),
//	})
//
//	// Keep selections attached to text after an edit
//	cs.Rebase([]buffer.Edit{buffer.NewInsert(0, "// ")})
//
// Thread Safety:
//
// Selection is an immutable value type. CursorSet is not thread-safe.
package cursor
