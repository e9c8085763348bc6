// Package cursor provides the selection commands.
//
// Every command reads the current selections from the engine, derives
// a new set and replaces the old one wholesale. None of them edit text.
//
// # Line Starts
//
//   - cursors_from_selection: a cursor at the start of every selected line
//   - cursors_from_selection_soft: the same, at the first non-blank byte
//   - cursors_from_comma_list: a cursor on each item of a comma list
//
// # Line Motions
//
//   - go_to_soft_begin: move to the first non-blank byte of the line
//   - select_to_soft_begin: select from there to the region end
//   - go_to_custom_end: toggle between the line end and the last closing
//     delimiter; args: line = "first" | "last"
//   - select_to_custom_end: the same, keeping the anchor
//   - move_to_visible_begin: one cursor on the second visible line
//
// # Saved Locations
//
//   - save_cursors: remember every cursor head in the shared store
//   - restore_cursors: put cursors back at the remembered offsets
//
// # Usage
//
//	store := locstore.New()
//	d.RegisterNamespace(cursor.NewHandler(store))
//
//	d.Dispatch(input.NewAction(cursor.ActionGoToCustomEnd).
//	    WithArgs(input.Args{"line": "last"}))
package cursor
