// Package script loads Lua files that extend cursorkit with commands.
//
// Scripts run in a restricted state with only the base, table, string
// and math libraries. Two globals are available while a script loads:
//
//	chain("args_then_jump", {
//	  {"cursors_from_comma_list"},
//	  {"ace_jump_word", {}},
//	})
//
//	command("first_cursor_home", function(view)
//	  local sel = view.selections[1]
//	  if sel == nil then return nil end
//	  return { view.line(sel.start).start }
//	end)
//
// chain defines a named chain. command defines a command whose function
// receives a view of the document and returns the cursor offsets to
// select, or nil to leave the selection alone.
//
// The view exposes:
//
//   - selections: list of {start=, stop=} tables, ascending
//   - text(a, b): the text between two offsets
//   - line(offset): the {start=, stop=} span of the line holding offset
//   - len: the document length in bytes
package script
