// Package jump provides labelled jump commands.
//
// ace_jump_word and ace_jump_line label every target in the visible
// region and wait: the command returns an async result listing the
// labels, and nothing moves until resolve_jump is dispatched with one
// of them. When a jump is started from a chain, the commands that
// followed it arrive as its continuation; resolve_jump runs them once
// the cursor has moved.
//
//	d.Dispatch(input.NewAction("run_multiple_commands").WithArgs(input.Args{
//	    "commands": []any{[]any{"ace_jump_word"}, []any{"go_to_custom_end"}},
//	}))
//	// ... user picks a label ...
//	d.Dispatch(input.NewAction("resolve_jump").WithArgs(input.Args{"label": "d"}))
package jump
