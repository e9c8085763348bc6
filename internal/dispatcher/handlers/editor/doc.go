// Package editor provides the text-editing commands.
//
// Each command builds one transaction from the current selections and
// commits it, so a command is a single undo step for the host. Offsets
// are computed against the text as it was before the command ran; the
// transaction takes care of drift.
//
//   - delete_to_soft_begin: erase from the first non-blank byte of each
//     selection's first line up to its anchor
//   - fix_first_letter: uppercase the first letter or digit of every
//     selected line
package editor
