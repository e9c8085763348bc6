// Package lineinfo computes cursor targets within a single line of text.
//
// All offsets are byte offsets relative to the start of the line. The
// functions keep no state and never fail; a line with nothing to match
// yields a well-defined default.
package lineinfo

import (
	"strings"
	"unicode"
)

// EndDelimiters are the characters CustomEnd stops in front of.
const EndDelimiters = ")]}:'"

// HardBegin returns the offset of the very start of the line.
func HardBegin(line string) int {
	return 0
}

// SoftBegin returns the offset of the first non-whitespace character,
// or the line length if the line is blank.
func SoftBegin(line string) int {
	return len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
}

// CustomEnd returns the offset of the rightmost end delimiter on the
// line, or the line length when there is none.
func CustomEnd(line string) int {
	best := -1
	for _, d := range EndDelimiters {
		if i := strings.LastIndexByte(line, byte(d)); i > best {
			best = i
		}
	}
	if best < 0 {
		return len(line)
	}
	return best
}

// IsBlank reports whether the line holds only whitespace.
func IsBlank(line string) bool {
	return SoftBegin(line) == len(line)
}
