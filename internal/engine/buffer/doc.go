// Package buffer provides the text buffer that editing commands read from
// and write to.
//
// The buffer stores its content with normalized "\n" line terminators and
// keeps an index of line start offsets so that line lookups are a binary
// search rather than a scan. All positions are byte offsets.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("func f(a, b) {\n\treturn a\n}")
//
//	// Line segmentation
//	line := buf.LineAt(17)            // [15:24) "\treturn a"
//	lines := buf.Lines(buf.FullRange()) // one Range per line
//
//	// Substring extraction
//	text := buf.TextRange(line.Start, line.End)
//
//	// Editing
//	buf.Replace(0, 4, "fn")
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column position (0-indexed, column in bytes)
//   - Range: half-open [Start, End) span of byte offsets; an empty Range is
//     a cursor position
//
// Thread Safety:
//
// All Buffer methods are safe for concurrent use. Read operations acquire a
// read lock, write operations an exclusive lock.
package buffer
