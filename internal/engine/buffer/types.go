package buffer

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// ByteOffset indexes into the buffer text. Offsets are always byte
// positions in the LF-normalized content.
type ByteOffset = int64

// Range is the half-open byte span [Start, End).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// NewRange returns the span [start, end).
func NewRange(start, end ByteOffset) Range {
	return Range{Start: start, End: end}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len is End-Start. It is negative for an inverted range.
func (r Range) Len() ByteOffset { return r.End - r.Start }

// IsEmpty reports whether the range is a single position.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// IsValid reports whether Start does not pass End.
func (r Range) IsValid() bool { return r.Start <= r.End }

// Shift moves both ends by delta.
func (r Range) Shift(delta ByteOffset) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Edit replaces Range with NewText. An empty Range inserts, an empty
// NewText erases.
type Edit struct {
	Range   Range
	NewText string
}

// NewEdit replaces r with text.
func NewEdit(r Range, text string) Edit { return Edit{Range: r, NewText: text} }

// NewInsert inserts text at offset.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete erases [start, end).
func NewDelete(start, end ByteOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

func (e Edit) String() string {
	switch {
	case e.Range.IsEmpty():
		return fmt.Sprintf("insert %q at %d", e.NewText, e.Range.Start)
	case e.NewText == "":
		return "erase " + e.Range.String()
	default:
		return fmt.Sprintf("replace %s with %q", e.Range, e.NewText)
	}
}

// Delta is the length change the edit causes.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// EditResult describes an edit after the buffer applied it. Inserted
// covers the text as stored, which can be shorter than the edit's
// NewText when line endings were normalized.
type EditResult struct {
	Replaced Range
	Inserted Range
	OldText  string
	Delta    ByteOffset
}

// Point is a zero-based line and byte column.
type Point struct {
	Line   uint32
	Column uint32
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// RevisionID identifies one state of a buffer. Every successful
// mutation produces a fresh ID that no other buffer shares.
type RevisionID uint64

var revisions atomic.Uint64

// NewRevisionID returns a process-unique revision.
func NewRevisionID() RevisionID {
	return RevisionID(revisions.Add(1))
}

// Option configures a Buffer at construction.
type Option func(*Buffer)

// WithLineEnding fixes the line ending Export writes.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) { b.lineEnding = le }
}

// WithDetectedLineEnding picks the export line ending from the
// terminators that dominate text.
func WithDetectedLineEnding(text string) Option {
	return WithLineEnding(DetectLineEnding(text))
}

// DetectLineEnding returns the most frequent terminator in text. Ties
// prefer CRLF, then CR. Text without terminators is LF.
func DetectLineEnding(text string) LineEnding {
	crlf := strings.Count(text, "\r\n")
	cr := strings.Count(text, "\r") - crlf
	lf := strings.Count(text, "\n") - crlf

	switch {
	case crlf > 0 && crlf >= lf && crlf >= cr:
		return LineEndingCRLF
	case cr > 0 && cr >= lf:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}
