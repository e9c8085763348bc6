package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// LineEnding specifies the line ending style used when exporting text.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds document text and a line index over it.
// Content is always stored with "\n" terminators; the configured
// LineEnding is applied only by Export.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	lineStarts []ByteOffset
	revisionID RevisionID
	lineEnding LineEnding
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lineStarts: []ByteOffset{0},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.setText(normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first; CRLF pairs may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and CR terminators to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// setText replaces the content and rebuilds the line index.
// Caller must hold the write lock (or own b exclusively).
func (b *Buffer) setText(s string) {
	b.text = s
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			b.lineStarts = append(b.lineStarts, ByteOffset(i+1))
		}
	}
	b.revisionID = NewRevisionID()
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Export returns the content using the buffer's configured line ending.
func (b *Buffer) Export() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.lineEnding == LineEndingLF {
		return b.text
	}
	return strings.ReplaceAll(b.text, "\n", b.lineEnding.Sequence())
}

// TextRange returns text in the given byte range.
// Out-of-range bounds are clamped.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// Substr returns the text covered by r.
func (b *Buffer) Substr(r Range) string {
	return b.TextRange(r.Start, r.End)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// FullRange returns the range covering the whole buffer.
func (b *Buffer) FullRange() Range {
	return Range{Start: 0, End: b.Len()}
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lineStarts))
}

// LineText returns the text of a specific line (without newline).
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := b.lineRange(line)
	return b.text[r.Start:r.End]
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineRange(line).Start
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineRange(line).End
}

// LineAt returns the range of the line containing offset, excluding the
// line terminator.
func (b *Buffer) LineAt(offset ByteOffset) Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineRange(b.lineOf(offset))
}

// FullLineAt returns the range of the line containing offset, including
// its terminator when there is one.
func (b *Buffer) FullLineAt(offset ByteOffset) Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line := b.lineOf(offset)
	r := b.lineRange(line)
	if int(line)+1 < len(b.lineStarts) {
		r.End = b.lineStarts[line+1]
	}
	return r
}

// Lines returns one range per line touched by r, in ascending order.
// Each range excludes its terminator. An empty r yields the line that
// contains it.
func (b *Buffer) Lines(r Range) []Range {
	b.mu.RLock()
	defer b.mu.RUnlock()

	first := b.lineOf(r.Start)
	last := b.lineOf(r.End)
	if last < first {
		first, last = last, first
	}

	lines := make([]Range, 0, last-first+1)
	for l := first; l <= last; l++ {
		lines = append(lines, b.lineRange(l))
	}
	return lines
}

// lineOf returns the index of the line containing offset.
// Caller must hold at least a read lock.
func (b *Buffer) lineOf(offset ByteOffset) uint32 {
	offset = b.clamp(offset)
	// First line start strictly greater than offset, minus one.
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	})
	return uint32(i - 1)
}

// lineRange returns the content range of a line, clamping line to the
// last line. Caller must hold at least a read lock.
func (b *Buffer) lineRange(line uint32) Range {
	if int(line) >= len(b.lineStarts) {
		line = uint32(len(b.lineStarts) - 1)
	}
	start := b.lineStarts[line]
	end := ByteOffset(len(b.text))
	if int(line)+1 < len(b.lineStarts) {
		end = b.lineStarts[line+1] - 1
	}
	return Range{Start: start, End: end}
}

// clamp limits offset to [0, len]. Caller must hold at least a read lock.
func (b *Buffer) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if n := ByteOffset(len(b.text)); offset > n {
		return n
	}
	return offset
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = b.clamp(offset)
	line := b.lineOf(offset)
	return Point{Line: line, Column: uint32(offset - b.lineStarts[line])}
}

// PointToOffset converts line/column to byte offset.
// The column is clamped to the line's length.
func (b *Buffer) PointToOffset(point Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := b.lineRange(point.Line)
	offset := r.Start + ByteOffset(point.Column)
	if offset > r.End {
		offset = r.End
	}
	return offset
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	return b.Replace(offset, offset, text)
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	_, err := b.Replace(start, end, "")
	return err
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := ByteOffset(len(b.text))
	if start < 0 || start > n || end > n {
		return 0, ErrOffsetOutOfRange
	}
	if start > end {
		return 0, ErrRangeInvalid
	}

	text = normalizeLineEndings(text)
	b.setText(b.text[:start] + text + b.text[end:])

	return start + ByteOffset(len(text)), nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	oldText := b.TextRange(edit.Range.Start, edit.Range.End)
	newEnd, err := b.Replace(edit.Range.Start, edit.Range.End, edit.NewText)
	if err != nil {
		return EditResult{}, err
	}

	return EditResult{
		Replaced: edit.Range,
		Inserted: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    newEnd - edit.Range.End,
	}, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's export line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding sets the buffer's export line ending style.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}
