package engine

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/cursor"
	"github.com/dshills/cursorkit/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Selection represents a cursor selection.
	Selection = cursor.Selection
)

// viewport is an inclusive span of visible lines.
type viewport struct {
	first, last uint32
	set         bool
}

// Engine is the host editor facade: one buffer, its selections, its
// viewport and its transaction journal.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	// Core components
	buf     *buffer.Buffer
	cursors *cursor.CursorSet
	journal *history.Log
	view    viewport

	// Configuration
	lineEnding    buffer.LineEnding
	lineEndingSet bool
	maxJournal    int
	readOnly      bool

	// Initialization
	initContent    string
	initSelections []Selection
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		lineEnding: buffer.LineEndingLF,
		maxJournal: DefaultMaxJournalEntries,
	}

	// Apply options to get configuration
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// New creates a new Engine with the given options.
// Without WithSelections the engine starts with one cursor at offset 0.
func New(opts ...Option) *Engine {
	e := newEngine(opts)

	bufOpts := []buffer.Option{buffer.WithDetectedLineEnding(e.initContent)}
	if e.lineEndingSet {
		bufOpts = append(bufOpts, buffer.WithLineEnding(e.lineEnding))
	}
	e.buf = buffer.NewBufferFromString(e.initContent, bufOpts...)
	e.init()
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return New(append([]Option{WithContent(string(data))}, opts...)...), nil
}

func (e *Engine) init() {
	sels := e.initSelections
	if sels == nil {
		sels = []Selection{cursor.NewCursorSelection(0)}
	}
	n := e.buf.Len()
	clamped := make([]Selection, len(sels))
	for i, s := range sels {
		clamped[i] = Selection{Anchor: clampOffset(s.Anchor, n), Head: clampOffset(s.Head, n)}
	}
	e.cursors = cursor.NewCursorSet(clamped...)
	e.journal = history.NewLog(e.maxJournal)
	e.initContent = ""
	e.initSelections = nil
}

func clampOffset(off, n ByteOffset) ByteOffset {
	return min(max(off, 0), n)
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content with "\n" line endings.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Export returns the content using the document's line ending.
func (e *Engine) Export() string {
	return e.buf.Export()
}

// TextRange returns the text in [start, end), clamped to the buffer.
func (e *Engine) TextRange(start, end ByteOffset) string {
	return e.buf.TextRange(start, end)
}

// Len returns the buffer length in bytes.
func (e *Engine) Len() ByteOffset {
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() uint32 {
	return e.buf.LineCount()
}

// LineAt returns the line containing offset, without its terminator.
func (e *Engine) LineAt(offset ByteOffset) Range {
	return e.buf.LineAt(offset)
}

// Lines returns every line touched by r, in order.
func (e *Engine) Lines(r Range) []Range {
	return e.buf.Lines(r)
}

// OffsetToPoint converts a byte offset to line/column.
func (e *Engine) OffsetToPoint(offset ByteOffset) Point {
	return e.buf.OffsetToPoint(offset)
}

// RevisionID returns the buffer's current revision.
func (e *Engine) RevisionID() buffer.RevisionID {
	return e.buf.RevisionID()
}

// ============================================================================
// Selections
// ============================================================================

// Selections returns the active selections in ascending order.
func (e *Engine) Selections() []Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.All()
}

// SetSelections replaces every selection.
// Offsets outside the buffer are rejected and leave the selections as
// they were.
func (e *Engine) SetSelections(sels []Selection) error {
	n := e.buf.Len()
	for _, s := range sels {
		if s.Start() < 0 || s.End() > n {
			return fmt.Errorf("selection %s: %w", s, ErrOffsetOutOfRange)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.SetAll(sels)
	return nil
}

// Cursors returns a copy of the current cursor set.
func (e *Engine) Cursors() *cursor.CursorSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Clone()
}

// ============================================================================
// Transactions
// ============================================================================

// Begin starts a transaction. Nothing changes until Commit.
func (e *Engine) Begin(name string) *history.Transaction {
	return history.NewTransaction(name)
}

// Commit applies tx, moves the selections through its edits and
// journals it.
func (e *Engine) Commit(tx *history.Transaction) error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	applied, err := tx.Apply(e.buf)
	if err != nil {
		return fmt.Errorf("commit %q: %w", tx.Name(), err)
	}
	e.cursors.Rebase(applied.Edits())
	e.journal.Record(tx)
	return nil
}

// Journal returns the committed transactions, oldest first.
func (e *Engine) Journal() []history.Entry {
	return e.journal.Entries()
}

// ============================================================================
// Viewport
// ============================================================================

// SetVisibleLines sets the viewport to the inclusive line span [first, last].
func (e *Engine) SetVisibleLines(first, last uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view = viewport{first: first, last: last, set: true}
}

// VisibleLines returns the inclusive span of visible lines, clamped to
// the document. Without a viewport the whole document is visible.
func (e *Engine) VisibleLines() (first, last uint32) {
	e.mu.RLock()
	v := e.view
	e.mu.RUnlock()

	lastLine := e.buf.LineCount() - 1
	if !v.set {
		return 0, lastLine
	}
	first, last = min(v.first, v.last), max(v.first, v.last)
	return min(first, lastLine), min(last, lastLine)
}

// VisibleRegion returns the text range covered by the viewport.
func (e *Engine) VisibleRegion() Range {
	first, last := e.VisibleLines()
	return Range{
		Start: e.buf.LineStartOffset(first),
		End:   e.buf.LineEndOffset(last),
	}
}

// String summarizes the engine state for debugging.
func (e *Engine) String() string {
	sels := e.Selections()
	parts := make([]string, len(sels))
	for i, s := range sels {
		parts[i] = s.String()
	}
	return fmt.Sprintf("Engine(len=%d, lines=%d, sels=[%s])", e.Len(), e.LineCount(), strings.Join(parts, " "))
}
