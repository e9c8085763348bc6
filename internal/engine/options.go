package engine

import (
	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/cursor"
)

// DefaultMaxJournalEntries is how many committed transactions an
// engine remembers unless WithMaxJournalEntries says otherwise.
const DefaultMaxJournalEntries = 1000

// Option adjusts an Engine before its buffer is built.
type Option func(*Engine)

// WithContent seeds the document text.
func WithContent(content string) Option {
	return func(e *Engine) { e.initContent = content }
}

// WithLineEnding forces the terminator Export writes. Without it the
// engine keeps whatever the seed content used most.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding, e.lineEndingSet = ending, true
	}
}

// WithSelections seeds the cursor set. Out-of-range offsets are clamped
// to the document.
func WithSelections(sels ...cursor.Selection) Option {
	return func(e *Engine) { e.initSelections = append([]cursor.Selection(nil), sels...) }
}

// WithVisibleLines sets the viewport to lines first through last.
func WithVisibleLines(first, last uint32) Option {
	return func(e *Engine) { e.view = viewport{first: first, last: last, set: true} }
}

// WithMaxJournalEntries bounds the journal. Non-positive n is ignored.
func WithMaxJournalEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxJournal = n
		}
	}
}

// WithReadOnly makes Commit fail with ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) { e.readOnly = true }
}
