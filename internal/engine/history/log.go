package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry describes one committed transaction.
type Entry struct {
	ID        uuid.UUID
	Name      string
	Edits     int
	Delta     ByteOffset
	Timestamp time.Time
}

// Log journals committed transactions, oldest first.
type Log struct {
	mu         sync.Mutex
	entries    []Entry
	maxEntries int
}

// NewLog creates a journal holding at most maxEntries entries.
func NewLog(maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = 1000 // Default
	}
	return &Log{maxEntries: maxEntries}
}

// Record appends an entry for an applied transaction.
// Transactions that changed nothing are not recorded.
func (l *Log) Record(tx *Transaction) (Entry, bool) {
	if !tx.Done() || len(tx.applied) == 0 {
		return Entry{}, false
	}

	e := Entry{
		ID:        tx.ID(),
		Name:      tx.Name(),
		Edits:     len(tx.applied),
		Delta:     tx.Delta(),
		Timestamp: time.Now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, e)
	if len(l.entries) > l.maxEntries {
		// Remove oldest entries
		excess := len(l.entries) - l.maxEntries
		l.entries = l.entries[excess:]
	}
	return e, true
}

// Entries returns a copy of the journal.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of journaled transactions.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Last returns the most recent entry.
func (l *Log) Last() (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Clear empties the journal.
func (l *Log) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
