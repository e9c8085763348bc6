package history

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/dshills/cursorkit/internal/engine/buffer"
)

// Common errors for transactions.
var (
	ErrEditsOverlap    = errors.New("transaction edits overlap")
	ErrTransactionDone = errors.New("transaction already applied")
)

// Transaction is an ordered batch of edits applied as a single unit.
// Positions are always given relative to the buffer before any of the
// transaction's edits ran.
type Transaction struct {
	id      uuid.UUID
	name    string
	ops     OperationList
	applied OperationList
	done    bool
}

// NewTransaction creates an empty transaction.
func NewTransaction(name string) *Transaction {
	return &Transaction{
		id:   uuid.New(),
		name: name,
	}
}

// ID returns the transaction's unique identifier.
func (tx *Transaction) ID() uuid.UUID { return tx.id }

// Name returns the transaction's description.
func (tx *Transaction) Name() string { return tx.name }

// Len returns the number of recorded operations.
func (tx *Transaction) Len() int { return len(tx.ops) }

// IsEmpty returns true if nothing has been recorded.
func (tx *Transaction) IsEmpty() bool { return len(tx.ops) == 0 }

// Done reports whether the transaction has been applied.
func (tx *Transaction) Done() bool { return tx.done }

// Applied returns the operations as they were applied, or nil before Apply.
func (tx *Transaction) Applied() OperationList {
	if tx.applied == nil {
		return nil
	}
	out := make(OperationList, len(tx.applied))
	copy(out, tx.applied)
	return out
}

// Insert records an insertion and returns the number of bytes inserted.
func (tx *Transaction) Insert(offset ByteOffset, text string) int {
	tx.record(Range{Start: offset, End: offset}, text)
	return len(text)
}

// Erase records a deletion and returns the number of bytes removed.
func (tx *Transaction) Erase(r Range) int {
	tx.record(r, "")
	return int(r.Len())
}

// Replace records a replacement and returns the number of bytes inserted.
func (tx *Transaction) Replace(r Range, text string) int {
	tx.record(r, text)
	return len(text)
}

func (tx *Transaction) record(r Range, text string) {
	tx.ops = append(tx.ops, Operation{Range: r, NewText: text, seq: len(tx.ops)})
}

// Apply applies every recorded operation to buf.
//
// Operations are sorted by original start (then end), ties keeping
// recording order, and each is shifted by the cumulative delta of those
// before it. All ranges are validated before the buffer is touched, so a
// failed Apply leaves buf unchanged.
func (tx *Transaction) Apply(buf *buffer.Buffer) (OperationList, error) {
	if tx.done {
		return nil, ErrTransactionDone
	}

	ops := make(OperationList, len(tx.ops))
	copy(ops, tx.ops)
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].Range.Start != ops[j].Range.Start {
			return ops[i].Range.Start < ops[j].Range.Start
		}
		return ops[i].Range.End < ops[j].Range.End
	})

	if err := validate(ops, buf.Len()); err != nil {
		return nil, err
	}

	applied := make(OperationList, 0, len(ops))
	var delta ByteOffset
	for _, op := range ops {
		if op.IsNoop() {
			continue
		}
		r := op.Range.Shift(delta)
		res, err := buf.ApplyEdit(buffer.NewEdit(r, op.NewText))
		if err != nil {
			// Unreachable after validate unless buf changed underneath us.
			return applied, fmt.Errorf("apply %s: %w", op, err)
		}
		// The buffer normalizes line endings, so read back what landed.
		applied = append(applied, Operation{
			Range:   r,
			OldText: res.OldText,
			NewText: buf.Substr(res.Inserted),
			seq:     op.seq,
		})
		delta += res.Delta
	}

	tx.done = true
	tx.applied = applied
	return tx.Applied(), nil
}

// validate checks sorted operations for bounds and overlaps.
func validate(ops OperationList, length ByteOffset) error {
	var maxEnd ByteOffset
	for i, op := range ops {
		r := op.Range
		if !r.IsValid() {
			return fmt.Errorf("%s: %w", r, buffer.ErrRangeInvalid)
		}
		if r.Start < 0 || r.End > length {
			return fmt.Errorf("%s: %w", r, buffer.ErrOffsetOutOfRange)
		}
		if i > 0 && r.Start < maxEnd {
			return fmt.Errorf("%s: %w", r, ErrEditsOverlap)
		}
		maxEnd = max(maxEnd, r.End)
	}
	return nil
}

// Delta returns the total length change, or zero before Apply.
func (tx *Transaction) Delta() ByteOffset {
	return tx.applied.TotalBytesDelta()
}
