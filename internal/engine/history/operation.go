package history

import (
	"fmt"

	"github.com/dshills/cursorkit/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Operation is a single edit inside a transaction.
//
// Before Apply, Range is expressed in the coordinates of the original
// buffer. In the list returned by Apply, Range is the region that was
// actually replaced, in the coordinates of the buffer at the moment the
// operation ran, and OldText holds the replaced text.
type Operation struct {
	Range   Range
	OldText string
	NewText string

	seq int // recording order, used to keep ties stable
}

// IsInsert returns true if this operation is a pure insertion.
func (op Operation) IsInsert() bool {
	return op.Range.IsEmpty() && len(op.NewText) > 0
}

// IsDelete returns true if this operation is a pure deletion.
func (op Operation) IsDelete() bool {
	return !op.Range.IsEmpty() && len(op.NewText) == 0
}

// IsReplace returns true if this operation replaces text.
func (op Operation) IsReplace() bool {
	return !op.Range.IsEmpty() && len(op.NewText) > 0
}

// IsNoop returns true if this operation makes no changes.
func (op Operation) IsNoop() bool {
	return op.Range.IsEmpty() && len(op.NewText) == 0
}

// BytesDelta returns the change in document length.
func (op Operation) BytesDelta() ByteOffset {
	return ByteOffset(len(op.NewText)) - op.Range.Len()
}

// NewRange returns the range covered by the new text once applied.
func (op Operation) NewRange() Range {
	return Range{
		Start: op.Range.Start,
		End:   op.Range.Start + ByteOffset(len(op.NewText)),
	}
}

// Edit converts the operation into a buffer edit.
func (op Operation) Edit() buffer.Edit {
	return buffer.NewEdit(op.Range, op.NewText)
}

func (op Operation) String() string {
	switch {
	case op.IsInsert():
		return fmt.Sprintf("insert %q at %d", op.NewText, op.Range.Start)
	case op.IsDelete():
		return fmt.Sprintf("erase %s", op.Range)
	default:
		return fmt.Sprintf("replace %s with %q", op.Range, op.NewText)
	}
}

// OperationList is a collection of operations applied together.
type OperationList []Operation

// TotalBytesDelta returns the total change in document length.
func (ops OperationList) TotalBytesDelta() ByteOffset {
	var total ByteOffset
	for _, op := range ops {
		total += op.BytesDelta()
	}
	return total
}

// Edits returns the operations as buffer edits, in order.
func (ops OperationList) Edits() []buffer.Edit {
	edits := make([]buffer.Edit, len(ops))
	for i, op := range ops {
		edits[i] = op.Edit()
	}
	return edits
}
