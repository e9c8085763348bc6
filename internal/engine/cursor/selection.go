package cursor

import (
	"fmt"

	"github.com/dshills/cursorkit/internal/engine/buffer"
)

type (
	ByteOffset = buffer.ByteOffset
	Range      = buffer.Range
	Edit       = buffer.Edit
)

// Selection is a region of the document. Anchor stays put while Head
// moves; a Selection with Anchor == Head is a bare cursor.
type Selection struct {
	Anchor ByteOffset
	Head   ByteOffset
}

// NewSelection returns the region from anchor to head.
func NewSelection(anchor, head ByteOffset) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection returns a bare cursor at offset.
func NewCursorSelection(offset ByteOffset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

func (s Selection) Start() ByteOffset { return min(s.Anchor, s.Head) }
func (s Selection) End() ByteOffset   { return max(s.Anchor, s.Head) }

// Range is the ordered span, whichever way the selection points.
func (s Selection) Range() Range { return Range{Start: s.Start(), End: s.End()} }

// IsEmpty reports a bare cursor.
func (s Selection) IsEmpty() bool { return s.Anchor == s.Head }

// IsBackward reports a head before its anchor.
func (s Selection) IsBackward() bool { return s.Head < s.Anchor }

// Extend keeps the anchor and moves the head to offset.
func (s Selection) Extend(offset ByteOffset) Selection {
	s.Head = offset
	return s
}

// MoveTo collapses to a bare cursor at offset.
func (s Selection) MoveTo(offset ByteOffset) Selection {
	return NewCursorSelection(offset)
}

func (s Selection) String() string {
	switch {
	case s.IsEmpty():
		return fmt.Sprintf("Cursor(%d)", s.Head)
	case s.IsBackward():
		return fmt.Sprintf("Selection(%d←%d)", s.Anchor, s.Head)
	default:
		return fmt.Sprintf("Selection(%d→%d)", s.Anchor, s.Head)
	}
}

// rebase maps both ends of s through edit.
func (s Selection) rebase(edit Edit) Selection {
	return Selection{Anchor: mapOffset(s.Anchor, edit), Head: mapOffset(s.Head, edit)}
}

// mapOffset moves offset so it stays attached to the same text after
// edit. Edits at or after offset leave it alone, so text inserted
// exactly at a cursor lands after it. Deletions ending at offset pull it
// back. An offset inside a replaced span moves to the end of the
// replacement.
func mapOffset(offset ByteOffset, edit Edit) ByteOffset {
	switch {
	case edit.Range.End < offset, edit.Range.End == offset && !edit.Range.IsEmpty():
		return offset + edit.Delta()
	case edit.Range.Start >= offset:
		return offset
	default:
		return edit.Range.Start + ByteOffset(len(edit.NewText))
	}
}
