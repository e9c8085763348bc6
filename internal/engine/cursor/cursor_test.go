package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cursorkit/internal/engine/buffer"
)

func TestSelectionRange(t *testing.T) {
	fwd := NewSelection(10, 20)
	back := NewSelection(20, 10)

	assert.Equal(t, Range{Start: 10, End: 20}, fwd.Range())
	assert.Equal(t, Range{Start: 10, End: 20}, back.Range())
	assert.True(t, back.IsBackward())
	assert.False(t, fwd.IsBackward())
	assert.Equal(t, ByteOffset(10), back.Start())
	assert.Equal(t, ByteOffset(20), back.End())
}

func TestSelectionExtendAndMove(t *testing.T) {
	sel := NewSelection(5, 8)

	assert.Equal(t, Selection{Anchor: 5, Head: 2}, sel.Extend(2))
	assert.Equal(t, NewCursorSelection(12), sel.MoveTo(12))
	assert.Equal(t, "Selection(5→8)", sel.String())
	assert.Equal(t, "Selection(5←2)", sel.Extend(2).String())
	assert.Equal(t, "Cursor(3)", NewCursorSelection(3).String())
}

func TestCursorSetNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []Selection
		want []Selection
	}{
		{
			name: "sorts by start",
			in:   []Selection{NewCursorSelection(7), NewCursorSelection(3)},
			want: []Selection{NewCursorSelection(3), NewCursorSelection(7)},
		},
		{
			name: "drops duplicate cursors",
			in:   []Selection{NewCursorSelection(3), NewCursorSelection(3)},
			want: []Selection{NewCursorSelection(3)},
		},
		{
			name: "drops duplicate ranges regardless of direction",
			in:   []Selection{NewSelection(2, 6), NewSelection(6, 2)},
			want: []Selection{NewSelection(2, 6)},
		},
		{
			name: "merges overlapping regions",
			in:   []Selection{NewSelection(0, 5), NewSelection(3, 9)},
			want: []Selection{NewSelection(0, 9)},
		},
		{
			name: "absorbs a cursor strictly inside a region",
			in:   []Selection{NewSelection(8, 2), NewCursorSelection(5)},
			want: []Selection{NewSelection(8, 2)},
		},
		{
			name: "keeps a cursor on a region boundary",
			in:   []Selection{NewSelection(2, 5), NewCursorSelection(5)},
			want: []Selection{NewSelection(2, 5), NewCursorSelection(5)},
		},
		{
			name: "keeps adjacent regions apart",
			in:   []Selection{NewSelection(0, 3), NewSelection(3, 6)},
			want: []Selection{NewSelection(0, 3), NewSelection(3, 6)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewCursorSet(tt.in...)
			assert.Equal(t, tt.want, cs.All())
		})
	}
}

func TestCursorSetEmpty(t *testing.T) {
	cs := NewCursorSet()

	assert.True(t, cs.IsEmpty())
	assert.Equal(t, Selection{}, cs.Primary())
	assert.Empty(t, cs.Heads())

	cs.Add(NewCursorSelection(4))
	require.Equal(t, 1, cs.Count())

	cs.Clear()
	assert.True(t, cs.IsEmpty())
}

func TestCursorSetAllReturnsCopy(t *testing.T) {
	cs := NewCursorSet(NewCursorSelection(1))
	all := cs.All()
	all[0] = NewCursorSelection(99)

	assert.Equal(t, NewCursorSelection(1), cs.Primary())
}

func TestCursorSetCloneAndEquals(t *testing.T) {
	cs := NewCursorSet(NewSelection(0, 4), NewCursorSelection(9))
	clone := cs.Clone()

	assert.True(t, cs.Equals(clone))
	clone.Add(NewCursorSelection(20))
	assert.False(t, cs.Equals(clone))
	assert.False(t, cs.Equals(nil))
}

func TestCursorSetHeads(t *testing.T) {
	cs := NewCursorSet(NewSelection(6, 2), NewCursorSelection(10))

	assert.Equal(t, []ByteOffset{2, 10}, cs.Heads())
	assert.Equal(t, NewSelection(6, 2), cs.Primary())
}

func TestMapOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset ByteOffset
		edit   Edit
		want   ByteOffset
	}{
		{"insert before", 10, buffer.NewInsert(2, "abc"), 13},
		{"insert at offset stays", 10, buffer.NewInsert(10, "abc"), 10},
		{"insert after", 10, buffer.NewInsert(12, "abc"), 10},
		{"delete before", 10, buffer.NewDelete(2, 5), 7},
		{"delete ending at offset", 10, buffer.NewDelete(7, 10), 7},
		{"replace ending at offset", 10, buffer.NewEdit(buffer.NewRange(8, 10), "xyz"), 11},
		{"delete starting at offset", 10, buffer.NewDelete(10, 12), 10},
		{"delete spanning", 10, buffer.NewDelete(8, 12), 8},
		{"replace spanning", 10, buffer.NewEdit(buffer.NewRange(8, 12), "xy"), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapOffset(tt.offset, tt.edit))
		})
	}
}

func TestCursorSetRebase(t *testing.T) {
	cs := NewCursorSet(NewCursorSelection(4), NewCursorSelection(9))

	// Two deletions applied in order, each in the then-current coordinates.
	cs.Rebase([]Edit{
		buffer.NewDelete(0, 2),
		buffer.NewDelete(4, 6),
	})

	assert.Equal(t, []ByteOffset{2, 5}, cs.Heads())
}

func TestCursorSetRebaseMergesCollapsed(t *testing.T) {
	cs := NewCursorSet(NewCursorSelection(3), NewCursorSelection(6))

	cs.Rebase([]Edit{buffer.NewDelete(2, 7)})

	assert.Equal(t, []Selection{NewCursorSelection(2)}, cs.All())
}
