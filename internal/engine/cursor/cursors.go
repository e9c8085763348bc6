package cursor

import (
	"cmp"
	"slices"
)

// CursorSet is the ordered collection of selections on a document.
// After every mutation it is sorted by start, free of duplicate spans,
// and free of overlaps. It may be empty.
type CursorSet struct {
	sels []Selection
}

// NewCursorSet normalizes sels into a new set.
func NewCursorSet(sels ...Selection) *CursorSet {
	cs := &CursorSet{}
	cs.SetAll(sels)
	return cs
}

// SetAll replaces the contents with a normalized copy of sels.
func (cs *CursorSet) SetAll(sels []Selection) {
	cs.sels = slices.Clone(sels)
	cs.normalize()
}

// Add inserts sel, merging it into anything it overlaps.
func (cs *CursorSet) Add(sel Selection) {
	cs.sels = append(cs.sels, sel)
	cs.normalize()
}

func (cs *CursorSet) Clear()        { cs.sels = nil }
func (cs *CursorSet) Count() int    { return len(cs.sels) }
func (cs *CursorSet) IsEmpty() bool { return len(cs.sels) == 0 }

// Primary is the first selection, or the zero Selection when empty.
func (cs *CursorSet) Primary() Selection {
	if len(cs.sels) == 0 {
		return Selection{}
	}
	return cs.sels[0]
}

// All returns a copy the caller may modify.
func (cs *CursorSet) All() []Selection {
	out := make([]Selection, len(cs.sels))
	copy(out, cs.sels)
	return out
}

// Heads returns each selection's head in order.
func (cs *CursorSet) Heads() []ByteOffset {
	heads := make([]ByteOffset, len(cs.sels))
	for i, s := range cs.sels {
		heads[i] = s.Head
	}
	return heads
}

// Clone copies the set.
func (cs *CursorSet) Clone() *CursorSet {
	return &CursorSet{sels: slices.Clone(cs.sels)}
}

// Equals compares selections pairwise, direction included.
func (cs *CursorSet) Equals(other *CursorSet) bool {
	return other != nil && slices.Equal(cs.sels, other.sels)
}

// Rebase carries every selection across edits, which must be listed in
// application order, each in the coordinates the buffer had when it was
// applied.
func (cs *CursorSet) Rebase(edits []Edit) {
	if len(edits) == 0 {
		return
	}
	for i := range cs.sels {
		for _, e := range edits {
			cs.sels[i] = cs.sels[i].rebase(e)
		}
	}
	cs.normalize()
}

// normalize sorts by (start, end) and folds overlapping selections
// together. Touching selections stay apart, as does a bare cursor
// sitting on a region's edge; a cursor strictly inside a region is
// absorbed. Of two selections with the same span the first wins.
func (cs *CursorSet) normalize() {
	if len(cs.sels) < 2 {
		return
	}
	slices.SortStableFunc(cs.sels, func(a, b Selection) int {
		if a.Start() != b.Start() {
			return cmp.Compare(a.Start(), b.Start())
		}
		return cmp.Compare(a.End(), b.End())
	})

	out := cs.sels[:1]
	for _, s := range cs.sels[1:] {
		last := &out[len(out)-1]
		switch {
		case last.Range() == s.Range():
		case s.Start() < last.End() && last.Start() < s.End():
			if s.End() > last.End() {
				*last = NewSelection(last.Start(), s.End())
			}
		default:
			out = append(out, s)
		}
	}
	cs.sels = out
}

