// Package locstore holds saved cursor locations for the whole session.
//
// One Store is shared by every engine the application drives: a save in
// one document overwrites what another document saved. Last writer wins.
package locstore

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/dshills/cursorkit/internal/engine/buffer"
)

// DefaultSlot is the slot used by Save and Load.
const DefaultSlot = "default"

// Store maps slot names to ordered cursor offsets.
// It is safe for concurrent use.
type Store struct {
	cache *gocache.Cache
}

// New creates an empty store. Entries never expire.
func New() *Store {
	return &Store{cache: gocache.New(gocache.NoExpiration, 0)}
}

// Save overwrites the default slot.
func (s *Store) Save(offsets []buffer.ByteOffset) {
	s.SaveSlot(DefaultSlot, offsets)
}

// Load returns a copy of the default slot's offsets.
// ok is false when nothing has been saved.
func (s *Store) Load() ([]buffer.ByteOffset, bool) {
	return s.LoadSlot(DefaultSlot)
}

// SaveSlot overwrites the named slot with a copy of offsets.
func (s *Store) SaveSlot(slot string, offsets []buffer.ByteOffset) {
	saved := make([]buffer.ByteOffset, len(offsets))
	copy(saved, offsets)
	s.cache.Set(slot, saved, gocache.NoExpiration)
}

// LoadSlot returns a copy of the named slot's offsets.
func (s *Store) LoadSlot(slot string) ([]buffer.ByteOffset, bool) {
	v, found := s.cache.Get(slot)
	if !found {
		return nil, false
	}
	saved, ok := v.([]buffer.ByteOffset)
	if !ok {
		return nil, false
	}
	out := make([]buffer.ByteOffset, len(saved))
	copy(out, saved)
	return out, true
}

// Clear forgets every slot.
func (s *Store) Clear() {
	s.cache.Flush()
}

// Len returns the number of occupied slots.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
