// Package compare implements the bounded comparison set: an ordered
// selection of up to four listing identifiers a user lines up for the
// side-by-side view.  The set has a single logical writer (the owning
// session) and is persisted synchronously on every mutation so it
// survives reloads.
package compare

import (
	"context"
	"errors"
)

// MaxItems is the hard cap on comparison set size; the side-by-side
// view renders at most four columns.
const MaxItems = 4

// ErrCapacityExceeded is returned by Add when the set already holds
// MaxItems distinct listings.  The set is left unchanged.
var ErrCapacityExceeded = errors.New("comparison set is full")

// Store persists the serialized set under a fixed per-owner key.
// Load must report absent data as an empty slice, not an error.
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}

// Set is an ordered, deduplicated selection of listing IDs.  Insertion
// order is preserved and is the display order.  Every successful
// mutation writes the whole set through to the Store before returning.
type Set struct {
	store Store
	ids   []string
}

// Restore builds a Set from whatever the store holds.  Malformed or
// absent stored data yields an empty set; only transport errors from
// the store are propagated.
func Restore(ctx context.Context, store Store) (*Set, error) {
	ids, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	s := &Set{store: store}
	// Drop duplicates and overflow defensively; stored data may have
	// been written by an older client.
	for _, id := range ids {
		if id == "" || s.Contains(id) {
			continue
		}
		if len(s.ids) == MaxItems {
			break
		}
		s.ids = append(s.ids, id)
	}
	return s, nil
}

// Add appends id to the end of the set.  Adding an already-present id
// is a no-op and never fails, even when the set is full.  Adding a new
// id to a full set returns ErrCapacityExceeded and changes nothing.
func (s *Set) Add(ctx context.Context, id string) error {
	if s.Contains(id) {
		return nil
	}
	if len(s.ids) >= MaxItems {
		return ErrCapacityExceeded
	}
	s.ids = append(s.ids, id)
	if err := s.store.Save(ctx, s.ids); err != nil {
		s.ids = s.ids[:len(s.ids)-1]
		return err
	}
	return nil
}

// Remove deletes id from the set if present; removing an absent id is
// a silent no-op.
func (s *Set) Remove(ctx context.Context, id string) error {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return s.store.Save(ctx, s.ids)
		}
	}
	return nil
}

// Clear empties the set unconditionally.
func (s *Set) Clear(ctx context.Context) error {
	s.ids = nil
	return s.store.Save(ctx, nil)
}

// Contains reports membership without side effects.
func (s *Set) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns the listing identifiers in insertion order.  The slice
// is a copy; callers may not mutate the set through it.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of listings currently selected.
func (s *Set) Len() int { return len(s.ids) }
