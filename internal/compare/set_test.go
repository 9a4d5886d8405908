package compare

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newTestSet(t *testing.T) (*Set, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(nil)
	s, err := Restore(context.Background(), store)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	return s, store
}

func TestSetAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves insertion order", func(t *testing.T) {
		s, _ := newTestSet(t)
		for _, id := range []string{"c", "a", "b"} {
			if err := s.Add(ctx, id); err != nil {
				t.Fatalf("add %s: %v", id, err)
			}
		}
		if got := s.IDs(); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
			t.Errorf("expected [c a b], got %v", got)
		}
	})

	t.Run("duplicate add is a no-op", func(t *testing.T) {
		s, _ := newTestSet(t)
		_ = s.Add(ctx, "a")
		_ = s.Add(ctx, "b")
		if err := s.Add(ctx, "a"); err != nil {
			t.Fatalf("duplicate add must not fail: %v", err)
		}
		if got := s.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("expected [a b], got %v", got)
		}
	})

	t.Run("fifth distinct listing is rejected", func(t *testing.T) {
		s, _ := newTestSet(t)
		for _, id := range []string{"a", "b", "c", "d"} {
			if err := s.Add(ctx, id); err != nil {
				t.Fatalf("add %s: %v", id, err)
			}
		}
		err := s.Add(ctx, "e")
		if !errors.Is(err, ErrCapacityExceeded) {
			t.Fatalf("expected ErrCapacityExceeded, got %v", err)
		}
		if got := s.IDs(); !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
			t.Errorf("failed add must not change the set, got %v", got)
		}
	})

	t.Run("re-adding a member of a full set succeeds", func(t *testing.T) {
		s, _ := newTestSet(t)
		for _, id := range []string{"a", "b", "c", "d"} {
			_ = s.Add(ctx, id)
		}
		if err := s.Add(ctx, "b"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestSetRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("remove then re-add moves the id to the end", func(t *testing.T) {
		s, _ := newTestSet(t)
		for _, id := range []string{"a", "b", "c"} {
			_ = s.Add(ctx, id)
		}
		if err := s.Remove(ctx, "a"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if err := s.Add(ctx, "a"); err != nil {
			t.Fatalf("re-add: %v", err)
		}
		if got := s.IDs(); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
			t.Errorf("expected [b c a], got %v", got)
		}
	})

	t.Run("removing an absent id is a no-op", func(t *testing.T) {
		s, _ := newTestSet(t)
		_ = s.Add(ctx, "a")
		if err := s.Remove(ctx, "zzz"); err != nil {
			t.Fatalf("remove absent: %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 item, got %d", s.Len())
		}
	})
}

func TestSetClear(t *testing.T) {
	ctx := context.Background()
	s, store := newTestSet(t)
	for _, id := range []string{"a", "b"} {
		_ = s.Add(ctx, id)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty set, got %d items", s.Len())
	}
	// The empty state must be persisted too.
	restored, err := Restore(ctx, store)
	if err != nil {
		t.Fatalf("restore after clear: %v", err)
	}
	if restored.Len() != 0 {
		t.Errorf("cleared set came back with %d items", restored.Len())
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips through the store", func(t *testing.T) {
		store := NewMemoryStore(nil)
		s, _ := Restore(ctx, store)
		for _, id := range []string{"x", "y", "z"} {
			_ = s.Add(ctx, id)
		}
		again, err := Restore(ctx, store)
		if err != nil {
			t.Fatalf("restore: %v", err)
		}
		if got := again.IDs(); !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
			t.Errorf("expected [x y z], got %v", got)
		}
	})

	t.Run("malformed stored payload yields an empty set", func(t *testing.T) {
		store := NewMemoryStore([]byte("{not json"))
		s, err := Restore(ctx, store)
		if err != nil {
			t.Fatalf("restore: %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("expected empty set, got %d items", s.Len())
		}
	})

	t.Run("drops duplicates and overflow from stored data", func(t *testing.T) {
		store := NewMemoryStore(nil)
		if err := store.Save(ctx, []string{"a", "b", "a", "", "c", "d", "e"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		s, err := Restore(ctx, store)
		if err != nil {
			t.Fatalf("restore: %v", err)
		}
		if got := s.IDs(); !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
			t.Errorf("expected [a b c d], got %v", got)
		}
	})
}

func TestMemoryKeyspace(t *testing.T) {
	ctx := context.Background()
	ks := NewMemoryKeyspace()

	s1, _ := Restore(ctx, ks.Store("1"))
	s2, _ := Restore(ctx, ks.Store("2"))
	_ = s1.Add(ctx, "a")
	_ = s2.Add(ctx, "b")

	again, err := Restore(ctx, ks.Store("1"))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := again.IDs(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("owners must not share sets, got %v", got)
	}
}
