// Package storagetest holds the shared contract tests for storage backends.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"resume-studio/internal/storage"
)

// RunStoreTests exercises the Store contract against any backend.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.Get(ctx, "scope-a", "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set get overwrite", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set(ctx, "scope-a", "k", `{"a":1}`); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := s.Set(ctx, "scope-a", "k", `{"a":2}`); err != nil {
			t.Fatalf("overwrite: %v", err)
		}
		got, err := s.Get(ctx, "scope-a", "k")
		if err != nil || got != `{"a":2}` {
			t.Fatalf("get: %q %v", got, err)
		}
	})

	t.Run("scopes are isolated", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set(ctx, "scope-a", "k", "a"); err != nil {
			t.Fatalf("set: %v", err)
		}
		if _, err := s.Get(ctx, "scope-b", "k"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected other scope to miss, got %v", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set(ctx, "scope-a", "k", "v"); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := s.Remove(ctx, "scope-a", "k"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if _, err := s.Get(ctx, "scope-a", "k"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after remove, got %v", err)
		}
		if err := s.Remove(ctx, "scope-a", "k"); err != nil {
			t.Fatalf("removing a missing key: %v", err)
		}
	})

	t.Run("empty value", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set(ctx, "scope-a", "k", ""); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := s.Get(ctx, "scope-a", "k")
		if err != nil || got != "" {
			t.Fatalf("get: %q %v", got, err)
		}
	})
}
