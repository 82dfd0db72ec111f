package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nhle/zero-hour/internal/store"
	"github.com/nhle/zero-hour/tests/testutil"
)

func TestGetMissingKey(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get missing key error = %v, want ErrNotFound", err)
	}
}

func TestSetGetOverwrite(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "k", "one"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "k", "two"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "two" {
		t.Errorf("Get = %q, want %q", got, "two")
	}
}

func TestRemoveAndKeys(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"b", "a", "c"} {
		if err := s.Set(ctx, k, k); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}
	if err := s.Remove(ctx, "b"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(ctx, "missing"); err != nil {
		t.Fatalf("Remove missing key: %v", err)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("Keys = %v, want [a c]", keys)
	}
}

func TestClear(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_ = s.Set(ctx, "x", "1")
	_ = s.Set(ctx, "y", "2")
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Keys after Clear = %v, want none", keys)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "zerohour.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Set(ctx, "zeroHourState", `{"version":1}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening must not re-run migrations or lose rows.
	s, err = store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer s.Close()

	got, err := s.Get(ctx, "zeroHourState")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got != `{"version":1}` {
		t.Errorf("Get after reopen = %q", got)
	}
}
