package testutil

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nhle/zero-hour/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// ErrInjected is the error returned by a FailingStore.
var ErrInjected = errors.New("injected storage failure")

// FailingStore wraps a Store and fails writes on demand.
type FailingStore struct {
	store.Store
	FailWrites bool
}

func (f *FailingStore) Set(ctx context.Context, key, value string) error {
	if f.FailWrites {
		return ErrInjected
	}
	return f.Store.Set(ctx, key, value)
}

func (f *FailingStore) Remove(ctx context.Context, key string) error {
	if f.FailWrites {
		return ErrInjected
	}
	return f.Store.Remove(ctx, key)
}

func (f *FailingStore) Clear(ctx context.Context) error {
	if f.FailWrites {
		return ErrInjected
	}
	return f.Store.Clear(ctx)
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
