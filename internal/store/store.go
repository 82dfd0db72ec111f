package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written or
// has been removed.
var ErrNotFound = errors.New("key not found")

// Store is a persistent string key-value store. It stands in for the
// browser's local storage: every dashboard record is one JSON value
// under a fixed key.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)

	// Clear deletes every key.
	Clear(ctx context.Context) error
}
