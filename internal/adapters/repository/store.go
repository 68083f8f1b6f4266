// Package repository defines the key-value persistence gateway and errors.
//
// Persisted game state is small and flat: one record per player keyed by
// normalized name, one record for the outcome map, one for the lock state,
// one for the verification queue. Per-entity keys keep admin operations and
// concurrent submissions from contending on a shared record; PutIfAbsent is
// the conditional write that lets exactly one of two same-name submissions
// win.
package repository

import "context"

// KV is a stored key-value pair returned by List.
type KV struct {
	Key   string
	Value []byte
}

// Store provides atomic per-key access to persisted game state.
type Store interface {
	// Get returns the value for key. The second result is false when the
	// key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put writes value under key, replacing any existing value.
	Put(ctx context.Context, key string, value []byte) error

	// PutIfAbsent writes value under key only when the key does not exist.
	// Returns true if the write happened, false if the key was taken.
	PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all pairs whose key starts with prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]KV, error)

	// Close releases any underlying resources.
	Close() error
}
