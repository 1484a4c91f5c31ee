// Package kv defines the persistent key-value contract that backs organizer
// state. Keys and values are strings; callers own serialization so the state
// store can decode each key tolerantly.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for missing keys.
var ErrNotFound = errors.New("key not found")

// KV is the interface for a persistent key-value store. Reads must be
// available at startup before first render; writes are synchronous from the
// caller's perspective.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}
