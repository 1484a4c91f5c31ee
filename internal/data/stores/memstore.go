package stores

import (
	"context"
	"fmt"

	corekv "github.com/NemoVonNirgend/promptdeck/internal/core/kv"
	"github.com/NemoVonNirgend/promptdeck/pkg/kv"
)

// MemStore implements kv.KV in memory. Used in tests and as a degraded mode
// when the database cannot be opened; state simply does not survive the
// process.
type MemStore struct {
	data *kv.Store[string, string]
}

var _ corekv.KV = (*MemStore)(nil)

// NewMemStore creates an empty in-memory KV store.
func NewMemStore() *MemStore {
	return &MemStore{data: kv.New[string, string]()}
}

// Get retrieves a value by key.
func (s *MemStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.data.Get(key)
	if !ok {
		return "", fmt.Errorf("kv get %q: %w", key, corekv.ErrNotFound)
	}
	return value, nil
}

// Set stores a value by key.
func (s *MemStore) Set(_ context.Context, key, value string) error {
	s.data.Set(key, value)
	return nil
}

// Delete removes a key.
func (s *MemStore) Delete(_ context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

// Has returns whether a key exists.
func (s *MemStore) Has(_ context.Context, key string) (bool, error) {
	_, ok := s.data.Get(key)
	return ok, nil
}

// ListKeys returns all keys.
func (s *MemStore) ListKeys(context.Context) ([]string, error) {
	return s.data.Keys(), nil
}
