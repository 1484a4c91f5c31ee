// Package stores provides the SQLite-backed implementations of the core
// store contracts.
package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NemoVonNirgend/promptdeck/internal/core/kv"
	"github.com/NemoVonNirgend/promptdeck/internal/data/db"
)

// KVStore implements kv.KV using SQLite.
type KVStore struct {
	db *db.DB
}

var _ kv.KV = (*KVStore)(nil)

// NewKVStore creates a new SQLite-backed KV store.
func NewKVStore(db *db.DB) *KVStore {
	return &KVStore{db: db}
}

// Get retrieves a value by key. Returns an error wrapping kv.ErrNotFound if
// the key does not exist.
func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.db.KVGet(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value by key.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.db.KVSet(ctx, key, value); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.db.KVDelete(ctx, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	ok, err := s.db.KVHas(ctx, key)
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := s.db.KVListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	return keys, nil
}
