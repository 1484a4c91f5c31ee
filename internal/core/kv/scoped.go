package kv

import (
	"context"
	"strings"
)

// ScopedKV wraps a KV, namespacing every key with "prefix:". Different
// components share one backing store without colliding.
type ScopedKV struct {
	store  KV
	prefix string
}

var _ KV = (*ScopedKV)(nil)

// Scoped returns a KV whose keys all live under the given namespace.
func Scoped(store KV, namespace string) *ScopedKV {
	return &ScopedKV{
		store:  store,
		prefix: namespace + ":",
	}
}

// Get retrieves a value by key within the namespace.
func (s *ScopedKV) Get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, s.prefix+key)
}

// Set stores a value by key within the namespace.
func (s *ScopedKV) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.prefix+key, value)
}

// Delete removes a key within the namespace.
func (s *ScopedKV) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.prefix+key)
}

// Has returns whether a key exists within the namespace.
func (s *ScopedKV) Has(ctx context.Context, key string) (bool, error) {
	return s.store.Has(ctx, s.prefix+key)
}

// ListKeys returns the namespace's keys with the prefix stripped.
func (s *ScopedKV) ListKeys(ctx context.Context) ([]string, error) {
	all, err := s.store.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(all))
	for _, k := range all {
		if rest, ok := strings.CutPrefix(k, s.prefix); ok {
			keys = append(keys, rest)
		}
	}
	return keys, nil
}
