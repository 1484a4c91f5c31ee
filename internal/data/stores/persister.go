package stores

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/NemoVonNirgend/promptdeck/internal/core/kv"
)

// StatePersister adapts a kv.KV to the state.Persister contract, scoping all
// organizer state under its own namespace. Reads happen at startup; writes
// are fire-and-forget with failures logged, never surfaced, so a flaky disk
// degrades to in-memory state instead of breaking the UI.
type StatePersister struct {
	store kv.KV
	log   zerolog.Logger
}

// NewStatePersister wraps a KV store for state persistence.
func NewStatePersister(store kv.KV, log zerolog.Logger) *StatePersister {
	return &StatePersister{store: kv.Scoped(store, "organizer"), log: log}
}

// Get returns the raw stored value and whether the key exists.
func (p *StatePersister) Get(key string) (string, bool) {
	value, err := p.store.Get(context.Background(), key)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set overwrites the raw stored value.
func (p *StatePersister) Set(key, value string) {
	if err := p.store.Set(context.Background(), key, value); err != nil {
		p.log.Error().Err(err).Str("key", key).Msg("persist state")
	}
}
