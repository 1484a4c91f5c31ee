// Package state persists organizer UI state: open/closed section flags keyed
// by original label text, favorite prompt identifiers, favorite preset names,
// and named snapshots of enabled prompts.
package state

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a named snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Persister is the external key-value collaborator. Reads are available at
// startup; writes may be backed asynchronously as long as they are
// fire-and-forget from the store's perspective.
type Persister interface {
	// Get returns the raw stored value and whether the key exists.
	Get(key string) (string, bool)
	// Set overwrites the raw stored value.
	Set(key, value string)
}

// Storage keys. Each key is decoded independently so corruption in one never
// resets another.
const (
	keyOpenSections    = "open_sections"
	keyFavorites       = "favorites"
	keyPresetFavorites = "preset_favorites"
	keySnapshots       = "snapshots"
)

// Snapshot is a named, persisted set of enabled prompt identifiers.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Enabled   []string  `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// Store holds organizer state in memory and writes every mutation through to
// the Persister. A corrupt or missing persisted value resets that key to its
// empty default without error.
type Store struct {
	persister Persister
	log       zerolog.Logger

	openSections    map[string]bool
	favorites       map[string]struct{}
	presetFavorites map[string]struct{}
	snapshots       []Snapshot
}

// New loads all state from the persister. It never fails: unreadable values
// are logged and replaced with empty defaults for that key only.
func New(p Persister, log zerolog.Logger) *Store {
	s := &Store{
		persister:       p,
		log:             log,
		openSections:    map[string]bool{},
		favorites:       map[string]struct{}{},
		presetFavorites: map[string]struct{}{},
	}

	loadKey(s, keyOpenSections, &s.openSections)

	var favs []string
	loadKey(s, keyFavorites, &favs)
	for _, id := range favs {
		s.favorites[id] = struct{}{}
	}

	var presets []string
	loadKey(s, keyPresetFavorites, &presets)
	for _, name := range presets {
		s.presetFavorites[name] = struct{}{}
	}

	loadKey(s, keySnapshots, &s.snapshots)

	return s
}

// loadKey decodes one persisted value into dest. Missing or corrupt data
// leaves dest at its empty default, so writes keep working afterwards.
func loadKey[T any](s *Store, key string, dest *T) {
	raw, ok := s.persister.Get(key)
	if !ok || raw == "" {
		return
	}

	var decoded T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("corrupt persisted state, resetting key")
		return
	}
	*dest = decoded
}

func (s *Store) persist(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("marshal state")
		return
	}
	s.persister.Set(key, string(data))
}

// GetOpen reports the persisted open flag for a section label. Sections that
// were never persisted default to open.
func (s *Store) GetOpen(label string) bool {
	open, ok := s.openSections[label]
	if !ok {
		return true
	}
	return open
}

// SetOpen records and persists a section's open flag.
func (s *Store) SetOpen(label string, open bool) {
	s.openSections[label] = open
	s.persist(keyOpenSections, s.openSections)
}

// CaptureOpen records many open flags at once, persisting a single write.
// Used by the rebuild coordinator to snapshot the live tree before it is
// discarded.
func (s *Store) CaptureOpen(states map[string]bool) {
	if len(states) == 0 {
		return
	}
	for label, open := range states {
		s.openSections[label] = open
	}
	s.persist(keyOpenSections, s.openSections)
}

// IsFavorite reports whether a prompt identifier is marked favorite.
func (s *Store) IsFavorite(id string) bool {
	_, ok := s.favorites[id]
	return ok
}

// ToggleFavorite flips an identifier's favorite flag, persists immediately,
// and returns the new state.
func (s *Store) ToggleFavorite(id string) bool {
	if _, ok := s.favorites[id]; ok {
		delete(s.favorites, id)
	} else {
		s.favorites[id] = struct{}{}
	}
	s.persist(keyFavorites, sortedKeys(s.favorites))
	return s.IsFavorite(id)
}

// IsPresetFavorite reports whether a preset name is marked favorite.
func (s *Store) IsPresetFavorite(name string) bool {
	_, ok := s.presetFavorites[name]
	return ok
}

// TogglePresetFavorite flips a preset name's favorite flag and returns the
// new state. Preset favorites are order-insignificant opaque names.
func (s *Store) TogglePresetFavorite(name string) bool {
	if _, ok := s.presetFavorites[name]; ok {
		delete(s.presetFavorites, name)
	} else {
		s.presetFavorites[name] = struct{}{}
	}
	s.persist(keyPresetFavorites, sortedKeys(s.presetFavorites))
	return s.IsPresetFavorite(name)
}

// Snapshots returns all saved snapshots, newest first.
func (s *Store) Snapshots() []Snapshot {
	out := make([]Snapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

// GetSnapshot returns a snapshot by name. Returns ErrNotFound if absent.
func (s *Store) GetSnapshot(name string) (Snapshot, error) {
	for _, snap := range s.snapshots {
		if snap.Name == name {
			return snap, nil
		}
	}
	return Snapshot{}, ErrNotFound
}

// SaveSnapshot stores a named set of enabled identifiers, replacing any
// existing snapshot with the same name.
func (s *Store) SaveSnapshot(name string, enabled []string) Snapshot {
	snap := Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Enabled:   append([]string(nil), enabled...),
		CreatedAt: time.Now(),
	}

	kept := s.snapshots[:0]
	for _, existing := range s.snapshots {
		if existing.Name != name {
			kept = append(kept, existing)
		}
	}
	s.snapshots = append([]Snapshot{snap}, kept...)
	s.persist(keySnapshots, s.snapshots)
	return snap
}

// DeleteSnapshot removes a snapshot by name. Returns ErrNotFound if absent.
func (s *Store) DeleteSnapshot(name string) error {
	for i, snap := range s.snapshots {
		if snap.Name == name {
			s.snapshots = append(s.snapshots[:i], s.snapshots[i+1:]...)
			s.persist(keySnapshots, s.snapshots)
			return nil
		}
	}
	return ErrNotFound
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
