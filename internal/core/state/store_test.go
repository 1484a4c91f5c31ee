package state_test

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NemoVonNirgend/promptdeck/internal/core/state"
)

type memPersister struct {
	values map[string]string
}

func newMemPersister() *memPersister {
	return &memPersister{values: map[string]string{}}
}

func (m *memPersister) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memPersister) Set(key, value string) { m.values[key] = value }

func newStore(t *testing.T) (*state.Store, *memPersister) {
	t.Helper()
	p := newMemPersister()
	return state.New(p, zerolog.Nop()), p
}

func TestGetOpen_DefaultsOpen(t *testing.T) {
	s, _ := newStore(t)
	assert.True(t, s.GetOpen("=== Never Seen ==="))
}

func TestSetOpen_PersistsAndReloads(t *testing.T) {
	p := newMemPersister()
	s := state.New(p, zerolog.Nop())

	s.SetOpen("=== Setup ===", false)
	s.SetOpen("=== Combat ===", true)

	// A fresh store over the same persister sees the same flags.
	reloaded := state.New(p, zerolog.Nop())
	assert.False(t, reloaded.GetOpen("=== Setup ==="))
	assert.True(t, reloaded.GetOpen("=== Combat ==="))
	assert.True(t, reloaded.GetOpen("=== Other ==="))
}

func TestCaptureOpen_BatchesSingleWrite(t *testing.T) {
	s, p := newStore(t)

	s.CaptureOpen(map[string]bool{
		"=== A ===": false,
		"=== B ===": true,
	})

	assert.False(t, s.GetOpen("=== A ==="))
	assert.True(t, s.GetOpen("=== B ==="))

	var persisted map[string]bool
	require.NoError(t, json.Unmarshal([]byte(p.values["open_sections"]), &persisted))
	assert.Len(t, persisted, 2)
}

func TestToggleFavorite(t *testing.T) {
	s, p := newStore(t)

	assert.True(t, s.ToggleFavorite("abc"))
	assert.JSONEq(t, `["abc"]`, p.values["favorites"])

	assert.False(t, s.ToggleFavorite("abc"))
	assert.JSONEq(t, `[]`, p.values["favorites"])
}

func TestCorruptValue_ResetsThatKeyOnly(t *testing.T) {
	p := newMemPersister()
	p.values["open_sections"] = "{not json"
	p.values["favorites"] = `["kept"]`

	s := state.New(p, zerolog.Nop())

	// Corrupt key resets to default without throwing.
	assert.True(t, s.GetOpen("Setup"))
	// Sibling key is unaffected.
	assert.True(t, s.IsFavorite("kept"))

	// Subsequent writes succeed and produce valid JSON again.
	s.SetOpen("Setup", false)
	assert.False(t, s.GetOpen("Setup"))
	var persisted map[string]bool
	require.NoError(t, json.Unmarshal([]byte(p.values["open_sections"]), &persisted))
	assert.False(t, persisted["Setup"])

	// Batch capture after corruption must succeed too.
	s.CaptureOpen(map[string]bool{"Combat": false})
	assert.False(t, s.GetOpen("Combat"))
}

func TestCorruptSnapshots_ResetToEmpty(t *testing.T) {
	p := newMemPersister()
	p.values["snapshots"] = `[{"broken`

	s := state.New(p, zerolog.Nop())
	assert.Empty(t, s.Snapshots())

	s.SaveSnapshot("fresh", []string{"a"})
	assert.Len(t, s.Snapshots(), 1)
}

func TestPresetFavorites(t *testing.T) {
	p := newMemPersister()
	s := state.New(p, zerolog.Nop())

	assert.True(t, s.TogglePresetFavorite("Roleplay Deluxe"))
	assert.True(t, s.IsPresetFavorite("Roleplay Deluxe"))

	reloaded := state.New(p, zerolog.Nop())
	assert.True(t, reloaded.IsPresetFavorite("Roleplay Deluxe"))
	assert.False(t, reloaded.TogglePresetFavorite("Roleplay Deluxe"))
}

func TestSnapshots(t *testing.T) {
	p := newMemPersister()
	s := state.New(p, zerolog.Nop())

	_, err := s.GetSnapshot("missing")
	assert.ErrorIs(t, err, state.ErrNotFound)

	first := s.SaveSnapshot("combat-ready", []string{"sword", "shield"})
	assert.NotEmpty(t, first.ID)

	snap, err := s.GetSnapshot("combat-ready")
	require.NoError(t, err)
	assert.Equal(t, []string{"sword", "shield"}, snap.Enabled)

	// Same name replaces, newest first.
	s.SaveSnapshot("combat-ready", []string{"bow"})
	s.SaveSnapshot("stealth", []string{"cloak"})

	snaps := s.Snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, "stealth", snaps[0].Name)

	snap, err = s.GetSnapshot("combat-ready")
	require.NoError(t, err)
	assert.Equal(t, []string{"bow"}, snap.Enabled)

	// Survives reload.
	reloaded := state.New(p, zerolog.Nop())
	require.Len(t, reloaded.Snapshots(), 2)

	require.NoError(t, reloaded.DeleteSnapshot("stealth"))
	assert.ErrorIs(t, reloaded.DeleteSnapshot("stealth"), state.ErrNotFound)
}
