package presetfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
	"github.com/NemoVonNirgend/promptdeck/internal/data/presetfile"
)

func writePreset(t *testing.T, contents string) *presetfile.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return presetfile.New(path)
}

const samplePreset = `{
  "name": "Adventure",
  "prompts": [
    {"identifier": "sec", "name": "=== Combat ===", "enabled": false},
    {"identifier": "sword", "name": "Sword", "enabled": true, "content": "swing"},
    {"identifier": "bow", "name": "Bow", "enabled": false, "content": "loose"}
  ]
}`

func TestListItems(t *testing.T) {
	store := writePreset(t, samplePreset)

	items, err := store.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "=== Combat ===", items[0].Name)
	assert.Equal(t, "sword", items[1].Identifier)
	assert.True(t, items[1].Enabled)
}

func TestListItems_MissingFileIsEmpty(t *testing.T) {
	store := presetfile.New(filepath.Join(t.TempDir(), "absent.json"))

	items, err := store.ListItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.False(t, store.Exists())
}

func TestListItems_MalformedFile(t *testing.T) {
	store := writePreset(t, `{"prompts": [`)

	_, err := store.ListItems(context.Background())
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	store := writePreset(t, samplePreset)

	name, err := store.Name()
	require.NoError(t, err)
	assert.Equal(t, "Adventure", name)
}

func TestIsEnabled(t *testing.T) {
	ctx := context.Background()
	store := writePreset(t, samplePreset)

	enabled, err := store.IsEnabled(ctx, "sword")
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = store.IsEnabled(ctx, "bow")
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = store.IsEnabled(ctx, "ghost")
	assert.ErrorIs(t, err, prompt.ErrNotFound)
}

func TestSetEnabled_Persists(t *testing.T) {
	ctx := context.Background()
	store := writePreset(t, samplePreset)

	require.NoError(t, store.SetEnabled(ctx, "bow", true))

	// Re-open from disk to prove the write landed.
	reopened := presetfile.New(store.Path())
	enabled, err := reopened.IsEnabled(ctx, "bow")
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestGetContent(t *testing.T) {
	ctx := context.Background()
	store := writePreset(t, samplePreset)

	content, err := store.GetContent(ctx, "sword")
	require.NoError(t, err)
	assert.Equal(t, "swing", content)

	_, err = store.GetContent(ctx, "ghost")
	assert.ErrorIs(t, err, prompt.ErrNotFound)
}

func TestSaveOrder(t *testing.T) {
	ctx := context.Background()
	store := writePreset(t, samplePreset)

	require.NoError(t, store.SaveOrder(ctx, []string{"sec", "bow", "sword"}))

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	got := make([]string, len(items))
	for i, item := range items {
		got[i] = item.Identifier
	}
	assert.Equal(t, []string{"sec", "bow", "sword"}, got)
}

func TestSaveOrder_RejectsBadLists(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		ids  []string
	}{
		{name: "missing entry", ids: []string{"sec", "sword"}},
		{name: "unknown id", ids: []string{"sec", "sword", "ghost"}},
		{name: "duplicate id", ids: []string{"sec", "sword", "sword"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := writePreset(t, samplePreset)
			require.Error(t, store.SaveOrder(ctx, tt.ids))

			// Failed reorder must leave the file untouched.
			items, err := store.ListItems(ctx)
			require.NoError(t, err)
			require.Len(t, items, 3)
			assert.Equal(t, "sec", items[0].Identifier)
		})
	}
}
