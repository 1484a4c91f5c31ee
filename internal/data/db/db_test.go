package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NemoVonNirgend/promptdeck/internal/data/db"
)

func TestOpen_CreatesMissingDataDir(t *testing.T) {
	// A fresh install has no data directory yet; Open must create it
	// instead of degrading to in-memory state.
	dataDir := filepath.Join(t.TempDir(), "promptdeck", "db")

	database, err := db.Open(dataDir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	assert.FileExists(t, filepath.Join(dataDir, db.Filename))
}

func TestOpen_StateSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dataDir := filepath.Join(t.TempDir(), "db")

	database, err := db.Open(dataDir, db.DefaultOpenOptions())
	require.NoError(t, err)
	require.NoError(t, database.KVSet(ctx, "organizer:favorites", `["sword"]`))
	require.NoError(t, database.Close())

	reopened, err := db.Open(dataDir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.KVGet(ctx, "organizer:favorites")
	require.NoError(t, err)
	assert.Equal(t, `["sword"]`, got)
}
