package organizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NemoVonNirgend/promptdeck/internal/core/organizer"
	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
)

// Fixture tree: top, === A === [A One, <S> [S One]], === B === [B One].

func TestPlacements_Item(t *testing.T) {
	roots := buildNamed(t)

	placements, current, err := organizer.Placements(roots, "a1")
	require.NoError(t, err)

	want := []organizer.Placement{
		{ContainerID: "", Index: 0},
		{ContainerID: "", Index: 1},
		{ContainerID: "secA", Index: 0},
		{ContainerID: "subS", Index: 0},
		{ContainerID: "subS", Index: 1},
		{ContainerID: "secA", Index: 1},
		{ContainerID: "", Index: 2},
		{ContainerID: "secB", Index: 0},
		{ContainerID: "secB", Index: 1},
		{ContainerID: "", Index: 3},
	}
	assert.Equal(t, want, placements)

	// Current placement is a1's own slot at the top of section A.
	assert.Equal(t, organizer.Placement{ContainerID: "secA", Index: 0}, placements[current])
}

func TestPlacements_SectionStaysTopLevel(t *testing.T) {
	roots := buildNamed(t)

	placements, current, err := organizer.Placements(roots, "secA")
	require.NoError(t, err)

	want := []organizer.Placement{
		{ContainerID: "", Index: 0},
		{ContainerID: "", Index: 1},
		{ContainerID: "", Index: 2},
	}
	assert.Equal(t, want, placements)
	assert.Equal(t, 1, current)
}

func TestPlacements_SubSectionSkipsSubSections(t *testing.T) {
	roots := buildNamed(t)

	placements, current, err := organizer.Placements(roots, "subS")
	require.NoError(t, err)

	want := []organizer.Placement{
		{ContainerID: "", Index: 0},
		{ContainerID: "", Index: 1},
		{ContainerID: "secA", Index: 0},
		{ContainerID: "secA", Index: 1},
		{ContainerID: "", Index: 2},
		{ContainerID: "secB", Index: 0},
		{ContainerID: "secB", Index: 1},
		{ContainerID: "", Index: 3},
	}
	assert.Equal(t, want, placements)
	assert.Equal(t, organizer.Placement{ContainerID: "secA", Index: 1}, placements[current])
}

func TestPlacements_UnknownID(t *testing.T) {
	roots := buildNamed(t)

	_, _, err := organizer.Placements(roots, "ghost")
	assert.ErrorIs(t, err, prompt.ErrNotFound)
}

func TestPlacements_SteppingIsSequential(t *testing.T) {
	// Moving to the slot after the current one shifts the node exactly one
	// visual position.
	roots := buildNamed(t)

	placements, current, err := organizer.Placements(roots, "a1")
	require.NoError(t, err)
	next := placements[current+1]

	roots, err = organizer.Move(roots, "a1", next.ContainerID, next.Index)
	require.NoError(t, err)

	assert.Equal(t, []string{"top", "secA", "subS", "a1", "s1", "secB", "b1"}, flatIDs(roots))
}
