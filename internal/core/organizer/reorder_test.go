package organizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NemoVonNirgend/promptdeck/internal/core/organizer"
	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
)

func namedItems() []prompt.Item {
	return []prompt.Item{
		{Identifier: "top", Name: "Top"},
		{Identifier: "secA", Name: "=== A ==="},
		{Identifier: "a1", Name: "A One"},
		{Identifier: "subS", Name: "<S>"},
		{Identifier: "s1", Name: "S One"},
		{Identifier: "secB", Name: "=== B ==="},
		{Identifier: "b1", Name: "B One"},
	}
}

func buildNamed(t *testing.T) []*organizer.Node {
	t.Helper()
	c := newClassifier(t)
	return organizer.Build(namedItems(), c.Classify)
}

func flatIDs(roots []*organizer.Node) []string {
	items := organizer.Flatten(roots)
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.Identifier
	}
	return ids
}

func TestMove_ItemBetweenSections(t *testing.T) {
	roots := buildNamed(t)

	roots, err := organizer.Move(roots, "a1", "secB", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"top", "secA", "subS", "s1", "secB", "a1", "b1"}, flatIDs(roots))
}

func TestMove_ItemIntoSubSection(t *testing.T) {
	roots := buildNamed(t)

	roots, err := organizer.Move(roots, "b1", "subS", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"top", "secA", "a1", "subS", "s1", "b1", "secB"}, flatIDs(roots))
}

func TestMove_ItemToTopLevel(t *testing.T) {
	roots := buildNamed(t)

	roots, err := organizer.Move(roots, "s1", organizer.TopLevelContainer, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", "top", "secA", "a1", "subS", "secB", "b1"}, flatIDs(roots))
}

func TestMove_SectionInterleavesWithTopLevelItems(t *testing.T) {
	roots := buildNamed(t)

	// Sections share one reorder scope with top-level items.
	roots, err := organizer.Move(roots, "secB", organizer.TopLevelContainer, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"secB", "b1", "top", "secA", "a1", "subS", "s1"}, flatIDs(roots))
}

func TestMove_RejectsHeaderZoneTargets(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		container string
	}{
		{name: "section into section", id: "secA", container: "secB"},
		{name: "section into sub-section", id: "secA", container: "subS"},
		{name: "sub-section into sub-section", id: "subS", container: "subS"},
		{name: "item onto an item row", id: "a1", container: "b1"},
		{name: "header into own subtree", id: "secA", container: "subS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots := buildNamed(t)
			before := flatIDs(roots)

			roots, err := organizer.Move(roots, tt.id, tt.container, 0)
			require.ErrorIs(t, err, organizer.ErrIllegalMove)

			// A rejected move leaves the tree unchanged.
			assert.Equal(t, before, flatIDs(roots))
		})
	}
}

func TestMove_UnknownIDs(t *testing.T) {
	roots := buildNamed(t)

	_, err := organizer.Move(roots, "ghost", organizer.TopLevelContainer, 0)
	assert.ErrorIs(t, err, prompt.ErrNotFound)

	_, err = organizer.Move(roots, "a1", "ghost", 0)
	assert.ErrorIs(t, err, prompt.ErrNotFound)
}

func TestMove_IndexClamped(t *testing.T) {
	roots := buildNamed(t)

	roots, err := organizer.Move(roots, "top", "secB", 99)
	require.NoError(t, err)
	assert.Equal(t, []string{"secA", "a1", "subS", "s1", "secB", "b1", "top"}, flatIDs(roots))

	roots, err = organizer.Move(roots, "top", organizer.TopLevelContainer, -5)
	require.NoError(t, err)
	assert.Equal(t, "top", flatIDs(roots)[0])
}

func TestMove_SubSectionIntoOtherSection(t *testing.T) {
	roots := buildNamed(t)

	roots, err := organizer.Move(roots, "subS", "secB", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"top", "secA", "a1", "secB", "subS", "s1", "b1"}, flatIDs(roots))
}

func TestNormalize_HoistsStraySection(t *testing.T) {
	roots := buildNamed(t)
	secA := organizer.Find(roots, "secA")
	secB := organizer.Find(roots, "secB")
	require.NotNil(t, secA)
	require.NotNil(t, secB)

	// Simulate a drag edge case the legality check never allows: a section
	// nested inside another section's children.
	var stripped []*organizer.Node
	for _, n := range roots {
		if n != secB {
			stripped = append(stripped, n)
		}
	}
	secA.Children = append(secA.Children, secB)

	fixed, changed := organizer.Normalize(stripped)
	assert.True(t, changed)

	assert.Equal(t, []string{"top", "secA", "a1", "subS", "s1", "secB", "b1"}, flatIDs(fixed))
	for _, n := range fixed {
		for _, child := range n.Children {
			assert.NotEqual(t, organizer.KindSection, child.Kind)
		}
	}
}

func TestNormalize_CleanTreeUntouched(t *testing.T) {
	roots := buildNamed(t)
	before := flatIDs(roots)

	fixed, changed := organizer.Normalize(roots)
	assert.False(t, changed)
	assert.Equal(t, before, flatIDs(fixed))
}
