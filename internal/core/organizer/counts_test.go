package organizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NemoVonNirgend/promptdeck/internal/core/organizer"
	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
)

func enabledSet(ids ...string) organizer.EnabledFunc {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

func TestCountAggregate_NestedSubSection(t *testing.T) {
	// Section containing a sub-section with 2 items (1 enabled) plus 1
	// direct enabled item.
	items := []prompt.Item{
		{Identifier: "sec", Name: "=== Combat ==="},
		{Identifier: "sub", Name: "<Melee>"},
		{Identifier: "sword", Name: "Sword"},
		{Identifier: "fist", Name: "Fist"},
		{Identifier: "bow", Name: "Bow"},
	}
	c := newClassifier(t)
	roots := organizer.Build(items, c.Classify)
	require.Len(t, roots, 1)

	sec := roots[0]
	// Move bow out of the sub-section so it counts as a direct child.
	var err error
	roots, err = organizer.Move(roots, "bow", "sec", 1)
	require.NoError(t, err)

	enabled := enabledSet("sword", "bow")

	assert.Equal(t, organizer.Counts{Enabled: 1, Total: 1}, organizer.CountDirect(sec, enabled))
	assert.Equal(t, organizer.Counts{Enabled: 2, Total: 3}, organizer.CountAggregate(sec, enabled))
}

func TestCountDirect_ExcludesNested(t *testing.T) {
	roots := buildTree(t, "=== A ===", "x", "<S>", "y", "z")
	sec := roots[0]

	all := func(string) bool { return true }
	assert.Equal(t, organizer.Counts{Enabled: 1, Total: 1}, organizer.CountDirect(sec, all))
	assert.Equal(t, organizer.Counts{Enabled: 3, Total: 3}, organizer.CountAggregate(sec, all))
}

func TestCounts_Percent(t *testing.T) {
	tests := []struct {
		name   string
		counts organizer.Counts
		want   float64
	}{
		{name: "empty is zero, not NaN", counts: organizer.Counts{}, want: 0},
		{name: "half", counts: organizer.Counts{Enabled: 1, Total: 2}, want: 50},
		{name: "full", counts: organizer.Counts{Enabled: 3, Total: 3}, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.counts.Percent(), 0.001)
		})
	}
}

func TestCounts_Bucket(t *testing.T) {
	tests := []struct {
		name   string
		counts organizer.Counts
		want   organizer.Bucket
	}{
		{name: "empty total is none", counts: organizer.Counts{}, want: organizer.BucketNone},
		{name: "zero enabled is none", counts: organizer.Counts{Total: 4}, want: organizer.BucketNone},
		{name: "all enabled is full", counts: organizer.Counts{Enabled: 4, Total: 4}, want: organizer.BucketFull},
		{name: "some enabled is partial", counts: organizer.Counts{Enabled: 2, Total: 4}, want: organizer.BucketPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.counts.Bucket())
		})
	}
}

func TestCountAggregate_ReadsLiveFlags(t *testing.T) {
	roots := buildTree(t, "=== A ===", "id-1-label")
	sec := roots[0]

	live := map[string]bool{}
	enabled := func(id string) bool { return live[id] }

	assert.Equal(t, 0, organizer.CountAggregate(sec, enabled).Enabled)

	// Flip the flag externally; the next count must see it without any
	// rebuild.
	live[sec.Children[0].ID()] = true
	assert.Equal(t, 1, organizer.CountAggregate(sec, enabled).Enabled)
}
