package deck_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
	"github.com/NemoVonNirgend/promptdeck/internal/core/state"
	"github.com/NemoVonNirgend/promptdeck/internal/deck"
)

type fakePrompts struct {
	items    []prompt.Item
	failSet  map[string]bool
	setCalls []string
}

func (f *fakePrompts) ListItems(context.Context) ([]prompt.Item, error) {
	return f.items, nil
}

func (f *fakePrompts) IsEnabled(_ context.Context, id string) (bool, error) {
	for _, item := range f.items {
		if item.Identifier == id {
			return item.Enabled, nil
		}
	}
	return false, prompt.ErrNotFound
}

func (f *fakePrompts) SetEnabled(_ context.Context, id string, enabled bool) error {
	if f.failSet[id] {
		return errors.New("host rejected write")
	}
	for i := range f.items {
		if f.items[i].Identifier == id {
			f.items[i].Enabled = enabled
			f.setCalls = append(f.setCalls, id)
			return nil
		}
	}
	return prompt.ErrNotFound
}

func (f *fakePrompts) GetContent(_ context.Context, id string) (string, error) {
	for _, item := range f.items {
		if item.Identifier == id {
			return item.Content, nil
		}
	}
	return "", prompt.ErrNotFound
}

func (f *fakePrompts) SaveOrder(context.Context, []string) error { return nil }

type memPersister struct {
	values map[string]string
}

func (m *memPersister) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memPersister) Set(key, value string) {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
}

func newService(t *testing.T, prompts *fakePrompts) (*deck.Service, *state.Store) {
	t.Helper()
	st := state.New(&memPersister{}, zerolog.Nop())
	return deck.NewService(prompts, st, 0, zerolog.Nop()), st
}

func TestCaptureSnapshot(t *testing.T) {
	prompts := &fakePrompts{items: []prompt.Item{
		{Identifier: "a", Enabled: true},
		{Identifier: "b", Enabled: false},
		{Identifier: "c", Enabled: true},
	}}
	svc, st := newService(t, prompts)

	snap, err := svc.CaptureSnapshot(context.Background(), "loadout")
	require.NoError(t, err)

	assert.Equal(t, "loadout", snap.Name)
	assert.Equal(t, []string{"a", "c"}, snap.Enabled)
	assert.NotEmpty(t, snap.ID)

	stored, err := st.GetSnapshot("loadout")
	require.NoError(t, err)
	assert.Equal(t, snap.ID, stored.ID)
}

func TestApplySnapshot(t *testing.T) {
	prompts := &fakePrompts{items: []prompt.Item{
		{Identifier: "a", Enabled: false},
		{Identifier: "b", Enabled: true},
		{Identifier: "c", Enabled: true},
	}}
	svc, st := newService(t, prompts)
	st.SaveSnapshot("loadout", []string{"a", "c"})

	result, err := svc.ApplySnapshot(context.Background(), "loadout")
	require.NoError(t, err)

	// a flips on, b flips off, c already matches.
	assert.Equal(t, 2, result.Applied)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Failed)
	assert.Equal(t, []string{"a", "b"}, prompts.setCalls)

	enabled, err := prompts.IsEnabled(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = prompts.IsEnabled(context.Background(), "b")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestApplySnapshot_SkipsVanishedItems(t *testing.T) {
	prompts := &fakePrompts{items: []prompt.Item{
		{Identifier: "a", Enabled: false},
	}}
	svc, st := newService(t, prompts)
	st.SaveSnapshot("loadout", []string{"a", "ghost"})

	result, err := svc.ApplySnapshot(context.Background(), "loadout")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, []string{"ghost"}, result.Skipped)
}

func TestApplySnapshot_CollectsFailures(t *testing.T) {
	prompts := &fakePrompts{
		items: []prompt.Item{
			{Identifier: "a", Enabled: false},
			{Identifier: "b", Enabled: false},
		},
		failSet: map[string]bool{"a": true},
	}
	svc, st := newService(t, prompts)
	st.SaveSnapshot("loadout", []string{"a", "b"})

	result, err := svc.ApplySnapshot(context.Background(), "loadout")
	require.NoError(t, err)

	// The failing item does not stop the rest.
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, []string{"a"}, result.Failed)
	assert.Equal(t, []string{"b"}, prompts.setCalls)
}

func TestApplySnapshot_UnknownName(t *testing.T) {
	svc, _ := newService(t, &fakePrompts{})

	_, err := svc.ApplySnapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestWaitForPreset_AlreadyReady(t *testing.T) {
	svc, _ := newService(t, &fakePrompts{})

	err := svc.WaitForPreset(context.Background(), func() bool { return true }, time.Second)
	assert.NoError(t, err)
}

func TestWaitForPreset_BecomesReady(t *testing.T) {
	svc, _ := newService(t, &fakePrompts{})

	calls := 0
	err := svc.WaitForPreset(context.Background(), func() bool {
		calls++
		return calls > 2
	}, 5*time.Second)
	assert.NoError(t, err)
}

func TestWaitForPreset_Timeout(t *testing.T) {
	svc, _ := newService(t, &fakePrompts{})

	err := svc.WaitForPreset(context.Background(), func() bool { return false }, 50*time.Millisecond)
	assert.ErrorIs(t, err, deck.ErrPresetTimeout)
}

func TestWaitForPreset_ContextCancelled(t *testing.T) {
	svc, _ := newService(t, &fakePrompts{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.WaitForPreset(ctx, func() bool { return false }, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
