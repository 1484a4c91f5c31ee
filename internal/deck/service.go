package deck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
	"github.com/NemoVonNirgend/promptdeck/internal/core/state"
)

// ErrPresetTimeout is returned when the preset file does not appear within
// the configured wait window.
var ErrPresetTimeout = errors.New("timed out waiting for preset file")

// ApplyResult reports the outcome of applying a snapshot.
type ApplyResult struct {
	Applied int
	Skipped []string // identifiers in the snapshot that no longer exist
	Failed  []string // identifiers whose writes errored
}

// Service implements the non-TUI operations of the deck: snapshot capture
// and apply, and startup synchronization with the host preset file.
type Service struct {
	prompts   prompt.Store
	state     *state.Store
	itemDelay time.Duration
	log       zerolog.Logger
}

// NewService creates a deck service.
func NewService(prompts prompt.Store, st *state.Store, itemDelay time.Duration, log zerolog.Logger) *Service {
	return &Service{
		prompts:   prompts,
		state:     st,
		itemDelay: itemDelay,
		log:       log.With().Str("component", "deck-service").Logger(),
	}
}

// CaptureSnapshot records the identifiers of every currently enabled prompt
// under the given name. Saving under an existing name replaces that snapshot.
func (s *Service) CaptureSnapshot(ctx context.Context, name string) (state.Snapshot, error) {
	items, err := s.prompts.ListItems(ctx)
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("capture snapshot: %w", err)
	}

	var enabled []string
	for _, item := range items {
		if item.Enabled {
			enabled = append(enabled, item.Identifier)
		}
	}

	snap := s.state.SaveSnapshot(name, enabled)
	s.log.Info().Ctx(ctx).Str("name", name).Int("enabled", len(enabled)).Msg("snapshot captured")
	return snap, nil
}

// ApplySnapshot writes a snapshot's enabled set back to the host store one
// item at a time, pausing between writes so the host can absorb each change.
// Prompts in the snapshot are enabled, everything else is disabled. Snapshot
// entries that vanished from the preset are skipped; individual write
// failures are collected rather than aborting the rest.
func (s *Service) ApplySnapshot(ctx context.Context, name string) (ApplyResult, error) {
	snap, err := s.state.GetSnapshot(name)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("apply snapshot: %w", err)
	}

	items, err := s.prompts.ListItems(ctx)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("apply snapshot: %w", err)
	}

	wanted := make(map[string]bool, len(snap.Enabled))
	for _, id := range snap.Enabled {
		wanted[id] = true
	}

	var result ApplyResult
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		seen[item.Identifier] = true

		want := wanted[item.Identifier]
		if item.Enabled == want {
			continue
		}

		if err := s.prompts.SetEnabled(ctx, item.Identifier, want); err != nil {
			s.log.Warn().Err(err).Str("id", item.Identifier).Msg("snapshot item failed")
			result.Failed = append(result.Failed, item.Identifier)
			continue
		}
		result.Applied++

		if s.itemDelay > 0 {
			select {
			case <-time.After(s.itemDelay):
			case <-ctx.Done():
				return result, ctx.Err()
			}
		}
	}

	for _, id := range snap.Enabled {
		if !seen[id] {
			result.Skipped = append(result.Skipped, id)
		}
	}

	s.log.Info().
		Ctx(ctx).
		Str("snapshot", snap.Name).
		Int("applied", result.Applied).
		Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failed)).
		Msg("snapshot applied")

	return result, nil
}

// WaitForPreset polls until the ready check passes or the timeout elapses.
// On timeout it returns ErrPresetTimeout; callers should degrade to an empty
// deck rather than fail, since the host may create the file later.
func (s *Service) WaitForPreset(ctx context.Context, ready func() bool, timeout time.Duration) error {
	if ready() {
		return nil
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-tick.C:
			if ready() {
				return nil
			}
		case <-deadline.C:
			s.log.Warn().Dur("timeout", timeout).Msg("preset file never appeared, starting empty")
			return ErrPresetTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
