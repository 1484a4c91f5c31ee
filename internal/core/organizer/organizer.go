// Package organizer derives a section/sub-section tree from a flat, ordered
// prompt list using divider naming conventions, keeps aggregate enabled
// counts consistent across nesting, enforces reorder legality, and survives
// host-driven rebuilds of the underlying list.
package organizer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
	"github.com/NemoVonNirgend/promptdeck/internal/core/state"
)

// Organizer is the engine facade exposed to the UI layer. It owns the rebuild
// coordinator and routes state mutations through the state store so that
// everything user-visible survives a host rebuild.
type Organizer struct {
	co      *Coordinator
	prompts prompt.Store
	state   *state.Store
	log     zerolog.Logger
}

// New wires the engine. custom holds additional divider patterns from
// configuration; an invalid combined pattern falls back to the built-ins and
// is logged, never fatal.
func New(prompts prompt.Store, st *state.Store, custom []string, log zerolog.Logger) *Organizer {
	classifier, err := NewClassifier(custom, log)
	if err != nil {
		log.Warn().Err(err).Msg("invalid custom divider patterns, using built-ins")
	}

	return &Organizer{
		co:      NewCoordinator(prompts, st, classifier, log),
		prompts: prompts,
		state:   st,
		log:     log,
	}
}

// Rebuild re-derives the tree from the host list. force rebuilds even when
// the list is unchanged.
func (o *Organizer) Rebuild(ctx context.Context, force bool) {
	o.co.Rebuild(ctx, force)
}

// Mutating reports whether a rebuild cycle is in flight; change notifications
// arriving during it were caused by the engine's own writes.
func (o *Organizer) Mutating() bool { return o.co.Mutating() }

// Generation increments on every completed rebuild.
func (o *Organizer) Generation() uint64 { return o.co.Generation() }

// Roots returns the current top-level tree.
func (o *Organizer) Roots() []*Node { return o.co.Roots() }

// AggregateCounts returns the recursive enabled/total tally for a header
// identifier, or the whole-tree tally for TopLevelContainer.
func (o *Organizer) AggregateCounts(id string) (Counts, bool) {
	return o.co.Counts(id)
}

// ToggleSectionOpen flips a section's disclosure flag by its original label
// text and persists it. Returns the new state; unknown labels toggle from the
// persisted default so the flag is remembered for the next rebuild.
func (o *Organizer) ToggleSectionOpen(label string) bool {
	open := !o.state.GetOpen(label)
	if node := FindByLabel(o.co.Roots(), label); node != nil {
		node.Open = open
	}
	o.state.SetOpen(label, open)
	return open
}

// IsFavorite reports whether a prompt is marked favorite.
func (o *Organizer) IsFavorite(id string) bool { return o.state.IsFavorite(id) }

// ToggleFavorite flips a prompt's favorite flag and returns the new state.
func (o *Organizer) ToggleFavorite(id string) bool { return o.state.ToggleFavorite(id) }

// ToggleEnabled flips a single prompt's enabled flag in the host store. No
// structural rebuild happens; only counts are recomputed.
func (o *Organizer) ToggleEnabled(ctx context.Context, id string) (bool, error) {
	enabled, err := o.prompts.IsEnabled(ctx, id)
	if err != nil {
		return false, fmt.Errorf("toggle %q: %w", id, err)
	}
	if err := o.prompts.SetEnabled(ctx, id, !enabled); err != nil {
		return false, fmt.Errorf("toggle %q: %w", id, err)
	}
	if node := Find(o.co.Roots(), id); node != nil {
		node.Item.Enabled = !enabled
	}
	o.co.recount(ctx)
	return !enabled, nil
}

// MoveItem relocates a prompt or header into the content of the target
// container at the given index, persists the resulting flat order to the
// host store, and recomputes counts. Illegal moves return ErrIllegalMove
// with the tree unchanged. The caller is responsible for pausing change
// notifications around the host write.
func (o *Organizer) MoveItem(ctx context.Context, id, targetContainerID string, targetIndex int) error {
	roots, err := Move(o.co.Roots(), id, targetContainerID, targetIndex)
	if err != nil {
		return err
	}

	roots, repaired := Normalize(roots)
	if repaired {
		o.log.Warn().Str("id", id).Msg("move produced invalid nesting, relocated to nearest legal container")
	}
	o.co.roots = roots

	ids := make([]string, 0)
	for _, item := range Flatten(roots) {
		ids = append(ids, item.Identifier)
	}
	if err := o.prompts.SaveOrder(ctx, ids); err != nil {
		return fmt.Errorf("persist order after move: %w", err)
	}

	o.co.recount(ctx)
	return nil
}

// MoveStep relocates a node one legal slot forward (delta > 0) or backward
// (delta < 0) in document order, crossing container boundaries as legality
// allows. At either end of the tree the move is a no-op.
func (o *Organizer) MoveStep(ctx context.Context, id string, delta int) error {
	placements, current, err := Placements(o.co.Roots(), id)
	if err != nil {
		return err
	}
	if current < 0 {
		return fmt.Errorf("move step %q: %w", id, ErrIllegalMove)
	}

	next := current + delta
	if next < 0 || next >= len(placements) {
		return nil
	}

	p := placements[next]
	return o.MoveItem(ctx, id, p.ContainerID, p.Index)
}
