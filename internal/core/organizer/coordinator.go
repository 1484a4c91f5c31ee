package organizer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/NemoVonNirgend/promptdeck/internal/core/logging"
	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
	"github.com/NemoVonNirgend/promptdeck/internal/core/state"
)

// Phase is the rebuild coordinator's state machine position.
type Phase int

// Coordinator phases. External mutation notifications arriving while the
// coordinator is not idle are caused by its own writes and must be ignored.
const (
	PhaseIdle Phase = iota
	PhaseRebuilding
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseRebuilding:
		return "rebuilding"
	case PhaseSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Coordinator re-derives the section tree from the host prompt list whenever
// the list mutates, and re-applies persisted open/closed state by original
// label after every rebuild. The host is free to rewrite its list at any
// time; the tree tolerates total loss because it holds nothing that cannot
// be recomputed from the flat list plus persisted state.
//
// The coordinator runs on a single event loop and is not safe for concurrent
// use; interleaving of rebuild cycles is prevented by the phase guard.
type Coordinator struct {
	prompts    prompt.Store
	state      *state.Store
	classifier *Classifier
	log        zerolog.Logger

	phase      Phase
	generation uint64
	roots      []*Node
	counts     map[string]Counts
	total      Counts
}

// NewCoordinator wires a coordinator. No rebuild happens until Rebuild is
// called.
func NewCoordinator(prompts prompt.Store, st *state.Store, cl *Classifier, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		prompts:    prompts,
		state:      st,
		classifier: cl,
		log:        log,
		counts:     map[string]Counts{},
	}
}

// Phase returns the coordinator's current state machine position.
func (c *Coordinator) Phase() Phase { return c.phase }

// Mutating reports whether the coordinator is currently inside a rebuild
// cycle. Callers use this to suppress change notifications triggered by the
// coordinator's own writes.
func (c *Coordinator) Mutating() bool { return c.phase != PhaseIdle }

// Generation increments on every completed rebuild. The tree object identity
// changes across rebuilds; generation lets callers detect that cheaply.
func (c *Coordinator) Generation() uint64 { return c.generation }

// Roots returns the current top-level tree. Nil before the first rebuild.
func (c *Coordinator) Roots() []*Node { return c.roots }

// Rebuild runs one full cycle: capture open state, re-read the flat list,
// re-classify every original label, rebuild the tree, recompute aggregate
// counts, then re-apply persisted open state by label. A rebuild requested
// while one is already in flight is ignored. A rebuild never fails: if the
// host list cannot be read, the previous tree is kept and the attempt is
// retried on the next legitimate notification.
func (c *Coordinator) Rebuild(ctx context.Context, force bool) {
	if c.phase != PhaseIdle {
		c.log.Debug().Stringer("phase", c.phase).Msg("rebuild suppressed while not idle")
		return
	}

	c.phase = PhaseRebuilding
	defer func() { c.phase = PhaseIdle }()

	// Capture before flatten: the live tree's disclosure flags win over
	// whatever the new tree would default to.
	if c.roots != nil {
		states := make(map[string]bool)
		for h := range Headers(c.roots) {
			states[h.Label] = h.Open
		}
		c.state.CaptureOpen(states)
	}

	items, err := c.prompts.ListItems(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("prompt list unavailable, rebuild is a no-op")
		return
	}

	if !force && c.roots != nil && sameOrder(Flatten(c.roots), items) {
		applyEnabled(c.roots, items)
		c.recount(ctx)
		c.settle()
		return
	}

	c.roots = Build(items, c.classifier.Classify)
	c.recount(ctx)
	c.settle()

	c.log.Debug().
		Ctx(logging.WithGeneration(ctx, c.generation)).
		Int("items", len(items)).
		Msg("rebuild complete")
}

// settle re-applies persisted open flags to the rebuilt headers and publishes
// the new generation.
func (c *Coordinator) settle() {
	c.phase = PhaseSettling
	for h := range Headers(c.roots) {
		h.Open = c.state.GetOpen(h.Label)
	}
	c.generation++
}

// recount recomputes every header's aggregate tally plus the whole-tree
// total. Counts always read enabled flags live from the host store.
func (c *Coordinator) recount(ctx context.Context) {
	enabled := c.enabledFunc(ctx)

	c.counts = make(map[string]Counts)
	c.total = Counts{}

	for _, root := range c.roots {
		c.total = c.total.add(CountAggregate(root, enabled))
	}
	for h := range Headers(c.roots) {
		c.counts[h.ID()] = CountAggregate(h, enabled)
	}
}

// Counts returns the cached aggregate tally for a header identifier, or the
// whole-tree tally for TopLevelContainer. The second return is false for
// unknown identifiers.
func (c *Coordinator) Counts(id string) (Counts, bool) {
	if id == TopLevelContainer {
		return c.total, true
	}
	counts, ok := c.counts[id]
	return counts, ok
}

func (c *Coordinator) enabledFunc(ctx context.Context) EnabledFunc {
	return func(id string) bool {
		enabled, err := c.prompts.IsEnabled(ctx, id)
		if err != nil {
			c.log.Debug().Err(err).Str("id", id).Msg("enabled lookup failed")
			return false
		}
		return enabled
	}
}

// applyEnabled copies the fresh host enabled flags onto a tree kept across a
// structurally-unchanged rebuild, so rows render current state.
func applyEnabled(roots []*Node, items []prompt.Item) {
	byID := make(map[string]bool, len(items))
	for _, item := range items {
		byID[item.Identifier] = item.Enabled
	}
	for n := range Walk(roots) {
		if enabled, ok := byID[n.ID()]; ok {
			n.Item.Enabled = enabled
		}
	}
}

func sameOrder(a, b []prompt.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Identifier != b[i].Identifier || a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
