// Package prompt defines the prompt entry model and the host-side store
// contract that the organizer consumes.
package prompt

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a prompt identifier does not exist in the store.
var ErrNotFound = errors.New("prompt not found")

// Item is a single prompt entry owned by the host preset.
// Identifier is opaque, unique within a preset, and stable for the item's
// lifetime. Name is the label as currently shown; divider classification
// always re-reads it, never a previously stripped value.
type Item struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Enabled    bool   `json:"enabled"`
	Content    string `json:"content,omitempty"`
}

// Store is the host data store for prompt entries. The organizer reads the
// ordered list, reads and toggles enabled flags, and persists reordering.
// It never creates or destroys items.
type Store interface {
	// ListItems returns all prompt entries in preset order.
	ListItems(ctx context.Context) ([]Item, error)

	// IsEnabled reports the live enabled flag for an item.
	// Returns ErrNotFound for unknown identifiers.
	IsEnabled(ctx context.Context, id string) (bool, error)

	// SetEnabled toggles an item's enabled flag in the host store.
	SetEnabled(ctx context.Context, id string, enabled bool) error

	// GetContent returns the prompt body for an item. Used for search and
	// preview only.
	GetContent(ctx context.Context, id string) (string, error)

	// SaveOrder persists a new ordering of the full item list. The slice must
	// contain every identifier exactly once.
	SaveOrder(ctx context.Context, ids []string) error
}
