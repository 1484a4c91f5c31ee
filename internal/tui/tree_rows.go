package tui

import (
	"iter"

	"github.com/charmbracelet/bubbles/list"

	"github.com/NemoVonNirgend/promptdeck/internal/core/organizer"
)

// Row is one visible line of the deck tree: a section header, sub-section
// header, or prompt item.
type Row struct {
	Node     *organizer.Node
	Depth    int
	Counts   organizer.Counts
	Favorite bool
	IsLast   bool // last visible child of its parent, for └─ vs ├─
}

// FilterValue returns the value used for filtering. Headers expose their
// display name, items their prompt name, so either can be searched.
func (r Row) FilterValue() string {
	if r.Node.IsHeader() {
		return r.Node.Name
	}
	return r.Node.Item.Name
}

// ID returns the underlying prompt identifier.
func (r Row) ID() string { return r.Node.ID() }

// RowSource supplies per-node annotations when building rows.
type RowSource interface {
	AggregateCounts(id string) (organizer.Counts, bool)
	IsFavorite(id string) bool
}

// BuildRows flattens the organizer tree into visible list rows. Children of
// closed headers are omitted entirely.
func BuildRows(roots []*organizer.Node, src RowSource) []list.Item {
	var items []list.Item

	var walk func(nodes []*organizer.Node, depth int)
	walk = func(nodes []*organizer.Node, depth int) {
		for i, n := range nodes {
			row := Row{
				Node:     n,
				Depth:    depth,
				Favorite: src.IsFavorite(n.ID()),
				IsLast:   i == len(nodes)-1,
			}
			if n.IsHeader() {
				if counts, ok := src.AggregateCounts(n.ID()); ok {
					row.Counts = counts
				}
			}
			items = append(items, row)

			if n.IsHeader() && n.Open {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(roots, 0)

	return items
}

// RowsAll yields every Row in items together with its index. Non-Row
// elements are silently skipped.
func RowsAll(items []list.Item) iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i, item := range items {
			row, ok := item.(Row)
			if !ok {
				continue
			}
			if !yield(i, row) {
				return
			}
		}
	}
}

// RowsItems yields only prompt item rows (not headers) with their index.
func RowsItems(items []list.Item) iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i, row := range RowsAll(items) {
			if row.Node.IsHeader() {
				continue
			}
			if !yield(i, row) {
				return
			}
		}
	}
}

// IndexOf returns the list index of the row with the given prompt
// identifier, or -1.
func IndexOf(items []list.Item, id string) int {
	for i, row := range RowsAll(items) {
		if row.ID() == id {
			return i
		}
	}
	return -1
}
