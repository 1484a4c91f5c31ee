package organizer

import (
	"iter"

	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
)

// NodeKind discriminates tree node variants.
type NodeKind int

// Tree node kinds. A header node carries the prompt item whose label served
// as the divider; its children hold the grouped content.
const (
	KindItem NodeKind = iota
	KindSection
	KindSubSection
)

// Node is one entry in the section tree. The tree is always fully derivable
// from the flat item list plus persisted open state; it carries no
// information that cannot be recomputed.
type Node struct {
	Kind NodeKind

	// Item is the underlying prompt entry. For header nodes this is the item
	// whose label was classified as a divider.
	Item prompt.Item

	// Label is the exact, unmodified label text of a header item. It is the
	// persistence key for open/closed state.
	Label string

	// Name is the display name with divider decoration stripped. Empty for
	// ordinary items (the item's own name is shown instead).
	Name string

	// Open is the disclosure state of a header node. Defaults to open.
	Open bool

	// Children is the ordered content of a header node. A section's children
	// are items and sub-sections; a sub-section's children are items only.
	Children []*Node
}

// ID returns the identifier of the node's underlying item.
func (n *Node) ID() string { return n.Item.Identifier }

// IsHeader reports whether the node is a section or sub-section header.
func (n *Node) IsHeader() bool { return n.Kind != KindItem }

// Build reconstructs the section tree from a classified flat item list in a
// single left-to-right pass. It is a pure function of its input order: no
// sorting, no lookahead. A sub-section captures every ordinary item until the
// next header of any kind; a sub-section appearing before any section is
// appended to the top level as an orphan.
func Build(items []prompt.Item, classify func(string) Classification) []*Node {
	var (
		roots      []*Node
		currentSec *Node
		currentSub *Node
	)

	for _, item := range items {
		cls := classify(item.Name)

		switch cls.Level {
		case LevelSection:
			node := &Node{
				Kind:  KindSection,
				Item:  item,
				Label: item.Name,
				Name:  cls.DisplayName,
				Open:  true,
			}
			roots = append(roots, node)
			currentSec = node
			currentSub = nil

		case LevelSubSection:
			node := &Node{
				Kind:  KindSubSection,
				Item:  item,
				Label: item.Name,
				Name:  cls.DisplayName,
				Open:  true,
			}
			if currentSec != nil {
				currentSec.Children = append(currentSec.Children, node)
				currentSub = node
			} else {
				// Orphan sub-section before any section. It still collects
				// its own children, but is not nested anywhere.
				roots = append(roots, node)
				currentSub = node
			}

		default:
			node := &Node{Kind: KindItem, Item: item}
			switch {
			case currentSub != nil:
				currentSub.Children = append(currentSub.Children, node)
			case currentSec != nil:
				currentSec.Children = append(currentSec.Children, node)
			default:
				roots = append(roots, node)
			}
		}
	}

	return roots
}

// Flatten converts a tree back into the flat ordered item list. Headers
// flatten to their own item followed by their children. Flatten(Build(x))
// preserves order with no items lost or duplicated.
func Flatten(roots []*Node) []prompt.Item {
	var out []prompt.Item
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, n.Item)
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}

// Walk yields every node in the tree in document order together with its
// nesting depth (0 for top-level nodes).
func Walk(roots []*Node) iter.Seq2[*Node, int] {
	return func(yield func(*Node, int) bool) {
		var walk func(nodes []*Node, depth int) bool
		walk = func(nodes []*Node, depth int) bool {
			for _, n := range nodes {
				if !yield(n, depth) {
					return false
				}
				if !walk(n.Children, depth+1) {
					return false
				}
			}
			return true
		}
		walk(roots, 0)
	}
}

// Headers yields every section and sub-section header in document order.
func Headers(roots []*Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := range Walk(roots) {
			if !n.IsHeader() {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Find returns the node with the given item identifier, or nil.
func Find(roots []*Node, id string) *Node {
	for n := range Walk(roots) {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

// FindByLabel returns the first header whose original label matches, or nil.
func FindByLabel(roots []*Node, label string) *Node {
	for n := range Headers(roots) {
		if n.Label == label {
			return n
		}
	}
	return nil
}
