package organizer

import (
	"errors"
	"fmt"

	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
)

// ErrIllegalMove is returned when a proposed move targets a header zone or
// would violate nesting rules. The tree is left unchanged; a rejected move is
// a normal outcome, not a failure.
var ErrIllegalMove = errors.New("illegal move")

// TopLevelContainer identifies the root reorder scope as a move target.
const TopLevelContainer = ""

// Move relocates the node carrying id into the content of the given container
// at the given index and returns the updated top-level slice. The container is
// TopLevelContainer or the identifier of a section or sub-section header.
//
// Legality rules:
//   - sections move only within the top level; dropping a section into
//     another section is rejected
//   - sub-sections move into a section's content or the top level
//   - items move into any content zone, never onto a header row
//   - a header never moves into its own subtree
//
// All checks run before any mutation, so a rejected move leaves the tree
// deep-equal to its prior state. The index is clamped to the container's
// bounds.
func Move(roots []*Node, id, containerID string, index int) ([]*Node, error) {
	node := Find(roots, id)
	if node == nil {
		return roots, fmt.Errorf("move %q: %w", id, prompt.ErrNotFound)
	}

	var target *Node
	if containerID != TopLevelContainer {
		target = Find(roots, containerID)
		if target == nil {
			return roots, fmt.Errorf("move %q into %q: %w", id, containerID, prompt.ErrNotFound)
		}
		if !target.IsHeader() {
			// Dropping onto an ordinary item row, not a content zone.
			return roots, fmt.Errorf("move %q into item %q: %w", id, containerID, ErrIllegalMove)
		}
		if target == node || inSubtree(node, target) {
			return roots, fmt.Errorf("move %q into own subtree: %w", id, ErrIllegalMove)
		}
	}

	if !moveAllowed(node.Kind, target) {
		return roots, fmt.Errorf("move %s %q into %q: %w", kindName(node.Kind), id, containerID, ErrIllegalMove)
	}

	roots = detach(roots, node)

	dest := &roots
	if target != nil {
		dest = &target.Children
	}
	*dest = insertAt(*dest, node, index)

	return roots, nil
}

// Normalize repairs structurally invalid nesting that slipped past move
// legality: a section inside another header is hoisted to the top level after
// its former parent, and a sub-section inside a sub-section is relocated to
// the top of the nearest enclosing section. Returns the updated top level and
// whether anything moved.
func Normalize(roots []*Node) ([]*Node, bool) {
	changed := false

	for fixed := true; fixed; {
		fixed = false

		for i := 0; i < len(roots); i++ {
			parent := roots[i]
			if stray := takeStray(parent, KindSection); stray != nil {
				roots = insertAt(roots, stray, i+1)
				changed, fixed = true, true
				break
			}
		}

		for _, sec := range roots {
			if sec.Kind != KindSection {
				continue
			}
			for _, sub := range sec.Children {
				if sub.Kind != KindSubSection {
					continue
				}
				if stray := takeStray(sub, KindSubSection); stray != nil {
					sec.Children = insertAt(sec.Children, stray, 0)
					changed, fixed = true, true
					break
				}
			}
			if fixed {
				break
			}
		}
	}

	return roots, changed
}

// takeStray removes and returns the first child of the given kind from a
// header node, or nil if none exists.
func takeStray(parent *Node, kind NodeKind) *Node {
	if !parent.IsHeader() {
		return nil
	}
	for i, child := range parent.Children {
		if child.Kind == kind {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return child
		}
	}
	return nil
}

func moveAllowed(kind NodeKind, target *Node) bool {
	switch kind {
	case KindSection:
		return target == nil
	case KindSubSection:
		return target == nil || target.Kind == KindSection
	default:
		return target == nil || target.IsHeader()
	}
}

// inSubtree reports whether needle is a descendant of root.
func inSubtree(root, needle *Node) bool {
	for _, child := range root.Children {
		if child == needle || inSubtree(child, needle) {
			return true
		}
	}
	return false
}

// detach removes node from wherever it lives in the tree.
func detach(roots []*Node, node *Node) []*Node {
	for i, n := range roots {
		if n == node {
			return append(roots[:i], roots[i+1:]...)
		}
	}
	for _, n := range roots {
		detachChild(n, node)
	}
	return roots
}

func detachChild(parent, node *Node) bool {
	for i, child := range parent.Children {
		if child == node {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return true
		}
		if detachChild(child, node) {
			return true
		}
	}
	return false
}

func insertAt(nodes []*Node, node *Node, index int) []*Node {
	if index < 0 {
		index = 0
	}
	if index > len(nodes) {
		index = len(nodes)
	}
	nodes = append(nodes, nil)
	copy(nodes[index+1:], nodes[index:])
	nodes[index] = node
	return nodes
}

func kindName(k NodeKind) string {
	switch k {
	case KindSection:
		return "section"
	case KindSubSection:
		return "subsection"
	default:
		return "item"
	}
}
