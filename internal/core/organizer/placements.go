package organizer

import (
	"fmt"

	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
)

// Placement is one legal drop position for a node: a container and an index
// within that container's content, computed as if the node were already
// detached.
type Placement struct {
	ContainerID string // TopLevelContainer or a header identifier
	Index       int
}

// Placements enumerates every legal placement for the node carrying id, in
// document order, together with the index of the node's current placement
// within that list. Stepping to an adjacent entry moves the node one visual
// slot, crossing in and out of sections and sub-sections as the tree allows.
func Placements(roots []*Node, id string) ([]Placement, int, error) {
	node := Find(roots, id)
	if node == nil {
		return nil, -1, fmt.Errorf("placements %q: %w", id, prompt.ErrNotFound)
	}

	var out []Placement
	current := -1

	var walk func(containerID string, children []*Node, container *Node)
	walk = func(containerID string, children []*Node, container *Node) {
		legal := moveAllowed(node.Kind, container)

		idx := 0
		for _, child := range children {
			if child == node {
				// The next slot emitted in this container is where the node
				// sits today.
				if legal {
					current = len(out)
				}
				continue
			}

			if legal {
				out = append(out, Placement{ContainerID: containerID, Index: idx})
			}
			if child.IsHeader() {
				walk(child.ID(), child.Children, child)
			}
			idx++
		}

		if legal {
			out = append(out, Placement{ContainerID: containerID, Index: idx})
		}
	}
	walk(TopLevelContainer, roots, nil)

	return out, current, nil
}
