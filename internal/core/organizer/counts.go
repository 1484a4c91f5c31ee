package organizer

// Counts is an enabled/total tally over prompt items.
type Counts struct {
	Enabled int
	Total   int
}

// Percent returns the enabled percentage, defined as 0 when Total is 0.
func (c Counts) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Enabled) / float64(c.Total) * 100
}

// Bucket classifies a tally for progress rendering.
type Bucket int

// Progress buckets.
const (
	BucketNone Bucket = iota
	BucketPartial
	BucketFull
)

// Bucket returns the progress bucket: none when nothing is enabled, full when
// everything is (and there is something to count), partial otherwise.
func (c Counts) Bucket() Bucket {
	switch {
	case c.Enabled == 0:
		return BucketNone
	case c.Enabled == c.Total && c.Total > 0:
		return BucketFull
	default:
		return BucketPartial
	}
}

// EnabledFunc reports the live enabled flag for an item identifier. Counts
// read through this on every computation rather than trusting cached flags,
// so incremental drift cannot accumulate across mutations.
type EnabledFunc func(id string) bool

// CountDirect tallies only the items that are direct children of a header's
// content, excluding anything inside nested sub-sections. For an item node it
// counts the node itself.
func CountDirect(n *Node, enabled EnabledFunc) Counts {
	if n.Kind == KindItem {
		return countLeaf(n, enabled)
	}

	var c Counts
	for _, child := range n.Children {
		if child.Kind != KindItem {
			continue
		}
		c = c.add(countLeaf(child, enabled))
	}
	return c
}

// CountAggregate tallies a node's direct items plus the recursively
// aggregated counts of every nested header.
func CountAggregate(n *Node, enabled EnabledFunc) Counts {
	if n.Kind == KindItem {
		return countLeaf(n, enabled)
	}

	c := CountDirect(n, enabled)
	for _, child := range n.Children {
		if child.IsHeader() {
			c = c.add(CountAggregate(child, enabled))
		}
	}
	return c
}

func (c Counts) add(o Counts) Counts {
	return Counts{Enabled: c.Enabled + o.Enabled, Total: c.Total + o.Total}
}

func countLeaf(n *Node, enabled EnabledFunc) Counts {
	c := Counts{Total: 1}
	if enabled(n.ID()) {
		c.Enabled = 1
	}
	return c
}
