package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NemoVonNirgend/promptdeck/internal/core/organizer"
)

// TreeDelegate handles rendering of deck rows in the list.
type TreeDelegate struct {
	Styles DeckStyles

	// GrabbedID marks the row currently held in move mode; empty when idle.
	GrabbedID string
}

// NewTreeDelegate creates a tree delegate with default styles.
func NewTreeDelegate() *TreeDelegate {
	return &TreeDelegate{Styles: DefaultDeckStyles()}
}

// Height returns the height of each row.
func (d *TreeDelegate) Height() int { return 1 }

// Spacing returns the spacing between rows.
func (d *TreeDelegate) Spacing() int { return 0 }

// Update handles row updates.
func (d *TreeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single deck row.
func (d *TreeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(Row)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	var line string
	if row.Node.IsHeader() {
		line = d.renderHeader(row, isSelected)
	} else {
		line = d.renderItem(row, isSelected)
	}

	var prefix string
	switch {
	case row.ID() == d.GrabbedID:
		prefix = d.Styles.Grabbed.Render(markGrabbed) + " "
	case isSelected:
		prefix = d.Styles.SelectedBorder.Render("┃") + " "
	default:
		prefix = "  "
	}

	_, _ = fmt.Fprintf(w, "%s%s%s", prefix, indent(row.Depth), line)
}

// renderHeader renders a section or sub-section header with its disclosure
// marker and aggregate count badge.
func (d *TreeDelegate) renderHeader(row Row, isSelected bool) string {
	disclosure := markClosed
	if row.Node.Open {
		disclosure = markOpen
	}

	nameStyle := d.Styles.SectionName
	if row.Node.Kind == organizer.KindSubSection {
		nameStyle = d.Styles.SubSectionName
	}
	if isSelected {
		nameStyle = d.Styles.HeaderSelected
	}

	return fmt.Sprintf("%s %s %s",
		d.Styles.Disclosure.Render(disclosure),
		nameStyle.Render(row.Node.Name),
		d.renderCounts(row.Counts),
	)
}

// renderItem renders an ordinary prompt row with checkbox and favorite mark.
func (d *TreeDelegate) renderItem(row Row, isSelected bool) string {
	check := markDisabled
	nameStyle := d.Styles.ItemDisabled
	if row.Node.Item.Enabled {
		check = markEnabled
		nameStyle = d.Styles.ItemName
	}
	if isSelected {
		nameStyle = d.Styles.Selected
	}

	connector := treeBranch
	if row.IsLast {
		connector = treeLast
	}
	prefix := ""
	if row.Depth > 0 {
		prefix = d.Styles.TreeLine.Render(connector) + " "
	}

	fav := ""
	if row.Favorite {
		fav = " " + d.Styles.Favorite.Render(markFavorite)
	}

	return fmt.Sprintf("%s%s %s%s", prefix, check, nameStyle.Render(row.Node.Item.Name), fav)
}

// renderCounts formats the enabled/total badge colored by fill bucket.
func (d *TreeDelegate) renderCounts(c organizer.Counts) string {
	style := d.Styles.CountNone
	switch c.Bucket() {
	case organizer.BucketFull:
		style = d.Styles.CountFull
	case organizer.BucketPartial:
		style = d.Styles.CountPartial
	}
	return style.Render(fmt.Sprintf("(%d/%d %.0f%%)", c.Enabled, c.Total, c.Percent()))
}

func indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("  ", depth)
}
