package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/NemoVonNirgend/promptdeck/internal/core/organizer"
	"github.com/NemoVonNirgend/promptdeck/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "Print the organized prompt tree",
		UsageText: "promptdeck ls [--json]",
		Description: `Displays the section tree derived from the preset, with enabled counts
per section and a checkbox per prompt.

Use --json for machine-readable output.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the tree as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	app, err := cmd.flags.RequireApp()
	if err != nil {
		return err
	}
	org := app.Organizer
	org.Rebuild(ctx, false)
	roots := org.Roots()

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, buildListing(org, roots))
	}

	if len(roots) == 0 {
		fmt.Fprintln(os.Stderr, "Preset is empty")
		return nil
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	out := c.Root().Writer
	for node, depth := range organizer.Walk(roots) {
		fmt.Fprintln(out, renderLine(org, node, depth, width))
	}

	if total, ok := org.AggregateCounts(organizer.TopLevelContainer); ok {
		fmt.Fprintf(out, "\n%d/%d enabled\n", total.Enabled, total.Total)
	}
	return nil
}

// renderLine formats one tree row for plain terminal output.
func renderLine(org *organizer.Organizer, node *organizer.Node, depth, width int) string {
	indent := strings.Repeat("  ", depth)

	var line string
	if node.IsHeader() {
		counts, _ := org.AggregateCounts(node.ID())
		line = fmt.Sprintf("%s%s (%d/%d)", indent, node.Name, counts.Enabled, counts.Total)
	} else {
		check := "[ ]"
		if node.Item.Enabled {
			check = "[x]"
		}
		fav := ""
		if org.IsFavorite(node.ID()) {
			fav = " *"
		}
		line = fmt.Sprintf("%s%s %s%s", indent, check, node.Item.Name, fav)
	}

	return truncate(line, width)
}

// truncate shortens a line to width runes, marking the cut with an ellipsis.
// Cuts happen on rune boundaries so multi-byte divider glyphs stay intact.
func truncate(line string, width int) string {
	if width <= 0 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-1]) + "…"
}

// listing is the JSON output format for promptdeck ls --json.
type listing struct {
	Kind     string    `json:"kind"`
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Enabled  bool      `json:"enabled,omitempty"`
	Favorite bool      `json:"favorite,omitempty"`
	Counts   *counts   `json:"counts,omitempty"`
	Children []listing `json:"children,omitempty"`
}

type counts struct {
	Enabled int `json:"enabled"`
	Total   int `json:"total"`
}

func buildListing(org *organizer.Organizer, nodes []*organizer.Node) []listing {
	out := make([]listing, 0, len(nodes))
	for _, node := range nodes {
		entry := listing{
			ID:       node.ID(),
			Favorite: org.IsFavorite(node.ID()),
		}
		switch {
		case node.Kind == organizer.KindSection:
			entry.Kind = "section"
		case node.Kind == organizer.KindSubSection:
			entry.Kind = "subsection"
		default:
			entry.Kind = "prompt"
		}

		if node.IsHeader() {
			entry.Name = node.Name
			if c, ok := org.AggregateCounts(node.ID()); ok {
				entry.Counts = &counts{Enabled: c.Enabled, Total: c.Total}
			}
			entry.Children = buildListing(org, node.Children)
		} else {
			entry.Name = node.Item.Name
			entry.Enabled = node.Item.Enabled
		}

		out = append(out, entry)
	}
	return out
}
