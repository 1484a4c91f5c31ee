package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/NemoVonNirgend/promptdeck/internal/core/organizer"
)

type ShowCmd struct {
	flags *Flags

	// flags
	raw bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print a prompt's content",
		UsageText: "promptdeck show <identifier or name>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "skip markdown rendering",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one prompt identifier or name")
	}
	ref := c.Args().First()

	app, err := cmd.flags.RequireApp()
	if err != nil {
		return err
	}
	org := app.Organizer
	org.Rebuild(ctx, false)

	id := resolvePrompt(org.Roots(), ref)
	if id == "" {
		return fmt.Errorf("no prompt matches %q", ref)
	}

	content, err := app.Prompts.GetContent(ctx, id)
	if err != nil {
		return fmt.Errorf("read prompt: %w", err)
	}

	out := c.Root().Writer
	if cmd.raw {
		fmt.Fprintln(out, content)
		return nil
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return fmt.Errorf("render prompt: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}

// resolvePrompt matches by identifier first, then by exact name.
func resolvePrompt(roots []*organizer.Node, ref string) string {
	if node := organizer.Find(roots, ref); node != nil {
		return node.ID()
	}
	for node := range organizer.Walk(roots) {
		if node.Item.Name == ref {
			return node.ID()
		}
	}
	return ""
}
