package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/NemoVonNirgend/promptdeck/pkg/iojson"
)

type SnapshotCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewSnapshotCmd creates a new snapshot command
func NewSnapshotCmd(flags *Flags) *SnapshotCmd {
	return &SnapshotCmd{flags: flags}
}

// Register adds the snapshot command group to the application
func (cmd *SnapshotCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "snapshot",
		Usage: "Save and restore enabled prompt sets",
		Commands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Record the currently enabled prompts under a name",
				UsageText: "promptdeck snapshot save [name]",
				Action:    cmd.save,
			},
			{
				Name:      "ls",
				Usage:     "List saved snapshots",
				UsageText: "promptdeck snapshot ls [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.list,
			},
			{
				Name:      "apply",
				Usage:     "Write a snapshot's enabled set back to the preset",
				UsageText: "promptdeck snapshot apply <name>",
				Action:    cmd.apply,
			},
			{
				Name:      "rm",
				Usage:     "Delete a snapshot",
				UsageText: "promptdeck snapshot rm <name>",
				Action:    cmd.remove,
			},
		},
	})

	return app
}

func (cmd *SnapshotCmd) save(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if name == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Snapshot name").
				Value(&name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	app, err := cmd.flags.RequireApp()
	if err != nil {
		return err
	}
	snap, err := app.Service.CaptureSnapshot(ctx, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "Saved %q with %d enabled prompts\n", snap.Name, len(snap.Enabled))
	return nil
}

func (cmd *SnapshotCmd) list(ctx context.Context, c *cli.Command) error {
	app, err := cmd.flags.RequireApp()
	if err != nil {
		return err
	}
	snaps := app.State.Snapshots()

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, snaps)
	}

	if len(snaps) == 0 {
		fmt.Fprintln(os.Stderr, "No snapshots saved")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tENABLED\tCREATED")
	for _, snap := range snaps {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", snap.Name, len(snap.Enabled), snap.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (cmd *SnapshotCmd) apply(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("expected a snapshot name")
	}

	app, err := cmd.flags.RequireApp()
	if err != nil {
		return err
	}
	if app.Watcher != nil {
		app.Watcher.Pause()
		defer app.Watcher.Resume()
	}

	result, err := app.Service.ApplySnapshot(ctx, name)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	fmt.Fprintf(out, "Applied %q: %d prompts changed\n", name, result.Applied)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped %d prompts no longer in the preset\n", len(result.Skipped))
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d prompts failed to apply", len(result.Failed))
	}
	return nil
}

func (cmd *SnapshotCmd) remove(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("expected a snapshot name")
	}

	app, err := cmd.flags.RequireApp()
	if err != nil {
		return err
	}
	if err := app.State.DeleteSnapshot(name); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}

	fmt.Fprintf(c.Root().Writer, "Deleted %q\n", name)
	return nil
}
