package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NemoVonNirgend/promptdeck/internal/core/config"
	"github.com/NemoVonNirgend/promptdeck/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "promptdeck config validate [--json]",
				Description: "Validates the configuration file, checking divider regex patterns, ignore globs, and file paths.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)
	warnings := cmd.flags.Config.Warnings()

	if cmd.jsonOutput {
		out := struct {
			Valid    bool                       `json:"valid"`
			Error    string                     `json:"error,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    err == nil,
			Warnings: warnings,
		}
		if err != nil {
			out.Error = err.Error()
		}
		return iojson.WriteWith(c.Root().Writer, os.Stderr, out)
	}

	out := c.Root().Writer
	for _, warn := range warnings {
		fmt.Fprintf(out, "warning: %s: %s\n", warn.Category, warn.Message)
	}

	if err != nil {
		fmt.Fprintf(out, "invalid configuration:\n%v\n", err)
		return cli.Exit("", 1)
	}

	fmt.Fprintln(out, "Configuration is valid")
	return nil
}
