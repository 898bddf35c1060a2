// Package initialize implements the "init" command: write a starter
// .relver.yaml configuration.
package initialize

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/relvertool/relver/internal/config"
	"github.com/relvertool/relver/internal/metadata"
	"github.com/relvertool/relver/internal/printer"
	"github.com/relvertool/relver/internal/tui"
)

// Prompter abstracts the overwrite confirmation for testability.
type Prompter interface {
	Confirm(title, description string) (bool, error)
}

// huhPrompter is the production Prompter backed by a huh form.
type huhPrompter struct{}

func (huhPrompter) Confirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Value(&confirmed),
	)).Run()
	return confirmed, err
}

// Run returns the "init" command.
func Run() *cli.Command {
	return runWithPrompter(huhPrompter{})
}

func runWithPrompter(prompter Prompter) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a starter " + config.DefaultConfigFile,
		UsageText: "relver init [--expression expr] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "expression",
				Aliases: []string{"e"},
				Usage:   "Default version expression to record",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration without asking",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(cmd, prompter)
		},
	}
}

func runInitCmd(cmd *cli.Command, prompter Prompter) error {
	if config.Exists("") && !cmd.Bool("force") {
		if !tui.IsInteractive() {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultConfigFile)
		}
		overwrite, err := prompter.Confirm(
			config.DefaultConfigFile+" already exists. Overwrite?",
			"The current configuration will be replaced with defaults.",
		)
		if err != nil {
			return err
		}
		if !overwrite {
			printer.PrintFaint("Keeping existing configuration.")
			return nil
		}
	}

	cfg := config.Default()
	cfg.Expression = cmd.String("expression")
	cfg.Metadata = []metadata.Target{{Path: "VERSION"}}

	if err := config.Save(cfg, ""); err != nil {
		return err
	}

	printer.PrintSuccess("Created " + config.DefaultConfigFile)
	if cfg.Expression == "" {
		printer.PrintFaint("Set an expression to resolve versions from Go source, e.g. ./internal/app:VersionTuple")
	}
	return nil
}
