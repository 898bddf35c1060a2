package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	urfavecli "github.com/urfave/cli/v3"

	"github.com/relvertool/relver/internal/buildinfo"
	"github.com/relvertool/relver/internal/commands/doctor"
	"github.com/relvertool/relver/internal/commands/initialize"
	"github.com/relvertool/relver/internal/commands/probe"
	"github.com/relvertool/relver/internal/commands/show"
	"github.com/relvertool/relver/internal/commands/stamp"
	"github.com/relvertool/relver/internal/config"
	"github.com/relvertool/relver/internal/printer"
)

var (
	noColorFlag bool
	debugFlag   bool
)

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the relver cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "relver",
		Version:               fmt.Sprintf("v%s", buildinfo.Version()),
		Usage:                 "Derive package version strings from version tuples and VCS state",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
			&urfavecli.BoolFlag{
				Name:        "debug",
				Usage:       "Log VCS probing details",
				Destination: &debugFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			if debugFlag {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(),
			show.Run(cfg),
			probe.Run(cfg),
			stamp.Run(cfg),
			doctor.Run(cfg),
		},
	}
}
