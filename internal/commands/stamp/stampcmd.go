// Package stamp implements the "stamp" command: the packaging hook that
// overwrites declared version metadata with computed version strings.
package stamp

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/relvertool/relver/internal/config"
	"github.com/relvertool/relver/internal/core"
	"github.com/relvertool/relver/internal/hook"
	"github.com/relvertool/relver/internal/metadata"
	"github.com/relvertool/relver/internal/printer"
	"github.com/relvertool/relver/internal/vcs"
)

// Run returns the "stamp" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "stamp",
		Usage:     "Resolve marked version fields in the configured metadata files",
		UsageText: "relver stamp [--dry-run] [file...]",
		ArgsUsage: "[file...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would be written without touching any file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runStampCmd(ctx, cmd, cfg)
		},
	}
}

func runStampCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	targets := cfg.Metadata
	if args := cmd.Args().Slice(); len(args) > 0 {
		targets = make([]metadata.Target, 0, len(args))
		for _, path := range args {
			targets = append(targets, metadata.Target{Path: path})
		}
	}
	if len(targets) == 0 {
		return fmt.Errorf("no metadata targets: pass file arguments or configure them in %s", config.DefaultConfigFile)
	}

	registry, err := vcs.NewRegistryFromNames(cfg.VCS.Backends)
	if err != nil {
		return err
	}

	h := hook.New(metadata.NewStore(core.NewOSFileSystem()), registry,
		hook.WithSourceTree(cfg.SourceTree))
	dryRun := cmd.Bool("dry-run")

	for _, t := range targets {
		var formatted string
		var applied bool
		var err error
		if dryRun {
			formatted, applied, err = h.Preview(ctx, t)
		} else {
			formatted, applied, err = h.Apply(ctx, t)
		}
		if err != nil {
			return err
		}

		switch {
		case !applied:
			printer.PrintFaint(fmt.Sprintf("%s: no version marker, skipped", t.Path))
		case dryRun:
			printer.PrintInfo(fmt.Sprintf("%s: would set version to %s", t.Path, formatted))
		default:
			printer.PrintSuccess(fmt.Sprintf("%s: version set to %s", t.Path, formatted))
		}
	}

	return nil
}
