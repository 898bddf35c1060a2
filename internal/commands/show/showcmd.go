// Package show implements the "show" command: compute and print the
// formatted version string for a tuple or expression.
package show

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/relvertool/relver/internal/config"
	"github.com/relvertool/relver/internal/vcs"
	"github.com/relvertool/relver/internal/version"
)

// Run returns the "show" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the formatted version string",
		UsageText: "relver show [--expression path[:identifier]] [tuple]",
		ArgsUsage: "[major.minor[.micro][:level[:serial]]]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "expression",
				Aliases: []string{"e"},
				Usage:   "Version expression to resolve instead of a literal tuple",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShowCmd(cmd, cfg)
		},
	}
}

func runShowCmd(cmd *cli.Command, cfg *config.Config) error {
	registry, err := vcs.NewRegistryFromNames(cfg.VCS.Backends)
	if err != nil {
		return err
	}

	v, err := resolveVersion(cmd, cfg, registry)
	if err != nil {
		return err
	}

	// Plain output so scripts and build hooks can consume it.
	fmt.Println(v.String())
	return nil
}

// resolveVersion builds a Version from, in priority order: a literal tuple
// argument, the --expression flag, or the configured default expression.
func resolveVersion(cmd *cli.Command, cfg *config.Config, registry *vcs.Registry) (*version.Version, error) {
	if tuple := cmd.Args().First(); tuple != "" {
		tree := cfg.SourceTree
		if tree == "" {
			tree = "."
		}
		return version.ParseTuple(tuple,
			version.WithSourceTree(tree), version.WithProber(registry))
	}

	expr := cmd.String("expression")
	if expr == "" {
		expr = cfg.Expression
	}
	if expr == "" {
		return nil, fmt.Errorf("nothing to show: pass a tuple, --expression, or set one in %s", config.DefaultConfigFile)
	}

	opts := []version.Option{version.WithProber(registry)}
	if cfg.SourceTree != "" {
		opts = append(opts, version.WithSourceTree(cfg.SourceTree))
	}
	return version.FromExpression(expr, opts...)
}
