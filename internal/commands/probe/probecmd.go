// Package probe implements the "probe" command: report which VCS backend
// recognizes a source tree and at what revision it is.
package probe

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/relvertool/relver/internal/config"
	"github.com/relvertool/relver/internal/printer"
	"github.com/relvertool/relver/internal/vcs"
)

// Run returns the "probe" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Show revision information for a source tree",
		UsageText: "relver probe [path]",
		ArgsUsage: "[path]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runProbeCmd(cmd, cfg)
		},
	}
}

func runProbeCmd(cmd *cli.Command, cfg *config.Config) error {
	path := cmd.Args().First()
	if path == "" {
		path = cfg.SourceTree
	}
	if path == "" {
		path = "."
	}

	registry, err := vcs.NewRegistryFromNames(cfg.VCS.Backends)
	if err != nil {
		return err
	}

	info := registry.Probe(path)
	if info == nil {
		printer.PrintWarning("no version control detected")
		return nil
	}

	fmt.Printf("%s %s\n", printer.Bold("revno:"), info.Revno)
	if info.BranchNick != "" {
		fmt.Printf("%s %s\n", printer.Bold("branch:"), info.BranchNick)
	}
	return nil
}
