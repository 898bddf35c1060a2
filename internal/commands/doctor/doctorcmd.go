// Package doctor implements the "doctor" command: report the health of the
// relver setup, from VCS tool availability to metadata target sanity.
package doctor

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/urfave/cli/v3"

	"github.com/relvertool/relver/internal/config"
	"github.com/relvertool/relver/internal/core"
	"github.com/relvertool/relver/internal/hook"
	"github.com/relvertool/relver/internal/metadata"
	"github.com/relvertool/relver/internal/printer"
)

// lookPath is swappable in tests.
var lookPath = exec.LookPath

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Check VCS tool availability and metadata targets",
		UsageText: "relver doctor",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cfg)
		},
	}
}

func runDoctorCmd(ctx context.Context, cfg *config.Config) error {
	printer.PrintBold("VCS backends")
	for _, name := range cfg.VCS.Backends {
		if _, err := lookPath(name); err != nil {
			printer.PrintWarning(fmt.Sprintf("  %s: not installed (trees will not be detected)", name))
		} else {
			printer.PrintSuccess(fmt.Sprintf("  %s: available", name))
		}
	}

	if cfg.Expression != "" {
		printer.PrintBold("Expression")
		printer.PrintFaint("  " + cfg.Expression)
	}

	if len(cfg.Metadata) == 0 {
		printer.PrintFaint("No metadata targets configured.")
		return nil
	}

	printer.PrintBold("Metadata targets")
	store := metadata.NewStore(core.NewOSFileSystem())
	var broken int
	for _, t := range cfg.Metadata {
		if !store.Exists(ctx, t.Path) {
			printer.PrintError(fmt.Sprintf("  %s: file not found", t.Path))
			broken++
			continue
		}
		declared, err := store.ReadVersion(ctx, t)
		if err != nil {
			printer.PrintError(fmt.Sprintf("  %s: %v", t.Path, err))
			broken++
			continue
		}
		if hook.HasMarker(declared) {
			printer.PrintSuccess(fmt.Sprintf("  %s: marker present (%s)", t.Path, hook.Expression(declared)))
		} else {
			printer.PrintFaint(fmt.Sprintf("  %s: plain version %q", t.Path, declared))
		}
	}

	if broken > 0 {
		return fmt.Errorf("%d metadata target(s) unreadable", broken)
	}
	return nil
}
