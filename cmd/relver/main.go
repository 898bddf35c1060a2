// Package main implements the relver command line tool.
package main

import (
	"context"
	"os"

	"github.com/relvertool/relver/internal/cli"
	"github.com/relvertool/relver/internal/config"
	"github.com/relvertool/relver/internal/printer"
)

func main() {
	cfg, err := config.Load(os.Getenv("RELVER_CONFIG"))
	if err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}

	app := cli.New(cfg)
	if err := app.Run(context.Background(), os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}
