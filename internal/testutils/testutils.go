// Package testutils provides shared helpers for command tests.
package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/urfave/cli/v3"
)

// BuildCLIForTests wraps commands in a minimal root command for testing.
func BuildCLIForTests(commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "relver",
		Commands: commands,
	}
}

// RunCLITest runs the command with args from inside dir and fails the test
// on error.
func RunCLITest(t *testing.T, cmd *cli.Command, args []string, dir string) {
	t.Helper()
	if err := RunCLITestErr(t, cmd, args, dir); err != nil {
		t.Fatalf("cli run failed: %v", err)
	}
}

// RunCLITestErr runs the command with args from inside dir and returns the
// error for tests asserting failures.
func RunCLITestErr(t *testing.T, cmd *cli.Command, args []string, dir string) error {
	t.Helper()
	if dir != "" {
		t.Chdir(dir)
	}
	return cmd.Run(context.Background(), args)
}

// CaptureStdout captures everything fn writes to stdout.
func CaptureStdout(fn func()) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	var copyErr error
	go func() {
		_, copyErr = io.Copy(&buf, r)
		close(done)
	}()

	fn()

	os.Stdout = orig
	if err := w.Close(); err != nil {
		return "", err
	}
	<-done
	if copyErr != nil {
		return "", copyErr
	}
	return buf.String(), nil
}
