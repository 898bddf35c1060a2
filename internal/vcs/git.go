package vcs

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// abbrevLen is the length of the abbreviated commit hash used as revno.
const abbrevLen = 7

// GitBackend detects git repositories by shelling out to the git binary.
type GitBackend struct {
	execCommand func(name string, arg ...string) *exec.Cmd
	lookPath    func(file string) (string, error)
}

// NewGitBackend creates a GitBackend using the real git binary.
func NewGitBackend() *GitBackend {
	return &GitBackend{
		execCommand: exec.Command,
		lookPath:    exec.LookPath,
	}
}

// Verify GitBackend implements Backend.
var _ Backend = (*GitBackend)(nil)

func (g *GitBackend) Name() string { return "git" }

// Detect reports the abbreviated HEAD commit of the repository containing
// path. Returns (nil, nil) when git is not installed or path is not inside
// a git repository.
func (g *GitBackend) Detect(path string) (*RevisionInfo, error) {
	if _, err := g.lookPath("git"); err != nil {
		log.Debug("git not installed, skipping", "path", path)
		return nil, nil
	}

	out, err := runIn(g.execCommand, path, "git", "rev-parse", "--short=7", "HEAD")
	if err != nil {
		log.Debug("not a git repository", "path", path, "error", err)
		return nil, nil
	}
	revno := strings.TrimSpace(out)
	if len(revno) > abbrevLen {
		revno = revno[:abbrevLen]
	}

	info := &RevisionInfo{Revno: revno}

	// Branch name is informational; a detached HEAD or lookup failure
	// leaves it empty.
	if out, err := runIn(g.execCommand, path, "git", "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		if nick := strings.TrimSpace(out); nick != "HEAD" {
			info.BranchNick = nick
		}
	}

	return info, nil
}

// runIn runs a command with its working directory set to dir and returns
// stdout. On failure the error carries trimmed stderr when available.
func runIn(execCommand func(name string, arg ...string) *exec.Cmd, dir, name string, arg ...string) (string, error) {
	cmd := execCommand(name, arg...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", &commandError{msg: msg, err: err}
		}
		return "", err
	}
	return stdout.String(), nil
}

// commandError pairs a command's stderr with the underlying exec error.
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }
