package vcs

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// BzrBackend detects Bazaar/Breezy branches by shelling out to the bzr binary.
type BzrBackend struct {
	execCommand func(name string, arg ...string) *exec.Cmd
	lookPath    func(file string) (string, error)
}

// NewBzrBackend creates a BzrBackend using the real bzr binary.
func NewBzrBackend() *BzrBackend {
	return &BzrBackend{
		execCommand: exec.Command,
		lookPath:    exec.LookPath,
	}
}

// Verify BzrBackend implements Backend.
var _ Backend = (*BzrBackend)(nil)

func (b *BzrBackend) Name() string { return "bzr" }

// Detect reports the revision number of the branch containing path.
// Returns (nil, nil) when bzr is not installed or path is not inside a
// Bazaar branch.
func (b *BzrBackend) Detect(path string) (*RevisionInfo, error) {
	if _, err := b.lookPath("bzr"); err != nil {
		log.Debug("bzr not installed, skipping", "path", path)
		return nil, nil
	}

	out, err := runIn(b.execCommand, path, "bzr", "revno")
	if err != nil {
		log.Debug("not a bzr branch", "path", path, "error", err)
		return nil, nil
	}

	revno := strings.TrimSpace(out)
	if _, err := strconv.Atoi(revno); err != nil {
		return nil, fmt.Errorf("unexpected bzr revno %q: %w", revno, err)
	}

	info := &RevisionInfo{Revno: revno}

	if out, err := runIn(b.execCommand, path, "bzr", "nick"); err == nil {
		info.BranchNick = strings.TrimSpace(out)
	}

	return info, nil
}
