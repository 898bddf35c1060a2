package vcs

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// HgBackend detects Mercurial repositories by shelling out to the hg binary.
type HgBackend struct {
	execCommand func(name string, arg ...string) *exec.Cmd
	lookPath    func(file string) (string, error)
}

// NewHgBackend creates an HgBackend using the real hg binary.
func NewHgBackend() *HgBackend {
	return &HgBackend{
		execCommand: exec.Command,
		lookPath:    exec.LookPath,
	}
}

// Verify HgBackend implements Backend.
var _ Backend = (*HgBackend)(nil)

func (h *HgBackend) Name() string { return "hg" }

// Detect reports the local revision number of the working directory parent.
// Returns (nil, nil) when hg is not installed or path is not inside a
// Mercurial repository.
func (h *HgBackend) Detect(path string) (*RevisionInfo, error) {
	if _, err := h.lookPath("hg"); err != nil {
		log.Debug("hg not installed, skipping", "path", path)
		return nil, nil
	}

	out, err := runIn(h.execCommand, path, "hg", "identify", "--num")
	if err != nil {
		log.Debug("not a mercurial repository", "path", path, "error", err)
		return nil, nil
	}

	// hg appends "+" to the revision number when the working directory
	// has uncommitted changes.
	revno := strings.TrimSuffix(strings.TrimSpace(out), "+")
	if _, err := strconv.Atoi(revno); err != nil {
		return nil, fmt.Errorf("unexpected hg revision %q: %w", revno, err)
	}

	info := &RevisionInfo{Revno: revno}

	if out, err := runIn(h.execCommand, path, "hg", "branch"); err == nil {
		info.BranchNick = strings.TrimSpace(out)
	}

	return info, nil
}
