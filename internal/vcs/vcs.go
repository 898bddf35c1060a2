package vcs

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// RevisionInfo describes the state of a source tree as reported by one
// version control backend. Immutable once produced.
type RevisionInfo struct {
	// Revno is an opaque revision identifier: an integer count for systems
	// with linear revision numbers (bzr, hg) or an abbreviated commit hash
	// for content-addressed systems (git).
	Revno string

	// BranchNick is the current branch or bookmark name, if retrievable.
	// Informational only; it never affects version formatting.
	BranchNick string
}

// Backend is the capability contract every VCS adapter satisfies.
//
// Detect returns (nil, nil) when the path is not managed by this backend or
// the underlying tool is not installed. A non-nil error signals an unexpected
// internal failure; the registry absorbs it and treats it as absence.
type Backend interface {
	Name() string
	Detect(path string) (*RevisionInfo, error)
}

// Registry holds an ordered list of backends. Probe order is significant:
// the first backend that recognizes the path wins, results are never merged.
type Registry struct {
	backends []Backend
}

// NewRegistry creates a Registry probing backends in the given order.
func NewRegistry(backends ...Backend) *Registry {
	return &Registry{backends: backends}
}

// NewDefaultRegistry returns a registry with all known backends in the
// default probe order: git, hg, bzr.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewGitBackend(), NewHgBackend(), NewBzrBackend())
}

// NewRegistryFromNames builds a registry probing backends in the order named.
// Returns an error for unknown backend names.
func NewRegistryFromNames(names []string) (*Registry, error) {
	backends := make([]Backend, 0, len(names))
	for _, name := range names {
		switch name {
		case "git":
			backends = append(backends, NewGitBackend())
		case "hg":
			backends = append(backends, NewHgBackend())
		case "bzr":
			backends = append(backends, NewBzrBackend())
		default:
			return nil, fmt.Errorf("unknown vcs backend: %q", name)
		}
	}
	return NewRegistry(backends...), nil
}

// Backends returns the backends in probe order.
func (r *Registry) Backends() []Backend {
	return r.backends
}

// Probe asks each backend in turn to describe the tree rooted at or above
// path and returns the first match. Returns nil when path is empty, no
// backend recognizes the path, or every attempt fails. Backend failures are
// logged at debug level and never propagate.
func (r *Registry) Probe(path string) *RevisionInfo {
	if path == "" {
		return nil
	}
	for _, b := range r.backends {
		info, err := b.Detect(path)
		if err != nil {
			log.Debug("vcs backend failed", "backend", b.Name(), "path", path, "error", err)
			continue
		}
		if info != nil {
			return info
		}
	}
	return nil
}
