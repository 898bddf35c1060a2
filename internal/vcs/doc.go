// Package vcs answers one question about a source tree: what revision is it
// at? An ordered registry of backends (git, hg, bzr) is probed in turn; the
// first backend that recognizes the tree provides a RevisionInfo. A missing
// tool or an unmanaged tree degrades to "no revision", never to an error.
package vcs
