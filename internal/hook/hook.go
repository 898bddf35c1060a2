// Package hook implements the build-time version hook: a metadata file whose
// version field carries the ":relver:" marker gets that field overwritten
// with the formatted version string resolved from the marker's expression.
package hook

import (
	"context"
	"fmt"
	"strings"

	"github.com/relvertool/relver/internal/metadata"
	"github.com/relvertool/relver/internal/version"
)

// Marker prefixes a version value that relver should resolve, e.g.
//
//	version: ":relver:./internal/app:VersionTuple"
const Marker = ":relver:"

// HasMarker reports whether a declared version value is a relver expression.
func HasMarker(value string) bool {
	return strings.HasPrefix(value, Marker)
}

// Expression strips the marker from a declared version value.
func Expression(value string) string {
	return strings.TrimPrefix(value, Marker)
}

// Hook resolves marked version fields in metadata files.
type Hook struct {
	store      *metadata.Store
	prober     version.Prober
	sourceTree string
}

// Option configures a Hook.
type Option func(*Hook)

// WithSourceTree overrides the source tree probed for revision information.
// Without it dev versions probe the directory the expression resolved from.
func WithSourceTree(path string) Option {
	return func(h *Hook) { h.sourceTree = path }
}

// New creates a Hook writing through store. prober may be nil, in which case
// versions probe with the default VCS registry.
func New(store *metadata.Store, prober version.Prober, opts ...Option) *Hook {
	h := &Hook{store: store, prober: prober}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Apply processes one metadata target. When the declared version value does
// not carry the marker the target is left untouched and applied is false.
// Otherwise the expression is resolved, formatted (with VCS enrichment for
// dev versions) and written back over the declared value.
//
// Validation and lookup failures are configuration mistakes and surface to
// the caller; VCS probing failures never do.
func (h *Hook) Apply(ctx context.Context, t metadata.Target) (formatted string, applied bool, err error) {
	declared, err := h.store.ReadVersion(ctx, t)
	if err != nil {
		return "", false, err
	}
	if !HasMarker(declared) {
		return declared, false, nil
	}

	v, err := h.resolve(Expression(declared))
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", t.Path, err)
	}

	formatted = v.String()
	if err := h.store.WriteVersion(ctx, t, formatted); err != nil {
		return "", false, err
	}
	return formatted, true, nil
}

// Preview resolves a target like Apply but leaves the file untouched.
func (h *Hook) Preview(ctx context.Context, t metadata.Target) (formatted string, applied bool, err error) {
	declared, err := h.store.ReadVersion(ctx, t)
	if err != nil {
		return "", false, err
	}
	if !HasMarker(declared) {
		return declared, false, nil
	}

	v, err := h.resolve(Expression(declared))
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", t.Path, err)
	}
	return v.String(), true, nil
}

func (h *Hook) resolve(expr string) (*version.Version, error) {
	var opts []version.Option
	if h.prober != nil {
		opts = append(opts, version.WithProber(h.prober))
	}
	if h.sourceTree != "" {
		opts = append(opts, version.WithSourceTree(h.sourceTree))
	}
	return version.FromExpression(expr, opts...)
}
