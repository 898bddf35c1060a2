package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/relvertool/relver/internal/vcs"
)

// ReleaseLevel is the lifecycle stage of a version. It selects the suffix
// appended to the formatted string.
type ReleaseLevel string

const (
	LevelDev       ReleaseLevel = "dev"
	LevelAlpha     ReleaseLevel = "alpha"
	LevelBeta      ReleaseLevel = "beta"
	LevelCandidate ReleaseLevel = "candidate"
	LevelFinal     ReleaseLevel = "final"
)

// IsValid returns true if the level is one of the five known stages.
func (l ReleaseLevel) IsValid() bool {
	switch l {
	case LevelDev, LevelAlpha, LevelBeta, LevelCandidate, LevelFinal:
		return true
	default:
		return false
	}
}

// releaseTokens maps pre-release levels to their short formatting tokens.
var releaseTokens = map[ReleaseLevel]string{
	LevelAlpha:     "a",
	LevelBeta:      "b",
	LevelCandidate: "c",
}

// rank orders levels for comparison: dev < alpha < beta < candidate < final.
func (l ReleaseLevel) rank() int {
	switch l {
	case LevelDev:
		return 0
	case LevelAlpha:
		return 1
	case LevelBeta:
		return 2
	case LevelCandidate:
		return 3
	default:
		return 4
	}
}

// ErrInvalidVersion is returned when a version tuple fails validation:
// a negative component, an unknown release level, or a zero serial on a
// pre-release level.
var ErrInvalidVersion = errors.New("invalid version")

// Prober resolves a source tree path to revision information.
// *vcs.Registry satisfies it.
type Prober interface {
	Probe(path string) *vcs.RevisionInfo
}

// Version is a validated 5-component version tuple. The tuple components are
// fixed at construction; the only mutable state is the cached result of the
// lazy VCS probe performed on first formatting of a dev version. A Version is
// built, formatted and discarded within a single build step, so the cache
// needs no locking.
type Version struct {
	Major  int
	Minor  int
	Micro  int
	Level  ReleaseLevel
	Serial int

	sourceTree string
	prober     Prober

	probed   bool
	revision *vcs.RevisionInfo
}

// Option configures a Version at construction.
type Option func(*Version)

// WithSourceTree sets the directory the VCS probe inspects when formatting a
// dev version. Without it no probe is performed.
func WithSourceTree(path string) Option {
	return func(v *Version) { v.sourceTree = path }
}

// WithProber overrides the VCS prober. Used by tests and by callers that
// carry a configured registry.
func WithProber(p Prober) Option {
	return func(v *Version) { v.prober = p }
}

// New constructs a validated Version.
//
// Validation rules: no component may be negative, level must be a known
// release level, and serial must be greater than zero for alpha, beta and
// candidate releases. Violations return an error wrapping ErrInvalidVersion.
func New(major, minor, micro int, level ReleaseLevel, serial int, opts ...Option) (*Version, error) {
	for _, c := range []struct {
		name  string
		value int
	}{
		{"major", major},
		{"minor", minor},
		{"micro", micro},
		{"serial", serial},
	} {
		if c.value < 0 {
			return nil, fmt.Errorf("%w: %s component cannot be negative, got %d", ErrInvalidVersion, c.name, c.value)
		}
	}
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: release level %q is not permitted", ErrInvalidVersion, level)
	}
	if _, pre := releaseTokens[level]; pre && serial == 0 {
		return nil, fmt.Errorf("%w: serial must be greater than zero for %s releases", ErrInvalidVersion, level)
	}

	v := &Version{Major: major, Minor: minor, Micro: micro, Level: level, Serial: serial}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Revision returns the revision information for the version's source tree,
// querying the VCS registry on first access and caching the result. Returns
// nil when no source tree is known or no backend recognizes it.
func (v *Version) Revision() *vcs.RevisionInfo {
	if !v.probed {
		v.probed = true
		if v.sourceTree != "" {
			p := v.prober
			if p == nil {
				p = vcs.NewDefaultRegistry()
			}
			v.revision = p.Probe(v.sourceTree)
		}
	}
	return v.revision
}

// String renders the version in its canonical human-readable form:
//
//	MAJOR.MINOR[.MICRO][{a|b|c}SERIAL][.devREVNO|.dev]
//
// The micro component is omitted when zero, final releases contribute no
// suffix, and dev releases trigger one cached VCS probe to obtain the
// revision suffix. Repeated calls return identical strings.
func (v *Version) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	if v.Micro != 0 {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(v.Micro))
	}
	if token, ok := releaseTokens[v.Level]; ok {
		sb.WriteString(token)
		sb.WriteString(strconv.Itoa(v.Serial))
	}
	if v.Level == LevelDev {
		if rev := v.Revision(); rev != nil {
			sb.WriteString(".dev")
			sb.WriteString(rev.Revno)
		} else {
			sb.WriteString(".dev")
		}
	}
	return sb.String()
}

// Compare orders two versions. It returns -1 if v < other, 0 if equal and
// +1 if v > other. At equal numeric components release levels order as
// dev < alpha < beta < candidate < final, then serial decides.
func (v *Version) Compare(other *Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Micro, other.Micro); c != 0 {
		return c
	}
	if c := compareInt(v.Level.rank(), other.Level.rank()); c != 0 {
		return c
	}
	return compareInt(v.Serial, other.Serial)
}

// ParseTuple parses the textual tuple form used on the command line:
// "major.minor[.micro][:level[:serial]]", e.g. "1.3.0:dev" or "1.3:alpha:1".
// Level defaults to final and serial to zero. The result is validated
// through New.
func ParseTuple(s string, opts ...Option) (*Version, error) {
	level := LevelFinal
	serial := 0

	numeric := s
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		numeric = s[:idx]
		rest := strings.Split(s[idx+1:], ":")
		level = ReleaseLevel(rest[0])
		if len(rest) > 1 {
			n, err := strconv.Atoi(rest[1])
			if err != nil {
				return nil, fmt.Errorf("%w: serial %q is not a number", ErrInvalidVersion, rest[1])
			}
			serial = n
		}
		if len(rest) > 2 {
			return nil, fmt.Errorf("%w: too many components in %q", ErrInvalidVersion, s)
		}
	}

	parts := strings.Split(numeric, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("%w: expected major.minor[.micro], got %q", ErrInvalidVersion, numeric)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: component %q is not a number", ErrInvalidVersion, p)
		}
		nums[i] = n
	}

	return New(nums[0], nums[1], nums[2], level, serial, opts...)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
