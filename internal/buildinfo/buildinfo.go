// Package buildinfo exposes the relver binary's own version.
package buildinfo

import "runtime/debug"

// Build-time variable injected via -ldflags; the default is used for dev builds.
var version = "0.1.0-dev"

// Version returns the version string of the relver binary itself. Falls back
// to module build info for go-install builds without ldflags.
func Version() string {
	if version != "0.1.0-dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok &&
		info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}
