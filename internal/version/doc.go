// Package version models a project version as a validated 5-component tuple
// (major, minor, micro, release level, serial) and renders it as the
// canonical string other tooling parses:
//
//	MAJOR.MINOR[.MICRO][{a|b|c}SERIAL][.devREVNO|.dev]
//
// Development versions are enriched with a revision identifier looked up
// lazily from whichever version control system manages the source tree.
// Tuples can be constructed directly, parsed from their textual form, or
// resolved from an expression naming a Go source file and variable.
package version
