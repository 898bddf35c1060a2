// Package core provides shared abstractions used across relver:
// a context-aware filesystem interface with an in-memory mock for tests.
package core
