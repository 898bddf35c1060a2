// Package metadata reads and writes the version field of packaging metadata
// files in JSON, YAML, TOML or plain-text form. Writes preserve the rest of
// the document so a version stamp never reformats unrelated content more
// than the codec requires.
package metadata
