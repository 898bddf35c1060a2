package version

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/relvertool/relver/internal/vcs"
)

// writeGoFile writes a Go source file under dir and returns its path.
func writeGoFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestFromExpression_File(t *testing.T) {
	dir := t.TempDir()
	path := writeGoFile(t, dir, "version.go", `package app

var VersionTuple = [5]any{2, 0, 0, "final", 0}
`)

	v, err := FromExpression(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.String(); got != "2.0" {
		t.Errorf("expected 2.0, got %q", got)
	}
}

func TestFromExpression_Directory(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "version.go", `package app

var VersionTuple = [5]any{1, 9, 2, "final", 0}
`)
	writeGoFile(t, dir, "other.go", `package app

var Name = "app"
`)

	v, err := FromExpression(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.String(); got != "1.9.2" {
		t.Errorf("expected 1.9.2, got %q", got)
	}
}

func TestFromExpression_CustomIdentifier(t *testing.T) {
	dir := t.TempDir()
	path := writeGoFile(t, dir, "version.go", `package app

var release = [5]any{1, 3, 0, "beta", 1}
`)

	v, err := FromExpression(path + ":release")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.String(); got != "1.3b1" {
		t.Errorf("expected 1.3b1, got %q", got)
	}
}

func TestFromExpression_TypedTupleLiteral(t *testing.T) {
	dir := t.TempDir()
	path := writeGoFile(t, dir, "version.go", `package app

type tuple struct {
	Major, Minor, Micro int
	Level               string
	Serial              int
}

var VersionTuple = tuple{1, 2, 3, "final", 0}
`)

	v, err := FromExpression(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.String(); got != "1.2.3" {
		t.Errorf("expected 1.2.3, got %q", got)
	}
}

func TestFromExpression_SourceTreeHint(t *testing.T) {
	dir := t.TempDir()
	path := writeGoFile(t, dir, "version.go", `package app

var VersionTuple = [5]any{1, 3, 0, "dev", 0}
`)

	prober := &mockProber{info: &vcs.RevisionInfo{Revno: "54"}}
	v, err := FromExpression(path, WithProber(prober))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.String(); got != "1.3.dev54" {
		t.Errorf("expected 1.3.dev54, got %q", got)
	}

	wantDir, err := filepath.Abs(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prober.lastPath != wantDir {
		t.Errorf("expected probe at %q, got %q", wantDir, prober.lastPath)
	}
}

func TestFromExpression_MissingModule(t *testing.T) {
	_, err := FromExpression(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected lookup error, got nil")
	}
	if !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup, got %v", err)
	}
}

func TestFromExpression_MissingIdentifier(t *testing.T) {
	dir := t.TempDir()
	path := writeGoFile(t, dir, "version.go", `package app

var Other = [5]any{1, 0, 0, "final", 0}
`)

	_, err := FromExpression(path)
	if err == nil {
		t.Fatal("expected lookup error, got nil")
	}
	if !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup, got %v", err)
	}
}

func TestFromExpression_MalformedTuple(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{
			name:    "wrong arity",
			source:  `package app` + "\n\n" + `var VersionTuple = [3]int{1, 2, 3}`,
			wantErr: ErrLookup,
		},
		{
			name:    "not a literal",
			source:  `package app` + "\n\n" + `var VersionTuple = "1.2.3"`,
			wantErr: ErrLookup,
		},
		{
			name:    "negative component",
			source:  `package app` + "\n\n" + `var VersionTuple = [5]any{-1, 0, 0, "final", 0}`,
			wantErr: ErrInvalidVersion,
		},
		{
			name:    "bad release level",
			source:  `package app` + "\n\n" + `var VersionTuple = [5]any{1, 0, 0, "nightly", 0}`,
			wantErr: ErrInvalidVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := filepath.Join(dir, tt.name)
			if err := os.MkdirAll(sub, 0o755); err != nil {
				t.Fatalf("failed to create dir: %v", err)
			}
			path := writeGoFile(t, sub, "version.go", tt.source+"\n")

			_, err := FromExpression(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFromExpression_ParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeGoFile(t, dir, "broken.go", "package app\n\nvar VersionTuple = [5]any{1, 2,\n")

	_, err := FromExpression(path)
	if err == nil {
		t.Fatal("expected lookup error for unparsable source, got nil")
	}
	if !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup, got %v", err)
	}
}
