package metadata

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/relvertool/relver/internal/core"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"package.json", FormatJSON},
		{"Chart.yaml", FormatYAML},
		{"app.yml", FormatYAML},
		{"pyproject.toml", FormatTOML},
		{"VERSION", FormatRaw},
		{"version.txt", FormatRaw},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectFormat(tt.path); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestReadVersion(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		target  Target
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "json default field",
			target:  Target{Path: "package.json"},
			content: `{"name": "app", "version": "1.2.3"}`,
			want:    "1.2.3",
		},
		{
			name:    "yaml nested field",
			target:  Target{Path: "meta.yaml", Field: "package.version"},
			content: "package:\n  name: app\n  version: 0.9.2\n",
			want:    "0.9.2",
		},
		{
			name:    "toml nested field",
			target:  Target{Path: "pyproject.toml", Field: "project.version"},
			content: "[project]\nname = \"app\"\nversion = \"2.0\"\n",
			want:    "2.0",
		},
		{
			name:    "raw trims whitespace",
			target:  Target{Path: "VERSION"},
			content: "1.3.dev54\n",
			want:    "1.3.dev54",
		},
		{
			name:    "missing field",
			target:  Target{Path: "package.json"},
			content: `{"name": "app"}`,
			wantErr: true,
		},
		{
			name:    "field not a string",
			target:  Target{Path: "package.json"},
			content: `{"version": 3}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			target:  Target{Path: "package.json"},
			content: `{"version": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile(tt.target.Path, []byte(tt.content))
			store := NewStore(fs)

			got, err := store.ReadVersion(ctx, tt.target)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReadVersion_MissingFile(t *testing.T) {
	store := NewStore(core.NewMockFileSystem())

	_, err := store.ReadVersion(context.Background(), Target{Path: "absent.json"})
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestWriteVersion_JSONPreservesStructure(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	fs.SetFile("package.json", []byte(`{"name": "app", "version": "1.2.3", "private": true}`))
	store := NewStore(fs)

	if err := store.WriteVersion(ctx, Target{Path: "package.json"}, "1.3a1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := fs.GetFile("package.json")
	content := string(data)
	if !strings.Contains(content, `"version": "1.3a1"`) {
		t.Errorf("expected updated version field, got %s", content)
	}
	if !strings.Contains(content, `"name": "app"`) || !strings.Contains(content, `"private": true`) {
		t.Errorf("expected other fields preserved, got %s", content)
	}
	if strings.Index(content, `"name"`) > strings.Index(content, `"version"`) {
		t.Errorf("expected field order preserved, got %s", content)
	}
}

func TestWriteVersion_YAMLNestedField(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	fs.SetFile("meta.yaml", []byte("package:\n  name: app\n  version: 1.2.3\n"))
	store := NewStore(fs)

	err := store.WriteVersion(ctx, Target{Path: "meta.yaml", Field: "package.version"}, "2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.ReadVersion(ctx, Target{Path: "meta.yaml", Field: "package.version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2.0" {
		t.Errorf("expected 2.0, got %q", got)
	}
}

func TestWriteVersion_TOML(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	fs.SetFile("pyproject.toml", []byte("[project]\nname = \"app\"\nversion = \"1.0\"\n"))
	store := NewStore(fs)

	err := store.WriteVersion(ctx, Target{Path: "pyproject.toml", Field: "project.version"}, "1.3.dev54")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.ReadVersion(ctx, Target{Path: "pyproject.toml", Field: "project.version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1.3.dev54" {
		t.Errorf("expected 1.3.dev54, got %q", got)
	}
}

func TestWriteVersion_RawAddsNewline(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	store := NewStore(fs)

	if err := store.WriteVersion(ctx, Target{Path: "VERSION"}, "1.2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := fs.GetFile("VERSION")
	if !ok {
		t.Fatal("expected VERSION file to be written")
	}
	if string(data) != "1.2\n" {
		t.Errorf("expected %q, got %q", "1.2\n", string(data))
	}
}

func TestWriteVersion_CreatesNestedField(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	fs.SetFile("meta.yaml", []byte("name: app\n"))
	store := NewStore(fs)

	err := store.WriteVersion(ctx, Target{Path: "meta.yaml", Field: "release.version"}, "1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.ReadVersion(ctx, Target{Path: "meta.yaml", Field: "release.version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1.2" {
		t.Errorf("expected 1.2, got %q", got)
	}
}

func TestWriteVersion_FieldThroughScalar(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	fs.SetFile("meta.yaml", []byte("package: app\n"))
	store := NewStore(fs)

	err := store.WriteVersion(ctx, Target{Path: "meta.yaml", Field: "package.version"}, "1.2")
	if err == nil {
		t.Fatal("expected error writing through a scalar field, got nil")
	}
}

func TestWriteVersion_WriteFailure(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	fs.SetFile("VERSION", []byte("1.0\n"))
	fs.WriteErr = errors.New("simulated write failure")
	store := NewStore(fs)

	err := store.WriteVersion(ctx, Target{Path: "VERSION"}, "1.2")
	if err == nil {
		t.Fatal("expected error when write fails, got nil")
	}
}
