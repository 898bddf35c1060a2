package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"

	"github.com/relvertool/relver/internal/core"
)

// Store reads and writes the version field of metadata files through a
// FileSystem abstraction.
type Store struct {
	fs core.FileSystem
}

// NewStore creates a Store over the given filesystem.
func NewStore(fs core.FileSystem) *Store {
	return &Store{fs: fs}
}

// ReadVersion returns the current value of the target's version field.
func (s *Store) ReadVersion(ctx context.Context, t Target) (string, error) {
	t = t.Normalized()
	if t.Path == "" {
		return "", fmt.Errorf("metadata target requires a path")
	}
	if !t.Format.IsValid() {
		return "", fmt.Errorf("unsupported metadata format: %q", t.Format)
	}

	data, err := s.fs.ReadFile(ctx, t.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", t.Path, err)
	}

	switch t.Format {
	case FormatRaw:
		return strings.TrimSpace(string(data)), nil
	case FormatJSON:
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return "", fmt.Errorf("failed to parse JSON in %q: %w", t.Path, err)
		}
		return fieldValue(obj, t.Field, t.Path)
	case FormatYAML:
		var obj map[string]any
		if err := yaml.Unmarshal(data, &obj); err != nil {
			return "", fmt.Errorf("failed to parse YAML in %q: %w", t.Path, err)
		}
		return fieldValue(obj, t.Field, t.Path)
	case FormatTOML:
		var obj map[string]any
		if err := toml.Unmarshal(data, &obj); err != nil {
			return "", fmt.Errorf("failed to parse TOML in %q: %w", t.Path, err)
		}
		return fieldValue(obj, t.Field, t.Path)
	default:
		return "", fmt.Errorf("unsupported metadata format: %q", t.Format)
	}
}

// WriteVersion overwrites the target's version field with value, preserving
// the rest of the file. JSON updates go through sjson so field order and
// formatting survive; YAML and TOML round-trip through their codecs.
func (s *Store) WriteVersion(ctx context.Context, t Target, value string) error {
	t = t.Normalized()
	if t.Path == "" {
		return fmt.Errorf("metadata target requires a path")
	}
	if !t.Format.IsValid() {
		return fmt.Errorf("unsupported metadata format: %q", t.Format)
	}

	if t.Format == FormatRaw {
		content := value
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if err := s.fs.WriteFile(ctx, t.Path, []byte(content), core.PermOwnerRW); err != nil {
			return fmt.Errorf("failed to write %q: %w", t.Path, err)
		}
		return nil
	}

	data, err := s.fs.ReadFile(ctx, t.Path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", t.Path, err)
	}

	var updated []byte
	switch t.Format {
	case FormatJSON:
		updated, err = sjson.SetBytes(data, t.Field, value)
		if err != nil {
			err = fmt.Errorf("failed to set %q in %q: %w", t.Field, t.Path, err)
		}
	case FormatYAML:
		updated, err = rewriteField(data, t, value, yaml.Unmarshal, yaml.Marshal)
	case FormatTOML:
		updated, err = rewriteField(data, t, value, toml.Unmarshal, toml.Marshal)
	}
	if err != nil {
		return err
	}

	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}

	if err := s.fs.WriteFile(ctx, t.Path, updated, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write %q: %w", t.Path, err)
	}
	return nil
}

// Exists reports whether the target file exists.
func (s *Store) Exists(ctx context.Context, path string) bool {
	_, err := s.fs.Stat(ctx, path)
	return err == nil
}

// rewriteField decodes the document, sets the field and re-encodes it.
func rewriteField(data []byte, t Target, value string,
	unmarshal func([]byte, any) error, marshal func(any) ([]byte, error)) ([]byte, error) {

	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse %s in %q: %w", strings.ToUpper(t.Format.String()), t.Path, err)
	}
	if err := setField(obj, t.Field, value); err != nil {
		return nil, fmt.Errorf("in file %q: %w", t.Path, err)
	}
	updated, err := marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s for %q: %w", strings.ToUpper(t.Format.String()), t.Path, err)
	}
	return updated, nil
}

// fieldValue resolves a dot-notation field path to its string value.
func fieldValue(obj map[string]any, field, path string) (string, error) {
	parts := strings.Split(field, ".")
	current := any(obj)
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return "", fmt.Errorf("field %q is not an object in %q", part, path)
		}
		current, ok = m[part]
		if !ok {
			return "", fmt.Errorf("field %q not found in %q", field, path)
		}
	}
	s, ok := current.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", field, path)
	}
	return s, nil
}

// setField sets a dot-notation field path, creating intermediate objects as
// needed.
func setField(obj map[string]any, field string, value any) error {
	if field == "" {
		return fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := obj
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]

		next, exists := current[part]
		if !exists {
			child := make(map[string]any)
			current[part] = child
			current = child
			continue
		}

		childMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q is not an object", strings.Join(parts[:i+1], "."))
		}
		current = childMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}
