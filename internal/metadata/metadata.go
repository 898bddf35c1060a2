package metadata

import (
	"path/filepath"
	"strings"
)

// Format identifies how a metadata file is encoded.
type Format string

const (
	// FormatJSON is for JSON metadata (package.json, dist manifests).
	FormatJSON Format = "json"

	// FormatYAML is for YAML metadata (Chart.yaml, snapcraft.yaml).
	FormatYAML Format = "yaml"

	// FormatTOML is for TOML metadata (pyproject.toml, Cargo.toml).
	FormatTOML Format = "toml"

	// FormatRaw is for plain text files whose entire content is the value.
	FormatRaw Format = "raw"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is known.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatRaw:
		return true
	default:
		return false
	}
}

// DetectFormat guesses the format of a file from its extension,
// falling back to raw.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatRaw
	}
}

// DefaultField is the field a target reads and writes when none is given.
const DefaultField = "version"

// Target names the version field inside one metadata file.
type Target struct {
	// Path is the metadata file path.
	Path string `yaml:"path"`

	// Format is the file encoding; detected from the extension when empty.
	Format Format `yaml:"format,omitempty"`

	// Field is the dot-notation path of the version field for structured
	// formats, e.g. "version" or "package.version". Defaults to "version".
	Field string `yaml:"field,omitempty"`
}

// Normalized returns a copy of the target with format and field defaults
// filled in.
func (t Target) Normalized() Target {
	if t.Format == "" {
		t.Format = DetectFormat(t.Path)
	}
	if t.Field == "" && t.Format != FormatRaw {
		t.Field = DefaultField
	}
	return t
}
