package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/relvertool/relver/internal/core"
	"github.com/relvertool/relver/internal/metadata"
)

// DefaultConfigFile is the configuration file name looked up in the working
// directory.
const DefaultConfigFile = ".relver.yaml"

// ConfigFilePerm defines the permissions for config files written by relver.
const ConfigFilePerm = core.PermOwnerRW

// defaultBackends is the probe order used when the config does not set one.
var defaultBackends = []string{"git", "hg", "bzr"}

// VCSConfig controls version control probing.
type VCSConfig struct {
	// Backends lists backend names in probe order. Defaults to git, hg, bzr.
	Backends []string `yaml:"backends,omitempty"`
}

// Config is the main configuration structure for relver.
type Config struct {
	// Expression is the default version expression, "path[:identifier]".
	Expression string `yaml:"expression,omitempty"`

	// SourceTree overrides the source tree probed for revision information.
	// When empty the resolved expression's directory is used.
	SourceTree string `yaml:"source-tree,omitempty"`

	// VCS configures version control probing.
	VCS *VCSConfig `yaml:"vcs,omitempty"`

	// Metadata lists the files whose version field the stamp command
	// rewrites.
	Metadata []metadata.Target `yaml:"metadata,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		VCS: &VCSConfig{Backends: append([]string(nil), defaultBackends...)},
	}
}

// Load reads the configuration from path, falling back to Default when the
// file does not exist. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	if cfg.VCS == nil {
		cfg.VCS = &VCSConfig{}
	}
	if len(cfg.VCS.Backends) == 0 {
		cfg.VCS.Backends = append([]string(nil), defaultBackends...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks backend names and metadata targets.
func (c *Config) Validate() error {
	known := map[string]bool{"git": true, "hg": true, "bzr": true}
	seen := map[string]bool{}
	for _, name := range c.VCS.Backends {
		if !known[name] {
			return fmt.Errorf("unknown vcs backend: %q", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate vcs backend: %q", name)
		}
		seen[name] = true
	}

	for i, t := range c.Metadata {
		if t.Path == "" {
			return fmt.Errorf("metadata target %d: path is required", i)
		}
		if t.Format != "" && !t.Format.IsValid() {
			return fmt.Errorf("metadata target %q: unknown format %q", t.Path, t.Format)
		}
	}

	return nil
}

// Save writes the configuration to path.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file %q: %w", path, err)
	}

	return nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	if path == "" {
		path = DefaultConfigFile
	}
	_, err := os.Stat(path)
	return err == nil
}
