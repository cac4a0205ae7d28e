// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/geotree/internal/bootstrap"
	"github.com/kraklabs/geotree/pkg/catalog"
	"github.com/kraklabs/geotree/pkg/ingestion"
	"github.com/kraklabs/geotree/pkg/mutation"
)

const (
	configDirName  = ".geotree"
	configFileName = "project.yaml"
	configVersion  = "1"

	envDataDir  = "GEOTREE_DATA_DIR"
	envLogLevel = "GEOTREE_LOG_LEVEL"
)

// Config is the content of .geotree/project.yaml.
type Config struct {
	Version  string    `yaml:"version"`
	DataDir  string    `yaml:"data_dir"`
	Levels   []string  `yaml:"levels"`
	LeafFile string    `yaml:"leaf_file"`
	Exclude  []string  `yaml:"exclude,omitempty"`
	Log      LogConfig `yaml:"log"`

	// baseDir is the project directory the config was read from. Relative
	// data directories are resolved against it.
	baseDir string
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no project.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		Version:  configVersion,
		DataDir:  bootstrap.DefaultDataDir,
		Levels:   append([]string(nil), catalog.DefaultSchema...),
		LeafFile: mutation.DefaultLeafFile,
		Log:      LogConfig{Level: "warn", Format: "text"},
	}
}

// ConfigDir returns the .geotree directory of a project.
func ConfigDir(projectDir string) string {
	return filepath.Join(projectDir, configDirName)
}

// ConfigPath returns the project.yaml path of a project.
func ConfigPath(projectDir string) string {
	return filepath.Join(ConfigDir(projectDir), configFileName)
}

// LoadConfig reads the configuration at path. With an empty path it looks
// for ./.geotree/project.yaml and falls back to DefaultConfig when there is
// none. Environment overrides are applied before validation.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		path = ConfigPath(cwd)
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-provided config path
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.baseDir = ConfigDirParent(path)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No project file: defaults relative to the working directory.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML to path, creating the .geotree directory.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envDataDir); v != "" {
		c.DataDir = v
		c.baseDir = ""
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DataDir) == "" {
		problems = append(problems, "data_dir must not be empty")
	}
	if schema, err := catalog.NewSchema(c.Levels...); err != nil {
		problems = append(problems, fmt.Sprintf("levels: %v", err))
	} else {
		for _, err := range ingestion.ValidateExcludes(c.Exclude, schema) {
			problems = append(problems, err.Error())
		}
	}
	switch {
	case !strings.HasSuffix(c.LeafFile, ".csv"):
		problems = append(problems, fmt.Sprintf("leaf_file %q must end in .csv", c.LeafFile))
	case strings.ContainsAny(c.LeafFile, `/\`):
		problems = append(problems, fmt.Sprintf("leaf_file %q must be a file name, not a path", c.LeafFile))
	}
	if _, err := parseLogLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Schema returns the validated hierarchy schema.
func (c *Config) Schema() catalog.Schema {
	s, err := catalog.NewSchema(c.Levels...)
	if err != nil {
		return catalog.DefaultSchema
	}
	return s
}

// Root returns the data directory, resolved against the project directory
// when the config came from a file.
func (c *Config) Root() string {
	if filepath.IsAbs(c.DataDir) || c.baseDir == "" {
		return c.DataDir
	}
	return filepath.Join(c.baseDir, c.DataDir)
}

// ExcludeGlobs returns the loader's default excludes followed by the
// configured ones.
func (c *Config) ExcludeGlobs() []string {
	out := append([]string(nil), ingestion.DefaultExcludeGlobs...)
	return append(out, c.Exclude...)
}
