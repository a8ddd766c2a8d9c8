// Package config handles the .strata directory and the host configuration
// file. Every project using strata gets a .strata/ folder in its root
// holding config.yaml plus the default module search directories.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StrataDir is the name of the directory created in each project.
const StrataDir = ".strata"

const defaultProjectConfigYAML = `# strata project configuration
version: 1

# Locations searched by the system loader (broadest scope, always present).
system_locations:
  - .strata/system

# Locations searched by the early-extension loader. These are propagated
# into the runtime loader when it is captured.
early_locations:
  - .strata/modules

# Location of strata's own backing artifacts, injected into the runtime
# loader first so resolved code can always reach them.
own_location: .strata/system

# Dotted module names to resolve and register at startup.
# modules:
#   - community.review
`

// ProjectConfig models .strata/config.yaml.
type ProjectConfig struct {
	Version         int      `yaml:"version"`
	SystemLocations []string `yaml:"system_locations"`
	EarlyLocations  []string `yaml:"early_locations"`
	OwnLocation     string   `yaml:"own_location,omitempty"`
	Modules         []string `yaml:"modules,omitempty"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory the host was started from.
	ProjectDir string

	// StrataProjectDir is ProjectDir/.strata.
	StrataProjectDir string

	Project ProjectConfig
}

// InitStrataDir creates the .strata directory structure and a default
// config.yaml when none exists yet.
func InitStrataDir(projectDir string) error {
	strataDir := filepath.Join(projectDir, StrataDir)
	dirs := []string{
		filepath.Join(strataDir, "system"),
		filepath.Join(strataDir, "modules"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(strataDir, "config.yaml"))
}

// NewConfig loads the project configuration for projectDir, falling back to
// defaults when no config file exists.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:       projectDir,
		StrataProjectDir: filepath.Join(projectDir, StrataDir),
		Project:          defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectConfigPath returns the on-disk location of the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StrataProjectDir, "config.yaml")
}

// SystemLocations returns the system loader's search roots, resolved
// against the project directory.
func (c *Config) SystemLocations() []string {
	return c.resolveAll(c.Project.SystemLocations)
}

// EarlyLocations returns the early-extension loader's search roots,
// resolved against the project directory.
func (c *Config) EarlyLocations() []string {
	return c.resolveAll(c.Project.EarlyLocations)
}

// OwnLocation returns strata's backing location, resolved against the
// project directory, or "" when not configured.
func (c *Config) OwnLocation() string {
	trimmed := strings.TrimSpace(c.Project.OwnLocation)
	if trimmed == "" {
		return ""
	}
	return c.resolve(trimmed)
}

// Modules returns the dotted module names to register at startup.
func (c *Config) Modules() []string {
	names := make([]string, 0, len(c.Project.Modules))
	for _, name := range c.Project.Modules {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		names = append(names, trimmed)
	}
	return names
}

func (c *Config) resolveAll(locations []string) []string {
	resolved := make([]string, 0, len(locations))
	for _, loc := range locations {
		trimmed := strings.TrimSpace(loc)
		if trimmed == "" {
			continue
		}
		resolved = append(resolved, c.resolve(trimmed))
	}
	return resolved
}

func (c *Config) resolve(location string) string {
	if filepath.IsAbs(location) {
		return filepath.Clean(location)
	}
	return filepath.Join(c.ProjectDir, location)
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var project ProjectConfig
	if err := yaml.Unmarshal(data, &project); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	c.Project = project
	return nil
}

func defaultProjectConfig() ProjectConfig {
	var project ProjectConfig
	if err := yaml.Unmarshal([]byte(defaultProjectConfigYAML), &project); err != nil {
		panic(fmt.Sprintf("config: default config is invalid: %v", err))
	}
	return project
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644); err != nil {
		return fmt.Errorf("config: write default %s: %w", path, err)
	}
	return nil
}
