package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	pkerr "github.com/abdul-hamid-achik/patchkit/internal/errors"
	"github.com/abdul-hamid-achik/patchkit/internal/patch"
	"github.com/abdul-hamid-achik/patchkit/internal/workspace"
)

// SandboxConfig holds workspace containment configuration
type SandboxConfig struct {
	Root string `yaml:"root"` // Workspace root directory (default: current directory)
	Mode string `yaml:"mode"` // read-only, workspace-write or full-access
}

// PatchConfig holds patch application configuration
type PatchConfig struct {
	ResyncWindow int `yaml:"resync_window"` // How far ahead context lines may match
}

// OutputConfig holds report display configuration
type OutputConfig struct {
	Color       bool   `yaml:"color"`        // Styled report output
	Highlight   bool   `yaml:"highlight"`    // Syntax highlighting for diff previews
	Theme       string `yaml:"theme"`        // Chroma style name for highlighting
	DiffContext int    `yaml:"diff_context"` // Context lines in diff previews
}

// Config holds the application configuration
type Config struct {
	Sandbox  SandboxConfig `yaml:"sandbox"`
	Patch    PatchConfig   `yaml:"patch"`
	Output   OutputConfig  `yaml:"output"`
	LogLevel string        `yaml:"log_level"`

	// Internal: where config was loaded from
	configPath string
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Sandbox: SandboxConfig{
			Root: ".",
			Mode: workspace.ModeWorkspaceWrite.String(),
		},
		Patch: PatchConfig{
			ResyncWindow: patch.DefaultResyncWindow,
		},
		Output: OutputConfig{
			Color:       true,
			Highlight:   true,
			Theme:       "monokai",
			DiffContext: 3,
		},
		LogLevel: "info",
	}
}

// Load loads configuration from the first config file found, falling
// back to defaults when none exists. Nothing is written to disk; Init
// creates a file on explicit request only.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := cfg.loadFromFile(path); err != nil {
				return nil, pkerr.ConfigLoadFailed(path, err)
			}
			cfg.configPath = path
			break
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, pkerr.ConfigLoadFailed(cfg.configPath, err)
	}

	return cfg, nil
}

// getConfigPaths returns config file paths in priority order
func getConfigPaths() []string {
	paths := []string{
		"patchkit.yaml",
		".patchkit/config.yaml",
	}

	// Add user config directory
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "patchkit", "config.yaml"))
	}

	return paths
}

// loadFromFile loads config from a YAML file
func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) validate() error {
	if _, err := workspace.ParseMode(c.Sandbox.Mode); err != nil {
		return err
	}
	if c.Patch.ResyncWindow <= 0 {
		return fmt.Errorf("resync_window must be positive, got %d", c.Patch.ResyncWindow)
	}
	if c.Output.DiffContext < 0 {
		return fmt.Errorf("diff_context must not be negative, got %d", c.Output.DiffContext)
	}
	return nil
}

// Init writes the current configuration to .patchkit/config.yaml in
// the working directory, for editing.
func (c *Config) Init() error {
	dir := ".patchkit"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, "config.yaml")
	c.configPath = path

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	content := "# patchkit configuration\n# See: https://github.com/abdul-hamid-achik/patchkit\n\n" + string(data)
	return os.WriteFile(path, []byte(content), 0644)
}

// Mode returns the parsed sandbox mode.
func (c *Config) Mode() workspace.Mode {
	mode, err := workspace.ParseMode(c.Sandbox.Mode)
	if err != nil {
		return workspace.ModeReadOnly
	}
	return mode
}

// ConfigPath returns where the config was loaded from
func (c *Config) ConfigPath() string {
	return c.configPath
}
