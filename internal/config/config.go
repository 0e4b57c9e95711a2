// internal/config/config.go
//
// Configuration and the .proflow directory structure. Every directory the
// dashboard runs from gets a .proflow/ folder holding config.yaml and the
// session logs. The feature records themselves are never written here; the
// board lives and dies with the session.

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

const (
	// ProflowDir is the name of the directory created next to the project.
	ProflowDir = ".proflow"

	defaultModel = "claude-3-5-haiku-latest"
)

const defaultProjectConfigYAML = `# proflow project configuration
version: 1

analysis:
  # Model used for the "analyze board" action.
  model: claude-3-5-haiku-latest
  # API key for the analysis service. The ANTHROPIC_API_KEY environment
  # variable takes precedence when set.
  api_key: ""

board:
  # Populate a fresh session with demo projects and features.
  seed_demo_data: true
`

// AnalysisConfig controls the board-analysis collaborator.
type AnalysisConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`
}

// BoardConfig controls dashboard behavior.
type BoardConfig struct {
	SeedDemoData *bool `yaml:"seed_demo_data"`
}

// ProjectConfig models .proflow/config.yaml.
type ProjectConfig struct {
	Version  int            `yaml:"version"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Board    BoardConfig    `yaml:"board"`
}

// Config holds the runtime configuration for a proflow session.
type Config struct {
	// ProjectDir is the directory the user ran `proflow` from.
	ProjectDir string

	// ProflowProjectDir is ProjectDir/.proflow.
	ProflowProjectDir string

	Project ProjectConfig
}

// InitProflowDir creates the .proflow directory structure and a commented
// default config file when none exists yet. Called on startup.
func InitProflowDir(projectDir string) error {
	proflowDir := filepath.Join(projectDir, ProflowDir)
	dirs := []string{
		proflowDir,
		filepath.Join(proflowDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(proflowDir, "config.yaml"))
}

// NewConfig creates a Config populated from .proflow/config.yaml, applying
// defaults when the file is missing.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:        projectDir,
		ProflowProjectDir: filepath.Join(projectDir, ProflowDir),
		Project:           defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ProflowProjectDir, "logs")
}

// SessionLogPath returns the file the session logbook writes to.
func (c *Config) SessionLogPath() string {
	return filepath.Join(c.LogsDir(), "session.log")
}

// ProjectConfigPath returns the on-disk location of the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ProflowProjectDir, "config.yaml")
}

// AnalysisModel returns the configured analysis model.
func (c *Config) AnalysisModel() string {
	return c.Project.Analysis.Model
}

// AnalysisAPIKey returns the configured API key; may be empty, in which
// case the analyzer falls back to the environment.
func (c *Config) AnalysisAPIKey() string {
	return c.Project.Analysis.APIKey
}

// SeedDemoData reports whether a fresh session should be populated with
// the demo board.
func (c *Config) SeedDemoData() bool {
	if c.Project.Board.SeedDemoData == nil {
		return true
	}
	return *c.Project.Board.SeedDemoData
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

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Analysis: AnalysisConfig{
			Model: defaultModel,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	pc.Analysis.Model = strings.TrimSpace(pc.Analysis.Model)
	if pc.Analysis.Model == "" {
		pc.Analysis.Model = defaultModel
	}
	pc.Analysis.APIKey = strings.TrimSpace(pc.Analysis.APIKey)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
