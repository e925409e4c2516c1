// Package config loads amangrep's layered configuration.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	amanerrors "github.com/Aman-CERP/amangrep/internal/errors"
)

// Output formats accepted by output.format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultReportPath is where benchmark reports are written unless overridden.
const DefaultReportPath = "search_report.json"

// ProjectConfigName is the per-tree configuration file read from the search root.
const ProjectConfigName = ".amangrep.yaml"

// Config represents the complete amangrep configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SearchConfig holds defaults for the search engine. Command-line flags
// override every field.
type SearchConfig struct {
	// Workers is the number of concurrent scan workers.
	Workers int `yaml:"workers" json:"workers"`

	// Exclude lists doublestar globs matched against root-relative paths.
	Exclude []string `yaml:"exclude" json:"exclude"`

	// FollowSymlinks lists symbolic links to regular files. Linked
	// directories are never descended.
	FollowSymlinks bool `yaml:"follow_symlinks" json:"follow_symlinks"`
}

// OutputConfig configures report rendering and persistence.
type OutputConfig struct {
	ReportPath string `yaml:"report_path" json:"report_path"`
	Format     string `yaml:"format" json:"format"`
	NoProgress bool   `yaml:"no_progress" json:"no_progress"`
}

// LoggingConfig configures the debug log file.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchConfig{
			Workers:        4,
			Exclude:        []string{},
			FollowSymlinks: false,
		},
		Output: OutputConfig{
			ReportPath: DefaultReportPath,
			Format:     FormatText,
		},
		Logging: LoggingConfig{
			Level:     "warn",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/amangrep/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/amangrep/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "amangrep", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "amangrep", "config.yaml")
	}
	return filepath.Join(home, ".config", "amangrep", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	info, err := os.Stat(GetUserConfigPath())
	return err == nil && !info.IsDir()
}

// LoadUserConfig loads the user configuration file on top of the defaults.
// Returns nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !UserConfigExists() {
		return nil, nil
	}

	cfg := NewConfig()
	if err := cfg.loadYAML(configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load resolves the configuration for a search rooted at dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/amangrep/config.yaml)
//  3. Project config (.amangrep.yaml in dir), except output.report_path
//  4. Environment variables (AMANGREP_*)
//
// A missing dir is not an error here; the search itself reports it.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	userCfg, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}
	if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if dir != "" {
		projectPath := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
			var parsed Config
			if err := readYAML(projectPath, &parsed); err != nil {
				return nil, err
			}
			// The searched tree must not choose where the report is written.
			if parsed.Output.ReportPath != "" {
				slog.Warn("ignoring output.report_path from project config",
					slog.String("path", projectPath),
					slog.String("report_path", parsed.Output.ReportPath))
				parsed.Output.ReportPath = ""
			}
			cfg.mergeWith(&parsed)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadFile parses a single config file without defaults or merging, so
// unset fields stay zero.
func ReadFile(path string) (*Config, error) {
	var cfg Config
	if err := readYAML(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadYAML parses path and merges its non-zero values into c.
func (c *Config) loadYAML(path string) error {
	var parsed Config
	if err := readYAML(path, &parsed); err != nil {
		return err
	}
	c.mergeWith(&parsed)
	return nil
}

func readYAML(path string, into *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return amanerrors.New(amanerrors.ErrCodeConfigNotFound,
			fmt.Sprintf("failed to read config file %s", path), err).
			WithDetail("path", path)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return amanerrors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err).
			WithDetail("path", path).
			WithSuggestion("Fix the YAML syntax or run 'amangrep config init --force' to regenerate it")
	}
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Search.Workers != 0 {
		c.Search.Workers = other.Search.Workers
	}
	if len(other.Search.Exclude) > 0 {
		// Layers add patterns; they never remove earlier ones.
		c.Search.Exclude = appendUnique(c.Search.Exclude, other.Search.Exclude...)
	}
	if other.Search.FollowSymlinks {
		c.Search.FollowSymlinks = true
	}

	if other.Output.ReportPath != "" {
		c.Output.ReportPath = other.Output.ReportPath
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.NoProgress {
		c.Output.NoProgress = true
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxFiles != 0 {
		c.Logging.MaxFiles = other.Logging.MaxFiles
	}
}

// applyEnvOverrides applies AMANGREP_* environment variables. Empty values
// are ignored.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("AMANGREP_WORKERS"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return amanerrors.ConfigError("AMANGREP_WORKERS must be an integer", err).
				WithDetail("value", v)
		}
		c.Search.Workers = n
	}
	if v := os.Getenv("AMANGREP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("AMANGREP_REPORT_PATH"); v != "" {
		c.Output.ReportPath = v
	}
	if v := os.Getenv("AMANGREP_FORMAT"); v != "" {
		c.Output.Format = v
	}
	return nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c.Search.Workers < 1 {
		return amanerrors.ConfigError(
			fmt.Sprintf("search.workers must be at least 1, got %d", c.Search.Workers), nil)
	}

	switch strings.ToLower(c.Output.Format) {
	case FormatText, FormatJSON:
	default:
		return amanerrors.ConfigError(
			fmt.Sprintf("output.format must be 'text' or 'json', got %s", c.Output.Format), nil)
	}

	if c.Output.ReportPath == "" {
		return amanerrors.ConfigError("output.report_path must not be empty", nil)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return amanerrors.ConfigError(
			fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level), nil)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxFiles < 0 {
		return amanerrors.ConfigError("logging.max_size_mb and logging.max_files must be non-negative", nil)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// JSON returns the configuration as indented JSON.
func (c *Config) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// MergeNewDefaults fills fields an older config file left unset and returns
// their dotted names.
func (c *Config) MergeNewDefaults() []string {
	defaults := NewConfig()
	var added []string

	if c.Version == 0 {
		c.Version = defaults.Version
		added = append(added, "version")
	}
	if c.Search.Workers == 0 {
		c.Search.Workers = defaults.Search.Workers
		added = append(added, "search.workers")
	}
	if c.Output.ReportPath == "" {
		c.Output.ReportPath = defaults.Output.ReportPath
		added = append(added, "output.report_path")
	}
	if c.Output.Format == "" {
		c.Output.Format = defaults.Output.Format
		added = append(added, "output.format")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
		added = append(added, "logging.level")
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
		added = append(added, "logging.max_size_mb")
	}
	if c.Logging.MaxFiles == 0 {
		c.Logging.MaxFiles = defaults.Logging.MaxFiles
		added = append(added, "logging.max_files")
	}

	return added
}

func appendUnique(dst []string, values ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[v] = true
	}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			dst = append(dst, v)
		}
	}
	return dst
}
