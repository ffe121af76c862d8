package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/file-organizer/internal/categories"
	"github.com/fenilsonani/file-organizer/internal/reporter"
	"github.com/fenilsonani/file-organizer/internal/security"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	OutputDir       string            `yaml:"output_dir"` // empty means the source directory
	DryRun          bool              `yaml:"dry_run"`
	Verbose         bool              `yaml:"verbose"`
	LogLevel        string            `yaml:"log_level"`
	Format          string            `yaml:"format"`
	Progress        bool              `yaml:"progress"`
	Manifest        string            `yaml:"manifest"`
	ExcludePatterns []string          `yaml:"exclude_patterns"`
	ProtectedPaths  []string          `yaml:"protected_paths"`
	Extensions      map[string]string `yaml:"extensions"` // extension -> category name
}

// Load loads configuration from a file. Keys missing from the file keep
// their default values.
func Load(configPath string) (*Config, error) {
	config := GetDefault()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	if _, err := reporter.ParseFormat(c.Format); err != nil {
		return err
	}

	// Validate exclude patterns (glob syntax)
	for _, pattern := range c.ExcludePatterns {
		if err := security.ValidateGlobPattern(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}

	// Validate protected paths are absolute
	for _, path := range c.ProtectedPaths {
		if !filepath.IsAbs(path) {
			return fmt.Errorf("protected path must be absolute: %s", path)
		}
	}

	if _, err := c.ExtensionOverrides(); err != nil {
		return err
	}

	return nil
}

// ExtensionOverrides converts the extensions table into mapper overrides
func (c *Config) ExtensionOverrides() (map[string]categories.Category, error) {
	overrides := make(map[string]categories.Category, len(c.Extensions))
	for ext, name := range c.Extensions {
		if strings.Trim(strings.TrimSpace(ext), ".") == "" {
			return nil, fmt.Errorf("extension override with empty extension")
		}
		category, err := categories.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("extension '%s': %w", ext, err)
		}
		overrides[ext] = category
	}
	return overrides, nil
}

// Level returns the configured log level
func (c *Config) Level() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLogLevel converts debug, info, warn or error into a slog level. An
// empty name means info.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s (use debug, info, warn or error)", name)
	}
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "file-organizer")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists writes the commented example config to configPath if
// nothing is there yet. It reports whether a file was written.
func EnsureConfigExists(configPath string) (bool, error) {
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(GetExampleConfig()), 0644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
