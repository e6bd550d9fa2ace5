// Package config handles loading and saving the saju configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file inside the config directory.
const FileName = "config.yaml"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all user configuration.
type Config struct {
	LeapMonthFallback bool          `yaml:"leap_month_fallback"` // convert a missing leap month as the regular month
	Workers           int           `yaml:"workers"`             // batch concurrency
	Archive           ArchiveConfig `yaml:"archive"`
	Output            OutputConfig  `yaml:"output"`
}

// ArchiveConfig holds settings for the reading archive.
type ArchiveConfig struct {
	Path     string `yaml:"path"`      // SQLite file; relative paths are taken from the config directory
	AutoSave bool   `yaml:"auto_save"` // archive every computed reading
}

// OutputConfig holds settings for printed readings.
type OutputConfig struct {
	Format   string `yaml:"format"`   // text or json
	Romanize bool   `yaml:"romanize"` // add pinyin next to hanja
	Banner   bool   `yaml:"banner"`   // draw the day-master hanja as a banner
	Color    bool   `yaml:"color"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LeapMonthFallback: false,
		Workers:           4,
		Archive: ArchiveConfig{
			Path:     "readings.db",
			AutoSave: false,
		},
		Output: OutputConfig{
			Format:   FormatText,
			Romanize: false,
			Banner:   true,
			Color:    true,
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("output format must be %q or %q, got %q", FormatText, FormatJSON, c.Output.Format)
	}
	if c.Archive.Path == "" {
		return errors.New("archive path is empty")
	}
	return nil
}

// ArchivePath resolves the archive path against the config directory.
func (c *Config) ArchivePath(dir string) string {
	if filepath.IsAbs(c.Archive.Path) {
		return c.Archive.Path
	}
	return filepath.Join(dir, c.Archive.Path)
}

// Load reads the configuration file from dir. A missing file yields the
// defaults; fields absent from the file keep their default values.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration file into dir.
func Save(dir string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "saju"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
