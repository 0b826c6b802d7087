// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Tholomir/ChronoRex/internal/constants"
)

type Config struct {
	Database string  `yaml:"database"`
	Debug    bool    `yaml:"debug"`
	Export   Export  `yaml:"export"`
	Backup   Backup  `yaml:"backup"`
	Logging  Logging `yaml:"logging"`
}

type Export struct {
	Dir string `yaml:"dir"`
}

type Backup struct {
	Automatic  bool `yaml:"automatic"`
	MaxBackups int  `yaml:"max_backups"`
}

type Logging struct {
	MaxSizeMB  int `yaml:"max_size_mb"`
	MaxBackups int `yaml:"max_backups"`
	MaxAgeDays int `yaml:"max_age_days"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Database: constants.DefaultConfigPath,
		Export:   Export{Dir: "."},
		Backup: Backup{
			Automatic:  true,
			MaxBackups: constants.MaxBackups,
		},
		Logging: Logging{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse unmarshals over the defaults, so omitted keys keep their default values.
func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Backup.MaxBackups <= 0 {
		cfg.Backup.MaxBackups = constants.MaxBackups
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Dir returns the directory that holds the config file, logs and the default database.
func Dir(configFile string) string {
	return filepath.Dir(ExpandPath(configFile))
}
