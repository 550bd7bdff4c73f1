// Package config loads sl2info configuration.
//
// Configuration is read from a single YAML file given by the --config flag
// or the SL2_CONFIG environment variable. Without either, defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config path.
const EnvVar = "SL2_CONFIG"

// Config is the tool configuration.
type Config struct {
	// KeysFile overlays the built-in AES keys (key_name = HEX lines).
	KeysFile string `yaml:"keys_file"`

	// CatalogFile is a YAML item catalog, optionally .zst compressed.
	CatalogFile string `yaml:"catalog_file"`

	// Workers bounds concurrent entry processing. 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// DS3EntrySizes lists extra entry sizes that identify DS3 saves.
	DS3EntrySizes []uint64 `yaml:"ds3_entry_sizes"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the file named by SL2_CONFIG, or returns defaults when unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path on top of the defaults. Relative
// file paths in the config are resolved against the config's directory.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.KeysFile = resolve(dir, cfg.KeysFile)
	cfg.CatalogFile = resolve(dir, cfg.CatalogFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return filepath.Join(dir, p)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}
	formats := []string{"text", "json"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	for _, size := range c.DS3EntrySizes {
		if size == 0 {
			errs = append(errs, errors.New("ds3_entry_sizes must not contain 0"))
			break
		}
	}

	return errors.Join(errs...)
}
