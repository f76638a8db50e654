// =============================================================================
// JSON/CSV Converter - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has a
// default, so the converter runs without any configuration at all; the file
// only exists to change logging, quoting, strictness and output behavior.
//
// EXAMPLE (config.yaml):
//   log_level: info
//   quote_policy: always     # always | minimal
//   strict_quotes: false     # fail on malformed quoting instead of truncating
//   atomic_write: true       # write through a temporary file, then rename
//   file_mode: "0644"
//   max_concurrency: 4       # batch command only
//   sheet_name: Sheet1       # sheet command only
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/csvwriter"
)

// DefaultPath is the configuration file looked up when --config is not set.
const DefaultPath = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "trace", "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// FORMAT SETTINGS
	// =========================================================================

	// QuotePolicy selects which fields the encoder quotes.
	// Valid values: "always", "minimal"
	// Default: "always"
	QuotePolicy string `yaml:"quote_policy"`

	// StrictQuotes makes the decoder reject malformed quoting.
	// Default: false
	StrictQuotes bool `yaml:"strict_quotes"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// AtomicWrite writes the target through a temporary file in the same
	// directory and renames it into place.
	// Default: true
	AtomicWrite *bool `yaml:"atomic_write"`

	// FileMode is the octal permission set for written files.
	// Default: "0644"
	FileMode string `yaml:"file_mode"`

	// SheetName is the worksheet name used by the sheet command.
	// Default: "Sheet1"
	SheetName string `yaml:"sheet_name"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the number of files the batch command converts at
	// once. Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The path to the configuration file. An empty path or a missing
//     file at DefaultPath yields the defaults.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration data, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.QuotePolicy == "" {
		cfg.QuotePolicy = "always"
	}
	if cfg.AtomicWrite == nil {
		atomic := true
		cfg.AtomicWrite = &atomic
	}
	if cfg.FileMode == "" {
		cfg.FileMode = "0644"
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Sheet1"
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}
}

// Validate checks the configuration after settings were changed in code,
// for example by command-line overrides.
func (c *Config) Validate() error {
	return validate(c)
}

// validate checks that every setting can be interpreted.
func validate(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := csvwriter.ParseQuotePolicy(cfg.QuotePolicy); err != nil {
		return fmt.Errorf("quote_policy: %w", err)
	}
	if _, err := parseFileMode(cfg.FileMode); err != nil {
		return fmt.Errorf("file_mode: %w", err)
	}
	if cfg.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", cfg.MaxConcurrency)
	}
	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Level returns the parsed log level.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

// Quoting returns the parsed quote policy.
func (c *Config) Quoting() csvwriter.QuotePolicy {
	policy, _ := csvwriter.ParseQuotePolicy(c.QuotePolicy)
	return policy
}

// Mode returns the parsed file mode.
func (c *Config) Mode() os.FileMode {
	mode, err := parseFileMode(c.FileMode)
	if err != nil {
		return 0o644
	}
	return mode
}

// Atomic reports whether targets are written through a temporary file.
func (c *Config) Atomic() bool {
	return c.AtomicWrite == nil || *c.AtomicWrite
}

func parseFileMode(s string) (os.FileMode, error) {
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not an octal mode", s)
	}
	if n > 0o777 {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return os.FileMode(n), nil
}
