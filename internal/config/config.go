// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied by MergeWithDefaults when a field is unset
const (
	DefaultPort             = 8080
	DefaultMaxDocumentBytes = 1 << 20
	DefaultBatchWorkers     = 4
	DefaultLogLevel         = "info"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or come from env vars and CLI flags.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL; empty uses the in-memory store

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"` // HTTP listen port

	// Limits
	MaxDocumentBytes int64 `json:"max_document_bytes,omitempty" yaml:"max_document_bytes,omitempty"` // Largest document accepted for validation
	BatchWorkers     int   `json:"batch_workers,omitempty" yaml:"batch_workers,omitempty"`           // Concurrent validations in a batch

	// Logging
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"` // trace, debug, info, warn, error
	LogFile  string `json:"log_file,omitempty" yaml:"log_file,omitempty"`   // Rotated log file; empty logs to stderr
	LogJSON  bool   `json:"log_json,omitempty" yaml:"log_json,omitempty"`   // Emit JSON lines instead of console output
}

// LoadConfig loads configuration from a JSON (.json) or YAML (.yaml, .yml) file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Zero values are allowed since MergeWithDefaults fills them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.MaxDocumentBytes < 0 {
		return fmt.Errorf("config error: 'max_document_bytes' must be non-negative")
	}
	if c.BatchWorkers < 0 {
		return fmt.Errorf("config error: 'batch_workers' must be non-negative")
	}
	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults,
// falling back to the package defaults for port, limits, and log level.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}
	if result.LogLevel == "" {
		result.LogLevel = firstNonEmpty(defaults.LogLevel, DefaultLogLevel)
	}

	if result.Port == 0 {
		result.Port = firstPositive(defaults.Port, DefaultPort)
	}
	if result.MaxDocumentBytes == 0 {
		result.MaxDocumentBytes = defaults.MaxDocumentBytes
		if result.MaxDocumentBytes <= 0 {
			result.MaxDocumentBytes = DefaultMaxDocumentBytes
		}
	}
	if result.BatchWorkers == 0 {
		result.BatchWorkers = firstPositive(defaults.BatchWorkers, DefaultBatchWorkers)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides fields from DATABASE_URL, PRFAQ_PORT,
// PRFAQ_MAX_DOCUMENT_BYTES and PRFAQ_LOG_LEVEL when they are set.
func (c *Config) ApplyEnv() {
	c.DatabaseURL = getEnvString("DATABASE_URL", c.DatabaseURL)
	c.Port = getEnvInt("PRFAQ_PORT", c.Port)
	c.MaxDocumentBytes = int64(getEnvInt("PRFAQ_MAX_DOCUMENT_BYTES", int(c.MaxDocumentBytes)))
	c.LogLevel = getEnvString("PRFAQ_LOG_LEVEL", c.LogLevel)
}

// Load reads path (if non-empty), applies env overrides, fills defaults, and validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Config{})
	return &merged, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
