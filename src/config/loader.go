// Package config loads, merges and validates the application configuration:
// built-in defaults, an optional user config file, then environment
// overrides, in that order of precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "TIMETRAVELER"

// Loader handles loading and merging configurations.
type Loader struct {
	userConfigPath string
	validator      *Validator
}

// NewLoader creates a loader reading the user config from the default XDG
// location.
func NewLoader() *Loader {
	return &Loader{
		userConfigPath: UserConfigPath(),
		validator:      NewValidator(),
	}
}

// Load builds the effective configuration from defaults, the user config
// file (if present) and environment overrides, then validates it.
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	if cfg, err := l.loadFile(l.userConfigPath); err == nil {
		config = l.merge(config, cfg)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load user config from %s: %w", l.userConfigPath, err)
	}

	l.applyEnvironmentOverrides(config)

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &config, nil
}

// SaveFile saves configuration to a file.
func (l *Loader) SaveFile(config *Config, path string) error {
	if err := l.validator.Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// merge merges two configurations with the second taking precedence.
func (l *Loader) merge(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}
	if override.API.BaseURL != "" {
		result.API.BaseURL = override.API.BaseURL
	}
	if override.API.APIKey != "" {
		result.API.APIKey = override.API.APIKey
	}
	if override.API.APIKeyEnvVar != "" {
		result.API.APIKeyEnvVar = override.API.APIKeyEnvVar
	}
	if override.API.Model != "" {
		result.API.Model = override.API.Model
	}
	if override.API.Timeout != 0 {
		result.API.Timeout = override.API.Timeout
	}
	if override.Chat.Locale != "" {
		result.Chat.Locale = override.Chat.Locale
	}
	if override.Storage.DatabasePath != "" {
		result.Storage.DatabasePath = override.Storage.DatabasePath
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return &result
}

// applyEnvironmentOverrides applies TIMETRAVELER_* environment variables.
func (l *Loader) applyEnvironmentOverrides(config *Config) {
	if apiKey := os.Getenv(EnvPrefix + "_API_KEY"); apiKey != "" {
		config.API.APIKey = apiKey
	}
	if config.API.APIKey == "" && config.API.APIKeyEnvVar != "" {
		config.API.APIKey = os.Getenv(config.API.APIKeyEnvVar)
	}
	if baseURL := os.Getenv(EnvPrefix + "_BASE_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	if model := os.Getenv(EnvPrefix + "_MODEL"); model != "" {
		config.API.Model = model
	}
	if locale := os.Getenv(EnvPrefix + "_LOCALE"); locale != "" {
		config.Chat.Locale = locale
	}
	if dbPath := os.Getenv(EnvPrefix + "_DATABASE_PATH"); dbPath != "" {
		config.Storage.DatabasePath = dbPath
	}
	if level := os.Getenv(EnvPrefix + "_LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
	if timeout := os.Getenv(EnvPrefix + "_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.API.Timeout = d
		}
	}
}
