package config

import "time"

// Config is the complete configuration for timetraveler.
type Config struct {
	// Version of the configuration format
	Version string `json:"version"`

	// API configuration for the generation service
	API APIConfig `json:"api"`

	// Chat behavior
	Chat ChatConfig `json:"chat"`

	// Storage configuration
	Storage StorageConfig `json:"storage"`

	// Log configuration
	Log LogConfig `json:"log"`
}

// APIConfig configures the generation service client.
type APIConfig struct {
	// BaseURL of the generation API
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// APIKey authenticates requests; usually supplied via APIKeyEnvVar
	APIKey string `json:"api_key,omitempty"`

	// APIKeyEnvVar names the environment variable holding the key
	APIKeyEnvVar string `json:"api_key_env_var,omitempty"`

	// Model used for every reply
	Model string `json:"model,omitempty"`

	// Timeout for one HTTP request
	Timeout time.Duration `json:"timeout,omitempty"`
}

// ChatConfig configures conversation behavior.
type ChatConfig struct {
	// Locale is the response language, "en" or "pt"
	Locale string `json:"locale,omitempty" validate:"omitempty,locale"`
}

// StorageConfig configures the persisted key-value store.
type StorageConfig struct {
	// DatabasePath is the SQLite file holding conversation state
	DatabasePath string `json:"database_path,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `json:"level,omitempty" validate:"omitempty,log_level"`
}
