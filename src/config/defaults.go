package config

import "time"

// DefaultConfig returns a default configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL:      "https://openrouter.ai/api/v1",
			APIKeyEnvVar: "TIMETRAVELER_API_KEY",
			Model:        "google/gemini-2.5-flash",
			Timeout:      30 * time.Second,
		},
		Chat: ChatConfig{
			Locale: "en",
		},
		Storage: StorageConfig{
			DatabasePath: DefaultDatabasePath(),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
