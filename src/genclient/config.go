package genclient

import (
	"log/slog"
	"time"
)

// Config holds the settings for the generation service client.
type Config struct {
	// BaseURL is the API base URL. Defaults to the public endpoint.
	BaseURL string

	// APIKey authenticates requests.
	APIKey string

	// Model is the chat model used for every reply.
	Model string

	// Timeout bounds a single HTTP request. Zero means the default.
	Timeout time.Duration

	// Logger for request logging. Defaults to slog.Default.
	Logger *slog.Logger
}
