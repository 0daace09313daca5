// Package genclient talks to the remote text-generation service. It exposes
// the two reply operations the app needs: a single-figure impersonation and
// a multi-participant event round-table. The client makes exactly one HTTP
// attempt per call; the bounded retry over empty replies belongs to the
// orchestrator, and transport failures surface to it immediately.
package genclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "google/gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
)

// Client is the generation service client.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new generation service client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.With("component", "genclient"),
	}
}

// GenerateFigureReply asks the named historical figure to answer userMessage
// in the given language. An empty reply with a nil error means the service
// answered with no content; the caller decides whether to retry.
func (c *Client) GenerateFigureReply(ctx context.Context, figureName, userMessage, language string) (string, error) {
	return c.complete(ctx, figureSystemPrompt(figureName, language), userMessage)
}

// GenerateEventReply asks the participants of a historical event to answer
// userMessage as a round-table, in the given language.
func (c *Client) GenerateEventReply(ctx context.Context, eventID, userMessage string, participants []string, eventContext, language string) (string, error) {
	return c.complete(ctx, eventSystemPrompt(eventID, participants, eventContext, language), userMessage)
}

// complete sends one chat completion request and extracts the reply text.
func (c *Client) complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	logger := c.logger.With("method", "complete", "model", c.config.Model)
	logger.Debug("sending chat completion request")

	req := &ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		logger.Error("failed to marshal request", "error", err)
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/chat/completions", body)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("request failed", "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("received error response", "status_code", resp.StatusCode)
		return "", c.handleError(resp)
	}

	var result ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Error("failed to decode response", "error", err)
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	logger.Info("chat completion successful", "usage_total", result.Usage.TotalTokens)
	return result.ReplyText(), nil
}

// newRequest creates a new HTTP request with the appropriate headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	url := c.config.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// handleError processes error responses from the API.
func (c *Client) handleError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	apiErr := errResp.Error
	apiErr.StatusCode = resp.StatusCode

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
	}
	return &apiErr
}
