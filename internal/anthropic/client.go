// Package anthropic is a minimal client for the Anthropic Messages API.
// It covers exactly what the analysis dispatcher needs: one synchronous
// message round-trip with a system prompt and a single user message.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/config"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/httpclient"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/logger"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/utils"
)

const (
	messagesPath = "/v1/messages"
	// APIVersion is the anthropic-version header value the Messages API requires
	APIVersion = "2023-06-01"
)

// APIError is an error response returned by the Anthropic API
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anthropic API error [%d]: %s - %s", e.StatusCode, e.Type, e.Message)
}

// Message is a single conversation turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesRequest is the Messages API request body
type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
}

// Usage reports token consumption for a completed request
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// messagesResponse is the Messages API response body
type messagesResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      Usage  `json:"usage"`
}

// errorResponse is the Messages API error envelope
type errorResponse struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Completion is the result of a successful message round-trip
type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// Client talks to the Anthropic Messages API. The configuration is fixed
// at construction; every request uses the same model and parameters.
type Client struct {
	cfg        config.AnthropicConfig
	httpClient *http.Client
}

// NewClient creates a client for the configured Anthropic endpoint
func NewClient(cfg config.AnthropicConfig, factory *httpclient.Factory) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: factory.CreateClient(httpclient.Options{Timeout: cfg.Timeout}),
	}
}

// Complete sends one synchronous message request and returns the model's
// text. Failures reported by the API surface as *APIError so callers can
// distinguish upstream failures from local ones.
func (c *Client) Complete(ctx context.Context, system string, user string) (*Completion, error) {
	reqBody := messagesRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		System:      system,
		Messages:    []Message{{Role: "user", Content: user}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+messagesPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(utils.HeaderContentType, utils.ContentTypeJSON)
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", APIVersion)

	logger.Debug(ctx, "Sending request to Anthropic",
		"component", "AnthropicClient",
		"stage", "VendorRequest",
		"model", c.cfg.Model,
		"max_tokens", c.cfg.MaxTokens,
		"temperature", c.cfg.Temperature,
		"user_message_chars", len(user),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		logger.Error(ctx, "Anthropic communication failed", err,
			"component", "AnthropicClient",
			"stage", "VendorError",
			"url", c.cfg.BaseURL+messagesPath,
		)
		return nil, &APIError{StatusCode: 0, Type: "connection_error", Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Type: "read_error", Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var result messagesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Type: "invalid_response", Message: err.Error()}
	}

	text := ""
	for _, block := range result.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, &APIError{StatusCode: resp.StatusCode, Type: "invalid_response", Message: "response contained no text content"}
	}

	logger.Info(ctx, "Anthropic request completed",
		"component", "AnthropicClient",
		"stage", "VendorResponse",
		"model", result.Model,
		"stop_reason", result.StopReason,
		"input_tokens", result.Usage.InputTokens,
		"output_tokens", result.Usage.OutputTokens,
		"duration_ms", duration.Milliseconds(),
	)

	return &Completion{
		Text:  text,
		Model: result.Model,
		Usage: result.Usage,
	}, nil
}

// parseAPIError maps an error response body to an *APIError
func parseAPIError(statusCode int, body []byte) *APIError {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return &APIError{
			StatusCode: statusCode,
			Type:       parsed.Error.Type,
			Message:    parsed.Error.Message,
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Type:       "api_error",
		Message:    http.StatusText(statusCode),
	}
}
