package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/config"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/httpclient"
)

func clientConfig(baseURL string) config.AnthropicConfig {
	return config.AnthropicConfig{
		APIKey:      "sk-ant-test",
		BaseURL:     baseURL,
		Model:       "claude-3-haiku-20240307",
		MaxTokens:   2000,
		Temperature: 0.1,
		Timeout:     5 * time.Second,
	}
}

func newTestClient(cfg config.AnthropicConfig) *Client {
	return NewClient(cfg, httpclient.NewFactory(httpclient.Options{Timeout: cfg.Timeout}))
}

func TestCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "system instructions", req.System)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "hello", req.Messages[0].Content)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "msg_1",
			"model": "claude-3-haiku-20240307",
			"content": []map[string]string{
				{"type": "text", "text": "analysis output"},
			},
			"stop_reason": "end_turn",
			"usage":       map[string]int{"input_tokens": 10, "output_tokens": 20},
		})
	}))
	defer server.Close()

	cfg := clientConfig(server.URL)
	completion, err := newTestClient(cfg).Complete(context.Background(), "system instructions", "hello")

	require.NoError(t, err)
	assert.Equal(t, "analysis output", completion.Text)
	assert.Equal(t, "claude-3-haiku-20240307", completion.Model)
	assert.Equal(t, 10, completion.Usage.InputTokens)
	assert.Equal(t, 20, completion.Usage.OutputTokens)
}

func TestCompleteSkipsNonTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "msg_2",
			"model": "claude-3-haiku-20240307",
			"content": []map[string]string{
				{"type": "thinking", "text": "internal"},
				{"type": "text", "text": "visible"},
			},
			"usage": map[string]int{"input_tokens": 1, "output_tokens": 1},
		})
	}))
	defer server.Close()

	cfg := clientConfig(server.URL)
	completion, err := newTestClient(cfg).Complete(context.Background(), "s", "u")

	require.NoError(t, err)
	assert.Equal(t, "visible", completion.Text)
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"type": "error",
			"error": map[string]string{
				"type":    "authentication_error",
				"message": "invalid x-api-key",
			},
		})
	}))
	defer server.Close()

	cfg := clientConfig(server.URL)
	_, err := newTestClient(cfg).Complete(context.Background(), "s", "u")

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "authentication_error", apiErr.Type)
	assert.Equal(t, "invalid x-api-key", apiErr.Message)
}

func TestCompleteAPIErrorUnparseableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	cfg := clientConfig(server.URL)
	_, err := newTestClient(cfg).Complete(context.Background(), "s", "u")

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "api_error", apiErr.Type)
}

func TestCompleteEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "msg_3",
			"model":   "claude-3-haiku-20240307",
			"content": []map[string]string{},
			"usage":   map[string]int{"input_tokens": 1, "output_tokens": 0},
		})
	}))
	defer server.Close()

	cfg := clientConfig(server.URL)
	_, err := newTestClient(cfg).Complete(context.Background(), "s", "u")

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "invalid_response", apiErr.Type)
}

func TestCompleteConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	cfg := clientConfig(server.URL)
	_, err := newTestClient(cfg).Complete(context.Background(), "s", "u")

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "connection_error", apiErr.Type)
	assert.Zero(t, apiErr.StatusCode)
}

func TestCompleteContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := clientConfig(server.URL)
	_, err := newTestClient(cfg).Complete(ctx, "s", "u")

	require.Error(t, err)
}
