package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/config"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/errors"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/httpclient"
)

func testConfig(baseURL, apiKey string) config.AnthropicConfig {
	return config.AnthropicConfig{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       "claude-3-haiku-20240307",
		MaxTokens:   2000,
		Temperature: 0.1,
		Timeout:     10 * time.Second,
	}
}

func newAnalyzer(cfg config.AnthropicConfig) *Analyzer {
	return New(cfg, httpclient.NewFactory(httpclient.Options{Timeout: cfg.Timeout}))
}

func TestAnalyzeDemoModeWithoutKey(t *testing.T) {
	a := newAnalyzer(testConfig("https://api.anthropic.com", ""))
	require.False(t, a.Available())

	result, apiErr := a.Analyze(context.Background(), "Envío de prueba", "ES")

	require.Nil(t, apiErr)
	assert.True(t, result.Success)
	assert.Equal(t, ModeDemo, result.Metadata.Mode)
	assert.Equal(t, "ES", result.Metadata.Language)
	assert.Equal(t, utf8.RuneCountInString("Envío de prueba"), result.Metadata.CharCount)
	assert.Empty(t, result.Metadata.Model)
	assert.Zero(t, result.Metadata.TokensUsed)
	assert.NotEmpty(t, result.Metadata.Timestamp)
	assert.Contains(t, result.Analysis, "demostración")
}

func TestAnalyzeCountsCharactersNotBytes(t *testing.T) {
	a := newAnalyzer(testConfig("https://api.anthropic.com", ""))

	// 22 characters, 25 bytes: the accents must not inflate the count
	text := "Envío de café a Bogotá"
	require.Equal(t, 22, utf8.RuneCountInString(text))
	require.Equal(t, 25, len(text))

	result, apiErr := a.Analyze(context.Background(), text, "ES")

	require.Nil(t, apiErr)
	assert.Equal(t, 22, result.Metadata.CharCount)
	assert.Contains(t, result.Analysis, "22 caracteres")
}

func TestAnalyzeDemoModeWithPlaceholderKey(t *testing.T) {
	a := newAnalyzer(testConfig("https://api.anthropic.com", config.APIKeyPlaceholder))
	require.False(t, a.Available())

	result, apiErr := a.Analyze(context.Background(), "texto", "EN")

	require.Nil(t, apiErr)
	assert.Equal(t, ModeDemo, result.Metadata.Mode)
	assert.Equal(t, "EN", result.Metadata.Language)
}

func TestAnalyzeProductionMode(t *testing.T) {
	const analysisText = "1. Validación de contexto: operación de exportación marítima..."

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-3-haiku-20240307", body["model"])
		assert.Equal(t, float64(2000), body["max_tokens"])

		messages := body["messages"].([]interface{})
		require.Len(t, messages, 1)
		content := messages[0].(map[string]interface{})["content"].(string)
		assert.True(t, strings.HasPrefix(content, "Idioma: EN\n\nDocumento:\n"), "content: %s", content)
		assert.Contains(t, content, "shipment details")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "msg_test",
			"model": "claude-3-haiku-20240307",
			"content": []map[string]string{
				{"type": "text", "text": analysisText},
			},
			"stop_reason": "end_turn",
			"usage":       map[string]int{"input_tokens": 350, "output_tokens": 420},
		})
	}))
	defer server.Close()

	a := newAnalyzer(testConfig(server.URL, "sk-ant-test"))
	require.True(t, a.Available())

	result, apiErr := a.Analyze(context.Background(), "shipment details", "EN")

	require.Nil(t, apiErr)
	assert.True(t, result.Success)
	assert.Equal(t, analysisText, result.Analysis)
	assert.Equal(t, ModeProduction, result.Metadata.Mode)
	assert.Equal(t, "EN", result.Metadata.Language)
	assert.Equal(t, len("shipment details"), result.Metadata.CharCount)
	assert.Equal(t, "claude-3-haiku-20240307", result.Metadata.Model)
	assert.Equal(t, 770, result.Metadata.TokensUsed)
	assert.GreaterOrEqual(t, result.Metadata.ProcessingTimeSeconds, 0.0)
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"type": "error",
			"error": map[string]string{
				"type":    "overloaded_error",
				"message": "Overloaded",
			},
		})
	}))
	defer server.Close()

	a := newAnalyzer(testConfig(server.URL, "sk-ant-test"))

	result, apiErr := a.Analyze(context.Background(), "texto", "ES")

	assert.Nil(t, result)
	require.NotNil(t, apiErr)
	assert.Equal(t, errors.ErrorTypeUpstream, apiErr.Type)
	assert.Contains(t, apiErr.Message, "Overloaded")
}

func TestAnalyzeConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	a := newAnalyzer(testConfig(server.URL, "sk-ant-test"))

	result, apiErr := a.Analyze(context.Background(), "texto", "ES")

	assert.Nil(t, result)
	require.NotNil(t, apiErr)
	assert.Equal(t, errors.ErrorTypeUpstream, apiErr.Type)
}

func TestDemoAnalysisIsDeterministic(t *testing.T) {
	first := demoAnalysis(120, "FR")
	second := demoAnalysis(120, "FR")

	assert.Equal(t, first, second)
	assert.Contains(t, first, "120 caracteres")
	assert.Contains(t, first, "Idioma: FR")
}
