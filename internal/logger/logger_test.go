package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureHandler(buf *bytes.Buffer) *StructuredJSONHandler {
	return &StructuredJSONHandler{
		writer:      buf,
		level:       LevelDebug,
		serviceName: "test-service",
		environment: "test",
	}
}

func logLine(t *testing.T, buf *bytes.Buffer) StructuredLogEntry {
	t.Helper()
	var entry StructuredLogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestHandlerBasicEntry(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(captureHandler(&buf))

	log.Info("hello", "key", "value")

	entry := logLine(t, &buf)
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "hello", entry.Message)
	assert.Equal(t, "test-service", entry.Service)
	assert.Equal(t, "test", entry.Environment)
	assert.Equal(t, "value", entry.Attributes["key"])
}

func TestHandlerRoutesRequestAndResponseAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(captureHandler(&buf))

	log.Info("completed",
		"request_method", "POST",
		"request_endpoint", "/api/analyze",
		"response_status_code", 200,
	)

	entry := logLine(t, &buf)
	assert.Equal(t, "POST", entry.Request["method"])
	assert.Equal(t, "/api/analyze", entry.Request["endpoint"])
	assert.Equal(t, float64(200), entry.Response["status_code"])
	assert.Empty(t, entry.Attributes)
}

func TestHandlerRoutesComponentAndStage(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(captureHandler(&buf))

	log.Info("working", "component", "Analyzer", "stage", "Dispatch")

	entry := logLine(t, &buf)
	assert.Equal(t, "Analyzer", entry.Component)
	assert.Equal(t, "Dispatch", entry.Stage)
}

func TestHandlerErrorAttr(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(captureHandler(&buf))

	log.Error("failed", "error", fmt.Errorf("boom"))

	entry := logLine(t, &buf)
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "boom", entry.Error["message"])
	assert.NotEmpty(t, entry.Error["type"])
}

func TestHandlerContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(captureHandler(&buf))

	ctx := WithRequestID(context.Background(), "req-123")
	log.InfoContext(ctx, "with context")

	entry := logLine(t, &buf)
	assert.Equal(t, "req-123", entry.Request["request_id"])
}

func TestHandlerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	handler := captureHandler(&buf)
	handler.level = LevelWarn
	log := slog.New(handler)

	log.Info("too quiet")
	assert.Empty(t, buf.Bytes())

	log.Warn("loud enough")
	assert.NotEmpty(t, buf.Bytes())
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(nil))

	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestIDFromContext(ctx))
}

func TestInitFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SERVICE_NAME", "custom-service")

	require.NoError(t, InitFromEnv())
	assert.NotNil(t, Logger)
	assert.Equal(t, "custom-service", ServiceName)
}
