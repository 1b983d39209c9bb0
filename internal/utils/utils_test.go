package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")

	assert.Equal(t, "value", GetEnvString("TEST_STRING", "default"))
	assert.Equal(t, "default", GetEnvString("TEST_STRING_MISSING", "default"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "not-a-number")

	assert.Equal(t, 42, GetEnvInt("TEST_INT", 7))
	assert.Equal(t, 7, GetEnvInt("TEST_INT_BAD", 7))
	assert.Equal(t, 7, GetEnvInt("TEST_INT_MISSING", 7))
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("TEST_INT64", "10485760")

	assert.Equal(t, int64(10485760), GetEnvInt64("TEST_INT64", 1))
	assert.Equal(t, int64(1), GetEnvInt64("TEST_INT64_MISSING", 1))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_BAD", "maybe")

	assert.True(t, GetEnvBool("TEST_BOOL", false))
	assert.False(t, GetEnvBool("TEST_BOOL_BAD", false))
	assert.True(t, GetEnvBool("TEST_BOOL_MISSING", true))
}

func TestGetEnvFloat64(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.35")

	assert.Equal(t, 0.35, GetEnvFloat64("TEST_FLOAT", 0.1))
	assert.Equal(t, 0.1, GetEnvFloat64("TEST_FLOAT_MISSING", 0.1))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "30")
	t.Setenv("TEST_DURATION_ZERO", "0")

	assert.Equal(t, 30*time.Second, GetEnvDuration("TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION_ZERO", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION_MISSING", time.Second))
}

func TestGetEnvPort(t *testing.T) {
	t.Setenv("TEST_PORT", "9000")
	t.Setenv("TEST_PORT_TOO_BIG", "70000")
	t.Setenv("TEST_PORT_NEGATIVE", "-1")

	assert.Equal(t, 9000, GetEnvPort("TEST_PORT", 8000))
	assert.Equal(t, 8000, GetEnvPort("TEST_PORT_TOO_BIG", 8000))
	assert.Equal(t, 8000, GetEnvPort("TEST_PORT_NEGATIVE", 8000))
	assert.Equal(t, 8000, GetEnvPort("TEST_PORT_MISSING", 8000))
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENVIRONMENT", "prod")
	assert.True(t, IsProduction())

	t.Setenv("ENVIRONMENT", "development")
	assert.False(t, IsProduction())
}

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	assert.Len(t, id, 16)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateRequestID()] = true
	}
	assert.Len(t, seen, 100)
}

func TestGenerateCorrelationID(t *testing.T) {
	id := GenerateCorrelationID()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, parsed.String())
}
