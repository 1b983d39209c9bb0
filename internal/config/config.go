package config

import (
	"time"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/utils"
)

// Service identity
const (
	ServiceName    = "GREENLOGISTICS AI API"
	ServiceVersion = "3.0.0"
)

// APIKeyPlaceholder is the well-known placeholder value shipped in example
// env files. A key equal to it is treated the same as no key at all.
const APIKeyPlaceholder = "sk-ant-tu_clave_aqui"

// Config is the complete application configuration, read once at startup
// and passed by injection. It is immutable after Load.
type Config struct {
	Server    ServerConfig
	Anthropic AnthropicConfig
	Audit     AuditConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host           string        `validate:"required"`
	Port           int           `validate:"required,min=1,max=65535"`
	ReadTimeout    time.Duration `validate:"required"`
	WriteTimeout   time.Duration `validate:"required"`
	IdleTimeout    time.Duration `validate:"required"`
	MaxUploadBytes int64         `validate:"required,min=1"`
}

// AnthropicConfig holds the external language-model service configuration
type AnthropicConfig struct {
	APIKey      string
	BaseURL     string        `validate:"required,url"`
	Model       string        `validate:"required"`
	MaxTokens   int           `validate:"required,min=1"`
	Temperature float64       `validate:"min=0,max=1"`
	Timeout     time.Duration `validate:"required"`
}

// AuditConfig holds the optional request-audit store configuration
type AuditConfig struct {
	MongoURI     string
	DatabaseName string
	Collection   string
}

// Configured reports whether a usable API key is present. Placeholder
// values switch the dispatcher into demo mode.
func (c AnthropicConfig) Configured() bool {
	return c.APIKey != "" && c.APIKey != APIKeyPlaceholder
}

// Enabled reports whether audit logging is configured
func (c AuditConfig) Enabled() bool {
	return c.MongoURI != ""
}

// Load builds the configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           utils.GetEnvString("HOST", "0.0.0.0"),
			Port:           utils.GetEnvPort("PORT", 8000),
			ReadTimeout:    utils.GetEnvDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   utils.GetEnvDuration("WRITE_TIMEOUT", 120*time.Second),
			IdleTimeout:    utils.GetEnvDuration("IDLE_TIMEOUT", 60*time.Second),
			MaxUploadBytes: utils.GetEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		},
		Anthropic: AnthropicConfig{
			APIKey:      utils.GetEnvString("ANTHROPIC_API_KEY", ""),
			BaseURL:     utils.GetEnvString("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
			Model:       utils.GetEnvString("ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
			MaxTokens:   utils.GetEnvInt("ANTHROPIC_MAX_TOKENS", 2000),
			Temperature: utils.GetEnvFloat64("ANTHROPIC_TEMPERATURE", 0.1),
			Timeout:     utils.GetEnvDuration("ANTHROPIC_TIMEOUT", 120*time.Second),
		},
		Audit: AuditConfig{
			MongoURI:     utils.GetEnvString("MONGODB_URI", ""),
			DatabaseName: utils.GetEnvString("MONGODB_DATABASE", "greenlogistics"),
			Collection:   utils.GetEnvString("MONGODB_COLLECTION", "analysis_requests"),
		},
	}
}
