package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Languages the analysis can be produced in. ES is the default when the
// client does not specify one.
const DefaultLanguage = "ES"

var supportedLanguages = []string{"ES", "EN", "FR", "DE"}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks the configuration for structural problems that would
// prevent the service from starting.
func (c *Config) Validate() error {
	if err := validate.Struct(c.Server); err != nil {
		return fmt.Errorf("server configuration invalid: %w", err)
	}
	if err := validate.Struct(c.Anthropic); err != nil {
		return fmt.Errorf("anthropic configuration invalid: %w", err)
	}
	return nil
}

// languageField mirrors the analyze form's language parameter for
// struct-tag validation.
type languageField struct {
	Language string `validate:"required,oneof=ES EN FR DE"`
}

// NormalizeLanguage uppercases and validates a requested output language.
// Empty input falls back to the default.
func NormalizeLanguage(language string) (string, error) {
	if strings.TrimSpace(language) == "" {
		return DefaultLanguage, nil
	}

	normalized := strings.ToUpper(strings.TrimSpace(language))
	if err := validate.Struct(languageField{Language: normalized}); err != nil {
		return "", fmt.Errorf("unsupported language %q: must be one of %s",
			language, strings.Join(supportedLanguages, ", "))
	}

	return normalized, nil
}

// SupportedLanguages returns the languages the dispatcher accepts
func SupportedLanguages() []string {
	out := make([]string, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}
