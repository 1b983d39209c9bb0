// Package analyzer dispatches document text to the language-model service
// and shapes the reply into the API's analysis result.
package analyzer

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/anthropic"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/config"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/errors"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/httpclient"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/logger"
)

// Analysis modes
const (
	ModeDemo       = "demo"
	ModeProduction = "production"
)

// Metadata describes how an analysis was produced
type Metadata struct {
	Mode                  string  `json:"mode"`
	Language              string  `json:"language"`
	CharCount             int     `json:"char_count"`
	Model                 string  `json:"model,omitempty"`
	TokensUsed            int     `json:"tokens_used,omitempty"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds,omitempty"`
	Timestamp             string  `json:"timestamp"`
}

// Result is the analysis response body. It is returned directly to the
// client and never stored.
type Result struct {
	Success  bool     `json:"success"`
	Analysis string   `json:"analysis"`
	Metadata Metadata `json:"metadata"`
}

// Analyzer builds the model request and performs the external call or the
// demo fallback. The credential flag is fixed at construction; there is no
// mutable state shared across requests.
type Analyzer struct {
	cfg    config.AnthropicConfig
	client *anthropic.Client
}

// New creates an Analyzer. The Anthropic client is constructed even in
// demo mode; it is simply never called without a configured key.
func New(cfg config.AnthropicConfig, factory *httpclient.Factory) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		client: anthropic.NewClient(cfg, factory),
	}
}

// Available reports whether the external service can be reached, i.e. a
// real credential was configured at startup.
func (a *Analyzer) Available() bool {
	return a.cfg.Configured()
}

// Analyze runs one analysis over the given document text. Missing
// credentials are not an error: the demo fallback always succeeds.
// Failures from the external service surface as upstream errors so
// callers can tell a provider outage from bad input.
func (a *Analyzer) Analyze(ctx context.Context, text, language string) (*Result, *errors.APIError) {
	// Counted in characters, not bytes: the documents are mostly Spanish
	charCount := utf8.RuneCountInString(text)

	if !a.Available() {
		logger.Info(ctx, "Analysis served in demo mode",
			"component", "Analyzer",
			"stage", "Fallback",
			"language", language,
			"char_count", charCount,
		)
		return a.demoResult(charCount, language), nil
	}

	userMessage := fmt.Sprintf("Idioma: %s\n\nDocumento:\n%s", language, text)

	start := time.Now()
	completion, err := a.client.Complete(ctx, config.SystemPrompt, userMessage)
	elapsed := time.Since(start)

	if err != nil {
		if apiErr, ok := err.(*anthropic.APIError); ok {
			logger.Error(ctx, "External analysis service failed", apiErr,
				"component", "Analyzer",
				"stage", "VendorError",
				"status_code", apiErr.StatusCode,
				"error_type", apiErr.Type,
			)
			return nil, errors.NewUpstreamError("AI service error: " + apiErr.Message)
		}
		logger.Error(ctx, "Analysis dispatch failed", err,
			"component", "Analyzer",
			"stage", "Error",
		)
		return nil, errors.NewInternalError("Error: " + err.Error())
	}

	return &Result{
		Success:  true,
		Analysis: completion.Text,
		Metadata: Metadata{
			Mode:                  ModeProduction,
			Language:              language,
			CharCount:             charCount,
			Model:                 completion.Model,
			TokensUsed:            completion.Usage.InputTokens + completion.Usage.OutputTokens,
			ProcessingTimeSeconds: elapsed.Seconds(),
			Timestamp:             time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// demoResult is the deterministic fallback used when no credential is
// configured. It never contacts the external service.
func (a *Analyzer) demoResult(charCount int, language string) *Result {
	return &Result{
		Success:  true,
		Analysis: demoAnalysis(charCount, language),
		Metadata: Metadata{
			Mode:      ModeDemo,
			Language:  language,
			CharCount: charCount,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}
