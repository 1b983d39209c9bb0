package app

import (
	"context"
	"fmt"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/analyzer"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/audit"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/config"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/handlers"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/httpclient"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/logger"
)

// App holds application-level dependencies, wired once at startup
type App struct {
	Config   *config.Config
	Analyzer *analyzer.Analyzer
	Audit    *audit.Store
	Handlers *handlers.APIHandlers
}

// NewApp creates the application with all its dependencies
func NewApp(ctx context.Context) (*App, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	factory := httpclient.NewFactory(httpclient.Options{Timeout: cfg.Anthropic.Timeout})
	an := analyzer.New(cfg.Anthropic, factory)

	if an.Available() {
		logger.Info(ctx, "AI backend configured",
			"component", "App",
			"model", cfg.Anthropic.Model,
		)
	} else {
		logger.Warn(ctx, "No API key configured, running in demo mode",
			"component", "App",
		)
	}

	auditStore, err := audit.NewStore(cfg.Audit)
	if err != nil {
		// Audit is optional; the service stays up without it
		logger.Error(ctx, "Audit store unavailable, continuing without it", err,
			"component", "App",
		)
		auditStore = nil
	}

	return &App{
		Config:   cfg,
		Analyzer: an,
		Audit:    auditStore,
		Handlers: handlers.NewAPIHandlers(cfg, an, auditStore),
	}, nil
}

// Shutdown releases application resources
func (a *App) Shutdown(ctx context.Context) {
	if a.Audit != nil {
		if err := a.Audit.Close(); err != nil {
			logger.Error(ctx, "Failed to close audit store", err, "component", "App")
		}
	}
}
