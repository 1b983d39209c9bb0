package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/app"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/config"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/logger"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/middleware"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/router"
)

// @title           GREENLOGISTICS AI API
// @version         3.0.0
// @description     Strategic analysis of logistics documents powered by a language model backend.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /

func main() {
	// Load .env before anything reads the environment
	if err := config.LoadEnvFile(); err != nil {
		_, _ = os.Stderr.WriteString("FATAL: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize structured logging
	if err := logger.InitFromEnv(); err != nil {
		// Can't use logger here as it failed to initialize
		_, _ = os.Stderr.WriteString("FATAL: Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to initialize application", err)
		os.Exit(1)
	}
	defer application.Shutdown(context.Background())

	handler := middleware.CORSMiddleware(
		middleware.RequestCorrelationMiddleware(
			router.SetupRoutes(application),
		),
	)

	addr := fmt.Sprintf("%s:%d", application.Config.Server.Host, application.Config.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  application.Config.Server.ReadTimeout,
		WriteTimeout: application.Config.Server.WriteTimeout,
		IdleTimeout:  application.Config.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(context.Background(), "Server shutdown failed", err)
		}
	}()

	logger.Info(ctx, "Server starting", "address", addr)
	logger.Info(ctx, "Swagger documentation available", "path", "/swagger/index.html")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(context.Background(), "Server failed", err)
		os.Exit(1)
	}

	logger.Info(context.Background(), "Server stopped")
}
