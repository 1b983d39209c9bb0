package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/docs"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/app"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/monitoring"
)

// SetupRoutes configures all application routes
func SetupRoutes(application *app.App) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", application.Handlers.RootHandler)
	mux.HandleFunc("/api/health", application.Handlers.HealthHandler)
	mux.HandleFunc("/api/analyze", application.Handlers.AnalyzeHandler)

	mux.HandleFunc("/metrics", monitoring.MetricsHandler)
	monitoring.SetupPprofRoutes(mux)

	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	return monitoring.MetricsMiddleware(mux)
}
