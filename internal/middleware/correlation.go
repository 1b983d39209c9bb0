package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/logger"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/utils"
)

// RequestCorrelationMiddleware assigns each request an id, propagates it
// through the context and response headers, and logs the request lifecycle.
func RequestCorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Client-provided X-Request-ID wins; otherwise generate one
		requestID := r.Header.Get(utils.HeaderRequestID)
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}

		w.Header().Set(utils.HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)

		// Health checks are high-frequency noise; skip their access logs
		if r.URL.Path == "/api/health" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		start := time.Now()

		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		logger.Info(ctx, "Incoming request",
			"component", "Middleware",
			"stage", "RequestReceived",
			"request_method", r.Method,
			"request_endpoint", r.URL.Path,
			"request_user_agent", r.Header.Get(utils.HeaderUserAgent),
			"request_client_ip", clientIP(r),
		)

		next.ServeHTTP(wrapper, r.WithContext(ctx))

		stage := "RequestCompleted"
		if wrapper.statusCode >= 400 {
			stage = "RequestFailed"
		}

		logger.Info(ctx, "Request completed",
			"component", "Middleware",
			"stage", stage,
			"response_status_code", wrapper.statusCode,
			"response_duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// clientIP extracts the client IP with proxy header priority
func clientIP(r *http.Request) string {
	if forwardedFor := r.Header.Get(utils.HeaderXForwardedFor); forwardedFor != "" {
		return strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
	}
	if realIP := r.Header.Get(utils.HeaderXRealIP); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}

// statusRecorder captures the response status code for logging
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
