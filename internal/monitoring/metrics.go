package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"strconv"
	"sync"
	"time"
)

// Metrics holds application metrics
type Metrics struct {
	mu                    sync.RWMutex
	RequestCount          int64
	RequestDuration       time.Duration
	ErrorCount            int64
	AnalysisModeCounts    map[string]int64
	AnalysisLanguageCount map[string]int64
	StatusCodeCounts      map[int]int64
	StartTime             time.Time
}

// Global metrics instance
var globalMetrics = newMetrics()

func newMetrics() *Metrics {
	return &Metrics{
		AnalysisModeCounts:    make(map[string]int64),
		AnalysisLanguageCount: make(map[string]int64),
		StatusCodeCounts:      make(map[int]int64),
		StartTime:             time.Now(),
	}
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records a request with its duration and status
func (m *Metrics) RecordRequest(duration time.Duration, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount++
	m.RequestDuration += duration
	m.StatusCodeCounts[statusCode]++

	if statusCode >= 400 {
		m.ErrorCount++
	}
}

// RecordAnalysis records a completed analysis by mode and language
func (m *Metrics) RecordAnalysis(mode, language string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mode != "" {
		m.AnalysisModeCounts[mode]++
	}
	if language != "" {
		m.AnalysisLanguageCount[language]++
	}
}

// GetStats returns current statistics
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uptime := time.Since(m.StartTime)
	avgDuration := time.Duration(0)
	errorRate := float64(0)
	if m.RequestCount > 0 {
		avgDuration = m.RequestDuration / time.Duration(m.RequestCount)
		errorRate = float64(m.ErrorCount) / float64(m.RequestCount)
	}

	// Copy maps to avoid race conditions
	modeCounts := make(map[string]int64, len(m.AnalysisModeCounts))
	for k, v := range m.AnalysisModeCounts {
		modeCounts[k] = v
	}

	languageCounts := make(map[string]int64, len(m.AnalysisLanguageCount))
	for k, v := range m.AnalysisLanguageCount {
		languageCounts[k] = v
	}

	statusCounts := make(map[string]int64, len(m.StatusCodeCounts))
	for k, v := range m.StatusCodeCounts {
		statusCounts[strconv.Itoa(k)] = v
	}

	return map[string]interface{}{
		"uptime_seconds":       uptime.Seconds(),
		"total_requests":       m.RequestCount,
		"total_errors":         m.ErrorCount,
		"average_duration_ms":  avgDuration.Milliseconds(),
		"error_rate":           errorRate,
		"analyses_by_mode":     modeCounts,
		"analyses_by_language": languageCounts,
		"status_code_counts":   statusCounts,
		"start_time":           m.StartTime.Format(time.RFC3339),
	}
}

// Reset resets all metrics (useful for testing)
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount = 0
	m.RequestDuration = 0
	m.ErrorCount = 0
	m.AnalysisModeCounts = make(map[string]int64)
	m.AnalysisLanguageCount = make(map[string]int64)
	m.StatusCodeCounts = make(map[int]int64)
	m.StartTime = time.Now()
}

// MetricsMiddleware wraps HTTP handlers to collect metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapper, r)

		globalMetrics.RecordRequest(time.Since(start), wrapper.statusCode)
	})
}

// responseWriterWrapper wraps http.ResponseWriter to capture status code
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// SetupPprofRoutes adds pprof endpoints to the router
func SetupPprofRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/debug/pprof/heap", pprof.Handler("heap"))
}

// MetricsHandler returns current metrics as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats := globalMetrics.GetStats()

	jsonResp, err := json.Marshal(stats)
	if err != nil {
		http.Error(w, `{"error":"failed to encode metrics"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(jsonResp)
}
