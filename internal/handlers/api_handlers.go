package handlers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/analyzer"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/audit"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/config"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/errors"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/ingest"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/logger"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/monitoring"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/utils"
)

// APIHandlers contains the dependencies needed by the HTTP handlers
type APIHandlers struct {
	Config   *config.Config
	Analyzer *analyzer.Analyzer
	Audit    *audit.Store
}

// NewAPIHandlers creates handlers with the given dependencies
func NewAPIHandlers(cfg *config.Config, an *analyzer.Analyzer, auditStore *audit.Store) *APIHandlers {
	return &APIHandlers{
		Config:   cfg,
		Analyzer: an,
		Audit:    auditStore,
	}
}

// ServiceInfo describes the service and its endpoints
type ServiceInfo struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthStatus is the health check response body
type HealthStatus struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Timestamp   string `json:"timestamp"`
	AIAvailable bool   `json:"ai_available"`
}

// RootHandler returns the service descriptor
//
//	@Summary		Service information
//	@Description	Returns the service name, version and available endpoints
//	@Tags			info
//	@Produce		json
//	@Success		200	{object}	ServiceInfo
//	@Router			/ [get]
func (h *APIHandlers) RootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		errors.HandleAPIError(w, errors.NewNotFoundError("Not Found"))
		return
	}

	writeJSON(r, w, http.StatusOK, ServiceInfo{
		Service: config.ServiceName,
		Version: config.ServiceVersion,
		Status:  "operational",
		Endpoints: map[string]string{
			"health":  "/api/health",
			"analyze": "/api/analyze",
			"docs":    "/swagger/index.html",
		},
	})
}

// HealthHandler returns the service health
//
//	@Summary		Health check
//	@Description	Returns service health and whether the AI backend is configured
//	@Tags			info
//	@Produce		json
//	@Success		200	{object}	HealthStatus
//	@Router			/api/health [get]
func (h *APIHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r, w, http.StatusOK, HealthStatus{
		Status:      "healthy",
		Service:     config.ServiceName,
		Version:     config.ServiceVersion,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		AIAvailable: h.Analyzer.Available(),
	})
}

// AnalyzeHandler runs a strategic analysis over an uploaded document or raw text
//
//	@Summary		Analyze a logistics document
//	@Description	Accepts a file upload or raw text, extracts its content and returns a structured strategic analysis
//	@Tags			analysis
//	@Accept			mpfd
//	@Produce		json
//	@Param			file		formData	file	false	"Document to analyze (PDF or plain text)"
//	@Param			text		formData	string	false	"Raw text to analyze when no file is provided"
//	@Param			language	formData	string	false	"Response language (ES, EN, FR, DE)"	default(ES)
//	@Success		200	{object}	analyzer.Result
//	@Failure		400	{object}	errors.ErrorResponse
//	@Failure		502	{object}	errors.ErrorResponse
//	@Router			/api/analyze [post]
func (h *APIHandlers) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errors.HandleError(w, errors.NewAPIError(errors.ErrorTypeValidation, "Method not allowed"), http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	start := time.Now()

	file, filename, apiErr := parseAnalyzeForm(w, r, h.Config.Server.MaxUploadBytes)
	if apiErr != nil {
		h.failAnalyze(r, w, apiErr, "", start)
		return
	}
	if file != nil {
		defer file.Close()
	}

	language, err := config.NormalizeLanguage(r.FormValue("language"))
	if err != nil {
		h.failAnalyze(r, w, errors.NewValidationError(err.Error()), "", start)
		return
	}

	input := ingest.Input{Text: r.FormValue("text"), Filename: filename}
	if file != nil {
		input.File = file
	}

	text, apiErr := ingest.Document(ctx, input)
	if apiErr != nil {
		h.failAnalyze(r, w, apiErr, language, start)
		return
	}

	result, apiErr := h.Analyzer.Analyze(ctx, text, language)
	if apiErr != nil {
		h.failAnalyze(r, w, apiErr, language, start)
		return
	}

	monitoring.GetMetrics().RecordAnalysis(result.Metadata.Mode, language)
	h.recordAudit(ctx, r, audit.Entry{
		Mode:       result.Metadata.Mode,
		Language:   language,
		CharCount:  result.Metadata.CharCount,
		StatusCode: http.StatusOK,
		DurationMs: time.Since(start).Milliseconds(),
	})

	logger.Info(ctx, "Analysis completed",
		"component", "AnalyzeHandler",
		"stage", "AnalysisCompleted",
		"mode", result.Metadata.Mode,
		"language", language,
		"char_count", result.Metadata.CharCount,
	)

	writeJSON(r, w, http.StatusOK, result)
}

// parseAnalyzeForm reads the request body as multipart or url-encoded form
// data and returns the uploaded file, if any.
func parseAnalyzeForm(w http.ResponseWriter, r *http.Request, maxUploadBytes int64) (multipart.File, string, *errors.APIError) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if err == http.ErrNotMultipart {
			// Plain form-encoded text submissions are accepted too
			if err := r.ParseForm(); err != nil {
				return nil, "", errors.NewValidationError("Invalid form data: " + err.Error())
			}
			return nil, "", nil
		}
		return nil, "", errors.NewValidationError("Invalid request body: " + err.Error())
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, "", nil
		}
		return nil, "", errors.NewValidationError("Invalid file upload: " + err.Error())
	}
	return file, header.Filename, nil
}

// failAnalyze records metrics and audit for a failed analysis and writes the error
func (h *APIHandlers) failAnalyze(r *http.Request, w http.ResponseWriter, apiErr *errors.APIError, language string, start time.Time) {
	ctx := r.Context()

	logger.Error(ctx, "Analysis request failed", apiErr,
		"component", "AnalyzeHandler",
		"stage", "AnalysisFailed",
		"error_type", string(apiErr.Type),
	)

	h.recordAudit(ctx, r, audit.Entry{
		Mode:       "",
		Language:   language,
		StatusCode: errors.StatusCode(apiErr.Type),
		ErrorType:  string(apiErr.Type),
		DurationMs: time.Since(start).Milliseconds(),
	})

	errors.HandleAPIError(w, apiErr)
}

func (h *APIHandlers) recordAudit(ctx context.Context, r *http.Request, entry audit.Entry) {
	if h.Audit == nil {
		return
	}
	entry.RequestID = logger.RequestIDFromContext(ctx)
	entry.Endpoint = r.URL.Path
	h.Audit.Record(ctx, entry)
}

// writeJSON marshals v and writes it with the given status code
func writeJSON(r *http.Request, w http.ResponseWriter, statusCode int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error(r.Context(), "Failed to marshal response", err, "component", "Handlers")
		errors.HandleError(w, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set(utils.HeaderContentType, utils.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if _, err := w.Write(data); err != nil {
		logger.Error(r.Context(), "Failed to write response", err, "component", "Handlers")
	}
}
