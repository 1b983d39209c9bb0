package errors

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/logger"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeDocumentRead ErrorType = "document_read_error"
	ErrorTypeUpstream     ErrorType = "upstream_error"
	ErrorTypeNotFound     ErrorType = "not_found_error"
	ErrorTypeInternal     ErrorType = "internal_error"
)

// APIError represents a structured API error
type APIError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    string    `json:"code,omitempty"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// ErrorResponse is the JSON error envelope. Detail carries the
// human-readable description clients key on.
type ErrorResponse struct {
	Detail string   `json:"detail"`
	Error  APIError `json:"error"`
}

// NewAPIError creates a new APIError
func NewAPIError(errorType ErrorType, message string) *APIError {
	return &APIError{
		Type:    errorType,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(errorType ErrorType, message, details string) *APIError {
	return &APIError{
		Type:    errorType,
		Message: message,
		Details: details,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *APIError {
	return NewAPIError(ErrorTypeValidation, message)
}

// NewDocumentReadError creates a document read error
func NewDocumentReadError(message string) *APIError {
	return NewAPIError(ErrorTypeDocumentRead, message)
}

// NewUpstreamError creates an upstream service error
func NewUpstreamError(message string) *APIError {
	return NewAPIError(ErrorTypeUpstream, message)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *APIError {
	return NewAPIError(ErrorTypeNotFound, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, message)
}

// StatusCode returns the HTTP status code for an error type
func StatusCode(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeValidation, ErrorTypeDocumentRead:
		return http.StatusBadRequest
	case ErrorTypeUpstream:
		return http.StatusBadGateway
	case ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes a standardized error response to the HTTP response writer
func HandleError(w http.ResponseWriter, err error, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	var apiError *APIError

	// Check if it's already an APIError
	if ae, ok := err.(*APIError); ok {
		apiError = ae
	} else {
		// Convert regular error to APIError
		apiError = inferErrorType(err, statusCode)
	}

	response := ErrorResponse{Detail: apiError.Message, Error: *apiError}

	if jsonBytes, jsonErr := json.Marshal(response); jsonErr == nil {
		w.Write(jsonBytes)
	} else {
		// Fallback if JSON marshaling fails
		logger.Error(context.Background(), "Error marshaling error response", jsonErr)
		w.Write([]byte(`{"detail":"Internal server error","error":{"type":"internal_error","message":"Internal server error"}}`))
	}

	logger.Error(context.Background(), "API error",
		nil,
		"status_code", statusCode,
		"error_type", string(apiError.Type),
		"message", apiError.Message,
	)
}

// HandleAPIError writes an APIError using the status code implied by its type
func HandleAPIError(w http.ResponseWriter, err *APIError) {
	HandleError(w, err, StatusCode(err.Type))
}

// inferErrorType attempts to infer the error type based on the status code
func inferErrorType(err error, statusCode int) *APIError {
	message := err.Error()

	switch statusCode {
	case http.StatusBadRequest:
		return NewAPIError(ErrorTypeValidation, message)
	case http.StatusNotFound:
		return NewAPIError(ErrorTypeNotFound, message)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return NewAPIError(ErrorTypeUpstream, message)
	default:
		return NewAPIError(ErrorTypeInternal, message)
	}
}
