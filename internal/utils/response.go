// Package utils provides utility functions and helpers for the application.
// This file implements a standardized API response system that ensures
// consistent response formats across all API endpoints.
//
// The response system includes:
//   - A standard Response structure for all API responses
//   - Convenience functions for common response types (success, error, file)
//   - Secure defaults for served document artifacts (no-store caching)
//
// This ensures that all API responses follow the same format, making it easier
// for clients to parse and handle responses predictably.
package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// Response represents a standardized API response.
// All API endpoints return responses in this format for consistency.
type Response struct {
	Success bool        `json:"success"`         // Whether the request was successful
	Data    interface{} `json:"data,omitempty"`  // The response data (omitted for error responses)
	Error   *ErrorInfo  `json:"error,omitempty"` // Error information (omitted for successful responses)
}

// ErrorInfo represents error information in the response.
// This provides structured error information to clients.
type ErrorInfo struct {
	Code    string            `json:"code"`              // A machine-readable error code
	Message string            `json:"message"`           // A human-readable error message
	Details map[string]string `json:"details,omitempty"` // Additional details about the error
}

// JSON sends a JSON response with the given status code and data.
// This is the primary function for sending successful responses.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	}

	SendJSON(w, statusCode, response)
}

// SendJSON marshals and writes the given response with the given status code.
func SendJSON(w http.ResponseWriter, statusCode int, response Response) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// Error sends an error response with the given status code and error information.
// This is the primary function for sending error responses.
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	response := Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	SendJSON(w, statusCode, response)
}

// ErrorFromAppError sends an error response based on an AppError.
// This provides a convenient way to convert application errors to API responses.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	// Extract a machine-readable code from the underlying error
	errCode := "internal_error"
	switch err.Err {
	case ErrNotFound:
		errCode = "not_found"
	case ErrBadRequest:
		errCode = "bad_request"
	case ErrValidation:
		errCode = "validation_error"
	case ErrExtractionExhausted:
		errCode = "content_unavailable"
	case ErrIntegrityMismatch:
		errCode = "integrity_mismatch"
	case ErrVisualRedaction:
		errCode = "redaction_failed"
	}

	// Create error details if field is present
	var details map[string]string
	if err.Field != "" {
		details = map[string]string{
			err.Field: err.Message,
		}
	}

	Error(w, err.StatusCode, errCode, err.Message, details)
}

// BadRequest sends a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	Error(w, http.StatusBadRequest, "bad_request", message, details)
}

// NotFound sends a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, "not_found", message, nil)
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// PDFFile serves PDF bytes as a downloadable attachment with no-store caching.
// Redacted document artifacts are sensitive; intermediaries must not cache them.
func PDFFile(w http.ResponseWriter, content []byte, filename string) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		filename += ".pdf"
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypePDF)
	w.Header().Set(constants.HeaderCacheControl, constants.CacheControlNoStore)
	w.Header().Set(constants.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s",
			filename,
			url.PathEscape(filename)))

	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(content); err != nil {
		log.Error().Err(err).Msg("Failed to write PDF response")
	}
}
