// Package utils provides utility functions and helpers for the application.
// This file configures the global zerolog logger and provides logging helpers
// that are safe to use with sensitive pipeline data: detected PII values are
// masked before they reach any log sink.
package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/config"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// InitLogger initializes the application logger with the given configuration
func InitLogger(cfg *config.AppConfig) {
	// Set global log level
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		// Default to info level if invalid
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure logger output format
	var output io.Writer = os.Stdout
	if strings.ToLower(cfg.Logging.Format) == "console" && !cfg.App.IsProduction() {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
			NoColor:    false, // Enable colors for development
		}
	}

	// Set global logger
	log.Logger = zerolog.New(output).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Environment).
		Logger()

	log.Info().Msg("Logger initialized")
}

// RequestLogger creates a logger with request-specific context
func RequestLogger(requestID, method, path string) zerolog.Logger {
	return log.With().
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path).
		Logger()
}

// LogHTTPRequest logs an HTTP request with request details
func LogHTTPRequest(requestID, method, path, remoteAddr, userAgent string, statusCode int, latency time.Duration) {
	// Skip high-volume endpoints outside debug mode
	if path == constants.HealthPath || path == constants.VersionPath {
		if zerolog.GlobalLevel() != zerolog.DebugLevel {
			return
		}
	}

	event := log.Debug()

	// Elevate error responses to warning/error level
	if statusCode >= 400 && statusCode < 500 {
		event = log.Warn()
	} else if statusCode >= 500 {
		event = log.Error()
	} else if strings.HasPrefix(path, constants.APIBasePath) {
		// Log API requests at info level
		event = log.Info()
	}

	event.
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path).
		Str("remote_addr", remoteAddr).
		Str("user_agent", userAgent).
		Int("status", statusCode).
		Dur("latency", latency).
		Msg("HTTP Request")
}

// LogError logs an error with context information
func LogError(err error, context map[string]interface{}) {
	event := log.Error().Err(err)

	for key, value := range MaskSensitiveFields(context) {
		switch v := value.(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}

	event.Msg("Error occurred")
}

// LogPanic logs a recovered panic value
func LogPanic(recovered interface{}, stack []byte) {
	log.Error().
		Interface("panic", recovered).
		Str("stack", string(stack)).
		Msg("Panic recovered")
}

// LogRedaction logs the outcome of a redaction pass without the detected values.
// Only category names and counts are logged; original values are masked.
func LogRedaction(jobID, fileName string, categoryCounts map[string]int, totalItems int) {
	log.Info().
		Str(constants.JobIDContextKey, jobID).
		Str("file_name", fileName).
		Interface("categories", categoryCounts).
		Int("items", totalItems).
		Msg("Redaction pass completed")
}

// MaskSensitiveFields returns a copy of the context map with values under
// sensitive keys replaced by the redacted marker. Keys are matched by
// case-insensitive substring so "originalValue", "original_value" and
// "detectedSSN" are all caught.
func MaskSensitiveFields(context map[string]interface{}) map[string]interface{} {
	if context == nil {
		return nil
	}
	masked := make(map[string]interface{}, len(context))
	for key, value := range context {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "original") ||
			strings.Contains(lower, "secret") ||
			strings.Contains(lower, "key") ||
			strings.Contains(lower, "ssn") ||
			strings.Contains(lower, "password") {
			masked[key] = constants.LogRedactedValue
			continue
		}
		masked[key] = value
	}
	return masked
}

// GetLogLevel returns the current global log level as a string
func GetLogLevel() string {
	return zerolog.GlobalLevel().String()
}

// SetLogLevel updates the global log level
func SetLogLevel(level string) error {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}

	zerolog.SetGlobalLevel(parsedLevel)
	log.Info().Str("level", parsedLevel.String()).Msg("Log level changed")

	return nil
}
