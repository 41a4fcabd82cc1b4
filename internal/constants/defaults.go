// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the
// application. These constants provide sensible defaults for configuration
// settings and establish boundaries for resource usage.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultServerHost is the default HTTP server bind address.
	DefaultServerHost = "0.0.0.0"

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultAppName is the application name used in logs.
	DefaultAppName = "legal-ai-pipeline"
)

// Environment Names identify the supported runtime environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Upload Limits bound resource usage for document ingestion.
const (
	// MaxUploadSizeBytes is the largest accepted document upload.
	MaxUploadSizeBytes = 50 << 20 // 50 MiB

	// MaxFileNameLength bounds the declared file name. The name is a weak
	// heuristic signal only and is never trusted for security decisions.
	MaxFileNameLength = 255
)

// Fallback Rendering Limits control the synthesized redacted document.
const (
	// FallbackLinesPerPage is the line budget before the synthesized rendering
	// paginates onto a new page.
	FallbackLinesPerPage = 54

	// FallbackLineWidth is the character budget per rendered line.
	FallbackLineWidth = 92
)
