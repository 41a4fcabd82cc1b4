// Package constants provides shared constant values used throughout the application.
//
// The routes_const.go file defines the URL structure of the ingestion API. These
// constants keep route definitions and handler lookups in sync.
package constants

// Base Routes define the root URL paths for different parts of the API.
const (
	// APIBasePath is the root path prefix for all API endpoints.
	APIBasePath = "/api"

	// HealthPath is the endpoint for health checks and system status.
	HealthPath = "/health"

	// VersionPath is the endpoint for build and version information.
	VersionPath = "/version"
)

// URL Parameters define path parameter names used in route definitions.
const (
	// ParamJobID is the URL parameter for processing job identifiers.
	ParamJobID = "jobID"
)

// Upload Form Fields
const (
	// UploadFileField is the multipart form field carrying the document bytes.
	UploadFileField = "file"
)
