// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines HTTP-related constants such as headers and content
// types. These constants ensure consistent HTTP communication patterns across the
// application. The security header values implement recommended web security
// best practices.
package constants

// HTTP Headers define standard and security-related HTTP header names.
const (
	// HeaderContentType specifies the media type of the resource.
	HeaderContentType = "Content-Type"

	// HeaderContentDisposition controls download behavior for served artifacts.
	HeaderContentDisposition = "Content-Disposition"

	// HeaderXContentTypeOptions prevents MIME type sniffing.
	HeaderXContentTypeOptions = "X-Content-Type-Options"

	// HeaderXFrameOptions prevents clickjacking by controlling frame embedding.
	HeaderXFrameOptions = "X-Frame-Options"

	// HeaderXSSProtection enables browser XSS filtering.
	HeaderXSSProtection = "X-XSS-Protection"

	// HeaderCacheControl controls caching behavior.
	HeaderCacheControl = "Cache-Control"

	// HeaderRequestID carries the request correlation identifier.
	HeaderRequestID = "X-Request-ID"
)

// Header Values define standard values for HTTP headers.
const (
	// ContentTypeJSON indicates JSON-formatted content.
	ContentTypeJSON = "application/json"

	// ContentTypePDF indicates a PDF document artifact.
	ContentTypePDF = "application/pdf"

	// XContentTypeOptionsValue prevents MIME type sniffing.
	XContentTypeOptionsValue = "nosniff"

	// XFrameOptionsValue prevents the page from being framed.
	XFrameOptionsValue = "DENY"

	// XSSProtectionValue enables XSS filtering with blocking mode.
	XSSProtectionValue = "1; mode=block"

	// CacheControlNoStore disables caching for sensitive responses.
	CacheControlNoStore = "no-store"
)
