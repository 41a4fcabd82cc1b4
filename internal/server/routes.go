// Package server provides the HTTP server for the document ingestion
// pipeline. It handles routing, middleware configuration, and server
// lifecycle management.
//
// The package follows a structured approach to route organization, with
// clear grouping based on functionality and CORS configured to provide
// secure access while enabling legitimate API usage from the dashboard UI.
package server

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/middleware"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

// SetupRoutes configures the routes for the application.
// It creates a router hierarchy with middleware and grouped routes
// according to functionality for organized API structure.
//
// The configured routes include:
// - Health check and version endpoints (unprotected)
// - Document upload and status polling
// - Redacted artifact retrieval (document, transcript, security, redactions)
// - API route documentation
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	allowedOrigins := getAllowedOrigins()

	// Custom CORS middleware that applies to all routes
	r.Use(corsMiddleware(allowedOrigins))

	// Base middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestLogging())

	// Health check and version routes (unprotected)
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"version": s.Config.App.Version,
			})
		})

		r.Get(constants.VersionPath, func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})

		r.Get("/api/routes", s.GetAPIRoutes)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Upload is rate limited per client IP; documents are expensive to
		// process.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.rateLimiter))
			r.Options("/upload", handlePreflight(allowedOrigins))
			r.Post("/upload", s.Handlers.PipelineHandler.UploadDocument)
		})

		r.Get("/status/{jobID}", s.Handlers.PipelineHandler.GetStatus)

		r.Route("/documents/{jobID}", func(r chi.Router) {
			r.Use(chimiddleware.NoCache)

			r.Get("/redacted", s.Handlers.PipelineHandler.GetRedactedDocument)
			r.Get("/transcript", s.Handlers.PipelineHandler.GetRedactedText)
			r.Get("/security", s.Handlers.PipelineHandler.GetSecurityStatus)
			r.Get("/redactions", s.Handlers.PipelineHandler.GetRedactions)
			r.Delete("/", s.Handlers.PipelineHandler.DeleteDocument)
		})
	})

	s.router = r
}

// GetRouter returns the configured router.
//
// This method is primarily used for testing and for
// integrating the router with other components.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// handlePreflight is an explicit handler for OPTIONS preflight requests.
// It properly configures CORS headers for preflight requests to ensure
// cross-origin requests can proceed if the origin is allowed.
func handlePreflight(allowedOrigins []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-ID")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Max-Age", "300")
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// corsMiddleware creates a custom CORS middleware with the specified allowed
// origins. It handles Cross-Origin Resource Sharing so the dashboard UI can
// safely access the API from a different origin.
//
// The middleware checks incoming requests against the allowed origins list,
// adds appropriate CORS headers to responses, and handles OPTIONS preflight
// requests.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			for _, allowedOrigin := range allowedOrigins {
				if allowedOrigin == "*" || allowedOrigin == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")

					if r.Method != "OPTIONS" {
						next.ServeHTTP(w, r)
						return
					}

					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-ID")
					w.Header().Set("Access-Control-Max-Age", "300")

					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			// If origin is not allowed, continue without setting CORS headers
			next.ServeHTTP(w, r)
		})
	}
}

// getAllowedOrigins reads allowed CORS origins from the environment or falls
// back to default values. This provides flexibility to configure allowed
// origins without recompiling the application.
func getAllowedOrigins() []string {
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")

	if allowedOriginsEnv != "" {
		origins := strings.Split(allowedOriginsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		log.Info().Strs("allowed_origins", origins).Msg("Using CORS allowed origins from environment")
		return origins
	}

	defaultOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	log.Info().Strs("allowed_origins", defaultOrigins).Msg("Using default CORS allowed origins")
	return defaultOrigins
}

// GetAPIRoutes returns documentation about all API routes.
// This provides a self-documenting API endpoint that describes the available
// endpoints, their parameters, and their responses.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	// Route documentation is static and safe to cache briefly.
	w.Header().Set(constants.HeaderCacheControl,
		fmt.Sprintf("max-age=%d", constants.CACHEControlMaxAge))

	routes := map[string]interface{}{}

	routes["documents"] = map[string]interface{}{
		"POST /api/upload": map[string]interface{}{
			"description": "Upload a document for redaction processing",
			"headers": map[string]string{
				"Content-Type": "multipart/form-data",
			},
			"form_fields": map[string]string{
				constants.UploadFileField: "The document file (PDF)",
			},
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"id":         "4f6b86f4-7d3e-4f1a-9c51-1f2d3e4a5b6c",
					"file_name":  "i-589-application.pdf",
					"state":      constants.JobStateProcessing,
					"pct":        0,
					"created_at": "2026-01-01T12:00:00Z",
					"updated_at": "2026-01-01T12:00:00Z",
				},
			},
		},
		"GET /api/status/{jobID}": map[string]interface{}{
			"description": "Poll the processing state of an uploaded document",
			"path_params": map[string]string{
				constants.ParamJobID: "UUID of the processing job",
			},
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"id":    "4f6b86f4-7d3e-4f1a-9c51-1f2d3e4a5b6c",
					"state": constants.JobStateDone,
					"pct":   100,
				},
			},
		},
		"GET /api/documents/{jobID}/redacted": map[string]interface{}{
			"description": "Download the visually redacted PDF",
			"response":    "application/pdf attachment",
		},
		"GET /api/documents/{jobID}/transcript": map[string]interface{}{
			"description": "Get the redacted text transcript",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"redacted_text": "Applicant SSN: " + constants.TokenSSN,
				},
			},
		},
		"GET /api/documents/{jobID}/security": map[string]interface{}{
			"description": "Get the security posture of the stored artifacts",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"is_encrypted":         true,
					"integrity_verified":   true,
					"redaction_summary":    map[string]int{constants.CategorySSN: 1},
					"redacted_items_count": 1,
				},
			},
		},
		"GET /api/documents/{jobID}/redactions": map[string]interface{}{
			"description": "List redaction records (category, token, position)",
			"response": map[string]interface{}{
				"success": true,
				"data": []map[string]interface{}{
					{
						"kind":              constants.CategorySSN,
						"replacement_token": constants.TokenSSN,
						"position":          15,
						"length":            11,
					},
				},
			},
		},
		"DELETE /api/documents/{jobID}": map[string]interface{}{
			"description": "Delete a job and its stored artifacts",
			"response": map[string]interface{}{
				"success":     true,
				"status_code": 204,
				"no_content":  true,
			},
		},
	}

	routes["system"] = map[string]interface{}{
		"GET /health": map[string]interface{}{
			"description": "Health check endpoint",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"status":  "healthy",
					"version": "1.0.0",
				},
			},
		},
		"GET /version": map[string]interface{}{
			"description": "Get application version",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"version":     "1.0.0",
					"environment": "production",
				},
			},
		},
		"GET /api/routes": map[string]interface{}{
			"description": "Get comprehensive API route documentation",
			"response": map[string]interface{}{
				"success": true,
				"data":    "This document you're viewing right now",
			},
		},
	}

	utils.JSON(w, http.StatusOK, routes)
}
