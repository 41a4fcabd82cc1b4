// Package server provides the HTTP server for the document ingestion
// pipeline. It handles routing, middleware configuration, and server
// lifecycle management.
//
// The server package follows a structured initialization approach with
// dependency injection and proper lifecycle management: storage → security →
// pipeline stages → service → handlers → routes. It handles graceful
// shutdown and periodic artifact retention sweeps.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/config"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/extraction"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/handlers"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/middleware"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/redaction"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/security"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/service"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/storage"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/visual"
)

// Handlers contains all HTTP handlers for the application.
// It centralizes handler management for consistent request processing
// and simplifies dependency injection throughout the application.
type Handlers struct {
	// PipelineHandler manages document upload, status, and artifact endpoints
	PipelineHandler *handlers.PipelineHandler
}

// Server represents the API server for the document pipeline.
// It encapsulates all server components and handles server lifecycle
// management, including initialization, startup, and graceful shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Store holds processing jobs and their encrypted artifacts
	Store storage.ArtifactStore

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// pipeline orchestrates document processing
	pipeline *service.PipelineService

	// crypto encrypts artifacts at rest
	crypto *security.Service

	// rateLimiter bounds request rates per client IP
	rateLimiter *middleware.RateLimiter

	// httpServer is the underlying HTTP server
	httpServer *http.Server
}

// NewServer creates a new server instance with all required components.
//
// Parameters:
//   - cfg: Application configuration including server and security settings
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if initialization of any component fails
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupStorage(); err != nil {
		return nil, fmt.Errorf("failed to set up storage: %w", err)
	}

	if err := s.setupSecurity(); err != nil {
		return nil, fmt.Errorf("failed to set up security: %w", err)
	}

	if err := s.setupServices(); err != nil {
		return nil, fmt.Errorf("failed to set up services: %w", err)
	}

	if err := s.setupHandlers(); err != nil {
		return nil, fmt.Errorf("failed to set up handlers: %w", err)
	}

	s.rateLimiter = middleware.NewRateLimiter(constants.UploadRateLimit, constants.UploadRateWindow)

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupStorage initializes the artifact store.
//
// The bundled store is in-memory; jobs and artifacts live for the server
// process and are swept by the retention maintenance task.
func (s *Server) setupStorage() error {
	s.Store = storage.NewMemoryStore()
	return nil
}

// setupSecurity initializes the encryption service from the configured key.
// A missing key is tolerated but loudly logged inside the service; artifacts
// encrypted under an ephemeral key do not survive a restart.
func (s *Server) setupSecurity() error {
	crypto, err := security.NewService(s.Config.Security.EncryptionKey)
	if err != nil {
		return err
	}
	s.crypto = crypto
	return nil
}

// setupServices initializes the pipeline service with its stage
// collaborators: the extraction chain, the text redactor, and the visual
// redactor.
func (s *Server) setupServices() error {
	if s.Store == nil || s.crypto == nil {
		return fmt.Errorf("storage and security must be initialized first")
	}

	chain := extraction.NewDefaultChain().
		WithStrategyTimeout(s.Config.Pipeline.StrategyTimeout)
	redactor := redaction.NewRedactor(redaction.Options{
		IncludeLegal: s.Config.Pipeline.IncludeLegalPatterns,
	})
	visualizer := visual.NewRedactor()

	s.pipeline = service.NewPipelineService(
		chain,
		redactor,
		visualizer,
		s.crypto,
		s.Store,
		constants.PipelineTimeout,
	)

	return nil
}

// setupHandlers initializes all HTTP request handlers.
func (s *Server) setupHandlers() error {
	if s.pipeline == nil {
		return fmt.Errorf("pipeline service not initialized")
	}

	s.Handlers = &Handlers{
		PipelineHandler: handlers.NewPipelineHandler(s.pipeline),
	}

	return nil
}

// Start starts the HTTP server and sets up signal handling for graceful
// shutdown. It runs in a blocking mode, waiting for either server errors or
// shutdown signals.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	s.SetupMaintenanceTasks()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, completing in-flight requests
// before stopping.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	return nil
}

// SetupMaintenanceTasks sets up periodic maintenance tasks for the server.
// A background sweep removes finished jobs and their encrypted artifacts once
// they exceed the retention window.
func (s *Server) SetupMaintenanceTasks() {
	ticker := time.NewTicker(constants.JobMaintenanceInterval)
	go func() {
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)

			if count, err := s.pipeline.PurgeExpired(ctx); err != nil {
				log.Error().Err(err).Msg("Failed to purge expired jobs")
			} else if count > 0 {
				log.Info().Int("count", count).Msg("Purged expired jobs")
			}

			cancel()
		}
	}()
}
