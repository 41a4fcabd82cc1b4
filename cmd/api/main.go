// Package main is the entry point for the document pipeline API server,
// which provides secure backend services for the legal AI dashboard. The
// server ingests uploaded documents, extracts and redacts their text,
// produces visually redacted renditions, and stores every artifact encrypted
// at rest.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/config"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/server"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

// Version information is set during build time through linker flags.
// These variables provide runtime access to build metadata.
var (
	// version represents the release version of the application.
	version = "dev"

	// commit is the git commit hash from which the application was built.
	commit = "none"

	// buildDate is the timestamp when the application was built.
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
// This function executes before main() and sets up initial environment.
func init() {
	// Load .env file if it exists. Not finding a .env file is a non-fatal
	// condition, as configuration might be provided by other means.
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found or couldn't be loaded")
	}
}

// main is the entry point for the application. It initializes configuration,
// sets up logging, creates and starts the server, and handles graceful shutdown.
func main() {
	var (
		configPath  string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Document Pipeline API Server\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Initialize zerolog with Unix timestamp format before configuration is
	// available
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Override version from build if available (not in dev mode)
	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)

	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("Starting document pipeline API server")

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	// Start the server and handle any errors.
	// This is a blocking call that runs until termination.
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
