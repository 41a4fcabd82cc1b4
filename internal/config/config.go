package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App      AppSettings      `yaml:"app"`
	Server   ServerSettings   `yaml:"server"`
	Logging  LoggingSettings  `yaml:"logging"`
	CORS     CORSSettings     `yaml:"cors"`
	Security SecuritySettings `yaml:"security"`
	Pipeline PipelineSettings `yaml:"pipeline"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV" validate:"omitempty,oneof=development production testing"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT" validate:"omitempty,min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=trace debug info warn error fatal"`
	Format     string `yaml:"format" env:"LOG_FORMAT" validate:"omitempty,oneof=json console"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// SecuritySettings contains document encryption configuration.
//
// EncryptionKey is the single configuration secret consumed by the pipeline.
// When it is empty, the encryption service generates an ephemeral random key and
// warns loudly: encrypted data is then unrecoverable across restarts. That is an
// operational hazard, acceptable only for development.
type SecuritySettings struct {
	EncryptionKey string `yaml:"encryption_key" env:"DOCUMENT_ENCRYPTION_KEY"`
}

// PipelineSettings contains document processing configuration.
type PipelineSettings struct {
	// StrategyTimeout bounds a single extraction strategy run.
	StrategyTimeout time.Duration `yaml:"strategy_timeout" env:"PIPELINE_STRATEGY_TIMEOUT"`

	// IncludeLegalPatterns enables the legal-document pattern set (A-numbers,
	// case numbers, docket numbers) in addition to the core PII categories.
	IncludeLegalPatterns bool `yaml:"include_legal_patterns" env:"PIPELINE_LEGAL_PATTERNS"`
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		err = yaml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	// Set defaults for missing values
	setDefaults(config)

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Save the configuration globally
	cfg = config

	// Log the configuration (but hide sensitive values)
	logConfig(config)

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}

	// Server defaults
	if config.Server.Host == "" {
		config.Server.Host = constants.DefaultServerHost
	}
	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// Pipeline defaults
	if config.Pipeline.StrategyTimeout == 0 {
		config.Pipeline.StrategyTimeout = constants.StrategyTimeout
	}
}

// validateConfig checks the configuration for invalid values using struct tags.
func validateConfig(config *AppConfig) error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, fieldErr.Namespace())
			}
			return fmt.Errorf("invalid configuration fields: %s", strings.Join(fields, ", "))
		}
		return err
	}

	// Production must not run on an ephemeral encryption key
	if config.App.IsProduction() && config.Security.EncryptionKey == "" {
		log.Warn().
			Str("env_var", constants.EnvEncryptionKey).
			Msg("No encryption key configured in production; an ephemeral key will be generated and encrypted data will be UNRECOVERABLE after restart")
	}

	return nil
}

// logConfig logs the loaded configuration with sensitive values masked.
func logConfig(config *AppConfig) {
	keyState := "configured"
	if config.Security.EncryptionKey == "" {
		keyState = "absent"
	}

	log.Info().
		Str("environment", config.App.Environment).
		Str("server", config.Server.ServerAddress()).
		Str("log_level", config.Logging.Level).
		Str("encryption_key", keyState).
		Bool("legal_patterns", config.Pipeline.IncludeLegalPatterns).
		Msg("Configuration loaded")
}
