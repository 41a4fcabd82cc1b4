package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Pipeline Timeouts
const (
	// StrategyTimeout bounds a single extraction strategy. A timeout is treated
	// as strategy failure: the chain continues with the next strategy.
	StrategyTimeout = 20 * time.Second

	// PipelineTimeout bounds one document's full pipeline run.
	PipelineTimeout = 2 * time.Minute
)

// Operation Durations
const (
	CACHEControlMaxAge = 300 // in seconds

	// JobMaintenanceInterval is how often completed jobs are swept.
	JobMaintenanceInterval = 15 * time.Minute

	// JobRetention is how long finished jobs and their artifacts are kept
	// before the maintenance sweep removes them.
	JobRetention = 24 * time.Hour

	// UploadRateLimit and UploadRateWindow bound uploads per client IP.
	UploadRateLimit  = 30
	UploadRateWindow = time.Minute
)
