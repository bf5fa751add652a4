package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgPoolQueueFull   = "Worker pool queue full, job rejected"
)

// ============================================================================
// Log Messages - Rollover Worker
// ============================================================================

// Log messages for rollover worker operations
const (
	LogMsgRolloverScheduled    = "Rollover worker scheduled"
	LogMsgRolloverAdvanced     = "Season advanced to a new period"
	LogMsgRolloverFailed       = "Season rollover failed"
	LogMsgRolloverShuttingDown = "Shutting down rollover worker"
	LogMsgRolloverStopped      = "Rollover worker shutdown complete"
	LogMsgRolloverStopTimeout  = "Rollover worker shutdown timeout"
)

// Error messages
const (
	ErrMsgInvalidSchedule = "invalid rollover schedule"
	ErrMsgAlreadyStarted  = "rollover worker already started"
)

// RolloverTimeout bounds a single scheduled rollover, including any settlement it triggers
const RolloverTimeout = 30 * time.Second

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
