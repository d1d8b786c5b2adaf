package worker

import "time"

// Job names used as metric labels
const (
	JobNameRolloverSweep  = "rollover_sweep"
	JobNameWeeklyRollover = "weekly_rollover"
)

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 5 * time.Minute

// earlyFireTolerance is how early a timer may fire before it is rescheduled instead of run
const earlyFireTolerance = 10 * time.Second

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgQueueFull       = "Worker queue full, dropping job"
)

// ============================================================================
// Log Messages - Rollover
// ============================================================================

// Log messages for rollover sweeps
const (
	LogMsgSweepStarting        = "Rollover sweep starting"
	LogMsgSweepCompleted       = "Rollover sweep completed"
	LogMsgSweepUserFailed      = "Rollover sweep failed for user"
	LogMsgWeeklyRolloverNext   = "Next weekly rollover scheduled"
	LogMsgWeeklyRolloverEarly  = "Weekly rollover timer fired early, rescheduling"
	LogMsgWeeklyRolloverFailed = "Weekly rollover failed"
)

// Error messages
const (
	ErrMsgListUsersFailed = "failed to list users"
	ErrMsgSweepFailed     = "rollover failed for %d of %d users"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
