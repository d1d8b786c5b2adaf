package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new session file
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	// ReadinessStore names the usage store probe on /readyz
	ReadinessStore = "store"
	// ReadinessPostgres names the connection pool probe on /readyz
	ReadinessPostgres = "postgres"
	// ReadinessFavorites names the favorites store probe on /readyz
	ReadinessFavorites = "favorites"

	// FavoritesProbeUser is listed by the favorites readiness probe
	FavoritesProbeUser = "_probe"
)

const (
	LogMsgDatabaseMigrated   = "Database migrations applied"
	LogMsgFavoritesInMemory  = "MONGO_URI not set, favorites are kept in memory"
	LogMsgFavoritesMongo     = "Favorites stored in MongoDB"
	ErrMsgFailedOpenPool     = "failed to open database pool"
	ErrMsgFailedMigrate      = "failed to migrate database"
	ErrMsgFailedOpenStore    = "failed to open usage store"
	ErrMsgFailedOpenFavorite = "failed to open favorites store"
)

// =============================================================================
// Workers
// =============================================================================

const (
	// WorkerQueueSize bounds the number of pending background jobs
	WorkerQueueSize = 16

	LogMsgWorkersStarted = "Background workers started"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	// ShutdownTimeout bounds the whole graceful shutdown sequence
	ShutdownTimeout = 15 * time.Second

	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgWorkerShutdownFailed = "Weekly rollover worker shutdown failed"

	// Component names for shutdown logging
	ComponentNameStore     = "usage store"
	ComponentNameFavorites = "favorites store"
)

// Shutdown log message format (component name will be prepended)
const (
	LogMsgComponentCloseFailed = " close failed"
)
