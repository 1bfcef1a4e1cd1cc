package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
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

	// LogFileRetentionCount is the number of older log files kept beside the new session file
	LogFileRetentionCount = 9
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingDegenBox    = "Starting DegenBox"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the number of retry attempts for a failed publish
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDeadLetterFileName is the dead-letter file created inside LOG_DIR
	EventDeadLetterFileName = "event_deadletter.jsonl"
)

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir  = "failed to create dead-letter directory"
	LogMsgFailedCreateDeadLetter     = "failed to open dead-letter file"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgUsingMemoryStore    = "Using in-memory store, state is lost on exit"
	LogMsgUsingPostgresStore  = "Using PostgreSQL store"
	LogMsgRunningMigrations   = "Running database migrations"
	ErrMsgUnknownStorage      = "unknown storage backend"
	ErrMsgFailedConnectDB     = "failed to connect to database"
	ErrMsgFailedRunMigrations = "failed to run migrations"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgDeadLetterCloseFailed      = "Dead-letter file close failed"
	LogMsgStorageClosed              = "Storage closed"
)
