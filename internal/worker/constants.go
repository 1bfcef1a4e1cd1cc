package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgQueueFull       = "Worker queue full, dropping job"
)

// ============================================================================
// Log Messages - Reserve Snapshot Job
// ============================================================================

// Log messages for reserve snapshot operations
const (
	LogMsgReserveSnapshotStarting  = "Reserve snapshot starting"
	LogMsgReserveSnapshotCompleted = "Reserve snapshot completed"
	LogMsgReserveSnapshotFailed    = "Reserve snapshot failed for project"
)

// ReserveSnapshotJobName identifies the reserve snapshot job in logs
const ReserveSnapshotJobName = "reserve_snapshot"

// ErrContextListProjects wraps failures listing projects
const ErrContextListProjects = "failed to list projects"

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
