package config

import "time"

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Defaults for optional settings
const (
	DefaultPort                    = "8080"
	DefaultLogLevel                = "info"
	DefaultLogFormat               = "text"
	DefaultLogDir                  = "logs"
	DefaultEnvironment             = "dev"
	DefaultVersion                 = "dev"
	DefaultDBMaxConns              = 20
	DefaultDBMaxConnIdleTime       = 5 * time.Minute
	DefaultDBMaxConnLifetime       = 30 * time.Minute
	DefaultOracleRevealDelay       = 2
	DefaultReserveMode             = "caller"
	DefaultReserveSnapshotInterval = time.Minute
	DefaultWorkerCount             = 2
	DefaultShutdownTimeout         = 10 * time.Second
)
