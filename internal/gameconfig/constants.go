package gameconfig

// SchemaName is the bundled schema for platform configuration documents
const SchemaName = "platform_config.schema.json"

// Error messages
const (
	ErrMsgCommissionTooHigh  = "commission_bps exceeds 5000"
	ErrMsgBaseAboveMax       = "base_luck exceeds max_luck"
	ErrMsgNegativeInterval   = "luck_time_interval must not be negative"
	ErrMsgRevealWindow       = "reveal_window_seconds must be positive"
	ErrMsgNegativeGrace      = "refund_grace_period_seconds must not be negative"
	ErrMsgBoundaryOrder      = "tier1_max_luck exceeds tier2_max_luck"
	ErrMsgBandOverAllocated  = "band probabilities exceed 10000 bp"
	ErrContextReadConfigFile = "failed to read game config file"
	ErrContextDecodeConfig   = "failed to decode game config"
	ErrContextSchema         = "game config schema"
)

// Log messages
const (
	LogMsgConfigLoaded       = "Game config loaded"
	LogMsgConfigDefaults     = "No game config file set, using defaults"
	LogMsgConfigUpdated      = "Game config updated"
	LogMsgConfigUpdateDenied = "Game config update rejected"
)
