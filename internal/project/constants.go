package project

import "time"

// Project cache configuration
const (
	CacheSize          = 1024
	CacheTTL           = 30 * time.Second
	CacheSchemaVersion = "1.0"
)

// Error contexts
const (
	ErrContextBeginTx       = "failed to begin transaction"
	ErrContextCommit        = "failed to commit transaction"
	ErrContextAllocateID    = "failed to allocate project id"
	ErrContextInsertProject = "failed to insert project"
	ErrContextLoadProject   = "failed to load project"
	ErrContextUpdateProject = "failed to update project"
	ErrContextFundVault     = "failed to fund vault"
	ErrMsgNegativeInterval  = "luck interval override must not be negative"
)

// Log messages
const (
	LogMsgCreateProjectCalled = "CreateProject called"
	LogMsgProjectCreated      = "Project created"
	LogMsgUpdateProjectCalled = "UpdateProject called"
	LogMsgProjectUpdated      = "Project updated"
	LogMsgFundVaultCalled     = "FundVault called"
	LogMsgVaultFunded         = "Vault funded"
)
