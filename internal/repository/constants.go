package repository

import "errors"

// LogMsgRollbackFailed is logged when a rollback fails for a reason other than a closed tx
const LogMsgRollbackFailed = "Failed to rollback transaction"

// ErrMsgDuplicateKey is returned when an insert collides with an existing row
const ErrMsgDuplicateKey = "duplicate key"

// ErrDuplicateKey is returned by Insert methods for rows that already exist
var ErrDuplicateKey = errors.New(ErrMsgDuplicateKey)
