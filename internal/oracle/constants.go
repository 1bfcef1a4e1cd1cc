package oracle

import "errors"

// Oracle parameters
const (
	ValueLen     = 32
	MinSecretLen = 16
	infoPrefix   = "degenbox-reveal-v1:"
)

// Error messages
const (
	ErrMsgSecretTooShort = "oracle secret must be at least 16 bytes"
	ErrContextDerive     = "failed to derive randomness"
)

// Log messages
const (
	LogMsgHandleIssued = "Randomness handle issued"
	LogMsgNotReady     = "Randomness not ready"
)

// ErrSecretTooShort is returned by NewLocal for weak secrets
var ErrSecretTooShort = errors.New(ErrMsgSecretTooShort)
