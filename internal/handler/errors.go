package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidPathParam      = "Invalid %s path parameter"
	ErrMsgMissingCallerID       = "Missing X-Caller-ID header"
	ErrMsgInvalidConfigDocument = "Invalid platform configuration"
	ErrMsgUnknownAccount        = "Unknown ledger account"
)

// Request headers and path parameters
const (
	HeaderCallerID = "X-Caller-ID"

	ParamProjectID = "projectID"
	ParamBoxID     = "boxID"

	// MaxIdentityLength bounds caller ids and account names
	MaxIdentityLength = 128
)

// Log messages
const (
	LogMsgRequestFailed   = "Request failed"
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
)
