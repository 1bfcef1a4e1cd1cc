package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgProjectNotFound = "project not found"
	ErrMsgBoxNotFound     = "box not found"

	// Authorization errors
	ErrMsgNotBoxOwner     = "caller is not the box owner"
	ErrMsgNotProjectOwner = "caller is not the project owner"
	ErrMsgNotAdmin        = "caller is not the platform admin"

	// Project errors
	ErrMsgProjectInactive = "project is not active"
	ErrMsgPlatformPaused  = "platform is paused"
	ErrMsgInvalidBoxPrice = "box price must be positive"
	ErrMsgInvalidPreset   = "game preset out of range"
	ErrMsgInvalidAmount   = "amount must be positive"
	ErrMsgInvalidIdentity = "caller identity is required"

	// Lifecycle errors
	ErrMsgAlreadyCommitted         = "randomness already committed"
	ErrMsgNotCommitted             = "randomness not committed"
	ErrMsgAlreadyRevealed          = "box already revealed"
	ErrMsgNotRevealed              = "box not revealed"
	ErrMsgAlreadySettled           = "box already settled"
	ErrMsgRandomnessHandleMismatch = "randomness handle does not match commitment"
	ErrMsgRandomnessNotReady       = "randomness not yet revealed"
	ErrMsgRefundTooEarly           = "refund grace period has not elapsed"

	// Ledger errors
	ErrMsgInsufficientFunds          = "insufficient funds"
	ErrMsgWithdrawalExceedsAvailable = "withdrawal exceeds vault balance minus pending reserve"
	ErrMsgReserveUnknown             = "no pending reserve supplied or cached"
	ErrMsgArithmeticOverflow         = "arithmetic overflow"

	// Configuration errors
	ErrMsgInvalidConfig = "invalid configuration"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrProjectNotFound = errors.New(ErrMsgProjectNotFound)
	ErrBoxNotFound     = errors.New(ErrMsgBoxNotFound)

	ErrNotBoxOwner     = errors.New(ErrMsgNotBoxOwner)
	ErrNotProjectOwner = errors.New(ErrMsgNotProjectOwner)
	ErrNotAdmin        = errors.New(ErrMsgNotAdmin)

	ErrProjectInactive = errors.New(ErrMsgProjectInactive)
	ErrPlatformPaused  = errors.New(ErrMsgPlatformPaused)
	ErrInvalidBoxPrice = errors.New(ErrMsgInvalidBoxPrice)
	ErrInvalidPreset   = errors.New(ErrMsgInvalidPreset)
	ErrInvalidAmount   = errors.New(ErrMsgInvalidAmount)
	ErrInvalidIdentity = errors.New(ErrMsgInvalidIdentity)

	ErrAlreadyCommitted         = errors.New(ErrMsgAlreadyCommitted)
	ErrNotCommitted             = errors.New(ErrMsgNotCommitted)
	ErrAlreadyRevealed          = errors.New(ErrMsgAlreadyRevealed)
	ErrNotRevealed              = errors.New(ErrMsgNotRevealed)
	ErrAlreadySettled           = errors.New(ErrMsgAlreadySettled)
	ErrRandomnessHandleMismatch = errors.New(ErrMsgRandomnessHandleMismatch)
	// ErrRandomnessNotReady is retryable
	ErrRandomnessNotReady = errors.New(ErrMsgRandomnessNotReady)
	ErrRefundTooEarly     = errors.New(ErrMsgRefundTooEarly)

	ErrInsufficientFunds          = errors.New(ErrMsgInsufficientFunds)
	ErrWithdrawalExceedsAvailable = errors.New(ErrMsgWithdrawalExceedsAvailable)
	ErrReserveUnknown             = errors.New(ErrMsgReserveUnknown)
	ErrArithmeticOverflow         = errors.New(ErrMsgArithmeticOverflow)

	ErrInvalidConfig = errors.New(ErrMsgInvalidConfig)

	ErrTxClosed = errors.New(ErrMsgTxClosed)
)

// Reason codes returned to callers alongside a failure
const (
	ReasonProjectNotFound            = "PROJECT_NOT_FOUND"
	ReasonBoxNotFound                = "BOX_NOT_FOUND"
	ReasonNotBoxOwner                = "NOT_BOX_OWNER"
	ReasonNotProjectOwner            = "NOT_PROJECT_OWNER"
	ReasonNotAdmin                   = "NOT_ADMIN"
	ReasonProjectInactive            = "PROJECT_INACTIVE"
	ReasonPlatformPaused             = "PLATFORM_PAUSED"
	ReasonInvalidBoxPrice            = "INVALID_BOX_PRICE"
	ReasonInvalidPreset              = "INVALID_PRESET"
	ReasonInvalidAmount              = "INVALID_AMOUNT"
	ReasonInvalidIdentity            = "INVALID_IDENTITY"
	ReasonAlreadyCommitted           = "ALREADY_COMMITTED"
	ReasonNotCommitted               = "NOT_COMMITTED"
	ReasonAlreadyRevealed            = "ALREADY_REVEALED"
	ReasonNotRevealed                = "NOT_REVEALED"
	ReasonAlreadySettled             = "ALREADY_SETTLED"
	ReasonRandomnessHandleMismatch   = "RANDOMNESS_HANDLE_MISMATCH"
	ReasonRandomnessNotReady         = "RANDOMNESS_NOT_READY"
	ReasonRefundTooEarly             = "REFUND_TOO_EARLY"
	ReasonInsufficientFunds          = "INSUFFICIENT_FUNDS"
	ReasonWithdrawalExceedsAvailable = "WITHDRAWAL_EXCEEDS_AVAILABLE"
	ReasonReserveUnknown             = "RESERVE_UNKNOWN"
	ReasonArithmeticOverflow         = "ARITHMETIC_OVERFLOW"
	ReasonInvalidConfig              = "INVALID_CONFIG"
	ReasonInternal                   = "INTERNAL"
)

var reasonCodes = []struct {
	err  error
	code string
}{
	{ErrProjectNotFound, ReasonProjectNotFound},
	{ErrBoxNotFound, ReasonBoxNotFound},
	{ErrNotBoxOwner, ReasonNotBoxOwner},
	{ErrNotProjectOwner, ReasonNotProjectOwner},
	{ErrNotAdmin, ReasonNotAdmin},
	{ErrProjectInactive, ReasonProjectInactive},
	{ErrPlatformPaused, ReasonPlatformPaused},
	{ErrInvalidBoxPrice, ReasonInvalidBoxPrice},
	{ErrInvalidPreset, ReasonInvalidPreset},
	{ErrInvalidAmount, ReasonInvalidAmount},
	{ErrInvalidIdentity, ReasonInvalidIdentity},
	{ErrAlreadyCommitted, ReasonAlreadyCommitted},
	{ErrNotCommitted, ReasonNotCommitted},
	{ErrAlreadyRevealed, ReasonAlreadyRevealed},
	{ErrNotRevealed, ReasonNotRevealed},
	{ErrAlreadySettled, ReasonAlreadySettled},
	{ErrRandomnessHandleMismatch, ReasonRandomnessHandleMismatch},
	{ErrRandomnessNotReady, ReasonRandomnessNotReady},
	{ErrRefundTooEarly, ReasonRefundTooEarly},
	{ErrInsufficientFunds, ReasonInsufficientFunds},
	{ErrWithdrawalExceedsAvailable, ReasonWithdrawalExceedsAvailable},
	{ErrReserveUnknown, ReasonReserveUnknown},
	{ErrArithmeticOverflow, ReasonArithmeticOverflow},
	{ErrInvalidConfig, ReasonInvalidConfig},
}

// ReasonCode maps an error chain to a stable machine-readable code
func ReasonCode(err error) string {
	code, _ := classify(err)
	return code
}

// Sentinel returns the domain error found in the chain, or nil
func Sentinel(err error) error {
	_, sentinel := classify(err)
	return sentinel
}

func classify(err error) (string, error) {
	for _, rc := range reasonCodes {
		if errors.Is(err, rc.err) {
			return rc.code, rc.err
		}
	}
	return ReasonInternal, nil
}

// IsRetryable reports whether the caller should retry the same request later
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRandomnessNotReady)
}
