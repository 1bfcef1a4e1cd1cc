package vault

import "time"

// ReserveMode selects how the pending reserve of a withdrawal is decided
type ReserveMode string

const (
	// ReserveModeCaller trusts the reserve supplied with the request, or the cached snapshot
	ReserveModeCaller ReserveMode = "caller"
	// ReserveModeMax takes the larger of the supplied reserve and an estimate from project counters
	ReserveModeMax ReserveMode = "max"
)

// Reserve cache configuration
const (
	ReserveCacheSize = 4096
	ReserveCacheTTL  = 10 * time.Minute
)

// Error contexts
const (
	ErrContextBeginTx        = "failed to begin transaction"
	ErrContextCommit         = "failed to commit transaction"
	ErrContextLoadProject    = "failed to load project"
	ErrContextLoadBalance    = "failed to load balance"
	ErrContextListBoxes      = "failed to list unsettled boxes"
	ErrContextEstimate       = "failed to estimate reserve"
	ErrContextLiability      = "failed to price box liability"
	ErrContextWithdraw       = "failed to withdraw"
	ErrContextCredit         = "failed to credit account"
	ErrMsgUnknownReserveMode = "unknown reserve mode"
)

// Log messages
const (
	LogMsgWithdrawEarningsCalled = "WithdrawEarnings called"
	LogMsgEarningsWithdrawn      = "Earnings withdrawn"
	LogMsgWithdrawTreasuryCalled = "WithdrawTreasury called"
	LogMsgTreasuryWithdrawn      = "Treasury withdrawn"
	LogMsgCreditAccountCalled    = "CreditAccount called"
	LogMsgAccountCredited        = "Account credited"
	LogMsgReserveFromCache       = "Using cached pending reserve"
	LogMsgPublishFailed          = "Failed to publish event"
)
