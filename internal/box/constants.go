package box

// Error contexts
const (
	ErrContextBeginTx        = "failed to begin transaction"
	ErrContextCommit         = "failed to commit transaction"
	ErrContextLoadProject    = "failed to load project"
	ErrContextLoadBox        = "failed to load box"
	ErrContextInsertBox      = "failed to insert box"
	ErrContextUpdateBox      = "failed to update box"
	ErrContextUpdateProject  = "failed to update project"
	ErrContextPurchase       = "failed to pay for box"
	ErrContextBoxID          = "box id"
	ErrContextRevenue        = "project revenue"
	ErrContextSettledCount   = "settled box count"
	ErrContextPaidOut        = "project paid out"
	ErrContextRequestOracle  = "failed to request randomness"
	ErrContextRevealOracle   = "failed to read randomness"
	ErrContextConvertSample  = "failed to convert randomness"
	ErrContextResolve        = "failed to resolve outcome"
	ErrContextPayout         = "failed to pay out box"
	ErrContextRefundTransfer = "failed to refund box"
)

// Log messages
const (
	LogMsgCreateBoxCalled     = "CreateBox called"
	LogMsgBoxCreated          = "Box created"
	LogMsgCommitBoxCalled     = "CommitBox called"
	LogMsgBoxCommitted        = "Box committed"
	LogMsgRevealBoxCalled     = "RevealBox called"
	LogMsgBoxRevealed         = "Box revealed"
	LogMsgRevealWindowExpired = "Reveal window expired, forcing dud"
	LogMsgRandomnessNotReady  = "Randomness not ready"
	LogMsgSettleBoxCalled     = "SettleBox called"
	LogMsgBoxSettled          = "Box settled"
	LogMsgRefundBoxCalled     = "RefundBox called"
	LogMsgBoxRefunded         = "Box refunded"
	LogMsgPublishFailed       = "Failed to publish event"
	LogMsgEventBusNil         = "event bus is nil"
)
