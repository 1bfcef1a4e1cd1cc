package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "box.created")
const (
	// EventTypeBoxCreated is published after a purchase commits
	EventTypeBoxCreated = "box.created"

	// EventTypeBoxCommitted is published after luck is frozen and randomness requested
	EventTypeBoxCommitted = "box.committed"

	// EventTypeBoxRevealed is published after an outcome is stored, including forced duds
	EventTypeBoxRevealed = "box.revealed"

	// EventTypeBoxSettled is published after a revealed box is paid out
	EventTypeBoxSettled = "box.settled"

	// EventTypeBoxRefunded is published after the refund path closes a box
	EventTypeBoxRefunded = "box.refunded"

	// EventTypeVaultWithdrawn is published after a project owner drains earnings
	EventTypeVaultWithdrawn = "vault.withdrawn"

	// EventTypeTreasuryWithdrawn is published after the admin drains commission
	EventTypeTreasuryWithdrawn = "treasury.withdrawn"

	// EventTypeRandomnessNotReady is published when a reveal is attempted too early
	EventTypeRandomnessNotReady = "randomness.not_ready"
)
