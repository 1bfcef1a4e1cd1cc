package domain

// BoxCreatedPayload is the event payload for box.created events
type BoxCreatedPayload struct {
	ProjectID    uint64 `json:"project_id"`
	BoxID        uint64 `json:"box_id"`
	Owner        string `json:"owner"`
	Price        uint64 `json:"price"`
	Commission   uint64 `json:"commission"`
	CreatorShare uint64 `json:"creator_share"`
	Timestamp    int64  `json:"timestamp"`
}

// BoxCommittedPayload is the event payload for box.committed events
type BoxCommittedPayload struct {
	ProjectID  uint64   `json:"project_id"`
	BoxID      uint64   `json:"box_id"`
	Luck       uint8    `json:"luck"`
	Preset     PresetID `json:"preset"`
	Checkpoint uint64   `json:"checkpoint"`
	Timestamp  int64    `json:"timestamp"`
}

// BoxRevealedPayload is the event payload for box.revealed events
type BoxRevealedPayload struct {
	ProjectID uint64 `json:"project_id"`
	BoxID     uint64 `json:"box_id"`
	Tier      Tier   `json:"tier"`
	Reward    uint64 `json:"reward"`
	IsJackpot bool   `json:"is_jackpot"`
	Expired   bool   `json:"expired"`
	Timestamp int64  `json:"timestamp"`
}

// BoxSettledPayload is the event payload for box.settled and box.refunded events
type BoxSettledPayload struct {
	ProjectID uint64 `json:"project_id"`
	BoxID     uint64 `json:"box_id"`
	Owner     string `json:"owner"`
	Tier      Tier   `json:"tier"`
	Amount    uint64 `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// WithdrawalPayload is the event payload for vault.withdrawn and treasury.withdrawn events
type WithdrawalPayload struct {
	ProjectID      uint64 `json:"project_id,omitempty"`
	Recipient      string `json:"recipient"`
	Amount         uint64 `json:"amount"`
	PendingReserve uint64 `json:"pending_reserve"`
	Timestamp      int64  `json:"timestamp"`
}

// RandomnessPendingPayload is the event payload for randomness.not_ready events
type RandomnessPendingPayload struct {
	ProjectID  uint64 `json:"project_id"`
	BoxID      uint64 `json:"box_id"`
	Checkpoint uint64 `json:"checkpoint"`
	Timestamp  int64  `json:"timestamp"`
}
