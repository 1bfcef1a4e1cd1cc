package domain

import "time"

// BoxState is derived from the lifecycle flags of a box
type BoxState string

const (
	BoxStateCreated   BoxState = "Created"
	BoxStateCommitted BoxState = "Committed"
	BoxStateRevealed  BoxState = "Revealed"
	BoxStateSettled   BoxState = "Settled"
)

// Box is one purchased unit progressing through the lifecycle.
// PurchasedPrice and CommissionPaid are frozen at purchase; Luck and PresetSnapshot at commit.
type Box struct {
	ProjectID uint64 `json:"project_id"`
	ID        uint64 `json:"box_id"`
	Owner     string `json:"owner"`

	CreatedAt           time.Time  `json:"created_at"`
	CommittedAt         *time.Time `json:"committed_at,omitempty"`
	CommittedCheckpoint uint64     `json:"committed_checkpoint"`

	Luck           uint8    `json:"luck"`
	PresetSnapshot PresetID `json:"game_preset_snapshot"`
	PurchasedPrice uint64   `json:"purchased_price"`
	CommissionPaid uint64   `json:"commission_paid"`

	Revealed     bool   `json:"revealed"`
	RewardAmount uint64 `json:"reward_amount"`
	IsJackpot    bool   `json:"is_jackpot"`
	RewardTier   Tier   `json:"reward_tier"`
	RandomBP     uint16 `json:"random_sample"`

	RandomnessCommitted bool   `json:"randomness_committed"`
	Settled             bool   `json:"settled"`
	RandomnessHandle    string `json:"randomness_request_handle,omitempty"`
}

// State returns the lifecycle state implied by the flags
func (b *Box) State() BoxState {
	switch {
	case b.Settled:
		return BoxStateSettled
	case b.Revealed:
		return BoxStateRevealed
	case b.RandomnessCommitted:
		return BoxStateCommitted
	default:
		return BoxStateCreated
	}
}

// RefundAmount is what the vault actually received at purchase
func (b *Box) RefundAmount() uint64 {
	if b.CommissionPaid > b.PurchasedPrice {
		return 0
	}
	return b.PurchasedPrice - b.CommissionPaid
}

// Clone returns a deep copy
func (b *Box) Clone() *Box {
	c := *b
	if b.CommittedAt != nil {
		t := *b.CommittedAt
		c.CommittedAt = &t
	}
	return &c
}
