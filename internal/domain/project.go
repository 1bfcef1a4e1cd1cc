package domain

import "time"

// Project is a box seller with its own vault and aggregate counters
type Project struct {
	ID                   uint64    `json:"project_id"`
	Owner                string    `json:"owner"`
	BoxPrice             uint64    `json:"box_price"`
	LuckIntervalOverride int64     `json:"luck_time_interval_override"`
	Active               bool      `json:"active"`
	Preset               PresetID  `json:"game_preset"`
	TotalBoxesCreated    uint64    `json:"total_boxes_created"`
	TotalBoxesSettled    uint64    `json:"total_boxes_settled"`
	TotalRevenue         uint64    `json:"total_revenue"`
	TotalPaidOut         uint64    `json:"total_paid_out"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Clone returns a copy
func (p *Project) Clone() *Project {
	c := *p
	return &c
}

// ProjectUpdate carries optional edits; nil fields are left unchanged
type ProjectUpdate struct {
	BoxPrice             *uint64
	Active               *bool
	Preset               *PresetID
	LuckIntervalOverride *int64
}
