package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/payout"
	"github.com/osse101/DegenBox_Go/internal/repository"
	"github.com/osse101/DegenBox_Go/internal/utils"
)

// Snapshot is the pending reserve of one project at a point in time
type Snapshot struct {
	ProjectID      uint64    `json:"project_id"`
	Reserve        uint64    `json:"pending_reserve"`
	UnsettledBoxes int       `json:"unsettled_boxes"`
	TakenAt        time.Time `json:"taken_at"`
}

// ReserveCache holds the latest snapshot per project. Entries expire so a
// stalled snapshot job cannot keep a stale reserve alive forever.
type ReserveCache struct {
	lru *expirable.LRU[uint64, Snapshot]
}

// NewReserveCache creates a cache of at most size projects
func NewReserveCache(size int, ttl time.Duration) *ReserveCache {
	return &ReserveCache{lru: expirable.NewLRU[uint64, Snapshot](size, nil, ttl)}
}

// Get returns the snapshot for a project if one is cached
func (c *ReserveCache) Get(projectID uint64) (Snapshot, bool) {
	return c.lru.Get(projectID)
}

// Set replaces the snapshot for its project
func (c *ReserveCache) Set(s Snapshot) {
	c.lru.Add(s.ProjectID, s)
}

// Len returns the number of cached snapshots
func (c *ReserveCache) Len() int {
	return c.lru.Len()
}

// ComputeReserve sums the maximum remaining liability of every unsettled box
// of a project
func ComputeReserve(ctx context.Context, store repository.Store, cfg domain.PlatformConfig, projectID uint64, now time.Time) (Snapshot, error) {
	boxes, err := store.ListUnsettledBoxes(ctx, projectID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", ErrContextListBoxes, err)
	}

	var total uint64
	for _, b := range boxes {
		owed, err := payout.MaxLiability(b, cfg)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%s: %w", ErrContextLiability, err)
		}
		if total, err = utils.CheckedAdd(total, owed); err != nil {
			return Snapshot{}, fmt.Errorf("%s: %w", ErrContextLiability, domain.ErrArithmeticOverflow)
		}
	}

	return Snapshot{
		ProjectID:      projectID,
		Reserve:        total,
		UnsettledBoxes: len(boxes),
		TakenAt:        now,
	}, nil
}

// estimateFromCounters prices the boxes a project has not yet settled at its
// current box price against the best band of its preset
func estimateFromCounters(p *domain.Project, cfg domain.PlatformConfig) (uint64, error) {
	unsettled, err := utils.CheckedSub(p.TotalBoxesCreated, p.TotalBoxesSettled)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextEstimate, domain.ErrArithmeticOverflow)
	}
	table, err := cfg.Table(p.Preset)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextEstimate, err)
	}
	return payout.ExpectedReserve(p.BoxPrice, unsettled, table)
}
