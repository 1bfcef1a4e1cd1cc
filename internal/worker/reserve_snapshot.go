package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/DegenBox_Go/internal/clock"
	"github.com/osse101/DegenBox_Go/internal/gameconfig"
	"github.com/osse101/DegenBox_Go/internal/logger"
	"github.com/osse101/DegenBox_Go/internal/repository"
	"github.com/osse101/DegenBox_Go/internal/vault"
)

// ReserveSnapshotJob recomputes the pending reserve of every project and
// stores it in the reserve cache used by earnings withdrawals
type ReserveSnapshotJob struct {
	store  repository.Store
	config gameconfig.Provider
	cache  *vault.ReserveCache
	clock  clock.Clock
}

// NewReserveSnapshotJob creates the job
func NewReserveSnapshotJob(store repository.Store, config gameconfig.Provider, cache *vault.ReserveCache, clk clock.Clock) *ReserveSnapshotJob {
	return &ReserveSnapshotJob{store: store, config: config, cache: cache, clock: clk}
}

// Name implements Job
func (j *ReserveSnapshotJob) Name() string {
	return ReserveSnapshotJobName
}

// Process snapshots every project. A failing project is logged and skipped;
// the joined errors are returned once all projects were attempted.
func (j *ReserveSnapshotJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgReserveSnapshotStarting)

	ids, err := j.store.ListProjectIDs(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextListProjects, err)
	}

	cfg := j.config.Get()
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap, err := vault.ComputeReserve(ctx, j.store, cfg, id, j.clock.Now())
		if err != nil {
			log.Error(LogMsgReserveSnapshotFailed, "project_id", id, "error", err)
			errs = append(errs, err)
			continue
		}
		j.cache.Set(snap)
	}

	log.Info(LogMsgReserveSnapshotCompleted, "projects", len(ids), "failed", len(errs))
	return errors.Join(errs...)
}
