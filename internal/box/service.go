// Package box runs the purchase lifecycle: Created, Committed, Revealed and
// Settled, plus the forced-dud and refund escapes.
package box

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/DegenBox_Go/internal/clock"
	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/event"
	"github.com/osse101/DegenBox_Go/internal/gameconfig"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/logger"
	"github.com/osse101/DegenBox_Go/internal/luck"
	"github.com/osse101/DegenBox_Go/internal/oracle"
	"github.com/osse101/DegenBox_Go/internal/payout"
	"github.com/osse101/DegenBox_Go/internal/repository"
	"github.com/osse101/DegenBox_Go/internal/utils"
)

// Service defines the interface for box lifecycle operations.
// Every mutating call is one transaction: it either applies fully or not at all.
type Service interface {
	CreateBox(ctx context.Context, caller string, projectID uint64) (*domain.Box, error)
	CommitBox(ctx context.Context, caller string, projectID, boxID uint64) (*domain.Box, error)
	RevealBox(ctx context.Context, caller string, projectID, boxID uint64, handle string) (*domain.Box, error)
	SettleBox(ctx context.Context, caller string, projectID, boxID uint64) (*domain.Box, error)
	RefundBox(ctx context.Context, caller string, projectID, boxID uint64) (*domain.Box, error)
	GetBox(ctx context.Context, projectID, boxID uint64) (*domain.Box, error)
}

type service struct {
	store    repository.Store
	config   gameconfig.Provider
	oracle   oracle.Oracle
	clock    clock.Clock
	eventBus event.Bus
}

// NewService creates a new box service
func NewService(store repository.Store, config gameconfig.Provider, orc oracle.Oracle, clk clock.Clock, bus event.Bus) Service {
	return &service{
		store:    store,
		config:   config,
		oracle:   orc,
		clock:    clk,
		eventBus: bus,
	}
}

// CreateBox sells one box of the project to caller at the current price.
// The creator share goes to the vault and the commission to the treasury.
func (s *service) CreateBox(ctx context.Context, caller string, projectID uint64) (*domain.Box, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreateBoxCalled, "project_id", projectID, "owner", caller)

	if caller == "" {
		return nil, domain.ErrInvalidIdentity
	}
	cfg := s.config.Get()
	if cfg.Paused {
		return nil, domain.ErrPlatformPaused
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetProjectForUpdate(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadProject, err)
	}
	if !p.Active {
		return nil, domain.ErrProjectInactive
	}

	boxID, err := checkedAdd(ErrContextBoxID, p.TotalBoxesCreated, 1)
	if err != nil {
		return nil, err
	}
	revenue, err := checkedAdd(ErrContextRevenue, p.TotalRevenue, p.BoxPrice)
	if err != nil {
		return nil, err
	}
	split, err := ledger.SplitCommission(p.BoxPrice, cfg.CommissionBPS)
	if err != nil {
		return nil, err
	}

	if err := ledger.Pay(ctx, tx, ledger.WalletAccount(caller), p.ID, split); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextPurchase, err)
	}

	now := s.clock.Now()
	b := &domain.Box{
		ProjectID:      p.ID,
		ID:             boxID,
		Owner:          caller,
		CreatedAt:      now,
		Luck:           cfg.BaseLuck,
		PurchasedPrice: p.BoxPrice,
		CommissionPaid: split.Commission,
	}
	if err := tx.InsertBox(ctx, b); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextInsertBox, err)
	}

	p.TotalBoxesCreated = boxID
	p.TotalRevenue = revenue
	p.UpdatedAt = now
	if err := tx.UpdateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextUpdateProject, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}

	log.Info(LogMsgBoxCreated, "project_id", b.ProjectID, "box_id", b.ID, "price", b.PurchasedPrice, "commission", split.Commission)
	s.publish(ctx, event.BoxCreated, domain.BoxCreatedPayload{
		ProjectID:    b.ProjectID,
		BoxID:        b.ID,
		Owner:        b.Owner,
		Price:        b.PurchasedPrice,
		Commission:   split.Commission,
		CreatorShare: split.CreatorShare,
		Timestamp:    now.Unix(),
	})
	return b, nil
}

// CommitBox freezes luck and the project's preset, records the ledger
// checkpoint and binds a fresh randomness handle
func (s *service) CommitBox(ctx context.Context, caller string, projectID, boxID uint64) (*domain.Box, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCommitBoxCalled, "project_id", projectID, "box_id", boxID, "owner", caller)

	cfg := s.config.Get()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	b, err := tx.GetBoxForUpdate(ctx, projectID, boxID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadBox, err)
	}
	if err := checkOwner(b, caller); err != nil {
		return nil, err
	}
	if err := checkCommittable(b); err != nil {
		return nil, err
	}

	p, err := tx.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadProject, err)
	}

	handle, err := s.oracle.Request(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextRequestOracle, err)
	}

	now := s.clock.Now()
	b.Luck = luck.ForCommit(elapsedSeconds(b.CreatedAt, now), cfg, p.LuckIntervalOverride)
	b.PresetSnapshot = p.Preset
	b.CommittedAt = &now
	b.CommittedCheckpoint = s.clock.Height()
	b.RandomnessCommitted = true
	b.RandomnessHandle = handle

	if err := tx.UpdateBox(ctx, b); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextUpdateBox, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}

	log.Info(LogMsgBoxCommitted, "project_id", b.ProjectID, "box_id", b.ID, "luck", b.Luck, "preset", b.PresetSnapshot, "checkpoint", b.CommittedCheckpoint)
	s.publish(ctx, event.BoxCommitted, domain.BoxCommittedPayload{
		ProjectID:  b.ProjectID,
		BoxID:      b.ID,
		Luck:       b.Luck,
		Preset:     b.PresetSnapshot,
		Checkpoint: b.CommittedCheckpoint,
		Timestamp:  now.Unix(),
	})
	return b, nil
}

// RevealBox resolves the outcome of a committed box. Past the reveal window
// the box becomes a dud without consulting the oracle. The oracle is read
// before the row lock is taken; domain.ErrRandomnessNotReady is retryable.
func (s *service) RevealBox(ctx context.Context, caller string, projectID, boxID uint64, handle string) (*domain.Box, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRevealBoxCalled, "project_id", projectID, "box_id", boxID, "owner", caller)

	cfg := s.config.Get()
	now := s.clock.Now()

	current, err := s.store.GetBox(ctx, projectID, boxID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadBox, err)
	}
	if err := checkOwner(current, caller); err != nil {
		return nil, err
	}
	if err := checkRevealable(current, handle); err != nil {
		return nil, err
	}

	expired := revealExpired(current, now, cfg.RevealWindowSeconds)
	var randomBP uint16
	if !expired {
		randomBP, err = s.readSample(ctx, current)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	b, err := tx.GetBoxForUpdate(ctx, projectID, boxID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadBox, err)
	}
	if err := checkOwner(b, caller); err != nil {
		return nil, err
	}
	if err := checkRevealable(b, handle); err != nil {
		return nil, err
	}

	if expired {
		log.Info(LogMsgRevealWindowExpired, "project_id", projectID, "box_id", boxID)
		forcedDud(b)
	} else {
		outcome, err := payout.Resolve(b.Luck, randomBP, b.PurchasedPrice, cfg, b.PresetSnapshot)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextResolve, err)
		}
		b.Revealed = true
		b.RewardAmount = outcome.Reward
		b.IsJackpot = outcome.IsJackpot
		b.RewardTier = outcome.Tier
		b.RandomBP = outcome.RandomBP
	}

	if err := tx.UpdateBox(ctx, b); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextUpdateBox, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}

	log.Info(LogMsgBoxRevealed, "project_id", b.ProjectID, "box_id", b.ID, "tier", b.RewardTier, "reward", b.RewardAmount, "random_bp", b.RandomBP)
	s.publish(ctx, event.BoxRevealed, domain.BoxRevealedPayload{
		ProjectID: b.ProjectID,
		BoxID:     b.ID,
		Tier:      b.RewardTier,
		Reward:    b.RewardAmount,
		IsJackpot: b.IsJackpot,
		Expired:   expired,
		Timestamp: now.Unix(),
	})
	return b, nil
}

func (s *service) readSample(ctx context.Context, b *domain.Box) (uint16, error) {
	raw, err := s.oracle.Reveal(ctx, b.RandomnessHandle, b.CommittedCheckpoint)
	if err != nil {
		if oracle.IsNotReady(err) {
			logger.FromContext(ctx).Info(LogMsgRandomnessNotReady, "project_id", b.ProjectID, "box_id", b.ID, "checkpoint", b.CommittedCheckpoint)
			s.publish(ctx, event.RandomnessPending, domain.RandomnessPendingPayload{
				ProjectID:  b.ProjectID,
				BoxID:      b.ID,
				Checkpoint: b.CommittedCheckpoint,
				Timestamp:  s.clock.Now().Unix(),
			})
		}
		return 0, fmt.Errorf("%s: %w", ErrContextRevealOracle, err)
	}
	bp, err := payout.ToBasisPoints(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextConvertSample, err)
	}
	return bp, nil
}

// SettleBox marks a revealed box settled and updates the project counters
// before paying the reward out of the vault
func (s *service) SettleBox(ctx context.Context, caller string, projectID, boxID uint64) (*domain.Box, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSettleBoxCalled, "project_id", projectID, "box_id", boxID, "owner", caller)

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetProjectForUpdate(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadProject, err)
	}
	b, err := tx.GetBoxForUpdate(ctx, projectID, boxID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadBox, err)
	}
	if err := checkOwner(b, caller); err != nil {
		return nil, err
	}
	if err := checkSettleable(b); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	b.Settled = true
	if err := closeBox(ctx, tx, p, b, b.RewardAmount, now); err != nil {
		return nil, err
	}
	if b.RewardAmount > 0 {
		if err := tx.Transfer(ctx, ledger.VaultAccount(projectID), ledger.WalletAccount(b.Owner), b.RewardAmount); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextPayout, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}

	log.Info(LogMsgBoxSettled, "project_id", b.ProjectID, "box_id", b.ID, "reward", b.RewardAmount)
	s.publish(ctx, event.BoxSettled, domain.BoxSettledPayload{
		ProjectID: b.ProjectID,
		BoxID:     b.ID,
		Owner:     b.Owner,
		Tier:      b.RewardTier,
		Amount:    b.RewardAmount,
		Timestamp: now.Unix(),
	})
	return b, nil
}

// RefundBox closes a committed box that was never revealed, once the grace
// period has elapsed. The owner gets back what the vault received.
func (s *service) RefundBox(ctx context.Context, caller string, projectID, boxID uint64) (*domain.Box, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRefundBoxCalled, "project_id", projectID, "box_id", boxID, "owner", caller)

	cfg := s.config.Get()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetProjectForUpdate(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadProject, err)
	}
	b, err := tx.GetBoxForUpdate(ctx, projectID, boxID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadBox, err)
	}
	if err := checkOwner(b, caller); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if err := checkRefundable(b, now, cfg.RefundGracePeriodSeconds); err != nil {
		return nil, err
	}

	amount := b.RefundAmount()
	b.Revealed = true
	b.Settled = true
	b.RewardTier = domain.TierRefunded
	b.RewardAmount = amount
	b.IsJackpot = false
	if err := closeBox(ctx, tx, p, b, amount, now); err != nil {
		return nil, err
	}
	if amount > 0 {
		if err := tx.Transfer(ctx, ledger.VaultAccount(projectID), ledger.WalletAccount(b.Owner), amount); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextRefundTransfer, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}

	log.Info(LogMsgBoxRefunded, "project_id", b.ProjectID, "box_id", b.ID, "amount", amount)
	s.publish(ctx, event.BoxRefunded, domain.BoxSettledPayload{
		ProjectID: b.ProjectID,
		BoxID:     b.ID,
		Owner:     b.Owner,
		Tier:      domain.TierRefunded,
		Amount:    amount,
		Timestamp: now.Unix(),
	})
	return b, nil
}

func (s *service) GetBox(ctx context.Context, projectID, boxID uint64) (*domain.Box, error) {
	return s.store.GetBox(ctx, projectID, boxID)
}

// closeBox writes the final box state and project aggregates. Callers
// transfer funds only after this succeeds.
func closeBox(ctx context.Context, tx repository.Tx, p *domain.Project, b *domain.Box, paid uint64, now time.Time) error {
	settled, err := checkedAdd(ErrContextSettledCount, p.TotalBoxesSettled, 1)
	if err != nil {
		return err
	}
	paidOut, err := checkedAdd(ErrContextPaidOut, p.TotalPaidOut, paid)
	if err != nil {
		return err
	}

	if err := tx.UpdateBox(ctx, b); err != nil {
		return fmt.Errorf("%s: %w", ErrContextUpdateBox, err)
	}
	p.TotalBoxesSettled = settled
	p.TotalPaidOut = paidOut
	p.UpdatedAt = now
	if err := tx.UpdateProject(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", ErrContextUpdateProject, err)
	}
	return nil
}

func checkedAdd(what string, a, b uint64) (uint64, error) {
	sum, err := utils.CheckedAdd(a, b)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", what, domain.ErrArithmeticOverflow)
	}
	return sum, nil
}

func (s *service) publish(ctx context.Context, t event.Type, payload any) {
	log := logger.FromContext(ctx)
	if s.eventBus == nil {
		log.Error(LogMsgPublishFailed, "type", t, "reason", LogMsgEventBusNil)
		return
	}
	if err := s.eventBus.Publish(ctx, event.New(t, payload)); err != nil {
		log.Error(LogMsgPublishFailed, "type", t, "error", err)
	}
}
