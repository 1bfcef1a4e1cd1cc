// Package project keeps the bookkeeping for box sellers: price, preset,
// luck interval override and the vault that backs their payouts.
package project

import (
	"context"
	"fmt"

	"github.com/osse101/DegenBox_Go/internal/clock"
	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/event"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/logger"
	"github.com/osse101/DegenBox_Go/internal/repository"
)

// CreateRequest holds the initial settings of a project
type CreateRequest struct {
	BoxPrice             uint64
	LuckIntervalOverride int64
	Preset               domain.PresetID
}

// Service defines the interface for project operations
type Service interface {
	CreateProject(ctx context.Context, caller string, req CreateRequest) (*domain.Project, error)
	UpdateProject(ctx context.Context, caller string, projectID uint64, upd domain.ProjectUpdate) (*domain.Project, error)
	FundVault(ctx context.Context, caller string, projectID, amount uint64) (uint64, error)
	GetProject(ctx context.Context, projectID uint64) (*domain.Project, error)
}

type service struct {
	store repository.Store
	clock clock.Clock
	cache *projectCache
}

// NewService creates a new project service. When bus is non-nil the read
// cache drops projects touched by box and vault events.
func NewService(store repository.Store, clk clock.Clock, bus event.Bus) Service {
	s := &service{
		store: store,
		clock: clk,
		cache: newProjectCache(CacheSize, CacheTTL),
	}
	if bus != nil {
		for _, t := range []event.Type{event.BoxCreated, event.BoxSettled, event.BoxRefunded, event.VaultWithdrawn} {
			bus.Subscribe(t, s.cache.invalidationHandler)
		}
	}
	return s
}

func (s *service) CreateProject(ctx context.Context, caller string, req CreateRequest) (*domain.Project, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreateProjectCalled, "owner", caller, "box_price", req.BoxPrice, "preset", req.Preset)

	if caller == "" {
		return nil, domain.ErrInvalidIdentity
	}
	if err := validateSettings(req.BoxPrice, req.Preset, req.LuckIntervalOverride); err != nil {
		return nil, err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	id, err := tx.NextProjectID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextAllocateID, err)
	}

	now := s.clock.Now()
	p := &domain.Project{
		ID:                   id,
		Owner:                caller,
		BoxPrice:             req.BoxPrice,
		LuckIntervalOverride: req.LuckIntervalOverride,
		Active:               true,
		Preset:               req.Preset,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := tx.InsertProject(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextInsertProject, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}

	log.Info(LogMsgProjectCreated, "project_id", p.ID, "owner", p.Owner)
	return p, nil
}

func (s *service) UpdateProject(ctx context.Context, caller string, projectID uint64, upd domain.ProjectUpdate) (*domain.Project, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUpdateProjectCalled, "project_id", projectID, "caller", caller)

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetProjectForUpdate(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadProject, err)
	}
	if p.Owner != caller {
		return nil, domain.ErrNotProjectOwner
	}

	applyUpdate(p, upd)
	if err := validateSettings(p.BoxPrice, p.Preset, p.LuckIntervalOverride); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.clock.Now()

	if err := tx.UpdateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextUpdateProject, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}
	s.cache.Invalidate(projectID)

	log.Info(LogMsgProjectUpdated, "project_id", p.ID, "active", p.Active, "box_price", p.BoxPrice, "preset", p.Preset)
	return p, nil
}

// FundVault moves funds from the owner's wallet into the project vault and
// returns the new vault balance
func (s *service) FundVault(ctx context.Context, caller string, projectID, amount uint64) (uint64, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgFundVaultCalled, "project_id", projectID, "caller", caller, "amount", amount)

	if amount == 0 {
		return 0, domain.ErrInvalidAmount
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetProjectForUpdate(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextLoadProject, err)
	}
	if p.Owner != caller {
		return 0, domain.ErrNotProjectOwner
	}

	vault := ledger.VaultAccount(projectID)
	if err := tx.Transfer(ctx, ledger.WalletAccount(caller), vault, amount); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFundVault, err)
	}
	balance, err := tx.Balance(ctx, vault)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFundVault, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}

	log.Info(LogMsgVaultFunded, "project_id", projectID, "amount", amount, "balance", balance)
	return balance, nil
}

func (s *service) GetProject(ctx context.Context, projectID uint64) (*domain.Project, error) {
	if p, ok := s.cache.Get(projectID); ok {
		return p, nil
	}
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(p)
	return p, nil
}

func applyUpdate(p *domain.Project, upd domain.ProjectUpdate) {
	if upd.BoxPrice != nil {
		p.BoxPrice = *upd.BoxPrice
	}
	if upd.Active != nil {
		p.Active = *upd.Active
	}
	if upd.Preset != nil {
		p.Preset = *upd.Preset
	}
	if upd.LuckIntervalOverride != nil {
		p.LuckIntervalOverride = *upd.LuckIntervalOverride
	}
}

func validateSettings(price uint64, preset domain.PresetID, override int64) error {
	if price == 0 {
		return domain.ErrInvalidBoxPrice
	}
	if !preset.Valid() {
		return domain.ErrInvalidPreset
	}
	if override < 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, ErrMsgNegativeInterval)
	}
	return nil
}
