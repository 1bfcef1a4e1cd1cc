// Package vault covers the money leaving the system: project earnings
// withdrawals guarded by a pending reserve, treasury withdrawals and
// administrative credits.
package vault

import (
	"context"
	"fmt"

	"github.com/osse101/DegenBox_Go/internal/clock"
	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/event"
	"github.com/osse101/DegenBox_Go/internal/gameconfig"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/logger"
	"github.com/osse101/DegenBox_Go/internal/repository"
)

// WithdrawRequest asks for amount out of a project vault. PendingReserve is
// the liability still owed to box holders; nil means use the cached snapshot.
type WithdrawRequest struct {
	Amount         uint64
	PendingReserve *uint64
}

// WithdrawResult reports a completed withdrawal
type WithdrawResult struct {
	ProjectID      uint64 `json:"project_id"`
	Amount         uint64 `json:"amount"`
	PendingReserve uint64 `json:"pending_reserve"`
	Balance        uint64 `json:"vault_balance"`
}

// Summary is a read-only view of a project vault
type Summary struct {
	ProjectID      uint64    `json:"project_id"`
	Balance        uint64    `json:"vault_balance"`
	UnsettledBoxes int       `json:"unsettled_boxes"`
	Reserve        *Snapshot `json:"reserve_snapshot,omitempty"`
	Available      *uint64   `json:"available,omitempty"`
}

// Service defines the interface for vault and treasury operations
type Service interface {
	WithdrawEarnings(ctx context.Context, caller string, projectID uint64, req WithdrawRequest) (*WithdrawResult, error)
	WithdrawTreasury(ctx context.Context, caller string, recipient ledger.AccountID, amount uint64) (uint64, error)
	CreditAccount(ctx context.Context, caller string, account ledger.AccountID, amount uint64) (uint64, error)
	GetSummary(ctx context.Context, projectID uint64) (*Summary, error)
}

type service struct {
	store    repository.Store
	config   gameconfig.Provider
	reserves *ReserveCache
	mode     ReserveMode
	adminID  string
	clock    clock.Clock
	eventBus event.Bus
}

// NewService creates a new vault service
func NewService(store repository.Store, config gameconfig.Provider, reserves *ReserveCache, mode ReserveMode, adminID string, clk clock.Clock, bus event.Bus) (Service, error) {
	switch mode {
	case ReserveModeCaller, ReserveModeMax:
	default:
		return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidConfig, ErrMsgUnknownReserveMode, mode)
	}
	return &service{
		store:    store,
		config:   config,
		reserves: reserves,
		mode:     mode,
		adminID:  adminID,
		clock:    clk,
		eventBus: bus,
	}, nil
}

// WithdrawEarnings pays amount from the project vault to the owner's wallet
// as long as amount <= balance - pending reserve
func (s *service) WithdrawEarnings(ctx context.Context, caller string, projectID uint64, req WithdrawRequest) (*WithdrawResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWithdrawEarningsCalled, "project_id", projectID, "caller", caller, "amount", req.Amount)

	if req.Amount == 0 {
		return nil, domain.ErrInvalidAmount
	}
	reserve, err := s.pendingReserve(ctx, projectID, req.PendingReserve)
	if err != nil {
		return nil, err
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
	if p.Owner != caller {
		return nil, domain.ErrNotProjectOwner
	}

	if s.mode == ReserveModeMax {
		estimate, err := estimateFromCounters(p, s.config.Get())
		if err != nil {
			return nil, err
		}
		reserve = max(reserve, estimate)
	}

	vault := ledger.VaultAccount(projectID)
	balance, err := tx.Balance(ctx, vault)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadBalance, err)
	}
	if balance < reserve || req.Amount > balance-reserve {
		return nil, domain.ErrWithdrawalExceedsAvailable
	}

	if err := tx.Transfer(ctx, vault, ledger.WalletAccount(p.Owner), req.Amount); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextWithdraw, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}

	res := &WithdrawResult{
		ProjectID:      projectID,
		Amount:         req.Amount,
		PendingReserve: reserve,
		Balance:        balance - req.Amount,
	}
	log.Info(LogMsgEarningsWithdrawn, "project_id", projectID, "amount", res.Amount, "pending_reserve", reserve, "balance", res.Balance)
	s.publish(ctx, event.VaultWithdrawn, domain.WithdrawalPayload{
		ProjectID:      projectID,
		Recipient:      p.Owner,
		Amount:         req.Amount,
		PendingReserve: reserve,
		Timestamp:      s.clock.Now().Unix(),
	})
	return res, nil
}

func (s *service) pendingReserve(ctx context.Context, projectID uint64, supplied *uint64) (uint64, error) {
	if supplied != nil {
		return *supplied, nil
	}
	if s.reserves != nil {
		if snap, ok := s.reserves.Get(projectID); ok {
			logger.FromContext(ctx).Info(LogMsgReserveFromCache, "project_id", projectID, "pending_reserve", snap.Reserve, "taken_at", snap.TakenAt)
			return snap.Reserve, nil
		}
	}
	return 0, domain.ErrReserveUnknown
}

// WithdrawTreasury moves accumulated commission to recipient. Reserves do not
// apply to the treasury. Returns the remaining treasury balance.
func (s *service) WithdrawTreasury(ctx context.Context, caller string, recipient ledger.AccountID, amount uint64) (uint64, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWithdrawTreasuryCalled, "caller", caller, "recipient", recipient, "amount", amount)

	if err := s.requireAdmin(caller); err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, domain.ErrInvalidAmount
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.Transfer(ctx, ledger.TreasuryAccount, recipient, amount); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextWithdraw, err)
	}
	remaining, err := tx.Balance(ctx, ledger.TreasuryAccount)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextLoadBalance, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}

	log.Info(LogMsgTreasuryWithdrawn, "recipient", recipient, "amount", amount, "remaining", remaining)
	s.publish(ctx, event.TreasuryWithdrawn, domain.WithdrawalPayload{
		Recipient: string(recipient),
		Amount:    amount,
		Timestamp: s.clock.Now().Unix(),
	})
	return remaining, nil
}

// CreditAccount records an external deposit into account
func (s *service) CreditAccount(ctx context.Context, caller string, account ledger.AccountID, amount uint64) (uint64, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreditAccountCalled, "caller", caller, "account", account, "amount", amount)

	if err := s.requireAdmin(caller); err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, domain.ErrInvalidAmount
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.Credit(ctx, account, amount); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextCredit, err)
	}
	balance, err := tx.Balance(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextLoadBalance, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextCommit, err)
	}

	log.Info(LogMsgAccountCredited, "account", account, "amount", amount, "balance", balance)
	return balance, nil
}

func (s *service) GetSummary(ctx context.Context, projectID uint64) (*Summary, error) {
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	balance, err := s.store.Balance(ctx, ledger.VaultAccount(projectID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadBalance, err)
	}
	boxes, err := s.store.ListUnsettledBoxes(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListBoxes, err)
	}

	sum := &Summary{
		ProjectID:      projectID,
		Balance:        balance,
		UnsettledBoxes: len(boxes),
	}
	if s.reserves != nil {
		if snap, ok := s.reserves.Get(projectID); ok {
			var available uint64
			if balance > snap.Reserve {
				available = balance - snap.Reserve
			}
			sum.Reserve = &snap
			sum.Available = &available
		}
	}
	return sum, nil
}

func (s *service) requireAdmin(caller string) error {
	if s.adminID == "" || caller != s.adminID {
		return domain.ErrNotAdmin
	}
	return nil
}

func (s *service) publish(ctx context.Context, t event.Type, payload any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event.New(t, payload)); err != nil {
		logger.FromContext(ctx).Error(LogMsgPublishFailed, "type", t, "error", err)
	}
}
