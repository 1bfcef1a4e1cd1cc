package box

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DegenBox_Go/internal/clock"
	"github.com/osse101/DegenBox_Go/internal/database/memory"
	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/event"
	"github.com/osse101/DegenBox_Go/internal/gameconfig"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/oracle"
	"github.com/osse101/DegenBox_Go/internal/payout"
)

const (
	testOwner  = "creator"
	testBuyer  = "buyer"
	testHandle = "handle-1"
	testPrice  = uint64(1_000_000)
)

var testStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store  *memory.Store
	clock  *clock.SimulatedClock
	oracle *MockOracle
	svc    Service
	cfg    domain.PlatformConfig

	mu     sync.Mutex
	events []event.Event
}

func newFixture(t *testing.T, mutate ...func(*domain.PlatformConfig)) *fixture {
	t.Helper()
	cfg := domain.DefaultPlatformConfig()
	cfg.CommissionBPS = 100
	for _, m := range mutate {
		m(&cfg)
	}

	f := &fixture{
		store:  memory.NewStore(),
		clock:  clock.NewSimulatedClock(testStart),
		oracle: new(MockOracle),
		cfg:    cfg,
	}
	bus := event.NewMemoryBus()
	for _, typ := range []event.Type{event.BoxCreated, event.BoxCommitted, event.BoxRevealed, event.BoxSettled, event.BoxRefunded, event.RandomnessPending} {
		bus.Subscribe(typ, func(_ context.Context, e event.Event) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.events = append(f.events, e)
			return nil
		})
	}
	f.svc = NewService(f.store, gameconfig.Static(cfg), f.oracle, f.clock, bus)
	return f
}

func (f *fixture) eventTypes() []event.Type {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]event.Type, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

// seed creates a project owned by testOwner and funds the buyer wallet and vault
func (f *fixture) seed(t *testing.T, project domain.Project, buyerFunds, vaultFunds uint64) *domain.Project {
	t.Helper()
	ctx := context.Background()
	tx, err := f.store.BeginTx(ctx)
	require.NoError(t, err)

	id, err := tx.NextProjectID(ctx)
	require.NoError(t, err)
	project.ID = id
	if project.Owner == "" {
		project.Owner = testOwner
	}
	if project.BoxPrice == 0 {
		project.BoxPrice = testPrice
	}
	require.NoError(t, tx.InsertProject(ctx, &project))
	require.NoError(t, tx.Credit(ctx, ledger.WalletAccount(testBuyer), buyerFunds))
	require.NoError(t, tx.Credit(ctx, ledger.VaultAccount(id), vaultFunds))
	require.NoError(t, tx.Commit(ctx))
	return &project
}

func (f *fixture) balance(t *testing.T, account ledger.AccountID) uint64 {
	t.Helper()
	b, err := f.store.Balance(context.Background(), account)
	require.NoError(t, err)
	return b
}

func (f *fixture) project(t *testing.T, id uint64) *domain.Project {
	t.Helper()
	p, err := f.store.GetProject(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) box(t *testing.T, projectID, boxID uint64) *domain.Box {
	t.Helper()
	b, err := f.store.GetBox(context.Background(), projectID, boxID)
	require.NoError(t, err)
	return b
}

// committed creates and commits one box for testBuyer
func (f *fixture) committed(t *testing.T, projectID uint64) *domain.Box {
	t.Helper()
	ctx := context.Background()
	b, err := f.svc.CreateBox(ctx, testBuyer, projectID)
	require.NoError(t, err)
	f.oracle.On("Request", mock.Anything).Return(testHandle, nil).Once()
	b, err = f.svc.CommitBox(ctx, testBuyer, projectID, b.ID)
	require.NoError(t, err)
	return b
}

// revealed takes a fresh box all the way to Revealed with the given sample
func (f *fixture) revealed(t *testing.T, projectID uint64, bp uint16) *domain.Box {
	t.Helper()
	b := f.committed(t, projectID)
	f.oracle.On("Reveal", mock.Anything, testHandle, b.CommittedCheckpoint).Return(rawFor(bp), nil).Once()
	b, err := f.svc.RevealBox(context.Background(), testBuyer, projectID, b.ID, testHandle)
	require.NoError(t, err)
	return b
}

func TestCreateBox(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, 3*testPrice, 0)
	ctx := context.Background()

	b, err := f.svc.CreateBox(ctx, testBuyer, p.ID)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), b.ID)
	assert.Equal(t, testBuyer, b.Owner)
	assert.Equal(t, testPrice, b.PurchasedPrice)
	assert.Equal(t, uint64(10_000), b.CommissionPaid)
	assert.Equal(t, uint8(5), b.Luck)
	assert.Equal(t, domain.BoxStateCreated, b.State())
	assert.Equal(t, domain.TierNone, b.RewardTier)
	assert.Zero(t, b.RewardAmount)
	assert.False(t, b.RandomnessCommitted)

	assert.Equal(t, uint64(990_000), f.balance(t, ledger.VaultAccount(p.ID)))
	assert.Equal(t, uint64(10_000), f.balance(t, ledger.TreasuryAccount))
	assert.Equal(t, 2*testPrice, f.balance(t, ledger.WalletAccount(testBuyer)))

	stored := f.project(t, p.ID)
	assert.Equal(t, uint64(1), stored.TotalBoxesCreated)
	assert.Equal(t, testPrice, stored.TotalRevenue)

	b2, err := f.svc.CreateBox(ctx, testBuyer, p.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), b2.ID)
	assert.Equal(t, []event.Type{event.BoxCreated, event.BoxCreated}, f.eventTypes())
}

func TestCreateBox_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		paused     bool
		project    domain.Project
		caller     string
		buyerFunds uint64
		projectID  uint64
		wantErr    error
	}{
		{"paused platform", true, domain.Project{Active: true}, testBuyer, testPrice, 1, domain.ErrPlatformPaused},
		{"inactive project", false, domain.Project{Active: false}, testBuyer, testPrice, 1, domain.ErrProjectInactive},
		{"unknown project", false, domain.Project{Active: true}, testBuyer, testPrice, 7, domain.ErrProjectNotFound},
		{"empty caller", false, domain.Project{Active: true}, "", testPrice, 1, domain.ErrInvalidIdentity},
		{"insufficient funds", false, domain.Project{Active: true}, testBuyer, testPrice - 1, 1, domain.ErrInsufficientFunds},
		{"id overflow", false, domain.Project{Active: true, TotalBoxesCreated: ^uint64(0)}, testBuyer, testPrice, 1, domain.ErrArithmeticOverflow},
		{"revenue overflow", false, domain.Project{Active: true, TotalRevenue: ^uint64(0)}, testBuyer, testPrice, 1, domain.ErrArithmeticOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(c *domain.PlatformConfig) { c.Paused = tt.paused })
			p := f.seed(t, tt.project, tt.buyerFunds, 0)

			_, err := f.svc.CreateBox(context.Background(), tt.caller, tt.projectID)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, tt.buyerFunds, f.balance(t, ledger.WalletAccount(testBuyer)))
			assert.Zero(t, f.balance(t, ledger.VaultAccount(p.ID)))
			assert.Zero(t, f.balance(t, ledger.TreasuryAccount))
			assert.Equal(t, tt.project.TotalBoxesCreated, f.project(t, p.ID).TotalBoxesCreated)
			assert.Empty(t, f.eventTypes())
		})
	}
}

func TestCreateBox_CommissionTransferFailureAbortsPurchase(t *testing.T) {
	// Creator share is affordable but the commission leg is not
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, 990_000, 0)

	_, err := f.svc.CreateBox(context.Background(), testBuyer, p.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.Equal(t, uint64(990_000), f.balance(t, ledger.WalletAccount(testBuyer)))
	assert.Zero(t, f.balance(t, ledger.VaultAccount(p.ID)))
	_, err = f.store.GetBox(context.Background(), p.ID, 1)
	assert.ErrorIs(t, err, domain.ErrBoxNotFound)
}

func TestCommitBox(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true, Preset: domain.PresetTwo}, testPrice, 0)
	ctx := context.Background()

	b, err := f.svc.CreateBox(ctx, testBuyer, p.ID)
	require.NoError(t, err)

	// Two full intervals plus change
	f.clock.Advance(2*3*time.Hour + time.Minute)
	f.oracle.On("Request", mock.Anything).Return(testHandle, nil).Once()

	b, err = f.svc.CommitBox(ctx, testBuyer, p.ID, b.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.BoxStateCommitted, b.State())
	assert.Equal(t, uint8(7), b.Luck)
	assert.Equal(t, domain.PresetTwo, b.PresetSnapshot)
	assert.Equal(t, testHandle, b.RandomnessHandle)
	assert.Equal(t, f.clock.Height(), b.CommittedCheckpoint)
	require.NotNil(t, b.CommittedAt)
	assert.Equal(t, f.clock.Now(), *b.CommittedAt)
	f.oracle.AssertExpectations(t)

	_, err = f.svc.CommitBox(ctx, testBuyer, p.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCommitted)
}

func TestCommitBox_UsesProjectLuckOverride(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true, LuckIntervalOverride: 60}, testPrice, 0)
	ctx := context.Background()

	b, err := f.svc.CreateBox(ctx, testBuyer, p.ID)
	require.NoError(t, err)
	f.clock.Advance(10 * time.Minute)
	f.oracle.On("Request", mock.Anything).Return(testHandle, nil).Once()

	b, err = f.svc.CommitBox(ctx, testBuyer, p.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, uint8(15), b.Luck)
}

func TestCommitBox_Rejections(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, testPrice, 0)
	ctx := context.Background()

	b, err := f.svc.CreateBox(ctx, testBuyer, p.ID)
	require.NoError(t, err)

	_, err = f.svc.CommitBox(ctx, "mallory", p.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotBoxOwner)

	_, err = f.svc.CommitBox(ctx, testBuyer, p.ID, 99)
	assert.ErrorIs(t, err, domain.ErrBoxNotFound)

	f.oracle.AssertNotCalled(t, "Request", mock.Anything)
	assert.False(t, f.box(t, p.ID, b.ID).RandomnessCommitted)
}

func TestCommitBox_FreezesPriceAndPreset(t *testing.T) {
	f := newFixture(t, func(c *domain.PlatformConfig) {
		c.Presets[domain.PresetThree].Payouts.JackpotBP = 90000
	})
	p := f.seed(t, domain.Project{Active: true, Preset: domain.PresetOne}, 2*testPrice, 10*testPrice)
	ctx := context.Background()

	b := f.committed(t, p.ID)

	// Owner changes the project after commit
	tx, err := f.store.BeginTx(ctx)
	require.NoError(t, err)
	locked, err := tx.GetProjectForUpdate(ctx, p.ID)
	require.NoError(t, err)
	locked.BoxPrice = 5
	locked.Preset = domain.PresetThree
	require.NoError(t, tx.UpdateProject(ctx, locked))
	require.NoError(t, tx.Commit(ctx))

	f.oracle.On("Reveal", mock.Anything, testHandle, b.CommittedCheckpoint).Return(rawFor(9999), nil).Once()
	b, err = f.svc.RevealBox(ctx, testBuyer, p.ID, b.ID, testHandle)
	require.NoError(t, err)

	assert.Equal(t, testPrice, b.PurchasedPrice)
	assert.Equal(t, domain.PresetOne, b.PresetSnapshot)
	assert.Equal(t, domain.TierJackpot, b.RewardTier)
	// PresetOne pays 4x, the live PresetThree would pay 9x
	assert.Equal(t, uint64(4_000_000), b.RewardAmount)
	assert.NotEqual(t, uint64(9_000_000), b.RewardAmount)
}

func TestCommitBox_FrozenPresetOddsApply(t *testing.T) {
	f := newFixture(t, func(c *domain.PlatformConfig) {
		c.Presets[domain.PresetThree].Bands[0] = domain.BandOdds{DudBP: 10000}
	})
	p := f.seed(t, domain.Project{Active: true, Preset: domain.PresetOne}, 2*testPrice, 10*testPrice)
	ctx := context.Background()

	b := f.committed(t, p.ID)

	tx, err := f.store.BeginTx(ctx)
	require.NoError(t, err)
	locked, err := tx.GetProjectForUpdate(ctx, p.ID)
	require.NoError(t, err)
	locked.Preset = domain.PresetThree
	require.NoError(t, tx.UpdateProject(ctx, locked))
	require.NoError(t, tx.Commit(ctx))

	f.oracle.On("Reveal", mock.Anything, testHandle, b.CommittedCheckpoint).Return(rawFor(5000), nil).Once()
	b, err = f.svc.RevealBox(ctx, testBuyer, p.ID, b.ID, testHandle)
	require.NoError(t, err)

	// all-dud odds on the live preset must not reach a box committed under PresetOne
	assert.Equal(t, domain.TierRebate, b.RewardTier)
	assert.Equal(t, uint64(500_000), b.RewardAmount)
	assert.Equal(t, domain.PresetThree, f.project(t, p.ID).Preset)
	assert.Equal(t, domain.PresetOne, b.PresetSnapshot)
}

func TestRevealBox(t *testing.T) {
	tests := []struct {
		name      string
		bp        uint16
		wantTier  domain.Tier
		wantPay   uint64
		isJackpot bool
	}{
		{"rebate boundary", 7199, domain.TierRebate, 500_000, false},
		{"rebate inclusive upper", 7200, domain.TierRebate, 500_000, false},
		{"break even", 7201, domain.TierBreakEven, 1_000_000, false},
		{"profit", 9800, domain.TierProfit, 1_500_000, false},
		{"jackpot", 9999, domain.TierJackpot, 4_000_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.seed(t, domain.Project{Active: true}, testPrice, 0)

			b := f.revealed(t, p.ID, tt.bp)

			assert.Equal(t, domain.BoxStateRevealed, b.State())
			assert.Equal(t, tt.wantTier, b.RewardTier)
			assert.Equal(t, tt.wantPay, b.RewardAmount)
			assert.Equal(t, tt.isJackpot, b.IsJackpot)
			assert.Equal(t, tt.bp, b.RandomBP)
			f.oracle.AssertExpectations(t)
		})
	}
}

func TestRevealBox_Rejections(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, 2*testPrice, 0)
	ctx := context.Background()

	fresh, err := f.svc.CreateBox(ctx, testBuyer, p.ID)
	require.NoError(t, err)
	_, err = f.svc.RevealBox(ctx, testBuyer, p.ID, fresh.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotCommitted)

	b := f.committed(t, p.ID)
	_, err = f.svc.RevealBox(ctx, testBuyer, p.ID, b.ID, "other-handle")
	assert.ErrorIs(t, err, domain.ErrRandomnessHandleMismatch)

	_, err = f.svc.RevealBox(ctx, "mallory", p.ID, b.ID, testHandle)
	assert.ErrorIs(t, err, domain.ErrNotBoxOwner)

	f.oracle.AssertNotCalled(t, "Reveal", mock.Anything, mock.Anything, mock.Anything)

	f.oracle.On("Reveal", mock.Anything, testHandle, b.CommittedCheckpoint).Return(rawFor(0), nil).Once()
	_, err = f.svc.RevealBox(ctx, testBuyer, p.ID, b.ID, testHandle)
	require.NoError(t, err)

	_, err = f.svc.RevealBox(ctx, testBuyer, p.ID, b.ID, testHandle)
	assert.ErrorIs(t, err, domain.ErrAlreadyRevealed)
}

func TestRevealBox_NotReadyIsRetryable(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, testPrice, 0)
	ctx := context.Background()

	b := f.committed(t, p.ID)
	f.oracle.On("Reveal", mock.Anything, testHandle, b.CommittedCheckpoint).Return(nil, domain.ErrRandomnessNotReady).Once()

	_, err := f.svc.RevealBox(ctx, testBuyer, p.ID, b.ID, testHandle)
	require.ErrorIs(t, err, domain.ErrRandomnessNotReady)
	assert.True(t, domain.IsRetryable(err))
	assert.Equal(t, domain.BoxStateCommitted, f.box(t, p.ID, b.ID).State())
	assert.Contains(t, f.eventTypes(), event.RandomnessPending)

	// Retry succeeds once the value is final
	f.oracle.On("Reveal", mock.Anything, testHandle, b.CommittedCheckpoint).Return(rawFor(100), nil).Once()
	b, err = f.svc.RevealBox(ctx, testBuyer, p.ID, b.ID, testHandle)
	require.NoError(t, err)
	assert.Equal(t, domain.TierRebate, b.RewardTier)
}

func TestRevealBox_WindowExpiryForcesDud(t *testing.T) {
	tests := []struct {
		name        string
		elapsed     time.Duration
		wantExpired bool
	}{
		{"inside window", time.Hour - time.Second, false},
		{"exactly at window", time.Hour, false},
		{"past window", time.Hour + time.Second, true},
		{"long past window", 30 * 24 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.seed(t, domain.Project{Active: true}, testPrice, 0)
			ctx := context.Background()

			b := f.committed(t, p.ID)
			f.clock.Advance(tt.elapsed)
			if !tt.wantExpired {
				f.oracle.On("Reveal", mock.Anything, testHandle, b.CommittedCheckpoint).Return(rawFor(9999), nil).Once()
			}

			b, err := f.svc.RevealBox(ctx, testBuyer, p.ID, b.ID, testHandle)
			require.NoError(t, err)
			assert.True(t, b.Revealed)

			if tt.wantExpired {
				assert.Equal(t, domain.TierDud, b.RewardTier)
				assert.Zero(t, b.RewardAmount)
				assert.False(t, b.IsJackpot)
				f.oracle.AssertNotCalled(t, "Reveal", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.Equal(t, domain.TierJackpot, b.RewardTier)
			}
		})
	}
}

func TestSettleBox(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, testPrice, 0)
	ctx := context.Background()

	b := f.revealed(t, p.ID, 9800)
	require.Equal(t, uint64(1_500_000), b.RewardAmount)

	// Vault holds only the creator share so far
	_, err := f.svc.SettleBox(ctx, testBuyer, p.ID, b.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.False(t, f.box(t, p.ID, b.ID).Settled)
	assert.Zero(t, f.project(t, p.ID).TotalBoxesSettled)

	tx, err := f.store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Credit(ctx, ledger.VaultAccount(p.ID), 510_000))
	require.NoError(t, tx.Commit(ctx))

	_, err = f.svc.SettleBox(ctx, "mallory", p.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotBoxOwner)

	b, err = f.svc.SettleBox(ctx, testBuyer, p.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BoxStateSettled, b.State())
	assert.Equal(t, uint64(1_500_000), f.balance(t, ledger.WalletAccount(testBuyer)))
	assert.Zero(t, f.balance(t, ledger.VaultAccount(p.ID)))

	stored := f.project(t, p.ID)
	assert.Equal(t, uint64(1), stored.TotalBoxesSettled)
	assert.Equal(t, uint64(1_500_000), stored.TotalPaidOut)

	_, err = f.svc.SettleBox(ctx, testBuyer, p.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
}

func TestSettleBox_ZeroRewardSkipsTransfer(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, testPrice, 0)
	ctx := context.Background()

	b := f.committed(t, p.ID)
	f.clock.Advance(2 * time.Hour)
	b, err := f.svc.RevealBox(ctx, testBuyer, p.ID, b.ID, testHandle)
	require.NoError(t, err)
	require.Equal(t, domain.TierDud, b.RewardTier)

	vaultBefore := f.balance(t, ledger.VaultAccount(p.ID))
	b, err = f.svc.SettleBox(ctx, testBuyer, p.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, b.Settled)
	assert.Equal(t, vaultBefore, f.balance(t, ledger.VaultAccount(p.ID)))
	assert.Equal(t, uint64(1), f.project(t, p.ID).TotalBoxesSettled)
	assert.Zero(t, f.project(t, p.ID).TotalPaidOut)
}

func TestSettleBox_NotRevealed(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, testPrice, 0)

	b := f.committed(t, p.ID)
	_, err := f.svc.SettleBox(context.Background(), testBuyer, p.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotRevealed)
}

func TestSettleBox_PaidOutOverflowAborts(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, testPrice, 10*testPrice)
	ctx := context.Background()

	b := f.revealed(t, p.ID, 9999)

	tx, err := f.store.BeginTx(ctx)
	require.NoError(t, err)
	locked, err := tx.GetProjectForUpdate(ctx, p.ID)
	require.NoError(t, err)
	locked.TotalPaidOut = ^uint64(0) - 1
	require.NoError(t, tx.UpdateProject(ctx, locked))
	require.NoError(t, tx.Commit(ctx))

	vaultBefore := f.balance(t, ledger.VaultAccount(p.ID))
	_, err = f.svc.SettleBox(ctx, testBuyer, p.ID, b.ID)
	require.ErrorIs(t, err, domain.ErrArithmeticOverflow)
	assert.False(t, f.box(t, p.ID, b.ID).Settled)
	assert.Equal(t, vaultBefore, f.balance(t, ledger.VaultAccount(p.ID)))
}

func TestRefundBox(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		wantErr error
	}{
		{"immediately", 0, domain.ErrRefundTooEarly},
		{"one second early", 119 * time.Second, domain.ErrRefundTooEarly},
		{"exactly at grace", 120 * time.Second, nil},
		{"after window", 2 * time.Hour, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.seed(t, domain.Project{Active: true}, testPrice, 0)
			ctx := context.Background()

			b := f.committed(t, p.ID)
			f.clock.Advance(tt.elapsed)

			got, err := f.svc.RefundBox(ctx, testBuyer, p.ID, b.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.BoxStateCommitted, f.box(t, p.ID, b.ID).State())
				assert.Zero(t, f.balance(t, ledger.WalletAccount(testBuyer)))
				return
			}
			require.NoError(t, err)

			// price - floor(price * 100 / 10000)
			assert.Equal(t, uint64(990_000), f.balance(t, ledger.WalletAccount(testBuyer)))
			assert.Zero(t, f.balance(t, ledger.VaultAccount(p.ID)))
			assert.Equal(t, domain.TierRefunded, got.RewardTier)
			assert.True(t, got.Revealed)
			assert.True(t, got.Settled)

			stored := f.project(t, p.ID)
			assert.Equal(t, uint64(1), stored.TotalBoxesSettled)
			assert.Equal(t, uint64(990_000), stored.TotalPaidOut)

			_, err = f.svc.RefundBox(ctx, testBuyer, p.ID, b.ID)
			assert.ErrorIs(t, err, domain.ErrAlreadySettled)
			assert.Equal(t, uint64(990_000), f.balance(t, ledger.WalletAccount(testBuyer)))
		})
	}
}

func TestRefundBox_UsesCommissionAtPurchase(t *testing.T) {
	f := newFixture(t, func(c *domain.PlatformConfig) { c.CommissionBPS = 333 })
	p := f.seed(t, domain.Project{Active: true, BoxPrice: 1_001}, 1_001, 0)
	ctx := context.Background()

	b := f.committed(t, p.ID)
	f.clock.Advance(5 * time.Minute)

	_, err := f.svc.RefundBox(ctx, testBuyer, p.ID, b.ID)
	require.NoError(t, err)
	// floor(1001 * 333 / 10000) = 33
	assert.Equal(t, uint64(968), f.balance(t, ledger.WalletAccount(testBuyer)))
}

func TestRefundBox_Rejections(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, 2*testPrice, 0)
	ctx := context.Background()

	fresh, err := f.svc.CreateBox(ctx, testBuyer, p.ID)
	require.NoError(t, err)
	_, err = f.svc.RefundBox(ctx, testBuyer, p.ID, fresh.ID)
	assert.ErrorIs(t, err, domain.ErrNotCommitted)

	b := f.revealed(t, p.ID, 10)
	f.clock.Advance(time.Hour)
	_, err = f.svc.RefundBox(ctx, testBuyer, p.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyRevealed)

	_, err = f.svc.RefundBox(ctx, "mallory", p.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotBoxOwner)
}

func TestLifecycle_EndToEnd(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true}, testPrice, 0)
	ctx := context.Background()

	b := f.revealed(t, p.ID, 7199)
	assert.Equal(t, uint8(5), b.Luck)
	assert.Equal(t, domain.TierRebate, b.RewardTier)
	assert.Equal(t, uint64(500_000), b.RewardAmount)

	b, err := f.svc.SettleBox(ctx, testBuyer, p.ID, b.ID)
	require.NoError(t, err)

	assert.Equal(t, uint64(500_000), f.balance(t, ledger.WalletAccount(testBuyer)))
	assert.Equal(t, uint64(490_000), f.balance(t, ledger.VaultAccount(p.ID)))
	assert.Equal(t, uint64(10_000), f.balance(t, ledger.TreasuryAccount))

	stored := f.project(t, p.ID)
	assert.Equal(t, uint64(1), stored.TotalBoxesCreated)
	assert.Equal(t, uint64(1), stored.TotalBoxesSettled)
	assert.Equal(t, testPrice, stored.TotalRevenue)
	assert.Equal(t, uint64(500_000), stored.TotalPaidOut)

	assert.Equal(t, []event.Type{event.BoxCreated, event.BoxCommitted, event.BoxRevealed, event.BoxSettled}, f.eventTypes())
}

func TestLifecycle_LocalOracle(t *testing.T) {
	cfg := domain.DefaultPlatformConfig()
	store := memory.NewStore()
	clk := clock.NewSimulatedClock(testStart)
	orc, err := oracle.NewLocal([]byte("0123456789abcdef0123"), 5, clk)
	require.NoError(t, err)
	svc := NewService(store, gameconfig.Static(cfg), orc, clk, event.NewMemoryBus())
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	id, err := tx.NextProjectID(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertProject(ctx, &domain.Project{ID: id, Owner: testOwner, BoxPrice: testPrice, Active: true}))
	require.NoError(t, tx.Credit(ctx, ledger.WalletAccount(testBuyer), testPrice))
	require.NoError(t, tx.Commit(ctx))

	b, err := svc.CreateBox(ctx, testBuyer, id)
	require.NoError(t, err)
	b, err = svc.CommitBox(ctx, testBuyer, id, b.ID)
	require.NoError(t, err)

	_, err = svc.RevealBox(ctx, testBuyer, id, b.ID, b.RandomnessHandle)
	require.ErrorIs(t, err, domain.ErrRandomnessNotReady)

	clk.Advance(5 * time.Second)
	b, err = svc.RevealBox(ctx, testBuyer, id, b.ID, b.RandomnessHandle)
	require.NoError(t, err)
	assert.True(t, b.Revealed)

	raw, err := orc.Reveal(ctx, b.RandomnessHandle, b.CommittedCheckpoint)
	require.NoError(t, err)
	want, err := payout.ToBasisPoints(raw)
	require.NoError(t, err)
	assert.Equal(t, want, b.RandomBP)
}

func TestCreateBox_ConcurrentPurchasesGetUniqueIDs(t *testing.T) {
	const buyers = 20
	f := newFixture(t)
	p := f.seed(t, domain.Project{Active: true, BoxPrice: 100}, buyers*100, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan uint64, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := f.svc.CreateBox(ctx, testBuyer, p.ID)
			if assert.NoError(t, err) {
				ids <- b.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate box id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, buyers)
	assert.Equal(t, uint64(buyers), f.project(t, p.ID).TotalBoxesCreated)
	assert.Zero(t, f.balance(t, ledger.WalletAccount(testBuyer)))
}
