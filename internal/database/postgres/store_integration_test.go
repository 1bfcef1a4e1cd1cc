package postgres

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/repository"
)

func insertProject(t *testing.T, s *Store, owner string) *domain.Project {
	t.Helper()
	ctx := context.Background()

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	id, err := tx.NextProjectID(ctx)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &domain.Project{
		ID: id, Owner: owner, BoxPrice: 1_000_000, Active: true, Preset: domain.PresetTwo,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, tx.InsertProject(ctx, p))
	require.NoError(t, tx.Commit(ctx))
	return p
}

func TestStore_ProjectRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := insertProject(t, s, "owner-rt")

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Owner, got.Owner)
	assert.Equal(t, p.BoxPrice, got.BoxPrice)
	assert.Equal(t, domain.PresetTwo, got.Preset)
	assert.True(t, got.Active)

	_, err = s.GetProject(ctx, math.MaxUint64)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	ids, err := s.ListProjectIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, p.ID)
}

func TestStore_BoxLifecycleColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := insertProject(t, s, "owner-box")

	created := time.Now().UTC().Truncate(time.Microsecond)
	box := &domain.Box{
		ProjectID: p.ID, ID: 1, Owner: "alice", CreatedAt: created,
		Luck: 5, PurchasedPrice: 1_000_000, CommissionPaid: 10_000,
	}

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertBox(ctx, box))
	assert.ErrorIs(t, tx.InsertBox(ctx, box), repository.ErrDuplicateKey)
	repository.SafeRollback(ctx, tx)

	tx, err = s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertBox(ctx, box))
	require.NoError(t, tx.Commit(ctx))

	tx, err = s.BeginTx(ctx)
	require.NoError(t, err)
	locked, err := tx.GetBoxForUpdate(ctx, p.ID, 1)
	require.NoError(t, err)
	committedAt := created.Add(time.Minute)
	locked.CommittedAt = &committedAt
	locked.CommittedCheckpoint = 12345
	locked.RandomnessCommitted = true
	locked.RandomnessHandle = "h-1"
	locked.Revealed = true
	locked.RewardTier = domain.TierRebate
	locked.RewardAmount = 500_000
	locked.RandomBP = 7199
	require.NoError(t, tx.UpdateBox(ctx, locked))
	require.NoError(t, tx.Commit(ctx))

	got, err := s.GetBox(ctx, p.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, got.CommittedAt)
	assert.True(t, committedAt.Equal(*got.CommittedAt))
	assert.Equal(t, uint64(12345), got.CommittedCheckpoint)
	assert.Equal(t, domain.TierRebate, got.RewardTier)
	assert.Equal(t, uint16(7199), got.RandomBP)
	assert.Equal(t, uint64(10_000), got.CommissionPaid)
	assert.Equal(t, domain.BoxStateRevealed, got.State())

	unsettled, err := s.ListUnsettledBoxes(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, unsettled, 1)

	_, err = s.GetBox(ctx, p.ID, 2)
	assert.ErrorIs(t, err, domain.ErrBoxNotFound)
}

func TestStore_LedgerTransfers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := ledger.WalletAccount("alice-ledger")
	vault := ledger.VaultAccount(999_001)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Credit(ctx, alice, 100))
	require.NoError(t, tx.Transfer(ctx, alice, vault, 70))
	assert.ErrorIs(t, tx.Transfer(ctx, alice, vault, 31), domain.ErrInsufficientFunds)
	require.NoError(t, tx.Commit(ctx))

	bal, err := s.Balance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), bal)
	bal, err = s.Balance(ctx, vault)
	require.NoError(t, err)
	assert.Equal(t, uint64(70), bal)

	bal, err = s.Balance(ctx, ledger.WalletAccount("never-seen"))
	require.NoError(t, err)
	assert.Zero(t, bal)

	tx, err = s.BeginTx(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, tx.Credit(ctx, alice, math.MaxUint64), domain.ErrArithmeticOverflow)
	require.NoError(t, tx.Credit(ctx, alice, math.MaxInt64-30))
	assert.ErrorIs(t, tx.Credit(ctx, alice, 1), domain.ErrArithmeticOverflow)
	repository.SafeRollback(ctx, tx)

	bal, err = s.Balance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), bal, "rolled back credits leave no trace")
}

func TestStore_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	src := ledger.WalletAccount("race-src")
	dst := ledger.TreasuryAccount

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Credit(ctx, src, 10))
	require.NoError(t, tx.Commit(ctx))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := s.BeginTx(ctx)
			if err != nil {
				return
			}
			defer repository.SafeRollback(ctx, tx)
			if tx.Transfer(ctx, src, dst, 1) != nil {
				return
			}
			if tx.Commit(ctx) == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, successes)
	bal, err := s.Balance(ctx, src)
	require.NoError(t, err)
	assert.Zero(t, bal)
}

func TestToDB(t *testing.T) {
	v, err := toDB(math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), v)

	_, err = toDB(math.MaxInt64 + 1)
	assert.ErrorIs(t, err, domain.ErrArithmeticOverflow)

	assert.Zero(t, fromDB(-1))
	assert.Equal(t, uint64(42), fromDB(42))
}
