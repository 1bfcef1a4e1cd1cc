package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DegenBox_Go/internal/clock"
	"github.com/osse101/DegenBox_Go/internal/database/memory"
	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/event"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/repository"
)

var testStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*memory.Store, *clock.SimulatedClock, *event.MemoryBus, Service) {
	t.Helper()
	store := memory.NewStore()
	clk := clock.NewSimulatedClock(testStart)
	bus := event.NewMemoryBus()
	return store, clk, bus, NewService(store, clk, bus)
}

func credit(t *testing.T, store repository.Store, account ledger.AccountID, amount uint64) {
	t.Helper()
	ctx := context.Background()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Credit(ctx, account, amount))
	require.NoError(t, tx.Commit(ctx))
}

func ptr[T any](v T) *T { return &v }

func TestCreateProject(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		req     CreateRequest
		wantErr error
	}{
		{"valid", "alice", CreateRequest{BoxPrice: 1_000_000, Preset: domain.PresetTwo}, nil},
		{"with override", "alice", CreateRequest{BoxPrice: 5, LuckIntervalOverride: 60}, nil},
		{"empty caller", "", CreateRequest{BoxPrice: 1}, domain.ErrInvalidIdentity},
		{"zero price", "alice", CreateRequest{BoxPrice: 0}, domain.ErrInvalidBoxPrice},
		{"bad preset", "alice", CreateRequest{BoxPrice: 1, Preset: 4}, domain.ErrInvalidPreset},
		{"negative override", "alice", CreateRequest{BoxPrice: 1, LuckIntervalOverride: -1}, domain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, svc := setup(t)
			p, err := svc.CreateProject(context.Background(), tt.caller, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(1), p.ID)
			assert.Equal(t, tt.caller, p.Owner)
			assert.Equal(t, tt.req.BoxPrice, p.BoxPrice)
			assert.Equal(t, tt.req.Preset, p.Preset)
			assert.True(t, p.Active)
			assert.Equal(t, testStart, p.CreatedAt)
			assert.Zero(t, p.TotalBoxesCreated)
		})
	}
}

func TestCreateProject_SequentialIDs(t *testing.T) {
	_, _, _, svc := setup(t)
	ctx := context.Background()

	for want := uint64(1); want <= 3; want++ {
		p, err := svc.CreateProject(ctx, "alice", CreateRequest{BoxPrice: 10})
		require.NoError(t, err)
		assert.Equal(t, want, p.ID)
	}
}

func TestUpdateProject(t *testing.T) {
	store, clk, _, svc := setup(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "alice", CreateRequest{BoxPrice: 100})
	require.NoError(t, err)

	t.Run("non owner rejected", func(t *testing.T) {
		_, err := svc.UpdateProject(ctx, "mallory", p.ID, domain.ProjectUpdate{Active: ptr(false)})
		assert.ErrorIs(t, err, domain.ErrNotProjectOwner)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.UpdateProject(ctx, "alice", 99, domain.ProjectUpdate{})
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("zero price rejected without mutation", func(t *testing.T) {
		_, err := svc.UpdateProject(ctx, "alice", p.ID, domain.ProjectUpdate{BoxPrice: ptr(uint64(0)), Active: ptr(false)})
		assert.ErrorIs(t, err, domain.ErrInvalidBoxPrice)

		stored, err := store.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), stored.BoxPrice)
		assert.True(t, stored.Active)
	})

	t.Run("partial update", func(t *testing.T) {
		clk.Advance(time.Minute)
		updated, err := svc.UpdateProject(ctx, "alice", p.ID, domain.ProjectUpdate{
			Preset: ptr(domain.PresetThree),
			Active: ptr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(100), updated.BoxPrice)
		assert.Equal(t, domain.PresetThree, updated.Preset)
		assert.False(t, updated.Active)
		assert.Equal(t, testStart.Add(time.Minute), updated.UpdatedAt)
	})
}

func TestFundVault(t *testing.T) {
	store, _, _, svc := setup(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "alice", CreateRequest{BoxPrice: 100})
	require.NoError(t, err)
	credit(t, store, ledger.WalletAccount("alice"), 1_000)

	balance, err := svc.FundVault(ctx, "alice", p.ID, 600)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), balance)

	_, err = svc.FundVault(ctx, "alice", p.ID, 600)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = svc.FundVault(ctx, "alice", p.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.FundVault(ctx, "bob", p.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotProjectOwner)

	wallet, err := store.Balance(ctx, ledger.WalletAccount("alice"))
	require.NoError(t, err)
	assert.Equal(t, uint64(400), wallet)
}

func TestGetProject_CacheInvalidation(t *testing.T) {
	store, _, bus, svc := setup(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "alice", CreateRequest{BoxPrice: 100})
	require.NoError(t, err)

	got, err := svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalBoxesCreated)

	// Mutate behind the service's back, as the box service does
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	locked, err := tx.GetProjectForUpdate(ctx, p.ID)
	require.NoError(t, err)
	locked.TotalBoxesCreated = 1
	require.NoError(t, tx.UpdateProject(ctx, locked))
	require.NoError(t, tx.Commit(ctx))

	got, err = svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalBoxesCreated, "served from cache")

	require.NoError(t, bus.Publish(ctx, event.New(event.BoxCreated, domain.BoxCreatedPayload{ProjectID: p.ID, BoxID: 1})))

	got, err = svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.TotalBoxesCreated)
}

func TestGetProject_ReturnsCopies(t *testing.T) {
	_, _, _, svc := setup(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "alice", CreateRequest{BoxPrice: 100})
	require.NoError(t, err)

	first, err := svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	first.BoxPrice = 1

	second, err := svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), second.BoxPrice)
}

func TestGetProject_NotFound(t *testing.T) {
	_, _, _, svc := setup(t)
	_, err := svc.GetProject(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

type failingStore struct {
	repository.Store
}

func (failingStore) BeginTx(context.Context) (repository.Tx, error) {
	return nil, errors.New("connection refused")
}

func TestCreateProject_BeginTxFailure(t *testing.T) {
	svc := NewService(failingStore{}, clock.NewSimulatedClock(testStart), nil)
	_, err := svc.CreateProject(context.Background(), "alice", CreateRequest{BoxPrice: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextBeginTx)
}
