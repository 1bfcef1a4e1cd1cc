package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/project"
	"github.com/osse101/DegenBox_Go/internal/vault"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) CreateProject(ctx context.Context, caller string, req project.CreateRequest) (*domain.Project, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, caller string, projectID uint64, upd domain.ProjectUpdate) (*domain.Project, error) {
	args := m.Called(ctx, caller, projectID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) FundVault(ctx context.Context, caller string, projectID, amount uint64) (uint64, error) {
	args := m.Called(ctx, caller, projectID, amount)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockProjectService) GetProject(ctx context.Context, projectID uint64) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

type MockBoxService struct {
	mock.Mock
}

func (m *MockBoxService) box(args mock.Arguments) (*domain.Box, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Box), args.Error(1)
}

func (m *MockBoxService) CreateBox(ctx context.Context, caller string, projectID uint64) (*domain.Box, error) {
	return m.box(m.Called(ctx, caller, projectID))
}

func (m *MockBoxService) CommitBox(ctx context.Context, caller string, projectID, boxID uint64) (*domain.Box, error) {
	return m.box(m.Called(ctx, caller, projectID, boxID))
}

func (m *MockBoxService) RevealBox(ctx context.Context, caller string, projectID, boxID uint64, handle string) (*domain.Box, error) {
	return m.box(m.Called(ctx, caller, projectID, boxID, handle))
}

func (m *MockBoxService) SettleBox(ctx context.Context, caller string, projectID, boxID uint64) (*domain.Box, error) {
	return m.box(m.Called(ctx, caller, projectID, boxID))
}

func (m *MockBoxService) RefundBox(ctx context.Context, caller string, projectID, boxID uint64) (*domain.Box, error) {
	return m.box(m.Called(ctx, caller, projectID, boxID))
}

func (m *MockBoxService) GetBox(ctx context.Context, projectID, boxID uint64) (*domain.Box, error) {
	return m.box(m.Called(ctx, projectID, boxID))
}

type MockVaultService struct {
	mock.Mock
}

func (m *MockVaultService) WithdrawEarnings(ctx context.Context, caller string, projectID uint64, req vault.WithdrawRequest) (*vault.WithdrawResult, error) {
	args := m.Called(ctx, caller, projectID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vault.WithdrawResult), args.Error(1)
}

func (m *MockVaultService) WithdrawTreasury(ctx context.Context, caller string, recipient ledger.AccountID, amount uint64) (uint64, error) {
	args := m.Called(ctx, caller, recipient, amount)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockVaultService) CreditAccount(ctx context.Context, caller string, account ledger.AccountID, amount uint64) (uint64, error) {
	args := m.Called(ctx, caller, account, amount)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockVaultService) GetSummary(ctx context.Context, projectID uint64) (*vault.Summary, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vault.Summary), args.Error(1)
}

type MockConfigService struct {
	mock.Mock
}

func (m *MockConfigService) Get() domain.PlatformConfig {
	return m.Called().Get(0).(domain.PlatformConfig)
}

func (m *MockConfigService) Update(ctx context.Context, caller string, cfg domain.PlatformConfig) error {
	return m.Called(ctx, caller, cfg).Error(0)
}
