package repository

import (
	"context"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/ledger"
)

// Tx is one atomic unit of work. Rows read with a ForUpdate method stay locked
// until Commit or Rollback. Nothing written through a Tx is visible to others
// before Commit, and all of it is discarded on Rollback.
type Tx interface {
	ledger.Transferer

	NextProjectID(ctx context.Context) (uint64, error)
	InsertProject(ctx context.Context, project *domain.Project) error
	GetProject(ctx context.Context, projectID uint64) (*domain.Project, error)
	GetProjectForUpdate(ctx context.Context, projectID uint64) (*domain.Project, error)
	UpdateProject(ctx context.Context, project *domain.Project) error

	InsertBox(ctx context.Context, box *domain.Box) error
	GetBoxForUpdate(ctx context.Context, projectID, boxID uint64) (*domain.Box, error)
	UpdateBox(ctx context.Context, box *domain.Box) error

	Balance(ctx context.Context, account ledger.AccountID) (uint64, error)
	Credit(ctx context.Context, account ledger.AccountID, amount uint64) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
