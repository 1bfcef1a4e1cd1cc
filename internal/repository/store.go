package repository

import (
	"context"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/ledger"
)

// Store is the persistence boundary shared by the memory and postgres backends.
// Reads outside a transaction see committed state only.
type Store interface {
	BeginTx(ctx context.Context) (Tx, error)

	GetProject(ctx context.Context, projectID uint64) (*domain.Project, error)
	ListProjectIDs(ctx context.Context) ([]uint64, error)
	GetBox(ctx context.Context, projectID, boxID uint64) (*domain.Box, error)
	ListUnsettledBoxes(ctx context.Context, projectID uint64) ([]*domain.Box, error)
	Balance(ctx context.Context, account ledger.AccountID) (uint64, error)
}
