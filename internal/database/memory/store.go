// Package memory is an in-process Store. Transactions run one at a time and
// stage their writes on copies, which Commit swaps in atomically.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/repository"
)

type boxKey struct {
	projectID uint64
	boxID     uint64
}

// Store keeps committed state in maps guarded by mu. sem admits one
// transaction at a time.
type Store struct {
	sem chan struct{}

	mu            sync.RWMutex
	projects      map[uint64]*domain.Project
	boxes         map[boxKey]*domain.Box
	book          *ledger.Book
	lastProjectID uint64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		sem:      make(chan struct{}, 1),
		projects: make(map[uint64]*domain.Project),
		boxes:    make(map[boxKey]*domain.Box),
		book:     ledger.NewBook(),
	}
}

// BeginTx waits for the running transaction, if any, to finish
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTx, ctx.Err())
	}

	s.mu.RLock()
	last := s.lastProjectID
	s.mu.RUnlock()

	return &tx{
		store:         s,
		projects:      make(map[uint64]*domain.Project),
		boxes:         make(map[boxKey]*domain.Box),
		lastProjectID: last,
	}, nil
}

// GetProject returns a copy of a committed project
func (s *Store) GetProject(_ context.Context, projectID uint64) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return p.Clone(), nil
}

// ListProjectIDs returns all project ids in ascending order
func (s *Store) ListProjectIDs(_ context.Context) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint64, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// GetBox returns a copy of a committed box
func (s *Store) GetBox(_ context.Context, projectID, boxID uint64) (*domain.Box, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boxes[boxKey{projectID, boxID}]
	if !ok {
		return nil, domain.ErrBoxNotFound
	}
	return b.Clone(), nil
}

// ListUnsettledBoxes returns copies of the project's unsettled boxes ordered by id
func (s *Store) ListUnsettledBoxes(_ context.Context, projectID uint64) ([]*domain.Box, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.Box
	for k, b := range s.boxes {
		if k.projectID == projectID && !b.Settled {
			out = append(out, b.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *domain.Box) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

// Balance returns the committed balance of an account
func (s *Store) Balance(_ context.Context, account ledger.AccountID) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Balance(account), nil
}
