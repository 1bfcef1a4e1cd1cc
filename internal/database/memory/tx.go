package memory

import (
	"context"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/repository"
)

type tx struct {
	store *Store
	done  bool

	projects      map[uint64]*domain.Project
	boxes         map[boxKey]*domain.Box
	book          *ledger.Book
	lastProjectID uint64
}

func (t *tx) ledgerBook() *ledger.Book {
	if t.book == nil {
		t.store.mu.RLock()
		t.book = t.store.book.Clone()
		t.store.mu.RUnlock()
	}
	return t.book
}

func (t *tx) project(projectID uint64) (*domain.Project, bool) {
	if p, ok := t.projects[projectID]; ok {
		return p, true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	p, ok := t.store.projects[projectID]
	return p, ok
}

func (t *tx) box(k boxKey) (*domain.Box, bool) {
	if b, ok := t.boxes[k]; ok {
		return b, true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	b, ok := t.store.boxes[k]
	return b, ok
}

func (t *tx) NextProjectID(_ context.Context) (uint64, error) {
	if t.done {
		return 0, domain.ErrTxClosed
	}
	if t.lastProjectID == ^uint64(0) {
		return 0, domain.ErrArithmeticOverflow
	}
	t.lastProjectID++
	return t.lastProjectID, nil
}

func (t *tx) InsertProject(_ context.Context, project *domain.Project) error {
	if t.done {
		return domain.ErrTxClosed
	}
	if _, exists := t.project(project.ID); exists {
		return repository.ErrDuplicateKey
	}
	t.projects[project.ID] = project.Clone()
	return nil
}

func (t *tx) GetProject(_ context.Context, projectID uint64) (*domain.Project, error) {
	if t.done {
		return nil, domain.ErrTxClosed
	}
	p, ok := t.project(projectID)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return p.Clone(), nil
}

func (t *tx) GetProjectForUpdate(ctx context.Context, projectID uint64) (*domain.Project, error) {
	return t.GetProject(ctx, projectID)
}

func (t *tx) UpdateProject(_ context.Context, project *domain.Project) error {
	if t.done {
		return domain.ErrTxClosed
	}
	if _, ok := t.project(project.ID); !ok {
		return domain.ErrProjectNotFound
	}
	t.projects[project.ID] = project.Clone()
	return nil
}

func (t *tx) InsertBox(_ context.Context, box *domain.Box) error {
	if t.done {
		return domain.ErrTxClosed
	}
	k := boxKey{box.ProjectID, box.ID}
	if _, exists := t.box(k); exists {
		return repository.ErrDuplicateKey
	}
	t.boxes[k] = box.Clone()
	return nil
}

func (t *tx) GetBoxForUpdate(_ context.Context, projectID, boxID uint64) (*domain.Box, error) {
	if t.done {
		return nil, domain.ErrTxClosed
	}
	b, ok := t.box(boxKey{projectID, boxID})
	if !ok {
		return nil, domain.ErrBoxNotFound
	}
	return b.Clone(), nil
}

func (t *tx) UpdateBox(_ context.Context, box *domain.Box) error {
	if t.done {
		return domain.ErrTxClosed
	}
	k := boxKey{box.ProjectID, box.ID}
	if _, ok := t.box(k); !ok {
		return domain.ErrBoxNotFound
	}
	t.boxes[k] = box.Clone()
	return nil
}

func (t *tx) Transfer(ctx context.Context, from, to ledger.AccountID, amount uint64) error {
	if t.done {
		return domain.ErrTxClosed
	}
	return t.ledgerBook().Transfer(ctx, from, to, amount)
}

func (t *tx) Balance(_ context.Context, account ledger.AccountID) (uint64, error) {
	if t.done {
		return 0, domain.ErrTxClosed
	}
	if t.book != nil {
		return t.book.Balance(account), nil
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.store.book.Balance(account), nil
}

func (t *tx) Credit(_ context.Context, account ledger.AccountID, amount uint64) error {
	if t.done {
		return domain.ErrTxClosed
	}
	return t.ledgerBook().Credit(account, amount)
}

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	for id, p := range t.projects {
		s.projects[id] = p
	}
	for k, b := range t.boxes {
		s.boxes[k] = b
	}
	if t.book != nil {
		s.book = t.book
	}
	s.lastProjectID = max(s.lastProjectID, t.lastProjectID)
	s.mu.Unlock()

	<-s.sem
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	<-t.store.sem
	return nil
}
