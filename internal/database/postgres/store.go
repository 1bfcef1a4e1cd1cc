// Package postgres is the pgx-backed Store. Money columns are BIGINT; the
// repository boundary rejects amounts that do not fit.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements repository.Store on a pgx pool
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store. Run database.Migrate first.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// BeginTx opens a read-committed transaction. Rows are serialized with
// SELECT ... FOR UPDATE.
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	pgTx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &tx{tx: pgTx}, nil
}

func (s *Store) GetProject(ctx context.Context, projectID uint64) (*domain.Project, error) {
	return getProject(ctx, s.pool, projectID, false)
}

func (s *Store) ListProjectIDs(ctx context.Context) ([]uint64, error) {
	rows, err := s.pool.Query(ctx, `SELECT project_id FROM projects ORDER BY project_id`)
	if err != nil {
		return nil, translate(ErrMsgListProjects, err, nil)
	}
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (uint64, error) {
		var id int64
		err := row.Scan(&id)
		return fromDB(id), err
	})
	if err != nil {
		return nil, translate(ErrMsgListProjects, err, nil)
	}
	return ids, nil
}

func (s *Store) GetBox(ctx context.Context, projectID, boxID uint64) (*domain.Box, error) {
	return getBox(ctx, s.pool, projectID, boxID, false)
}

func (s *Store) ListUnsettledBoxes(ctx context.Context, projectID uint64) ([]*domain.Box, error) {
	pid, err := toDB(projectID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+boxColumns+` FROM boxes WHERE project_id = $1 AND NOT settled ORDER BY box_id`, pid)
	if err != nil {
		return nil, translate(ErrMsgListBoxes, err, nil)
	}
	boxes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Box, error) {
		return scanBox(row)
	})
	if err != nil {
		return nil, translate(ErrMsgListBoxes, err, nil)
	}
	return boxes, nil
}

func (s *Store) Balance(ctx context.Context, account ledger.AccountID) (uint64, error) {
	return balance(ctx, s.pool, account, false)
}

func getProject(ctx context.Context, q querier, projectID uint64, forUpdate bool) (*domain.Project, error) {
	pid, err := toDB(projectID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}
	sql := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	p, err := scanProject(q.QueryRow(ctx, sql, pid))
	if err != nil {
		return nil, translate(ErrMsgGetProject, err, domain.ErrProjectNotFound)
	}
	return p, nil
}

func getBox(ctx context.Context, q querier, projectID, boxID uint64, forUpdate bool) (*domain.Box, error) {
	ids, err := toDBAll(projectID, boxID)
	if err != nil {
		return nil, domain.ErrBoxNotFound
	}
	sql := `SELECT ` + boxColumns + ` FROM boxes WHERE project_id = $1 AND box_id = $2`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	b, err := scanBox(q.QueryRow(ctx, sql, ids[0], ids[1]))
	if err != nil {
		return nil, translate(ErrMsgGetBox, err, domain.ErrBoxNotFound)
	}
	return b, nil
}

func balance(ctx context.Context, q querier, account ledger.AccountID, forUpdate bool) (uint64, error) {
	sql := `SELECT balance FROM ledger_accounts WHERE account_id = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	var bal int64
	err := q.QueryRow(ctx, sql, string(account)).Scan(&bal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, translate(ErrMsgBalance, err, nil)
	}
	return fromDB(bal), nil
}
