package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/ledger"
)

type tx struct {
	tx pgx.Tx
}

func (t *tx) NextProjectID(ctx context.Context) (uint64, error) {
	var id int64
	if err := t.tx.QueryRow(ctx, `SELECT nextval('project_id_seq')`).Scan(&id); err != nil {
		return 0, translate(ErrMsgNextProjectID, err, nil)
	}
	return fromDB(id), nil
}

func (t *tx) InsertProject(ctx context.Context, p *domain.Project) error {
	args, err := projectArgs(p)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, `INSERT INTO projects (`+projectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, args...)
	if err != nil {
		return translate(ErrMsgInsertProject, err, nil)
	}
	return nil
}

func (t *tx) GetProject(ctx context.Context, projectID uint64) (*domain.Project, error) {
	return getProject(ctx, t.tx, projectID, false)
}

func (t *tx) GetProjectForUpdate(ctx context.Context, projectID uint64) (*domain.Project, error) {
	return getProject(ctx, t.tx, projectID, true)
}

func (t *tx) UpdateProject(ctx context.Context, p *domain.Project) error {
	args, err := projectArgs(p)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `UPDATE projects SET
			owner = $2, box_price = $3, luck_time_interval_override = $4, active = $5, game_preset = $6,
			total_boxes_created = $7, total_boxes_settled = $8, total_revenue = $9, total_paid_out = $10,
			created_at = $11, updated_at = $12
		WHERE project_id = $1`, args...)
	if err != nil {
		return translate(ErrMsgUpdateProject, err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (t *tx) InsertBox(ctx context.Context, b *domain.Box) error {
	args, err := boxArgs(b)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, `INSERT INTO boxes (`+boxColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`, args...)
	if err != nil {
		return translate(ErrMsgInsertBox, err, nil)
	}
	return nil
}

func (t *tx) GetBoxForUpdate(ctx context.Context, projectID, boxID uint64) (*domain.Box, error) {
	return getBox(ctx, t.tx, projectID, boxID, true)
}

func (t *tx) UpdateBox(ctx context.Context, b *domain.Box) error {
	args, err := boxArgs(b)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `UPDATE boxes SET
			owner = $3, created_at = $4, committed_at = $5, committed_checkpoint = $6,
			luck = $7, game_preset_snapshot = $8, purchased_price = $9, commission_paid = $10,
			revealed = $11, reward_amount = $12, is_jackpot = $13, reward_tier = $14, random_sample = $15,
			randomness_committed = $16, settled = $17, randomness_request_handle = $18
		WHERE project_id = $1 AND box_id = $2`, args...)
	if err != nil {
		return translate(ErrMsgUpdateBox, err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBoxNotFound
	}
	return nil
}

func (t *tx) Balance(ctx context.Context, account ledger.AccountID) (uint64, error) {
	return balance(ctx, t.tx, account, false)
}

// Transfer debits with a guarded UPDATE so the balance check and the write are
// one statement, then credits with an upsert
func (t *tx) Transfer(ctx context.Context, from, to ledger.AccountID, amount uint64) error {
	if amount == 0 {
		return nil
	}
	amt, err := toDB(amount)
	if err != nil {
		return err
	}
	if from == to {
		bal, err := balance(ctx, t.tx, from, true)
		if err != nil {
			return err
		}
		if bal < amount {
			return domain.ErrInsufficientFunds
		}
		return nil
	}

	tag, err := t.tx.Exec(ctx,
		`UPDATE ledger_accounts SET balance = balance - $2 WHERE account_id = $1 AND balance >= $2`,
		string(from), amt)
	if err != nil {
		return translate(ErrMsgDebit, err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}
	return t.credit(ctx, to, amt)
}

func (t *tx) Credit(ctx context.Context, account ledger.AccountID, amount uint64) error {
	if amount == 0 {
		return nil
	}
	amt, err := toDB(amount)
	if err != nil {
		return err
	}
	return t.credit(ctx, account, amt)
}

func (t *tx) credit(ctx context.Context, account ledger.AccountID, amount int64) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO ledger_accounts (account_id, balance) VALUES ($1, $2)
		ON CONFLICT (account_id) DO UPDATE SET balance = ledger_accounts.balance + EXCLUDED.balance`,
		string(account), amount)
	if err != nil {
		return translate(ErrMsgCredit, err, nil)
	}
	return nil
}

func (t *tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return err
	}
	return nil
}
