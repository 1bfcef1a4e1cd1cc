package ledger

import (
	"context"
	"maps"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/utils"
)

// Book is an in-memory balance sheet. It is not safe for concurrent use;
// owners serialize access.
type Book struct {
	balances map[AccountID]uint64
}

// NewBook creates an empty book
func NewBook() *Book {
	return &Book{balances: make(map[AccountID]uint64)}
}

// Balance returns the balance of id, zero for unknown accounts
func (b *Book) Balance(id AccountID) uint64 {
	return b.balances[id]
}

// Credit adds amount to id
func (b *Book) Credit(id AccountID, amount uint64) error {
	next, err := utils.CheckedAdd(b.balances[id], amount)
	if err != nil {
		return domain.ErrArithmeticOverflow
	}
	b.balances[id] = next
	return nil
}

// Transfer moves amount from one account to another, all or nothing
func (b *Book) Transfer(_ context.Context, from, to AccountID, amount uint64) error {
	if amount == 0 || from == to {
		if b.balances[from] < amount {
			return domain.ErrInsufficientFunds
		}
		return nil
	}

	src := b.balances[from]
	if src < amount {
		return domain.ErrInsufficientFunds
	}
	dst, err := utils.CheckedAdd(b.balances[to], amount)
	if err != nil {
		return domain.ErrArithmeticOverflow
	}

	b.balances[from] = src - amount
	b.balances[to] = dst
	return nil
}

// Clone returns an independent copy
func (b *Book) Clone() *Book {
	return &Book{balances: maps.Clone(b.balances)}
}
