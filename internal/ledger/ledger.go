// Package ledger names accounts and moves balances between them.
package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/utils"
)

// AccountID identifies a balance holder
type AccountID string

// TreasuryAccount receives platform commission
const TreasuryAccount AccountID = "treasury"

// VaultAccount is the prize pool of a project
func VaultAccount(projectID uint64) AccountID {
	return AccountID(vaultPrefix + strconv.FormatUint(projectID, 10))
}

// WalletAccount is the external wallet of an identity
func WalletAccount(owner string) AccountID {
	return AccountID(walletPrefix + owner)
}

// ParseAccount accepts the textual forms produced by the constructors above
func ParseAccount(s string) (AccountID, error) {
	switch {
	case s == string(TreasuryAccount):
		return TreasuryAccount, nil
	case strings.HasPrefix(s, vaultPrefix):
		if _, err := strconv.ParseUint(strings.TrimPrefix(s, vaultPrefix), 10, 64); err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnknownAccount, s)
		}
		return AccountID(s), nil
	case strings.HasPrefix(s, walletPrefix) && len(s) > len(walletPrefix):
		return AccountID(s), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownAccount, s)
}

// Transferer is the opaque transfer primitive. It either moves the full amount
// or fails with domain.ErrInsufficientFunds and moves nothing.
type Transferer interface {
	Transfer(ctx context.Context, from, to AccountID, amount uint64) error
}

// Split is the division of a purchase between treasury and vault
type Split struct {
	Commission   uint64
	CreatorShare uint64
}

// SplitCommission computes commission = floor(price * bps / 10000) and
// creator share = price - commission
func SplitCommission(price uint64, commissionBPS uint16) (Split, error) {
	commission, err := utils.ApplyBasisPoints(price, uint64(commissionBPS))
	if err != nil {
		return Split{}, fmt.Errorf("%s: %w", ErrContextCommission, domain.ErrArithmeticOverflow)
	}
	share, err := utils.CheckedSub(price, commission)
	if err != nil {
		return Split{}, fmt.Errorf("%s: %w", ErrContextCommission, domain.ErrArithmeticOverflow)
	}
	return Split{Commission: commission, CreatorShare: share}, nil
}

// Pay performs the two purchase transfers. A failing commission transfer
// fails the whole purchase; callers run this inside a transaction.
func Pay(ctx context.Context, t Transferer, buyer AccountID, projectID uint64, split Split) error {
	if err := t.Transfer(ctx, buyer, VaultAccount(projectID), split.CreatorShare); err != nil {
		return fmt.Errorf("%s: %w", ErrContextCreatorShare, err)
	}
	if err := t.Transfer(ctx, buyer, TreasuryAccount, split.Commission); err != nil {
		return fmt.Errorf("%s: %w", ErrContextCommissionTransfer, err)
	}
	return nil
}
