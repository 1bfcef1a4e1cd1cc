package ledger

import "errors"

const (
	vaultPrefix  = "vault:"
	walletPrefix = "wallet:"
)

// Error contexts
const (
	ErrContextCommission         = "commission split"
	ErrContextCreatorShare       = "creator share transfer"
	ErrContextCommissionTransfer = "commission transfer"
	ErrMsgUnknownAccount         = "unknown account"
)

// ErrUnknownAccount is returned for account strings that are not ledger accounts
var ErrUnknownAccount = errors.New(ErrMsgUnknownAccount)
