package domain

import (
	"github.com/shopspring/decimal"
)

// Wallet represents an account holding a monetary balance.
//
// Balance is mutated only through the ledger service's transactional path and
// always equals the sum of the wallet's committed transaction amounts.
// Version is the optimistic-concurrency token: every successful write is
// conditioned on it and increments it exactly once. There is no row locking
// anywhere; the version check is the sole concurrency gate.
type Wallet struct {
	WalletID string          `json:"walletID"`
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Version  int64           `json:"version"`
	AuditFields
}
