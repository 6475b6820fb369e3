package models

import (
	"github.com/shopspring/decimal"
)

// Wallet is the persistence shape of a wallet row.
type Wallet struct {
	WalletID string          `db:"wallet_id"`
	Name     string          `db:"name"`
	Balance  decimal.Decimal `db:"balance"`
	Version  int64           `db:"version"`
	AuditFields
}
