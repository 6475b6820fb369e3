package models

import "github.com/shopspring/decimal"

// TransactionType mirrors the transactions.type enum column.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
)

// Transaction is the persistence shape of a ledger entry row.
// Amount carries the sign convention (deposits positive, withdrawals negative).
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	WalletID      string          `db:"wallet_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          TransactionType `db:"type"`
	Description   string          `db:"description"` // Nullable
	AuditFields
}
