package domain

import "github.com/shopspring/decimal"

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	// Transfer is reserved for a future wallet-to-wallet operation; the
	// ledger service never produces it.
	Transfer TransactionType = "TRANSFER"
)

// Transaction is a single immutable ledger entry recording a balance-affecting
// event on one wallet. Entries are append-only: created exactly once, in the
// same unit of work as the wallet balance update they justify, and never
// mutated or deleted afterwards.
//
// Amount is signed: deposits are stored positive, withdrawals negative, so
// that the sum of a wallet's entries equals its balance.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	WalletID      string          `json:"walletID"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	Description   string          `json:"description"`
	AuditFields
}
