package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCompleted is published after a deposit or withdrawal has
// committed. It is emitted outside the unit of work, so consumers may observe
// it slightly after the balance change is visible, never before.
type TransactionCompleted struct {
	TransactionID string          `json:"transaction_id"`
	WalletID      string          `json:"wallet_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
