package dto

import (
	"time"

	"github.com/jess232017/wallet-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest defines the data needed to deposit into a wallet.
// Amount must be strictly positive; binding rejects zero and negatives before
// the service is reached, and the service re-validates.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Description string          `json:"description" binding:"omitempty,max=255"`
}

// WithdrawRequest defines the data needed to withdraw from a wallet.
type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Description string          `json:"description" binding:"omitempty,max=255"`
}

// TransactionResponse defines the data returned for a ledger entry.
// Amount keeps the stored sign convention: positive for deposits, negative
// for withdrawals.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	WalletID      string                 `json:"walletID"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          domain.TransactionType `json:"type"`
	Description   string                 `json:"description,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		WalletID:      t.WalletID,
		Amount:        t.Amount,
		Type:          t.Type,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}
