package repositories

import (
	"context"

	"github.com/jess232017/wallet-service/internal/core/domain"
)

// TransactionRepository defines persistence operations for ledger entries.
// The ledger is append-only: there is no update or delete.
type TransactionRepository interface {
	// SaveTransaction appends a new ledger entry.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// FindTransactionByID returns the entry or apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByWalletID returns all entries for a wallet in creation
	// order. An existing wallet with no entries yields an empty slice.
	FindTransactionsByWalletID(ctx context.Context, walletID string) ([]domain.Transaction, error)
}
