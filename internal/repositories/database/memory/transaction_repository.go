package memory

import (
	"context"

	"github.com/jess232017/wallet-service/internal/apperrors"
	"github.com/jess232017/wallet-service/internal/core/domain"
	portsrepo "github.com/jess232017/wallet-service/internal/core/ports/repositories"
	"github.com/jess232017/wallet-service/internal/utils/mapping"
)

// MemTransactionRepository implements TransactionRepository over a Store.
type MemTransactionRepository struct {
	store *Store
	tx    *memTx
}

// NewTransactionRepository creates a standalone ledger-entry repository.
func NewTransactionRepository(store *Store) portsrepo.TransactionRepository {
	return &MemTransactionRepository{store: store}
}

var _ portsrepo.TransactionRepository = (*MemTransactionRepository)(nil)

func (r *MemTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	if r.tx != nil {
		r.tx.stagedTxns = append(r.tx.stagedTxns, m)
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.transactions = append(r.store.transactions, m)
	return nil
}

func (r *MemTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, m := range r.store.transactions {
		if m.TransactionID == transactionID {
			t := mapping.ToDomainTransaction(m)
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *MemTransactionRepository) FindTransactionsByWalletID(ctx context.Context, walletID string) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := []domain.Transaction{}
	for _, m := range r.store.transactions {
		if m.WalletID == walletID {
			result = append(result, mapping.ToDomainTransaction(m))
		}
	}
	return result, nil
}
