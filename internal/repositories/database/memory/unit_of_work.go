package memory

import (
	"context"
	"fmt"

	"github.com/jess232017/wallet-service/internal/apperrors"
	portsrepo "github.com/jess232017/wallet-service/internal/core/ports/repositories"
	"github.com/jess232017/wallet-service/internal/models"
)

type contextKey string

const activeTxKey = contextKey("memoryActiveTx")

// memTx buffers the writes of one unit of work. Nothing touches the committed
// store until commit, so dropping the buffer is a complete rollback.
type memTx struct {
	store *Store

	stagedInserts []models.Wallet
	stagedUpdates []stagedWalletUpdate
	stagedDeletes []string
	stagedTxns    []models.Transaction
}

// stagedWalletUpdate records the version the caller read, so commit can
// re-run the compare-and-swap against whatever is committed by then.
type stagedWalletUpdate struct {
	wallet          models.Wallet
	expectedVersion int64
}

// commit validates every staged write against current committed state under
// the store lock, then applies all of them. A single stale version fails the
// whole batch with no effect, mirroring the SQL store's rollback.
func (tx *memTx) commit() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range tx.stagedInserts {
		if _, exists := s.wallets[w.WalletID]; exists {
			return fmt.Errorf("%w: wallet with ID %s already exists", apperrors.ErrDuplicate, w.WalletID)
		}
	}
	for _, u := range tx.stagedUpdates {
		current, exists := s.wallets[u.wallet.WalletID]
		if !exists {
			return apperrors.ErrNotFound
		}
		if current.Version != u.expectedVersion {
			return fmt.Errorf("%w: wallet %s", apperrors.ErrVersionConflict, u.wallet.WalletID)
		}
	}
	for _, id := range tx.stagedDeletes {
		if _, exists := s.wallets[id]; !exists {
			return apperrors.ErrNotFound
		}
	}

	for _, w := range tx.stagedInserts {
		s.wallets[w.WalletID] = w
	}
	for _, u := range tx.stagedUpdates {
		updated := u.wallet
		updated.Version = u.expectedVersion + 1
		updated.CreatedAt = s.wallets[u.wallet.WalletID].CreatedAt
		s.wallets[u.wallet.WalletID] = updated
	}
	for _, id := range tx.stagedDeletes {
		delete(s.wallets, id)
		kept := s.transactions[:0]
		for _, t := range s.transactions {
			if t.WalletID != id {
				kept = append(kept, t)
			}
		}
		s.transactions = kept
	}
	s.transactions = append(s.transactions, tx.stagedTxns...)
	return nil
}

// MemUnitOfWork implements the unit-of-work port over a Store. Like the pgsql
// implementation it is stateless: each Execute call owns its own buffer.
type MemUnitOfWork struct {
	store *Store
}

// NewUnitOfWork creates a unit of work over the given store.
func NewUnitOfWork(store *Store) portsrepo.UnitOfWork {
	return &MemUnitOfWork{store: store}
}

var _ portsrepo.UnitOfWork = (*MemUnitOfWork)(nil)

// Execute runs fn against repositories bound to a fresh write buffer and
// commits the buffer if fn returns nil. Errors from fn are returned unchanged
// and leave the store untouched.
func (u *MemUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	if ctx.Value(activeTxKey) != nil {
		return apperrors.ErrTxAlreadyActive
	}

	tx := &memTx{store: u.store}
	repos := &txRepositories{
		wallets:      &MemWalletRepository{store: u.store, tx: tx},
		transactions: &MemTransactionRepository{store: u.store, tx: tx},
	}

	if err := fn(context.WithValue(ctx, activeTxKey, struct{}{}), repos); err != nil {
		return err
	}
	return tx.commit()
}

type txRepositories struct {
	wallets      portsrepo.WalletRepository
	transactions portsrepo.TransactionRepository
}

func (t *txRepositories) Wallets() portsrepo.WalletRepository { return t.wallets }

func (t *txRepositories) Transactions() portsrepo.TransactionRepository { return t.transactions }
