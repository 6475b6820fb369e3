// Package memory provides in-memory implementations of the repository ports.
//
// The store keeps committed state behind a single mutex. Repositories come in
// the same two flavours as the pgsql package: standalone instances apply each
// operation atomically on its own, while the unit of work hands out instances
// that buffer writes and apply them together at commit, re-checking wallet
// versions at that point. Optimistic-concurrency behavior therefore matches
// the SQL store: a stale version makes the whole unit of work fail with no
// effect.
package memory

import (
	"sync"

	portsrepo "github.com/jess232017/wallet-service/internal/core/ports/repositories"
	"github.com/jess232017/wallet-service/internal/models"
)

// Store holds the committed wallet and ledger state.
type Store struct {
	mu           sync.Mutex
	wallets      map[string]models.Wallet
	transactions []models.Transaction
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		wallets:      make(map[string]models.Wallet),
		transactions: make([]models.Transaction, 0),
	}
}

// NewRepositoryProvider builds standalone repositories plus the unit of work
// over one shared store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WalletRepo:      NewWalletRepository(store),
		TransactionRepo: NewTransactionRepository(store),
		UnitOfWork:      NewUnitOfWork(store),
	}
}
