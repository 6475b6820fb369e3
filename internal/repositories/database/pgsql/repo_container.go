package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/jess232017/wallet-service/internal/core/ports/repositories"
)

// NewRepositoryProvider builds pool-bound repositories for the read path and
// the unit of work that produces transaction-bound ones for the write path.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WalletRepo:      NewWalletRepository(dbPool),
		TransactionRepo: NewTransactionRepository(dbPool),
		UnitOfWork:      NewUnitOfWork(dbPool),
	}
}
