package repositories

// RepositoryProvider bundles the pool-bound repositories and the unit of work
// handed to the service layer.
type RepositoryProvider struct {
	WalletRepo      WalletRepository
	TransactionRepo TransactionRepository
	UnitOfWork      UnitOfWork
}
