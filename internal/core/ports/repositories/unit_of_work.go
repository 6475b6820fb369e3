package repositories

import "context"

// TxRepositories exposes repositories bound to one in-flight transaction.
// The value is only valid inside the UnitOfWork.Execute call that produced it
// and must not be retained after the callback returns.
type TxRepositories interface {
	Wallets() WalletRepository
	Transactions() TransactionRepository
}

// UnitOfWork demarcates a single atomic read-modify-write boundary.
//
// Implementations are stateless factories: every Execute call opens its own
// transaction and hands the callback a fresh TxRepositories. The transaction
// handle is never stored on the long-lived instance, so one UnitOfWork value
// is safe for any number of concurrent callers.
type UnitOfWork interface {
	// Execute begins a transaction, invokes fn with repositories bound to it,
	// and commits if fn returns nil. Any error from fn (domain or storage)
	// rolls the transaction back and is returned unchanged, so no write made
	// through the bound repositories ever becomes visible on failure.
	//
	// Returns apperrors.ErrStorageUnavailable when a transaction cannot be
	// started, and apperrors.ErrTxAlreadyActive if fn attempts to open a
	// nested transaction through the same repositories.
	Execute(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
