package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jess232017/wallet-service/internal/apperrors"
	portsrepo "github.com/jess232017/wallet-service/internal/core/ports/repositories"
)

// contextKey prevents collisions with other packages' context values.
type contextKey string

// activeTxKey marks a context as already running inside an Execute call.
const activeTxKey = contextKey("pgsqlActiveTx")

// PgxUnitOfWork demarcates one atomic transaction per Execute call.
//
// The struct holds only the pool. The transaction handle lives on the stack
// of each Execute invocation and is handed to the callback through freshly
// built repositories, so a single shared PgxUnitOfWork is safe under any
// number of concurrent callers.
type PgxUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork creates a unit of work over the given pool.
func NewUnitOfWork(pool *pgxpool.Pool) portsrepo.UnitOfWork {
	return &PgxUnitOfWork{pool: pool}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// txRepositories binds the repositories to one pgx.Tx for the duration of a
// single Execute call.
type txRepositories struct {
	wallets      portsrepo.WalletRepository
	transactions portsrepo.TransactionRepository
}

func (t *txRepositories) Wallets() portsrepo.WalletRepository { return t.wallets }

func (t *txRepositories) Transactions() portsrepo.TransactionRepository { return t.transactions }

// Execute begins a transaction, runs fn against repositories bound to it, and
// commits on success. Any error from fn rolls everything back and is returned
// unchanged, so a failed unit of work leaves the stores untouched.
func (u *PgxUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	if ctx.Value(activeTxKey) != nil {
		return apperrors.ErrTxAlreadyActive
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", apperrors.ErrStorageUnavailable, err)
	}
	// Rollback after a successful commit returns pgx.ErrTxClosed, which is fine.
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Default().Error("failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
	}()

	repos := &txRepositories{
		wallets:      NewWalletRepository(tx),
		transactions: NewTransactionRepository(tx),
	}

	if err := fn(context.WithValue(ctx, activeTxKey, struct{}{}), repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}
