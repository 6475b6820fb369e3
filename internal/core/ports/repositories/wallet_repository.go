package repositories

import (
	"context"

	"github.com/jess232017/wallet-service/internal/core/domain"
)

// WalletRepository defines persistence operations for wallets.
//
// An implementation is bound at construction time to either a connection pool
// or a single database transaction; methods never take an optional transaction
// handle. Transaction-bound instances are obtained through UnitOfWork.Execute.
type WalletRepository interface {
	// SaveWallet inserts a new wallet. Returns apperrors.ErrDuplicate if the
	// ID already exists.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// FindWalletByID returns the wallet or apperrors.ErrNotFound.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// ListWallets returns wallets ordered by creation time.
	ListWallets(ctx context.Context, limit int, offset int) ([]domain.Wallet, error)

	// UpdateWallet performs a version-checked write: the row is updated only
	// if its stored version equals wallet.Version, and the stored version is
	// incremented by one. On a version mismatch the write has no effect and
	// apperrors.ErrVersionConflict is returned; a missing wallet yields
	// apperrors.ErrNotFound. The returned wallet carries the new version.
	UpdateWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error)

	// DeleteWallet removes a wallet. Returns apperrors.ErrNotFound if absent.
	DeleteWallet(ctx context.Context, walletID string) error
}
