package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jess232017/wallet-service/internal/apperrors"
	"github.com/jess232017/wallet-service/internal/core/domain"
	portsrepo "github.com/jess232017/wallet-service/internal/core/ports/repositories"
	"github.com/jess232017/wallet-service/internal/models"
	"github.com/jess232017/wallet-service/internal/utils/mapping"
)

type PgxWalletRepository struct {
	db DBTX
}

// NewWalletRepository creates a wallet repository bound to the given handle.
// Pass a pool for the standalone read path, or a pgx.Tx to participate in a
// caller-owned transaction.
func NewWalletRepository(db DBTX) portsrepo.WalletRepository {
	return &PgxWalletRepository{db: db}
}

var _ portsrepo.WalletRepository = (*PgxWalletRepository)(nil)

// SaveWallet inserts a new wallet row.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	modelWallet := mapping.ToModelWallet(wallet)

	query := `
		INSERT INTO wallets (wallet_id, name, balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		modelWallet.WalletID,
		modelWallet.Name,
		modelWallet.Balance,
		modelWallet.Version,
		modelWallet.CreatedAt,
		modelWallet.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: wallet with ID %s already exists", apperrors.ErrDuplicate, modelWallet.WalletID)
		}
		return fmt.Errorf("failed to save wallet %s: %w", modelWallet.WalletID, err)
	}
	return nil
}

// FindWalletByID retrieves a wallet by its ID.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `
		SELECT wallet_id, name, balance, version, created_at, updated_at
		FROM wallets
		WHERE wallet_id = $1;
	`
	var modelWallet models.Wallet
	err := r.db.QueryRow(ctx, query, walletID).Scan(
		&modelWallet.WalletID,
		&modelWallet.Name,
		&modelWallet.Balance,
		&modelWallet.Version,
		&modelWallet.CreatedAt,
		&modelWallet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet by ID %s: %w", walletID, err)
	}

	domainWallet := mapping.ToDomainWallet(modelWallet)
	return &domainWallet, nil
}

// ListWallets retrieves wallets ordered by creation time.
func (r *PgxWalletRepository) ListWallets(ctx context.Context, limit int, offset int) ([]domain.Wallet, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT wallet_id, name, balance, version, created_at, updated_at
		FROM wallets
		ORDER BY created_at, wallet_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	modelWallets := []models.Wallet{}
	for rows.Next() {
		var m models.Wallet
		if err := rows.Scan(
			&m.WalletID,
			&m.Name,
			&m.Balance,
			&m.Version,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		modelWallets = append(modelWallets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", err)
	}

	return mapping.ToDomainWalletSlice(modelWallets), nil
}

// UpdateWallet performs the version-checked write that serves as the sole
// concurrency gate on a wallet. The UPDATE is conditioned on the stored
// version matching wallet.Version; a concurrent writer that committed first
// makes the condition fail, and the compare-and-swap loses with no effect.
func (r *PgxWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error) {
	modelWallet := mapping.ToModelWallet(wallet)

	query := `
		UPDATE wallets
		SET name = $3,
		    balance = $4,
		    version = version + 1,
		    updated_at = $5
		WHERE wallet_id = $1 AND version = $2
		RETURNING wallet_id, name, balance, version, created_at, updated_at;
	`
	var updated models.Wallet
	err := r.db.QueryRow(ctx, query,
		modelWallet.WalletID,
		modelWallet.Version,
		modelWallet.Name,
		modelWallet.Balance,
		modelWallet.UpdatedAt,
	).Scan(
		&updated.WalletID,
		&updated.Name,
		&updated.Balance,
		&updated.Version,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Zero rows means either the wallet is gone or the version moved.
			return nil, r.classifyMissedUpdate(ctx, modelWallet.WalletID)
		}
		return nil, fmt.Errorf("failed to update wallet %s: %w", modelWallet.WalletID, err)
	}

	domainWallet := mapping.ToDomainWallet(updated)
	return &domainWallet, nil
}

// classifyMissedUpdate distinguishes a stale version from a missing row after
// a conditional UPDATE touched nothing.
func (r *PgxWalletRepository) classifyMissedUpdate(ctx context.Context, walletID string) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE wallet_id = $1);`, walletID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to classify missed update for wallet %s: %w", walletID, err)
	}
	if exists {
		return fmt.Errorf("%w: wallet %s", apperrors.ErrVersionConflict, walletID)
	}
	return apperrors.ErrNotFound
}

// DeleteWallet removes a wallet row; its ledger entries cascade via the FK.
// Deletion is an administrative action, not a ledger event.
func (r *PgxWalletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM wallets WHERE wallet_id = $1;`, walletID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet %s: %w", walletID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
