package pgsql

import (
	"context"
	"database/sql"
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

type PgxTransactionRepository struct {
	db DBTX
}

// NewTransactionRepository creates a ledger-entry repository bound to the
// given handle.
func NewTransactionRepository(db DBTX) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// SaveTransaction appends a ledger entry. There is no corresponding update or
// delete; the transactions table is append-only.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	var description sql.NullString
	if modelTxn.Description != "" {
		description = sql.NullString{String: modelTxn.Description, Valid: true}
	}

	query := `
		INSERT INTO transactions (transaction_id, wallet_id, amount, type, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.WalletID,
		modelTxn.Amount,
		modelTxn.Type,
		description,
		modelTxn.CreatedAt,
		modelTxn.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // Unique violation
				return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, modelTxn.TransactionID)
			case "23503": // FK violation: wallet row vanished inside the tx
				return fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, modelTxn.WalletID)
			}
		}
		return fmt.Errorf("failed to save transaction %s: %w", modelTxn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a ledger entry by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, wallet_id, amount, type, description, created_at, updated_at
		FROM transactions
		WHERE transaction_id = $1;
	`
	var modelTxn models.Transaction
	var description sql.NullString

	err := r.db.QueryRow(ctx, query, transactionID).Scan(
		&modelTxn.TransactionID,
		&modelTxn.WalletID,
		&modelTxn.Amount,
		&modelTxn.Type,
		&description,
		&modelTxn.CreatedAt,
		&modelTxn.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	if description.Valid {
		modelTxn.Description = description.String
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// FindTransactionsByWalletID retrieves all ledger entries for a wallet in
// creation order.
func (r *PgxTransactionRepository) FindTransactionsByWalletID(ctx context.Context, walletID string) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, wallet_id, amount, type, description, created_at, updated_at
		FROM transactions
		WHERE wallet_id = $1
		ORDER BY created_at, transaction_id;
	`
	rows, err := r.db.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for wallet %s: %w", walletID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var description sql.NullString
		if err := rows.Scan(
			&t.TransactionID,
			&t.WalletID,
			&t.Amount,
			&t.Type,
			&description,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for wallet %s: %w", walletID, err)
		}
		if description.Valid {
			t.Description = description.String
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for wallet %s: %w", walletID, err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}
