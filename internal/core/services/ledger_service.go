package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jess232017/wallet-service/internal/apperrors"
	"github.com/jess232017/wallet-service/internal/core/domain"
	portsevents "github.com/jess232017/wallet-service/internal/core/ports/events"
	portsrepo "github.com/jess232017/wallet-service/internal/core/ports/repositories"
	portssvc "github.com/jess232017/wallet-service/internal/core/ports/services"
	"github.com/jess232017/wallet-service/internal/dto"
	"github.com/jess232017/wallet-service/internal/middleware"
)

// ledgerService orchestrates the transactional deposit/withdraw path.
//
// Both operations follow the same shape: validate the amount before touching
// storage, then inside one unit of work re-read the wallet, append the ledger
// entry and apply the version-checked balance write. A version conflict rolls
// the whole unit back, so a lost-update race can never leave an orphan entry.
// Conflicts are surfaced as ErrConcurrentModification; retrying is the
// caller's decision, the service never retries on its own.
type ledgerService struct {
	txnRepo   portsrepo.TransactionRepository
	uow       portsrepo.UnitOfWork
	publisher portsevents.Publisher
}

// NewLedgerService creates a new LedgerService. publisher may be a noop.
func NewLedgerService(txnRepo portsrepo.TransactionRepository, uow portsrepo.UnitOfWork, publisher portsevents.Publisher) portssvc.LedgerSvcFacade {
	return &ledgerService{
		txnRepo:   txnRepo,
		uow:       uow,
		publisher: publisher,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateAmount rejects zero, negative and sub-cent amounts before any
// storage access happens.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if amount.Exponent() < -2 {
		return fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	return nil
}

// Deposit credits a wallet and records the matching ledger entry atomically.
func (s *ledgerService) Deposit(ctx context.Context, walletID string, req dto.DepositRequest) (*domain.Transaction, error) {
	return s.applyEntry(ctx, walletID, req.Amount, domain.Deposit, req.Description)
}

// Withdraw debits a wallet and records the matching ledger entry atomically.
// The balance check runs inside the unit of work against the freshly read
// balance, never a cached one.
func (s *ledgerService) Withdraw(ctx context.Context, walletID string, req dto.WithdrawRequest) (*domain.Transaction, error) {
	return s.applyEntry(ctx, walletID, req.Amount, domain.Withdrawal, req.Description)
}

func (s *ledgerService) applyEntry(ctx context.Context, walletID string, amount decimal.Decimal, txnType domain.TransactionType, description string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(amount); err != nil {
		logger.Warn("Rejected ledger entry with invalid amount",
			slog.String("wallet_id", walletID),
			slog.String("amount", amount.String()),
			slog.String("type", string(txnType)))
		return nil, err
	}

	// Deposits are stored positive, withdrawals negative, so a wallet's
	// balance always equals the sum of its entries.
	signedAmount := amount
	if txnType == domain.Withdrawal {
		signedAmount = amount.Neg()
	}

	var txn domain.Transaction
	var newBalance decimal.Decimal

	err := s.uow.Execute(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		wallet, err := repos.Wallets().FindWalletByID(ctx, walletID)
		if err != nil {
			return err
		}

		if txnType == domain.Withdrawal && wallet.Balance.LessThan(amount) {
			return fmt.Errorf("%w: balance %s, requested %s",
				apperrors.ErrInsufficientFunds, wallet.Balance.String(), amount.String())
		}

		now := time.Now().UTC()
		txn = domain.Transaction{
			TransactionID: uuid.NewString(),
			WalletID:      wallet.WalletID,
			Amount:        signedAmount,
			Type:          txnType,
			Description:   description,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		if err := repos.Transactions().SaveTransaction(ctx, txn); err != nil {
			return err
		}

		wallet.Balance = wallet.Balance.Add(signedAmount)
		wallet.UpdatedAt = now
		updated, err := repos.Wallets().UpdateWallet(ctx, *wallet)
		if err != nil {
			// A version conflict here aborts the unit of work, undoing the
			// entry insert along with it.
			return err
		}
		newBalance = updated.Balance
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrVersionConflict) {
			logger.Warn("Ledger entry lost optimistic concurrency race",
				slog.String("wallet_id", walletID),
				slog.String("type", string(txnType)))
			return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrConcurrentModification, walletID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Error("Failed to apply ledger entry",
				slog.String("wallet_id", walletID),
				slog.String("type", string(txnType)),
				slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.publishCompleted(ctx, txn, newBalance)

	logger.Info("Ledger entry applied",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("wallet_id", walletID),
		slog.String("type", string(txnType)),
		slog.String("amount", signedAmount.String()))
	return &txn, nil
}

// publishCompleted emits the post-commit event. Failures are logged and
// swallowed: the operation is already committed and must not be failed.
func (s *ledgerService) publishCompleted(ctx context.Context, txn domain.Transaction, balance decimal.Decimal) {
	if s.publisher == nil {
		return
	}
	event := domain.TransactionCompleted{
		TransactionID: txn.TransactionID,
		WalletID:      txn.WalletID,
		Amount:        txn.Amount,
		Type:          txn.Type,
		Balance:       balance,
		OccurredAt:    txn.CreatedAt,
	}
	if err := s.publisher.PublishTransactionCompleted(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to publish transaction completed event",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
	}
}

// GetTransactionByID retrieves a single ledger entry.
func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactionsByWallet retrieves all ledger entries for a wallet. The
// wallet must exist; an empty ledger yields an empty slice.
func (s *ledgerService) ListTransactionsByWallet(ctx context.Context, walletID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var txns []domain.Transaction
	err := s.uow.Execute(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if _, err := repos.Wallets().FindWalletByID(ctx, walletID); err != nil {
			return err
		}
		var err error
		txns, err = repos.Transactions().FindTransactionsByWalletID(ctx, walletID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to list transactions for wallet", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return txns, nil
}
