package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jess232017/wallet-service/internal/apperrors"
	"github.com/jess232017/wallet-service/internal/core/domain"
	portsrepo "github.com/jess232017/wallet-service/internal/core/ports/repositories"
	portssvc "github.com/jess232017/wallet-service/internal/core/ports/services"
	"github.com/jess232017/wallet-service/internal/dto"
	"github.com/jess232017/wallet-service/internal/middleware"
)

// walletService provides wallet reads and administrative operations. Balance
// mutation is deliberately out of reach here; that path belongs to the ledger
// service and its unit of work.
type walletService struct {
	walletRepo portsrepo.WalletRepository
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepository) portssvc.WalletSvcFacade {
	return &walletService{walletRepo: walletRepo}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// CreateWallet creates a wallet with a zero balance and version 1.
func (s *walletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: wallet name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	wallet := domain.Wallet{
		WalletID: uuid.NewString(),
		Name:     name,
		Balance:  decimal.Zero,
		Version:  1,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		logger.Error("Failed to save wallet", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	logger.Info("Wallet created", slog.String("wallet_id", wallet.WalletID), slog.String("wallet_name", wallet.Name))
	return &wallet, nil
}

// GetWalletByID retrieves a wallet by its ID.
func (s *walletService) GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find wallet by ID", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return wallet, nil
}

// ListWallets retrieves wallets ordered by creation time.
func (s *walletService) ListWallets(ctx context.Context, params dto.ListWalletsParams) ([]domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallets, err := s.walletRepo.ListWallets(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list wallets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

// GetBalance returns the wallet's cached balance. The invariant maintained by
// the ledger service guarantees it equals the sum of the wallet's entries.
func (s *walletService) GetBalance(ctx context.Context, walletID string) (*dto.BalanceResponse, error) {
	wallet, err := s.GetWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		WalletID: wallet.WalletID,
		Balance:  wallet.Balance,
	}, nil
}

// UpdateWallet changes mutable wallet fields (currently the name). The write
// goes through the same version-checked update as the balance path, so a
// concurrent deposit makes it fail with ErrConcurrentModification rather than
// silently clobbering the balance.
func (s *walletService) UpdateWallet(ctx context.Context, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: wallet name must not be empty", apperrors.ErrValidation)
		}
		wallet.Name = name
		updated = true
	}
	if !updated {
		return wallet, nil
	}

	wallet.UpdatedAt = time.Now().UTC()
	result, err := s.walletRepo.UpdateWallet(ctx, *wallet)
	if err != nil {
		if errors.Is(err, apperrors.ErrVersionConflict) {
			logger.Warn("Wallet update lost optimistic concurrency race", slog.String("wallet_id", walletID))
			return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrConcurrentModification, walletID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update wallet", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Wallet updated", slog.String("wallet_id", walletID))
	return result, nil
}

// DeleteWallet removes a wallet. This is an administrative operation, not a
// ledger event; no ledger entry is written for it.
func (s *walletService) DeleteWallet(ctx context.Context, walletID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.walletRepo.DeleteWallet(ctx, walletID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete wallet", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		}
		return err
	}

	logger.Info("Wallet deleted", slog.String("wallet_id", walletID))
	return nil
}
