package services

import (
	"context"

	"github.com/jess232017/wallet-service/internal/core/domain"
	"github.com/jess232017/wallet-service/internal/dto"
)

// WalletSvcFacade defines the read and administrative wallet operations.
// None of these mutate the balance; balance changes go through LedgerSvcFacade.
type WalletSvcFacade interface {
	CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error)
	GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, params dto.ListWalletsParams) ([]domain.Wallet, error)
	GetBalance(ctx context.Context, walletID string) (*dto.BalanceResponse, error)
	UpdateWallet(ctx context.Context, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, walletID string) error
}

// LedgerSvcFacade defines the transactional deposit/withdraw operations and
// ledger reads.
type LedgerSvcFacade interface {
	Deposit(ctx context.Context, walletID string, req dto.DepositRequest) (*domain.Transaction, error)
	Withdraw(ctx context.Context, walletID string, req dto.WithdrawRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactionsByWallet(ctx context.Context, walletID string) ([]domain.Transaction, error)
}

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Wallet WalletSvcFacade
	Ledger LedgerSvcFacade
}
