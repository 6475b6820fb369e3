package dto

import (
	"time"

	"github.com/jess232017/wallet-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the data needed to create a new wallet.
// Balance is never accepted from the caller; wallets always start at zero.
type CreateWalletRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// UpdateWalletRequest defines the fields a caller may change on a wallet.
// Use pointers to distinguish zero-value updates from fields not provided.
type UpdateWalletRequest struct {
	Name *string `json:"name" binding:"omitempty,max=50"`
}

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID  string          `json:"walletID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	WalletID string          `json:"walletID"`
	Balance  decimal.Decimal `json:"balance"`
}

// ListWalletsParams defines query parameters for listing wallets.
type ListWalletsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ToWalletResponse converts a domain.Wallet to its response DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:  w.WalletID,
		Name:      w.Name,
		Balance:   w.Balance,
		Version:   w.Version,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToListWalletResponse converts a slice of domain.Wallet to response DTOs.
func ToListWalletResponse(wallets []domain.Wallet) []WalletResponse {
	res := make([]WalletResponse, len(wallets))
	for i, w := range wallets {
		res[i] = ToWalletResponse(&w)
	}
	return res
}
