package mapping

import (
	"github.com/jess232017/wallet-service/internal/core/domain"
	"github.com/jess232017/wallet-service/internal/models"
)

// ToModelWallet converts a domain Wallet to its persistence shape.
func ToModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:    d.WalletID,
		Name:        d.Name,
		Balance:     d.Balance,
		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWallet converts a persisted Wallet back to the domain shape.
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:    m.WalletID,
		Name:        m.Name,
		Balance:     m.Balance,
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWalletSlice converts a slice of persisted wallets.
func ToDomainWalletSlice(ms []models.Wallet) []domain.Wallet {
	out := make([]domain.Wallet, len(ms))
	for i, m := range ms {
		out[i] = ToDomainWallet(m)
	}
	return out
}
