package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jess232017/wallet-service/internal/apperrors"
	"github.com/jess232017/wallet-service/internal/core/domain"
	portsrepo "github.com/jess232017/wallet-service/internal/core/ports/repositories"
	"github.com/jess232017/wallet-service/internal/utils/mapping"
)

// MemWalletRepository implements WalletRepository over a Store. With tx nil
// every call applies immediately under the store lock; with tx set, writes are
// staged on the transaction buffer instead.
type MemWalletRepository struct {
	store *Store
	tx    *memTx
}

// NewWalletRepository creates a standalone (auto-committing) wallet repository.
func NewWalletRepository(store *Store) portsrepo.WalletRepository {
	return &MemWalletRepository{store: store}
}

var _ portsrepo.WalletRepository = (*MemWalletRepository)(nil)

func (r *MemWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	m := mapping.ToModelWallet(wallet)
	if r.tx != nil {
		r.tx.stagedInserts = append(r.tx.stagedInserts, m)
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.wallets[m.WalletID]; exists {
		return fmt.Errorf("%w: wallet with ID %s already exists", apperrors.ErrDuplicate, m.WalletID)
	}
	r.store.wallets[m.WalletID] = m
	return nil
}

func (r *MemWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, exists := r.store.wallets[walletID]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	w := mapping.ToDomainWallet(m)
	return &w, nil
}

func (r *MemWalletRepository) ListWallets(ctx context.Context, limit int, offset int) ([]domain.Wallet, error) {
	if limit <= 0 {
		limit = 20
	}

	r.store.mu.Lock()
	all := make([]domain.Wallet, 0, len(r.store.wallets))
	for _, m := range r.store.wallets {
		all = append(all, mapping.ToDomainWallet(m))
	}
	r.store.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].WalletID < all[j].WalletID
	})

	if offset >= len(all) {
		return []domain.Wallet{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *MemWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error) {
	m := mapping.ToModelWallet(wallet)

	if r.tx != nil {
		// Check against committed state now for an early conflict; commit
		// re-runs the check, which is what makes the protocol safe.
		r.store.mu.Lock()
		current, exists := r.store.wallets[m.WalletID]
		r.store.mu.Unlock()
		if !exists {
			return nil, apperrors.ErrNotFound
		}
		if current.Version != m.Version {
			return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrVersionConflict, m.WalletID)
		}

		r.tx.stagedUpdates = append(r.tx.stagedUpdates, stagedWalletUpdate{
			wallet:          m,
			expectedVersion: m.Version,
		})
		updated := mapping.ToDomainWallet(m)
		updated.Version = m.Version + 1
		updated.CreatedAt = current.CreatedAt
		return &updated, nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, exists := r.store.wallets[m.WalletID]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	if current.Version != m.Version {
		return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrVersionConflict, m.WalletID)
	}
	m.Version = current.Version + 1
	m.CreatedAt = current.CreatedAt
	r.store.wallets[m.WalletID] = m
	updated := mapping.ToDomainWallet(m)
	return &updated, nil
}

func (r *MemWalletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	if r.tx != nil {
		r.tx.stagedDeletes = append(r.tx.stagedDeletes, walletID)
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.wallets[walletID]; !exists {
		return apperrors.ErrNotFound
	}
	delete(r.store.wallets, walletID)
	kept := r.store.transactions[:0]
	for _, t := range r.store.transactions {
		if t.WalletID != walletID {
			kept = append(kept, t)
		}
	}
	r.store.transactions = kept
	return nil
}
