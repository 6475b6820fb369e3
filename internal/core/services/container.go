package services

import (
	portsevents "github.com/jess232017/wallet-service/internal/core/ports/events"
	portsrepo "github.com/jess232017/wallet-service/internal/core/ports/repositories"
	portssvc "github.com/jess232017/wallet-service/internal/core/ports/services"
)

// NewServiceContainer wires the services over a repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher portsevents.Publisher) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Wallet: NewWalletService(repos.WalletRepo),
		Ledger: NewLedgerService(repos.TransactionRepo, repos.UnitOfWork, publisher),
	}
}
