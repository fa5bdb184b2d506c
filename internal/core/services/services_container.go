package services

import (
	portsrepo "github.com/finledger/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledger-backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	activityLogger := NewActivityLogService(repos.ActivityLogRepo)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Posting = NewPostingService(repos.JournalRepo, repos.AccountRepo, activityLogger)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.PostingSvcFacade = (*postingService)(nil)
)
