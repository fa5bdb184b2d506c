package services

import (
	"context"

	"github.com/finledger/ledger-backend/internal/core/domain"
	"github.com/finledger/ledger-backend/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its code within a tenant.
	GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// GetTree returns the tenant's full chart of accounts in depth-first,
	// parents-before-children order.
	GetTree(ctx context.Context, tenantID string) ([]domain.Account, error)

	// IsLeaf reports whether an account may receive journal postings.
	IsLeaf(ctx context.Context, tenantID string, accountID string) (bool, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data.
type AccountWriterSvc interface {
	// CreateAccount creates a new root-level account. Rejects duplicate
	// (tenant, code) pairs before touching the store.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// AddChildAccount creates a new account underneath parentID.
	AddChildAccount(ctx context.Context, tenantID string, parentID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// DeleteAccount removes an account, provided it has no journal lines and
	// no child accounts.
	DeleteAccount(ctx context.Context, tenantID string, accountID string, actorID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
