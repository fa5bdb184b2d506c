package repositories

import (
	"context"

	"github.com/finledger/ledger-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a tenant's account by its unique identifier.
	FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its user-facing code within a tenant.
	// Returns nil and apperrors.ErrNotFound when no such code exists.
	FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// CountChildren returns the number of direct children of an account.
	CountChildren(ctx context.Context, tenantID string, accountID string) (int64, error)

	// IsLeaf reports whether the account has no descendants. Uses the
	// nested-interval bounds when present, otherwise falls back to a direct
	// child count.
	IsLeaf(ctx context.Context, tenantID string, accountID string) (bool, error)

	// GetTree returns all accounts of a tenant ordered by their left bound,
	// which yields a parents-before-children depth-first traversal.
	GetTree(ctx context.Context, tenantID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new root-level account, assigning it a fresh
	// interval after the tenant's current rightmost bound.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// AddChildAccount inserts account as a child of parentID, widening the
	// parent's and all affected ancestors' intervals. Serialized per tenant.
	AddChildAccount(ctx context.Context, parentID string, account domain.Account) (*domain.Account, error)

	// DeleteAccount removes an account. Fails with apperrors.ErrHasTransactions
	// if any journal line references it, or apperrors.ErrHasChildren if it has
	// child accounts.
	DeleteAccount(ctx context.Context, tenantID string, accountID string) error
}

// AccountTransactionSupport defines account operations that participate in a
// caller-owned database transaction. Used by the posting engine so leaf checks
// observe the same snapshot as the journal writes.
type AccountTransactionSupport interface {
	// FindAccountByIDForShare selects an account and locks its row FOR SHARE
	// within tx, blocking concurrent tree mutations until the tx ends.
	FindAccountByIDForShare(ctx context.Context, tx pgx.Tx, tenantID string, accountID string) (*domain.Account, error)

	// CountChildrenInTx counts direct children within tx.
	CountChildrenInTx(ctx context.Context, tx pgx.Tx, tenantID string, accountID string) (int64, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
