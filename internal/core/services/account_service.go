package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finledger/ledger-backend/internal/apperrors"
	"github.com/finledger/ledger-backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledger-backend/internal/core/ports/services"
	"github.com/finledger/ledger-backend/internal/dto"
	"github.com/finledger/ledger-backend/internal/middleware"
	"github.com/finledger/ledger-backend/internal/utils/nestedset"
	"github.com/google/uuid"
)

// accountService manages the chart of accounts for all tenants.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// newAccountFromRequest builds the domain account shared by root and child creation.
func newAccountFromRequest(tenantID string, req dto.CreateAccountRequest, actorID string, now time.Time) domain.Account {
	return domain.Account{
		AccountID:      uuid.NewString(),
		TenantID:       tenantID,
		Code:           req.Code,
		Name:           req.Name,
		AccountType:    req.AccountType,
		IsActive:       true,
		Tags:           req.Tags,
		ReportingGroup: req.ReportingGroup,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
}

// checkCodeAvailable rejects duplicate (tenant, code) pairs before the store
// is touched. The unique index backs this up for concurrent creates.
func (s *accountService) checkCodeAvailable(ctx context.Context, tenantID, code string) error {
	existing, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewStorageError("check account code uniqueness", err)
	}
	if existing != nil {
		return fmt.Errorf("%w: code %q", apperrors.ErrDuplicateCode, code)
	}
	return nil
}

func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if err := s.checkCodeAvailable(ctx, tenantID, req.Code); err != nil {
		return nil, err
	}

	account := newAccountFromRequest(tenantID, req, actorID, time.Now().UTC())
	created, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		if !apperrors.IsBusinessError(err) {
			logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
			return nil, apperrors.NewStorageError("save account", err)
		}
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", created.AccountID), slog.String("code", created.Code), slog.String("tenant_id", tenantID))
	return created, nil
}

func (s *accountService) AddChildAccount(ctx context.Context, tenantID string, parentID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if err := s.checkCodeAvailable(ctx, tenantID, req.Code); err != nil {
		return nil, err
	}

	account := newAccountFromRequest(tenantID, req, actorID, time.Now().UTC())
	account.ParentID = parentID
	created, err := s.accountRepo.AddChildAccount(ctx, parentID, account)
	if err != nil {
		if !apperrors.IsBusinessError(err) {
			logger.Error("Failed to add child account", slog.String("error", err.Error()), slog.String("parent_id", parentID), slog.String("tenant_id", tenantID))
			return nil, apperrors.NewStorageError("add child account", err)
		}
		return nil, err
	}

	logger.Info("Child account created", slog.String("account_id", created.AccountID), slog.String("parent_id", parentID), slog.String("tenant_id", tenantID))
	return created, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, apperrors.NewStorageError("find account by id", err)
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by code", slog.String("error", err.Error()), slog.String("code", code))
			return nil, apperrors.NewStorageError("find account by code", err)
		}
		return nil, err
	}
	return account, nil
}

// GetTree returns the tenant's chart of accounts ordered by left bound. The
// traversal is verified against the nested-set invariant; corruption is
// logged loudly but the data is still returned so operators can inspect it.
func (s *accountService) GetTree(ctx context.Context, tenantID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.GetTree(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to load account tree", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, apperrors.NewStorageError("load account tree", err)
	}

	intervals := make([]nestedset.Interval, 0, len(accounts))
	for i := range accounts {
		if accounts[i].HasBounds() {
			intervals = append(intervals, nestedset.Interval{Left: *accounts[i].Left, Right: *accounts[i].Right})
		}
	}
	if err := nestedset.ValidateTraversal(intervals); err != nil {
		logger.Error("Account tree failed nested-set validation", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
	}

	return accounts, nil
}

func (s *accountService) IsLeaf(ctx context.Context, tenantID string, accountID string) (bool, error) {
	leaf, err := s.accountRepo.IsLeaf(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewStorageError("leaf check", err)
		}
		return false, err
	}
	return leaf, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, tenantID string, accountID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.accountRepo.DeleteAccount(ctx, tenantID, accountID)
	if err != nil {
		if !apperrors.IsBusinessError(err) {
			logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return apperrors.NewStorageError("delete account", err)
		}
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID), slog.String("tenant_id", tenantID), slog.String("actor_id", actorID))
	return nil
}
