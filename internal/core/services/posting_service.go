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
	"github.com/finledger/ledger-backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// postingService is the journal posting engine. It owns no persisted state of
// its own; it coordinates the account and journal repositories inside one
// database transaction so a post either fully commits or leaves nothing
// behind.
type postingService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	journalRepo portsrepo.JournalRepositoryWithTx
	activityLog portssvc.ActivityLogger
}

// NewPostingService creates a new posting engine.
func NewPostingService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountRepositoryWithTx, activityLog portssvc.ActivityLogger) portssvc.PostingSvcFacade {
	return &postingService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		activityLog: activityLog,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

func nullDecimal(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *p, Valid: true}
}

// PostJournal validates and commits a journal atomically.
//
// The whole operation runs in a single transaction: header insert, account
// leaf checks, line inserts and the posted-flag flip. Each referenced account
// row is locked FOR SHARE, so a concurrent AddChildAccount cannot turn a leaf
// into a parent between the check and the commit. The audit event is emitted
// only after the transaction committed.
func (s *postingService) PostJournal(ctx context.Context, tenantID string, req dto.PostJournalRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: journal has no lines", apperrors.ErrValidation)
	}
	for _, line := range req.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: negative amount on account %s", apperrors.ErrValidation, line.AccountID)
		}
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		JournalID:   uuid.NewString(),
		TenantID:    tenantID,
		Reference:   req.Reference,
		Description: req.Description,
		CreatedBy:   actorID,
		IsPosted:    false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("begin posting transaction", err)
	}
	// No-op once the transaction has been committed.
	defer func() { _ = s.journalRepo.Rollback(ctx, tx) }()

	if err := s.journalRepo.CreateHeaderInTx(ctx, tx, entry); err != nil {
		return nil, apperrors.NewStorageError("insert journal header", err)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, lineReq := range req.Lines {
		account, err := s.accountRepo.FindAccountByIDForShare(ctx, tx, tenantID, lineReq.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, lineReq.AccountID)
			}
			return nil, apperrors.NewStorageError("lock account for posting", err)
		}

		leaf, err := s.isLeafInTx(ctx, tx, account)
		if err != nil {
			return nil, err
		}
		if !leaf {
			return nil, fmt.Errorf("%w: account %s (%s)", apperrors.ErrNonLeafPosting, account.Code, account.AccountID)
		}

		line := domain.JournalLine{
			LineID:        uuid.NewString(),
			JournalID:     entry.JournalID,
			AccountID:     lineReq.AccountID,
			Debit:         lineReq.Debit,
			Credit:        lineReq.Credit,
			BaseAmount:    nullDecimal(lineReq.BaseAmount),
			ForeignAmount: nullDecimal(lineReq.ForeignAmount),
			ExchangeRate:  nullDecimal(lineReq.ExchangeRate),
			Description:   lineReq.Description,
		}
		if err := s.journalRepo.AddLineInTx(ctx, tx, line); err != nil {
			return nil, apperrors.NewStorageError("insert journal line", err)
		}

		debits = debits.Add(lineReq.Debit)
		credits = credits.Add(lineReq.Credit)
	}

	if !accounting.Balanced(debits, credits) {
		return nil, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalancedJournal, debits.String(), credits.String())
	}

	if err := s.journalRepo.PostInTx(ctx, tx, tenantID, entry.JournalID, now); err != nil {
		return nil, apperrors.NewStorageError("mark journal posted", err)
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, apperrors.NewStorageError("commit posting transaction", err)
	}

	entry.IsPosted = true
	entry.PostedAt = &now

	s.emitPostedEvent(ctx, &entry, actorID)

	logger.Info("Journal posted",
		slog.String("journal_id", entry.JournalID),
		slog.String("tenant_id", tenantID),
		slog.String("debit_total", debits.String()),
	)
	return &entry, nil
}

// isLeafInTx evaluates the leaf predicate inside the posting transaction.
// Bounds answer in constant time; rows without bounds fall back to a child
// count under the same snapshot.
func (s *postingService) isLeafInTx(ctx context.Context, tx pgx.Tx, account *domain.Account) (bool, error) {
	if account.HasBounds() {
		return account.IsLeafByBounds(), nil
	}
	children, err := s.accountRepo.CountChildrenInTx(ctx, tx, account.TenantID, account.AccountID)
	if err != nil {
		return false, apperrors.NewStorageError("count children for leaf check", err)
	}
	return children == 0, nil
}

// emitPostedEvent sends the single audit event for a successful post. A
// failing audit sink does not unwind the already-committed journal; it is
// logged and the posted entry stands.
func (s *postingService) emitPostedEvent(ctx context.Context, entry *domain.JournalEntry, actorID string) {
	err := s.activityLog.Log(ctx, entry.TenantID, "Journal posted",
		portssvc.EntityRef{Type: "journal_entry", ID: entry.JournalID},
		actorID,
		map[string]any{
			"journal_id": entry.JournalID,
			"tenant_id":  entry.TenantID,
		},
		"accounting",
	)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to write audit entry for posted journal",
			slog.String("error", err.Error()),
			slog.String("journal_id", entry.JournalID),
		)
	}
}

func (s *postingService) GetJournal(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	entry, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, apperrors.NewStorageError("find journal", err)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("load journal lines", err)
	}
	return entry, lines, nil
}

// Post marks a draft journal as posted. Posting an already-posted journal is
// a successful no-op, so callers may retry freely.
func (s *postingService) Post(ctx context.Context, tenantID string, journalID string) error {
	err := s.journalRepo.Post(ctx, tenantID, journalID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewStorageError("post journal", err)
	}
	return nil
}
