package repositories

import (
	"context"
	"time"

	"github.com/finledger/ledger-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a tenant's journal header by its identifier.
	FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, error)

	// FindLinesByJournalID retrieves all lines belonging to a journal.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)
}

// JournalWriter defines standalone write operations for journal data. Each
// call is its own atomic unit; the posting engine uses the InTx variants
// instead so the whole post commits or rolls back as one.
type JournalWriter interface {
	// CreateHeader persists a new journal header in draft state.
	CreateHeader(ctx context.Context, entry domain.JournalEntry) error

	// AddLine appends a line to a draft journal. Fails with
	// apperrors.ErrNotFound if the journal is missing and
	// apperrors.ErrAlreadyPosted if it has been posted.
	AddLine(ctx context.Context, line domain.JournalLine) error

	// Post flips the journal to posted and stamps postedAt. Idempotent:
	// posting an already-posted journal succeeds without side effects.
	Post(ctx context.Context, tenantID string, journalID string, postedAt time.Time) error
}

// JournalTransactionSupport defines journal writes that participate in a
// caller-owned database transaction.
type JournalTransactionSupport interface {
	CreateHeaderInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error
	AddLineInTx(ctx context.Context, tx pgx.Tx, line domain.JournalLine) error
	PostInTx(ctx context.Context, tx pgx.Tx, tenantID string, journalID string, postedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalTransactionSupport
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}

// RepositoryProvider bundles the concrete repositories handed to the service layer.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryWithTx
	JournalRepo     JournalRepositoryWithTx
	ActivityLogRepo ActivityLogRepository
}
