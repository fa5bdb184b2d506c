package services

import (
	"context"

	"github.com/finledger/ledger-backend/internal/core/domain"
	"github.com/finledger/ledger-backend/internal/dto"
)

// PostingSvcFacade is the journal posting engine boundary.
type PostingSvcFacade interface {
	// PostJournal validates and commits a journal (header plus lines) as one
	// atomic unit. On success the returned header is posted; on any failure
	// nothing is persisted.
	PostJournal(ctx context.Context, tenantID string, req dto.PostJournalRequest, actorID string) (*domain.JournalEntry, error)

	// GetJournal retrieves a journal header together with its lines.
	GetJournal(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, []domain.JournalLine, error)

	// Post marks an existing draft journal as posted. Idempotent: posting an
	// already-posted journal is a successful no-op.
	Post(ctx context.Context, tenantID string, journalID string) error
}
