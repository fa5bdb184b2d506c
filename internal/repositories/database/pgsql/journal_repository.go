package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finledger/ledger-backend/internal/apperrors"
	"github.com/finledger/ledger-backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger-backend/internal/core/ports/repositories"
	"github.com/finledger/ledger-backend/internal/models"
	"github.com/finledger/ledger-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxJournalRepository persists journal headers and lines.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// CreateHeaderInTx inserts a draft journal header within the caller's transaction.
func (r *PgxJournalRepository) CreateHeaderInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (journal_id, tenant_id, reference, description, created_by, is_posted, posted_at, created_at, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.JournalID,
		m.TenantID,
		m.Reference,
		m.Description,
		m.CreatedBy,
		m.IsPosted,
		m.PostedAt,
		m.CreatedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal header %s: %w", entry.JournalID, err)
	}
	return nil
}

// CreateHeader persists a new journal header in draft state.
func (r *PgxJournalRepository) CreateHeader(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.CreateHeaderInTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// AddLineInTx inserts a journal line within the caller's transaction. The
// posting engine owns the draft-state check in that flow; this method only
// writes the row.
func (r *PgxJournalRepository) AddLineInTx(ctx context.Context, tx pgx.Tx, line domain.JournalLine) error {
	m := mapping.ToModelJournalLine(line)
	query := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, debit, credit, base_amount, foreign_amount, exchange_rate, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.LineID,
		m.JournalID,
		m.AccountID,
		m.Debit,
		m.Credit,
		m.BaseAmount,
		m.ForeignAmount,
		m.ExchangeRate,
		m.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal line %s: %w", line.LineID, err)
	}
	return nil
}

// AddLine appends a line to a draft journal. Lines are append-only before
// posting and frozen afterwards, so the header row is locked and checked
// first.
func (r *PgxJournalRepository) AddLine(ctx context.Context, line domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var isPosted bool
	err = tx.QueryRow(ctx,
		`SELECT is_posted FROM journal_entries WHERE journal_id = $1 FOR UPDATE;`,
		line.JournalID,
	).Scan(&isPosted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, line.JournalID)
		}
		return fmt.Errorf("failed to load journal %s: %w", line.JournalID, err)
	}
	if isPosted {
		return fmt.Errorf("%w: journal %s", apperrors.ErrAlreadyPosted, line.JournalID)
	}

	if err := r.AddLineInTx(ctx, tx, line); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// PostInTx flips the journal to posted within the caller's transaction.
// The guarded WHERE clause makes the flip idempotent: an already-posted
// journal matches zero rows and keeps its original posted_at.
func (r *PgxJournalRepository) PostInTx(ctx context.Context, tx pgx.Tx, tenantID string, journalID string, postedAt time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET is_posted = TRUE, posted_at = $3, last_updated_at = $3
		WHERE tenant_id = $1 AND journal_id = $2 AND NOT is_posted;
	`, tenantID, journalID, postedAt)
	if err != nil {
		return fmt.Errorf("failed to post journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM journal_entries WHERE tenant_id = $1 AND journal_id = $2);`,
			tenantID, journalID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check journal %s: %w", journalID, err)
		}
		if !exists {
			return fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		// Already posted: no-op by contract.
	}
	return nil
}

// Post marks a journal as posted in its own transaction. Idempotent.
func (r *PgxJournalRepository) Post(ctx context.Context, tenantID string, journalID string, postedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.PostInTx(ctx, tx, tenantID, journalID, postedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a tenant's journal header.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := r.Pool.QueryRow(ctx, `
		SELECT journal_id, tenant_id, reference, description, created_by, is_posted, posted_at, created_at, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE tenant_id = $1 AND journal_id = $2;
	`, tenantID, journalID).Scan(
		&m.JournalID,
		&m.TenantID,
		&m.Reference,
		&m.Description,
		&m.CreatedBy,
		&m.IsPosted,
		&m.PostedAt,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByJournalID retrieves all lines belonging to a journal.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, journal_id, account_id, debit, credit, base_amount, foreign_amount, exchange_rate, description
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_id;
	`, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	var lines []models.JournalLine
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.JournalID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.BaseAmount,
			&m.ForeignAmount,
			&m.ExchangeRate,
			&m.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines for journal %s: %w", journalID, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}
