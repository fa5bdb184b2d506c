package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finledger/ledger-backend/internal/apperrors"
	"github.com/finledger/ledger-backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger-backend/internal/core/ports/repositories"
	"github.com/finledger/ledger-backend/internal/models"
	"github.com/finledger/ledger-backend/internal/utils/mapping"
	"github.com/finledger/ledger-backend/internal/utils/nestedset"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, tenant_id, parent_id, code, name, account_type, is_active, tags, reporting_group, lft, rgt, created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository persists the chart of accounts.
//
// The tree uses nested-set bounds maintained by true rewrites: every insert
// shifts all bounds at or beyond the parent's right edge by +2, every leaf
// delete closes the gap again. All bound rewrites for one tenant run under a
// transaction-scoped advisory lock, so concurrent inserts cannot interleave
// and corrupt interval containment.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var m models.Account
	var tagsJSON []byte

	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.ParentID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.IsActive,
		&tagsJSON,
		&m.ReportingGroup,
		&m.Lft,
		&m.Rgt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &m.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode account tags: %w", err)
		}
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func insertAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	tagsJSON, err := json.Marshal(m.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode account tags: %w", err)
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		m.AccountID,
		m.TenantID,
		m.ParentID,
		m.Code,
		m.Name,
		m.AccountType,
		m.IsActive,
		tagsJSON,
		m.ReportingGroup,
		m.Lft,
		m.Rgt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: code %q in tenant %s", apperrors.ErrDuplicateCode, account.Code, account.TenantID)
		}
		return fmt.Errorf("failed to insert account %s: %w", account.AccountID, err)
	}
	return nil
}

// SaveAccount persists a new root-level account. The fresh node is appended
// after the tenant's current rightmost bound, so existing intervals never move.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := lockTenantTree(ctx, tx, account.TenantID); err != nil {
		return nil, err
	}

	var maxRight int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(rgt), 0) FROM accounts WHERE tenant_id = $1;`,
		account.TenantID,
	).Scan(&maxRight)
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant max bound: %w", err)
	}

	bounds := nestedset.RootAfter(maxRight)
	account.Left = &bounds.Left
	account.Right = &bounds.Right
	account.ParentID = ""

	if err := insertAccount(ctx, tx, account); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &account, nil
}

// AddChildAccount inserts a child under parentID using the nested-set rewrite:
// all bounds >= the parent's right edge shift by +2 and the child takes the
// two freed positions just inside the parent. The parent row is re-read under
// the tenant lock so concurrent sibling inserts serialize cleanly.
//
// Parents without initialized bounds (imported rows) get an adjacency-only
// child with NULL bounds; leaf checks on such rows fall back to child counts.
func (r *PgxAccountRepository) AddChildAccount(ctx context.Context, parentID string, account domain.Account) (*domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := lockTenantTree(ctx, tx, account.TenantID); err != nil {
		return nil, err
	}

	parent, err := r.findByIDInTx(ctx, tx, account.TenantID, parentID, "FOR UPDATE")
	if err != nil {
		return nil, err
	}

	if parent.HasBounds() {
		parentRight := *parent.Right
		_, err = tx.Exec(ctx,
			`UPDATE accounts SET rgt = rgt + 2 WHERE tenant_id = $1 AND rgt >= $2;`,
			account.TenantID, parentRight,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to widen right bounds: %w", err)
		}
		_, err = tx.Exec(ctx,
			`UPDATE accounts SET lft = lft + 2 WHERE tenant_id = $1 AND lft > $2;`,
			account.TenantID, parentRight,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to shift left bounds: %w", err)
		}

		bounds := nestedset.ChildOf(nestedset.Interval{Left: *parent.Left, Right: parentRight})
		account.Left = &bounds.Left
		account.Right = &bounds.Right
	} else {
		account.Left = nil
		account.Right = nil
	}
	account.ParentID = parentID

	if err := insertAccount(ctx, tx, account); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *PgxAccountRepository) findByIDInTx(ctx context.Context, tx pgx.Tx, tenantID, accountID, lockClause string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2 ` + lockClause + `;`
	account, err := scanAccount(tx.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// FindAccountByID retrieves a tenant's account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// FindAccountByCode retrieves an account by its user-facing code within a tenant.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account code %q", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find account by code %q: %w", code, err)
	}
	return account, nil
}

// CountChildren returns the number of direct children of an account.
func (r *PgxAccountRepository) CountChildren(ctx context.Context, tenantID string, accountID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE tenant_id = $1 AND parent_id = $2;`,
		tenantID, accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count children of %s: %w", accountID, err)
	}
	return count, nil
}

// IsLeaf reports whether the account has no descendants. Constant time via
// the interval width when bounds are present; child count otherwise.
func (r *PgxAccountRepository) IsLeaf(ctx context.Context, tenantID string, accountID string) (bool, error) {
	account, err := r.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return false, err
	}
	if account.HasBounds() {
		return account.IsLeafByBounds(), nil
	}
	count, err := r.CountChildren(ctx, tenantID, accountID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// GetTree returns all tenant accounts ordered by left bound, a valid
// parents-before-children depth-first traversal. Rows without bounds sort last.
func (r *PgxAccountRepository) GetTree(ctx context.Context, tenantID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 ORDER BY lft ASC NULLS LAST, code ASC;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account tree: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account tree: %w", err)
	}
	return accounts, nil
}

// DeleteAccount removes an account once the guards pass: no journal line may
// reference it and it may not have children. A removed leaf's two bound
// positions are reclaimed so the tenant's intervals stay compact.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, tenantID string, accountID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := lockTenantTree(ctx, tx, tenantID); err != nil {
		return err
	}

	account, err := r.findByIDInTx(ctx, tx, tenantID, accountID, "FOR UPDATE")
	if err != nil {
		return err
	}

	var hasLines bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`,
		accountID,
	).Scan(&hasLines)
	if err != nil {
		return fmt.Errorf("failed to check journal lines for account %s: %w", accountID, err)
	}
	if hasLines {
		return fmt.Errorf("%w: account %s", apperrors.ErrHasTransactions, accountID)
	}

	var hasChildren bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE tenant_id = $1 AND parent_id = $2);`,
		tenantID, accountID,
	).Scan(&hasChildren)
	if err != nil {
		return fmt.Errorf("failed to check children for account %s: %w", accountID, err)
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s", apperrors.ErrHasChildren, accountID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM accounts WHERE tenant_id = $1 AND account_id = $2;`, tenantID, accountID); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}

	// Close the interval gap left by the removed leaf.
	if account.HasBounds() {
		right := *account.Right
		if _, err := tx.Exec(ctx, `UPDATE accounts SET rgt = rgt - 2 WHERE tenant_id = $1 AND rgt > $2;`, tenantID, right); err != nil {
			return fmt.Errorf("failed to narrow right bounds: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE accounts SET lft = lft - 2 WHERE tenant_id = $1 AND lft > $2;`, tenantID, right); err != nil {
			return fmt.Errorf("failed to shift left bounds: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindAccountByIDForShare selects an account within tx and locks its row FOR
// SHARE. Posting uses this so the leaf property cannot change under it: an
// AddChildAccount targeting this row blocks until the posting tx finishes.
func (r *PgxAccountRepository) FindAccountByIDForShare(ctx context.Context, tx pgx.Tx, tenantID string, accountID string) (*domain.Account, error) {
	return r.findByIDInTx(ctx, tx, tenantID, accountID, "FOR SHARE")
}

// CountChildrenInTx counts direct children under the caller's transaction snapshot.
func (r *PgxAccountRepository) CountChildrenInTx(ctx context.Context, tx pgx.Tx, tenantID string, accountID string) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE tenant_id = $1 AND parent_id = $2;`,
		tenantID, accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count children of %s: %w", accountID, err)
	}
	return count, nil
}
