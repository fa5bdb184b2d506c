package models

import (
	"database/sql"
	"time"
)

// AuditFields holds the audit columns shared by most tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Account is the DB representation of a chart-of-accounts row.
// Lft/Rgt are nullable: rows imported from systems without nested-set bounds
// keep NULL until a tree rebuild assigns them.
type Account struct {
	AccountID      string         `db:"account_id"`
	TenantID       string         `db:"tenant_id"`
	ParentID       sql.NullString `db:"parent_id"`
	Code           string         `db:"code"`
	Name           string         `db:"name"`
	AccountType    string         `db:"account_type"`
	IsActive       bool           `db:"is_active"`
	Tags           []string       `db:"tags"` // Stored as jsonb
	ReportingGroup sql.NullString `db:"reporting_group"`
	Lft            sql.NullInt64  `db:"lft"`
	Rgt            sql.NullInt64  `db:"rgt"`
	AuditFields
}
