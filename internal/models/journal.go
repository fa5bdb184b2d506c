package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// JournalEntry is the DB representation of a journal header row.
type JournalEntry struct {
	JournalID   string         `db:"journal_id"`
	TenantID    string         `db:"tenant_id"`
	Reference   sql.NullString `db:"reference"`
	Description string         `db:"description"`
	CreatedBy   string         `db:"created_by"`
	IsPosted    bool           `db:"is_posted"`
	PostedAt    sql.NullTime   `db:"posted_at"`
	AuditFields
}

// JournalLine is the DB representation of a journal line row.
// Lines carry no audit columns of their own; they are frozen with their
// header at posting time.
type JournalLine struct {
	LineID        string              `db:"line_id"`
	JournalID     string              `db:"journal_id"`
	AccountID     string              `db:"account_id"`
	Debit         decimal.Decimal     `db:"debit"`
	Credit        decimal.Decimal     `db:"credit"`
	BaseAmount    decimal.NullDecimal `db:"base_amount"`
	ForeignAmount decimal.NullDecimal `db:"foreign_amount"`
	ExchangeRate  decimal.NullDecimal `db:"exchange_rate"`
	Description   sql.NullString      `db:"description"`
}
