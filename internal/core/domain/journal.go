package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents the header of a double-entry journal.
//
// A journal starts in draft state (IsPosted false). Posting is one-way: once
// IsPosted is true the header and all its lines are immutable and further
// post calls are no-ops.
type JournalEntry struct {
	JournalID   string     `json:"journalID"` // Primary Key (UUID)
	TenantID    string     `json:"tenantID"`
	Reference   string     `json:"reference"` // Optional external reference
	Description string     `json:"description"`
	CreatedBy   string     `json:"createdBy"` // Actor reference
	IsPosted    bool       `json:"isPosted"`
	PostedAt    *time.Time `json:"postedAt"` // Set exactly once, when the journal is posted
	AuditFields
}

// JournalLine is a single debit/credit movement within a journal.
//
// The engine only requires that debits and credits balance across the whole
// journal; an individual line may carry amounts on both sides. The foreign
// amount and exchange rate are carried through unchanged for multi-currency
// bookkeeping; no translation happens here.
type JournalLine struct {
	LineID        string              `json:"lineID"`    // Primary Key (UUID)
	JournalID     string              `json:"journalID"` // Owning header
	AccountID     string              `json:"accountID"` // Must reference a leaf account at posting time
	Debit         decimal.Decimal     `json:"debit"`
	Credit        decimal.Decimal     `json:"credit"`
	BaseAmount    decimal.NullDecimal `json:"baseAmount"`
	ForeignAmount decimal.NullDecimal `json:"foreignAmount"`
	ExchangeRate  decimal.NullDecimal `json:"exchangeRate"`
	Description   string              `json:"description"`
}
