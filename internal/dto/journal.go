package dto

import (
	"time"

	"github.com/finledger/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one candidate line of a journal to be posted.
// Amounts use decimal strings on the wire; binary floats never enter the
// balance arithmetic.
type JournalLineRequest struct {
	AccountID     string           `json:"accountID" binding:"required"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
	BaseAmount    *decimal.Decimal `json:"baseAmount"`    // Optional multi-currency carry-through
	ForeignAmount *decimal.Decimal `json:"foreignAmount"` // Optional
	ExchangeRate  *decimal.Decimal `json:"exchangeRate"`  // Optional
	Description   string           `json:"description"`
}

// PostJournalRequest carries a journal header plus its candidate lines.
type PostJournalRequest struct {
	Reference   string               `json:"reference"`
	Description string               `json:"description" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse mirrors domain.JournalLine for API consumers.
type JournalLineResponse struct {
	LineID        string           `json:"lineID"`
	JournalID     string           `json:"journalID"`
	AccountID     string           `json:"accountID"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
	BaseAmount    *decimal.Decimal `json:"baseAmount"`
	ForeignAmount *decimal.Decimal `json:"foreignAmount"`
	ExchangeRate  *decimal.Decimal `json:"exchangeRate"`
	Description   string           `json:"description"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID   string                `json:"journalID"`
	TenantID    string                `json:"tenantID"`
	Reference   string                `json:"reference"`
	Description string                `json:"description"`
	CreatedBy   string                `json:"createdBy"`
	IsPosted    bool                  `json:"isPosted"`
	PostedAt    *time.Time            `json:"postedAt"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
}

func nullableDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(line domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:        line.LineID,
		JournalID:     line.JournalID,
		AccountID:     line.AccountID,
		Debit:         line.Debit,
		Credit:        line.Credit,
		BaseAmount:    nullableDecimal(line.BaseAmount),
		ForeignAmount: nullableDecimal(line.ForeignAmount),
		ExchangeRate:  nullableDecimal(line.ExchangeRate),
		Description:   line.Description,
	}
}

// ToJournalResponse converts a journal header and optional lines to the DTO.
func ToJournalResponse(entry *domain.JournalEntry, lines []domain.JournalLine) JournalResponse {
	resp := JournalResponse{
		JournalID:   entry.JournalID,
		TenantID:    entry.TenantID,
		Reference:   entry.Reference,
		Description: entry.Description,
		CreatedBy:   entry.CreatedBy,
		IsPosted:    entry.IsPosted,
		PostedAt:    entry.PostedAt,
		CreatedAt:   entry.CreatedAt,
	}
	if len(lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(lines))
		for i, line := range lines {
			resp.Lines[i] = ToJournalLineResponse(line)
		}
	}
	return resp
}
