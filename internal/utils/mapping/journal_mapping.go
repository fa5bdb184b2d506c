package mapping

import (
	"database/sql"

	"github.com/finledger/ledger-backend/internal/core/domain"
	"github.com/finledger/ledger-backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its model form.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		JournalID:   d.JournalID,
		TenantID:    d.TenantID,
		Description: d.Description,
		CreatedBy:   d.CreatedBy,
		IsPosted:    d.IsPosted,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.Reference != "" {
		m.Reference = sql.NullString{String: d.Reference, Valid: true}
	}
	if d.PostedAt != nil {
		m.PostedAt = sql.NullTime{Time: *d.PostedAt, Valid: true}
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to its domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		JournalID:   m.JournalID,
		TenantID:    m.TenantID,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		IsPosted:    m.IsPosted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.Reference.Valid {
		d.Reference = m.Reference.String
	}
	if m.PostedAt.Valid {
		postedAt := m.PostedAt.Time
		d.PostedAt = &postedAt
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to its model form.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	m := models.JournalLine{
		LineID:        d.LineID,
		JournalID:     d.JournalID,
		AccountID:     d.AccountID,
		Debit:         d.Debit,
		Credit:        d.Credit,
		BaseAmount:    d.BaseAmount,
		ForeignAmount: d.ForeignAmount,
		ExchangeRate:  d.ExchangeRate,
	}
	if d.Description != "" {
		m.Description = sql.NullString{String: d.Description, Valid: true}
	}
	return m
}

// ToDomainJournalLine converts a model JournalLine to its domain form.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	d := domain.JournalLine{
		LineID:        m.LineID,
		JournalID:     m.JournalID,
		AccountID:     m.AccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		BaseAmount:    m.BaseAmount,
		ForeignAmount: m.ForeignAmount,
		ExchangeRate:  m.ExchangeRate,
	}
	if m.Description.Valid {
		d.Description = m.Description.String
	}
	return d
}

// ToDomainJournalLineSlice converts model journal lines to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
