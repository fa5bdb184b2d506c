package mapping

import (
	"database/sql"

	"github.com/finledger/ledger-backend/internal/core/domain"
	"github.com/finledger/ledger-backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:   d.AccountID,
		TenantID:    d.TenantID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: string(d.AccountType),
		IsActive:    d.IsActive,
		Tags:        d.Tags,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.ParentID != "" {
		m.ParentID = sql.NullString{String: d.ParentID, Valid: true}
	}
	if d.ReportingGroup != "" {
		m.ReportingGroup = sql.NullString{String: d.ReportingGroup, Valid: true}
	}
	if d.Left != nil {
		m.Lft = sql.NullInt64{Int64: *d.Left, Valid: true}
	}
	if d.Right != nil {
		m.Rgt = sql.NullInt64{Int64: *d.Right, Valid: true}
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:   m.AccountID,
		TenantID:    m.TenantID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		IsActive:    m.IsActive,
		Tags:        m.Tags,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.ParentID.Valid {
		d.ParentID = m.ParentID.String
	}
	if m.ReportingGroup.Valid {
		d.ReportingGroup = m.ReportingGroup.String
	}
	if m.Lft.Valid {
		lft := m.Lft.Int64
		d.Left = &lft
	}
	if m.Rgt.Valid {
		rgt := m.Rgt.Int64
		d.Right = &rgt
	}
	return d
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
