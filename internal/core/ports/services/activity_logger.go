package services

import "context"

// EntityRef identifies the entity an audit entry is about.
type EntityRef struct {
	Type string // e.g. "journal_entry", "account"
	ID   string
}

// ActivityLogger is the audit logging sink consumed by the ledger services.
// Implementations must be safe for concurrent use. The ledger calls Log
// exactly once per successful journal post, never on failure.
type ActivityLogger interface {
	Log(ctx context.Context, tenantID string, description string, subject EntityRef, causerID string, properties map[string]any, category string) error
}
