package domain

import "time"

// ActivityLog is one audit trail entry. The ledger emits exactly one entry per
// successfully posted journal; other modules may append their own.
type ActivityLog struct {
	LogID       string         `json:"logID"` // Primary Key (UUID)
	TenantID    string         `json:"tenantID"`
	Description string         `json:"description"` // e.g. "Journal posted"
	SubjectType string         `json:"subjectType"` // Entity kind, e.g. "journal_entry"
	SubjectID   string         `json:"subjectID"`
	CauserID    string         `json:"causerID"` // Acting user; empty for system actions
	Properties  map[string]any `json:"properties"`
	Category    string         `json:"category"` // Log channel, e.g. "accounting"
	CreatedAt   time.Time      `json:"createdAt"`
}
