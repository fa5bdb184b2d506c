package models

import (
	"database/sql"
	"time"
)

// ActivityLog is the DB representation of one audit trail row.
// Properties holds the raw jsonb payload.
type ActivityLog struct {
	LogID       string         `db:"log_id"`
	TenantID    string         `db:"tenant_id"`
	Description string         `db:"description"`
	SubjectType string         `db:"subject_type"`
	SubjectID   string         `db:"subject_id"`
	CauserID    sql.NullString `db:"causer_id"`
	Properties  []byte         `db:"properties"`
	Category    sql.NullString `db:"category"`
	CreatedAt   time.Time      `db:"created_at"`
}
