package repositories

import (
	"context"

	"github.com/finledger/ledger-backend/internal/core/domain"
)

// ActivityLogRepository persists audit trail entries emitted by the services.
type ActivityLogRepository interface {
	// SaveActivity appends one audit entry.
	SaveActivity(ctx context.Context, entry domain.ActivityLog) error

	// ListActivitiesBySubject returns the audit trail for one entity, newest first.
	ListActivitiesBySubject(ctx context.Context, tenantID string, subjectType string, subjectID string, limit int) ([]domain.ActivityLog, error)
}
