package services

import (
	"context"
	"time"

	"github.com/finledger/ledger-backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledger-backend/internal/core/ports/services"
	"github.com/google/uuid"
)

// activityLogService persists audit entries through the activity log
// repository. It is the default implementation of the ActivityLogger sink;
// deployments embedding the ledger may substitute their own.
type activityLogService struct {
	repo portsrepo.ActivityLogRepository
}

// NewActivityLogService creates the default, database-backed audit sink.
func NewActivityLogService(repo portsrepo.ActivityLogRepository) portssvc.ActivityLogger {
	return &activityLogService{repo: repo}
}

var _ portssvc.ActivityLogger = (*activityLogService)(nil)

func (s *activityLogService) Log(ctx context.Context, tenantID string, description string, subject portssvc.EntityRef, causerID string, properties map[string]any, category string) error {
	entry := domain.ActivityLog{
		LogID:       uuid.NewString(),
		TenantID:    tenantID,
		Description: description,
		SubjectType: subject.Type,
		SubjectID:   subject.ID,
		CauserID:    causerID,
		Properties:  properties,
		Category:    category,
		CreatedAt:   time.Now().UTC(),
	}
	return s.repo.SaveActivity(ctx, entry)
}
