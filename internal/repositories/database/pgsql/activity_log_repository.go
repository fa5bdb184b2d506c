package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/finledger/ledger-backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger-backend/internal/core/ports/repositories"
	"github.com/finledger/ledger-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxActivityLogRepository persists the audit trail.
type PgxActivityLogRepository struct {
	BaseRepository
}

// newPgxActivityLogRepository creates a new repository for audit entries.
func newPgxActivityLogRepository(pool *pgxpool.Pool) portsrepo.ActivityLogRepository {
	return &PgxActivityLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ActivityLogRepository = (*PgxActivityLogRepository)(nil)

// SaveActivity appends one audit entry.
func (r *PgxActivityLogRepository) SaveActivity(ctx context.Context, entry domain.ActivityLog) error {
	properties, err := json.Marshal(entry.Properties)
	if err != nil {
		return fmt.Errorf("failed to encode activity properties: %w", err)
	}

	query := `
		INSERT INTO activity_logs (log_id, tenant_id, description, subject_type, subject_id, causer_id, properties, category, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9);
	`
	_, err = r.Pool.Exec(ctx, query,
		entry.LogID,
		entry.TenantID,
		entry.Description,
		entry.SubjectType,
		entry.SubjectID,
		entry.CauserID,
		properties,
		entry.Category,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity log %s: %w", entry.LogID, err)
	}
	return nil
}

// ListActivitiesBySubject returns the audit trail for one entity, newest first.
func (r *PgxActivityLogRepository) ListActivitiesBySubject(ctx context.Context, tenantID string, subjectType string, subjectID string, limit int) ([]domain.ActivityLog, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT log_id, tenant_id, description, subject_type, subject_id, causer_id, properties, category, created_at
		FROM activity_logs
		WHERE tenant_id = $1 AND subject_type = $2 AND subject_id = $3
		ORDER BY created_at DESC
		LIMIT $4;
	`, tenantID, subjectType, subjectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.ActivityLog
	for rows.Next() {
		var m models.ActivityLog
		err := rows.Scan(
			&m.LogID,
			&m.TenantID,
			&m.Description,
			&m.SubjectType,
			&m.SubjectID,
			&m.CauserID,
			&m.Properties,
			&m.Category,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity log row: %w", err)
		}

		entry := domain.ActivityLog{
			LogID:       m.LogID,
			TenantID:    m.TenantID,
			Description: m.Description,
			SubjectType: m.SubjectType,
			SubjectID:   m.SubjectID,
			CreatedAt:   m.CreatedAt,
		}
		if m.CauserID.Valid {
			entry.CauserID = m.CauserID.String
		}
		if m.Category.Valid {
			entry.Category = m.Category.String
		}
		if len(m.Properties) > 0 {
			if err := json.Unmarshal(m.Properties, &entry.Properties); err != nil {
				return nil, fmt.Errorf("failed to decode activity properties: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity logs: %w", err)
	}
	return entries, nil
}
