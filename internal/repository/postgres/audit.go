package postgres

import (
	"context"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type auditLogRepository struct {
	db DBTX
}

func NewAuditLogRepository(db DBTX) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, e *domain.AuditLog) error {
	query := `INSERT INTO audit_logs (org_id, actor_id, action, entity_type, entity_id, description, before_state, after_state, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.OrgID, e.ActorID, e.Action, e.EntityType, e.EntityID, e.Description, e.Before, e.After, time.Now()).Scan(&e.ID)
}

func (r *auditLogRepository) ListByOrg(ctx context.Context, orgID int32, page, pageSize int32) ([]domain.AuditLog, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM audit_logs WHERE org_id = $1`, orgID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, org_id, actor_id, action, entity_type, entity_id, COALESCE(description, ''), COALESCE(before_state, ''), COALESCE(after_state, ''), created_on
	          FROM audit_logs WHERE org_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, orgID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditLog
	for rows.Next() {
		var e domain.AuditLog
		if err := rows.Scan(&e.ID, &e.OrgID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Description, &e.Before, &e.After, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
