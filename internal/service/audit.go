package service

import (
	"context"
	"encoding/json"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/logger"
	"renttrack-backend/internal/repository"
)

type auditEmitter struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditEmitter(auditRepo repository.AuditLogRepository) AuditEmitter {
	return &auditEmitter{auditRepo: auditRepo}
}

// Record writes one audit row, best effort. Persistence failures are logged
// and swallowed; no retry, no queue. Callers invoke it after their primary
// write has committed.
func (e *auditEmitter) Record(ctx context.Context, entry AuditEntry) {
	row := &domain.AuditLog{
		OrgID:       entry.OrgID,
		ActorID:     entry.ActorID,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Description: entry.Description,
		Before:      marshalSnapshot(entry.Before),
		After:       marshalSnapshot(entry.After),
	}
	if err := e.auditRepo.Create(ctx, row); err != nil {
		logger.Error("audit write failed",
			"org_id", entry.OrgID,
			"actor_id", entry.ActorID,
			"action", entry.Action,
			"entity_type", entry.EntityType,
			"error", err)
	}
}

func marshalSnapshot(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("audit snapshot marshal failed", "error", err)
		return ""
	}
	return string(data)
}
