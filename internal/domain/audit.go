package domain

import "time"

type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionStatusChange AuditAction = "STATUS_CHANGE"
)

// AuditLog is an append-only record of who changed what. The engine only ever
// inserts these; nothing mutates or deletes them.
type AuditLog struct {
	ID          int64       `json:"id"`
	OrgID       int32       `json:"org_id"`
	ActorID     int32       `json:"actor_id"`
	Action      AuditAction `json:"action"`
	EntityType  string      `json:"entity_type"`
	EntityID    *int32      `json:"entity_id,omitempty"`
	Description string      `json:"description"`
	Before      string      `json:"before,omitempty"` // JSON snapshot, empty when n/a
	After       string      `json:"after,omitempty"`
	CreatedOn   time.Time   `json:"created_on"`
}

// Entity type labels used in audit rows.
const (
	EntityOrganization = "organization"
	EntityBuilding     = "building"
	EntityUnit         = "unit"
	EntityTenant       = "tenant"
	EntityOccupancy    = "occupancy"
	EntityRentConfig   = "rent_config"
	EntityRentPeriod   = "rent_period"
	EntityPayment      = "payment"
)
