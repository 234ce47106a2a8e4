package repository

import (
	"context"
	"time"

	"renttrack-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
	List(ctx context.Context) ([]domain.Organization, error)
}

type MembershipRepository interface {
	Add(ctx context.Context, m *domain.Membership) error
	Get(ctx context.Context, userID, orgID int32) (*domain.Membership, error)
	ListByOrg(ctx context.Context, orgID int32) ([]domain.Membership, error)
	UpdateRole(ctx context.Context, userID, orgID int32, role domain.MembershipRole) error
	Remove(ctx context.Context, userID, orgID int32) error
}

type BuildingRepository interface {
	Create(ctx context.Context, b *domain.Building) error
	GetByID(ctx context.Context, id int32) (*domain.Building, error)
	Update(ctx context.Context, b *domain.Building) error
	Delete(ctx context.Context, id int32) error
	ListByOrg(ctx context.Context, orgID int32) ([]domain.Building, error)
}

type UnitRepository interface {
	Create(ctx context.Context, u *domain.Unit) error
	GetByID(ctx context.Context, id int32) (*domain.Unit, error)
	Update(ctx context.Context, u *domain.Unit) error
	Delete(ctx context.Context, id int32) error
	ListByBuilding(ctx context.Context, buildingID int32) ([]domain.Unit, error)
}

type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) error
	GetByID(ctx context.Context, id int32) (*domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) error
	Delete(ctx context.Context, id int32) error
	ListByOrg(ctx context.Context, orgID int32) ([]domain.Tenant, error)
}

type OccupancyRepository interface {
	Create(ctx context.Context, o *domain.Occupancy) error
	GetByID(ctx context.Context, id int32) (*domain.Occupancy, error)
	Update(ctx context.Context, o *domain.Occupancy) error
	Delete(ctx context.Context, id int32) error
	ListByOrg(ctx context.Context, orgID int32) ([]domain.Occupancy, error)
	// ListActive returns occupancies whose range covers asOf.
	ListActive(ctx context.Context, orgID int32, asOf time.Time) ([]domain.Occupancy, error)
}

type RentConfigRepository interface {
	Create(ctx context.Context, rc *domain.RentConfig) error
	GetByID(ctx context.Context, id int32) (*domain.RentConfig, error)
	Update(ctx context.Context, rc *domain.RentConfig) error
	Delete(ctx context.Context, id int32) error
	ListByOrg(ctx context.Context, orgID int32) ([]domain.RentConfig, error)
	ListByOccupancy(ctx context.Context, occupancyID int32) ([]domain.RentConfig, error)
}

type RentPeriodRepository interface {
	// Create fails with domain.ErrConflict when a period for the same
	// (rent_config_id, period_start) already exists; that uniqueness is what
	// serializes concurrent generate-next calls.
	Create(ctx context.Context, p *domain.RentPeriod) error
	GetByID(ctx context.Context, id int32) (*domain.RentPeriod, error)
	// GetByIDForUpdate locks the period row for the rest of the enclosing
	// transaction. Payment mutations take this lock first so create/delete
	// races on one period serialize.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.RentPeriod, error)
	GetLatestByConfig(ctx context.Context, rentConfigID int32) (*domain.RentPeriod, error)
	UpdateStatus(ctx context.Context, id int32, status domain.PeriodStatus, daysOverdue int32) error
	ListByConfig(ctx context.Context, rentConfigID int32) ([]domain.RentPeriod, error)
	ListByOrg(ctx context.Context, orgID int32, status string, page, pageSize int32) ([]domain.RentPeriod, int32, error)
	ListUnpaidByOrg(ctx context.Context, orgID int32) ([]domain.RentPeriod, error)
	Delete(ctx context.Context, id int32) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	Delete(ctx context.Context, id int32) error
	ListByPeriod(ctx context.Context, rentPeriodID int32) ([]domain.Payment, error)
	// CountByPeriodExcluding counts payments on a period, leaving out one
	// payment id (the one about to be deleted). excludeID 0 excludes nothing.
	CountByPeriodExcluding(ctx context.Context, rentPeriodID, excludeID int32) (int32, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListByOrg(ctx context.Context, orgID int32, page, pageSize int32) ([]domain.AuditLog, int32, error)
}

// Registry bundles every repository over one database handle. The postgres
// package builds a Registry over either *sql.DB or *sql.Tx, so a service can
// run a multi-write sequence against the transactional variant.
type Registry struct {
	Users       UserRepository
	Orgs        OrganizationRepository
	Memberships MembershipRepository
	Buildings   BuildingRepository
	Units       UnitRepository
	Tenants     TenantRepository
	Occupancies OccupancyRepository
	RentConfigs RentConfigRepository
	RentPeriods RentPeriodRepository
	Payments    PaymentRepository
	AuditLogs   AuditLogRepository
}

// Atomic runs fn inside a single database transaction. The registry passed to
// fn sees uncommitted writes and holds any row locks taken until fn returns;
// a non-nil error rolls everything back.
type Atomic interface {
	WithinTx(ctx context.Context, fn func(r *Registry) error) error
}
