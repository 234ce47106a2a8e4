package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"renttrack-backend/internal/domain"
)

// AuthorizationGuard resolves an actor's standing in an organization and
// gates every operation. Resolve answers "is this actor a member at all";
// Require additionally checks the role against an allowed set. Both return
// domain.ErrDenied without revealing whether the organization exists.
type AuthorizationGuard interface {
	Resolve(ctx context.Context, actorID int32, orgSlug string) (*domain.Authorization, error)
	Require(ctx context.Context, actorID int32, orgSlug string, roles ...domain.MembershipRole) (*domain.Authorization, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type OrganizationService interface {
	Create(ctx context.Context, actorID int32, slug, name, currencyCode, adminEmail string) (*domain.Organization, error)
	Get(ctx context.Context, actorID int32, slug string) (*domain.Organization, error)
	ChangeCurrency(ctx context.Context, actorID int32, slug, currencyCode string) (*domain.Organization, error)
	AddMember(ctx context.Context, actorID int32, slug string, userID int32, role domain.MembershipRole) error
	UpdateMemberRole(ctx context.Context, actorID int32, slug string, userID int32, role domain.MembershipRole) error
	RemoveMember(ctx context.Context, actorID int32, slug string, userID int32) error
	ListMembers(ctx context.Context, actorID int32, slug string) ([]domain.Membership, error)
	ListAuditLog(ctx context.Context, actorID int32, slug string, page, pageSize int32) ([]domain.AuditLog, int32, error)
}

type PropertyService interface {
	CreateBuilding(ctx context.Context, actorID int32, slug string, b *domain.Building) error
	UpdateBuilding(ctx context.Context, actorID int32, slug string, b *domain.Building) error
	DeleteBuilding(ctx context.Context, actorID int32, slug string, id int32) error
	ListBuildings(ctx context.Context, actorID int32, slug string) ([]domain.Building, error)

	CreateUnit(ctx context.Context, actorID int32, slug string, u *domain.Unit) error
	UpdateUnit(ctx context.Context, actorID int32, slug string, u *domain.Unit) error
	DeleteUnit(ctx context.Context, actorID int32, slug string, id int32) error
	ListUnits(ctx context.Context, actorID int32, slug string, buildingID int32) ([]domain.Unit, error)
}

type TenancyService interface {
	CreateTenant(ctx context.Context, actorID int32, slug string, t *domain.Tenant) error
	UpdateTenant(ctx context.Context, actorID int32, slug string, t *domain.Tenant) error
	DeleteTenant(ctx context.Context, actorID int32, slug string, id int32) error
	ListTenants(ctx context.Context, actorID int32, slug string) ([]domain.Tenant, error)

	CreateOccupancy(ctx context.Context, actorID int32, slug string, o *domain.Occupancy) error
	UpdateOccupancy(ctx context.Context, actorID int32, slug string, o *domain.Occupancy) error
	DeleteOccupancy(ctx context.Context, actorID int32, slug string, id int32) error
	ListOccupancies(ctx context.Context, actorID int32, slug string) ([]domain.Occupancy, error)
	// ListActiveOccupancies returns occupancies whose date range covers asOf.
	ListActiveOccupancies(ctx context.Context, actorID int32, slug string, asOf time.Time) ([]domain.Occupancy, error)
}

type RentConfigService interface {
	Create(ctx context.Context, actorID int32, slug string, rc *domain.RentConfig) error
	Update(ctx context.Context, actorID int32, slug string, rc *domain.RentConfig) error
	Delete(ctx context.Context, actorID int32, slug string, id int32) error
	ListByOccupancy(ctx context.Context, actorID int32, slug string, occupancyID int32) ([]domain.RentConfig, error)
}

type RentPeriodService interface {
	// GenerateNext materializes the next billing period for a schedule:
	// start follows the prior period (or the occupancy start), end and due
	// date follow the cycle. Fails with ErrOccupancyEnded once the occupancy
	// range is exhausted.
	GenerateNext(ctx context.Context, actorID int32, slug string, rentConfigID int32) (*domain.RentPeriod, error)
	// GenerateNextForConfig is the unguarded variant the background jobs use.
	GenerateNextForConfig(ctx context.Context, rentConfigID int32) (*domain.RentPeriod, error)
	List(ctx context.Context, actorID int32, slug string, status string, page, pageSize int32) ([]domain.RentPeriod, int32, error)
	ListByConfig(ctx context.Context, actorID int32, slug string, rentConfigID int32) ([]domain.RentPeriod, error)
	// ChangeStatus is the only way a PAID period goes back to DUE/OVERDUE.
	// The requested status is re-derived against the due date before it is
	// stored, so status and days_overdue never disagree.
	ChangeStatus(ctx context.Context, actorID int32, slug string, periodID int32, status domain.PeriodStatus) (*domain.RentPeriod, error)
	// RefreshStatuses recomputes every unpaid period of an organization
	// against the current day; the nightly job calls it per org.
	RefreshStatuses(ctx context.Context, orgID int32) (int32, error)
	// Delete removes a period that has no payments against it. Periods with
	// payments refuse deletion; the payments go first.
	Delete(ctx context.Context, actorID int32, slug string, periodID int32) error
}

type CreatePaymentInput struct {
	ActorID      int32
	OrgSlug      string
	RentPeriodID int32
	Amount       decimal.Decimal
	PaidAt       time.Time
	Reference    string
}

// UpdatePaymentInput carries the editable payment fields; nil means "leave
// unchanged". The owning rent period cannot be moved.
type UpdatePaymentInput struct {
	ActorID   int32
	OrgSlug   string
	PaymentID int32
	Amount    *decimal.Decimal
	PaidAt    *time.Time
	Reference *string
}

// PaymentDeletion reports what happened to the owning period. RevertFailed
// flags the degraded-success case: the payment is gone but the period status
// could not be reverted and needs manual reconciliation.
type PaymentDeletion struct {
	Payment        domain.Payment
	PeriodStatus   domain.PeriodStatus
	StatusReverted bool
	RevertFailed   bool
}

type PaymentService interface {
	Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error)
	Update(ctx context.Context, in UpdatePaymentInput) (*domain.Payment, error)
	Delete(ctx context.Context, actorID int32, slug string, paymentID int32) (*PaymentDeletion, error)
	ListByPeriod(ctx context.Context, actorID int32, slug string, periodID int32) ([]domain.Payment, error)
}

// AuditEntry is what callers hand the emitter; Before/After are marshaled to
// JSON snapshots on write.
type AuditEntry struct {
	OrgID       int32
	ActorID     int32
	Action      domain.AuditAction
	EntityType  string
	EntityID    *int32
	Description string
	Before      any
	After       any
}

// AuditEmitter records who changed what. Fire-and-forget: it never returns an
// error and never blocks or rolls back the operation it describes.
type AuditEmitter interface {
	Record(ctx context.Context, e AuditEntry)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, toEmail, orgName string, lines []string) error
	SendPaymentReceipt(ctx context.Context, toEmail, orgName, amount, periodLabel string) error
}
