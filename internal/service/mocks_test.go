package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organization), args.Error(1)
}

// MockMembershipRepo
type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) Add(ctx context.Context, mem *domain.Membership) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}
func (m *MockMembershipRepo) Get(ctx context.Context, userID, orgID int32) (*domain.Membership, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockMembershipRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.Membership, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Membership), args.Error(1)
}
func (m *MockMembershipRepo) UpdateRole(ctx context.Context, userID, orgID int32, role domain.MembershipRole) error {
	args := m.Called(ctx, userID, orgID, role)
	return args.Error(0)
}
func (m *MockMembershipRepo) Remove(ctx context.Context, userID, orgID int32) error {
	args := m.Called(ctx, userID, orgID)
	return args.Error(0)
}

// MockBuildingRepo
type MockBuildingRepo struct {
	mock.Mock
}

func (m *MockBuildingRepo) Create(ctx context.Context, b *domain.Building) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBuildingRepo) GetByID(ctx context.Context, id int32) (*domain.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}
func (m *MockBuildingRepo) Update(ctx context.Context, b *domain.Building) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBuildingRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBuildingRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.Building, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Building), args.Error(1)
}

// MockUnitRepo
type MockUnitRepo struct {
	mock.Mock
}

func (m *MockUnitRepo) Create(ctx context.Context, u *domain.Unit) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUnitRepo) GetByID(ctx context.Context, id int32) (*domain.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}
func (m *MockUnitRepo) Update(ctx context.Context, u *domain.Unit) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUnitRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUnitRepo) ListByBuilding(ctx context.Context, buildingID int32) ([]domain.Unit, error) {
	args := m.Called(ctx, buildingID)
	return args.Get(0).([]domain.Unit), args.Error(1)
}

// MockTenantRepo
type MockTenantRepo struct {
	mock.Mock
}

func (m *MockTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTenantRepo) GetByID(ctx context.Context, id int32) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
func (m *MockTenantRepo) Update(ctx context.Context, t *domain.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTenantRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockTenantRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.Tenant, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

// MockOccupancyRepo
type MockOccupancyRepo struct {
	mock.Mock
}

func (m *MockOccupancyRepo) Create(ctx context.Context, o *domain.Occupancy) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOccupancyRepo) GetByID(ctx context.Context, id int32) (*domain.Occupancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Occupancy), args.Error(1)
}
func (m *MockOccupancyRepo) Update(ctx context.Context, o *domain.Occupancy) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOccupancyRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOccupancyRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.Occupancy, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Occupancy), args.Error(1)
}
func (m *MockOccupancyRepo) ListActive(ctx context.Context, orgID int32, asOf time.Time) ([]domain.Occupancy, error) {
	args := m.Called(ctx, orgID, asOf)
	return args.Get(0).([]domain.Occupancy), args.Error(1)
}

// MockRentConfigRepo
type MockRentConfigRepo struct {
	mock.Mock
}

func (m *MockRentConfigRepo) Create(ctx context.Context, rc *domain.RentConfig) error {
	args := m.Called(ctx, rc)
	return args.Error(0)
}
func (m *MockRentConfigRepo) GetByID(ctx context.Context, id int32) (*domain.RentConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentConfig), args.Error(1)
}
func (m *MockRentConfigRepo) Update(ctx context.Context, rc *domain.RentConfig) error {
	args := m.Called(ctx, rc)
	return args.Error(0)
}
func (m *MockRentConfigRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentConfigRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.RentConfig, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.RentConfig), args.Error(1)
}
func (m *MockRentConfigRepo) ListByOccupancy(ctx context.Context, occupancyID int32) ([]domain.RentConfig, error) {
	args := m.Called(ctx, occupancyID)
	return args.Get(0).([]domain.RentConfig), args.Error(1)
}

// MockRentPeriodRepo
type MockRentPeriodRepo struct {
	mock.Mock
}

func (m *MockRentPeriodRepo) Create(ctx context.Context, p *domain.RentPeriod) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockRentPeriodRepo) GetByID(ctx context.Context, id int32) (*domain.RentPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentPeriod), args.Error(1)
}
func (m *MockRentPeriodRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.RentPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentPeriod), args.Error(1)
}
func (m *MockRentPeriodRepo) GetLatestByConfig(ctx context.Context, rentConfigID int32) (*domain.RentPeriod, error) {
	args := m.Called(ctx, rentConfigID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentPeriod), args.Error(1)
}
func (m *MockRentPeriodRepo) UpdateStatus(ctx context.Context, id int32, status domain.PeriodStatus, daysOverdue int32) error {
	args := m.Called(ctx, id, status, daysOverdue)
	return args.Error(0)
}
func (m *MockRentPeriodRepo) ListByConfig(ctx context.Context, rentConfigID int32) ([]domain.RentPeriod, error) {
	args := m.Called(ctx, rentConfigID)
	return args.Get(0).([]domain.RentPeriod), args.Error(1)
}
func (m *MockRentPeriodRepo) ListByOrg(ctx context.Context, orgID int32, status string, page, pageSize int32) ([]domain.RentPeriod, int32, error) {
	args := m.Called(ctx, orgID, status, page, pageSize)
	return args.Get(0).([]domain.RentPeriod), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentPeriodRepo) ListUnpaidByOrg(ctx context.Context, orgID int32) ([]domain.RentPeriod, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.RentPeriod), args.Error(1)
}
func (m *MockRentPeriodRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByPeriod(ctx context.Context, rentPeriodID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, rentPeriodID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) CountByPeriodExcluding(ctx context.Context, rentPeriodID, excludeID int32) (int32, error) {
	args := m.Called(ctx, rentPeriodID, excludeID)
	return args.Get(0).(int32), args.Error(1)
}

// MockAuditLogRepo
type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditLogRepo) ListByOrg(ctx context.Context, orgID int32, page, pageSize int32) ([]domain.AuditLog, int32, error) {
	args := m.Called(ctx, orgID, page, pageSize)
	return args.Get(0).([]domain.AuditLog), args.Get(1).(int32), args.Error(2)
}

// fakeAtomic satisfies repository.Atomic without a database: it hands the
// callback a registry of the given mocks. There is no rollback; tests that
// care about compensation assert the explicit inverse calls instead.
type fakeAtomic struct {
	reg *repository.Registry
}

func (f *fakeAtomic) WithinTx(ctx context.Context, fn func(r *repository.Registry) error) error {
	return fn(f.reg)
}

// captureAudit records entries so tests can assert what was emitted.
type captureAudit struct {
	entries []AuditEntry
}

func (c *captureAudit) Record(ctx context.Context, e AuditEntry) {
	c.entries = append(c.entries, e)
}

// fixedClock pins Today for deterministic status math.
type fixedClock struct {
	day time.Time
}

func (c fixedClock) Today() time.Time {
	return c.day
}

// memberGuard wires the real guard over mocked org and membership repos with
// one known membership.
func memberGuard(slug string, orgID, userID int32, role domain.MembershipRole) AuthorizationGuard {
	orgRepo := new(MockOrganizationRepo)
	memberRepo := new(MockMembershipRepo)
	orgRepo.On("GetBySlug", mock.Anything, slug).Return(&domain.Organization{ID: orgID, Slug: slug}, nil)
	memberRepo.On("Get", mock.Anything, userID, orgID).Return(&domain.Membership{UserID: userID, OrgID: orgID, Role: role}, nil)
	return NewAuthorizationGuard(orgRepo, memberRepo)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fakeMailer records receipt sends; reminders are not exercised through it.
type fakeMailer struct {
	receipts []string // recipient addresses
}

func (f *fakeMailer) SendOverdueReminder(ctx context.Context, toEmail, orgName string, lines []string) error {
	return nil
}

func (f *fakeMailer) SendPaymentReceipt(ctx context.Context, toEmail, orgName, amount, periodLabel string) error {
	f.receipts = append(f.receipts, toEmail)
	return nil
}
