package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

func monthlyConfig(orgID int32, dueDay int32) *domain.RentConfig {
	return &domain.RentConfig{
		ID:          10,
		OrgID:       orgID,
		OccupancyID: 20,
		Amount:      decimal.NewFromInt(1200),
		Cycle:       domain.CycleMonthly,
		DueDay:      dueDay,
	}
}

func TestRentPeriodService_GenerateNext(t *testing.T) {
	ctx := context.Background()
	guard := memberGuard("acme", 7, 1, domain.RoleManager)

	t.Run("FirstMonthlyPeriod", func(t *testing.T) {
		configRepo := new(MockRentConfigRepo)
		occRepo := new(MockOccupancyRepo)
		periodRepo := new(MockRentPeriodRepo)
		audit := &captureAudit{}
		svc := NewRentPeriodService(guard, &fakeAtomic{}, configRepo, occRepo, periodRepo, audit, fixedClock{date(2024, 1, 10)})

		configRepo.On("GetByID", ctx, int32(10)).Return(monthlyConfig(7, 31), nil)
		occRepo.On("GetByID", ctx, int32(20)).Return(&domain.Occupancy{ID: 20, OrgID: 7, ActiveFrom: date(2024, 1, 15)}, nil)
		periodRepo.On("GetLatestByConfig", ctx, int32(10)).Return(nil, nil)
		periodRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.RentPeriod) bool {
			return p.PeriodStart.Equal(date(2024, 1, 15)) &&
				p.PeriodEnd.Equal(date(2024, 1, 31)) &&
				p.DueDate.Equal(date(2024, 1, 31)) &&
				p.Status == domain.PeriodStatusDue &&
				p.DaysOverdue == 0
		})).Return(nil).Once()

		period, err := svc.GenerateNext(ctx, 1, "acme", 10)
		assert.NoError(t, err)
		assert.Equal(t, domain.PeriodStatusDue, period.Status)
		assert.Len(t, audit.entries, 1)
		assert.Equal(t, domain.EntityRentPeriod, audit.entries[0].EntityType)
		periodRepo.AssertExpectations(t)
	})

	t.Run("SecondPeriodLeapFebruaryClampsDueDay", func(t *testing.T) {
		configRepo := new(MockRentConfigRepo)
		occRepo := new(MockOccupancyRepo)
		periodRepo := new(MockRentPeriodRepo)
		svc := NewRentPeriodService(guard, &fakeAtomic{}, configRepo, occRepo, periodRepo, &captureAudit{}, fixedClock{date(2024, 2, 1)})

		configRepo.On("GetByID", ctx, int32(10)).Return(monthlyConfig(7, 31), nil)
		occRepo.On("GetByID", ctx, int32(20)).Return(&domain.Occupancy{ID: 20, OrgID: 7, ActiveFrom: date(2024, 1, 15)}, nil)
		periodRepo.On("GetLatestByConfig", ctx, int32(10)).Return(&domain.RentPeriod{
			ID: 100, RentConfigID: 10, PeriodStart: date(2024, 1, 15), PeriodEnd: date(2024, 1, 31),
		}, nil)
		periodRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.RentPeriod) bool {
			return p.PeriodStart.Equal(date(2024, 2, 1)) &&
				p.PeriodEnd.Equal(date(2024, 2, 29)) &&
				p.DueDate.Equal(date(2024, 2, 29))
		})).Return(nil).Once()

		_, err := svc.GenerateNext(ctx, 1, "acme", 10)
		assert.NoError(t, err)
		periodRepo.AssertExpectations(t)
	})

	t.Run("WeeklySpansSevenDays", func(t *testing.T) {
		configRepo := new(MockRentConfigRepo)
		occRepo := new(MockOccupancyRepo)
		periodRepo := new(MockRentPeriodRepo)
		svc := NewRentPeriodService(guard, &fakeAtomic{}, configRepo, occRepo, periodRepo, &captureAudit{}, fixedClock{date(2024, 3, 1)})

		cfg := monthlyConfig(7, 5)
		cfg.Cycle = domain.CycleWeekly
		configRepo.On("GetByID", ctx, int32(10)).Return(cfg, nil)
		occRepo.On("GetByID", ctx, int32(20)).Return(&domain.Occupancy{ID: 20, OrgID: 7, ActiveFrom: date(2024, 3, 4)}, nil)
		periodRepo.On("GetLatestByConfig", ctx, int32(10)).Return(nil, nil)
		periodRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.RentPeriod) bool {
			return p.PeriodStart.Equal(date(2024, 3, 4)) && p.PeriodEnd.Equal(date(2024, 3, 10))
		})).Return(nil).Once()

		_, err := svc.GenerateNext(ctx, 1, "acme", 10)
		assert.NoError(t, err)
		periodRepo.AssertExpectations(t)
	})

	t.Run("QuarterlyAndYearlyEndOnMonthBoundaries", func(t *testing.T) {
		for _, tc := range []struct {
			cycle domain.BillingCycle
			end   time.Time
		}{
			{domain.CycleQuarterly, date(2024, 4, 30)},
			{domain.CycleYearly, date(2025, 1, 31)},
		} {
			configRepo := new(MockRentConfigRepo)
			occRepo := new(MockOccupancyRepo)
			periodRepo := new(MockRentPeriodRepo)
			svc := NewRentPeriodService(guard, &fakeAtomic{}, configRepo, occRepo, periodRepo, &captureAudit{}, fixedClock{date(2024, 1, 1)})

			cfg := monthlyConfig(7, 1)
			cfg.Cycle = tc.cycle
			configRepo.On("GetByID", ctx, int32(10)).Return(cfg, nil)
			occRepo.On("GetByID", ctx, int32(20)).Return(&domain.Occupancy{ID: 20, OrgID: 7, ActiveFrom: date(2024, 1, 15)}, nil)
			periodRepo.On("GetLatestByConfig", ctx, int32(10)).Return(nil, nil)
			periodRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.RentPeriod) bool {
				return p.PeriodEnd.Equal(tc.end)
			})).Return(nil).Once()

			_, err := svc.GenerateNext(ctx, 1, "acme", 10)
			assert.NoError(t, err, string(tc.cycle))
			periodRepo.AssertExpectations(t)
		}
	})

	t.Run("EndClampedToOccupancyEnd", func(t *testing.T) {
		configRepo := new(MockRentConfigRepo)
		occRepo := new(MockOccupancyRepo)
		periodRepo := new(MockRentPeriodRepo)
		svc := NewRentPeriodService(guard, &fakeAtomic{}, configRepo, occRepo, periodRepo, &captureAudit{}, fixedClock{date(2024, 1, 1)})

		activeTo := date(2024, 1, 20)
		configRepo.On("GetByID", ctx, int32(10)).Return(monthlyConfig(7, 1), nil)
		occRepo.On("GetByID", ctx, int32(20)).Return(&domain.Occupancy{
			ID: 20, OrgID: 7, ActiveFrom: date(2024, 1, 15), ActiveTo: &activeTo,
		}, nil)
		periodRepo.On("GetLatestByConfig", ctx, int32(10)).Return(nil, nil)
		periodRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.RentPeriod) bool {
			return p.PeriodEnd.Equal(activeTo)
		})).Return(nil).Once()

		_, err := svc.GenerateNext(ctx, 1, "acme", 10)
		assert.NoError(t, err)
		periodRepo.AssertExpectations(t)
	})

	t.Run("OccupancyEnded", func(t *testing.T) {
		configRepo := new(MockRentConfigRepo)
		occRepo := new(MockOccupancyRepo)
		periodRepo := new(MockRentPeriodRepo)
		svc := NewRentPeriodService(guard, &fakeAtomic{}, configRepo, occRepo, periodRepo, &captureAudit{}, fixedClock{date(2024, 3, 1)})

		activeTo := date(2024, 1, 31)
		configRepo.On("GetByID", ctx, int32(10)).Return(monthlyConfig(7, 1), nil)
		occRepo.On("GetByID", ctx, int32(20)).Return(&domain.Occupancy{
			ID: 20, OrgID: 7, ActiveFrom: date(2024, 1, 1), ActiveTo: &activeTo,
		}, nil)
		periodRepo.On("GetLatestByConfig", ctx, int32(10)).Return(&domain.RentPeriod{
			ID: 100, RentConfigID: 10, PeriodStart: date(2024, 1, 1), PeriodEnd: date(2024, 1, 31),
		}, nil)

		_, err := svc.GenerateNext(ctx, 1, "acme", 10)
		assert.ErrorIs(t, err, ErrOccupancyEnded)
		periodRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DueDayAlreadyPassedRollsForward", func(t *testing.T) {
		configRepo := new(MockRentConfigRepo)
		occRepo := new(MockOccupancyRepo)
		periodRepo := new(MockRentPeriodRepo)
		svc := NewRentPeriodService(guard, &fakeAtomic{}, configRepo, occRepo, periodRepo, &captureAudit{}, fixedClock{date(2024, 1, 1)})

		configRepo.On("GetByID", ctx, int32(10)).Return(monthlyConfig(7, 5), nil)
		occRepo.On("GetByID", ctx, int32(20)).Return(&domain.Occupancy{ID: 20, OrgID: 7, ActiveFrom: date(2024, 1, 20)}, nil)
		periodRepo.On("GetLatestByConfig", ctx, int32(10)).Return(nil, nil)
		periodRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.RentPeriod) bool {
			return p.DueDate.Equal(date(2024, 2, 5))
		})).Return(nil).Once()

		_, err := svc.GenerateNext(ctx, 1, "acme", 10)
		assert.NoError(t, err)
		periodRepo.AssertExpectations(t)
	})

	t.Run("GeneratedPastDueStartsOverdue", func(t *testing.T) {
		configRepo := new(MockRentConfigRepo)
		occRepo := new(MockOccupancyRepo)
		periodRepo := new(MockRentPeriodRepo)
		svc := NewRentPeriodService(guard, &fakeAtomic{}, configRepo, occRepo, periodRepo, &captureAudit{}, fixedClock{date(2024, 2, 10)})

		configRepo.On("GetByID", ctx, int32(10)).Return(monthlyConfig(7, 20), nil)
		occRepo.On("GetByID", ctx, int32(20)).Return(&domain.Occupancy{ID: 20, OrgID: 7, ActiveFrom: date(2024, 1, 1)}, nil)
		periodRepo.On("GetLatestByConfig", ctx, int32(10)).Return(nil, nil)
		periodRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.RentPeriod) bool {
			return p.Status == domain.PeriodStatusOverdue && p.DaysOverdue == 21
		})).Return(nil).Once()

		_, err := svc.GenerateNext(ctx, 1, "acme", 10)
		assert.NoError(t, err)
		periodRepo.AssertExpectations(t)
	})

	t.Run("CrossOrgConfigHiddenAsNotFound", func(t *testing.T) {
		configRepo := new(MockRentConfigRepo)
		occRepo := new(MockOccupancyRepo)
		periodRepo := new(MockRentPeriodRepo)
		svc := NewRentPeriodService(guard, &fakeAtomic{}, configRepo, occRepo, periodRepo, &captureAudit{}, fixedClock{date(2024, 1, 1)})

		configRepo.On("GetByID", ctx, int32(10)).Return(monthlyConfig(99, 31), nil)

		_, err := svc.GenerateNext(ctx, 1, "acme", 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DirectorDenied", func(t *testing.T) {
		readonly := memberGuard("acme", 7, 2, domain.RoleDirector)
		svc := NewRentPeriodService(readonly, &fakeAtomic{}, new(MockRentConfigRepo), new(MockOccupancyRepo), new(MockRentPeriodRepo), &captureAudit{}, fixedClock{date(2024, 1, 1)})

		_, err := svc.GenerateNext(ctx, 2, "acme", 10)
		assert.ErrorIs(t, err, domain.ErrDenied)
	})
}

func TestRentPeriodService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	guard := memberGuard("acme", 7, 1, domain.RoleOwner)

	t.Run("RequestedDueRecomputesToOverdue", func(t *testing.T) {
		periodRepo := new(MockRentPeriodRepo)
		audit := &captureAudit{}
		svc := NewRentPeriodService(guard, &fakeAtomic{}, new(MockRentConfigRepo), new(MockOccupancyRepo), periodRepo, audit, fixedClock{date(2024, 3, 10)})

		periodRepo.On("GetByID", ctx, int32(55)).Return(&domain.RentPeriod{
			ID: 55, OrgID: 7, DueDate: date(2024, 3, 1), Status: domain.PeriodStatusPaid,
		}, nil)
		periodRepo.On("UpdateStatus", ctx, int32(55), domain.PeriodStatusOverdue, int32(9)).Return(nil).Once()

		period, err := svc.ChangeStatus(ctx, 1, "acme", 55, domain.PeriodStatusDue)
		assert.NoError(t, err)
		assert.Equal(t, domain.PeriodStatusOverdue, period.Status)
		assert.Equal(t, int32(9), period.DaysOverdue)
		assert.Len(t, audit.entries, 1)
		assert.Equal(t, domain.AuditActionStatusChange, audit.entries[0].Action)
		periodRepo.AssertExpectations(t)
	})

	t.Run("RequestedPaidZeroesDaysOverdue", func(t *testing.T) {
		periodRepo := new(MockRentPeriodRepo)
		svc := NewRentPeriodService(guard, &fakeAtomic{}, new(MockRentConfigRepo), new(MockOccupancyRepo), periodRepo, &captureAudit{}, fixedClock{date(2024, 3, 10)})

		periodRepo.On("GetByID", ctx, int32(55)).Return(&domain.RentPeriod{
			ID: 55, OrgID: 7, DueDate: date(2024, 3, 1), Status: domain.PeriodStatusOverdue, DaysOverdue: 9,
		}, nil)
		periodRepo.On("UpdateStatus", ctx, int32(55), domain.PeriodStatusPaid, int32(0)).Return(nil).Once()

		period, err := svc.ChangeStatus(ctx, 1, "acme", 55, domain.PeriodStatusPaid)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), period.DaysOverdue)
		periodRepo.AssertExpectations(t)
	})

	t.Run("UnknownStatusRejected", func(t *testing.T) {
		svc := NewRentPeriodService(guard, &fakeAtomic{}, new(MockRentConfigRepo), new(MockOccupancyRepo), new(MockRentPeriodRepo), &captureAudit{}, fixedClock{date(2024, 3, 10)})

		_, err := svc.ChangeStatus(ctx, 1, "acme", 55, domain.PeriodStatus("SETTLED"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRentPeriodService_RefreshStatuses(t *testing.T) {
	ctx := context.Background()
	guard := memberGuard("acme", 7, 1, domain.RoleOwner)
	periodRepo := new(MockRentPeriodRepo)
	svc := NewRentPeriodService(guard, &fakeAtomic{}, new(MockRentConfigRepo), new(MockOccupancyRepo), periodRepo, &captureAudit{}, fixedClock{date(2024, 3, 10)})

	periodRepo.On("ListUnpaidByOrg", ctx, int32(7)).Return([]domain.RentPeriod{
		{ID: 1, OrgID: 7, DueDate: date(2024, 3, 1), Status: domain.PeriodStatusDue},                    // promotes
		{ID: 2, OrgID: 7, DueDate: date(2024, 3, 5), Status: domain.PeriodStatusOverdue, DaysOverdue: 4}, // 5 days now
		{ID: 3, OrgID: 7, DueDate: date(2024, 3, 20), Status: domain.PeriodStatusDue},                   // untouched
	}, nil)
	periodRepo.On("UpdateStatus", ctx, int32(1), domain.PeriodStatusOverdue, int32(9)).Return(nil).Once()
	periodRepo.On("UpdateStatus", ctx, int32(2), domain.PeriodStatusOverdue, int32(5)).Return(nil).Once()

	changed, err := svc.RefreshStatuses(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), changed)
	periodRepo.AssertExpectations(t)
	periodRepo.AssertNotCalled(t, "UpdateStatus", ctx, int32(3), mock.Anything, mock.Anything)
}

func TestRentPeriodService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyPeriodDeleted", func(t *testing.T) {
		guard := memberGuard("acme", 7, 1, domain.RoleOwner)
		periodRepo := new(MockRentPeriodRepo)
		paymentRepo := new(MockPaymentRepo)
		audit := &captureAudit{}
		atomic := &fakeAtomic{reg: &repository.Registry{RentPeriods: periodRepo, Payments: paymentRepo}}
		svc := NewRentPeriodService(guard, atomic, new(MockRentConfigRepo), new(MockOccupancyRepo), periodRepo, audit, fixedClock{date(2024, 3, 10)})

		periodRepo.On("GetByIDForUpdate", ctx, int32(55)).Return(&domain.RentPeriod{
			ID: 55, OrgID: 7, PeriodStart: date(2024, 3, 1), PeriodEnd: date(2024, 3, 31), DueDate: date(2024, 3, 1),
		}, nil)
		paymentRepo.On("CountByPeriodExcluding", ctx, int32(55), int32(0)).Return(int32(0), nil)
		periodRepo.On("Delete", ctx, int32(55)).Return(nil).Once()

		err := svc.Delete(ctx, 1, "acme", 55)
		assert.NoError(t, err)
		assert.Len(t, audit.entries, 1)
		periodRepo.AssertExpectations(t)
	})

	t.Run("PeriodWithPaymentsRefused", func(t *testing.T) {
		guard := memberGuard("acme", 7, 1, domain.RoleOwner)
		periodRepo := new(MockRentPeriodRepo)
		paymentRepo := new(MockPaymentRepo)
		atomic := &fakeAtomic{reg: &repository.Registry{RentPeriods: periodRepo, Payments: paymentRepo}}
		svc := NewRentPeriodService(guard, atomic, new(MockRentConfigRepo), new(MockOccupancyRepo), periodRepo, &captureAudit{}, fixedClock{date(2024, 3, 10)})

		periodRepo.On("GetByIDForUpdate", ctx, int32(55)).Return(&domain.RentPeriod{
			ID: 55, OrgID: 7, Status: domain.PeriodStatusPaid,
		}, nil)
		paymentRepo.On("CountByPeriodExcluding", ctx, int32(55), int32(0)).Return(int32(2), nil)

		err := svc.Delete(ctx, 1, "acme", 55)
		assert.ErrorIs(t, err, domain.ErrConflict)
		periodRepo.AssertNotCalled(t, "Delete", ctx, int32(55))
	})

	t.Run("CrossOrgPeriodHiddenAsNotFound", func(t *testing.T) {
		guard := memberGuard("acme", 7, 1, domain.RoleOwner)
		periodRepo := new(MockRentPeriodRepo)
		atomic := &fakeAtomic{reg: &repository.Registry{RentPeriods: periodRepo, Payments: new(MockPaymentRepo)}}
		svc := NewRentPeriodService(guard, atomic, new(MockRentConfigRepo), new(MockOccupancyRepo), periodRepo, &captureAudit{}, fixedClock{date(2024, 3, 10)})

		periodRepo.On("GetByIDForUpdate", ctx, int32(55)).Return(&domain.RentPeriod{ID: 55, OrgID: 99}, nil)

		err := svc.Delete(ctx, 1, "acme", 55)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ManagerCannotDelete", func(t *testing.T) {
		guard := memberGuard("acme", 7, 1, domain.RoleManager)
		svc := NewRentPeriodService(guard, &fakeAtomic{}, new(MockRentConfigRepo), new(MockOccupancyRepo), new(MockRentPeriodRepo), &captureAudit{}, fixedClock{date(2024, 3, 10)})

		err := svc.Delete(ctx, 1, "acme", 55)
		assert.ErrorIs(t, err, domain.ErrDenied)
	})
}
