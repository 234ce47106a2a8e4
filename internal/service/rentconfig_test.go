package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"renttrack-backend/internal/domain"
)

func TestRentConfigService_Create(t *testing.T) {
	ctx := context.Background()
	guard := memberGuard("acme", 7, 1, domain.RoleOps)

	valid := func() *domain.RentConfig {
		return &domain.RentConfig{
			OccupancyID: 20,
			Amount:      decimal.NewFromInt(1200),
			Cycle:       domain.CycleMonthly,
			DueDay:      31,
		}
	}

	t.Run("Valid", func(t *testing.T) {
		configRepo := new(MockRentConfigRepo)
		occRepo := new(MockOccupancyRepo)
		svc := NewRentConfigService(guard, configRepo, occRepo, &captureAudit{})

		occRepo.On("GetByID", ctx, int32(20)).Return(&domain.Occupancy{ID: 20, OrgID: 7}, nil)
		configRepo.On("Create", ctx, mock.MatchedBy(func(rc *domain.RentConfig) bool {
			return rc.OrgID == 7
		})).Return(nil).Once()

		err := svc.Create(ctx, 1, "acme", valid())
		assert.NoError(t, err)
		configRepo.AssertExpectations(t)
	})

	t.Run("Invalid", func(t *testing.T) {
		svc := NewRentConfigService(guard, new(MockRentConfigRepo), new(MockOccupancyRepo), &captureAudit{})

		rc := valid()
		rc.Amount = decimal.NewFromInt(-5)
		assert.ErrorIs(t, svc.Create(ctx, 1, "acme", rc), domain.ErrValidation)

		rc = valid()
		rc.Cycle = domain.BillingCycle("FORTNIGHTLY")
		assert.ErrorIs(t, svc.Create(ctx, 1, "acme", rc), domain.ErrValidation)

		rc = valid()
		rc.DueDay = 32
		assert.ErrorIs(t, svc.Create(ctx, 1, "acme", rc), domain.ErrValidation)

		rc = valid()
		rc.DueDay = 0
		assert.ErrorIs(t, svc.Create(ctx, 1, "acme", rc), domain.ErrValidation)
	})
}

func TestRentConfigService_Update(t *testing.T) {
	ctx := context.Background()
	guard := memberGuard("acme", 7, 1, domain.RoleManager)
	configRepo := new(MockRentConfigRepo)
	svc := NewRentConfigService(guard, configRepo, new(MockOccupancyRepo), &captureAudit{})

	configRepo.On("GetByID", ctx, int32(10)).Return(&domain.RentConfig{
		ID: 10, OrgID: 7, OccupancyID: 20,
		Amount: decimal.NewFromInt(1200), Cycle: domain.CycleMonthly, DueDay: 1,
	}, nil)
	// A caller-supplied occupancy id must not move the schedule.
	configRepo.On("Update", ctx, mock.MatchedBy(func(rc *domain.RentConfig) bool {
		return rc.OccupancyID == 20
	})).Return(nil).Once()

	err := svc.Update(ctx, 1, "acme", &domain.RentConfig{
		ID: 10, OccupancyID: 999,
		Amount: decimal.NewFromInt(1500), Cycle: domain.CycleMonthly, DueDay: 5,
	})
	assert.NoError(t, err)
	configRepo.AssertExpectations(t)
}
