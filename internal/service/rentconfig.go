package service

import (
	"context"
	"fmt"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type rentConfigService struct {
	guard      AuthorizationGuard
	configRepo repository.RentConfigRepository
	occRepo    repository.OccupancyRepository
	audit      AuditEmitter
}

func NewRentConfigService(
	guard AuthorizationGuard,
	configRepo repository.RentConfigRepository,
	occRepo repository.OccupancyRepository,
	audit AuditEmitter,
) RentConfigService {
	return &rentConfigService{
		guard:      guard,
		configRepo: configRepo,
		occRepo:    occRepo,
		audit:      audit,
	}
}

func (s *rentConfigService) Create(ctx context.Context, actorID int32, slug string, rc *domain.RentConfig) error {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return err
	}
	if err := validateRentConfig(rc); err != nil {
		return err
	}
	occ, err := s.occRepo.GetByID(ctx, rc.OccupancyID)
	if err != nil {
		return err
	}
	if occ.OrgID != auth.OrgID {
		return fmt.Errorf("occupancy %d: %w", rc.OccupancyID, domain.ErrNotFound)
	}
	rc.OrgID = auth.OrgID
	if err := s.configRepo.Create(ctx, rc); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionCreate, EntityType: domain.EntityRentConfig, EntityID: &rc.ID,
		Description: fmt.Sprintf("rent schedule created: %s %s, due day %d", rc.Amount, rc.Cycle, rc.DueDay),
		After:       rc,
	})
	return nil
}

// Update changes the schedule going forward. Periods already generated keep
// the amount and dates they were materialized with.
func (s *rentConfigService) Update(ctx context.Context, actorID int32, slug string, rc *domain.RentConfig) error {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return err
	}
	if err := validateRentConfig(rc); err != nil {
		return err
	}
	existing, err := s.configRepo.GetByID(ctx, rc.ID)
	if err != nil {
		return err
	}
	if existing.OrgID != auth.OrgID {
		return fmt.Errorf("rent config %d: %w", rc.ID, domain.ErrNotFound)
	}
	rc.OrgID = auth.OrgID
	rc.OccupancyID = existing.OccupancyID // schedules stay on their occupancy
	if err := s.configRepo.Update(ctx, rc); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionUpdate, EntityType: domain.EntityRentConfig, EntityID: &rc.ID,
		Description: "rent schedule updated",
		Before:      existing, After: rc,
	})
	return nil
}

func (s *rentConfigService) Delete(ctx context.Context, actorID int32, slug string, id int32) error {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return err
	}
	existing, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OrgID != auth.OrgID {
		return fmt.Errorf("rent config %d: %w", id, domain.ErrNotFound)
	}
	if err := s.configRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionDelete, EntityType: domain.EntityRentConfig, EntityID: &id,
		Description: "rent schedule deleted",
		Before:      existing,
	})
	return nil
}

func (s *rentConfigService) ListByOccupancy(ctx context.Context, actorID int32, slug string, occupancyID int32) ([]domain.RentConfig, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, err
	}
	occ, err := s.occRepo.GetByID(ctx, occupancyID)
	if err != nil {
		return nil, err
	}
	if occ.OrgID != auth.OrgID {
		return nil, fmt.Errorf("occupancy %d: %w", occupancyID, domain.ErrNotFound)
	}
	return s.configRepo.ListByOccupancy(ctx, occupancyID)
}

func validateRentConfig(rc *domain.RentConfig) error {
	if !rc.Amount.IsPositive() {
		return fmt.Errorf("rent amount must be positive: %w", domain.ErrValidation)
	}
	if !domain.ValidCycle(rc.Cycle) {
		return fmt.Errorf("unknown billing cycle %q: %w", rc.Cycle, domain.ErrValidation)
	}
	if rc.DueDay < 1 || rc.DueDay > 31 {
		return fmt.Errorf("due day must be 1-31: %w", domain.ErrValidation)
	}
	return nil
}
