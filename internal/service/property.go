package service

import (
	"context"
	"fmt"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type propertyService struct {
	guard        AuthorizationGuard
	buildingRepo repository.BuildingRepository
	unitRepo     repository.UnitRepository
	audit        AuditEmitter
}

func NewPropertyService(
	guard AuthorizationGuard,
	buildingRepo repository.BuildingRepository,
	unitRepo repository.UnitRepository,
	audit AuditEmitter,
) PropertyService {
	return &propertyService{
		guard:        guard,
		buildingRepo: buildingRepo,
		unitRepo:     unitRepo,
		audit:        audit,
	}
}

func (s *propertyService) CreateBuilding(ctx context.Context, actorID int32, slug string, b *domain.Building) error {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return err
	}
	if b.Name == "" {
		return fmt.Errorf("building name is required: %w", domain.ErrValidation)
	}
	b.OrgID = auth.OrgID
	if err := s.buildingRepo.Create(ctx, b); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionCreate, EntityType: domain.EntityBuilding, EntityID: &b.ID,
		Description: fmt.Sprintf("building %q created", b.Name),
		After:       b,
	})
	return nil
}

func (s *propertyService) UpdateBuilding(ctx context.Context, actorID int32, slug string, b *domain.Building) error {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return err
	}
	existing, err := s.buildingRepo.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	if existing.OrgID != auth.OrgID {
		return fmt.Errorf("building %d: %w", b.ID, domain.ErrNotFound)
	}
	b.OrgID = auth.OrgID
	if err := s.buildingRepo.Update(ctx, b); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionUpdate, EntityType: domain.EntityBuilding, EntityID: &b.ID,
		Description: fmt.Sprintf("building %q updated", b.Name),
		Before:      existing, After: b,
	})
	return nil
}

func (s *propertyService) DeleteBuilding(ctx context.Context, actorID int32, slug string, id int32) error {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return err
	}
	existing, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OrgID != auth.OrgID {
		return fmt.Errorf("building %d: %w", id, domain.ErrNotFound)
	}
	if err := s.buildingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionDelete, EntityType: domain.EntityBuilding, EntityID: &id,
		Description: fmt.Sprintf("building %q deleted", existing.Name),
		Before:      existing,
	})
	return nil
}

func (s *propertyService) ListBuildings(ctx context.Context, actorID int32, slug string) ([]domain.Building, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, err
	}
	return s.buildingRepo.ListByOrg(ctx, auth.OrgID)
}

func (s *propertyService) CreateUnit(ctx context.Context, actorID int32, slug string, u *domain.Unit) error {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return err
	}
	if u.Label == "" {
		return fmt.Errorf("unit label is required: %w", domain.ErrValidation)
	}
	building, err := s.buildingRepo.GetByID(ctx, u.BuildingID)
	if err != nil {
		return err
	}
	if building.OrgID != auth.OrgID {
		return fmt.Errorf("building %d: %w", u.BuildingID, domain.ErrNotFound)
	}
	u.OrgID = auth.OrgID
	if err := s.unitRepo.Create(ctx, u); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionCreate, EntityType: domain.EntityUnit, EntityID: &u.ID,
		Description: fmt.Sprintf("unit %q created in building %d", u.Label, u.BuildingID),
		After:       u,
	})
	return nil
}

func (s *propertyService) UpdateUnit(ctx context.Context, actorID int32, slug string, u *domain.Unit) error {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return err
	}
	existing, err := s.unitRepo.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if existing.OrgID != auth.OrgID {
		return fmt.Errorf("unit %d: %w", u.ID, domain.ErrNotFound)
	}
	u.OrgID = auth.OrgID
	u.BuildingID = existing.BuildingID // units do not move between buildings
	if err := s.unitRepo.Update(ctx, u); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionUpdate, EntityType: domain.EntityUnit, EntityID: &u.ID,
		Description: fmt.Sprintf("unit %q updated", u.Label),
		Before:      existing, After: u,
	})
	return nil
}

func (s *propertyService) DeleteUnit(ctx context.Context, actorID int32, slug string, id int32) error {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return err
	}
	existing, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OrgID != auth.OrgID {
		return fmt.Errorf("unit %d: %w", id, domain.ErrNotFound)
	}
	if err := s.unitRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionDelete, EntityType: domain.EntityUnit, EntityID: &id,
		Description: fmt.Sprintf("unit %q deleted", existing.Label),
		Before:      existing,
	})
	return nil
}

func (s *propertyService) ListUnits(ctx context.Context, actorID int32, slug string, buildingID int32) ([]domain.Unit, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, err
	}
	building, err := s.buildingRepo.GetByID(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	if building.OrgID != auth.OrgID {
		return nil, fmt.Errorf("building %d: %w", buildingID, domain.ErrNotFound)
	}
	return s.unitRepo.ListByBuilding(ctx, buildingID)
}
