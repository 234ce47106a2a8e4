package service

import (
	"context"
	"fmt"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type tenancyService struct {
	guard      AuthorizationGuard
	tenantRepo repository.TenantRepository
	occRepo    repository.OccupancyRepository
	unitRepo   repository.UnitRepository
	audit      AuditEmitter
}

func NewTenancyService(
	guard AuthorizationGuard,
	tenantRepo repository.TenantRepository,
	occRepo repository.OccupancyRepository,
	unitRepo repository.UnitRepository,
	audit AuditEmitter,
) TenancyService {
	return &tenancyService{
		guard:      guard,
		tenantRepo: tenantRepo,
		occRepo:    occRepo,
		unitRepo:   unitRepo,
		audit:      audit,
	}
}

func (s *tenancyService) CreateTenant(ctx context.Context, actorID int32, slug string, t *domain.Tenant) error {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return err
	}
	if t.FullName == "" {
		return fmt.Errorf("tenant full name is required: %w", domain.ErrValidation)
	}
	t.OrgID = auth.OrgID
	if err := s.tenantRepo.Create(ctx, t); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionCreate, EntityType: domain.EntityTenant, EntityID: &t.ID,
		Description: fmt.Sprintf("tenant %q created", t.FullName),
		After:       t,
	})
	return nil
}

func (s *tenancyService) UpdateTenant(ctx context.Context, actorID int32, slug string, t *domain.Tenant) error {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return err
	}
	existing, err := s.tenantRepo.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if existing.OrgID != auth.OrgID {
		return fmt.Errorf("tenant %d: %w", t.ID, domain.ErrNotFound)
	}
	t.OrgID = auth.OrgID
	if err := s.tenantRepo.Update(ctx, t); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionUpdate, EntityType: domain.EntityTenant, EntityID: &t.ID,
		Description: fmt.Sprintf("tenant %q updated", t.FullName),
		Before:      existing, After: t,
	})
	return nil
}

func (s *tenancyService) DeleteTenant(ctx context.Context, actorID int32, slug string, id int32) error {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return err
	}
	existing, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OrgID != auth.OrgID {
		return fmt.Errorf("tenant %d: %w", id, domain.ErrNotFound)
	}
	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionDelete, EntityType: domain.EntityTenant, EntityID: &id,
		Description: fmt.Sprintf("tenant %q deleted", existing.FullName),
		Before:      existing,
	})
	return nil
}

func (s *tenancyService) ListTenants(ctx context.Context, actorID int32, slug string) ([]domain.Tenant, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, err
	}
	return s.tenantRepo.ListByOrg(ctx, auth.OrgID)
}

func (s *tenancyService) CreateOccupancy(ctx context.Context, actorID int32, slug string, o *domain.Occupancy) error {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return err
	}
	if err := s.validateOccupancy(ctx, auth.OrgID, o); err != nil {
		return err
	}
	o.OrgID = auth.OrgID
	if err := s.occRepo.Create(ctx, o); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionCreate, EntityType: domain.EntityOccupancy, EntityID: &o.ID,
		Description: fmt.Sprintf("occupancy created: tenant %d in unit %d", o.TenantID, o.UnitID),
		After:       o,
	})
	return nil
}

func (s *tenancyService) UpdateOccupancy(ctx context.Context, actorID int32, slug string, o *domain.Occupancy) error {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return err
	}
	existing, err := s.occRepo.GetByID(ctx, o.ID)
	if err != nil {
		return err
	}
	if existing.OrgID != auth.OrgID {
		return fmt.Errorf("occupancy %d: %w", o.ID, domain.ErrNotFound)
	}
	if err := s.validateOccupancy(ctx, auth.OrgID, o); err != nil {
		return err
	}
	o.OrgID = auth.OrgID
	if err := s.occRepo.Update(ctx, o); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionUpdate, EntityType: domain.EntityOccupancy, EntityID: &o.ID,
		Description: "occupancy updated",
		Before:      existing, After: o,
	})
	return nil
}

func (s *tenancyService) DeleteOccupancy(ctx context.Context, actorID int32, slug string, id int32) error {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return err
	}
	existing, err := s.occRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OrgID != auth.OrgID {
		return fmt.Errorf("occupancy %d: %w", id, domain.ErrNotFound)
	}
	if err := s.occRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		OrgID: auth.OrgID, ActorID: actorID,
		Action: domain.AuditActionDelete, EntityType: domain.EntityOccupancy, EntityID: &id,
		Description: "occupancy deleted",
		Before:      existing,
	})
	return nil
}

func (s *tenancyService) ListOccupancies(ctx context.Context, actorID int32, slug string) ([]domain.Occupancy, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, err
	}
	return s.occRepo.ListByOrg(ctx, auth.OrgID)
}

func (s *tenancyService) ListActiveOccupancies(ctx context.Context, actorID int32, slug string, asOf time.Time) ([]domain.Occupancy, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, err
	}
	return s.occRepo.ListActive(ctx, auth.OrgID, domain.CivilDate(asOf))
}

// validateOccupancy checks the date range and that tenant and unit belong to
// the same organization.
func (s *tenancyService) validateOccupancy(ctx context.Context, orgID int32, o *domain.Occupancy) error {
	if o.ActiveFrom.IsZero() {
		return fmt.Errorf("active_from is required: %w", domain.ErrValidation)
	}
	if o.ActiveTo != nil && o.ActiveTo.Before(o.ActiveFrom) {
		return fmt.Errorf("active_to precedes active_from: %w", domain.ErrValidation)
	}
	tenant, err := s.tenantRepo.GetByID(ctx, o.TenantID)
	if err != nil {
		return err
	}
	if tenant.OrgID != orgID {
		return fmt.Errorf("tenant %d: %w", o.TenantID, domain.ErrNotFound)
	}
	unit, err := s.unitRepo.GetByID(ctx, o.UnitID)
	if err != nil {
		return err
	}
	if unit.OrgID != orgID {
		return fmt.Errorf("unit %d: %w", o.UnitID, domain.ErrNotFound)
	}
	return nil
}
