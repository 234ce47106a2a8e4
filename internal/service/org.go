package service

import (
	"context"
	"fmt"
	"strings"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type organizationService struct {
	atomic     repository.Atomic
	orgRepo    repository.OrganizationRepository
	memberRepo repository.MembershipRepository
	guard      AuthorizationGuard
	audit      AuditEmitter
	auditRepo  repository.AuditLogRepository
}

func NewOrganizationService(
	atomic repository.Atomic,
	orgRepo repository.OrganizationRepository,
	memberRepo repository.MembershipRepository,
	guard AuthorizationGuard,
	audit AuditEmitter,
	auditRepo repository.AuditLogRepository,
) OrganizationService {
	return &organizationService{
		atomic:     atomic,
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
		guard:      guard,
		audit:      audit,
		auditRepo:  auditRepo,
	}
}

// Create sets up a new organization with the creator as its OWNER. The org
// row and the owner membership are written in one transaction so an org can
// never exist without an owner.
func (s *organizationService) Create(ctx context.Context, actorID int32, slug, name, currencyCode, adminEmail string) (*domain.Organization, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" || name == "" {
		return nil, fmt.Errorf("slug and name are required: %w", domain.ErrValidation)
	}
	if err := validateCurrency(currencyCode); err != nil {
		return nil, err
	}

	org := &domain.Organization{
		Slug:         slug,
		Name:         name,
		CurrencyCode: strings.ToUpper(currencyCode),
		AdminEmail:   adminEmail,
	}
	err := s.atomic.WithinTx(ctx, func(r *repository.Registry) error {
		if err := r.Orgs.Create(ctx, org); err != nil {
			return err
		}
		return r.Memberships.Add(ctx, &domain.Membership{
			UserID: actorID,
			OrgID:  org.ID,
			Role:   domain.RoleOwner,
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		OrgID:       org.ID,
		ActorID:     actorID,
		Action:      domain.AuditActionCreate,
		EntityType:  domain.EntityOrganization,
		EntityID:    &org.ID,
		Description: fmt.Sprintf("organization %s created", org.Slug),
		After:       org,
	})
	return org, nil
}

func (s *organizationService) Get(ctx context.Context, actorID int32, slug string) (*domain.Organization, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, err
	}
	return s.orgRepo.GetByID(ctx, auth.OrgID)
}

// ChangeCurrency swaps the organization's display currency. Stored amounts
// are not converted; they are reinterpreted in the new currency.
func (s *organizationService) ChangeCurrency(ctx context.Context, actorID int32, slug, currencyCode string) (*domain.Organization, error) {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return nil, err
	}
	if err := validateCurrency(currencyCode); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.GetByID(ctx, auth.OrgID)
	if err != nil {
		return nil, err
	}
	before := *org
	org.CurrencyCode = strings.ToUpper(currencyCode)
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		OrgID:       org.ID,
		ActorID:     actorID,
		Action:      domain.AuditActionUpdate,
		EntityType:  domain.EntityOrganization,
		EntityID:    &org.ID,
		Description: fmt.Sprintf("currency changed %s to %s", before.CurrencyCode, org.CurrencyCode),
		Before:      before,
		After:       org,
	})
	return org, nil
}

func (s *organizationService) AddMember(ctx context.Context, actorID int32, slug string, userID int32, role domain.MembershipRole) error {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return err
	}
	switch role {
	case domain.RoleOwner, domain.RoleManager, domain.RoleOps, domain.RoleDirector:
	default:
		return fmt.Errorf("unknown role %q: %w", role, domain.ErrValidation)
	}

	m := &domain.Membership{UserID: userID, OrgID: auth.OrgID, Role: role}
	if err := s.memberRepo.Add(ctx, m); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		OrgID:       auth.OrgID,
		ActorID:     actorID,
		Action:      domain.AuditActionCreate,
		EntityType:  domain.EntityOrganization,
		Description: fmt.Sprintf("user %d added as %s", userID, role),
		After:       m,
	})
	return nil
}

// UpdateMemberRole changes an existing membership. Owners cannot change
// their own role, so an organization always keeps at least one owner.
func (s *organizationService) UpdateMemberRole(ctx context.Context, actorID int32, slug string, userID int32, role domain.MembershipRole) error {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return err
	}
	if userID == actorID {
		return fmt.Errorf("cannot change own role: %w", domain.ErrValidation)
	}
	switch role {
	case domain.RoleOwner, domain.RoleManager, domain.RoleOps, domain.RoleDirector:
	default:
		return fmt.Errorf("unknown role %q: %w", role, domain.ErrValidation)
	}

	existing, err := s.memberRepo.Get(ctx, userID, auth.OrgID)
	if err != nil {
		return err
	}
	if err := s.memberRepo.UpdateRole(ctx, userID, auth.OrgID, role); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		OrgID:       auth.OrgID,
		ActorID:     actorID,
		Action:      domain.AuditActionUpdate,
		EntityType:  domain.EntityOrganization,
		Description: fmt.Sprintf("user %d role %s to %s", userID, existing.Role, role),
		Before:      existing,
	})
	return nil
}

func (s *organizationService) RemoveMember(ctx context.Context, actorID int32, slug string, userID int32) error {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return err
	}
	if userID == actorID {
		return fmt.Errorf("cannot remove own membership: %w", domain.ErrValidation)
	}

	existing, err := s.memberRepo.Get(ctx, userID, auth.OrgID)
	if err != nil {
		return err
	}
	if err := s.memberRepo.Remove(ctx, userID, auth.OrgID); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		OrgID:       auth.OrgID,
		ActorID:     actorID,
		Action:      domain.AuditActionDelete,
		EntityType:  domain.EntityOrganization,
		Description: fmt.Sprintf("user %d removed", userID),
		Before:      existing,
	})
	return nil
}

func (s *organizationService) ListAuditLog(ctx context.Context, actorID int32, slug string, page, pageSize int32) ([]domain.AuditLog, int32, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.auditRepo.ListByOrg(ctx, auth.OrgID, page, pageSize)
}

func (s *organizationService) ListMembers(ctx context.Context, actorID int32, slug string) ([]domain.Membership, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, err
	}
	return s.memberRepo.ListByOrg(ctx, auth.OrgID)
}

func validateCurrency(code string) error {
	code = strings.ToUpper(code)
	if len(code) != 3 {
		return fmt.Errorf("currency code must be 3 letters: %w", domain.ErrValidation)
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("currency code must be 3 letters: %w", domain.ErrValidation)
		}
	}
	return nil
}
