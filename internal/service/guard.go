package service

import (
	"context"
	"fmt"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

// Role sets for the mutating operations. Reads only need an existing
// membership, DIRECTOR included.
var (
	writeRoles = []domain.MembershipRole{domain.RoleOwner, domain.RoleManager, domain.RoleOps}
	ownerOnly  = []domain.MembershipRole{domain.RoleOwner}
)

type authorizationGuard struct {
	orgRepo    repository.OrganizationRepository
	memberRepo repository.MembershipRepository
}

func NewAuthorizationGuard(orgRepo repository.OrganizationRepository, memberRepo repository.MembershipRepository) AuthorizationGuard {
	return &authorizationGuard{orgRepo: orgRepo, memberRepo: memberRepo}
}

func (g *authorizationGuard) Resolve(ctx context.Context, actorID int32, orgSlug string) (*domain.Authorization, error) {
	org, err := g.orgRepo.GetBySlug(ctx, orgSlug)
	if err != nil {
		// Deliberately identical to the missing-membership denial below so a
		// caller cannot tell an unknown org from one they don't belong to.
		return nil, domain.ErrDenied
	}
	member, err := g.memberRepo.Get(ctx, actorID, org.ID)
	if err != nil {
		return nil, domain.ErrDenied
	}
	return &domain.Authorization{OrgID: org.ID, Role: member.Role}, nil
}

func (g *authorizationGuard) Require(ctx context.Context, actorID int32, orgSlug string, roles ...domain.MembershipRole) (*domain.Authorization, error) {
	auth, err := g.Resolve(ctx, actorID, orgSlug)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return auth, nil
	}
	for _, role := range roles {
		if auth.Role == role {
			return auth, nil
		}
	}
	return nil, fmt.Errorf("role %s cannot perform this action: %w", auth.Role, domain.ErrDenied)
}
