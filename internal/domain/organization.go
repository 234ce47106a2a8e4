package domain

import "time"

type Organization struct {
	ID           int32     `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currency_code"` // 3-letter ISO 4217
	AdminEmail   string    `json:"admin_email"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

type MembershipRole string

const (
	RoleOwner   MembershipRole = "OWNER"
	RoleManager MembershipRole = "MANAGER"
	RoleOps     MembershipRole = "OPS"
	// RoleDirector is read-only: it passes member checks but is excluded
	// from every mutating role set.
	RoleDirector MembershipRole = "DIRECTOR"
)

// Membership binds a user to an organization with a role. One row per
// (user, org) pair.
type Membership struct {
	UserID   int32          `json:"user_id"`
	OrgID    int32          `json:"org_id"`
	Role     MembershipRole `json:"role"`
	JoinedOn time.Time      `json:"joined_on"`
}

// Authorization is the guard's answer for an (actor, organization) pair.
type Authorization struct {
	OrgID int32
	Role  MembershipRole
}
