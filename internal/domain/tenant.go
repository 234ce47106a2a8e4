package domain

import "time"

type Tenant struct {
	ID          int32     `json:"id"`
	OrgID       int32     `json:"org_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Notes       string    `json:"notes"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// Occupancy binds a tenant to a unit for a half-open date range.
// ActiveTo == nil means the lease is ongoing.
type Occupancy struct {
	ID         int32      `json:"id"`
	OrgID      int32      `json:"org_id"`
	TenantID   int32      `json:"tenant_id"`
	UnitID     int32      `json:"unit_id"`
	ActiveFrom time.Time  `json:"active_from"`
	ActiveTo   *time.Time `json:"active_to,omitempty"`
	CreatedOn  time.Time  `json:"created_on"`
	UpdatedOn  time.Time  `json:"updated_on"`
}

// Ended reports whether the occupancy has an end date falling before the
// given day.
func (o *Occupancy) Ended(day time.Time) bool {
	return o.ActiveTo != nil && day.After(*o.ActiveTo)
}
