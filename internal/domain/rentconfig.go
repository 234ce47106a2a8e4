package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillingCycle string

const (
	CycleWeekly    BillingCycle = "WEEKLY"
	CycleMonthly   BillingCycle = "MONTHLY"
	CycleQuarterly BillingCycle = "QUARTERLY"
	CycleYearly    BillingCycle = "YEARLY"
)

// ValidCycle reports whether c is one of the four supported cadences.
func ValidCycle(c BillingCycle) bool {
	switch c {
	case CycleWeekly, CycleMonthly, CycleQuarterly, CycleYearly:
		return true
	}
	return false
}

// RentConfig is the recurring billing schedule attached to one occupancy.
// DueDay is a calendar day 1-31 for every cycle, WEEKLY included; days past
// the end of a month clamp to that month's last day when the due date is
// materialized.
type RentConfig struct {
	ID          int32           `json:"id"`
	OrgID       int32           `json:"org_id"`
	OccupancyID int32           `json:"occupancy_id"`
	Amount      decimal.Decimal `json:"amount"`
	Cycle       BillingCycle    `json:"cycle"`
	DueDay      int32           `json:"due_day"`
	CreatedOn   time.Time       `json:"created_on"`
	UpdatedOn   time.Time       `json:"updated_on"`
}
