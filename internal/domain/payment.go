package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records a settlement against exactly one rent period. The owning
// period is immutable after creation; only amount, paid_at and reference can
// change. Recording any positive amount marks the period PAID; amounts are
// never summed against the schedule's amount.
type Payment struct {
	ID           int32           `json:"id"`
	OrgID        int32           `json:"org_id"`
	RentPeriodID int32           `json:"rent_period_id"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAt       time.Time       `json:"paid_at"`
	Reference    string          `json:"reference"`
	RecordedBy   int32           `json:"recorded_by"`
	CreatedOn    time.Time       `json:"created_on"`
	UpdatedOn    time.Time       `json:"updated_on"`
}
