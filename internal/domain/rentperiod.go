package domain

import "time"

type PeriodStatus string

const (
	PeriodStatusDue     PeriodStatus = "DUE"
	PeriodStatusPaid    PeriodStatus = "PAID"
	PeriodStatusOverdue PeriodStatus = "OVERDUE"
)

// ValidPeriodStatus reports whether s is one of the three period states.
func ValidPeriodStatus(s PeriodStatus) bool {
	return s == PeriodStatusDue || s == PeriodStatusPaid || s == PeriodStatusOverdue
}

// RentPeriod is one billing cycle's instance for a rent schedule.
// PeriodStart..PeriodEnd is an inclusive date range.
type RentPeriod struct {
	ID           int32        `json:"id"`
	OrgID        int32        `json:"org_id"`
	RentConfigID int32        `json:"rent_config_id"`
	PeriodStart  time.Time    `json:"period_start"`
	PeriodEnd    time.Time    `json:"period_end"`
	DueDate      time.Time    `json:"due_date"`
	Status       PeriodStatus `json:"status"`
	DaysOverdue  int32        `json:"days_overdue"`
	CreatedOn    time.Time    `json:"created_on"`
	UpdatedOn    time.Time    `json:"updated_on"`
}

// RecomputeStatus derives a period's (status, days_overdue) pair from its due
// date and the current calendar day. It is the single arbiter of "is this
// period late": every write that touches a period's due date or status runs
// its result through here, and the payment-delete revert path calls it with
// status reset to DUE.
//
// PAID is sticky: it is never demoted here, only by an explicit status-change
// request. A period that is already OVERDUE stays OVERDUE. The function is
// idempotent for a fixed today.
func RecomputeStatus(status PeriodStatus, dueDate, today time.Time) (PeriodStatus, int32) {
	if status == PeriodStatusPaid {
		return PeriodStatusPaid, 0
	}
	days := DaysBetween(dueDate, today)
	if days < 0 {
		days = 0
	}
	if days > 0 && status == PeriodStatusDue {
		status = PeriodStatusOverdue
	}
	return status, int32(days)
}

// CivilDate truncates t to a calendar date in UTC. Status math works on whole
// days, never instants.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b. Negative when b
// falls before a.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / 24)
}
