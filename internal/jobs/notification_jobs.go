package jobs

import (
	"context"
	"fmt"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/logger"
)

// SendOverdueReminders mails each organization's admin a digest of overdue
// periods. Orgs with nothing overdue or no admin email are skipped.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		orgs, err := jr.store.Orgs.List(ctx)
		if err != nil {
			logger.Error("Failed to list organizations", "error", err)
			return
		}

		for _, org := range orgs {
			if org.AdminEmail == "" {
				continue
			}

			periods, err := jr.store.RentPeriods.ListUnpaidByOrg(ctx, org.ID)
			if err != nil {
				logger.Error("Failed to list unpaid periods", "org_id", org.ID, "error", err)
				continue
			}

			var lines []string
			for _, p := range periods {
				if p.Status != domain.PeriodStatusOverdue {
					continue
				}
				lines = append(lines, fmt.Sprintf("Period %s to %s, due %s, %d day(s) overdue",
					p.PeriodStart.Format("2006-01-02"),
					p.PeriodEnd.Format("2006-01-02"),
					p.DueDate.Format("2006-01-02"),
					p.DaysOverdue))
			}
			if len(lines) == 0 {
				continue
			}

			if err := jr.services.Email.SendOverdueReminder(ctx, org.AdminEmail, org.Name, lines); err != nil {
				logger.Error("Failed to send overdue reminder", "org_id", org.ID, "error", err)
				continue
			}
			logger.Debug("Sent overdue reminder", "org_id", org.ID, "overdue_count", len(lines))
		}
	})
}
