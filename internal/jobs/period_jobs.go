package jobs

import (
	"context"
	"errors"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/logger"
	"renttrack-backend/internal/service"
)

// RefreshOverduePeriods recomputes status/days_overdue for every unpaid
// period, org by org. Runs nightly after midnight UTC so the day boundary has
// passed everywhere the math cares about.
func (jr *JobRunner) RefreshOverduePeriods() {
	jr.runWithRecovery("RefreshOverduePeriods", func() {
		ctx := context.Background()

		orgs, err := jr.store.Orgs.List(ctx)
		if err != nil {
			logger.Error("Failed to list organizations", "error", err)
			return
		}

		var total int32
		for _, org := range orgs {
			changed, err := jr.services.Period.RefreshStatuses(ctx, org.ID)
			if err != nil {
				logger.Error("Failed to refresh period statuses", "org_id", org.ID, "error", err)
				continue
			}
			total += changed
		}
		logger.Info("Refreshed period statuses", "orgs", len(orgs), "periods_changed", total)
	})
}

// MaterializeUpcomingPeriods generates the next period for every schedule
// whose latest period has ended (or that has none yet), so billing never goes
// dark between manual generations. Ended occupancies and already-generated
// periods are skipped quietly.
func (jr *JobRunner) MaterializeUpcomingPeriods() {
	jr.runWithRecovery("MaterializeUpcomingPeriods", func() {
		ctx := context.Background()
		today := time.Now().UTC()

		orgs, err := jr.store.Orgs.List(ctx)
		if err != nil {
			logger.Error("Failed to list organizations", "error", err)
			return
		}

		generated := 0
		for _, org := range orgs {
			configs, err := jr.store.RentConfigs.ListByOrg(ctx, org.ID)
			if err != nil {
				logger.Error("Failed to list rent configs", "org_id", org.ID, "error", err)
				continue
			}
			for _, cfg := range configs {
				latest, err := jr.store.RentPeriods.GetLatestByConfig(ctx, cfg.ID)
				if err != nil {
					logger.Error("Failed to load latest period", "rent_config_id", cfg.ID, "error", err)
					continue
				}
				if latest != nil && latest.PeriodEnd.After(today) {
					continue
				}

				if _, err := jr.services.Period.GenerateNextForConfig(ctx, cfg.ID); err != nil {
					if errors.Is(err, service.ErrOccupancyEnded) || errors.Is(err, domain.ErrConflict) {
						continue
					}
					logger.Error("Failed to generate period", "rent_config_id", cfg.ID, "error", err)
					continue
				}
				generated++
			}
		}
		logger.Info("Materialized upcoming periods", "generated", generated)
	})
}
