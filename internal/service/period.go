package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/logger"
	"renttrack-backend/internal/repository"
)

// ErrOccupancyEnded is terminal: generation for this schedule cannot proceed
// until the occupancy dates change.
var ErrOccupancyEnded = errors.New("occupancy ended")

type rentPeriodService struct {
	guard      AuthorizationGuard
	atomic     repository.Atomic
	configRepo repository.RentConfigRepository
	occRepo    repository.OccupancyRepository
	periodRepo repository.RentPeriodRepository
	audit      AuditEmitter
	clock      Clock
}

func NewRentPeriodService(
	guard AuthorizationGuard,
	atomic repository.Atomic,
	configRepo repository.RentConfigRepository,
	occRepo repository.OccupancyRepository,
	periodRepo repository.RentPeriodRepository,
	audit AuditEmitter,
	clock Clock,
) RentPeriodService {
	return &rentPeriodService{
		guard:      guard,
		atomic:     atomic,
		configRepo: configRepo,
		occRepo:    occRepo,
		periodRepo: periodRepo,
		audit:      audit,
		clock:      clock,
	}
}

func (s *rentPeriodService) GenerateNext(ctx context.Context, actorID int32, slug string, rentConfigID int32) (*domain.RentPeriod, error) {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return nil, err
	}

	config, err := s.configRepo.GetByID(ctx, rentConfigID)
	if err != nil {
		return nil, err
	}
	if config.OrgID != auth.OrgID {
		return nil, fmt.Errorf("rent config %d: %w", rentConfigID, domain.ErrNotFound)
	}

	period, err := s.generate(ctx, config)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		OrgID:       auth.OrgID,
		ActorID:     actorID,
		Action:      domain.AuditActionCreate,
		EntityType:  domain.EntityRentPeriod,
		EntityID:    &period.ID,
		Description: fmt.Sprintf("generated period %s to %s", period.PeriodStart.Format("2006-01-02"), period.PeriodEnd.Format("2006-01-02")),
		After:       period,
	})
	return period, nil
}

func (s *rentPeriodService) GenerateNextForConfig(ctx context.Context, rentConfigID int32) (*domain.RentPeriod, error) {
	config, err := s.configRepo.GetByID(ctx, rentConfigID)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, config)
}

// generate computes and persists the next period for a schedule. Callers must
// serialize generation per config; the unique (rent_config_id, period_start)
// constraint turns a lost race into domain.ErrConflict rather than a
// duplicate period.
func (s *rentPeriodService) generate(ctx context.Context, config *domain.RentConfig) (*domain.RentPeriod, error) {
	occ, err := s.occRepo.GetByID(ctx, config.OccupancyID)
	if err != nil {
		return nil, err
	}

	prior, err := s.periodRepo.GetLatestByConfig(ctx, config.ID)
	if err != nil {
		return nil, err
	}

	start := domain.CivilDate(occ.ActiveFrom)
	if prior != nil {
		start = domain.CivilDate(prior.PeriodEnd).AddDate(0, 0, 1)
	}
	if occ.Ended(start) {
		return nil, fmt.Errorf("rent config %d: %w", config.ID, ErrOccupancyEnded)
	}

	end := periodEnd(config.Cycle, start)
	if occ.ActiveTo != nil && end.After(domain.CivilDate(*occ.ActiveTo)) {
		end = domain.CivilDate(*occ.ActiveTo)
	}

	due := dueDateFor(start, int(config.DueDay))

	// New periods are born DUE, then run through the status engine like any
	// other write: a period generated after its due date starts out OVERDUE.
	status, days := domain.RecomputeStatus(domain.PeriodStatusDue, due, s.clock.Today())

	period := &domain.RentPeriod{
		OrgID:        config.OrgID,
		RentConfigID: config.ID,
		PeriodStart:  start,
		PeriodEnd:    end,
		DueDate:      due,
		Status:       status,
		DaysOverdue:  days,
	}
	if err := s.periodRepo.Create(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

func (s *rentPeriodService) List(ctx context.Context, actorID int32, slug string, status string, page, pageSize int32) ([]domain.RentPeriod, int32, error) {
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
	return s.periodRepo.ListByOrg(ctx, auth.OrgID, status, page, pageSize)
}

func (s *rentPeriodService) ListByConfig(ctx context.Context, actorID int32, slug string, rentConfigID int32) ([]domain.RentPeriod, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, err
	}
	config, err := s.configRepo.GetByID(ctx, rentConfigID)
	if err != nil {
		return nil, err
	}
	if config.OrgID != auth.OrgID {
		return nil, fmt.Errorf("rent config %d: %w", rentConfigID, domain.ErrNotFound)
	}
	return s.periodRepo.ListByConfig(ctx, rentConfigID)
}

func (s *rentPeriodService) ChangeStatus(ctx context.Context, actorID int32, slug string, periodID int32, status domain.PeriodStatus) (*domain.RentPeriod, error) {
	auth, err := s.guard.Require(ctx, actorID, slug, writeRoles...)
	if err != nil {
		return nil, err
	}
	if !domain.ValidPeriodStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, domain.ErrValidation)
	}

	period, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.OrgID != auth.OrgID {
		return nil, fmt.Errorf("rent period %d: %w", periodID, domain.ErrNotFound)
	}

	before := *period
	newStatus, days := domain.RecomputeStatus(status, period.DueDate, s.clock.Today())
	if err := s.periodRepo.UpdateStatus(ctx, period.ID, newStatus, days); err != nil {
		return nil, err
	}
	period.Status = newStatus
	period.DaysOverdue = days

	s.audit.Record(ctx, AuditEntry{
		OrgID:       auth.OrgID,
		ActorID:     actorID,
		Action:      domain.AuditActionStatusChange,
		EntityType:  domain.EntityRentPeriod,
		EntityID:    &period.ID,
		Description: fmt.Sprintf("status %s to %s", before.Status, newStatus),
		Before:      before,
		After:       period,
	})
	return period, nil
}

func (s *rentPeriodService) Delete(ctx context.Context, actorID int32, slug string, periodID int32) error {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return err
	}

	var before domain.RentPeriod
	err = s.atomic.WithinTx(ctx, func(r *repository.Registry) error {
		period, err := r.RentPeriods.GetByIDForUpdate(ctx, periodID)
		if err != nil {
			return err
		}
		if period.OrgID != auth.OrgID {
			return fmt.Errorf("rent period %d: %w", periodID, domain.ErrNotFound)
		}
		count, err := r.Payments.CountByPeriodExcluding(ctx, periodID, 0)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("rent period %d has %d payments: %w", periodID, count, domain.ErrConflict)
		}
		before = *period
		return r.RentPeriods.Delete(ctx, periodID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		OrgID:       auth.OrgID,
		ActorID:     actorID,
		Action:      domain.AuditActionDelete,
		EntityType:  domain.EntityRentPeriod,
		EntityID:    &periodID,
		Description: fmt.Sprintf("period %s to %s deleted", before.PeriodStart.Format("2006-01-02"), before.PeriodEnd.Format("2006-01-02")),
		Before:      before,
	})
	return nil
}

func (s *rentPeriodService) RefreshStatuses(ctx context.Context, orgID int32) (int32, error) {
	periods, err := s.periodRepo.ListUnpaidByOrg(ctx, orgID)
	if err != nil {
		return 0, err
	}

	today := s.clock.Today()
	var changed int32
	for _, p := range periods {
		status, days := domain.RecomputeStatus(p.Status, p.DueDate, today)
		if status == p.Status && days == p.DaysOverdue {
			continue
		}
		if err := s.periodRepo.UpdateStatus(ctx, p.ID, status, days); err != nil {
			logger.Error("failed to refresh period status", "period_id", p.ID, "error", err)
			continue
		}
		changed++
	}
	return changed, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(t time.Time) time.Time {
	return firstOfMonth(t).AddDate(0, 1, -1)
}

// periodEnd computes the inclusive end date of a period starting at start.
// Month-based cycles always end on a month boundary regardless of where in
// the month the period starts.
func periodEnd(cycle domain.BillingCycle, start time.Time) time.Time {
	switch cycle {
	case domain.CycleWeekly:
		return start.AddDate(0, 0, 6)
	case domain.CycleMonthly:
		return endOfMonth(start)
	case domain.CycleQuarterly:
		return endOfMonth(firstOfMonth(start).AddDate(0, 3, 0))
	case domain.CycleYearly:
		return endOfMonth(firstOfMonth(start).AddDate(1, 0, 0))
	}
	return endOfMonth(start)
}

// dueDateFor places dueDay in start's month, clamped to the month's length.
// If that day already passed before the period began, it rolls forward one
// month, clamping again.
func dueDateFor(start time.Time, dueDay int) time.Time {
	due := dayInMonth(start.Year(), start.Month(), dueDay)
	if due.Before(start) {
		next := firstOfMonth(start).AddDate(0, 1, 0)
		due = dayInMonth(next.Year(), next.Month(), dueDay)
	}
	return due
}

func dayInMonth(year int, month time.Month, day int) time.Time {
	if last := endOfMonth(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
