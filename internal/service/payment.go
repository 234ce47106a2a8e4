package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/logger"
	"renttrack-backend/internal/repository"
)

type paymentService struct {
	guard       AuthorizationGuard
	atomic      repository.Atomic
	periodRepo  repository.RentPeriodRepository
	paymentRepo repository.PaymentRepository
	audit       AuditEmitter
	clock       Clock
	orgRepo     repository.OrganizationRepository
	mailer      EmailService // nil disables receipt mail
}

func NewPaymentService(
	guard AuthorizationGuard,
	atomic repository.Atomic,
	periodRepo repository.RentPeriodRepository,
	paymentRepo repository.PaymentRepository,
	audit AuditEmitter,
	clock Clock,
	orgRepo repository.OrganizationRepository,
	mailer EmailService,
) PaymentService {
	return &paymentService{
		guard:       guard,
		atomic:      atomic,
		periodRepo:  periodRepo,
		paymentRepo: paymentRepo,
		audit:       audit,
		clock:       clock,
		orgRepo:     orgRepo,
		mailer:      mailer,
	}
}

// Create records a payment and marks the owning period PAID. The insert and
// the status flip run in one transaction, with the period row locked first so
// concurrent mutations on the same period serialize. If the status flip fails
// the just-inserted payment is explicitly deleted before the error surfaces:
// a payment must never survive with its period still DUE/OVERDUE.
func (s *paymentService) Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error) {
	auth, err := s.guard.Require(ctx, in.ActorID, in.OrgSlug, writeRoles...)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", domain.ErrValidation)
	}

	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	reference := in.Reference
	if reference == "" {
		reference = uuid.New().String()
	}

	payment := &domain.Payment{
		OrgID:        auth.OrgID,
		RentPeriodID: in.RentPeriodID,
		Amount:       in.Amount,
		PaidAt:       paidAt,
		Reference:    reference,
		RecordedBy:   in.ActorID,
	}

	var statusBefore domain.PeriodStatus
	var periodLabel string
	err = s.atomic.WithinTx(ctx, func(r *repository.Registry) error {
		period, err := r.RentPeriods.GetByIDForUpdate(ctx, in.RentPeriodID)
		if err != nil {
			return err
		}
		if period.OrgID != auth.OrgID {
			return fmt.Errorf("rent period %d: %w", in.RentPeriodID, domain.ErrNotFound)
		}
		statusBefore = period.Status
		periodLabel = fmt.Sprintf("%s to %s", period.PeriodStart.Format("2006-01-02"), period.PeriodEnd.Format("2006-01-02"))

		if err := r.Payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		// Any positive payment fully settles the period. Amounts are not
		// compared against the schedule amount.
		if err := r.RentPeriods.UpdateStatus(ctx, period.ID, domain.PeriodStatusPaid, 0); err != nil {
			if delErr := r.Payments.Delete(ctx, payment.ID); delErr != nil {
				logger.Error("payment compensation failed, orphaned payment possible",
					"payment_id", payment.ID, "period_id", period.ID, "error", delErr)
			}
			return fmt.Errorf("mark period paid: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		OrgID:       auth.OrgID,
		ActorID:     in.ActorID,
		Action:      domain.AuditActionCreate,
		EntityType:  domain.EntityPayment,
		EntityID:    &payment.ID,
		Description: fmt.Sprintf("payment of %s recorded, period %d %s to PAID", in.Amount, in.RentPeriodID, statusBefore),
		After:       payment,
	})

	// Receipt mail is best effort, like the audit row.
	if s.mailer != nil {
		if org, orgErr := s.orgRepo.GetByID(ctx, auth.OrgID); orgErr == nil && org.AdminEmail != "" {
			if mailErr := s.mailer.SendPaymentReceipt(ctx, org.AdminEmail, org.Name, payment.Amount.String(), periodLabel); mailErr != nil {
				logger.Error("failed to send payment receipt", "payment_id", payment.ID, "error", mailErr)
			}
		}
	}
	return payment, nil
}

// Update edits amount, paid_at and reference only. The owning period is
// immutable post-creation and its status is untouched; an audit entry is
// emitted only when a field actually changed value.
func (s *paymentService) Update(ctx context.Context, in UpdatePaymentInput) (*domain.Payment, error) {
	auth, err := s.guard.Require(ctx, in.ActorID, in.OrgSlug, writeRoles...)
	if err != nil {
		return nil, err
	}
	if in.Amount != nil && !in.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", domain.ErrValidation)
	}

	payment, err := s.paymentRepo.GetByID(ctx, in.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.OrgID != auth.OrgID {
		return nil, fmt.Errorf("payment %d: %w", in.PaymentID, domain.ErrNotFound)
	}

	before := *payment
	changed := false
	if in.Amount != nil && !in.Amount.Equal(payment.Amount) {
		payment.Amount = *in.Amount
		changed = true
	}
	if in.PaidAt != nil && !in.PaidAt.Equal(payment.PaidAt) {
		payment.PaidAt = *in.PaidAt
		changed = true
	}
	if in.Reference != nil && *in.Reference != payment.Reference {
		payment.Reference = *in.Reference
		changed = true
	}
	if !changed {
		return payment, nil
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		OrgID:       auth.OrgID,
		ActorID:     in.ActorID,
		Action:      domain.AuditActionUpdate,
		EntityType:  domain.EntityPayment,
		EntityID:    &payment.ID,
		Description: "payment updated",
		Before:      before,
		After:       payment,
	})
	return payment, nil
}

// Delete removes a payment (OWNER only). When it was the period's last
// payment, the period status is re-derived from the due date through the
// status engine. A failed revert after the payment row is gone is degraded
// success, not failure: the deletion stands, the inconsistency is logged for
// manual reconciliation, and RevertFailed is set on the result.
func (s *paymentService) Delete(ctx context.Context, actorID int32, slug string, paymentID int32) (*PaymentDeletion, error) {
	auth, err := s.guard.Require(ctx, actorID, slug, ownerOnly...)
	if err != nil {
		return nil, err
	}

	var deletion *PaymentDeletion
	err = s.atomic.WithinTx(ctx, func(r *repository.Registry) error {
		payment, err := r.Payments.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment.OrgID != auth.OrgID {
			return fmt.Errorf("payment %d: %w", paymentID, domain.ErrNotFound)
		}

		period, err := r.RentPeriods.GetByIDForUpdate(ctx, payment.RentPeriodID)
		if err != nil {
			return err
		}

		remaining, err := r.Payments.CountByPeriodExcluding(ctx, period.ID, payment.ID)
		if err != nil {
			return err
		}

		if err := r.Payments.Delete(ctx, payment.ID); err != nil {
			return fmt.Errorf("delete payment: %w", err)
		}

		deletion = &PaymentDeletion{Payment: *payment, PeriodStatus: period.Status}
		if remaining > 0 {
			// Other payments still cover the period; it stays PAID.
			return nil
		}

		status, days := domain.RecomputeStatus(domain.PeriodStatusDue, period.DueDate, s.clock.Today())
		if err := r.RentPeriods.UpdateStatus(ctx, period.ID, status, days); err != nil {
			deletion.RevertFailed = true
			logger.Error("period status revert failed after payment delete, manual reconciliation required",
				"period_id", period.ID, "payment_id", payment.ID, "error", err)
			return nil
		}
		deletion.PeriodStatus = status
		deletion.StatusReverted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		OrgID:       auth.OrgID,
		ActorID:     actorID,
		Action:      domain.AuditActionDelete,
		EntityType:  domain.EntityPayment,
		EntityID:    &deletion.Payment.ID,
		Description: fmt.Sprintf("payment deleted, period %d now %s", deletion.Payment.RentPeriodID, deletion.PeriodStatus),
		Before:      deletion.Payment,
		After:       map[string]any{"period_status": deletion.PeriodStatus, "status_reverted": deletion.StatusReverted},
	})
	return deletion, nil
}

func (s *paymentService) ListByPeriod(ctx context.Context, actorID int32, slug string, periodID int32) ([]domain.Payment, error) {
	auth, err := s.guard.Resolve(ctx, actorID, slug)
	if err != nil {
		return nil, err
	}
	period, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.OrgID != auth.OrgID {
		return nil, fmt.Errorf("rent period %d: %w", periodID, domain.ErrNotFound)
	}
	return s.paymentRepo.ListByPeriod(ctx, periodID)
}
