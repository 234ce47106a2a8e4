package postgres

import (
	"context"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (org_id, rent_period_id, amount, paid_at, reference, recorded_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.OrgID, p.RentPeriodID, p.Amount, p.PaidAt, p.Reference, p.RecordedBy, now, now).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT id, org_id, rent_period_id, amount, paid_at, COALESCE(reference, ''), recorded_by, created_on, updated_on FROM payments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.OrgID, &p.RentPeriodID, &p.Amount, &p.PaidAt, &p.Reference, &p.RecordedBy, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, wrapNotFound(err, "payment")
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	// rent_period_id is deliberately absent: the owning period is immutable
	// after creation.
	query := `UPDATE payments SET amount=$1, paid_at=$2, reference=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, p.Amount, p.PaidAt, p.Reference, time.Now(), p.ID)
	return err
}

func (r *paymentRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id=$1`, id)
	return err
}

func (r *paymentRepository) ListByPeriod(ctx context.Context, rentPeriodID int32) ([]domain.Payment, error) {
	query := `SELECT id, org_id, rent_period_id, amount, paid_at, COALESCE(reference, ''), recorded_by, created_on, updated_on FROM payments WHERE rent_period_id = $1 ORDER BY paid_at`
	rows, err := r.db.QueryContext(ctx, query, rentPeriodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrgID, &p.RentPeriodID, &p.Amount, &p.PaidAt, &p.Reference, &p.RecordedBy, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) CountByPeriodExcluding(ctx context.Context, rentPeriodID, excludeID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM payments WHERE rent_period_id = $1 AND id <> $2`
	err := r.db.QueryRowContext(ctx, query, rentPeriodID, excludeID).Scan(&count)
	return count, err
}
