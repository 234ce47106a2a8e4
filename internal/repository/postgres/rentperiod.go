package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type rentPeriodRepository struct {
	db DBTX
}

func NewRentPeriodRepository(db DBTX) repository.RentPeriodRepository {
	return &rentPeriodRepository{db: db}
}

const rentPeriodColumns = `id, org_id, rent_config_id, period_start, period_end, due_date, status, days_overdue, created_on, updated_on`

func (r *rentPeriodRepository) Create(ctx context.Context, p *domain.RentPeriod) error {
	// rent_periods has UNIQUE (rent_config_id, period_start); concurrent
	// generate-next calls for one schedule surface here as ErrConflict.
	query := `INSERT INTO rent_periods (org_id, rent_config_id, period_start, period_end, due_date, status, days_overdue, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, p.OrgID, p.RentConfigID, p.PeriodStart, p.PeriodEnd, p.DueDate, p.Status, p.DaysOverdue, now, now).Scan(&p.ID)
	if err != nil {
		return wrapConflict(err, "create rent period")
	}
	return nil
}

func (r *rentPeriodRepository) GetByID(ctx context.Context, id int32) (*domain.RentPeriod, error) {
	query := `SELECT ` + rentPeriodColumns + ` FROM rent_periods WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *rentPeriodRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.RentPeriod, error) {
	query := `SELECT ` + rentPeriodColumns + ` FROM rent_periods WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

func (r *rentPeriodRepository) GetLatestByConfig(ctx context.Context, rentConfigID int32) (*domain.RentPeriod, error) {
	query := `SELECT ` + rentPeriodColumns + ` FROM rent_periods WHERE rent_config_id = $1 ORDER BY period_start DESC LIMIT 1`
	p, err := r.scanOne(ctx, query, rentConfigID)
	if errors.Is(err, domain.ErrNotFound) {
		// No prior period is a normal state for a fresh schedule.
		return nil, nil
	}
	return p, err
}

func (r *rentPeriodRepository) UpdateStatus(ctx context.Context, id int32, status domain.PeriodStatus, daysOverdue int32) error {
	query := `UPDATE rent_periods SET status=$1, days_overdue=$2, updated_on=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, status, daysOverdue, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update period status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("rent period %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *rentPeriodRepository) ListByConfig(ctx context.Context, rentConfigID int32) ([]domain.RentPeriod, error) {
	query := `SELECT ` + rentPeriodColumns + ` FROM rent_periods WHERE rent_config_id = $1 ORDER BY period_start`
	rows, err := r.db.QueryContext(ctx, query, rentConfigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPeriods(rows)
}

func (r *rentPeriodRepository) ListByOrg(ctx context.Context, orgID int32, status string, page, pageSize int32) ([]domain.RentPeriod, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentPeriodColumns + ` FROM rent_periods WHERE org_id = $1`
	args := []interface{}{orgID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY due_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	periods, err := scanPeriods(rows)
	if err != nil {
		return nil, 0, err
	}
	return periods, count, nil
}

func (r *rentPeriodRepository) ListUnpaidByOrg(ctx context.Context, orgID int32) ([]domain.RentPeriod, error) {
	query := `SELECT ` + rentPeriodColumns + ` FROM rent_periods WHERE org_id = $1 AND status IN ('DUE', 'OVERDUE') ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPeriods(rows)
}

func (r *rentPeriodRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rent_periods WHERE id=$1`, id)
	return err
}

func (r *rentPeriodRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.RentPeriod, error) {
	p := &domain.RentPeriod{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.OrgID, &p.RentConfigID, &p.PeriodStart, &p.PeriodEnd, &p.DueDate, &p.Status, &p.DaysOverdue, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, wrapNotFound(err, "rent period")
	}
	return p, nil
}

func scanPeriods(rows *sql.Rows) ([]domain.RentPeriod, error) {
	var periods []domain.RentPeriod
	for rows.Next() {
		var p domain.RentPeriod
		if err := rows.Scan(&p.ID, &p.OrgID, &p.RentConfigID, &p.PeriodStart, &p.PeriodEnd, &p.DueDate, &p.Status, &p.DaysOverdue, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}
