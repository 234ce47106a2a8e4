package postgres

import (
	"context"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type occupancyRepository struct {
	db DBTX
}

func NewOccupancyRepository(db DBTX) repository.OccupancyRepository {
	return &occupancyRepository{db: db}
}

func (r *occupancyRepository) Create(ctx context.Context, o *domain.Occupancy) error {
	query := `INSERT INTO occupancies (org_id, tenant_id, unit_id, active_from, active_to, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, o.OrgID, o.TenantID, o.UnitID, o.ActiveFrom, o.ActiveTo, now, now).Scan(&o.ID)
}

func (r *occupancyRepository) GetByID(ctx context.Context, id int32) (*domain.Occupancy, error) {
	o := &domain.Occupancy{}
	query := `SELECT id, org_id, tenant_id, unit_id, active_from, active_to, created_on, updated_on FROM occupancies WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.OrgID, &o.TenantID, &o.UnitID, &o.ActiveFrom, &o.ActiveTo, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, wrapNotFound(err, "occupancy")
	}
	return o, nil
}

func (r *occupancyRepository) Update(ctx context.Context, o *domain.Occupancy) error {
	query := `UPDATE occupancies SET tenant_id=$1, unit_id=$2, active_from=$3, active_to=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, o.TenantID, o.UnitID, o.ActiveFrom, o.ActiveTo, time.Now(), o.ID)
	return err
}

func (r *occupancyRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM occupancies WHERE id=$1`, id)
	return err
}

func (r *occupancyRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.Occupancy, error) {
	query := `SELECT id, org_id, tenant_id, unit_id, active_from, active_to, created_on, updated_on FROM occupancies WHERE org_id = $1 ORDER BY active_from DESC`
	return r.scanList(ctx, query, orgID)
}

func (r *occupancyRepository) ListActive(ctx context.Context, orgID int32, asOf time.Time) ([]domain.Occupancy, error) {
	query := `SELECT id, org_id, tenant_id, unit_id, active_from, active_to, created_on, updated_on FROM occupancies
	          WHERE org_id = $1 AND active_from <= $2 AND (active_to IS NULL OR active_to >= $2) ORDER BY id`
	return r.scanList(ctx, query, orgID, asOf)
}

func (r *occupancyRepository) scanList(ctx context.Context, query string, args ...any) ([]domain.Occupancy, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occupancies []domain.Occupancy
	for rows.Next() {
		var o domain.Occupancy
		if err := rows.Scan(&o.ID, &o.OrgID, &o.TenantID, &o.UnitID, &o.ActiveFrom, &o.ActiveTo, &o.CreatedOn, &o.UpdatedOn); err != nil {
			return nil, err
		}
		occupancies = append(occupancies, o)
	}
	return occupancies, rows.Err()
}
