package postgres

import (
	"context"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type rentConfigRepository struct {
	db DBTX
}

func NewRentConfigRepository(db DBTX) repository.RentConfigRepository {
	return &rentConfigRepository{db: db}
}

func (r *rentConfigRepository) Create(ctx context.Context, rc *domain.RentConfig) error {
	query := `INSERT INTO rent_configs (org_id, occupancy_id, amount, cycle, due_day, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, rc.OrgID, rc.OccupancyID, rc.Amount, rc.Cycle, rc.DueDay, now, now).Scan(&rc.ID)
}

func (r *rentConfigRepository) GetByID(ctx context.Context, id int32) (*domain.RentConfig, error) {
	rc := &domain.RentConfig{}
	query := `SELECT id, org_id, occupancy_id, amount, cycle, due_day, created_on, updated_on FROM rent_configs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rc.ID, &rc.OrgID, &rc.OccupancyID, &rc.Amount, &rc.Cycle, &rc.DueDay, &rc.CreatedOn, &rc.UpdatedOn)
	if err != nil {
		return nil, wrapNotFound(err, "rent config")
	}
	return rc, nil
}

func (r *rentConfigRepository) Update(ctx context.Context, rc *domain.RentConfig) error {
	query := `UPDATE rent_configs SET amount=$1, cycle=$2, due_day=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, rc.Amount, rc.Cycle, rc.DueDay, time.Now(), rc.ID)
	return err
}

func (r *rentConfigRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rent_configs WHERE id=$1`, id)
	return err
}

func (r *rentConfigRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.RentConfig, error) {
	query := `SELECT id, org_id, occupancy_id, amount, cycle, due_day, created_on, updated_on FROM rent_configs WHERE org_id = $1 ORDER BY id`
	return r.scanList(ctx, query, orgID)
}

func (r *rentConfigRepository) ListByOccupancy(ctx context.Context, occupancyID int32) ([]domain.RentConfig, error) {
	query := `SELECT id, org_id, occupancy_id, amount, cycle, due_day, created_on, updated_on FROM rent_configs WHERE occupancy_id = $1 ORDER BY id`
	return r.scanList(ctx, query, occupancyID)
}

func (r *rentConfigRepository) scanList(ctx context.Context, query string, args ...any) ([]domain.RentConfig, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []domain.RentConfig
	for rows.Next() {
		var rc domain.RentConfig
		if err := rows.Scan(&rc.ID, &rc.OrgID, &rc.OccupancyID, &rc.Amount, &rc.Cycle, &rc.DueDay, &rc.CreatedOn, &rc.UpdatedOn); err != nil {
			return nil, err
		}
		configs = append(configs, rc)
	}
	return configs, rows.Err()
}
