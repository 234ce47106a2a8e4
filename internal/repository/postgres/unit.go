package postgres

import (
	"context"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type unitRepository struct {
	db DBTX
}

func NewUnitRepository(db DBTX) repository.UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(ctx context.Context, u *domain.Unit) error {
	query := `INSERT INTO units (org_id, building_id, label, floor, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, u.OrgID, u.BuildingID, u.Label, u.Floor, u.Notes, now, now).Scan(&u.ID)
}

func (r *unitRepository) GetByID(ctx context.Context, id int32) (*domain.Unit, error) {
	u := &domain.Unit{}
	query := `SELECT id, org_id, building_id, label, COALESCE(floor, ''), COALESCE(notes, ''), created_on, updated_on FROM units WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.OrgID, &u.BuildingID, &u.Label, &u.Floor, &u.Notes, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, wrapNotFound(err, "unit")
	}
	return u, nil
}

func (r *unitRepository) Update(ctx context.Context, u *domain.Unit) error {
	query := `UPDATE units SET label=$1, floor=$2, notes=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, u.Label, u.Floor, u.Notes, time.Now(), u.ID)
	return err
}

func (r *unitRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE id=$1`, id)
	return err
}

func (r *unitRepository) ListByBuilding(ctx context.Context, buildingID int32) ([]domain.Unit, error) {
	query := `SELECT id, org_id, building_id, label, COALESCE(floor, ''), COALESCE(notes, ''), created_on, updated_on FROM units WHERE building_id = $1 ORDER BY label`
	rows, err := r.db.QueryContext(ctx, query, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []domain.Unit
	for rows.Next() {
		var u domain.Unit
		if err := rows.Scan(&u.ID, &u.OrgID, &u.BuildingID, &u.Label, &u.Floor, &u.Notes, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}
