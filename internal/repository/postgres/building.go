package postgres

import (
	"context"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type buildingRepository struct {
	db DBTX
}

func NewBuildingRepository(db DBTX) repository.BuildingRepository {
	return &buildingRepository{db: db}
}

func (r *buildingRepository) Create(ctx context.Context, b *domain.Building) error {
	query := `INSERT INTO buildings (org_id, name, address, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, b.OrgID, b.Name, b.Address, b.Notes, now, now).Scan(&b.ID)
}

func (r *buildingRepository) GetByID(ctx context.Context, id int32) (*domain.Building, error) {
	b := &domain.Building{}
	query := `SELECT id, org_id, name, COALESCE(address, ''), COALESCE(notes, ''), created_on, updated_on FROM buildings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.OrgID, &b.Name, &b.Address, &b.Notes, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, wrapNotFound(err, "building")
	}
	return b, nil
}

func (r *buildingRepository) Update(ctx context.Context, b *domain.Building) error {
	query := `UPDATE buildings SET name=$1, address=$2, notes=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, b.Name, b.Address, b.Notes, time.Now(), b.ID)
	return err
}

func (r *buildingRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM buildings WHERE id=$1`, id)
	return err
}

func (r *buildingRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.Building, error) {
	query := `SELECT id, org_id, name, COALESCE(address, ''), COALESCE(notes, ''), created_on, updated_on FROM buildings WHERE org_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []domain.Building
	for rows.Next() {
		var b domain.Building
		if err := rows.Scan(&b.ID, &b.OrgID, &b.Name, &b.Address, &b.Notes, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}
