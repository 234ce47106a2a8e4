package postgres

import (
	"context"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type tenantRepository struct {
	db DBTX
}

func NewTenantRepository(db DBTX) repository.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, t *domain.Tenant) error {
	query := `INSERT INTO tenants (org_id, full_name, email, phone_number, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, t.OrgID, t.FullName, t.Email, t.PhoneNumber, t.Notes, now, now).Scan(&t.ID)
}

func (r *tenantRepository) GetByID(ctx context.Context, id int32) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	query := `SELECT id, org_id, full_name, COALESCE(email, ''), COALESCE(phone_number, ''), COALESCE(notes, ''), created_on, updated_on FROM tenants WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.OrgID, &t.FullName, &t.Email, &t.PhoneNumber, &t.Notes, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, wrapNotFound(err, "tenant")
	}
	return t, nil
}

func (r *tenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	query := `UPDATE tenants SET full_name=$1, email=$2, phone_number=$3, notes=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, t.FullName, t.Email, t.PhoneNumber, t.Notes, time.Now(), t.ID)
	return err
}

func (r *tenantRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tenants WHERE id=$1`, id)
	return err
}

func (r *tenantRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.Tenant, error) {
	query := `SELECT id, org_id, full_name, COALESCE(email, ''), COALESCE(phone_number, ''), COALESCE(notes, ''), created_on, updated_on FROM tenants WHERE org_id = $1 ORDER BY full_name`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.OrgID, &t.FullName, &t.Email, &t.PhoneNumber, &t.Notes, &t.CreatedOn, &t.UpdatedOn); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}
