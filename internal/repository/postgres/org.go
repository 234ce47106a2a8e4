package postgres

import (
	"context"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type organizationRepository struct {
	db DBTX
}

func NewOrganizationRepository(db DBTX) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	query := `INSERT INTO orgs (slug, name, currency_code, admin_email, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, o.Slug, o.Name, o.CurrencyCode, o.AdminEmail, now, now).Scan(&o.ID)
	if err != nil {
		return wrapConflict(err, "create org")
	}
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, slug, name, currency_code, COALESCE(admin_email, ''), created_on, updated_on FROM orgs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Slug, &o.Name, &o.CurrencyCode, &o.AdminEmail, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, wrapNotFound(err, "org")
	}
	return o, nil
}

func (r *organizationRepository) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, slug, name, currency_code, COALESCE(admin_email, ''), created_on, updated_on FROM orgs WHERE slug = $1`
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&o.ID, &o.Slug, &o.Name, &o.CurrencyCode, &o.AdminEmail, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, wrapNotFound(err, "org")
	}
	return o, nil
}

func (r *organizationRepository) Update(ctx context.Context, o *domain.Organization) error {
	query := `UPDATE orgs SET name=$1, currency_code=$2, admin_email=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, o.Name, o.CurrencyCode, o.AdminEmail, time.Now(), o.ID)
	return err
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT id, slug, name, currency_code, COALESCE(admin_email, ''), created_on, updated_on FROM orgs ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Slug, &o.Name, &o.CurrencyCode, &o.AdminEmail, &o.CreatedOn, &o.UpdatedOn); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}
