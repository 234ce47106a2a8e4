package postgres

import (
	"context"
	"time"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

type membershipRepository struct {
	db DBTX
}

func NewMembershipRepository(db DBTX) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Add(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO memberships (user_id, org_id, role, joined_on) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, m.UserID, m.OrgID, m.Role, time.Now())
	if err != nil {
		return wrapConflict(err, "add membership")
	}
	return nil
}

func (r *membershipRepository) Get(ctx context.Context, userID, orgID int32) (*domain.Membership, error) {
	m := &domain.Membership{}
	query := `SELECT user_id, org_id, role, joined_on FROM memberships WHERE user_id = $1 AND org_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, orgID).Scan(&m.UserID, &m.OrgID, &m.Role, &m.JoinedOn)
	if err != nil {
		return nil, wrapNotFound(err, "membership")
	}
	return m, nil
}

func (r *membershipRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.Membership, error) {
	query := `SELECT user_id, org_id, role, joined_on FROM memberships WHERE org_id = $1 ORDER BY joined_on`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.UserID, &m.OrgID, &m.Role, &m.JoinedOn); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *membershipRepository) UpdateRole(ctx context.Context, userID, orgID int32, role domain.MembershipRole) error {
	query := `UPDATE memberships SET role=$1 WHERE user_id=$2 AND org_id=$3`
	_, err := r.db.ExecContext(ctx, query, role, userID, orgID)
	return err
}

func (r *membershipRepository) Remove(ctx context.Context, userID, orgID int32) error {
	query := `DELETE FROM memberships WHERE user_id=$1 AND org_id=$2`
	_, err := r.db.ExecContext(ctx, query, userID, orgID)
	return err
}
