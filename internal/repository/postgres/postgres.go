package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories use, so each
// repository works both standalone and inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	*repository.Registry
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, Registry: NewRegistry(db)}
}

// NewRegistry builds the repository set over any database handle.
func NewRegistry(db DBTX) *repository.Registry {
	return &repository.Registry{
		Users:       NewUserRepository(db),
		Orgs:        NewOrganizationRepository(db),
		Memberships: NewMembershipRepository(db),
		Buildings:   NewBuildingRepository(db),
		Units:       NewUnitRepository(db),
		Tenants:     NewTenantRepository(db),
		Occupancies: NewOccupancyRepository(db),
		RentConfigs: NewRentConfigRepository(db),
		RentPeriods: NewRentPeriodRepository(db),
		Payments:    NewPaymentRepository(db),
		AuditLogs:   NewAuditLogRepository(db),
	}
}

// WithinTx runs fn against a transactional registry. Commit on nil, rollback
// otherwise. Row locks taken through the registry are held until here.
func (s *Store) WithinTx(ctx context.Context, fn func(r *repository.Registry) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(NewRegistry(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// wrapNotFound maps sql.ErrNoRows onto the domain taxonomy.
func wrapNotFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// wrapConflict maps a Postgres unique violation onto domain.ErrConflict.
func wrapConflict(err error, what string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%s: %w", what, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}
