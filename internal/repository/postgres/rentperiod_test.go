package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository/postgres"
)

var periodCols = []string{"id", "org_id", "rent_config_id", "period_start", "period_end", "due_date", "status", "days_overdue", "created_on", "updated_on"}

func periodRow(id int32) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(periodCols).
		AddRow(id, 7, 10, now, now, now, "DUE", 0, now, now)
}

func TestRentPeriodRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewRentPeriodRepository(db)
	ctx := context.Background()

	period := &domain.RentPeriod{
		OrgID: 7, RentConfigID: 10,
		PeriodStart: time.Now(), PeriodEnd: time.Now(), DueDate: time.Now(),
		Status: domain.PeriodStatusDue,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rent_periods").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))

		err := repo.Create(ctx, period)
		assert.NoError(t, err)
		assert.Equal(t, int32(101), period.ID)
	})

	t.Run("DuplicateStartIsConflict", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rent_periods").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, period)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestRentPeriodRepository_GetByIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewRentPeriodRepository(db)
	ctx := context.Background()

	// The row lock is the whole point of this query.
	mock.ExpectQuery("SELECT (.+) FROM rent_periods WHERE id = \\$1 FOR UPDATE").
		WithArgs(int32(55)).
		WillReturnRows(periodRow(55))

	period, err := repo.GetByIDForUpdate(ctx, 55)
	assert.NoError(t, err)
	assert.Equal(t, int32(55), period.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentPeriodRepository_GetLatestByConfig(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewRentPeriodRepository(db)
	ctx := context.Background()

	t.Run("ReturnsLatest", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rent_periods WHERE rent_config_id = \\$1 ORDER BY period_start DESC LIMIT 1").
			WithArgs(int32(10)).
			WillReturnRows(periodRow(55))

		period, err := repo.GetLatestByConfig(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, int32(55), period.ID)
	})

	t.Run("NoPriorPeriodIsNotAnError", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rent_periods WHERE rent_config_id = \\$1").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows(periodCols))

		period, err := repo.GetLatestByConfig(ctx, 10)
		assert.NoError(t, err)
		assert.Nil(t, period)
	})
}

func TestRentPeriodRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewRentPeriodRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE rent_periods SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 55, domain.PeriodStatusOverdue, 9)
		assert.NoError(t, err)
	})

	t.Run("MissingRowIsNotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE rent_periods SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 55, domain.PeriodStatusOverdue, 9)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
