package lots

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(gormDB), mock
}

func TestReserveSpotGuardedByCapacity(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "parking_lots" SET "reserved"=reserved \+ 1 WHERE id = \$1 AND reserved < capacity`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReserveSpot(context.Background(), 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSpotFullLot(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "parking_lots" SET "reserved"=reserved \+ 1 WHERE id = \$1 AND reserved < capacity`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Zero affected rows triggers a lookup to tell "full" apart from "missing".
	mock.ExpectQuery(`SELECT (.+) FROM "parking_lots" WHERE id = \$1`).
		WithArgs(int64(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "reserved", "tariff"}).
			AddRow(1, "Central Garage", 10, 10, "5"))

	err := repo.ReserveSpot(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLotFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSpotUnknownLot(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "parking_lots" SET "reserved"=reserved \+ 1 WHERE id = \$1 AND reserved < capacity`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT (.+) FROM "parking_lots" WHERE id = \$1`).
		WithArgs(int64(99), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.ReserveSpot(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseSpotGuardedAtZero(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "parking_lots" SET "reserved"=reserved - 1 WHERE id = \$1 AND reserved > 0`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT (.+) FROM "parking_lots" WHERE id = \$1`).
		WithArgs(int64(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "reserved", "tariff"}).
			AddRow(1, "Central Garage", 10, 0, "5"))

	err := repo.ReleaseSpot(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoReservations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "parking_lots" WHERE id = \$1`).
		WithArgs(int64(42), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
