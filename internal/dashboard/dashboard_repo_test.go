package dashboard_test

import (
	"context"
	"testing"

	"go-hrsuit/internal/dashboard"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (dashboard.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return dashboard.NewRepository(db), mock
}

func TestRepository_CountEmployees(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE employees\.is_deleted = \$1$`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE employees\.is_deleted = \$1 AND employees\.is_blocked = \$2`).
		WithArgs(false, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	active, blocked, err := repo.CountEmployees(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(9), active)
	assert.Equal(t, int64(2), blocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountLeavesByStatus_FillsMissingStatuses(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery(`SELECT status, count\(\*\) AS total FROM "leaves" GROUP BY "?status"?`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}).
			AddRow("pending", 3).
			AddRow("approved", 1))

	counts, err := repo.CountLeavesByStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"pending": 3, "approved": 1, "rejected": 0, "cancelled": 0}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
