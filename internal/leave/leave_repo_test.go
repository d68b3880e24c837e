package leave_test

import (
	"context"
	"testing"
	"time"

	"go-hrsuit/internal/events"
	"go-hrsuit/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

var leaveColumns = []string{
	"id", "user_id", "start_date", "end_date", "leave_type", "reason", "default_days",
	"status", "is_approved", "created_at", "updated_at",
	"owner_first_name", "owner_last_name", "owner_other_name",
}

func TestRepository_FindByID_JoinsOwner(t *testing.T) {
	db, mock := setupGormDB(t)
	repo := leave.NewRepository(db)
	id := uuid.New()
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT leaves\.\*, employees\.first_name AS owner_first_name, .* FROM "leaves" LEFT JOIN employees ON employees\.user_id = leaves\.user_id WHERE leaves\.id = \$1`).
		WithArgs(id.String(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(leaveColumns).AddRow(
			id.String(), uuid.NewString(), start, start.AddDate(0, 0, 5), "sick", "flu", 30,
			"pending", false, time.Now(), time.Now(),
			"Jane", "Doe", nil,
		))

	l, err := repo.FindByID(context.Background(), id.String())

	require.NoError(t, err)
	assert.Equal(t, id, l.ID)
	assert.Equal(t, leave.StatusPending, l.Status)
	assert.Equal(t, "Jane Doe", l.OwnerName())
	require.NotNil(t, l.Days())
	assert.Equal(t, 5, *l.Days())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	db, mock := setupGormDB(t)
	repo := leave.NewRepository(db)
	id := uuid.NewString()

	mock.ExpectQuery(`FROM "leaves" LEFT JOIN employees`).
		WithArgs(id, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(leaveColumns))

	_, err := repo.FindByID(context.Background(), id)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_StatusAndSearch(t *testing.T) {
	db, mock := setupGormDB(t)
	repo := leave.NewRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "leaves" LEFT JOIN employees ON employees\.user_id = leaves\.user_id WHERE leaves\.status = \$1 AND \(+employees\.first_name ILIKE \$2 OR employees\.last_name ILIKE \$3\)+`).
		WithArgs("pending", "%doe%", "%doe%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`SELECT leaves\.\*, .* FROM "leaves" LEFT JOIN employees .* WHERE leaves\.status = \$1 AND .* ORDER BY leaves\.created_at DESC LIMIT \$4 OFFSET \$5`).
		WithArgs("pending", "%doe%", "%doe%", 10, 10).
		WillReturnRows(sqlmock.NewRows(leaveColumns).AddRow(
			uuid.NewString(), uuid.NewString(), time.Now(), time.Now(), "casual", "", 30,
			"pending", false, time.Now(), time.Now(),
			"John", "Doe", "Ray",
		))

	leaves, total, err := repo.List(context.Background(), leave.ListFilter{
		Status:   leave.StatusPending,
		Q:        "doe",
		Page:     2,
		PageSize: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, leaves, 1)
	assert.Equal(t, "John Doe Ray", leaves[0].OwnerName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ByUser(t *testing.T) {
	db, mock := setupGormDB(t)
	repo := leave.NewRepository(db)
	userID := uuid.NewString()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "leaves" LEFT JOIN employees ON employees\.user_id = leaves\.user_id WHERE leaves\.user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`WHERE leaves\.user_id = \$1 ORDER BY leaves\.created_at DESC LIMIT \$2`).
		WithArgs(userID, 10).
		WillReturnRows(sqlmock.NewRows(leaveColumns))

	leaves, total, err := repo.List(context.Background(), leave.ListFilter{UserID: userID})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, leaves)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_WritesLifecycleColumnsOnly(t *testing.T) {
	db, mock := setupGormDB(t)
	repo := leave.NewRepository(db)
	l := &leave.Leave{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Reason:     "should not be written",
		Status:     leave.StatusApproved,
		IsApproved: true,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leaves" SET "status"=\$1,"is_approved"=\$2,"updated_at"=\$3 WHERE`).
		WithArgs("approved", true, sqlmock.AnyArg(), l.ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), l)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepository_RecordStatusChange(t *testing.T) {
	t.Run("insert ignores duplicate event ids", func(t *testing.T) {
		db, mock := setupGormDB(t)
		repo := leave.NewHistoryRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "leave_audit_logs" .* ON CONFLICT \("event_id"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.RecordStatusChange(context.Background(), events.LeaveStatusChangedEvent{
			EventID:    uuid.NewString(),
			LeaveID:    uuid.NewString(),
			UserID:     uuid.NewString(),
			ActorID:    uuid.NewString(),
			Transition: "approve",
			FromStatus: "pending",
			ToStatus:   "approved",
			OccurredAt: time.Now(),
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects malformed events without touching the db", func(t *testing.T) {
		db, mock := setupGormDB(t)
		repo := leave.NewHistoryRepository(db)

		err := repo.RecordStatusChange(context.Background(), events.LeaveStatusChangedEvent{
			EventID: "evt-1",
			LeaveID: "not-a-uuid",
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHistoryRepository_ListByLeave(t *testing.T) {
	db, mock := setupGormDB(t)
	repo := leave.NewHistoryRepository(db)
	leaveID := uuid.NewString()

	mock.ExpectQuery(`SELECT \* FROM "leave_audit_logs" WHERE leave_id = \$1 ORDER BY occurred_at ASC, created_at ASC`).
		WithArgs(leaveID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "leave_id", "transition", "from_status", "to_status"}).
			AddRow(uuid.NewString(), "e1", leaveID, "apply", "", "pending").
			AddRow(uuid.NewString(), "e2", leaveID, "approve", "pending", "approved"))

	logs, err := repo.ListByLeave(context.Background(), leaveID)

	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "approve", logs[1].Transition)
	assert.NoError(t, mock.ExpectationsWereMet())
}
