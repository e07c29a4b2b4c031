package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"officetrack/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return gormDB, mock
}

func TestAttendanceRepository_SetCheckOut(t *testing.T) {
	t.Run("first checkout updates one row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAttendanceRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(
			"UPDATE `attendances` SET `check_out_time`=? WHERE user_id = ? AND date = ? AND check_out_time IS NULL")).
			WithArgs("17:30:00", 7, "2026-03-02").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rows, err := repo.SetCheckOut(context.Background(), 7, "2026-03-02", "17:30:00")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second checkout matches no rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAttendanceRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(
			"UPDATE `attendances` SET `check_out_time`=? WHERE user_id = ? AND date = ? AND check_out_time IS NULL")).
			WithArgs("18:00:00", 7, "2026-03-02").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		rows, err := repo.SetCheckOut(context.Background(), 7, "2026-03-02", "18:00:00")

		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAttendanceRepository_FindByUserAndDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAttendanceRepository(db)

	columns := []string{"id", "user_id", "date", "check_in_time", "status", "day_type"}
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `attendances` WHERE user_id = ? AND date = ? ORDER BY `attendances`.`id` LIMIT ?")).
		WithArgs(7, "2026-03-02", 1).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, 7, "2026-03-02", "09:10:00", model.AttendanceStatusPresent, model.DayTypeFull))

	record, err := repo.FindByUserAndDate(context.Background(), 7, "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, "09:10:00", record.CheckInTime)
	assert.Equal(t, model.DayTypeFull, record.DayType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_FindByUserAndDate_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `attendances`").
		WithArgs(7, "2026-03-03", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByUserAndDate(context.Background(), 7, "2026-03-03")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
