package repository

import (
	"context"

	"gorm.io/gorm"

	"officetrack/internal/model"
)

// AttendanceRow is the admin report projection joined with the employee name.
type AttendanceRow struct {
	Name         string  `json:"name"`
	Date         string  `json:"date"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	DayType      string  `json:"day_type"`
	LateComment  *string `json:"late_comment"`
}

// AttendanceRepository defines attendance persistence operations.
type AttendanceRepository interface {
	// Create inserts a presence record. The (user_id, date) unique index makes
	// the database the authority on per-day uniqueness; callers translate
	// gorm.ErrDuplicatedKey into the already-marked outcome.
	Create(ctx context.Context, record *model.Attendance) error
	FindByUserAndDate(ctx context.Context, userID uint, date string) (*model.Attendance, error)
	// SetCheckOut writes the check-out time once; the IS NULL guard makes a
	// second attempt a no-op reported through the returned row count.
	SetCheckOut(ctx context.Context, userID uint, date, checkOutTime string) (int64, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Attendance, error)
	ListAllWithNames(ctx context.Context) ([]AttendanceRow, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository builds a GORM-backed repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, record *model.Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepository) FindByUserAndDate(ctx context.Context, userID uint, date string) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) SetCheckOut(ctx context.Context, userID uint, date, checkOutTime string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("user_id = ? AND date = ? AND check_out_time IS NULL", userID, date).
		Update("check_out_time", checkOutTime)
	return res.RowsAffected, res.Error
}

func (r *attendanceRepository) ListByUser(ctx context.Context, userID uint) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) ListAllWithNames(ctx context.Context) ([]AttendanceRow, error) {
	var rows []AttendanceRow
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Select("users.name AS name, attendances.date, attendances.check_in_time, attendances.check_out_time, attendances.day_type, attendances.late_comment").
		Joins("JOIN users ON users.id = attendances.user_id").
		Order("attendances.date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
