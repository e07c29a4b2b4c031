package repository

import (
	"context"

	"gorm.io/gorm"

	"officetrack/internal/model"
)

// ActivityRepository defines activity log persistence operations.
type ActivityRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error)
	// ListForEmployee returns the latest entries touching the employee's own
	// tasks or written by the admin.
	ListForEmployee(ctx context.Context, userID uint, limit int) ([]model.ActivityLog, error)
	Clear(ctx context.Context) error
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository builds a GORM-backed repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *activityRepository) ListForEmployee(ctx context.Context, userID uint, limit int) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	err := r.db.WithContext(ctx).
		Where("task_id IN (?) OR user_name = ?",
			r.db.Model(&model.Task{}).Select("id").Where("assigned_to = ?", userID),
			"Admin").
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *activityRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.ActivityLog{}).Error
}
