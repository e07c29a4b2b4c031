package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"officetrack/internal/model"
)

// TaskWithEmployee is the admin list projection joined with the assignee name.
type TaskWithEmployee struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	DueDate      *time.Time       `json:"due_date"`
	Status       model.TaskStatus `json:"status"`
	EmployeeName *string          `json:"employee_name"`
}

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	FindByIDAndAssignee(ctx context.Context, id, userID uint) (*model.Task, error)
	ListAll(ctx context.Context) ([]TaskWithEmployee, error)
	ListByAssignee(ctx context.Context, userID uint) ([]model.Task, error)
	// UnassignUser nulls the assignee on all tasks held by a deleted user.
	UnassignUser(ctx context.Context, userID uint) error
	CountByStatus(ctx context.Context, userID uint, status model.TaskStatus) (int64, error)
	// CountOverdue counts tasks not completed with a due date strictly before today.
	CountOverdue(ctx context.Context, userID uint, today time.Time) (int64, error)
	// ExistsNewForAssignee reports whether any task assigned to userID was
	// created after since, or updated by an admin after since.
	ExistsNewForAssignee(ctx context.Context, userID uint, since time.Time) (bool, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindByIDAndAssignee(ctx context.Context, id, userID uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND assigned_to = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListAll(ctx context.Context) ([]TaskWithEmployee, error) {
	var rows []TaskWithEmployee
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("tasks.id, tasks.title, tasks.description, tasks.due_date, tasks.status, users.name AS employee_name").
		Joins("LEFT JOIN users ON tasks.assigned_to = users.id").
		Order("tasks.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *taskRepository) ListByAssignee(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("assigned_to = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) UnassignUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_to = ?", userID).
		Update("assigned_to", nil).Error
}

func (r *taskRepository) CountByStatus(ctx context.Context, userID uint, status model.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_to = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

func (r *taskRepository) CountOverdue(ctx context.Context, userID uint, today time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_to = ? AND status != ? AND due_date IS NOT NULL AND due_date < ?",
			userID, model.TaskStatusCompleted, today).
		Count(&count).Error
	return count, err
}

func (r *taskRepository) ExistsNewForAssignee(ctx context.Context, userID uint, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_to = ? AND (created_at > ? OR (updated_at > ? AND updated_by_role = ?))",
			userID, since, since, model.RoleAdmin).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
