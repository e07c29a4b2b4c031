package model

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// ValidTaskStatus reports whether s is one of the allowed task statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task represents a unit of work assigned to an employee. AssignedTo becomes
// NULL when the assignee is deleted.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	AssignedTo  *uint      `json:"assigned_to" gorm:"index"`
	DueDate     *time.Time `json:"due_date,omitempty" gorm:"type:date"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	// UpdatedByRole records whether the last mutation came from the admin or
	// the assignee; admin updates count toward the employee's unread badge.
	UpdatedByRole string    `json:"updated_by_role" gorm:"size:20"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Assignee *User `json:"-" gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL"`
}
