package model

import "time"

// Role values for User.Role.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Feed sections tracked by the per-user seen markers.
const (
	SectionAnnouncements = "announcements"
	SectionFiles         = "files"
	SectionTasks         = "tasks"
	SectionApprovals     = "approvals"
)

// User represents an admin or employee account.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:255;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string `json:"role" gorm:"size:20;not null;index"`

	// WhatsApp task-assignment notifications are sent only when the employee
	// opted in and left a number.
	Whatsapp      string `json:"whatsapp,omitempty" gorm:"size:20"`
	WhatsappOptIn bool   `json:"whatsapp_opt_in" gorm:"default:false"`

	// Per-feed "last seen" markers for unread badge computation. Nil means
	// never seen (treated as epoch).
	AnnouncementsSeenAt *time.Time `json:"-"`
	FilesSeenAt         *time.Time `json:"-"`
	TasksSeenAt         *time.Time `json:"-"`
	ApprovalsSeenAt     *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
