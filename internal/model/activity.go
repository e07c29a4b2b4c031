package model

import "time"

// ActivityLog is an append-only audit entry written on every mutating action.
// Admin may bulk-clear the log; individual entries are never edited.
type ActivityLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserName  string    `json:"user" gorm:"size:255;not null"`
	Action    string    `json:"action" gorm:"size:512;not null"`
	TaskID    *uint     `json:"task_id,omitempty" gorm:"index"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}
