package model

import "time"

// Day type classification for a presence record.
const (
	DayTypeFull = "FULL"
	DayTypeHalf = "HALF"
)

// AttendanceStatusPresent is the status written at check-in.
const AttendanceStatusPresent = "Present"

// Attendance is one presence record per (user, office-local calendar day).
// The composite unique index is the authority for that invariant: concurrent
// duplicate check-ins lose at the database even if both pass the existence
// check. Date and the clock fields are office-local wall-clock strings so that
// lateness rules are independent of the server time zone.
type Attendance struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	UserID       uint    `json:"user_id" gorm:"not null;uniqueIndex:idx_attendance_user_date"`
	Date         string  `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_user_date"` // YYYY-MM-DD
	CheckInTime  string  `json:"check_in_time" gorm:"size:8;not null"`                              // HH:MM:SS
	CheckOutTime *string `json:"check_out_time" gorm:"size:8"`
	Latitude     float64 `json:"latitude" gorm:"not null"`
	Longitude    float64 `json:"longitude" gorm:"not null"`
	Status       string  `json:"status" gorm:"size:20;not null"`
	DayType      string  `json:"day_type" gorm:"size:4;not null"`
	LateComment  *string `json:"late_comment,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
