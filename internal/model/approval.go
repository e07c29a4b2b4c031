package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApprovalStatus represents the decision state of an approval request.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "Pending"
	ApprovalStatusApproved ApprovalStatus = "Approved"
	ApprovalStatusRejected ApprovalStatus = "Rejected"
)

// Approval is an employee request routed to a specific admin. The payload is
// an opaque JSON blob interpreted by feature-specific UI, never by this layer.
// Status leaves Pending at most once and never returns.
type Approval struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	EmployeeID uint            `json:"employee_id" gorm:"not null;index"`
	AssignedTo uint            `json:"assigned_to" gorm:"not null;index"`
	Type       string          `json:"type" gorm:"size:100;not null"`
	Payload    json.RawMessage `json:"payload" gorm:"type:json;not null"`
	Status     ApprovalStatus  `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`

	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`

	// Relations
	Employee User  `json:"-" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Approver *User `json:"-" gorm:"foreignKey:ApprovedBy;constraint:OnDelete:SET NULL"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Approval) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
