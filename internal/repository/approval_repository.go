package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"officetrack/internal/model"
)

// ApproverQueueRow is the admin-side projection joined with the submitter name.
type ApproverQueueRow struct {
	ID           uuid.UUID            `json:"id"`
	Type         string               `json:"type"`
	Status       model.ApprovalStatus `json:"status"`
	Payload      json.RawMessage      `json:"payload"`
	CreatedAt    time.Time            `json:"created_at"`
	EmployeeName string               `json:"employee"`
}

// EmployeeApprovalRow is the employee-side projection joined with the decider name.
type EmployeeApprovalRow struct {
	ID              uuid.UUID            `json:"id"`
	Type            string               `json:"type"`
	Status          model.ApprovalStatus `json:"status"`
	Payload         json.RawMessage      `json:"payload"`
	CreatedAt       time.Time            `json:"created_at"`
	ApprovedAt      *time.Time           `json:"approved_at"`
	RejectionReason *string              `json:"rejection_reason"`
	ApproverName    *string              `json:"approver_name"`
}

// ApprovalRepository defines approval persistence operations.
type ApprovalRepository interface {
	Create(ctx context.Context, approval *model.Approval) error
	Update(ctx context.Context, approval *model.Approval) error
	// FindPendingForApprover returns the approval only when it is still
	// Pending and assigned to this approver; anything else is not found.
	FindPendingForApprover(ctx context.Context, id uuid.UUID, approverID uint) (*model.Approval, error)
	ListForApprover(ctx context.Context, approverID uint, status model.ApprovalStatus) ([]ApproverQueueRow, error)
	ListForEmployee(ctx context.Context, employeeID uint, typeFilter string) ([]EmployeeApprovalRow, error)
	ExistsDecidedAfter(ctx context.Context, employeeID uint, since time.Time) (bool, error)
}

type approvalRepository struct {
	db *gorm.DB
}

// NewApprovalRepository builds a GORM-backed repository.
func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, approval *model.Approval) error {
	return r.db.WithContext(ctx).Create(approval).Error
}

func (r *approvalRepository) Update(ctx context.Context, approval *model.Approval) error {
	return r.db.WithContext(ctx).Save(approval).Error
}

func (r *approvalRepository) FindPendingForApprover(ctx context.Context, id uuid.UUID, approverID uint) (*model.Approval, error) {
	var approval model.Approval
	err := r.db.WithContext(ctx).
		Where("id = ? AND assigned_to = ? AND status = ?", id, approverID, model.ApprovalStatusPending).
		First(&approval).Error
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepository) ListForApprover(ctx context.Context, approverID uint, status model.ApprovalStatus) ([]ApproverQueueRow, error) {
	var rows []ApproverQueueRow
	err := r.db.WithContext(ctx).Model(&model.Approval{}).
		Select("approvals.id, approvals.type, approvals.status, approvals.payload, approvals.created_at, users.name AS employee_name").
		Joins("JOIN users ON approvals.employee_id = users.id").
		Where("approvals.assigned_to = ? AND approvals.status = ?", approverID, status).
		Order("approvals.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *approvalRepository) ListForEmployee(ctx context.Context, employeeID uint, typeFilter string) ([]EmployeeApprovalRow, error) {
	q := r.db.WithContext(ctx).Model(&model.Approval{}).
		Select("approvals.id, approvals.type, approvals.status, approvals.payload, approvals.created_at, approvals.approved_at, approvals.rejection_reason, users.name AS approver_name").
		Joins("LEFT JOIN users ON approvals.approved_by = users.id").
		Where("approvals.employee_id = ?", employeeID)
	if typeFilter != "" {
		q = q.Where("approvals.type = ?", typeFilter)
	}

	var rows []EmployeeApprovalRow
	if err := q.Order("approvals.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *approvalRepository) ExistsDecidedAfter(ctx context.Context, employeeID uint, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Approval{}).
		Where("employee_id = ? AND approved_at IS NOT NULL AND approved_at > ?", employeeID, since).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
