package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
	"officetrack/internal/repository"
)

// Approval decision actions.
const (
	ApprovalActionApprove = "approve"
	ApprovalActionReject  = "reject"
)

// ApprovalService implements the submit/approve/reject workflow. Payloads are
// opaque at this layer; feature-specific UI defines per-type schemas.
type ApprovalService interface {
	Submit(ctx context.Context, employeeID uint, approvalType string, payload json.RawMessage, assignedTo uint) (*model.Approval, error)
	ListForApprover(ctx context.Context, approverID uint, status string) ([]repository.ApproverQueueRow, error)
	ListForEmployee(ctx context.Context, employeeID uint, typeFilter string) ([]repository.EmployeeApprovalRow, error)
	// Decide transitions a Pending approval exactly once. Only the assigned
	// approver may decide; anyone else sees NotFound.
	Decide(ctx context.Context, approverID uint, approvalID uuid.UUID, action, reason string) (*model.Approval, error)
}

type approvalService struct {
	approvalRepo repository.ApprovalRepository
	userRepo     repository.UserRepository
	activity     ActivityService
	loc          *time.Location
	now          func() time.Time
}

// NewApprovalService creates a new approval service.
func NewApprovalService(
	approvalRepo repository.ApprovalRepository,
	userRepo repository.UserRepository,
	activity ActivityService,
	loc *time.Location,
) ApprovalService {
	return &approvalService{
		approvalRepo: approvalRepo,
		userRepo:     userRepo,
		activity:     activity,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *approvalService) Submit(ctx context.Context, employeeID uint, approvalType string, payload json.RawMessage, assignedTo uint) (*model.Approval, error) {
	if approvalType == "" || len(payload) == 0 || assignedTo == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	approval := &model.Approval{
		EmployeeID: employeeID,
		AssignedTo: assignedTo,
		Type:       approvalType,
		Payload:    payload,
		Status:     model.ApprovalStatusPending,
		CreatedAt:  s.now().In(s.loc),
	}
	if err := s.approvalRepo.Create(ctx, approval); err != nil {
		return nil, fmt.Errorf("create approval: %w", err)
	}
	return approval, nil
}

func (s *approvalService) ListForApprover(ctx context.Context, approverID uint, status string) ([]repository.ApproverQueueRow, error) {
	if status == "" {
		status = string(model.ApprovalStatusPending)
	}
	switch model.ApprovalStatus(status) {
	case model.ApprovalStatusPending, model.ApprovalStatusApproved, model.ApprovalStatusRejected:
	default:
		return nil, apperrors.ErrInvalidInput
	}
	return s.approvalRepo.ListForApprover(ctx, approverID, model.ApprovalStatus(status))
}

func (s *approvalService) ListForEmployee(ctx context.Context, employeeID uint, typeFilter string) ([]repository.EmployeeApprovalRow, error) {
	return s.approvalRepo.ListForEmployee(ctx, employeeID, typeFilter)
}

func (s *approvalService) Decide(ctx context.Context, approverID uint, approvalID uuid.UUID, action, reason string) (*model.Approval, error) {
	if action != ApprovalActionApprove && action != ApprovalActionReject {
		return nil, apperrors.ErrInvalidInput
	}

	// Scoping the lookup to (id, approver, Pending) makes cross-approver
	// decisions and double decisions indistinguishable from a missing record.
	approval, err := s.approvalRepo.FindPendingForApprover(ctx, approvalID, approverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	decidedAt := s.now().In(s.loc)
	approval.ApprovedBy = &approverID
	approval.ApprovedAt = &decidedAt
	if action == ApprovalActionApprove {
		approval.Status = model.ApprovalStatusApproved
		approval.RejectionReason = nil
	} else {
		approval.Status = model.ApprovalStatusRejected
		if reason != "" {
			approval.RejectionReason = &reason
		}
	}

	if err := s.approvalRepo.Update(ctx, approval); err != nil {
		return nil, fmt.Errorf("update approval: %w", err)
	}

	employeeName := "employee"
	if employee, err := s.userRepo.FindByID(ctx, approval.EmployeeID); err == nil {
		employeeName = employee.Name
	}
	s.activity.Log(ctx, "Admin", fmt.Sprintf("%s %s's approval", approval.Status, employeeName), nil)

	return approval, nil
}
