package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
)

func TestApprovalService_Submit(t *testing.T) {
	payload := json.RawMessage(`{"from":"2026-03-05","to":"2026-03-06"}`)

	tests := []struct {
		name         string
		approvalType string
		payload      json.RawMessage
		assignedTo   uint
		setupMock    func(*MockApprovalRepository)
		wantErr      error
	}{
		{
			name:         "successful submission",
			approvalType: "leave",
			payload:      payload,
			assignedTo:   1,
			setupMock: func(m *MockApprovalRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Approval")).Return(nil)
			},
		},
		{
			name:         "missing type",
			approvalType: "",
			payload:      payload,
			assignedTo:   1,
			setupMock:    func(m *MockApprovalRepository) {},
			wantErr:      apperrors.ErrInvalidInput,
		},
		{
			name:         "empty payload",
			approvalType: "leave",
			payload:      nil,
			assignedTo:   1,
			setupMock:    func(m *MockApprovalRepository) {},
			wantErr:      apperrors.ErrInvalidInput,
		},
		{
			name:         "no approver named",
			approvalType: "leave",
			payload:      payload,
			assignedTo:   0,
			setupMock:    func(m *MockApprovalRepository) {},
			wantErr:      apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockApprovalRepository)
			tt.setupMock(mockRepo)

			svc := NewApprovalService(mockRepo, new(MockUserRepository), new(MockActivityService), testLoc)
			approval, err := svc.Submit(context.Background(), 3, tt.approvalType, tt.payload, tt.assignedTo)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, approval)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.ApprovalStatusPending, approval.Status)
				assert.Equal(t, uint(3), approval.EmployeeID)
				assert.Equal(t, uint(1), approval.AssignedTo)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestApprovalService_ListForApprover_ValidatesStatus(t *testing.T) {
	mockRepo := new(MockApprovalRepository)
	svc := NewApprovalService(mockRepo, new(MockUserRepository), new(MockActivityService), testLoc)

	_, err := svc.ListForApprover(context.Background(), 1, "Decided")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	// Empty status defaults to Pending.
	mockRepo.On("ListForApprover", mock.Anything, uint(1), model.ApprovalStatusPending).Return(nil, nil)
	_, err = svc.ListForApprover(context.Background(), 1, "")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestApprovalService_Decide(t *testing.T) {
	approvalID := uuid.New()

	pending := func() *model.Approval {
		return &model.Approval{
			ID:         approvalID,
			EmployeeID: 3,
			AssignedTo: 1,
			Type:       "leave",
			Status:     model.ApprovalStatusPending,
		}
	}

	tests := []struct {
		name       string
		action     string
		reason     string
		setupMock  func(*MockApprovalRepository, *MockUserRepository, *MockActivityService)
		wantErr    error
		wantStatus model.ApprovalStatus
		wantReason *string
	}{
		{
			name:   "approve",
			action: ApprovalActionApprove,
			setupMock: func(ar *MockApprovalRepository, ur *MockUserRepository, act *MockActivityService) {
				ar.On("FindPendingForApprover", mock.Anything, approvalID, uint(1)).Return(pending(), nil)
				ar.On("Update", mock.Anything, mock.AnythingOfType("*model.Approval")).Return(nil)
				ur.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Name: "Asha Patil"}, nil)
				act.On("Log", mock.Anything, "Admin", "Approved Asha Patil's approval", mock.Anything).Return()
			},
			wantStatus: model.ApprovalStatusApproved,
		},
		{
			name:   "reject with reason",
			action: ApprovalActionReject,
			reason: "short staffed that week",
			setupMock: func(ar *MockApprovalRepository, ur *MockUserRepository, act *MockActivityService) {
				ar.On("FindPendingForApprover", mock.Anything, approvalID, uint(1)).Return(pending(), nil)
				ar.On("Update", mock.Anything, mock.AnythingOfType("*model.Approval")).Return(nil)
				ur.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Name: "Asha Patil"}, nil)
				act.On("Log", mock.Anything, "Admin", "Rejected Asha Patil's approval", mock.Anything).Return()
			},
			wantStatus: model.ApprovalStatusRejected,
			wantReason: strPtr("short staffed that week"),
		},
		{
			name:   "reject without reason stores no reason",
			action: ApprovalActionReject,
			setupMock: func(ar *MockApprovalRepository, ur *MockUserRepository, act *MockActivityService) {
				ar.On("FindPendingForApprover", mock.Anything, approvalID, uint(1)).Return(pending(), nil)
				ar.On("Update", mock.Anything, mock.AnythingOfType("*model.Approval")).Return(nil)
				ur.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Name: "Asha Patil"}, nil)
				act.On("Log", mock.Anything, "Admin", mock.Anything, mock.Anything).Return()
			},
			wantStatus: model.ApprovalStatusRejected,
		},
		{
			name:      "invalid action",
			action:    "defer",
			setupMock: func(ar *MockApprovalRepository, ur *MockUserRepository, act *MockActivityService) {},
			wantErr:   apperrors.ErrInvalidInput,
		},
		{
			name:   "wrong approver sees not found",
			action: ApprovalActionApprove,
			setupMock: func(ar *MockApprovalRepository, ur *MockUserRepository, act *MockActivityService) {
				ar.On("FindPendingForApprover", mock.Anything, approvalID, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approvalRepo := new(MockApprovalRepository)
			userRepo := new(MockUserRepository)
			activity := new(MockActivityService)
			tt.setupMock(approvalRepo, userRepo, activity)

			svc := NewApprovalService(approvalRepo, userRepo, activity, testLoc)
			approval, err := svc.Decide(context.Background(), 1, approvalID, tt.action, tt.reason)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, approval)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, approval.Status)
				assert.Equal(t, uint(1), *approval.ApprovedBy)
				assert.NotNil(t, approval.ApprovedAt)
				if tt.wantReason != nil {
					assert.Equal(t, *tt.wantReason, *approval.RejectionReason)
				} else {
					assert.Nil(t, approval.RejectionReason)
				}
			}
			approvalRepo.AssertExpectations(t)
			activity.AssertExpectations(t)
		})
	}
}

func strPtr(s string) *string { return &s }
