package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
)

func TestEmployeeService_Register(t *testing.T) {
	tests := []struct {
		name      string
		userName  string
		email     string
		password  string
		setupMock func(*MockUserRepository, *MockActivityService)
		wantErr   error
	}{
		{
			name:     "successful registration",
			userName: "Asha Patil",
			email:    "asha@office.local",
			password: "secret123",
			setupMock: func(ur *MockUserRepository, act *MockActivityService) {
				ur.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				act.On("Log", mock.Anything, "Admin", "Added employee 'Asha Patil'", mock.Anything).Return()
			},
		},
		{
			name:      "missing fields",
			userName:  "",
			email:     "asha@office.local",
			password:  "secret123",
			setupMock: func(ur *MockUserRepository, act *MockActivityService) {},
			wantErr:   apperrors.ErrInvalidInput,
		},
		{
			name:     "duplicate email surfaces as conflict",
			userName: "Asha Patil",
			email:    "asha@office.local",
			password: "secret123",
			setupMock: func(ur *MockUserRepository, act *MockActivityService) {
				ur.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			wantErr: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			activity := new(MockActivityService)
			tt.setupMock(userRepo, activity)

			svc := NewEmployeeService(userRepo, new(MockTaskRepository), activity)
			user, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.RoleEmployee, user.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestEmployeeService_Update(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		setupMock func(*MockUserRepository, *MockActivityService)
		wantErr   error
	}{
		{
			name: "role defaults to employee",
			role: "",
			setupMock: func(ur *MockUserRepository, act *MockActivityService) {
				ur.On("EmailInUseByOther", mock.Anything, "asha@office.local", uint(3)).Return(false, nil)
				ur.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Role: model.RoleEmployee}, nil)
				ur.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				act.On("Log", mock.Anything, "Admin", "Updated employee 'Asha Patil'", mock.Anything).Return()
			},
		},
		{
			name:      "unknown role is rejected",
			role:      "manager",
			setupMock: func(ur *MockUserRepository, act *MockActivityService) {},
			wantErr:   apperrors.ErrInvalidInput,
		},
		{
			name: "email held by another account",
			role: model.RoleEmployee,
			setupMock: func(ur *MockUserRepository, act *MockActivityService) {
				ur.On("EmailInUseByOther", mock.Anything, "asha@office.local", uint(3)).Return(true, nil)
			},
			wantErr: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			activity := new(MockActivityService)
			tt.setupMock(userRepo, activity)

			svc := NewEmployeeService(userRepo, new(MockTaskRepository), activity)
			err := svc.Update(context.Background(), 3, "Asha Patil", "asha@office.local", tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestEmployeeService_Delete_UnassignsTasksBeforeUserRow(t *testing.T) {
	userRepo := new(MockUserRepository)
	taskRepo := new(MockTaskRepository)
	activity := new(MockActivityService)

	var deleted bool
	userRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Role: model.RoleEmployee}, nil)
	userRepo.On("Delete", mock.Anything, uint(3)).Run(func(mock.Arguments) {
		deleted = true
	}).Return(nil)
	// The assignee foreign key rejects the user delete while tasks still
	// point at the row, so unassignment has to come first.
	taskRepo.On("UnassignUser", mock.Anything, uint(3)).Run(func(mock.Arguments) {
		assert.False(t, deleted, "tasks must be unassigned before the user row is deleted")
	}).Return(nil)
	activity.On("Log", mock.Anything, "Admin", "Deleted employee 3", mock.Anything).Return()

	svc := NewEmployeeService(userRepo, taskRepo, activity)

	assert.NoError(t, svc.Delete(context.Background(), 3))
	taskRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}
