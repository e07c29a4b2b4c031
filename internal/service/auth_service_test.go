package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"officetrack/internal/auth"
	"officetrack/internal/model"
)

// MockSessionStore is a mock implementation of auth.SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) BlacklistSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) IsSessionBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	employee := &model.User{
		ID:           3,
		Name:         "Asha Patil",
		Email:        "asha@office.local",
		PasswordHash: string(hashed),
		Role:         model.RoleEmployee,
	}

	tests := []struct {
		name      string
		email     string
		password  string
		role      string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:     "successful login",
			email:    "asha@office.local",
			password: "password123",
			role:     model.RoleEmployee,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "asha@office.local").Return(employee, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@office.local",
			password: "password123",
			role:     model.RoleEmployee,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@office.local").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "asha@office.local",
			password: "nope",
			role:     model.RoleEmployee,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "asha@office.local").Return(employee, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "role mismatch looks like bad credentials",
			email:    "asha@office.local",
			password: "password123",
			role:     model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "asha@office.local").Return(employee, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService, new(MockSessionStore))

			token, expiresAt, user, err := svc.Login(context.Background(), tt.email, tt.password, tt.role, false)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, employee.ID, user.ID)

				// Default sessions get the short expiry, not remember-me.
				assert.WithinDuration(t, time.Now().Add(auth.SessionExpiry), expiresAt, time.Minute)

				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, employee.ID, claims.UserID)
				assert.Equal(t, model.RoleEmployee, claims.Role)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_RememberMe(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "asha@office.local").Return(&model.User{
		ID: 3, Email: "asha@office.local", PasswordHash: string(hashed), Role: model.RoleEmployee,
	}, nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockSessionStore))
	_, expiresAt, _, err := svc.Login(context.Background(), "asha@office.local", "password123", model.RoleEmployee, true)

	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(auth.RememberMeExpiry), expiresAt, time.Minute)
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, token, _, err := jwtService.GenerateSessionToken(3, model.RoleEmployee, "Asha Patil", "asha@office.local", false)
	assert.NoError(t, err)

	store := new(MockSessionStore)
	store.On("BlacklistSession", mock.Anything, tokenID, mock.AnythingOfType("time.Duration")).Return(nil)

	svc := NewAuthService(new(MockUserRepository), jwtService, store)

	assert.NoError(t, svc.Logout(context.Background(), token))
	store.AssertExpectations(t)

	err = svc.Logout(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
