package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
	"officetrack/internal/repository"
)

const bcryptCost = 10

// EmployeeService handles account management performed by the admin.
type EmployeeService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	ListEmployees(ctx context.Context) ([]model.User, error)
	ListAdmins(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uint, name, email, role string) error
	// Delete removes the account and leaves their tasks unassigned.
	Delete(ctx context.Context, id uint) error
}

type employeeService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
	activity ActivityService
}

// NewEmployeeService creates a new employee management service.
func NewEmployeeService(userRepo repository.UserRepository, taskRepo repository.TaskRepository, activity ActivityService) EmployeeService {
	return &employeeService{
		userRepo: userRepo,
		taskRepo: taskRepo,
		activity: activity,
	}
}

// Register creates an employee account with a hashed password.
func (s *employeeService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.ErrInvalidInput
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleEmployee,
	}

	// The unique index on email is the authority; no pre-check needed.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.activity.Log(ctx, "Admin", fmt.Sprintf("Added employee '%s'", name), nil)
	return user, nil
}

func (s *employeeService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *employeeService) ListEmployees(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListByRole(ctx, model.RoleEmployee)
}

func (s *employeeService) ListAdmins(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListByRole(ctx, model.RoleAdmin)
}

func (s *employeeService) Update(ctx context.Context, id uint, name, email, role string) error {
	if name == "" || email == "" {
		return apperrors.ErrInvalidInput
	}
	if role == "" {
		role = model.RoleEmployee
	}
	if role != model.RoleAdmin && role != model.RoleEmployee {
		return apperrors.ErrInvalidInput
	}

	taken, err := s.userRepo.EmailInUseByOther(ctx, email, id)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrEmailTaken
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	user.Name = name
	user.Email = email
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailTaken
		}
		return err
	}

	s.activity.Log(ctx, "Admin", fmt.Sprintf("Updated employee '%s'", name), nil)
	return nil
}

func (s *employeeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	// Their tasks survive, unassigned. Must happen before the user row goes
	// away or the assignee foreign key blocks the delete.
	if err := s.taskRepo.UnassignUser(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Log(ctx, "Admin", fmt.Sprintf("Deleted employee %d", id), nil)
	return nil
}
