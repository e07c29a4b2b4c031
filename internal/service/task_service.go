package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
	"officetrack/internal/notify"
	"officetrack/internal/repository"
)

const leaderboardSize = 5

// Leaderboard score weights.
const (
	scoreCompleted  = 3
	scoreInProgress = 1
	scoreOverdue    = -2
)

// TaskDetail is a single task joined with its assignee's name.
type TaskDetail struct {
	model.Task
	EmployeeName *string `json:"employee_name"`
}

// Performer is one leaderboard entry.
type Performer struct {
	Name       string `json:"name"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"in_progress"`
	Overdue    int    `json:"overdue"`
	Score      int    `json:"score"`
}

// TaskService handles task CRUD, employee status updates, and the leaderboard.
type TaskService interface {
	Create(ctx context.Context, title, description string, assignedTo uint, dueDate string) (*model.Task, error)
	Get(ctx context.Context, id uint) (*TaskDetail, error)
	ListAll(ctx context.Context) ([]repository.TaskWithEmployee, error)
	AdminUpdate(ctx context.Context, id uint, assignedTo *uint, status model.TaskStatus, dueDate string) error
	Delete(ctx context.Context, id uint) error
	ListForEmployee(ctx context.Context, userID uint) ([]model.Task, error)
	UpdateStatus(ctx context.Context, userID uint, userName string, taskID uint, status model.TaskStatus) error
	TopPerformers(ctx context.Context) ([]Performer, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	activity ActivityService
	notifier notify.Notifier
	loc      *time.Location
	now      func() time.Time
	log      zerolog.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	activity ActivityService,
	notifier notify.Notifier,
	loc *time.Location,
	log zerolog.Logger,
) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		activity: activity,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		log:      log,
	}
}

const dueDateLayout = "2006-01-02"

func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return nil, apperrors.ErrInvalidInput
	}
	return &t, nil
}

// Create assigns a new task to an employee and fires a best-effort
// notification. Notification failure never fails the creation.
func (s *taskService) Create(ctx context.Context, title, description string, assignedTo uint, dueDate string) (*model.Task, error) {
	if title == "" || assignedTo == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	due, err := parseDueDate(dueDate)
	if err != nil {
		return nil, err
	}

	assignee, err := s.userRepo.FindByID(ctx, assignedTo)
	if err != nil || assignee.Role != model.RoleEmployee {
		return nil, apperrors.ErrNotFound
	}

	task := &model.Task{
		Title:         title,
		Description:   description,
		AssignedTo:    &assignedTo,
		DueDate:       due,
		Status:        model.TaskStatusPending,
		UpdatedByRole: model.RoleAdmin,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.activity.Log(ctx, "Admin", fmt.Sprintf("Created task '%s'", title), &task.ID)
	s.notifyAssignment(ctx, assignee, task)

	return task, nil
}

// notifyAssignment sends the WhatsApp template when the assignee opted in.
// Every failure path is swallowed.
func (s *taskService) notifyAssignment(ctx context.Context, assignee *model.User, task *model.Task) {
	if !assignee.WhatsappOptIn || assignee.Whatsapp == "" {
		return
	}
	due := "Not specified"
	if task.DueDate != nil {
		due = task.DueDate.Format(dueDateLayout)
	}
	if err := s.notifier.TaskAssigned(ctx, assignee.Whatsapp, assignee.Name, task.Title, due); err != nil {
		s.log.Warn().Err(err).Uint("task_id", task.ID).Msg("task assignment notification failed")
	}
}

func (s *taskService) Get(ctx context.Context, id uint) (*TaskDetail, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	detail := &TaskDetail{Task: *task}
	if task.AssignedTo != nil {
		if assignee, err := s.userRepo.FindByID(ctx, *task.AssignedTo); err == nil {
			detail.EmployeeName = &assignee.Name
		}
	}
	return detail, nil
}

func (s *taskService) ListAll(ctx context.Context) ([]repository.TaskWithEmployee, error) {
	return s.taskRepo.ListAll(ctx)
}

func (s *taskService) AdminUpdate(ctx context.Context, id uint, assignedTo *uint, status model.TaskStatus, dueDate string) error {
	if !model.ValidTaskStatus(status) {
		return apperrors.ErrInvalidInput
	}
	due, err := parseDueDate(dueDate)
	if err != nil {
		return err
	}

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	task.AssignedTo = assignedTo
	task.Status = status
	task.DueDate = due
	task.UpdatedByRole = model.RoleAdmin
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return err
	}

	s.activity.Log(ctx, "Admin", fmt.Sprintf("Updated task %d", id), &id)
	return nil
}

func (s *taskService) Delete(ctx context.Context, id uint) error {
	if _, err := s.taskRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Log(ctx, "Admin", fmt.Sprintf("Deleted task %d", id), &id)
	return nil
}

func (s *taskService) ListForEmployee(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.taskRepo.ListByAssignee(ctx, userID)
}

// UpdateStatus lets an assignee move their own task between statuses.
func (s *taskService) UpdateStatus(ctx context.Context, userID uint, userName string, taskID uint, status model.TaskStatus) error {
	if !model.ValidTaskStatus(status) {
		return apperrors.ErrInvalidInput
	}

	task, err := s.taskRepo.FindByIDAndAssignee(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	task.Status = status
	task.UpdatedByRole = model.RoleEmployee
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return err
	}

	s.activity.Log(ctx, userName, fmt.Sprintf("Changed task status to '%s'", status), &taskID)
	return nil
}

// TopPerformers scores every employee and returns the top five. Ties keep the
// employee listing order (stable sort).
func (s *taskService) TopPerformers(ctx context.Context) ([]Performer, error) {
	employees, err := s.userRepo.ListByRole(ctx, model.RoleEmployee)
	if err != nil {
		return nil, err
	}

	today := s.today()
	performers := make([]Performer, 0, len(employees))
	for _, emp := range employees {
		completed, err := s.taskRepo.CountByStatus(ctx, emp.ID, model.TaskStatusCompleted)
		if err != nil {
			return nil, err
		}
		inProgress, err := s.taskRepo.CountByStatus(ctx, emp.ID, model.TaskStatusInProgress)
		if err != nil {
			return nil, err
		}
		overdue, err := s.taskRepo.CountOverdue(ctx, emp.ID, today)
		if err != nil {
			return nil, err
		}

		performers = append(performers, Performer{
			Name:       emp.Name,
			Completed:  int(completed),
			InProgress: int(inProgress),
			Overdue:    int(overdue),
			Score:      scoreCompleted*int(completed) + scoreInProgress*int(inProgress) + scoreOverdue*int(overdue),
		})
	}

	sort.SliceStable(performers, func(i, j int) bool {
		return performers[i].Score > performers[j].Score
	})
	if len(performers) > leaderboardSize {
		performers = performers[:leaderboardSize]
	}
	return performers, nil
}

// today is midnight of the current office-local day.
func (s *taskService) today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}
