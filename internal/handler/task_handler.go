package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
	"officetrack/internal/service"
)

// TaskHandler exposes task CRUD, the employee status transition, and the
// leaderboard.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest creates and assigns a task.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	AssignedTo  uint   `json:"assigned_to" validate:"required"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTaskRequest edits an existing task.
type UpdateTaskRequest struct {
	AssignedTo *uint  `json:"assigned_to"`
	Status     string `json:"status" validate:"required,oneof=Pending 'In Progress' Completed"`
	DueDate    string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTaskStatusRequest moves an assignee's own task between statuses.
type UpdateTaskStatusRequest struct {
	TaskID uint   `json:"task_id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=Pending 'In Progress' Completed"`
}

// Create godoc
// @Summary Create and assign a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "Task"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.StatusResponse
// @Failure 404 {object} errors.StatusResponse
// @Router /admin/create-task [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	task, err := h.taskService.Create(c.Request().Context(), req.Title, req.Description, req.AssignedTo, req.DueDate)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, task)
}

// ListAll godoc
// @Summary List every task with its assignee
// @Tags tasks
// @Produce json
// @Success 200 {array} repository.TaskWithEmployee
// @Router /admin/all-tasks [get]
func (h *TaskHandler) ListAll(c echo.Context) error {
	tasks, err := h.taskService.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not list tasks"))
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get godoc
// @Summary Fetch one task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} service.TaskDetail
// @Failure 404 {object} errors.StatusResponse
// @Router /admin/task/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid id"))
	}
	task, err := h.taskService.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, task)
}

// Update godoc
// @Summary Update a task's assignee, status, and due date
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Fields"
// @Success 200 {object} errors.StatusResponse
// @Failure 404 {object} errors.StatusResponse
// @Router /admin/update-task/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid id"))
	}
	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	if err := h.taskService.AdminUpdate(c.Request().Context(), id, req.AssignedTo, model.TaskStatus(req.Status), req.DueDate); err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, apperrors.Success("Task updated"))
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} errors.StatusResponse
// @Failure 404 {object} errors.StatusResponse
// @Router /admin/delete-task/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid id"))
	}
	if err := h.taskService.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, apperrors.Success("Task deleted"))
}

// ListMine godoc
// @Summary Tasks assigned to the current user
// @Tags tasks
// @Produce json
// @Success 200 {array} model.Task
// @Router /employee/tasks [get]
func (h *TaskHandler) ListMine(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	tasks, err := h.taskService.ListForEmployee(c.Request().Context(), claims.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not list tasks"))
	}
	return c.JSON(http.StatusOK, tasks)
}

// UpdateStatus godoc
// @Summary Update the status of an assigned task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body UpdateTaskStatusRequest true "Transition"
// @Success 200 {object} errors.StatusResponse
// @Failure 404 {object} errors.StatusResponse
// @Router /employee/update-task-status [post]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	var req UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	if err := h.taskService.UpdateStatus(c.Request().Context(), claims.UserID, claims.Name, req.TaskID, model.TaskStatus(req.Status)); err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, apperrors.Success("Status updated"))
}

// TopPerformers godoc
// @Summary Leaderboard of the highest scoring employees
// @Tags tasks
// @Produce json
// @Success 200 {array} service.Performer
// @Router /employee/top-performers [get]
func (h *TaskHandler) TopPerformers(c echo.Context) error {
	performers, err := h.taskService.TopPerformers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not compute leaderboard"))
	}
	return c.JSON(http.StatusOK, performers)
}
