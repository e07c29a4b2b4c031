package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
	"officetrack/internal/service"
)

// EmployeeHandler exposes account management and profile endpoints.
type EmployeeHandler struct {
	employeeService service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// RegisterEmployeeRequest creates a new employee account.
type RegisterEmployeeRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateEmployeeRequest edits an existing account.
type UpdateEmployeeRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin employee"`
}

// EmployeeResponse is the public view of an account.
type EmployeeResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toEmployeeResponse(u *model.User) EmployeeResponse {
	return EmployeeResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.ErrInvalidInput
	}
	return uint(id), nil
}

// Register godoc
// @Summary Register a new employee
// @Tags employees
// @Accept json
// @Produce json
// @Param request body RegisterEmployeeRequest true "Account"
// @Success 201 {object} EmployeeResponse
// @Failure 400 {object} errors.StatusResponse
// @Failure 409 {object} errors.StatusResponse
// @Router /admin/register-employee [post]
func (h *EmployeeHandler) Register(c echo.Context) error {
	var req RegisterEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	user, err := h.employeeService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, toEmployeeResponse(user))
}

// List godoc
// @Summary List all employees
// @Tags employees
// @Produce json
// @Success 200 {array} EmployeeResponse
// @Router /admin/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.employeeService.ListEmployees(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not list employees"))
	}
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, toEmployeeResponse(&employees[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Fetch one employee
// @Tags employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} EmployeeResponse
// @Failure 404 {object} errors.StatusResponse
// @Router /admin/employee/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid id"))
	}
	user, err := h.employeeService.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(user))
}

// Update godoc
// @Summary Update an employee account
// @Tags employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param request body UpdateEmployeeRequest true "Fields"
// @Success 200 {object} errors.StatusResponse
// @Failure 404 {object} errors.StatusResponse
// @Failure 409 {object} errors.StatusResponse
// @Router /admin/update-employee/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid id"))
	}
	var req UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	if err := h.employeeService.Update(c.Request().Context(), id, req.Name, req.Email, req.Role); err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, apperrors.Success("Employee updated"))
}

// Delete godoc
// @Summary Delete an employee account
// @Tags employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} errors.StatusResponse
// @Failure 404 {object} errors.StatusResponse
// @Router /admin/delete-employee/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid id"))
	}
	if err := h.employeeService.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, apperrors.Success("Employee deleted"))
}

// ListAdmins godoc
// @Summary List admins an employee can direct approvals to
// @Tags employees
// @Produce json
// @Success 200 {array} EmployeeResponse
// @Router /employee/admins [get]
func (h *EmployeeHandler) ListAdmins(c echo.Context) error {
	admins, err := h.employeeService.ListAdmins(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not list admins"))
	}
	out := make([]EmployeeResponse, 0, len(admins))
	for i := range admins {
		out = append(out, toEmployeeResponse(&admins[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Profile godoc
// @Summary Current user's profile
// @Tags employees
// @Produce json
// @Success 200 {object} EmployeeResponse
// @Router /employee/profile [get]
func (h *EmployeeHandler) Profile(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	user, err := h.employeeService.Get(c.Request().Context(), claims.UserID)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(user))
}
