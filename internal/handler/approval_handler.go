package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/service"
)

// ApprovalHandler exposes the generic approval workflow: employees submit
// requests, admins decide them.
type ApprovalHandler struct {
	approvalService service.ApprovalService
}

// NewApprovalHandler creates a new approval handler.
func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// SubmitApprovalRequest files a request with a named admin.
type SubmitApprovalRequest struct {
	Type       string          `json:"type" validate:"required"`
	Payload    json.RawMessage `json:"payload" validate:"required"`
	AssignedTo uint            `json:"assigned_to" validate:"required"`
}

// DecideApprovalRequest approves or rejects a pending request.
type DecideApprovalRequest struct {
	ApprovalID string `json:"approval_id" validate:"required,uuid"`
	Action     string `json:"action" validate:"required,oneof=approve reject"`
	Reason     string `json:"reason"`
}

// Submit godoc
// @Summary Submit an approval request
// @Tags approvals
// @Accept json
// @Produce json
// @Param request body SubmitApprovalRequest true "Request"
// @Success 201 {object} model.Approval
// @Failure 400 {object} errors.StatusResponse
// @Router /employee/approvals [post]
func (h *ApprovalHandler) Submit(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	var req SubmitApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	approval, err := h.approvalService.Submit(c.Request().Context(), claims.UserID, req.Type, req.Payload, req.AssignedTo)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, approval)
}

// ListMine godoc
// @Summary Approval requests filed by the current user
// @Tags approvals
// @Produce json
// @Param type query string false "Filter by request type"
// @Success 200 {array} repository.EmployeeApprovalRow
// @Router /employee/approvals [get]
func (h *ApprovalHandler) ListMine(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	rows, err := h.approvalService.ListForEmployee(c.Request().Context(), claims.UserID, c.QueryParam("type"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not list approvals"))
	}
	return c.JSON(http.StatusOK, rows)
}

// Queue godoc
// @Summary Approval requests directed at the current admin
// @Tags approvals
// @Produce json
// @Param status query string false "Pending, Approved, or Rejected"
// @Success 200 {array} repository.ApproverQueueRow
// @Router /admin/approvals [get]
func (h *ApprovalHandler) Queue(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	rows, err := h.approvalService.ListForApprover(c.Request().Context(), claims.UserID, c.QueryParam("status"))
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, rows)
}

// Decide godoc
// @Summary Approve or reject a pending request
// @Tags approvals
// @Accept json
// @Produce json
// @Param request body DecideApprovalRequest true "Decision"
// @Success 200 {object} model.Approval
// @Failure 404 {object} errors.StatusResponse
// @Router /admin/approvals/action [post]
func (h *ApprovalHandler) Decide(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	var req DecideApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	approvalID, err := uuid.Parse(req.ApprovalID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid approval id"))
	}

	approval, err := h.approvalService.Decide(c.Request().Context(), claims.UserID, approvalID, req.Action, req.Reason)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, approval)
}
