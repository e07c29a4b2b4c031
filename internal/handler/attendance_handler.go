package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
	"officetrack/internal/service"
)

// AttendanceHandler exposes geofenced check-in and check-out plus the admin
// attendance views and exports.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// CheckInRequest carries the device coordinates and the optional late reason.
// Coordinates are pointers so an absent field is distinguishable from 0.
type CheckInRequest struct {
	Latitude    *float64 `json:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude"`
	LateComment string   `json:"late_comment"`
}

// CheckInResponse reports the check-in outcome. Gate failures are outcomes,
// not protocol errors, so they travel in the same shape over a 200.
type CheckInResponse struct {
	Status   string `json:"status"`
	Distance *int   `json:"distance,omitempty"`
}

// CheckOutResponse reports the check-out outcome.
type CheckOutResponse struct {
	Status       string `json:"status"`
	CheckOutTime string `json:"check_out_time,omitempty"`
}

// CheckIn godoc
// @Summary Check in at the office
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body CheckInRequest true "Coordinates"
// @Success 200 {object} CheckInResponse
// @Failure 400 {object} errors.StatusResponse
// @Router /employee/check-in [post]
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	var req CheckInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	distance, err := h.attendanceService.CheckIn(c.Request().Context(), claims.UserID, *req.Latitude, *req.Longitude, req.LateComment)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, CheckInResponse{Status: model.AttendanceStatusPresent, Distance: &distance})
	case errors.Is(err, apperrors.ErrOutsideGeofence):
		return c.JSON(http.StatusOK, CheckInResponse{Status: "Outside", Distance: &distance})
	case errors.Is(err, apperrors.ErrAlreadyMarked):
		return c.JSON(http.StatusOK, CheckInResponse{Status: "already_marked"})
	case errors.Is(err, apperrors.ErrLateCommentRequired):
		return c.JSON(http.StatusOK, CheckInResponse{Status: "late_comment_required"})
	default:
		return c.JSON(http.StatusInternalServerError, apperrors.Error("check-in failed"))
	}
}

// CheckOut godoc
// @Summary Check out of the office
// @Tags attendance
// @Produce json
// @Success 200 {object} CheckOutResponse
// @Router /employee/check-out [post]
func (h *AttendanceHandler) CheckOut(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	checkOutTime, err := h.attendanceService.CheckOut(c.Request().Context(), claims.UserID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, CheckOutResponse{Status: "success", CheckOutTime: checkOutTime})
	case errors.Is(err, apperrors.ErrTimeBlocked):
		return c.JSON(http.StatusOK, CheckOutResponse{Status: "time_blocked"})
	case errors.Is(err, apperrors.ErrNotCheckedIn):
		return c.JSON(http.StatusOK, CheckOutResponse{Status: "not_checked_in"})
	case errors.Is(err, apperrors.ErrAlreadyCheckedOut):
		return c.JSON(http.StatusOK, CheckOutResponse{Status: "already_checked_out"})
	default:
		return c.JSON(http.StatusInternalServerError, apperrors.Error("check-out failed"))
	}
}

// Today godoc
// @Summary Today's attendance state for the current user
// @Tags attendance
// @Produce json
// @Success 200 {object} service.TodayStatus
// @Router /employee/today-attendance [get]
func (h *AttendanceHandler) Today(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	status, err := h.attendanceService.TodayStatus(c.Request().Context(), claims.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not read attendance"))
	}
	return c.JSON(http.StatusOK, status)
}

// Summary godoc
// @Summary Attendance history and counters for the current user
// @Tags attendance
// @Produce json
// @Success 200 {object} service.AttendanceSummary
// @Router /employee/attendance [get]
func (h *AttendanceHandler) Summary(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	summary, err := h.attendanceService.SummaryForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not read attendance"))
	}
	return c.JSON(http.StatusOK, summary)
}

// ListAll godoc
// @Summary Full attendance log across all employees
// @Tags attendance
// @Produce json
// @Success 200 {array} repository.AttendanceRow
// @Router /admin/attendance [get]
func (h *AttendanceHandler) ListAll(c echo.Context) error {
	rows, err := h.attendanceService.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not read attendance"))
	}
	return c.JSON(http.StatusOK, rows)
}

// DownloadCSV godoc
// @Summary Download the attendance log as CSV
// @Tags attendance
// @Produce text/csv
// @Success 200 {file} file
// @Router /admin/attendance/download [get]
func (h *AttendanceHandler) DownloadCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="attendance_log.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return h.attendanceService.WriteCSV(c.Request().Context(), c.Response())
}

// ExportXLSX godoc
// @Summary Download the attendance log as a spreadsheet
// @Tags attendance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /admin/attendance/export [get]
func (h *AttendanceHandler) ExportXLSX(c echo.Context) error {
	book, err := h.attendanceService.ExportXLSX(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not build export"))
	}
	defer book.Close()

	filename := fmt.Sprintf("attendance_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().WriteHeader(http.StatusOK)
	return book.Write(c.Response())
}
