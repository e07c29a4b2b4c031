package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/service"
)

// ActivityHandler exposes the activity log and the per-user feed state.
type ActivityHandler struct {
	activityService service.ActivityService
	feedService     service.FeedService
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(activityService service.ActivityService, feedService service.FeedService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		feedService:     feedService,
	}
}

// MarkSeenRequest records that the current user viewed a content section.
type MarkSeenRequest struct {
	Section string `json:"section" validate:"required,oneof=announcements files tasks approvals"`
}

// AdminLog godoc
// @Summary Recent activity log entries
// @Tags activity
// @Produce json
// @Param limit query int false "Max entries (default 50)"
// @Success 200 {array} model.ActivityLog
// @Router /admin/activity-log [get]
func (h *ActivityHandler) AdminLog(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, apperrors.Error("invalid limit"))
		}
		limit = n
	}
	entries, err := h.activityService.Recent(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not read activity log"))
	}
	return c.JSON(http.StatusOK, entries)
}

// AdminRecent godoc
// @Summary Latest activity entries for the dashboard widget
// @Tags activity
// @Produce json
// @Success 200 {array} model.ActivityLog
// @Router /admin/activity [get]
func (h *ActivityHandler) AdminRecent(c echo.Context) error {
	entries, err := h.activityService.Recent(c.Request().Context(), 5)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not read activity log"))
	}
	return c.JSON(http.StatusOK, entries)
}

// Clear godoc
// @Summary Clear the activity log
// @Tags activity
// @Produce json
// @Success 200 {object} errors.StatusResponse
// @Router /admin/clear-activity-log [post]
func (h *ActivityHandler) Clear(c echo.Context) error {
	if err := h.activityService.Clear(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not clear activity log"))
	}
	return c.JSON(http.StatusOK, apperrors.Success("Activity log cleared"))
}

// RecentForMe godoc
// @Summary Recent activity relevant to the current user
// @Tags activity
// @Produce json
// @Success 200 {array} model.ActivityLog
// @Router /employee/recent-activity [get]
func (h *ActivityHandler) RecentForMe(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	entries, err := h.activityService.RecentForEmployee(c.Request().Context(), claims.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not read activity"))
	}
	return c.JSON(http.StatusOK, entries)
}

// HasNew godoc
// @Summary Unseen-content flags per section
// @Tags activity
// @Produce json
// @Success 200 {object} service.FeedFlags
// @Router /employee/has-new [get]
func (h *ActivityHandler) HasNew(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	flags, err := h.feedService.HasNew(c.Request().Context(), claims.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not compute flags"))
	}
	return c.JSON(http.StatusOK, flags)
}

// MarkSeen godoc
// @Summary Mark a content section as seen
// @Tags activity
// @Accept json
// @Produce json
// @Param request body MarkSeenRequest true "Section"
// @Success 200 {object} errors.StatusResponse
// @Failure 400 {object} errors.StatusResponse
// @Router /employee/mark-seen [post]
func (h *ActivityHandler) MarkSeen(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	var req MarkSeenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	if err := h.feedService.MarkSeen(c.Request().Context(), claims.UserID, req.Section); err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, apperrors.Success("Marked seen"))
}
