package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/service"
)

// AnnouncementHandler exposes the announcement board.
type AnnouncementHandler struct {
	announcementService service.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler.
func NewAnnouncementHandler(announcementService service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// CreateAnnouncementRequest posts a new announcement.
type CreateAnnouncementRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Create godoc
// @Summary Post an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param request body CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} model.Announcement
// @Failure 400 {object} errors.StatusResponse
// @Router /admin/create-announcement [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	var req CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error(err.Error()))
	}

	ann, err := h.announcementService.Create(c.Request().Context(), req.Title, req.Message)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, ann)
}

// List godoc
// @Summary List announcements, newest first
// @Tags announcements
// @Produce json
// @Success 200 {array} model.Announcement
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	anns, err := h.announcementService.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not list announcements"))
	}
	return c.JSON(http.StatusOK, anns)
}
