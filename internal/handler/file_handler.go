package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
	"officetrack/internal/service"
)

// FileHandler exposes upload, listing, and download of shared files.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new file handler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload godoc
// @Summary Upload a file and share it
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param shared_with formData string false "'all' or an employee id"
// @Param file_type formData string false "Category label"
// @Success 201 {object} model.File
// @Failure 400 {object} errors.StatusResponse
// @Router /admin/upload-file [post]
func (h *FileHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("file is required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Error("could not read file"))
	}
	defer src.Close()

	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	sharedWith := c.FormValue("shared_with")
	if sharedWith == "" {
		sharedWith = model.SharedWithAll
	}
	fileType := c.FormValue("file_type")

	file, err := h.fileService.Upload(c.Request().Context(), claims.UserID, fileHeader.Filename, src, sharedWith, fileType)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, file)
}

// List godoc
// @Summary List files visible to the current user
// @Tags files
// @Produce json
// @Success 200 {array} model.File
// @Router /files [get]
func (h *FileHandler) List(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	var (
		files   []model.File
		listErr error
	)
	if claims.Role == model.RoleAdmin {
		files, listErr = h.fileService.ListAll(c.Request().Context())
	} else {
		files, listErr = h.fileService.ListVisibleTo(c.Request().Context(), claims.UserID)
	}
	if listErr != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Error("could not list files"))
	}
	return c.JSON(http.StatusOK, files)
}

// Download godoc
// @Summary Download a shared file
// @Tags files
// @Produce octet-stream
// @Param filename path string true "Stored filename"
// @Success 200 {file} file
// @Failure 403 {object} errors.StatusResponse
// @Failure 404 {object} errors.StatusResponse
// @Router /uploads/{filename} [get]
func (h *FileHandler) Download(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	path, err := h.fileService.ResolvePath(c.Request().Context(), c.Param("filename"), claims.UserID, claims.Role)
	if err != nil {
		return c.JSON(apperrors.HTTPStatus(err), apperrors.Error(err.Error()))
	}
	return c.Attachment(path, c.Param("filename"))
}
