package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
	"officetrack/internal/repository"
)

// FileService handles upload metadata and per-viewer visibility.
type FileService interface {
	// Upload stores the content on disk and records its metadata. sharedWith
	// is "all" or the id of a single user; fileType defaults to "general".
	Upload(ctx context.Context, uploaderID uint, filename string, src io.Reader, sharedWith, fileType string) (*model.File, error)
	ListAll(ctx context.Context) ([]model.File, error)
	ListVisibleTo(ctx context.Context, userID uint) ([]model.File, error)
	// ResolvePath returns the on-disk path when the viewer may download the
	// file: shared with everyone, shared with them, or the viewer is admin.
	ResolvePath(ctx context.Context, filename string, viewerID uint, role string) (string, error)
}

type fileService struct {
	repo      repository.FileRepository
	activity  ActivityService
	uploadDir string
}

// NewFileService creates a new file service storing content under uploadDir.
func NewFileService(repo repository.FileRepository, activity ActivityService, uploadDir string) FileService {
	return &fileService{
		repo:      repo,
		activity:  activity,
		uploadDir: uploadDir,
	}
}

// sanitizeFilename flattens the name to its base and strips everything
// outside [A-Za-z0-9._-] so the stored name is safe to join with a directory.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return strings.Trim(cleaned, "._")
}

func (s *fileService) Upload(ctx context.Context, uploaderID uint, filename string, src io.Reader, sharedWith, fileType string) (*model.File, error) {
	cleaned := sanitizeFilename(filename)
	if cleaned == "" {
		return nil, apperrors.ErrInvalidInput
	}

	if sharedWith == "" {
		sharedWith = model.SharedWithAll
	}
	if sharedWith != model.SharedWithAll {
		id, err := strconv.ParseUint(sharedWith, 10, 32)
		if err != nil {
			return nil, apperrors.ErrInvalidInput
		}
		sharedWith = strconv.FormatUint(id, 10)
	}
	if fileType == "" {
		fileType = "general"
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	dst, err := os.Create(filepath.Join(s.uploadDir, cleaned))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	file := &model.File{
		Filename:   cleaned,
		UploadedBy: uploaderID,
		SharedWith: sharedWith,
		FileType:   fileType,
	}
	if err := s.repo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("record file: %w", err)
	}

	s.activity.Log(ctx, "Admin", fmt.Sprintf("Uploaded file '%s'", cleaned), nil)
	return file, nil
}

func (s *fileService) ListAll(ctx context.Context) ([]model.File, error) {
	return s.repo.ListAll(ctx)
}

func (s *fileService) ListVisibleTo(ctx context.Context, userID uint) ([]model.File, error) {
	return s.repo.ListVisibleTo(ctx, userID)
}

func (s *fileService) ResolvePath(ctx context.Context, filename string, viewerID uint, role string) (string, error) {
	cleaned := sanitizeFilename(filename)
	if cleaned == "" {
		return "", apperrors.ErrNotFound
	}

	file, err := s.repo.FindByName(ctx, cleaned)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}

	allowed := file.SharedWith == model.SharedWithAll ||
		role == model.RoleAdmin ||
		file.SharedWith == strconv.FormatUint(uint64(viewerID), 10)
	if !allowed {
		return "", apperrors.ErrForbidden
	}

	return filepath.Join(s.uploadDir, file.Filename), nil
}
