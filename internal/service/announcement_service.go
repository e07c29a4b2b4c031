package service

import (
	"context"
	"fmt"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
	"officetrack/internal/repository"
)

// AnnouncementService handles admin broadcasts.
type AnnouncementService interface {
	Create(ctx context.Context, title, message string) (*model.Announcement, error)
	List(ctx context.Context) ([]model.Announcement, error)
}

type announcementService struct {
	repo     repository.AnnouncementRepository
	activity ActivityService
}

// NewAnnouncementService creates a new announcement service.
func NewAnnouncementService(repo repository.AnnouncementRepository, activity ActivityService) AnnouncementService {
	return &announcementService{repo: repo, activity: activity}
}

func (s *announcementService) Create(ctx context.Context, title, message string) (*model.Announcement, error) {
	if title == "" || message == "" {
		return nil, apperrors.ErrInvalidInput
	}

	announcement := &model.Announcement{Title: title, Message: message}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	s.activity.Log(ctx, "Admin", fmt.Sprintf("Posted announcement '%s'", title), nil)
	return announcement, nil
}

func (s *announcementService) List(ctx context.Context) ([]model.Announcement, error) {
	return s.repo.List(ctx)
}
