package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "officetrack/internal/errors"
	"officetrack/internal/model"
	"officetrack/internal/repository"
)

// FeedFlags reports which feeds hold something newer than the user's markers.
type FeedFlags struct {
	Announcements bool `json:"announcements"`
	Files         bool `json:"files"`
	Tasks         bool `json:"tasks"`
	Approvals     bool `json:"approvals"`
}

// FeedService computes unread badges against per-user, per-feed "last seen"
// markers and advances them.
type FeedService interface {
	HasNew(ctx context.Context, userID uint) (*FeedFlags, error)
	// MarkSeen advances the section marker to now. Idempotent; the marker
	// never moves backward.
	MarkSeen(ctx context.Context, userID uint, section string) error
}

type feedService struct {
	userRepo         repository.UserRepository
	announcementRepo repository.AnnouncementRepository
	fileRepo         repository.FileRepository
	taskRepo         repository.TaskRepository
	approvalRepo     repository.ApprovalRepository
	now              func() time.Time
}

// NewFeedService creates a new feed service.
func NewFeedService(
	userRepo repository.UserRepository,
	announcementRepo repository.AnnouncementRepository,
	fileRepo repository.FileRepository,
	taskRepo repository.TaskRepository,
	approvalRepo repository.ApprovalRepository,
) FeedService {
	return &feedService{
		userRepo:         userRepo,
		announcementRepo: announcementRepo,
		fileRepo:         fileRepo,
		taskRepo:         taskRepo,
		approvalRepo:     approvalRepo,
		now:              time.Now,
	}
}

// markerOrEpoch treats a never-seen feed as seen at the epoch, so everything counts as new.
func markerOrEpoch(t *time.Time) time.Time {
	if t == nil {
		return time.Unix(0, 0)
	}
	return *t
}

func (s *feedService) HasNew(ctx context.Context, userID uint) (*FeedFlags, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	flags := &FeedFlags{}
	if flags.Announcements, err = s.announcementRepo.ExistsNewerThan(ctx, markerOrEpoch(user.AnnouncementsSeenAt)); err != nil {
		return nil, err
	}
	if flags.Files, err = s.fileRepo.ExistsNewerThan(ctx, markerOrEpoch(user.FilesSeenAt)); err != nil {
		return nil, err
	}
	if flags.Tasks, err = s.taskRepo.ExistsNewForAssignee(ctx, userID, markerOrEpoch(user.TasksSeenAt)); err != nil {
		return nil, err
	}
	if flags.Approvals, err = s.approvalRepo.ExistsDecidedAfter(ctx, userID, markerOrEpoch(user.ApprovalsSeenAt)); err != nil {
		return nil, err
	}
	return flags, nil
}

func (s *feedService) MarkSeen(ctx context.Context, userID uint, section string) error {
	switch section {
	case model.SectionAnnouncements, model.SectionFiles, model.SectionTasks, model.SectionApprovals:
	default:
		return apperrors.ErrInvalidInput
	}
	return s.userRepo.MarkSeen(ctx, userID, section, s.now())
}
