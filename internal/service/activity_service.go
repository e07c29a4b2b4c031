package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"officetrack/internal/model"
	"officetrack/internal/repository"
)

const (
	activityLogLimit    = 200
	recentActivityLimit = 5
)

// ActivityService appends and reads the audit feed. Writes are best-effort:
// a failed append is logged and must never fail the mutating operation that
// triggered it.
type ActivityService interface {
	Log(ctx context.Context, userName, action string, taskID *uint)
	Recent(ctx context.Context, limit int) ([]model.ActivityLog, error)
	RecentForEmployee(ctx context.Context, userID uint) ([]model.ActivityLog, error)
	Clear(ctx context.Context) error
}

type activityService struct {
	repo repository.ActivityRepository
	loc  *time.Location
	now  func() time.Time
	log  zerolog.Logger
}

// NewActivityService builds an ActivityService writing office-local timestamps.
func NewActivityService(repo repository.ActivityRepository, loc *time.Location, log zerolog.Logger) ActivityService {
	return &activityService{
		repo: repo,
		loc:  loc,
		now:  time.Now,
		log:  log,
	}
}

func (s *activityService) Log(ctx context.Context, userName, action string, taskID *uint) {
	entry := &model.ActivityLog{
		UserName:  userName,
		Action:    action,
		TaskID:    taskID,
		Timestamp: s.now().In(s.loc),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("activity log write failed")
	}
}

func (s *activityService) Recent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 || limit > activityLogLimit {
		limit = activityLogLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *activityService) RecentForEmployee(ctx context.Context, userID uint) ([]model.ActivityLog, error) {
	return s.repo.ListForEmployee(ctx, userID, recentActivityLimit)
}

func (s *activityService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
