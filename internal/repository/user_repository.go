package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"officetrack/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListByRole(ctx context.Context, role string) ([]model.User, error)
	EmailInUseByOther(ctx context.Context, email string, excludeID uint) (bool, error)
	// MarkSeen advances a feed marker to seenAt. The update is guarded so the
	// marker never moves backward.
	MarkSeen(ctx context.Context, userID uint, section string, seenAt time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("role = ?", role).Order("name").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) EmailInUseByOther(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id != ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) MarkSeen(ctx context.Context, userID uint, section string, seenAt time.Time) error {
	var column string
	switch section {
	case model.SectionAnnouncements:
		column = "announcements_seen_at"
	case model.SectionFiles:
		column = "files_seen_at"
	case model.SectionTasks:
		column = "tasks_seen_at"
	case model.SectionApprovals:
		column = "approvals_seen_at"
	default:
		return gorm.ErrInvalidField
	}
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND ("+column+" IS NULL OR "+column+" < ?)", userID, seenAt).
		Update(column, seenAt).Error
}
