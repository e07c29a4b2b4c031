package repository

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"officetrack/internal/model"
)

// FileRepository defines file metadata persistence operations.
type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
	ListAll(ctx context.Context) ([]model.File, error)
	// ListVisibleTo returns files shared with everyone or with this user.
	ListVisibleTo(ctx context.Context, userID uint) ([]model.File, error)
	FindByName(ctx context.Context, filename string) (*model.File, error)
	ExistsNewerThan(ctx context.Context, since time.Time) (bool, error)
}

type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository builds a GORM-backed repository.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepository) ListAll(ctx context.Context) ([]model.File, error) {
	var files []model.File
	if err := r.db.WithContext(ctx).Order("uploaded_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepository) ListVisibleTo(ctx context.Context, userID uint) ([]model.File, error) {
	var files []model.File
	err := r.db.WithContext(ctx).
		Where("shared_with = ? OR shared_with = ?", model.SharedWithAll, strconv.FormatUint(uint64(userID), 10)).
		Order("uploaded_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepository) FindByName(ctx context.Context, filename string) (*model.File, error) {
	var file model.File
	if err := r.db.WithContext(ctx).Where("filename = ?", filename).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) ExistsNewerThan(ctx context.Context, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.File{}).
		Where("uploaded_at > ?", since).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
