package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SharedWithAll marks a file record visible to every authenticated user.
const SharedWithAll = "all"

// File records an uploaded file's metadata. SharedWith is either "all" or the
// decimal id of the single user the file is shared with; visibility is
// computed per-request against the viewer.
type File struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Filename   string    `json:"filename" gorm:"size:255;not null;index"`
	UploadedBy uint      `json:"uploaded_by" gorm:"not null;index"`
	SharedWith string    `json:"shared_with" gorm:"size:20;not null;default:'all'"`
	FileType   string    `json:"file_type" gorm:"size:50;not null;default:'general'"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"autoCreateTime;index"`

	// Relations
	Uploader User `json:"-" gorm:"foreignKey:UploadedBy;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
