package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryItem is a showcase photo uploaded by an admin.
type GalleryItem struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Category   string    `json:"category" gorm:"size:100;index"`
	Image      string    `json:"image" gorm:"size:512;not null"`
	Featured   bool      `json:"featured" gorm:"default:false;index"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	UploaderID uuid.UUID `json:"uploaderId" gorm:"type:char(36);not null;index"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Relations
	Uploader *User `json:"uploader,omitempty" gorm:"foreignKey:UploaderID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (g *GalleryItem) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
