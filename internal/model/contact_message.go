package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageStatus tracks how far an admin has handled a contact message.
type MessageStatus string

const (
	MessageStatusNew      MessageStatus = "NEW"
	MessageStatusRead     MessageStatus = "READ"
	MessageStatusReplied  MessageStatus = "REPLIED"
	MessageStatusArchived MessageStatus = "ARCHIVED"
)

// MessageStatuses lists every status in dashboard cycle order.
var MessageStatuses = []MessageStatus{
	MessageStatusNew,
	MessageStatusRead,
	MessageStatusReplied,
	MessageStatusArchived,
}

// ContactMessage is an enquiry submitted through the public contact form.
type ContactMessage struct {
	ID        uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string        `json:"name" gorm:"size:255;not null"`
	Email     string        `json:"email" gorm:"size:255;not null"`
	Phone     *string       `json:"phone" gorm:"size:50"`
	Subject   string        `json:"subject" gorm:"size:255;not null"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	EventDate *time.Time    `json:"eventDate"`
	EventType *string       `json:"eventType" gorm:"size:100"`
	Status    MessageStatus `json:"status" gorm:"type:varchar(10);not null;default:'NEW';index"`
	CreatedAt time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = MessageStatusNew
	}
	return nil
}

// IsValidMessageStatus reports whether s is a known status.
func IsValidMessageStatus(s MessageStatus) bool {
	for _, known := range MessageStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// NextStatus returns the status after s in the dashboard cycle,
// wrapping from ARCHIVED back to NEW. Unknown statuses restart at NEW.
func NextStatus(s MessageStatus) MessageStatus {
	for i, known := range MessageStatuses {
		if s == known {
			return MessageStatuses[(i+1)%len(MessageStatuses)]
		}
	}
	return MessageStatusNew
}

// AllModels returns every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&GalleryItem{},
		&ContactMessage{},
	}
}
