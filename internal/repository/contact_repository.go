package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bakehouse/internal/model"
)

// ContactRepository defines contact message persistence operations.
type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.MessageStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error)
	List(ctx context.Context, status model.MessageStatus, page Pagination) ([]model.ContactMessage, int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact message repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.MessageStatus) error {
	return r.db.WithContext(ctx).Model(&model.ContactMessage{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContactMessage{}).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error) {
	var msg model.ContactMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// List returns one page of messages, newest first. An empty status matches all.
func (r *contactRepository) List(ctx context.Context, status model.MessageStatus, page Pagination) ([]model.ContactMessage, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ContactMessage{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var msgs []model.ContactMessage
	if err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit).Find(&msgs).Error; err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}
