package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bakehouse/internal/model"
)

// GalleryFilter narrows a gallery listing.
type GalleryFilter struct {
	Category     string
	FeaturedOnly bool
}

// GalleryRepository defines gallery persistence operations.
type GalleryRepository interface {
	Create(ctx context.Context, item *model.GalleryItem) error
	Update(ctx context.Context, item *model.GalleryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.GalleryItem, error)
	List(ctx context.Context, filter GalleryFilter) ([]model.GalleryItem, error)
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new gallery repository.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, item *model.GalleryItem) error {
	return r.db.WithContext(ctx).Omit("Uploader").Create(item).Error
}

func (r *galleryRepository) Update(ctx context.Context, item *model.GalleryItem) error {
	return r.db.WithContext(ctx).Omit("Uploader").Save(item).Error
}

func (r *galleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GalleryItem{}).Error
}

func (r *galleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GalleryItem, error) {
	var item model.GalleryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryRepository) List(ctx context.Context, filter GalleryFilter) ([]model.GalleryItem, error) {
	q := r.db.WithContext(ctx).Model(&model.GalleryItem{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}

	var items []model.GalleryItem
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
