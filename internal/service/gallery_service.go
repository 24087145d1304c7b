package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/layout"
	"bakehouse/internal/model"
	"bakehouse/internal/repository"
)

// GalleryQuery filters a gallery listing. Featured narrows the list only
// when it is exactly "true".
type GalleryQuery struct {
	Category string
	Featured string
}

// GalleryInput carries the fields of a new gallery item.
type GalleryInput struct {
	Title    string
	Category string
	Image    string
	Featured bool
	Width    int
	Height   int
}

// GalleryUpdate carries the fields to change. Nil fields are left as they are.
type GalleryUpdate struct {
	Title    *string
	Category *string
	Image    *string
	Featured *bool
	Width    *int
	Height   *int
}

// GalleryLayout is a listing packed into masonry columns.
type GalleryLayout struct {
	Items  []model.GalleryItem
	Layout layout.Result
}

// GalleryService handles gallery operations.
type GalleryService interface {
	List(ctx context.Context, q GalleryQuery) ([]model.GalleryItem, error)
	GetOne(ctx context.Context, id string) (*model.GalleryItem, error)
	Create(ctx context.Context, in GalleryInput, uploader *model.User) (*model.GalleryItem, error)
	Update(ctx context.Context, id string, upd GalleryUpdate, user *model.User) (*model.GalleryItem, error)
	Delete(ctx context.Context, id string, user *model.User) error
	Layout(ctx context.Context, q GalleryQuery, opts layout.Options) (*GalleryLayout, error)
}

type galleryService struct {
	repo repository.GalleryRepository
}

// NewGalleryService creates a new gallery service.
func NewGalleryService(repo repository.GalleryRepository) GalleryService {
	return &galleryService{repo: repo}
}

func (s *galleryService) List(ctx context.Context, q GalleryQuery) ([]model.GalleryItem, error) {
	items, err := s.repo.List(ctx, repository.GalleryFilter{
		Category:     filterValue(q.Category),
		FeaturedOnly: strings.TrimSpace(q.Featured) == "true",
	})
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	if items == nil {
		items = []model.GalleryItem{}
	}
	return items, nil
}

func (s *galleryService) GetOne(ctx context.Context, rawID string) (*model.GalleryItem, error) {
	id, err := parseID(rawID, apperrors.ErrGalleryItemNotFound)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGalleryItemNotFound
		}
		return nil, fmt.Errorf("get gallery item: %w", err)
	}
	return item, nil
}

func (s *galleryService) Create(ctx context.Context, in GalleryInput, uploader *model.User) (*model.GalleryItem, error) {
	item := &model.GalleryItem{
		Title:      strings.TrimSpace(in.Title),
		Category:   in.Category,
		Image:      in.Image,
		Featured:   in.Featured,
		Width:      in.Width,
		Height:     in.Height,
		UploaderID: uploader.ID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create gallery item: %w", err)
	}
	return item, nil
}

func (s *galleryService) Update(ctx context.Context, id string, upd GalleryUpdate, user *model.User) (*model.GalleryItem, error) {
	item, err := s.GetOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(user, item.UploaderID) {
		return nil, apperrors.ErrNotGalleryOwner
	}

	if upd.Title != nil {
		item.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.Image != nil {
		item.Image = *upd.Image
	}
	if upd.Featured != nil {
		item.Featured = *upd.Featured
	}
	if upd.Width != nil {
		item.Width = *upd.Width
	}
	if upd.Height != nil {
		item.Height = *upd.Height
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update gallery item: %w", err)
	}
	return item, nil
}

func (s *galleryService) Delete(ctx context.Context, id string, user *model.User) error {
	item, err := s.GetOne(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(user, item.UploaderID) {
		return apperrors.ErrNotGalleryOwner
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	return nil
}

// Layout lists matching items and packs them into opts.Columns columns.
func (s *galleryService) Layout(ctx context.Context, q GalleryQuery, opts layout.Options) (*GalleryLayout, error) {
	items, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	sizes := make([]layout.Size, len(items))
	for i, item := range items {
		sizes[i] = layout.Size{Width: item.Width, Height: item.Height}
	}
	return &GalleryLayout{Items: items, Layout: layout.Pack(sizes, opts)}, nil
}
