package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/layout"
	"bakehouse/internal/model"
	"bakehouse/internal/repository"
)

func TestGalleryService_ListFilters(t *testing.T) {
	tests := []struct {
		name       string
		query      GalleryQuery
		wantFilter repository.GalleryFilter
	}{
		{"no filters", GalleryQuery{}, repository.GalleryFilter{}},
		{"All category", GalleryQuery{Category: "All"}, repository.GalleryFilter{}},
		{"category", GalleryQuery{Category: "Cakes"}, repository.GalleryFilter{Category: "Cakes"}},
		{"featured true", GalleryQuery{Featured: "true"}, repository.GalleryFilter{FeaturedOnly: true}},
		{"featured false does not filter", GalleryQuery{Featured: "false"}, repository.GalleryFilter{}},
		{"featured other values do not filter", GalleryQuery{Featured: "yes"}, repository.GalleryFilter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockGalleryRepository)
			mockRepo.On("List", mock.Anything, tt.wantFilter).Return([]model.GalleryItem(nil), nil)

			items, err := NewGalleryService(mockRepo).List(context.Background(), tt.query)
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGalleryService_UpdateOwnership(t *testing.T) {
	uploader := &model.User{ID: uuid.New(), Role: model.RoleUser}
	item := &model.GalleryItem{ID: uuid.New(), Title: "Wedding cake", UploaderID: uploader.ID}
	featured := true

	tests := []struct {
		name          string
		user          *model.User
		expectedError error
	}{
		{"uploader", uploader, nil},
		{"admin", &model.User{ID: uuid.New(), Role: model.RoleAdmin}, nil},
		{"other user", &model.User{ID: uuid.New(), Role: model.RoleUser}, apperrors.ErrNotGalleryOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			copyItem := *item
			mockRepo := new(MockGalleryRepository)
			mockRepo.On("FindByID", mock.Anything, item.ID).Return(&copyItem, nil)
			if tt.expectedError == nil {
				mockRepo.On("Update", mock.Anything, &copyItem).Return(nil)
			}

			updated, err := NewGalleryService(mockRepo).Update(context.Background(), item.ID.String(), GalleryUpdate{Featured: &featured}, tt.user)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.True(t, updated.Featured)
				assert.Equal(t, "Wedding cake", updated.Title)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGalleryService_GetOneNotFound(t *testing.T) {
	mockRepo := new(MockGalleryRepository)
	id := uuid.New()
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
	svc := NewGalleryService(mockRepo)

	_, err := svc.GetOne(context.Background(), id.String())
	assert.Equal(t, apperrors.ErrGalleryItemNotFound, err)

	_, err = svc.GetOne(context.Background(), "42")
	assert.Equal(t, apperrors.ErrGalleryItemNotFound, err)
}

func TestGalleryService_DeleteByAdmin(t *testing.T) {
	item := &model.GalleryItem{ID: uuid.New(), UploaderID: uuid.New()}
	mockRepo := new(MockGalleryRepository)
	mockRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	mockRepo.On("Delete", mock.Anything, item.ID).Return(nil)

	err := NewGalleryService(mockRepo).Delete(context.Background(), item.ID.String(), &model.User{ID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestGalleryService_Layout(t *testing.T) {
	items := []model.GalleryItem{
		{Title: "tall", Width: 100, Height: 300},
		{Title: "square", Width: 100, Height: 100},
		{Title: "wide", Width: 200, Height: 100},
	}
	mockRepo := new(MockGalleryRepository)
	mockRepo.On("List", mock.Anything, repository.GalleryFilter{}).Return(items, nil)

	got, err := NewGalleryService(mockRepo).Layout(context.Background(), GalleryQuery{}, layout.Options{Columns: 2, ColumnWidth: 100})
	require.NoError(t, err)
	assert.Equal(t, items, got.Items)
	require.Len(t, got.Layout.Columns, 2)
	assert.Equal(t, []int{0}, got.Layout.Columns[0])
	assert.Equal(t, []int{1, 2}, got.Layout.Columns[1])
}
