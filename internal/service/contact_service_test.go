package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/events"
	"bakehouse/internal/model"
	"bakehouse/internal/repository"
)

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		raw     string
		want    *time.Time
		wantErr bool
	}{
		{raw: ""},
		{raw: "   "},
		{raw: "2025-06-14", want: timePtr(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))},
		{raw: "2025-06-14T15:00:00+02:00", want: timePtr(time.Date(2025, 6, 14, 13, 0, 0, 0, time.UTC))},
		{raw: "14/06/2025", wantErr: true},
		{raw: "next saturday", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseEventDate(tt.raw)
		if tt.wantErr {
			assert.Equal(t, apperrors.ErrInvalidEventDate, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		if tt.want == nil {
			assert.Nil(t, got, tt.raw)
		} else {
			require.NotNil(t, got, tt.raw)
			assert.True(t, tt.want.Equal(*got), tt.raw)
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestContactService_Submit(t *testing.T) {
	in := ContactInput{
		Name:      "Ana",
		Email:     "ana@example.com",
		Phone:     "  ",
		Subject:   "Wedding",
		Message:   "Three tiers please",
		EventDate: "2025-06-14",
		EventType: "Wedding",
	}

	t.Run("stores NEW message and publishes event", func(t *testing.T) {
		mockRepo := new(MockContactRepository)
		mockPub := new(MockPublisher)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ContactMessage")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.ContactMessage).ID = uuid.New()
			}).Return(nil)
		mockPub.On("Publish", mock.Anything, events.TopicContactSubmitted, mock.AnythingOfType("string"), mock.AnythingOfType("service.ContactSubmitted")).Return(nil)

		svc := NewContactService(mockRepo, mockPub, nil, zerolog.Nop())
		msg, err := svc.Submit(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, model.MessageStatusNew, msg.Status)
		assert.Nil(t, msg.Phone)
		require.NotNil(t, msg.EventType)
		assert.Equal(t, "Wedding", *msg.EventType)
		require.NotNil(t, msg.EventDate)
		assert.Equal(t, 14, msg.EventDate.Day())

		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("publish failure does not fail the submission", func(t *testing.T) {
		mockRepo := new(MockContactRepository)
		mockPub := new(MockPublisher)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockPub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

		var logs bytes.Buffer
		svc := NewContactService(mockRepo, mockPub, nil, zerolog.New(&logs))
		msg, err := svc.Submit(context.Background(), in)
		require.NoError(t, err)
		assert.NotNil(t, msg)
		assert.Contains(t, logs.String(), "broker down")
	})

	t.Run("bad event date is rejected before storing", func(t *testing.T) {
		mockRepo := new(MockContactRepository)
		bad := in
		bad.EventDate = "soon"

		_, err := NewContactService(mockRepo, nil, nil, zerolog.Nop()).Submit(context.Background(), bad)
		assert.Equal(t, apperrors.ErrInvalidEventDate, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestContactService_UpdateStatus(t *testing.T) {
	msg := &model.ContactMessage{ID: uuid.New(), Status: model.MessageStatusNew}

	tests := []struct {
		name          string
		status        string
		setupMock     func(*MockContactRepository)
		expectedError error
		want          model.MessageStatus
	}{
		{
			name:   "any known status is accepted",
			status: "ARCHIVED",
			setupMock: func(m *MockContactRepository) {
				m.On("FindByID", mock.Anything, msg.ID).Return(&model.ContactMessage{ID: msg.ID, Status: model.MessageStatusNew}, nil)
				m.On("UpdateStatus", mock.Anything, msg.ID, model.MessageStatusArchived).Return(nil)
			},
			want: model.MessageStatusArchived,
		},
		{
			name:   "lower case is normalised",
			status: "read",
			setupMock: func(m *MockContactRepository) {
				m.On("FindByID", mock.Anything, msg.ID).Return(&model.ContactMessage{ID: msg.ID, Status: model.MessageStatusArchived}, nil)
				m.On("UpdateStatus", mock.Anything, msg.ID, model.MessageStatusRead).Return(nil)
			},
			want: model.MessageStatusRead,
		},
		{
			name:          "unknown status",
			status:        "SPAM",
			setupMock:     func(*MockContactRepository) {},
			expectedError: apperrors.ErrInvalidStatus,
		},
		{
			name:   "missing message",
			status: "READ",
			setupMock: func(m *MockContactRepository) {
				m.On("FindByID", mock.Anything, msg.ID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrMessageNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockContactRepository)
			tt.setupMock(mockRepo)

			got, err := NewContactService(mockRepo, nil, nil, zerolog.Nop()).UpdateStatus(context.Background(), msg.ID.String(), tt.status)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got.Status)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestContactService_List(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRepo.On("List", mock.Anything, model.MessageStatus(""), repository.Pagination{Page: 1, Limit: 10}).
		Return([]model.ContactMessage{{Subject: "a"}}, int64(11), nil)
	mockRepo.On("List", mock.Anything, model.MessageStatusReplied, repository.Pagination{Page: 2, Limit: 20}).
		Return([]model.ContactMessage(nil), int64(0), nil)
	svc := NewContactService(mockRepo, nil, nil, zerolog.Nop())

	page, err := svc.List(context.Background(), "All", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 1)

	page, err = svc.List(context.Background(), "replied", 2, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = svc.List(context.Background(), "SPAM", 1, 10)
	assert.Equal(t, apperrors.ErrInvalidStatus, err)

	mockRepo.AssertExpectations(t)
}

func TestContactService_Delete(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockContactRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(&model.ContactMessage{ID: id}, nil)
	mockRepo.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, NewContactService(mockRepo, nil, nil, zerolog.Nop()).Delete(context.Background(), id.String()))
	mockRepo.AssertExpectations(t)
}
