package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/model"
)

func TestUserService_ListUsers(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockUserRepository)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "returns accounts",
			setupMock: func(m *MockUserRepository) {
				m.On("List", mock.Anything).Return([]model.User{
					{Name: "Admin", Role: model.RoleAdmin},
					{Name: "Ana", Role: model.RoleUser},
				}, nil)
			},
			wantLen: 2,
		},
		{
			name: "no accounts is an empty list",
			setupMock: func(m *MockUserRepository) {
				m.On("List", mock.Anything).Return(nil, nil)
			},
			wantLen: 0,
		},
		{
			name: "storage failure",
			setupMock: func(m *MockUserRepository) {
				m.On("List", mock.Anything).Return(nil, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			users, err := NewUserService(mockRepo).ListUsers(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, users)
			assert.Len(t, users, tt.wantLen)
			mockRepo.AssertExpectations(t)
		})
	}
}
