package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/models"
	"github.com/taskvault/backend/internal/repositories"
)

// mockPriorityRepository is a mock implementation of PriorityRepository
type mockPriorityRepository struct {
	priorities    []models.Priority
	getAllErr     error
	priority      *models.Priority
	getByIDErr    error
	byLevel       *models.Priority
	getByLevelErr error
	createErr     error
	created       *models.Priority
	updateErr     error
	lastUpdate    repositories.PriorityUpdate
	deleteErr     error
}

func (m *mockPriorityRepository) GetAll(ctx context.Context) ([]models.Priority, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.priorities, nil
}

func (m *mockPriorityRepository) GetByID(ctx context.Context, priorityID int) (*models.Priority, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	if m.priority != nil {
		return m.priority, nil
	}
	return m.created, nil
}

func (m *mockPriorityRepository) GetByLevel(ctx context.Context, level int) (*models.Priority, error) {
	if m.getByLevelErr != nil {
		return nil, m.getByLevelErr
	}
	return m.byLevel, nil
}

func (m *mockPriorityRepository) Create(ctx context.Context, priority *models.Priority) error {
	if m.createErr != nil {
		return m.createErr
	}
	priority.ID = 5
	m.created = priority
	return nil
}

func (m *mockPriorityRepository) Update(ctx context.Context, priorityID int, updates repositories.PriorityUpdate) error {
	m.lastUpdate = updates
	return m.updateErr
}

func (m *mockPriorityRepository) Delete(ctx context.Context, priorityID int) error {
	return m.deleteErr
}

func TestPriorityService_Create(t *testing.T) {
	level := 5

	tests := []struct {
		name            string
		req             *models.CreatePriorityRequest
		repo            *mockPriorityRepository
		expectedError   bool
		expectedKind    apperrors.Kind
		expectedMessage string
	}{
		{
			name:          "success",
			req:           &models.CreatePriorityRequest{Name: "Critical", Level: &level},
			repo:          &mockPriorityRepository{getByLevelErr: apperrors.NotFound("Priority level not found")},
			expectedError: false,
		},
		{
			name:            "missing fields",
			req:             &models.CreatePriorityRequest{Name: "Critical"},
			repo:            &mockPriorityRepository{},
			expectedError:   true,
			expectedKind:    apperrors.KindValidation,
			expectedMessage: "Name and level are required",
		},
		{
			name:            "duplicate level",
			req:             &models.CreatePriorityRequest{Name: "Critical", Level: &level},
			repo:            &mockPriorityRepository{byLevel: &models.Priority{ID: 4, Name: "Urgent", Level: 5}},
			expectedError:   true,
			expectedKind:    apperrors.KindConflict,
			expectedMessage: "Priority level already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPriorityService(tt.repo)

			priority, err := svc.Create(context.Background(), tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, priority)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Equal(t, tt.expectedMessage, apperrors.MessageOf(err))
				return
			}

			assert.NoError(t, err)
			require.NotNil(t, priority)
			assert.Equal(t, 5, priority.ID)
			assert.Equal(t, "Critical", priority.Name)
		})
	}
}

func TestPriorityService_Update(t *testing.T) {
	name := "Severe"
	existingLevel := 4
	newLevel := 6

	t.Run("success without level change skips the duplicate check", func(t *testing.T) {
		repo := &mockPriorityRepository{priority: &models.Priority{ID: 4, Name: "Severe", Level: existingLevel}}
		svc := NewPriorityService(repo)

		priority, err := svc.Update(context.Background(), 4, &models.UpdatePriorityRequest{Name: &name})

		assert.NoError(t, err)
		require.NotNil(t, priority)
		require.NotNil(t, repo.lastUpdate.Name)
		assert.Equal(t, "Severe", *repo.lastUpdate.Name)
	})

	t.Run("no fields provided", func(t *testing.T) {
		svc := NewPriorityService(&mockPriorityRepository{})

		priority, err := svc.Update(context.Background(), 4, &models.UpdatePriorityRequest{})

		assert.Error(t, err)
		assert.Nil(t, priority)
		assert.Equal(t, "At least one field (name or level) is required for update", apperrors.MessageOf(err))
	})

	t.Run("level change collides with an existing priority", func(t *testing.T) {
		repo := &mockPriorityRepository{
			priority: &models.Priority{ID: 4, Name: "Urgent", Level: existingLevel},
			byLevel:  &models.Priority{ID: 5, Name: "Critical", Level: newLevel},
		}
		svc := NewPriorityService(repo)

		priority, err := svc.Update(context.Background(), 4, &models.UpdatePriorityRequest{Level: &newLevel})

		assert.Error(t, err)
		assert.Nil(t, priority)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("unknown priority", func(t *testing.T) {
		repo := &mockPriorityRepository{getByIDErr: apperrors.NotFound("Priority not found")}
		svc := NewPriorityService(repo)

		priority, err := svc.Update(context.Background(), 42, &models.UpdatePriorityRequest{Name: &name})

		assert.Error(t, err)
		assert.Nil(t, priority)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestPriorityService_Delete(t *testing.T) {
	svc := NewPriorityService(&mockPriorityRepository{deleteErr: apperrors.NotFound("Priority not found")})

	err := svc.Delete(context.Background(), 42)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestPriorityService_GetAll(t *testing.T) {
	priorities := []models.Priority{
		{ID: 1, Name: "Low", Level: 1},
		{ID: 2, Name: "Medium", Level: 2},
	}
	svc := NewPriorityService(&mockPriorityRepository{priorities: priorities})

	result, err := svc.GetAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, priorities, result)
}
