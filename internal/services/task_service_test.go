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

// mockTaskRepository is a mock implementation of TaskRepository
type mockTaskRepository struct {
	createErr       error
	created         *models.Task
	task            *models.Task
	getByIDErr      error
	tasks           []models.Task
	queryErr        error
	updateErr       error
	lastUpdate      repositories.TaskUpdate
	updatedListID   int
	statusErr       error
	lastStatus      bool
	statusListID    int
	deleteErr       error
}

func (m *mockTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if m.createErr != nil {
		return m.createErr
	}
	task.ID = 13
	m.created = task
	return nil
}

func (m *mockTaskRepository) GetByID(ctx context.Context, taskID, userID int) (*models.Task, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	if m.task != nil {
		return m.task, nil
	}
	return m.created, nil
}

func (m *mockTaskRepository) GetAll(ctx context.Context, userID int) ([]models.Task, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.tasks, nil
}

func (m *mockTaskRepository) GetPending(ctx context.Context, userID int) ([]models.Task, error) {
	return m.GetAll(ctx, userID)
}

func (m *mockTaskRepository) GetDueToday(ctx context.Context, userID int) ([]models.Task, error) {
	return m.GetAll(ctx, userID)
}

func (m *mockTaskRepository) GetOverdue(ctx context.Context, userID int) ([]models.Task, error) {
	return m.GetAll(ctx, userID)
}

func (m *mockTaskRepository) Update(ctx context.Context, taskID, listID, userID int, updates repositories.TaskUpdate) error {
	m.lastUpdate = updates
	m.updatedListID = listID
	return m.updateErr
}

func (m *mockTaskRepository) UpdateStatus(ctx context.Context, taskID, listID, userID int, isCompleted bool) error {
	m.lastStatus = isCompleted
	m.statusListID = listID
	return m.statusErr
}

func (m *mockTaskRepository) Delete(ctx context.Context, taskID, userID int) error {
	return m.deleteErr
}

// mockListReader is a mock implementation of ListReader
type mockListReader struct {
	list *models.List
	err  error
}

func (m *mockListReader) GetByID(ctx context.Context, listID, userID int) (*models.List, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

// mockPriorityReader is a mock implementation of PriorityReader
type mockPriorityReader struct {
	priority    *models.Priority
	getByIDErr  error
	lowest      *models.Priority
	getLowerErr error
}

func (m *mockPriorityReader) GetByID(ctx context.Context, priorityID int) (*models.Priority, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	return m.priority, nil
}

func (m *mockPriorityReader) GetLowest(ctx context.Context) (*models.Priority, error) {
	if m.getLowerErr != nil {
		return nil, m.getLowerErr
	}
	return m.lowest, nil
}

func defaultPriorityReader() *mockPriorityReader {
	return &mockPriorityReader{
		priority: &models.Priority{ID: 2, Name: "Medium", Level: 2},
		lowest:   &models.Priority{ID: 1, Name: "Low", Level: 1},
	}
}

func TestTaskService_Create(t *testing.T) {
	description := "2% if they have it"

	tests := []struct {
		name            string
		req             *models.CreateTaskRequest
		lists           *mockListReader
		priorities      *mockPriorityReader
		expectedError   bool
		expectedKind    apperrors.Kind
		expectedMessage string
		expectedPriority int
	}{
		{
			name:             "success with explicit numeric priority",
			req:              &models.CreateTaskRequest{ListID: float64(7), Title: "Buy milk", Description: &description, PriorityID: float64(2)},
			lists:            &mockListReader{list: &models.List{ID: 7, UserID: 1}},
			priorities:       defaultPriorityReader(),
			expectedError:    false,
			expectedPriority: 2,
		},
		{
			name:             "missing priority defaults to the lowest severity",
			req:              &models.CreateTaskRequest{ListID: float64(7), Title: "Buy milk"},
			lists:            &mockListReader{list: &models.List{ID: 7, UserID: 1}},
			priorities:       defaultPriorityReader(),
			expectedError:    false,
			expectedPriority: 1,
		},
		{
			name:             "list_id as string is accepted",
			req:              &models.CreateTaskRequest{ListID: "7", Title: "Buy milk"},
			lists:            &mockListReader{list: &models.List{ID: 7, UserID: 1}},
			priorities:       defaultPriorityReader(),
			expectedError:    false,
			expectedPriority: 1,
		},
		{
			name:            "missing list_id",
			req:             &models.CreateTaskRequest{Title: "Buy milk"},
			lists:           &mockListReader{},
			priorities:      defaultPriorityReader(),
			expectedError:   true,
			expectedKind:    apperrors.KindValidation,
			expectedMessage: "list_id is required",
		},
		{
			name:            "non-numeric list_id",
			req:             &models.CreateTaskRequest{ListID: "abc", Title: "Buy milk"},
			lists:           &mockListReader{},
			priorities:      defaultPriorityReader(),
			expectedError:   true,
			expectedKind:    apperrors.KindValidation,
			expectedMessage: "list_id must be a valid number",
		},
		{
			name:            "unknown priority",
			req:             &models.CreateTaskRequest{ListID: float64(7), Title: "Buy milk", PriorityID: float64(99)},
			lists:           &mockListReader{list: &models.List{ID: 7, UserID: 1}},
			priorities:      &mockPriorityReader{getByIDErr: apperrors.NotFound("Priority not found")},
			expectedError:   true,
			expectedKind:    apperrors.KindValidation,
			expectedMessage: "Invalid priority ID",
		},
		{
			name:            "target list not owned by caller",
			req:             &models.CreateTaskRequest{ListID: float64(7), Title: "Buy milk"},
			lists:           &mockListReader{err: apperrors.NotFound("List not found!")},
			priorities:      defaultPriorityReader(),
			expectedError:   true,
			expectedKind:    apperrors.KindNotFound,
			expectedMessage: "List not found!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepository{}
			svc := NewTaskService(repo, tt.lists, tt.priorities)

			task, err := svc.Create(context.Background(), 1, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, task)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Equal(t, tt.expectedMessage, apperrors.MessageOf(err))
				return
			}

			assert.NoError(t, err)
			require.NotNil(t, task)
			assert.Equal(t, 13, task.ID)
			assert.Equal(t, 7, task.ListID)
			require.NotNil(t, task.PriorityID)
			assert.Equal(t, tt.expectedPriority, *task.PriorityID)
		})
	}
}

func TestTaskService_Update(t *testing.T) {
	title := "Buy oat milk"
	existing := &models.Task{ID: 13, ListID: 7, Title: "Buy milk"}

	t.Run("success keeps the current parent list", func(t *testing.T) {
		repo := &mockTaskRepository{task: existing}
		svc := NewTaskService(repo, &mockListReader{}, defaultPriorityReader())

		task, err := svc.Update(context.Background(), 13, 1, &models.UpdateTaskRequest{Title: &title})

		assert.NoError(t, err)
		require.NotNil(t, task)
		assert.Equal(t, 7, repo.updatedListID)
		require.NotNil(t, repo.lastUpdate.Title)
		assert.Equal(t, "Buy oat milk", *repo.lastUpdate.Title)
	})

	t.Run("no fields provided", func(t *testing.T) {
		repo := &mockTaskRepository{task: existing}
		svc := NewTaskService(repo, &mockListReader{}, defaultPriorityReader())

		task, err := svc.Update(context.Background(), 13, 1, &models.UpdateTaskRequest{})

		assert.Error(t, err)
		assert.Nil(t, task)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		assert.Equal(t, "At least one field to update must be provided", apperrors.MessageOf(err))
	})

	t.Run("non-numeric list_id", func(t *testing.T) {
		repo := &mockTaskRepository{task: existing}
		svc := NewTaskService(repo, &mockListReader{}, defaultPriorityReader())

		task, err := svc.Update(context.Background(), 13, 1, &models.UpdateTaskRequest{ListID: "abc"})

		assert.Error(t, err)
		assert.Nil(t, task)
		assert.Equal(t, "Invalid List ID", apperrors.MessageOf(err))
	})

	t.Run("moving to an unowned list fails", func(t *testing.T) {
		repo := &mockTaskRepository{task: existing}
		lists := &mockListReader{err: apperrors.NotFound("List not found!")}
		svc := NewTaskService(repo, lists, defaultPriorityReader())

		task, err := svc.Update(context.Background(), 13, 1, &models.UpdateTaskRequest{ListID: float64(9)})

		assert.Error(t, err)
		assert.Nil(t, task)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("moving the task touches the destination list", func(t *testing.T) {
		repo := &mockTaskRepository{task: existing}
		lists := &mockListReader{list: &models.List{ID: 9, UserID: 1}}
		svc := NewTaskService(repo, lists, defaultPriorityReader())

		_, err := svc.Update(context.Background(), 13, 1, &models.UpdateTaskRequest{ListID: float64(9)})

		assert.NoError(t, err)
		assert.Equal(t, 9, repo.updatedListID)
	})

	t.Run("task not reachable through caller's lists", func(t *testing.T) {
		repo := &mockTaskRepository{getByIDErr: apperrors.NotFound("Task not found")}
		svc := NewTaskService(repo, &mockListReader{}, defaultPriorityReader())

		task, err := svc.Update(context.Background(), 13, 2, &models.UpdateTaskRequest{Title: &title})

		assert.Error(t, err)
		assert.Nil(t, task)
		assert.Equal(t, "Task not found", apperrors.MessageOf(err))
	})
}

func TestTaskService_UpdateStatus(t *testing.T) {
	existing := &models.Task{ID: 13, ListID: 7, Title: "Buy milk"}

	tests := []struct {
		name            string
		value           any
		expectedError   bool
		expectedMessage string
		expectedStatus  bool
	}{
		{name: "boolean true", value: true, expectedStatus: true},
		{name: "string true", value: "true", expectedStatus: true},
		{name: "numeric one", value: float64(1), expectedStatus: true},
		{name: "string zero", value: "0", expectedStatus: false},
		{name: "missing value", value: nil, expectedError: true, expectedMessage: "is_completed field is required"},
		{name: "unsupported value", value: "yes", expectedError: true, expectedMessage: "is_completed must be a boolean value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepository{task: existing}
			svc := NewTaskService(repo, &mockListReader{}, defaultPriorityReader())

			task, err := svc.UpdateStatus(context.Background(), 13, 1, tt.value)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, task)
				assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
				assert.Equal(t, tt.expectedMessage, apperrors.MessageOf(err))
				return
			}

			assert.NoError(t, err)
			require.NotNil(t, task)
			assert.Equal(t, tt.expectedStatus, repo.lastStatus)
			assert.Equal(t, 7, repo.statusListID)
		})
	}
}

func TestTaskService_Delete(t *testing.T) {
	repo := &mockTaskRepository{deleteErr: apperrors.NotFound("Task not found")}
	svc := NewTaskService(repo, &mockListReader{}, defaultPriorityReader())

	err := svc.Delete(context.Background(), 13, 2)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
