package services

import (
	"context"
	"strings"
	"time"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/models"
	"github.com/taskvault/backend/internal/repositories"
	"github.com/taskvault/backend/internal/validation"
)

// TaskRepository is the interface that wraps methods for tasks table data
// access. Reads and writes are scoped through the parent list's owner.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, taskID, userID int) (*models.Task, error)
	GetAll(ctx context.Context, userID int) ([]models.Task, error)
	GetPending(ctx context.Context, userID int) ([]models.Task, error)
	GetDueToday(ctx context.Context, userID int) ([]models.Task, error)
	GetOverdue(ctx context.Context, userID int) ([]models.Task, error)
	Update(ctx context.Context, taskID, listID, userID int, updates repositories.TaskUpdate) error
	UpdateStatus(ctx context.Context, taskID, listID, userID int, isCompleted bool) error
	Delete(ctx context.Context, taskID, userID int) error
}

// ListReader is the list access the task service needs for ownership checks
type ListReader interface {
	GetByID(ctx context.Context, listID, userID int) (*models.List, error)
}

// PriorityReader is the priority access the task service needs for
// validation and defaulting
type PriorityReader interface {
	GetByID(ctx context.Context, priorityID int) (*models.Priority, error)
	GetLowest(ctx context.Context) (*models.Priority, error)
}

// taskService implements task business logic
type taskService struct {
	taskRepo     TaskRepository
	listRepo     ListReader
	priorityRepo PriorityReader
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo TaskRepository, listRepo ListReader, priorityRepo PriorityReader) *taskService {
	return &taskService{
		taskRepo:     taskRepo,
		listRepo:     listRepo,
		priorityRepo: priorityRepo,
	}
}

// Create validates a new task, verifies the target list belongs to the
// caller and stores the task, returning the canonical row. A task created
// without a priority gets the lowest-severity one; a task created without a
// due date keeps it null.
func (s *taskService) Create(ctx context.Context, userID int, req *models.CreateTaskRequest) (*models.Task, error) {
	if req.ListID == nil {
		return nil, apperrors.Validation("list_id is required")
	}

	listID, ok := validation.ParseIntValue(req.ListID)
	if !ok {
		return nil, apperrors.Validation("list_id must be a valid number")
	}

	if err := validation.ValidateTitle(req.Title); err != nil {
		return nil, err
	}

	if req.Description != nil {
		if err := validation.ValidateDescription(*req.Description); err != nil {
			return nil, err
		}
	}

	priorityID, err := validation.ValidatePriorityID(ctx, s.priorityRepo, req.PriorityID)
	if err != nil {
		return nil, err
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		dueDate, err = validation.ValidateDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
	}

	// Ownership check on the target list, baked into the same lookup
	if _, err := s.listRepo.GetByID(ctx, listID, userID); err != nil {
		return nil, err
	}

	if priorityID == nil {
		lowest, err := s.priorityRepo.GetLowest(ctx)
		if err != nil {
			return nil, err
		}
		priorityID = &lowest.ID
	}

	task := &models.Task{
		ListID:      listID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		PriorityID:  priorityID,
		DueDate:     dueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return s.taskRepo.GetByID(ctx, task.ID, userID)
}

// GetByID retrieves a task reachable through the caller's lists
func (s *taskService) GetByID(ctx context.Context, taskID, userID int) (*models.Task, error) {
	return s.taskRepo.GetByID(ctx, taskID, userID)
}

// GetAll retrieves every task reachable through the caller's lists
func (s *taskService) GetAll(ctx context.Context, userID int) ([]models.Task, error) {
	return s.taskRepo.GetAll(ctx, userID)
}

// GetPending retrieves the caller's incomplete tasks
func (s *taskService) GetPending(ctx context.Context, userID int) ([]models.Task, error) {
	return s.taskRepo.GetPending(ctx, userID)
}

// GetDueToday retrieves the caller's tasks due today
func (s *taskService) GetDueToday(ctx context.Context, userID int) ([]models.Task, error) {
	return s.taskRepo.GetDueToday(ctx, userID)
}

// GetOverdue retrieves the caller's overdue incomplete tasks
func (s *taskService) GetOverdue(ctx context.Context, userID int) ([]models.Task, error) {
	return s.taskRepo.GetOverdue(ctx, userID)
}

// Update validates and applies a partial update. Fields absent from the
// request stay untouched. The parent list's updated_at advances in the same
// transaction as the task write.
func (s *taskService) Update(ctx context.Context, taskID, userID int, req *models.UpdateTaskRequest) (*models.Task, error) {
	updates := repositories.TaskUpdate{}

	if req.ListID != nil {
		newListID, ok := validation.ParseIntValue(req.ListID)
		if !ok {
			return nil, apperrors.Validation("Invalid List ID")
		}
		updates.ListID = &newListID
	}

	if req.Title != nil {
		if err := validation.ValidateTitle(*req.Title); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*req.Title)
		updates.Title = &trimmed
	}

	if req.Description != nil {
		if err := validation.ValidateDescription(*req.Description); err != nil {
			return nil, err
		}
		updates.Description = req.Description
	}

	if req.PriorityID != nil {
		priorityID, err := validation.ValidatePriorityID(ctx, s.priorityRepo, req.PriorityID)
		if err != nil {
			return nil, err
		}
		updates.PriorityID = priorityID
	}

	if req.DueDate != nil && *req.DueDate != "" {
		dueDate, err := validation.ValidateDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		updates.DueDate = dueDate
	}

	if req.IsCompleted != nil {
		if err := validation.ValidateIsCompleted(req.IsCompleted); err != nil {
			return nil, err
		}
		isCompleted := validation.ParseIsCompleted(req.IsCompleted)
		updates.IsCompleted = &isCompleted
	}

	if !updates.HasChanges() {
		return nil, apperrors.Validation("At least one field to update must be provided")
	}

	existing, err := s.taskRepo.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	// When the task moves, the destination list must belong to the caller too
	listID := existing.ListID
	if updates.ListID != nil {
		if _, err := s.listRepo.GetByID(ctx, *updates.ListID, userID); err != nil {
			return nil, err
		}
		listID = *updates.ListID
	}

	if err := s.taskRepo.Update(ctx, taskID, listID, userID, updates); err != nil {
		return nil, err
	}

	return s.taskRepo.GetByID(ctx, taskID, userID)
}

// UpdateStatus sets the completion flag, accepting the documented boolean
// forms, and returns the canonical row
func (s *taskService) UpdateStatus(ctx context.Context, taskID, userID int, isCompleted any) (*models.Task, error) {
	if isCompleted == nil {
		return nil, apperrors.Validation("is_completed field is required")
	}

	if err := validation.ValidateIsCompleted(isCompleted); err != nil {
		return nil, err
	}

	existing, err := s.taskRepo.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, existing.ListID, userID, validation.ParseIsCompleted(isCompleted)); err != nil {
		return nil, err
	}

	return s.taskRepo.GetByID(ctx, taskID, userID)
}

// Delete removes a task reachable through the caller's lists
func (s *taskService) Delete(ctx context.Context, taskID, userID int) error {
	return s.taskRepo.Delete(ctx, taskID, userID)
}
